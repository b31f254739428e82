package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"chimera/internal/core/version"
)

// VersionCmd prints build info
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Short())
		},
	}
}
