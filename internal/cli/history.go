package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"chimera/internal/services/history/domain"
)

var errHistoryDisabled = errors.New("history is disabled, set CHIMERA_HISTORY_DRIVER to sqlite or pg")

// HistoryCmd groups the history subcommands
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded analyses",
	}
	cmd.AddCommand(historyListCmd(), historyShowCmd())
	return cmd
}

func historyListCmd() *cobra.Command {
	var (
		limit    int
		textHash string
		format   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()
			if e.history == nil {
				return errHistoryDisabled
			}

			entries, err := e.history.Recent(cmd.Context(), domain.RecentInput{Limit: limit, TextHash: textHash})
			if err != nil {
				return err
			}
			if format == FormatJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No analyses recorded yet")
				return nil
			}
			renderEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show")
	cmd.Flags().StringVar(&textHash, "text-hash", "", "Only analyses of the text with this sha256")
	cmd.Flags().StringVar(&format, "format", FormatPretty, "Output format: pretty or json")
	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()
			if e.history == nil {
				return errHistoryDisabled
			}

			entry, err := e.history.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), entry)
		},
	}
}
