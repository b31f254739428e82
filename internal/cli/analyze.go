package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"chimera/internal/adapters/pdftext"
	"chimera/internal/services/analysis/domain"
)

// Output formats
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// AnalyzeCmd analyzes one text from a file, a PDF or stdin
func AnalyzeCmd() *cobra.Command {
	var (
		file   string
		format string
		apiKey string
	)
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a text file, a PDF or stdin",
		Long: "Analyze a submission for plagiarism, AI likelihood and authenticity.\n" +
			"Files ending in .pdf are read through the PDF text extractor. Without a file, stdin is read.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if file != "" {
					return errors.New("give the file either as an argument or with --file, not both")
				}
				file = args[0]
			}
			if format != FormatPretty && format != FormatJSON {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatPretty, FormatJSON)
			}

			text, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			rep, err := e.analysis.Analyze(cmd.Context(), domain.AnalyzeInput{Text: text, APIKey: apiKey})
			if err != nil {
				return err
			}
			if format == FormatJSON {
				return writeJSON(cmd.OutOrStdout(), rep)
			}
			return renderReport(cmd.OutOrStdout(), rep, e.analysis.Calibration())
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Text or PDF file to analyze, - for stdin")
	cmd.Flags().StringVar(&format, "format", FormatPretty, "Output format: pretty or json")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "External detector key, overrides CHIMERA_DETECTOR_API_KEY")
	return cmd
}

// readInput reads path, or stdin when path is empty or -
func readInput(stdin io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	text, err := pdftext.Load(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.TrimRight(text, "\n"), nil
}
