package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/curvefit-cli/internal/dataset"
	"github.com/KaramelBytes/curvefit-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaFlags      = loaderFlags{head: -1}
	anaFormat     string
	anaOutputPath string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Fit curves to the x/y samples of an XLSX/CSV/TSV file",
	Long: `Load x/y samples and report linear and quadratic regression together with
leave-one-out Lagrange interpolation errors for degrees 1-4.

Without a file argument the configured data file (default "datos") is searched for in
the configured search_dirs, the working directory and ~/Documents, ~/Desktop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		format, err := outputFormat(anaFormat, c)
		if err != nil {
			return err
		}
		dopt, err := anaFlags.datasetOptions(c)
		if err != nil {
			return err
		}
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			p, checked, err := dataset.Discover(c.DataFile, c.SearchDirs)
			if err != nil {
				if errors.Is(err, dataset.ErrNotFound) {
					fmt.Fprintln(cmd.ErrOrStderr(), "✗ Data file not found. Checked:")
					for _, cp := range checked {
						fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", cp)
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "→ Place '%s.xlsx' in %s or pass the path explicitly.\n", c.DataFile, dataset.SuggestedDir())
				}
				return err
			}
			path = p
		}

		a, err := analyzeFile(path, dopt, anaFlags.reportOptions(c))
		if err != nil {
			return err
		}
		out, err := a.Render(format)
		if err != nil {
			return err
		}
		if anaOutputPath != "" {
			if err := os.MkdirAll(filepath.Dir(anaOutputPath), 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaFlags.register(analyzeCmd.Flags())
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "", "output format: text | markdown | json (default from config)")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "write the report to a file instead of stdout")
}
