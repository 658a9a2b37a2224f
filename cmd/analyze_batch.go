package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/curvefit-cli/internal/logging"
	"github.com/KaramelBytes/curvefit-cli/internal/report"
	"github.com/KaramelBytes/curvefit-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	abFlags     = loaderFlags{head: -1}
	abFormat    string
	abOutputDir string
	abQuiet     bool
	abKeepGoing bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple XLSX/CSV/TSV files with progress and optional report files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		c := currentConfig()
		format, err := outputFormat(abFormat, c)
		if err != nil {
			return err
		}
		dopt, err := abFlags.datasetOptions(c)
		if err != nil {
			return err
		}
		ropt := abFlags.reportOptions(c)
		if abOutputDir != "" {
			if err := os.MkdirAll(abOutputDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		total, failed := len(files), 0
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			a, err := analyzeFile(path, dopt, ropt)
			if err != nil {
				if !abKeepGoing {
					return err
				}
				failed++
				logging.Error("analysis failed", "file", path, "error", err)
				if !abQuiet {
					fmt.Fprintf(out, "✗ %s: %v\n", filepath.Base(path), err)
				}
				continue
			}
			b, err := a.Render(format)
			if err != nil {
				return err
			}
			if abOutputDir == "" {
				if !abQuiet {
					_, _ = out.Write(b)
					fmt.Fprintln(out)
				}
				continue
			}
			base := utils.SafeBase(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
			if abFlags.sheetName != "" {
				base += "__sheet-" + utils.SafeBase(abFlags.sheetName)
			}
			dest, err := utils.UniquePath(abOutputDir, base+".curvefit", report.Ext(format))
			if err != nil {
				return fmt.Errorf("choose report name: %w", err)
			}
			if want := filepath.Join(abOutputDir, base+".curvefit"+report.Ext(format)); dest != want && !abQuiet {
				fmt.Fprintf(out, "⚠ Detected existing report, writing to %s to avoid overwrite.\n", filepath.Base(dest))
			}
			if err := utils.SafeWriteFile(dest, b); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if !abQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n", dest)
			}
		}
		logging.Info("batch complete", "files", total, "failed", failed)
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, total)
		}
		return nil
	},
}

// expandInputs resolves glob patterns and literal paths, deduplicated and sorted.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	abFlags.register(analyzeBatchCmd.Flags())
	analyzeBatchCmd.Flags().StringVarP(&abFormat, "format", "f", "", "output format: text | markdown | json (default from config)")
	analyzeBatchCmd.Flags().StringVar(&abOutputDir, "output-dir", "", "write one report per input file into this directory")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
	analyzeBatchCmd.Flags().BoolVar(&abKeepGoing, "keep-going", false, "continue with the remaining files when one fails")
}
