package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/curvefit-cli/internal/dataset"
	"github.com/KaramelBytes/curvefit-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	tplForce bool
	tplXName string
	tplYName string
)

var templateCmd = &cobra.Command{
	Use:   "template [path]",
	Short: "Write an example datos.xlsx with x/y columns",
	Long: `Write a small two-column workbook in the layout analyze expects. Without a path the
file is created as datos.xlsx in the suggested data directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(dataset.SuggestedDir(), "datos.xlsx")
		if len(args) == 1 {
			path = args[0]
		}
		if dataPathExists(path) {
			if !tplForce {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			logging.Warn("overwriting existing data file", "path", path)
		}
		// y = x² - 3x + 1 sampled on 0..7
		points := make([]dataset.Point, 0, 8)
		for i := 0; i < 8; i++ {
			x := float64(i)
			points = append(points, dataset.Point{Row: i + 2, X: x, Y: x*x - 3*x + 1})
		}
		if err := dataset.WriteXLSX(path, tplXName, tplYName, points); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote template to %s\n", path)
		return nil
	},
}

// dataPathExists reports whether p is already taken.
func dataPathExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.Flags().BoolVar(&tplForce, "force", false, "overwrite an existing file")
	templateCmd.Flags().StringVar(&tplXName, "x-col", "x", "header of the x column")
	templateCmd.Flags().StringVar(&tplYName, "y-col", "y", "header of the y column")
}
