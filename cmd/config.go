package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/curvefit-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set curvefit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_file: %s\n", c.DataFile)
		if len(c.SearchDirs) > 0 {
			fmt.Fprintf(out, "search_dirs: %s\n", strings.Join(c.SearchDirs, ","))
		}
		fmt.Fprintf(out, "x_column: %s\n", c.XColumn)
		fmt.Fprintf(out, "y_column: %s\n", c.YColumn)
		if c.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", c.SheetName)
		}
		fmt.Fprintf(out, "sheet_index: %d\n", c.SheetIndex)
		fmt.Fprintf(out, "degrees: %s\n", joinInts(c.Degrees))
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		fmt.Fprintf(out, "head_rows: %d\n", c.HeadRows)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := currentConfig()
		switch key {
		case "data_file":
			c.DataFile = val
		case "search_dirs":
			c.SearchDirs = splitList(val)
		case "x_column":
			c.XColumn = val
		case "y_column":
			c.YColumn = val
		case "sheet_name":
			c.SheetName = val
		case "sheet_index":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for sheet_index: %v", val)
			}
			c.SheetIndex = i
		case "degrees":
			var ds []int
			for _, s := range splitList(val) {
				d, err := strconv.Atoi(s)
				if err != nil {
					return fmt.Errorf("invalid degree: %s", s)
				}
				ds = append(ds, d)
			}
			c.Degrees = ds
		case "output_format":
			c.OutputFormat = strings.ToLower(val)
		case "head_rows":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for head_rows: %w", err)
			}
			c.HeadRows = i
		case "log_level":
			c.LogLevel = strings.ToLower(val)
		case "log_format":
			switch val {
			case "console", "json":
				c.LogFormat = val
			default:
				return fmt.Errorf("invalid log_format: %s (use console or json)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinInts(in []int) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
