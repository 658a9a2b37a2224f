package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/curvefit-cli/internal/config"
	"github.com/KaramelBytes/curvefit-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile      string
	debug        bool
	flagLogFmt   string
	flagLogLevel string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "curvefit",
	Short: "curvefit: interpolation and regression analysis for x/y samples",
	Long: `curvefit loads paired (x, y) samples from a spreadsheet and fits curves to them:
Lagrange interpolation with leave-one-out error estimates for degrees 1-4, and linear and
quadratic least-squares regression with goodness-of-fit statistics.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.curvefit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFmt, "log-format", "", "log format: console | json (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug | info | warn | error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = defaultConfig()
	}
	cfg = c
	setupLogging()
}

// currentConfig returns the loaded configuration, loading it on first use.
func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	return cfg
}

func defaultConfig() *cfgpkg.Global {
	return &cfgpkg.Global{
		DataFile:     "datos",
		XColumn:      "x",
		YColumn:      "y",
		SheetIndex:   1,
		Degrees:      []int{1, 2, 3, 4},
		OutputFormat: "text",
		HeadRows:     5,
		LogLevel:     "info",
		LogFormat:    "console",
	}
}

func setupLogging() {
	level, format := cfg.LogLevel, cfg.LogFormat
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagLogFmt != "" {
		format = flagLogFmt
	}
	if debug {
		level = "debug"
	}
	logging.SetGlobal(logging.New(os.Stderr, level, format))
	logging.Debug("logging configured", "level", level, "format", format, "config", cfgFile)
}
