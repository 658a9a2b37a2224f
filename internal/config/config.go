package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/curvefit-cli/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Input discovery and column selection
	DataFile   string   `mapstructure:"data_file" yaml:"data_file"`
	SearchDirs []string `mapstructure:"search_dirs" yaml:"search_dirs"`
	XColumn    string   `mapstructure:"x_column" yaml:"x_column"`
	YColumn    string   `mapstructure:"y_column" yaml:"y_column"`
	SheetName  string   `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int      `mapstructure:"sheet_index" yaml:"sheet_index"`

	// Analysis
	Degrees []int `mapstructure:"degrees" yaml:"degrees"`

	// Output
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	HeadRows     int    `mapstructure:"head_rows" yaml:"head_rows"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".curvefit", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.curvefit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CURVEFIT")
	v.AutomaticEnv()

	v.SetDefault("data_file", "datos")
	v.SetDefault("search_dirs", []string{})
	v.SetDefault("x_column", "x")
	v.SetDefault("y_column", "y")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("degrees", []int{1, 2, 3, 4})
	v.SetDefault("output_format", "text")
	v.SetDefault("head_rows", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read; an explicit file that exists must parse
	if err := v.ReadInConfig(); err != nil && cfgFile != "" {
		if _, statErr := os.Stat(cfgFile); statErr == nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Global) Validate() error {
	for _, d := range c.Degrees {
		if d < 1 || d > 4 {
			return fmt.Errorf("invalid degree %d in config (use 1..4)", d)
		}
	}
	switch c.OutputFormat {
	case "", "text", "markdown", "json":
	default:
		return fmt.Errorf("invalid output_format: %s (use text, markdown or json)", c.OutputFormat)
	}
	if c.HeadRows < 0 {
		return fmt.Errorf("invalid head_rows: %d", c.HeadRows)
	}
	return nil
}
