package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calculator"
)

// Config is the calculator configuration read from a YAML file.
type Config struct {
	// Scale is the maximum number of fractional digits of inexact results.
	Scale int32 `yaml:"scale"`
	// MaxDepth limits nested parentheses and calls.
	MaxDepth int `yaml:"max_depth"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`
	// NumericOnly disables function names entirely.
	NumericOnly bool `yaml:"numeric_only"`
	// Functions, if not empty, restricts the default functions to those named.
	Functions []string `yaml:"functions"`
}

func defaultConfig() Config {
	return Config{
		Scale:    calculator.DefaultScale,
		MaxDepth: calculator.DefaultMaxDepth,
		LogLevel: "warn",
	}
}

// loadConfig reads a YAML config file. Fields missing from the file keep their
// default values. An empty name gives the defaults.
func loadConfig(name string) (Config, error) {
	cfg := defaultConfig()
	if name == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Scale < 0 {
		return fmt.Errorf("scale (%d) must not be negative", cfg.Scale)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	defaults := calculator.DefaultFuncs()
	for _, name := range cfg.Functions {
		if _, ok := defaults[strings.ToLower(name)]; !ok {
			return fmt.Errorf("functions: no function named %q", name)
		}
	}
	return nil
}

// options converts the config to calculator options.
func (cfg *Config) options(log zerolog.Logger) []calculator.Option {
	opts := []calculator.Option{
		calculator.Scale(cfg.Scale),
		calculator.MaxDepth(cfg.MaxDepth),
		calculator.WithLogger(log),
	}
	if cfg.NumericOnly {
		opts = append(opts, calculator.NumericOnly())
	}
	if len(cfg.Functions) > 0 {
		defaults := calculator.DefaultFuncs()
		keep := make(map[string]calculator.Func, len(cfg.Functions))
		for _, name := range cfg.Functions {
			name = strings.ToLower(name)
			keep[name] = defaults[name]
		}
		opts = append(opts, calculator.NoDefaultFuncs(), calculator.Funcs(keep))
	}
	return opts
}
