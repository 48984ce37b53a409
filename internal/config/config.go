// Package config provides configuration management for rove with Viper
// integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete configuration for rove.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Engine     EngineConfig     `mapstructure:"engine" yaml:"engine"`
	Playground PlaygroundConfig `mapstructure:"playground" yaml:"playground"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// EngineConfig holds focus-engine options.
type EngineConfig struct {
	// InferRoles enables accessibility role inference from behavior tokens.
	InferRoles bool `mapstructure:"infer_roles" yaml:"infer_roles"`
	// ForceInstall installs the engine even when the platform reports
	// native support for the group attribute.
	ForceInstall bool `mapstructure:"force_install" yaml:"force_install"`
}

// PlaygroundConfig holds options for the interactive playground.
type PlaygroundConfig struct {
	// Document is the HTML file loaded when none is given on the command line.
	Document string `mapstructure:"document" yaml:"document"`
	// Watch reloads the document when the file changes on disk.
	Watch bool `mapstructure:"watch" yaml:"watch"`
	// ItemsPerRow is the synthetic layout width used by the playground's
	// geometry oracle for grid groups.
	ItemsPerRow int `mapstructure:"items_per_row" yaml:"items_per_row"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Engine: EngineConfig{
			InferRoles: true,
		},
		Playground: PlaygroundConfig{
			Watch:       true,
			ItemsPerRow: 3,
		},
	}
}

// Load reads configuration from the optional config file and ROVE_*
// environment variables, layered over the defaults. A missing config file
// is not an error.
func Load() (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("engine.infer_roles", def.Engine.InferRoles)
	v.SetDefault("engine.force_install", def.Engine.ForceInstall)
	v.SetDefault("playground.document", def.Playground.Document)
	v.SetDefault("playground.watch", def.Playground.Watch)
	v.SetDefault("playground.items_per_row", def.Playground.ItemsPerRow)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("ROVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "rove"), nil
}
