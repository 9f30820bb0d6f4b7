// Package config loads the module's configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Corpus     CorpusConfig     `mapstructure:"corpus"`
	HouseRules HouseRulesConfig `mapstructure:"house_rules"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CorpusConfig points at the Scryfall oracle card dump the CLI and the
// import tool read.
type CorpusConfig struct {
	Path string `mapstructure:"path"`
}

// HouseRulesConfig toggles optional-format rules the clause evaluator gates
// on.
type HouseRulesConfig struct {
	Planechase bool `mapstructure:"planechase"`
}

// DatabaseConfig configures the coverage store connection.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// Load reads configuration from the given path. A missing file is not an
// error; defaults and MAGE_ORACLE_* environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("corpus.path", "oracle-cards.json")
	v.SetDefault("house_rules.planechase", false)
	v.SetDefault("database.url", "")

	v.SetEnvPrefix("MAGE_ORACLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			// A missing file falls back to defaults and environment; only a
			// parse failure is fatal.
			var pathErr *fs.PathError
			if !errors.As(err, &pathErr) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
