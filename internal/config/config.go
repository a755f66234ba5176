// Package config provides Viper-based configuration loading for the loot generator.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DataConfig locates the record files of a data set.
type DataConfig struct {
	// Dir is the directory every file name below is resolved against.
	Dir string `mapstructure:"dir"`
	// Monsters is the monster table, one monster per row.
	Monsters string `mapstructure:"monsters"`
	// TreasureClasses is the treasure class table, an id and three drops per row.
	TreasureClasses string `mapstructure:"treasure_classes"`
	// Armor is the base item table.
	Armor    string `mapstructure:"armor"`
	Prefixes string `mapstructure:"prefixes"`
	Suffixes string `mapstructure:"suffixes"`
}

// Path joins name onto Dir.
//
// Postcondition: Returns name unchanged when it is absolute.
func (d DataConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Dir, name)
}

// SimulationConfig holds fight loop settings.
type SimulationConfig struct {
	// Seed selects the random source: 0 uses crypto/rand, anything else a
	// reproducible seeded generator.
	Seed int64 `mapstructure:"seed"`
	// MaxDepth bounds treasure class resolution.
	MaxDepth int `mapstructure:"max_depth"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Data       DataConfig       `mapstructure:"data"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateData(c.Data); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateData(d DataConfig) error {
	var errs []string
	files := []struct{ key, val string }{
		{"data.monsters", d.Monsters},
		{"data.treasure_classes", d.TreasureClasses},
		{"data.armor", d.Armor},
		{"data.prefixes", d.Prefixes},
		{"data.suffixes", d.Suffixes},
	}
	for _, f := range files {
		if f.val == "" {
			errs = append(errs, f.key+" must not be empty")
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	if s.MaxDepth < 1 {
		return fmt.Errorf("simulation.max_depth must be >= 1, got %d", s.MaxDepth)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with LOOTGEN_ prefix
	v.SetEnvPrefix("LOOTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "data/large")
	v.SetDefault("data.monsters", "monstats.txt")
	v.SetDefault("data.treasure_classes", "TreasureClassEx.txt")
	v.SetDefault("data.armor", "armor.txt")
	v.SetDefault("data.prefixes", "MagicPrefix.txt")
	v.SetDefault("data.suffixes", "MagicSuffix.txt")

	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.max_depth", 64)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
}
