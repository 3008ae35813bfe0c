// Package config loads optional operator-level defaults for the dotenvx
// CLI shells (default key name, default env-file list, logging level) from
// a YAML file, so repeated flags like --keys-file or --env-file can be
// fixed once per project instead of on every invocation.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional project-level dotenvx configuration, conventionally
// stored at ".dotenvx.yaml" in the project root.
type Config struct {
	// DefaultEnvFiles lists the env files loaded when a command omits -f.
	DefaultEnvFiles []string `yaml:"env_files"`
	// DefaultKeysFile overrides the sibling ".env.keys" lookup.
	DefaultKeysFile string `yaml:"keys_file"`
	// DefaultKeyName overrides "DOTENV_PRIVATE_KEY" for multi-environment setups.
	DefaultKeyName string `yaml:"key_name"`
	Logging        *LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls the package-level default logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and unmarshals a YAML config file at path. A missing file is
// not an error: it returns a zero-value Config with defaults applied, so
// callers can treat config as always-present.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			setDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	setDefaults(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	if len(cfg.DefaultEnvFiles) == 0 {
		cfg.DefaultEnvFiles = []string{".env"}
	}
	if cfg.DefaultKeyName == "" {
		cfg.DefaultKeyName = "DOTENV_PRIVATE_KEY"
	}
	if cfg.Logging == nil {
		cfg.Logging = &LoggingConfig{Level: "info"}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
