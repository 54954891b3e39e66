// Package config loads the run configuration from a YAML file with
// environment variable overrides.
package config

import (
	"flag"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config carries the file paths one batch run works with.
type Config struct {
	// RegistryFile is the JSONL account snapshot loaded at startup and
	// rewritten at shutdown.
	RegistryFile string `yaml:"registry_file" env:"STOREFRONT_REGISTRY" env-default:"db/registry.jsonl"`
	// DailyFile holds the day's transaction records.
	DailyFile string `yaml:"daily_file" env:"STOREFRONT_DAILY" env-default:"daily.txt"`
	// ErrorLog receives a line per failed record.
	ErrorLog string `yaml:"error_log" env:"STOREFRONT_ERRORS" env-default:"db/errors.log"`
	// AuditDB is an optional SQLite audit trail; empty disables it.
	AuditDB string `yaml:"audit_db" env:"STOREFRONT_AUDIT_DB" env-default:""`
}

var configPath = flag.String("config", "", "path to the YAML config file")

// Load reads the config file named by -config or CONFIG_PATH; without one it
// falls back to defaults and environment overrides.
func Load() (*Config, error) {
	var cfg Config
	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
