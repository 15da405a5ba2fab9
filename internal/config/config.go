// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration. Values come from SPARTAN_*
// environment variables, with an optional .env file loaded first.
type Config struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	DatabasePath string        `envconfig:"DATABASE_PATH" default:"spartan-directory.db"`
	DatasetPath  string        `envconfig:"DATASET_PATH" default:""`
	DatasetSeed  uint64        `envconfig:"DATASET_SEED" default:"0"`
	FetchDelay   time.Duration `envconfig:"FETCH_DELAY" default:"800ms"`
	LoginDelay   time.Duration `envconfig:"LOGIN_DELAY" default:"500ms"`
	BcryptCost   int           `envconfig:"BCRYPT_COST" default:"12"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"true"`
	LogFormat    string        `envconfig:"LOG_FORMAT" default:"text"`
	Debug        bool          `envconfig:"DEBUG" default:"false"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("spartan", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost must be between 4 and 14, got %d", c.BcryptCost)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	if c.FetchDelay < 0 || c.LoginDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	return nil
}
