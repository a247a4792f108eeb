package config

import (
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

// Config holds the process configuration, parsed from the environment.
type Config struct {
	Port              string `env:"PORT" envDefault:"8080"`
	AppEnv            string `env:"APP_ENV" envDefault:"development"`
	DBPath            string `env:"DB_PATH"`
	StaticDir         string `env:"STATIC_DIR" envDefault:"./dist"`
	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`
	ResetDB           bool   `env:"RESET_DB"`
	PRDeployment      bool   `env:"PR_DEPLOYMENT"`
}

// Load reads .env (when present) and parses the environment into a
// Config. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to load .env file: %v", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the process runs with production
// safeguards enabled.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
