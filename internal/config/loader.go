package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	configPathEnv = "CONFIG_PATH"
	dotenvPathEnv = "DOTENV_PATH"

	defaultConfigPath = "./config.yaml"
	defaultDotenvPath = ".env"
)

// Load builds the Config from, in order of precedence, the environment,
// the YAML file named by CONFIG_PATH and the env-default tags. A dotenv
// file (DOTENV_PATH) fills unset variables before anything is read.
// Missing default files are skipped; a missing explicit file is an error.
func Load() (*Config, error) {
	dotenv, explicit := pathFromEnv(dotenvPathEnv, defaultDotenvPath)
	if err := godotenv.Load(dotenv); err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		return nil, fmt.Errorf("config: dotenv %s: %w", dotenv, err)
	}

	cfg := defaults()
	if err := read(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// defaults pre-fills the bools that default to true. cleanenv treats false
// as unset, so an env-default tag would override false from the file.
func defaults() Config {
	return Config{
		Database: DatabaseConfig{AutoMigrate: true},
		Reorder:  ReorderConfig{Atomic: true},
		CORS:     CORSConfig{AllowCredentials: true},
	}
}

func read(cfg *Config) error {
	path, explicit := pathFromEnv(configPathEnv, defaultConfigPath)

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		// ReadConfig applies the environment on top of the file.
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return fmt.Errorf("config: read env: %w", err)
		}
	}
	return nil
}

func pathFromEnv(key, fallback string) (path string, explicit bool) {
	if p := os.Getenv(key); p != "" {
		return p, true
	}
	return fallback, false
}
