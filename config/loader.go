package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// environmentName is the subset of Config that selects the .env.<name> overlay.
type environmentName struct {
	Name string `env:"ENVIRONMENT"`
}

// loadEnvFiles loads .env, then .env.<ENVIRONMENT>, then .env.local. Later
// files override earlier ones; the process environment wins over .env only.
// Nothing is read on Lambda.
func loadEnvFiles() error {
	if IsLambda() {
		return nil
	}

	if err := loadEnvFile(".env", godotenv.Load); err != nil {
		return err
	}

	// ENVIRONMENT may come from .env itself, so resolve it after the base file.
	current, err := env.ParseAs[environmentName]()
	if err != nil {
		return fmt.Errorf("parse ENVIRONMENT: %w", err)
	}
	if current.Name != "" && current.Name != "local" {
		if err := loadEnvFile(".env."+current.Name, godotenv.Overload); err != nil {
			return err
		}
	}

	return loadEnvFile(".env.local", godotenv.Overload)
}

// loadEnvFile applies one optional env file. A missing file is skipped.
func loadEnvFile(path string, load func(...string) error) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
