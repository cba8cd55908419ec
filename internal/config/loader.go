package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load when present. A missing file is not an error.
const DefaultEnvFile = ".env"

// Load reads .env files into the process environment and parses it into v
// using `env` struct tags. Files listed explicitly must exist; variables that
// are already set are never overwritten, so real environment wins over files.
//
//	var cfg proteus.Config
//	if err := config.Load(&cfg, ".env.local"); err != nil {
//		return err
//	}
func Load[T any](v *T, envFiles ...string) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := LoadEnv(envFiles...); err != nil {
		return err
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// LoadEnv loads the given files, or DefaultEnvFile when none are given.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		files = []string{DefaultEnvFile}
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Parse fills v from environ only, ignoring the process environment and .env files.
func Parse[T any](v *T, environ map[string]string) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := env.ParseWithOptions(v, env.Options{Environment: environ}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
