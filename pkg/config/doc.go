// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: .env files
// are merged into the process environment and then parsed into any struct
// using `env` field tags. Each configuration type is parsed once and cached
// for the lifetime of the process.
//
//	var cfg engine.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// LoadEnv reads explicit .env files before the first Load. ResetCache and
// ForceReloadConfig exist for tests that change the environment.
//
// Errors wrap ErrParsingConfig, ErrLoadingEnvFile or ErrNilPointer and can be
// checked with errors.Is.
package config
