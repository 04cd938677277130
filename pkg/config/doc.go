// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (reading .env files) and
// github.com/caarlos0/env/v11 (parsing the environment into tagged structs).
// Each package of this module owns its Config struct; the process entrypoint
// loads them one by one:
//
//	var mailCfg email.Config
//	config.MustLoad(&mailCfg)
//
//	var dbCfg pg.Config
//	config.MustLoad(&dbCfg)
//
// Parsed values are cached per type for the lifetime of the process. Tests
// that change the environment call ResetCache between loads.
//
// Errors: ErrParsingConfig, ErrLoadingEnvFile, ErrNilPointer.
package config
