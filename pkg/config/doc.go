// Package config loads application configuration from environment
// variables, optionally seeded from .env files.
//
// It combines github.com/joho/godotenv, which reads .env files into the
// process environment, with github.com/caarlos0/env/v11, which parses the
// environment into tagged structs. Each configuration type is parsed once
// and cached for the lifetime of the process.
//
// # Usage
//
//	if err := config.LoadEnv("./deploy/.env"); err != nil {
//	    return err
//	}
//
//	var cfg config.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
//	publicDir := cfg.PublicDir()
//
// Config aggregates the sections consumed by the front controller: App,
// HTTP (httpserver.Config), Cookie (cookie.Config), Locale, Public, Plugins,
// DB (db.Config) and Log. Relative directories are resolved against
// App.RootDir by PublicDir, TranslationsDir and PluginsDir.
//
// When LoadEnv is not called, the first Load reads the default .env in the
// working directory if one exists.
//
// # Errors
//
//   - ErrParsingConfig: the environment could not be parsed into the struct.
//   - ErrLoadingEnvFile: an explicitly requested .env file could not be read.
//   - ErrConfigNotLoaded: the cached value vanished during loading.
//   - ErrNilPointer: nil passed to Load or MustLoad.
//
// ResetCache clears cached types and is meant for tests.
package config
