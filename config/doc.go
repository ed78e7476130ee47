// Package config loads the rxfetch configuration.
//
// Viper reads an optional YAML file (cmd/rxfetch/config.yml, ./config.yml or
// an explicit path) on top of compiled defaults; a .env file is loaded into
// the environment with godotenv, and RXFETCH_* variables override both.
//
// # Usage
//
//	cfg := config.Default()
//	if err := config.LoadConfig(config.ServiceName, &cfg, config.WithConfigFile(path)); err != nil {
//		return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//
// Nested keys map to variables by replacing dots with underscores:
// RXFETCH_FETCH_TIMEOUT sets fetch.timeout and RXFETCH_USER_API_ENABLED sets
// user_api.enabled.
package config
