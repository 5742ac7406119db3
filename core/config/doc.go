// Package config provides configuration management for mango-sync.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file in the working directory.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Mango: API key, salt, endpoint and request timeout
//   - Database: MySQL, PostgreSQL or SQLite connection details
//   - Log: Logging level, format and optional log file
//   - Lock: Redis run lock (disabled when no address is set)
//   - Storage: S3/MinIO report archive (disabled by default)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
