// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and an optional log file next to stdout.
//
// # Run Correlation
//
// Each sync pass gets a run id. The WithRunID helper attaches it to the logger,
// so all lines of one pass can be correlated, including those in the log file.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//   - File: extra output path, appended to stdout
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log, runID)
//	log.Info("Sync started")
package logger
