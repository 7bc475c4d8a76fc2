// Package config provides configuration management for the symdiff service.
//
// It uses godotenv to load an optional .env file and Viper to read environment
// variables, with defaults taken from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, API key and request body limit
//   - Storage: S3/MinIO credentials and the default bucket for s3:// sources
//   - Database: MySQL connection details for db:// sources
//   - Log: logging level and format
//   - Diff: object cache TTL and per-source record limit
//
// Nested keys map to upper-case environment variables, e.g. diff.max_records
// is read from DIFF_MAX_RECORDS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
