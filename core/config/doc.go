// Package config provides configuration management for store-ops.
//
// It loads an optional .env file with godotenv, registers every key with its
// `default` struct tag in Viper and lets environment variables override them
// (IMPORT_BATCH_SIZE -> import.batch_size).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, upload size limit
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Storage: S3/MinIO credentials, bucket and archive prefix
//   - Log: logging level and format
//   - Import: batch size, workers, empty scope policy, audit dump limit
//   - Metrics: Prometheus endpoint
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Import.BatchSize)
package config
