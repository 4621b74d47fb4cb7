// Package config provides configuration management for the API mirror.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional .env file, and command-line flags bound by the cmd package.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Source: admin endpoint configuration is read from (SOURCE_URL)
//   - Destination: admin endpoint configuration is written to (DESTINATION_URL)
//   - Log: Logging level and format
//   - Report: S3/MinIO settings for archiving run reports
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Destination.URL)
package config
