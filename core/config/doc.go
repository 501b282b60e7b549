// Package config provides configuration management for the scene editor
// asset service.
//
// It utilizes Viper for loading configuration from environment variables
// and a .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: project database connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: logging level and format
//   - Assets: handler prefixes, preview limits, snapshot object
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
