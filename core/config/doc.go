// Package config provides configuration management for r2-manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (loaded with godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Storage: driver, endpoint, credentials, bucket, region, page size
//   - Server: HTTP gateway port, API key, body limit
//   - Log: Logging level and format
//
// Environment names are derived from the keys (storage.bucket -> STORAGE_BUCKET).
// CLOUDFLARE_URL, CLOUDFLARE_BUCKET_NAME, CLOUDFLARE_CLIENT_ID and
// CLOUDFLARE_SECRET_KEY are accepted as aliases for the storage settings.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := r2.FromConfig(cfg.Storage).Build()
package config
