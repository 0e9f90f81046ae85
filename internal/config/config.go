package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultMaxUploadBytes caps a single image upload (5MB, matching the
// original client contract).
const DefaultMaxUploadBytes = 5 << 20

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	JWKSURL     string
	CORSOrigins string
	TablePrefix string

	MaxUploadBytes int64

	Blob BlobConfig
}

// BlobConfig selects and parameterizes the blob store backend.
type BlobConfig struct {
	Driver string `yaml:"driver"` // "fs" or "s3"

	// fs driver
	BasePath string `yaml:"base_path"`

	// s3 driver
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	KeyPrefix string `yaml:"key_prefix"`
	Endpoint  string `yaml:"endpoint"` // Optional, for S3-compatible stores
}

func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		JWKSURL:        getEnv("JWKS_URL", ""),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:    getTablePrefix(env),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		Blob: BlobConfig{
			Driver:    getEnv("BLOB_DRIVER", "fs"),
			BasePath:  getEnv("BLOB_FS_PATH", "uploads"),
			Bucket:    getEnv("BLOB_S3_BUCKET", ""),
			Region:    getEnv("BLOB_S3_REGION", ""),
			KeyPrefix: getEnv("BLOB_S3_PREFIX", ""),
			Endpoint:  getEnv("BLOB_S3_ENDPOINT", ""),
		},
	}

	// Optional YAML overlay for blob settings; env vars above act as defaults
	if path := os.Getenv("BLOB_CONFIG_FILE"); path != "" {
		if err := loadBlobFile(path, &cfg.Blob); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// loadBlobFile merges a YAML blob-store config file over cfg
func loadBlobFile(path string, cfg *BlobConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read blob config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse blob config: %w", err)
	}
	return nil
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
