// Package config loads gateway configuration from environment variables.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// StoreTimeout bounds every object-store round-trip.
const StoreTimeout = 30 * time.Second

// Config holds all runtime configuration for the gateway. It is built once
// at startup and passed into constructors; nothing mutates it afterwards.
type Config struct {
	Port string

	// Object storage (S3-compatible)
	StorageEndpoint  string
	StorageRegion    string
	StorageBucket    string
	StorageAccessKey string
	StorageSecretKey string
	StorageUseSSL    bool

	// Browser-facing base URL used when constructing object access URLs,
	// e.g. "https://storage.example.cloud/"
	StoragePublicBase string

	// Base URL of the external image AI service (segment/blur). Optional.
	ImageAIBaseURL string

	// Directory of built SPA assets. Optional; API-only mode when empty.
	StaticDir string
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageRegion:    getEnv("STORAGE_REGION", "us-east-1"),
		StorageBucket:    getEnv("STORAGE_BUCKET", "my-bucket"),
		StorageAccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		StorageUseSSL:    getEnv("STORAGE_USE_SSL", "true") == "true",
		ImageAIBaseURL:   os.Getenv("IMAGE_AI_BASE_URL"),
		StaticDir:        getEnv("STATIC_DIR", "dist"),
	}
	cfg.StoragePublicBase = getEnv("STORAGE_PUBLIC_BASE", cfg.defaultPublicBase())

	if cfg.StorageAccessKey == "" {
		return nil, fmt.Errorf("STORAGE_ACCESS_KEY is required")
	}
	if cfg.StorageSecretKey == "" {
		return nil, fmt.Errorf("STORAGE_SECRET_KEY is required")
	}
	if cfg.StorageBucket == "" {
		return nil, fmt.Errorf("STORAGE_BUCKET must not be empty")
	}

	return cfg, nil
}

// AccessURL constructs the browser-facing URL for a stored object key.
func (c *Config) AccessURL(key string) string {
	return c.StoragePublicBase + c.StorageBucket + "/" + key
}

func (c *Config) defaultPublicBase() string {
	scheme := "https"
	if !c.StorageUseSSL {
		scheme = "http"
	}
	return scheme + "://" + strings.TrimRight(c.StorageEndpoint, "/") + "/"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
