package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // For local storage
		BaseURL    string `yaml:"base_url"`    // Public URL base
		Bucket     string `yaml:"bucket"`      // For S3/R2
		Region     string `yaml:"region"`      // For S3
		AccessKey  string `yaml:"access_key"`  // For S3/R2
		SecretKey  string `yaml:"secret_key"`  // For S3/R2
		Endpoint   string `yaml:"endpoint"`    // For R2 or custom S3
		UseSSL     bool   `yaml:"use_ssl"`     // For S3/R2
		PublicRead bool   `yaml:"public_read"` // Make files public
	} `yaml:"storage"`

	Ingest struct {
		ChunkSize         int   `yaml:"chunk_size"`          // listings processed concurrently
		FetchTimeoutSecs  int   `yaml:"fetch_timeout_secs"`  // per remote image
		MaxImageBytes     int64 `yaml:"max_image_bytes"`     // per remote image
		MaxImageDimension int   `yaml:"max_image_dimension"` // bounding box side
		JPEGQuality       int   `yaml:"jpeg_quality"`        // 1-100
	} `yaml:"ingest"`
}

// Load reads configuration from CONFIG_PATH (default config/config.yaml),
// or from environment variables when DATABASE_URL is set (test mode).
// The returned Config is handed down explicitly; no package-level state.
func Load() (*Config, error) {
	var cfg Config

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.DSN = dbURL
		cfg.Server.Env = os.Getenv("SERVER_ENV")
		cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.JWT.TTL = 60

		cfg.Storage.Type = "local"
		cfg.Storage.BasePath = "./uploads"
		cfg.Storage.BaseURL = "/api/v1/files"
		cfg.Storage.PublicRead = true

		applyIngestDefaults(&cfg)
		return &cfg, nil
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("open config file %s: %w", configPath, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
	}

	applyIngestDefaults(&cfg)
	return &cfg, nil
}

// Ingestion limits mirror what the upstream feeds were promised:
// chunks of 5, 30s and 50MB per remote image, 2048px JPEG at q80.
func applyIngestDefaults(cfg *Config) {
	if cfg.Ingest.ChunkSize <= 0 {
		cfg.Ingest.ChunkSize = 5
	}
	if cfg.Ingest.FetchTimeoutSecs <= 0 {
		cfg.Ingest.FetchTimeoutSecs = 30
	}
	if cfg.Ingest.MaxImageBytes <= 0 {
		cfg.Ingest.MaxImageBytes = 50 * 1024 * 1024
	}
	if cfg.Ingest.MaxImageDimension <= 0 {
		cfg.Ingest.MaxImageDimension = 2048
	}
	if cfg.Ingest.JPEGQuality <= 0 || cfg.Ingest.JPEGQuality > 100 {
		cfg.Ingest.JPEGQuality = 80
	}
}

// FetchTimeout returns the per-image fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Ingest.FetchTimeoutSecs) * time.Second
}
