package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage is the object-store abstraction behind the image pipeline.
type Storage interface {
	// Save stores an object at the given path.
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves an object.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes one object.
	Delete(ctx context.Context, path string) error

	// DeleteAll removes every object under the given prefix and
	// returns the removed paths.
	DeleteAll(ctx context.Context, prefix string) ([]string, error)

	// Exists checks whether an object is present.
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns the stable public URL of an object.
	GetURL(ctx context.Context, path string) (string, error)

	// GetSize returns an object's size in bytes.
	GetSize(ctx context.Context, path string) (int64, error)
}

// Config holds storage configuration.
type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string // For local storage
	BaseURL    string // Public URL base
	Bucket     string // For S3/R2
	Region     string // For S3
	AccessKey  string // For S3/R2
	SecretKey  string // For S3/R2
	Endpoint   string // For R2 or custom S3
	UseSSL     bool   // For S3/R2
	PublicRead bool   // Make objects public by default
}

// NewStorage creates a storage instance based on configuration.
// Cloudflare R2 is S3-compatible and shares the S3 implementation.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
