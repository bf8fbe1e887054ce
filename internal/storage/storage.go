package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrObjectNotFound is returned by Open when the handle points at nothing.
var ErrObjectNotFound = errors.New("storage: object not found")

// Storage is the managed-file tier. Handles returned by Save are opaque to callers
// and are what gets persisted in the <slot>_file columns.
type Storage interface {
	// Save stores the payload under a key derived from key and returns its handle
	Save(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// GetURL returns the public URL for a handle
	GetURL(ctx context.Context, handle string) (string, error)

	// Exists reports whether the handle still points at an object
	Exists(ctx context.Context, handle string) (bool, error)

	// Delete removes the object; deleting a missing object is not an error
	Delete(ctx context.Context, handle string) error

	// Open streams the object back
	Open(ctx context.Context, handle string) (io.ReadCloser, error)
}

// Config holds storage configuration
type Config struct {
	Type       string // local, s3, cloudflare_r2, gcs, memory
	BasePath   string // For local storage
	BaseURL    string // Public URL base
	Bucket     string // For S3/R2/GCS
	Region     string // For S3
	AccessKey  string // For S3/R2
	SecretKey  string // For S3/R2
	Endpoint   string // For R2, custom S3 or the GCS emulator
	UseSSL     bool   // For S3/R2
	PublicRead bool   // Make files public by default
	// CredentialsFile points at a GCS service account JSON
	CredentialsFile string
}

// NewStorage creates a new storage instance based on configuration.
// An empty type disables the managed-file tier and returns (nil, nil).
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "":
		return nil, nil
	case "local":
		return NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		return NewS3Storage(cfg)
	case "gcs":
		return NewGCSStorage(context.Background(), cfg)
	case "memory":
		return NewMemoryStorage(cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// ObjectKey builds a collision-free key "<dir>/<8 hex>_<filename>".
func ObjectKey(dir, filename string) string {
	name := sanitizeFilename(filename)
	prefix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return path.Join(strings.Trim(dir, "/"), prefix+"_"+name)
}

func sanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 || name == "." || name == "/" {
		return "file"
	}
	return b.String()
}

func joinURL(base, handle string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(handle, "/")
}
