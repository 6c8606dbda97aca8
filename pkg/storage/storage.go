package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Object is what a provider hands back after a successful upload. Key is the
// provider-specific handle passed to Delete.
type Object struct {
	URL  string
	Key  string
	Size int64
}

// FileStorage is the contract for binary card attachments.
type FileStorage interface {
	Upload(ctx context.Context, r io.Reader, size int64, folder, fileName, contentType string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

type Config struct {
	Provider string // cloudinary, minio or none

	CloudinaryURL    string
	CloudinaryFolder string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseTLS    bool
	MinioPublicURL string
}

// New returns nil, nil when no provider is configured; callers treat a nil
// FileStorage as "uploads disabled".
func New(ctx context.Context, cfg Config) (FileStorage, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		return nil, nil
	case "cloudinary":
		return NewCloudinaryStorage(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	case "minio":
		return NewMinioStorage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// objectName builds folder/<unix-nano>-<uuid>-<base name>.
func objectName(folder, fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	name := fmt.Sprintf("%d-%s-%s", time.Now().UnixNano(), uuid.NewString()[:8], base)
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}
