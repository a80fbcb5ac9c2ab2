package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"intake-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// Loader reads one raw source document.
type Loader interface {
	Load(ctx context.Context) ([]byte, error)
	// Name identifies the document in logs and errors.
	Name() string
}

// FileLoader reads a document from the local filesystem.
type FileLoader struct {
	Path string
}

// Load reads the whole file.
func (l FileLoader) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.Path, err)
	}
	return data, nil
}

// Name returns the file path.
func (l FileLoader) Name() string { return l.Path }

// StorageLoader reads a document from an object storage bucket.
type StorageLoader struct {
	Client storage.Client
	Bucket string
	Object string
}

// Load downloads the whole object.
func (l StorageLoader) Load(ctx context.Context) ([]byte, error) {
	obj, err := l.Client.GetObject(ctx, l.Bucket, l.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", l.Name(), err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", l.Name(), err)
	}
	return data, nil
}

// Name returns bucket/object.
func (l StorageLoader) Name() string { return l.Bucket + "/" + l.Object }

// NewLoaders builds the primary and secondary loaders for the configured location.
func NewLoaders(cfg Config, client storage.Client, bucket string) (primary, secondary Loader, err error) {
	switch cfg.Location {
	case LocationFile, "":
		return FileLoader{Path: cfg.PrimaryPath}, FileLoader{Path: cfg.SecondaryPath}, nil
	case LocationStorage:
		if client == nil {
			return nil, nil, fmt.Errorf("source location %q requires a storage client", cfg.Location)
		}
		return StorageLoader{Client: client, Bucket: bucket, Object: cfg.PrimaryPath},
			StorageLoader{Client: client, Bucket: bucket, Object: cfg.SecondaryPath}, nil
	default:
		return nil, nil, fmt.Errorf("unknown source location %q", cfg.Location)
	}
}
