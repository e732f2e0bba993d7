// Package storage abstracts where uploaded files live.
//
// Three drivers are available:
//   - "local" – a directory on disk, served by the kernel under /storage
//   - "s3"    – AWS S3 or any S3-compatible endpoint (aws-sdk-go-v2)
//   - "minio" – a MinIO server (minio-go)
//
// Boot once with Connect and pick a disk by name, or use the configured
// default:
//
//	disks, err := storage.Connect(ctx)
//	disk, err := disks.Default()
//	err = disk.Put(ctx, "uploads/recipe/x.jpg", data, "image/jpeg")
package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Get for a missing path.
var ErrNotExist = errors.New("storage: file does not exist")

// Disk is the driver interface. Paths are slash separated and relative to
// the disk root.
type Disk interface {
	// Put writes content to path, replacing any existing file.
	Put(ctx context.Context, path string, content []byte, contentType string) error

	// Get returns the full content at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file is stored at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes path. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
