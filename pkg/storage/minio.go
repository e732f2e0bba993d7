package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig configures the minio driver.
type MinioConfig struct {
	Endpoint string
	Key      string
	Secret   string
	Bucket   string
	SSL      bool
	URL      string
}

type minioDisk struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinio connects to a MinIO server and creates the bucket if it is missing.
func NewMinio(ctx context.Context, c MinioConfig) (Disk, error) {
	client, err := minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.Key, c.Secret, ""),
		Secure: c.SSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage/minio: client: %w", err)
	}

	exists, err := client.BucketExists(ctx, c.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage/minio: bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, c.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage/minio: make bucket: %w", err)
		}
	}

	baseURL := strings.TrimRight(c.URL, "/")
	if baseURL == "" {
		scheme := "http"
		if c.SSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, c.Endpoint, c.Bucket)
	}

	return &minioDisk{client: client, bucket: c.Bucket, baseURL: baseURL}, nil
}

func (d *minioDisk) Put(ctx context.Context, path string, content []byte, contentType string) error {
	_, err := d.client.PutObject(ctx, d.bucket, path, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("storage/minio: put %s: %w", path, err)
	}
	return nil
}

func (d *minioDisk) Get(ctx context.Context, path string) ([]byte, error) {
	obj, err := d.client.GetObject(ctx, d.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage/minio: get %s: %w", path, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("storage/minio: read %s: %w", path, err)
	}
	return data, nil
}

func (d *minioDisk) Exists(ctx context.Context, path string) (bool, error) {
	_, err := d.client.StatObject(ctx, d.bucket, path, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, fmt.Errorf("storage/minio: stat %s: %w", path, err)
}

func (d *minioDisk) Delete(ctx context.Context, path string) error {
	if err := d.client.RemoveObject(ctx, d.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage/minio: delete %s: %w", path, err)
	}
	return nil
}

func (d *minioDisk) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(path, "/")
}
