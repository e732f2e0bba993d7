package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/recipebox/config"
	"github.com/shashiranjanraj/recipebox/pkg/logger"
)

// Manager holds the configured disks.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

// NewManager returns an empty manager whose default disk is def.
func NewManager(def string) *Manager {
	return &Manager{disks: map[string]Disk{}, defaultDisk: def}
}

// Connect boots every disk the configuration describes. The local disk is
// always present; s3 and minio are added when their bucket or endpoint is set.
func Connect(ctx context.Context) (*Manager, error) {
	m := NewManager(config.StorageDisk())

	local, err := NewLocal(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return nil, err
	}
	m.Register("local", local)

	if config.StorageS3Bucket() != "" {
		d, err := NewS3(ctx, S3Config{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			URL:      config.StorageS3URL(),
		})
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err.Error())
		} else {
			m.Register("s3", d)
		}
	}

	if config.MinioEndpoint() != "" {
		d, err := NewMinio(ctx, MinioConfig{
			Endpoint: config.MinioEndpoint(),
			Key:      config.MinioKey(),
			Secret:   config.MinioSecret(),
			Bucket:   config.MinioBucket(),
			SSL:      config.MinioSSL(),
			URL:      config.MinioURL(),
		})
		if err != nil {
			logger.Warn("storage: minio disk disabled", "error", err.Error())
		} else {
			m.Register("minio", d)
		}
	}

	if _, err := m.Default(); err != nil {
		return nil, err
	}
	return m, nil
}

// Register adds or replaces a named disk.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	m.disks[name] = d
	m.mu.Unlock()
}

// Disk returns the named disk.
func (m *Manager) Disk(name string) (Disk, error) {
	m.mu.RLock()
	d, ok := m.disks[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the disk named by STORAGE_DISK.
func (m *Manager) Default() (Disk, error) {
	return m.Disk(m.defaultDisk)
}

// Local returns the local disk, if registered.
func (m *Manager) Local() (*LocalDisk, bool) {
	d, err := m.Disk("local")
	if err != nil {
		return nil, false
	}
	l, ok := d.(*LocalDisk)
	return l, ok
}
