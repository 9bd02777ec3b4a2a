package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/ecommerce/backend/internal/infrastructure/config"
)

var _ catalogapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage backs the blob-store port with a local directory. Upload
// URLs point at the local media endpoint; existence checks look at the
// filesystem, so the confirm flow behaves like the real thing in development.
type StubObjectStorage struct {
	dir     string
	baseURL string
}

// NewStubObjectStorage creates a filesystem-backed stub
func NewStubObjectStorage(cfg config.StorageConfig) (*StubObjectStorage, error) {
	dir := cfg.StubDir
	if dir == "" {
		dir = "./media"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:8080/media"
	}

	return &StubObjectStorage{dir: dir, baseURL: baseURL}, nil
}

func (s *StubObjectStorage) objectPath(storageKey string) string {
	return filepath.Join(s.dir, filepath.FromSlash(storageKey))
}

// GenerateUploadURL returns a local PUT URL for the key
func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	return s.baseURL + "/" + storageKey, time.Now().Add(expiresIn), nil
}

// GenerateDownloadURL returns a local GET URL for the key
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	return s.baseURL + "/" + storageKey, time.Now().Add(expiresIn), nil
}

// DeleteObject removes the backing file; a missing file is not an error
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	err := os.Remove(s.objectPath(storageKey))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ObjectExists reports whether the backing file has been written
func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	_, err := os.Stat(s.objectPath(storageKey))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Put writes object bytes directly; used by the local upload endpoint and in
// tests
func (s *StubObjectStorage) Put(_ context.Context, storageKey string, data []byte) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	path := s.objectPath(storageKey)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
