package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadStore persists uploaded files and returns the stored path
type UploadStore interface {
	Save(data []byte, filename string) (string, error)
}

// LocalUploadStore writes uploads to a directory on local disk
type LocalUploadStore struct {
	dir string
}

// NewLocalUploadStore creates the upload directory if needed
func NewLocalUploadStore(dir string) (*LocalUploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalUploadStore{dir: dir}, nil
}

// Save writes data under a random name, keeping the original extension
func (s *LocalUploadStore) Save(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return path, nil
}

// Ensure LocalUploadStore implements UploadStore
var _ UploadStore = (*LocalUploadStore)(nil)
