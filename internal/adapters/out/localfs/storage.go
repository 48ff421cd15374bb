// Package localfs stores evidence files on the local filesystem. Suitable
// for single-node deployments; the returned path is relative to the
// configured base directory so the tree can be relocated.
package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cargo/internal/core/domain/model/kernel"
)

// Storage writes evidence blobs under a base directory, one subdirectory
// per purpose.
type Storage struct {
	baseDir string
}

// NewStorage creates the storage rooted at baseDir, creating it if needed.
func NewStorage(baseDir string) (*Storage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Storage{baseDir: baseDir}, nil
}

// Store writes the blob and returns its path relative to the base
// directory. The timestamp in the name keeps repeated uploads for the same
// owner from overwriting each other.
func (s *Storage) Store(ctx context.Context, ownerID kernel.UUID, purpose string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.baseDir, purpose)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create purpose directory: %w", err)
	}

	name := fmt.Sprintf("%s-%d.bin", ownerID.String(), time.Now().UTC().UnixNano())
	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("write evidence file: %w", err)
	}

	return filepath.Join(purpose, name), nil
}
