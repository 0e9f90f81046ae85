package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FSBlobStore stores blobs on the local filesystem. Keys are fanned out into
// two-character subdirectories so a single directory never accumulates every
// object. Writes go to a temp file first and are renamed into place, so a
// reader can never observe a partially written blob.
type FSBlobStore struct {
	basePath string
}

// NewFSBlobStore creates the base and temp directories if needed.
func NewFSBlobStore(basePath string) (*FSBlobStore, error) {
	if err := os.MkdirAll(filepath.Join(basePath, "tmp"), 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &FSBlobStore{basePath: basePath}, nil
}

// blobPath returns the fan-out path for a key: <base>/ab/abcdef...
func (s *FSBlobStore) blobPath(key string) string {
	fanout := key
	if len(key) >= 2 {
		fanout = key[:2]
	}
	return filepath.Join(s.basePath, fanout, key)
}

func (s *FSBlobStore) Put(ctx context.Context, key string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Join(s.basePath, "tmp"), "put-*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write blob %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp blob: %w", err)
	}

	dest := s.blobPath(key)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create blob subdirectory: %w", err)
	}

	// Atomic on the same filesystem; either the full blob exists or nothing
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("commit blob %q: %w", key, err)
	}

	return nil
}

func (s *FSBlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	f, err := os.Open(s.blobPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("open blob %q: %w", key, err)
	}
	return f, nil
}

func (s *FSBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, err := os.Stat(s.blobPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat blob %q: %w", key, err)
	}
	return true, nil
}

func (s *FSBlobStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	// Idempotent: Remove on a missing blob is not an error
	if err := os.Remove(s.blobPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}
	return nil
}

// validateKey rejects keys that could escape the base directory. Generated
// keys are UUID-based so this only trips on programming errors.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("blob key cannot be empty")
	}
	if key == "." || key == ".." || filepath.Base(key) != key {
		return fmt.Errorf("invalid blob key %q", key)
	}
	return nil
}
