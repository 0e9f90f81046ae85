// Package storage provides the blob store the asset service writes image
// content to. The store is not transactional with the metadata database;
// consistency between the two is the asset service's job.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound is returned by Open when no object exists under the key.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is a key-addressed byte store.
type BlobStore interface {
	// Put writes the reader's content under key, replacing any existing
	// object. A failed Put must not leave a readable partial object.
	Put(ctx context.Context, key string, r io.Reader) error

	// Open returns a reader over the object's content. The caller must
	// close it. Returns ErrBlobNotFound when the key has no object.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether an object is stored under key
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the object under key. Deleting a nonexistent key is
	// not an error, so compensating deletes can be retried blindly.
	Delete(ctx context.Context, key string) error
}
