package services

import (
	"context"
	"io"

	"pixelvault/internal/domain/models"
)

// AssetService coordinates asset metadata with the blob store. Upload and
// delete are two-phase: the blob store and the metadata store are not
// jointly transactional, so ordering plus compensating actions stand in for
// a distributed transaction.
type AssetService interface {
	// UploadAsset writes the content to the blob store, then commits the
	// metadata record. A failed commit triggers a compensating blob delete.
	UploadAsset(ctx context.Context, req *UploadAssetRequest) (*models.Asset, error)

	// DeleteAsset removes the metadata record first, then best-effort
	// deletes the blob
	DeleteAsset(ctx context.Context, ownerID, assetID string) error

	// ListAssets retrieves all assets in a folder, newest first
	ListAssets(ctx context.Context, ownerID, folderID string) ([]models.Asset, error)

	// OpenAsset returns the asset record and a reader over its content.
	// The caller must close the reader.
	OpenAsset(ctx context.Context, ownerID, assetID string) (*models.Asset, io.ReadCloser, error)
}

// UploadAssetRequest represents an asset upload request
type UploadAssetRequest struct {
	OwnerID      string    // Set by handler from auth context
	FolderID     string    // Destination folder (required)
	Name         string    // Display name; falls back to OriginalName when empty
	Content      io.Reader // Binary content, at most ByteSize bytes
	OriginalName string    // Client-side filename
	ContentType  string    // Declared MIME type
	ByteSize     int64     // Content length as declared by the client
}
