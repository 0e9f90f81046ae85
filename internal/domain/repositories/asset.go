package repositories

import (
	"context"

	"pixelvault/internal/domain/models"
)

// AssetRepository defines data access operations for asset metadata.
// Owner-scoped like FolderRepository.
type AssetRepository interface {
	// Create inserts a new asset record
	Create(ctx context.Context, asset *models.Asset) error

	// GetByID retrieves an asset by ID, scoped to the owner
	GetByID(ctx context.Context, id, ownerID string) (*models.Asset, error)

	// Delete removes an asset record, scoped to the owner
	Delete(ctx context.Context, id, ownerID string) error

	// ListByFolder retrieves assets in a folder, newest first
	ListByFolder(ctx context.Context, folderID, ownerID string) ([]models.Asset, error)

	// CountByFolder counts assets in a folder
	CountByFolder(ctx context.Context, folderID, ownerID string) (int64, error)

	// SearchByName performs a case-insensitive substring match on the
	// display name, newest first, each row annotated with its folder path
	SearchByName(ctx context.Context, ownerID, query string) ([]models.Asset, error)
}
