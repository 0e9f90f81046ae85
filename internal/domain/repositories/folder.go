package repositories

import (
	"context"

	"pixelvault/internal/domain/models"
)

// FolderRepository defines data access operations for folders. Every method
// is owner-scoped: a row belonging to a different owner is reported as not
// found, never as forbidden.
type FolderRepository interface {
	// Create inserts a new folder. A sibling with the same name under the
	// same (owner, parent) must surface as a conflict, enforced by the
	// store's unique constraint rather than a check-then-insert.
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID, scoped to the owner
	GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error)

	// Delete removes a folder row, scoped to the owner
	Delete(ctx context.Context, id, ownerID string) error

	// ListByOwner retrieves all folders for an owner sorted by path
	ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)

	// CountChildren counts immediate child folders
	CountChildren(ctx context.Context, folderID, ownerID string) (int64, error)
}
