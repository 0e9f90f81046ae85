package services

import (
	"context"

	"pixelvault/internal/domain/models"
)

// FolderService handles folder hierarchy business logic
type FolderService interface {
	// CreateFolder creates a new folder with its materialized path
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes a folder; refuses when it still has contents
	DeleteFolder(ctx context.Context, ownerID, folderID string) error

	// ListFolders retrieves all of an owner's folders sorted by path, so a
	// consumer can rebuild the tree by grouping children under parents
	ListFolders(ctx context.Context, ownerID string) ([]models.Folder, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	OwnerID  string  `json:"-"` // Set by handler from auth context, not from request body
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // null for root
}
