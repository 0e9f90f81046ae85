package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"pixelvault/internal/config"
	"pixelvault/internal/domain"
	"pixelvault/internal/domain/models"
	"pixelvault/internal/domain/repositories"
	"pixelvault/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo repositories.FolderRepository
	assetRepo  repositories.AssetRepository
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	assetRepo repositories.AssetRepository,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		assetRepo:  assetRepo,
		logger:     logger,
	}
}

// CreateFolder creates a new folder. The materialized path is derived from
// the parent at creation time and never edited afterwards; sibling-name
// uniqueness is left to the store's unique constraint so concurrent creates
// cannot both win.
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	path := req.Name
	if req.ParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.OwnerID)
		if err != nil {
			return nil, err
		}
		path = parent.ChildPath(req.Name)
	}

	folder := &models.Folder{
		OwnerID:   req.OwnerID,
		ParentID:  req.ParentID,
		Name:      req.Name,
		Path:      path,
		CreatedAt: time.Now(),
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// DeleteFolder deletes a folder once it holds no child folders and no
// assets. Deletion is refused rather than cascaded; the caller must empty
// the folder first. The emptiness check and the delete are separate store
// calls, so a concurrent insert may slip between them; that race is
// accepted and the insert's own atomicity keeps each row consistent.
func (s *folderService) DeleteFolder(ctx context.Context, ownerID, folderID string) error {
	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return err
	}

	childCount, err := s.folderRepo.CountChildren(ctx, folderID, ownerID)
	if err != nil {
		return fmt.Errorf("check child folders: %w", err)
	}
	assetCount, err := s.assetRepo.CountByFolder(ctx, folderID, ownerID)
	if err != nil {
		return fmt.Errorf("check folder assets: %w", err)
	}
	if childCount > 0 || assetCount > 0 {
		return fmt.Errorf("folder %q has %d folders and %d assets: %w",
			folder.Name, childCount, assetCount, domain.ErrNotEmpty)
	}

	if err := s.folderRepo.Delete(ctx, folderID, ownerID); err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"name", folder.Name,
		"path", folder.Path,
	)

	return nil
}

// ListFolders retrieves all of an owner's folders sorted by path
func (s *folderService) ListFolders(ctx context.Context, ownerID string) ([]models.Folder, error) {
	folders, err := s.folderRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	return folders, nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}
