package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"pixelvault/internal/config"
	"pixelvault/internal/domain"
	"pixelvault/internal/domain/models"
	"pixelvault/internal/domain/repositories"
	"pixelvault/internal/domain/services"
	"pixelvault/internal/storage"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type assetService struct {
	assetRepo      repositories.AssetRepository
	folderRepo     repositories.FolderRepository
	blobs          storage.BlobStore
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewAssetService creates a new asset service
func NewAssetService(
	assetRepo repositories.AssetRepository,
	folderRepo repositories.FolderRepository,
	blobs storage.BlobStore,
	maxUploadBytes int64,
	logger *slog.Logger,
) services.AssetService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = config.DefaultMaxUploadBytes
	}
	return &assetService{
		assetRepo:      assetRepo,
		folderRepo:     folderRepo,
		blobs:          blobs,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadAsset runs the two-phase upload: blob write first, metadata commit
// second. The stores share no transaction, so ordering plus a compensating
// delete is what keeps them consistent:
//
//   - phase 1 fails: nothing was committed anywhere, state unchanged
//   - phase 2 fails: the just-written blob is deleted; if that delete also
//     fails, the orphan is logged for out-of-band reclamation and the
//     caller still sees the upload as failed
func (s *assetService) UploadAsset(ctx context.Context, req *services.UploadAssetRequest) (*models.Asset, error) {
	if req.Name == "" {
		req.Name = req.OriginalName
	}

	if err := s.validateUploadRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, req.FolderID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	// Phase 1: write content to the blob store under a fresh key
	storageKey := newStorageKey(req.OriginalName)
	if err := s.blobs.Put(ctx, storageKey, io.LimitReader(req.Content, req.ByteSize)); err != nil {
		s.logger.Error("blob write failed",
			"storage_key", storageKey,
			"folder_id", req.FolderID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}

	// Phase 2: commit the metadata record
	asset := &models.Asset{
		OwnerID:      req.OwnerID,
		FolderID:     folder.ID,
		Name:         req.Name,
		StorageKey:   storageKey,
		OriginalName: req.OriginalName,
		ContentType:  req.ContentType,
		ByteSize:     req.ByteSize,
		CreatedAt:    time.Now(),
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		// Compensate: remove the blob so no orphan outlives the failure
		if delErr := s.blobs.Delete(ctx, storageKey); delErr != nil {
			s.logger.Error("reconciliation needed: orphaned blob after failed metadata commit",
				"storage_key", storageKey,
				"delete_error", delErr,
				"commit_error", err,
			)
		}
		return nil, err
	}

	asset.FolderPath = folder.Path

	s.logger.Info("asset uploaded",
		"id", asset.ID,
		"name", asset.Name,
		"storage_key", asset.StorageKey,
		"byte_size", asset.ByteSize,
		"folder_path", folder.Path,
	)

	return asset, nil
}

// DeleteAsset removes the metadata record first, then best-effort deletes
// the blob. The metadata delete is the authoritative signal: once it lands
// the operation has succeeded, and a crash or blob-store failure afterwards
// leaves at worst an orphaned blob, never a live record pointing at nothing.
func (s *assetService) DeleteAsset(ctx context.Context, ownerID, assetID string) error {
	asset, err := s.assetRepo.GetByID(ctx, assetID, ownerID)
	if err != nil {
		return err
	}

	if err := s.assetRepo.Delete(ctx, assetID, ownerID); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, asset.StorageKey); err != nil {
		s.logger.Warn("blob delete failed, orphan left for reclamation",
			"asset_id", assetID,
			"storage_key", asset.StorageKey,
			"error", err,
		)
	}

	s.logger.Info("asset deleted",
		"id", assetID,
		"name", asset.Name,
		"storage_key", asset.StorageKey,
	)

	return nil
}

// ListAssets retrieves all assets in a folder, newest first
func (s *assetService) ListAssets(ctx context.Context, ownerID, folderID string) ([]models.Asset, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.ListByFolder(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	for i := range assets {
		assets[i].FolderPath = folder.Path
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	return assets, nil
}

// OpenAsset returns the asset record and a reader over its blob content
func (s *assetService) OpenAsset(ctx context.Context, ownerID, assetID string) (*models.Asset, io.ReadCloser, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID, ownerID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Open(ctx, asset.StorageKey)
	if err != nil {
		if err == storage.ErrBlobNotFound {
			// A live record should always have a blob; treat the hole as
			// missing content rather than leaking an internal error
			s.logger.Error("asset blob missing",
				"asset_id", assetID,
				"storage_key", asset.StorageKey,
			)
			return nil, nil, fmt.Errorf("asset %s content: %w", assetID, domain.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("open asset content: %w", err)
	}

	return asset, rc, nil
}

// validateUploadRequest validates an asset upload request
func (s *assetService) validateUploadRequest(req *services.UploadAssetRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxAssetNameLength)),
		validation.Field(&req.ContentType, validation.Required),
	); err != nil {
		return err
	}

	if req.Content == nil {
		return fmt.Errorf("no content provided")
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return fmt.Errorf("content type %q is not an image", req.ContentType)
	}
	if req.ByteSize <= 0 {
		return fmt.Errorf("content is empty")
	}
	if req.ByteSize > s.maxUploadBytes {
		return fmt.Errorf("content exceeds the %d byte limit", s.maxUploadBytes)
	}

	return nil
}

// newStorageKey generates a collision-resistant blob key, keeping the
// original extension so stored objects stay inspectable.
func newStorageKey(originalName string) string {
	key := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(originalName))
	// Only keep simple extensions; anything odd is dropped rather than
	// smuggled into the key
	if ext != "" && len(ext) <= 8 && filepath.Base(ext) == ext {
		key += ext
	}
	return key
}
