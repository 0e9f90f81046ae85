package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"pixelvault/internal/domain"
	"pixelvault/internal/domain/models"
	"pixelvault/internal/storage"
)

// fakeFolderRepo is an in-memory FolderRepository mirroring the store-level
// behavior the services depend on: owner scoping and the sibling unique
// constraint.
type fakeFolderRepo struct {
	mu      sync.Mutex
	folders map[string]*models.Folder
	seq     int
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.folders {
		if existing.OwnerID == folder.OwnerID &&
			samePointerValue(existing.ParentID, folder.ParentID) &&
			existing.Name == folder.Name {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
				ResourceID:   existing.ID,
			}
		}
	}

	r.seq++
	folder.ID = fmt.Sprintf("folder-%d", r.seq)
	saved := *folder
	r.folders[folder.ID] = &saved
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, id, ownerID string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	folder, ok := r.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	copied := *folder
	return &copied, nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	folder, ok := r.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(r.folders, id)
	return nil
}

func (r *fakeFolderRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var folders []models.Folder
	for _, folder := range r.folders {
		if folder.OwnerID == ownerID {
			folders = append(folders, *folder)
		}
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Path < folders[j].Path })
	return folders, nil
}

func (r *fakeFolderRepo) CountChildren(_ context.Context, folderID, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, folder := range r.folders {
		if folder.OwnerID == ownerID && folder.ParentID != nil && *folder.ParentID == folderID {
			count++
		}
	}
	return count, nil
}

func samePointerValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// fakeAssetRepo is an in-memory AssetRepository. createErr injects a
// phase-2 (metadata commit) failure into the upload protocol.
type fakeAssetRepo struct {
	mu        sync.Mutex
	assets    map[string]*models.Asset
	folders   *fakeFolderRepo
	seq       int
	createErr error
}

func newFakeAssetRepo(folders *fakeFolderRepo) *fakeAssetRepo {
	return &fakeAssetRepo{assets: make(map[string]*models.Asset), folders: folders}
}

func (r *fakeAssetRepo) Create(_ context.Context, asset *models.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}

	r.seq++
	asset.ID = fmt.Sprintf("asset-%d", r.seq)
	saved := *asset
	r.assets[asset.ID] = &saved
	return nil
}

func (r *fakeAssetRepo) GetByID(_ context.Context, id, ownerID string) (*models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	asset, ok := r.assets[id]
	if !ok || asset.OwnerID != ownerID {
		return nil, fmt.Errorf("asset %s: %w", id, domain.ErrNotFound)
	}
	copied := *asset
	return &copied, nil
}

func (r *fakeAssetRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	asset, ok := r.assets[id]
	if !ok || asset.OwnerID != ownerID {
		return fmt.Errorf("asset %s: %w", id, domain.ErrNotFound)
	}
	delete(r.assets, id)
	return nil
}

func (r *fakeAssetRepo) ListByFolder(_ context.Context, folderID, ownerID string) ([]models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var assets []models.Asset
	for _, asset := range r.assets {
		if asset.OwnerID == ownerID && asset.FolderID == folderID {
			assets = append(assets, *asset)
		}
	}
	sortNewestFirst(assets)
	return assets, nil
}

func (r *fakeAssetRepo) CountByFolder(_ context.Context, folderID, ownerID string) (int64, error) {
	assets, _ := r.ListByFolder(context.Background(), folderID, ownerID)
	return int64(len(assets)), nil
}

func (r *fakeAssetRepo) SearchByName(_ context.Context, ownerID, query string) ([]models.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var assets []models.Asset
	for _, asset := range r.assets {
		if asset.OwnerID != ownerID || !containsFold(asset.Name, query) {
			continue
		}
		copied := *asset
		if folder, ok := r.folders.folders[asset.FolderID]; ok {
			copied.FolderPath = folder.Path
		}
		assets = append(assets, copied)
	}
	sortNewestFirst(assets)
	return assets, nil
}

func sortNewestFirst(assets []models.Asset) {
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].CreatedAt.After(assets[j].CreatedAt)
	})
}

func containsFold(name, query string) bool {
	return bytes.Contains(bytes.ToLower([]byte(name)), bytes.ToLower([]byte(query)))
}

// fakeBlobStore is an in-memory BlobStore with failure injection for both
// phases of the upload/delete protocols.
type fakeBlobStore struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	putErr    error
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (s *fakeBlobStore) Put(_ context.Context, key string, r io.Reader) error {
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return nil
}

func (s *fakeBlobStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, storage.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeBlobStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[key]
	return ok, nil
}

func (s *fakeBlobStore) Delete(_ context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func (s *fakeBlobStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
