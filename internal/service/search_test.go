package service

import (
	"context"
	"testing"
	"time"

	"pixelvault/internal/domain/models"
	"pixelvault/internal/domain/services"
)

type searchFixture struct {
	svc        services.SearchService
	folderSvc  services.FolderService
	folderRepo *fakeFolderRepo
	assetRepo  *fakeAssetRepo
}

func newSearchFixture() *searchFixture {
	folderRepo := newFakeFolderRepo()
	assetRepo := newFakeAssetRepo(folderRepo)
	return &searchFixture{
		svc:        NewSearchService(assetRepo, testLogger()),
		folderSvc:  NewFolderService(folderRepo, assetRepo, testLogger()),
		folderRepo: folderRepo,
		assetRepo:  assetRepo,
	}
}

func (fx *searchFixture) seedAsset(t *testing.T, ownerID, folderID, name string, createdAt time.Time) {
	t.Helper()
	err := fx.assetRepo.Create(context.Background(), &models.Asset{
		OwnerID:   ownerID,
		FolderID:  folderID,
		Name:      name,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seed asset %s: %v", name, err)
	}
}

func TestSearchAssets_BlankQueryReturnsEmpty(t *testing.T) {
	fx := newSearchFixture()

	folder := mustCreateFolder(t, fx.folderSvc, "owner-a", "Photos", nil)
	fx.seedAsset(t, "owner-a", folder.ID, "cat.jpg", time.Now())

	for _, query := range []string{"", "   ", "\t\n"} {
		results, err := fx.svc.SearchAssets(context.Background(), "owner-a", query)
		if err != nil {
			t.Fatalf("SearchAssets(%q) failed: %v", query, err)
		}
		if results == nil {
			t.Errorf("SearchAssets(%q) returned nil, want empty slice", query)
		}
		if len(results) != 0 {
			t.Errorf("SearchAssets(%q) returned %d results, want 0", query, len(results))
		}
	}
}

func TestSearchAssets_CaseInsensitiveSubstring(t *testing.T) {
	fx := newSearchFixture()
	ctx := context.Background()

	folder := mustCreateFolder(t, fx.folderSvc, "owner-a", "Photos", nil)
	now := time.Now()
	fx.seedAsset(t, "owner-a", folder.ID, "Catalog.png", now)
	fx.seedAsset(t, "owner-a", folder.ID, "my-CAT.jpg", now.Add(time.Second))
	fx.seedAsset(t, "owner-a", folder.ID, "dog.jpg", now)

	results, err := fx.svc.SearchAssets(ctx, "owner-a", "cat")
	if err != nil {
		t.Fatalf("SearchAssets failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Name == "dog.jpg" {
			t.Errorf("dog.jpg should not match %q", "cat")
		}
	}
}

func TestSearchAssets_OwnerIsolation(t *testing.T) {
	fx := newSearchFixture()

	mine := mustCreateFolder(t, fx.folderSvc, "owner-a", "Photos", nil)
	theirs := mustCreateFolder(t, fx.folderSvc, "owner-b", "Photos", nil)
	fx.seedAsset(t, "owner-a", mine.ID, "cat.jpg", time.Now())
	fx.seedAsset(t, "owner-b", theirs.ID, "cat.jpg", time.Now())

	results, err := fx.svc.SearchAssets(context.Background(), "owner-a", "cat")
	if err != nil {
		t.Fatalf("SearchAssets failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].OwnerID != "owner-a" {
		t.Errorf("result owned by %q, want owner-a", results[0].OwnerID)
	}
}

func TestSearchAssets_NewestFirstWithFolderPath(t *testing.T) {
	fx := newSearchFixture()
	ctx := context.Background()

	photos := mustCreateFolder(t, fx.folderSvc, "owner-a", "Photos", nil)
	trips := mustCreateFolder(t, fx.folderSvc, "owner-a", "Trips", &photos.ID)

	now := time.Now()
	fx.seedAsset(t, "owner-a", photos.ID, "cat-old.jpg", now.Add(-time.Hour))
	fx.seedAsset(t, "owner-a", trips.ID, "cat-new.jpg", now)

	results, err := fx.svc.SearchAssets(ctx, "owner-a", "cat")
	if err != nil {
		t.Fatalf("SearchAssets failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "cat-new.jpg" {
		t.Errorf("first result = %q, want the newest match", results[0].Name)
	}
	if results[0].FolderPath != "Photos/Trips" {
		t.Errorf("FolderPath = %q, want Photos/Trips", results[0].FolderPath)
	}
	if results[1].FolderPath != "Photos" {
		t.Errorf("FolderPath = %q, want Photos", results[1].FolderPath)
	}
}

func TestSearchAssets_NoMatches(t *testing.T) {
	fx := newSearchFixture()

	folder := mustCreateFolder(t, fx.folderSvc, "owner-a", "Photos", nil)
	fx.seedAsset(t, "owner-a", folder.ID, "dog.jpg", time.Now())

	results, err := fx.svc.SearchAssets(context.Background(), "owner-a", "cat")
	if err != nil {
		t.Fatalf("SearchAssets failed: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("results = %v, want empty non-nil slice", results)
	}
}
