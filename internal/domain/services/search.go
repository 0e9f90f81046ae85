package services

import (
	"context"

	"pixelvault/internal/domain/models"
)

// SearchService is the read-only query surface over asset metadata
type SearchService interface {
	// SearchAssets matches query as a case-insensitive substring of each
	// asset name, scoped to the owner, newest first. A blank query returns
	// an empty result rather than all assets.
	SearchAssets(ctx context.Context, ownerID, query string) ([]models.Asset, error)
}
