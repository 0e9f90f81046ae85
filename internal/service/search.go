package service

import (
	"context"
	"log/slog"
	"strings"

	"pixelvault/internal/domain/models"
	"pixelvault/internal/domain/repositories"
	"pixelvault/internal/domain/services"
)

type searchService struct {
	assetRepo repositories.AssetRepository
	logger    *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(assetRepo repositories.AssetRepository, logger *slog.Logger) services.SearchService {
	return &searchService{
		assetRepo: assetRepo,
		logger:    logger,
	}
}

// SearchAssets matches query as a case-insensitive substring of asset names,
// newest first. A blank query returns an empty result rather than scanning
// the owner's whole library.
func (s *searchService) SearchAssets(ctx context.Context, ownerID, query string) ([]models.Asset, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Asset{}, nil
	}

	assets, err := s.assetRepo.SearchByName(ctx, ownerID, query)
	if err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	s.logger.Debug("asset search",
		"query", query,
		"results", len(assets),
	)

	return assets, nil
}
