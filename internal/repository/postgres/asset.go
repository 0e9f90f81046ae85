package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"pixelvault/internal/domain"
	"pixelvault/internal/domain/models"
	"pixelvault/internal/domain/repositories"
)

// PostgresAssetRepository implements the AssetRepository interface
type PostgresAssetRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(config *RepositoryConfig) repositories.AssetRepository {
	return &PostgresAssetRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new asset record
func (r *PostgresAssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, folder_id, name, storage_key, original_name, content_type, byte_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, r.tables.Assets)

	err := r.pool.QueryRow(ctx, query,
		asset.OwnerID,
		asset.FolderID,
		asset.Name,
		asset.StorageKey,
		asset.OriginalName,
		asset.ContentType,
		asset.ByteSize,
		asset.CreatedAt,
	).Scan(&asset.ID, &asset.CreatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			// The folder vanished between the service's check and the insert
			return fmt.Errorf("folder %s: %w", asset.FolderID, domain.ErrNotFound)
		}
		return fmt.Errorf("create asset: %w", err)
	}

	return nil
}

// GetByID retrieves an asset by ID, scoped to the owner
func (r *PostgresAssetRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Asset, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, folder_id, name, storage_key, original_name, content_type, byte_size, created_at
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Assets)

	var asset models.Asset
	err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&asset.ID,
		&asset.OwnerID,
		&asset.FolderID,
		&asset.Name,
		&asset.StorageKey,
		&asset.OriginalName,
		&asset.ContentType,
		&asset.ByteSize,
		&asset.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("asset %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}

	return &asset, nil
}

// Delete removes an asset record. The single-row DELETE is the atomic
// "asset no longer exists" signal the delete protocol relies on.
func (r *PostgresAssetRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Assets)

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("asset %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder retrieves assets in a folder, newest first
func (r *PostgresAssetRepository) ListByFolder(ctx context.Context, folderID, ownerID string) ([]models.Asset, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, folder_id, name, storage_key, original_name, content_type, byte_size, created_at
		FROM %s
		WHERE folder_id = $1 AND owner_id = $2
		ORDER BY created_at DESC
	`, r.tables.Assets)

	rows, err := r.pool.Query(ctx, query, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var asset models.Asset
		err := rows.Scan(
			&asset.ID,
			&asset.OwnerID,
			&asset.FolderID,
			&asset.Name,
			&asset.StorageKey,
			&asset.OriginalName,
			&asset.ContentType,
			&asset.ByteSize,
			&asset.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}

	return assets, nil
}

// CountByFolder counts assets in a folder
func (r *PostgresAssetRepository) CountByFolder(ctx context.Context, folderID, ownerID string) (int64, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE folder_id = $1 AND owner_id = $2
	`, r.tables.Assets)

	var count int64
	if err := r.pool.QueryRow(ctx, query, folderID, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count assets: %w", err)
	}

	return count, nil
}

// SearchByName performs a case-insensitive substring match on the display
// name, joining each row with its folder's materialized path for display.
func (r *PostgresAssetRepository) SearchByName(ctx context.Context, ownerID, query string) ([]models.Asset, error) {
	sql := fmt.Sprintf(`
		SELECT a.id, a.owner_id, a.folder_id, a.name, a.storage_key, a.original_name, a.content_type, a.byte_size, f.path, a.created_at
		FROM %s a
		JOIN %s f ON f.id = a.folder_id
		WHERE a.owner_id = $1 AND a.name ILIKE $2 ESCAPE '\'
		ORDER BY a.created_at DESC
	`, r.tables.Assets, r.tables.Folders)

	rows, err := r.pool.Query(ctx, sql, ownerID, "%"+escapeLike(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("search assets: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var asset models.Asset
		err := rows.Scan(
			&asset.ID,
			&asset.OwnerID,
			&asset.FolderID,
			&asset.Name,
			&asset.StorageKey,
			&asset.OriginalName,
			&asset.ContentType,
			&asset.ByteSize,
			&asset.FolderPath,
			&asset.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}

	return assets, nil
}

// escapeLike escapes LIKE metacharacters so user input matches literally
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
