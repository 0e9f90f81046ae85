package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"pixelvault/internal/auth"
	"pixelvault/internal/config"
	"pixelvault/internal/handler"
	"pixelvault/internal/middleware"
	"pixelvault/internal/repository/postgres"
	"pixelvault/internal/service"
	"pixelvault/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"blob_driver", cfg.Blob.Driver,
	)

	verifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}
	defer verifier.Close()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	blobs, err := newBlobStore(ctx, cfg.Blob)
	if err != nil {
		log.Fatalf("Failed to create blob store: %v", err)
	}

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	assetRepo := postgres.NewAssetRepository(repoConfig)

	// Services
	folderService := service.NewFolderService(folderRepo, assetRepo, logger)
	assetService := service.NewAssetService(assetRepo, folderRepo, blobs, cfg.MaxUploadBytes, logger)
	searchService := service.NewSearchService(assetRepo, logger)

	// Handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	assetHandler := handler.NewAssetHandler(assetService, searchService, cfg.MaxUploadBytes, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ method patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("GET /api/folders/{id}/assets", assetHandler.ListAssets)

	// Asset routes
	mux.HandleFunc("POST /api/assets", assetHandler.UploadAsset)
	mux.HandleFunc("GET /api/assets/search", assetHandler.SearchAssets) // Must come before {id} routes
	mux.HandleFunc("GET /api/assets/{id}/content", assetHandler.GetAssetContent)
	mux.HandleFunc("DELETE /api/assets/{id}", assetHandler.DeleteAsset)

	// Middleware chain: CORS → Recovery → Auth → Routes
	var h http.Handler = mux
	h = middleware.Auth(verifier)(h)
	h = middleware.Recovery(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newBlobStore selects the blob store backend from config
func newBlobStore(ctx context.Context, cfg config.BlobConfig) (storage.BlobStore, error) {
	switch cfg.Driver {
	case "s3":
		return storage.NewS3BlobStore(ctx, storage.S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			KeyPrefix: cfg.KeyPrefix,
			Endpoint:  cfg.Endpoint,
		})
	default:
		return storage.NewFSBlobStore(cfg.BasePath)
	}
}
