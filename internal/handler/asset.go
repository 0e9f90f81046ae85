package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"pixelvault/internal/domain/services"
	"pixelvault/internal/httputil"
)

// multipartMemoryLimit bounds how much of a parsed form is held in memory;
// larger parts spill to temp files.
const multipartMemoryLimit = 8 << 20

// AssetHandler handles asset HTTP requests
type AssetHandler struct {
	assetService   services.AssetService
	searchService  services.SearchService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(
	assetService services.AssetService,
	searchService services.SearchService,
	maxUploadBytes int64,
	logger *slog.Logger,
) *AssetHandler {
	return &AssetHandler{
		assetService:   assetService,
		searchService:  searchService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadAsset uploads an image into a folder
// POST /api/assets (multipart form: image, name, folder_id)
func (h *AssetHandler) UploadAsset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	// Cap the whole request; the limit leaves headroom for the non-file parts
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartMemoryLimit)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httputil.RespondError(w, http.StatusBadRequest, "upload exceeds the size limit")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "no image file provided")
		return
	}
	defer file.Close()

	req := &services.UploadAssetRequest{
		OwnerID:      ownerID,
		FolderID:     r.FormValue("folder_id"),
		Name:         r.FormValue("name"),
		Content:      file,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		ByteSize:     header.Size,
	}

	asset, err := h.assetService.UploadAsset(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, asset)
}

// ListAssets lists a folder's assets, newest first
// GET /api/folders/{id}/assets
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	folderID := r.PathValue("id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	assets, err := h.assetService.ListAssets(r.Context(), ownerID, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, assets)
}

// SearchAssets searches the owner's assets by name
// GET /api/assets/search?query=
func (h *AssetHandler) SearchAssets(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	assets, err := h.searchService.SearchAssets(r.Context(), ownerID, r.URL.Query().Get("query"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, assets)
}

// GetAssetContent streams the asset's image bytes
// GET /api/assets/{id}/content
func (h *AssetHandler) GetAssetContent(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "asset ID is required")
		return
	}

	asset, content, err := h.assetService.OpenAsset(r.Context(), ownerID, id)
	if err != nil {
		handleError(w, err)
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", asset.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(asset.ByteSize, 10))
	if _, err := io.Copy(w, content); err != nil {
		// Headers are out; nothing to do but log the broken transfer
		h.logger.Warn("asset content transfer aborted", "asset_id", id, "error", err)
	}
}

// DeleteAsset deletes an asset
// DELETE /api/assets/{id}
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "asset ID is required")
		return
	}

	if err := h.assetService.DeleteAsset(r.Context(), ownerID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
