package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"mediavault/dam_backend/internal/pkg/httputils"
	"mediavault/dam_backend/internal/service"

	"github.com/gorilla/mux"
)

const maxUploadMemory = 32 << 20 // 32MB

type AssetHandler struct {
	assetService service.AssetService
}

func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

func (h *AssetHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/assets", h.createAsset).Methods("POST", "OPTIONS")
	router.HandleFunc("/assets", h.listAssets).Methods("GET", "OPTIONS")
	router.HandleFunc("/assets/{id}", h.getAsset).Methods("GET", "OPTIONS")
}

// @Summary Create asset
// @Description Upload a file and create the canonical asset record with an auto-approved first version
// @ID create-asset
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param file formData file true "Asset file"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param creator formData string false "Creator"
// @Param category formData int false "Category ID"
// @Param tags formData string false "Comma-separated tag names"
// @Param metadata formData string false "Free-form metadata JSON object"
// @Param parent formData int false "Parent asset ID"
// @Success 201 {object} model.Asset
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /assets [post]
func (h *AssetHandler) createAsset(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	fields := service.AssetFields{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Creator:     r.FormValue("creator"),
		CategoryID:  parseOptionalUint(r.FormValue("category")),
		TagNames:    splitTagNames(r.FormValue("tags")),
		Metadata:    parseMetadata(r.FormValue("metadata")),
		ParentID:    parseOptionalUint(r.FormValue("parent")),
	}

	upload := &service.FileUpload{
		Body:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}

	asset, err := h.assetService.CreateAsset(r.Context(), principal, fields, upload)
	if err != nil {
		respondError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, asset)
}

// @Summary Get asset
// @Description Get the projected (externally visible) state of an asset
// @ID get-asset
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} model.AssetView
// @Failure 404 {object} response.ErrorResponse
// @Router /assets/{id} [get]
func (h *AssetHandler) getAsset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	assetID, err := strconv.Atoi(vars["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse asset ID")
		return
	}

	view, err := h.assetService.GetAsset(r.Context(), uint(assetID))
	if err != nil {
		respondError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, view)
}

// @Summary List assets
// @Description List all assets in their projected form, newest first
// @ID list-assets
// @Produce json
// @Success 200 {object} []model.AssetView
// @Failure 500 {object} response.ErrorResponse
// @Router /assets [get]
func (h *AssetHandler) listAssets(w http.ResponseWriter, r *http.Request) {
	views, err := h.assetService.ListAssets(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, views)
}

func parseOptionalUint(value string) *uint {
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(parsed)
	return &id
}

func splitTagNames(value string) []string {
	if value == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// parseMetadata tolerates malformed metadata by dropping it; it is a
// free-form field and never worth failing an upload over.
func parseMetadata(value string) map[string]any {
	if value == "" {
		return nil
	}
	var metadata map[string]any
	if err := json.Unmarshal([]byte(value), &metadata); err != nil {
		return nil
	}
	return metadata
}
