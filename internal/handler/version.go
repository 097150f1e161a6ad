package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mediavault/dam_backend/internal/model"
	"mediavault/dam_backend/internal/pkg/auth"
	"mediavault/dam_backend/internal/pkg/httputils"
	"mediavault/dam_backend/internal/service"
	"mediavault/dam_backend/internal/ws"

	"github.com/gorilla/mux"
)

type VersionHandler struct {
	versionService service.VersionService
	reviewHub      *ws.ReviewHub
}

func NewVersionHandler(versionService service.VersionService, reviewHub *ws.ReviewHub) *VersionHandler {
	return &VersionHandler{versionService: versionService, reviewHub: reviewHub}
}

func (h *VersionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/assets/{id}/versions", h.proposeVersion).Methods("POST", "OPTIONS")
	router.HandleFunc("/assets/{id}/versions", h.listAssetVersions).Methods("GET", "OPTIONS")
	router.HandleFunc("/versions", h.listVersions).Methods("GET", "OPTIONS")
	router.HandleFunc("/versions/{id}/decide", h.decideVersion).Methods("POST", "OPTIONS")
	router.HandleFunc("/ws/reviews", h.reviewFeed).Methods("GET")
	router.HandleFunc("/ws/reviews/stats", h.reviewStats).Methods("GET", "OPTIONS")
}

// @Summary Propose version
// @Description Submit a new pending version for an asset; omitted fields inherit the current baseline
// @ID propose-version
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Asset ID"
// @Param file formData file false "Replacement file"
// @Param title formData string false "Title override"
// @Param description formData string false "Description override"
// @Param category formData int false "Category ID override"
// @Param tags formData string false "Comma-separated tag names (empty means no change)"
// @Success 201 {object} model.AssetVersion
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /assets/{id}/versions [post]
func (h *VersionHandler) proposeVersion(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	vars := mux.Vars(r)
	assetID, err := strconv.Atoi(vars["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse asset ID")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	fields := service.VersionFields{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		CategoryID:  parseOptionalUint(r.FormValue("category")),
		TagNames:    splitTagNames(r.FormValue("tags")),
	}

	var upload *service.FileUpload
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		upload = &service.FileUpload{
			Body:        file,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
	}

	version, err := h.versionService.Propose(r.Context(), principal, uint(assetID), fields, upload)
	if err != nil {
		respondError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, version)
}

type DecideRequest struct {
	Outcome model.VersionStatus `json:"outcome"`
	Comment string              `json:"comment"`
}

// @Summary Decide version
// @Description Approve or reject a pending version; approval materializes it onto the asset
// @ID decide-version
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Version ID"
// @Param decision body DecideRequest true "Decision"
// @Success 200 {object} model.AssetVersion
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /versions/{id}/decide [post]
func (h *VersionHandler) decideVersion(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	vars := mux.Vars(r)
	versionID, err := strconv.Atoi(vars["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse version ID")
		return
	}

	var request DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	r.Body.Close()

	version, err := h.versionService.Decide(r.Context(), principal, uint(versionID), request.Outcome, request.Comment)
	if err != nil {
		respondError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, version)
}

// @Summary List asset versions
// @Description List the version ledger of one asset, highest version first
// @ID list-asset-versions
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} []model.AssetVersion
// @Failure 404 {object} response.ErrorResponse
// @Router /assets/{id}/versions [get]
func (h *VersionHandler) listAssetVersions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	assetID, err := strconv.Atoi(vars["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse asset ID")
		return
	}

	versions, err := h.versionService.ListByAsset(uint(assetID))
	if err != nil {
		respondError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, versions)
}

// @Summary List versions
// @Description List all ledger entries across assets
// @ID list-versions
// @Produce json
// @Success 200 {object} []model.AssetVersion
// @Failure 500 {object} response.ErrorResponse
// @Router /versions [get]
func (h *VersionHandler) listVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := h.versionService.List()
	if err != nil {
		respondError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, versions)
}

// reviewFeed upgrades admins to a websocket carrying review events.
// Browsers cannot set headers on websocket requests, so the token
// rides in a query parameter.
func (h *VersionHandler) reviewFeed(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.ValidateToken(r.URL.Query().Get("token"))
	if err != nil {
		respondError(w, model.ErrUnauthenticated)
		return
	}
	principal := model.Principal{UserID: claims.UserID, Role: claims.Role}
	if !principal.Can(model.CapApprove) {
		respondError(w, model.ErrForbidden)
		return
	}

	conn, err := ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.reviewHub.Register(conn)
}

// @Summary Review feed stats
// @Description Connected client count and events delivered over the review feed
// @ID review-stats
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} ws.HubStats
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /ws/reviews/stats [get]
func (h *VersionHandler) reviewStats(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if !principal.Can(model.CapApprove) {
		respondError(w, model.ErrForbidden)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, h.reviewHub.Stats())
}
