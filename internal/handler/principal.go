package handler

import (
	"errors"
	"net/http"
	"strings"

	"mediavault/dam_backend/internal/model"
	"mediavault/dam_backend/internal/pkg/auth"
	"mediavault/dam_backend/internal/pkg/httputils"
)

// principalFromRequest builds the explicit principal every service call
// takes, from the bearer token. No identity is stashed on the request
// context.
func principalFromRequest(r *http.Request) (model.Principal, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return model.Principal{}, model.ErrUnauthenticated
	}

	claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return model.Principal{}, model.ErrUnauthenticated
	}

	return model.Principal{UserID: claims.UserID, Role: claims.Role}, nil
}

type staleDecisionResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func respondError(w http.ResponseWriter, err error) {
	var stale *model.StaleDecisionError
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		httputils.ResponseError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, model.ErrForbidden):
		httputils.ResponseError(w, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, model.ErrNotFound):
		httputils.ResponseError(w, http.StatusNotFound, "not found")
	case errors.As(err, &stale):
		// 409 with the current status so the caller can re-fetch.
		httputils.ResponseJSON(w, http.StatusConflict, staleDecisionResponse{
			Message: stale.Error(),
			Status:  string(stale.Status),
		})
	case errors.Is(err, model.ErrValidation):
		httputils.ResponseError(w, http.StatusBadRequest, err.Error())
	default:
		httputils.ResponseError(w, http.StatusInternalServerError, "internal server error")
	}
}
