package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/messaging-contact-sync/internal/service"
)

// FeatureFlagHandler handles workspace feature flag requests
type FeatureFlagHandler struct {
	flagService service.FeatureFlagService
	logger      *slog.Logger
}

// NewFeatureFlagHandler creates a new feature flag handler
func NewFeatureFlagHandler(flagService service.FeatureFlagService, logger *slog.Logger) *FeatureFlagHandler {
	return &FeatureFlagHandler{
		flagService: flagService,
		logger:      logger,
	}
}

// GetFlag handles GET /workspaces/{workspaceID}/feature-flags/{key}
func (h *FeatureFlagHandler) GetFlag(w http.ResponseWriter, r *http.Request) {
	req := &service.FeatureFlagRequest{
		WorkspaceID: chi.URLParam(r, "workspaceID"),
		Key:         chi.URLParam(r, "key"),
	}

	result, err := h.flagService.Get(r.Context(), req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	respondSuccess(w, result)
}

// SetFlag handles PUT /workspaces/{workspaceID}/feature-flags/{key}
func (h *FeatureFlagHandler) SetFlag(w http.ResponseWriter, r *http.Request) {
	var req service.SetFeatureFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidJSON, "Invalid JSON format")
		return
	}

	// path parameters win over the body
	req.WorkspaceID = chi.URLParam(r, "workspaceID")
	req.Key = chi.URLParam(r, "key")

	result, err := h.flagService.Set(r.Context(), &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	respondSuccess(w, result)
}
