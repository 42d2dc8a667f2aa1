package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/messaging-contact-sync/internal/service"
)

// SyncHandler handles message channel sync notifications
type SyncHandler struct {
	syncService service.SyncService
	logger      *slog.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService service.SyncService, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		logger:      logger,
	}
}

// SyncCompleted handles POST /workspaces/{workspaceID}/message-channels/{messageChannelID}/sync-completed
func (h *SyncHandler) SyncCompleted(w http.ResponseWriter, r *http.Request) {
	req := &service.SyncCompletedRequest{
		WorkspaceID:      chi.URLParam(r, "workspaceID"),
		MessageChannelID: chi.URLParam(r, "messageChannelID"),
	}

	result, err := h.syncService.HandleSyncCompleted(r.Context(), req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	respondAccepted(w, result)
}
