package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
)

const (
	codeInvalidInput = "INVALID_INPUT"
	codeInvalidJSON  = "INVALID_JSON"
	codeNotFound     = "NOT_FOUND"
	codeConflict     = "CONFLICT"
	codeTimeout      = "TIMEOUT"
	codeInternal     = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	codeInvalidInput: http.StatusBadRequest,
	codeInvalidJSON:  http.StatusBadRequest,
	codeNotFound:     http.StatusNotFound,
	codeConflict:     http.StatusConflict,
	codeTimeout:      http.StatusGatewayTimeout,
}

// sentinelCodes is consulted in order for errors that are not an AppError
var sentinelCodes = []struct {
	err  error
	code string
}{
	{models.ErrNotFound, codeNotFound},
	{models.ErrConflict, codeConflict},
	{models.ErrInvalid, codeInvalidInput},
	{context.DeadlineExceeded, codeTimeout},
}

// handleError writes the error response for err. Unclassified errors are logged
// and reported as INTERNAL_ERROR without their details.
func handleError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		respondError(w, r, statusForCode(appErr.Code), appErr.Code, appErr.Message)
		return
	}

	for _, s := range sentinelCodes {
		if errors.Is(err, s.err) {
			message := err.Error()
			if s.code == codeTimeout {
				message = "The request timed out"
			}
			respondError(w, r, statusForCode(s.code), s.code, message)
			return
		}
	}

	logger.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	respondError(w, r, http.StatusInternalServerError, codeInternal, "An unexpected error occurred")
}

func statusForCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
