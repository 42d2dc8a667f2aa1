package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
	"github.com/Raymond9734/messaging-contact-sync/internal/service"
)

type stubSyncService struct {
	got *service.SyncCompletedRequest
	err error
}

func (s *stubSyncService) HandleSyncCompleted(ctx context.Context, req *service.SyncCompletedRequest) (*service.EnqueueResult, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &service.EnqueueResult{JobID: "job-1", JobName: models.JobCreateCompanyAndContactAfterSync, Status: "queued"}, nil
}

type stubFlagService struct {
	set *service.SetFeatureFlagRequest
	err error
}

func (s *stubFlagService) Get(ctx context.Context, req *service.FeatureFlagRequest) (*service.FeatureFlagResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.FeatureFlagResult{WorkspaceID: req.WorkspaceID, Key: req.Key, Value: true}, nil
}

func (s *stubFlagService) Set(ctx context.Context, req *service.SetFeatureFlagRequest) (*service.FeatureFlagResult, error) {
	s.set = req
	if s.err != nil {
		return nil, s.err
	}
	return &service.FeatureFlagResult{WorkspaceID: req.WorkspaceID, Key: req.Key, Value: *req.Value}, nil
}

type stubChecker struct {
	err error
}

func (s stubChecker) Health(ctx context.Context) error {
	return s.err
}

func newTestRouter(syncSvc service.SyncService, flagSvc service.FeatureFlagService, db, q HealthChecker) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(
		NewSyncHandler(syncSvc, logger),
		NewFeatureFlagHandler(flagSvc, logger),
		NewHealthHandler(db, q, logger),
		prometheus.NewRegistry(),
		logger,
	)
}

func TestSyncCompleted(t *testing.T) {
	syncSvc := &stubSyncService{}
	router := newTestRouter(syncSvc, &stubFlagService{}, stubChecker{}, stubChecker{})
	ws, channel := uuid.New().String(), uuid.New().String()

	req := httptest.NewRequest(http.MethodPost, "/workspaces/"+ws+"/message-channels/"+channel+"/sync-completed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.NotNil(t, syncSvc.got)
	assert.Equal(t, ws, syncSvc.got.WorkspaceID)
	assert.Equal(t, channel, syncSvc.got.MessageChannelID)

	var body service.EnqueueResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "queued", body.Status)
}

func TestSyncCompleted_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "invalid input", err: models.ErrInvalidInput("workspace_id must be a valid UUID"), wantStatus: http.StatusBadRequest, wantCode: "INVALID_INPUT"},
		{name: "not found", err: models.ErrNotFoundWithMsg("message channel not found"), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "internal", err: errors.New("queue unavailable"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubSyncService{err: tt.err}, &stubFlagService{}, stubChecker{}, stubChecker{})

			req := httptest.NewRequest(http.MethodPost, "/workspaces/ws/message-channels/ch/sync-completed", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Error.RequestID)
		})
	}
}

func TestSetFlag_PathWinsOverBody(t *testing.T) {
	flagSvc := &stubFlagService{}
	router := newTestRouter(&stubSyncService{}, flagSvc, stubChecker{}, stubChecker{})
	ws := uuid.New().String()
	key := models.FeatureFlagContactCreationForSentAndReceivedEmails

	body := `{"workspace_id":"other","key":"OTHER","value":true}`
	req := httptest.NewRequest(http.MethodPut, "/workspaces/"+ws+"/feature-flags/"+key, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, flagSvc.set)
	assert.Equal(t, ws, flagSvc.set.WorkspaceID)
	assert.Equal(t, key, flagSvc.set.Key)
	assert.True(t, *flagSvc.set.Value)
}

func TestSetFlag_InvalidJSON(t *testing.T) {
	router := newTestRouter(&stubSyncService{}, &stubFlagService{}, stubChecker{}, stubChecker{})

	req := httptest.NewRequest(http.MethodPut, "/workspaces/ws/feature-flags/KEY", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFlag(t *testing.T) {
	router := newTestRouter(&stubSyncService{}, &stubFlagService{}, stubChecker{}, stubChecker{})
	ws := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/workspaces/"+ws+"/feature-flags/"+models.FeatureFlagContactCreationForSentAndReceivedEmails, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body service.FeatureFlagResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Value)
	assert.Equal(t, ws, body.WorkspaceID)
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		router := newTestRouter(&stubSyncService{}, &stubFlagService{}, stubChecker{}, stubChecker{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("queue down", func(t *testing.T) {
		router := newTestRouter(&stubSyncService{}, &stubFlagService{}, stubChecker{}, stubChecker{err: errors.New("connection refused")})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "unhealthy", body.Services["queue"])
		assert.Equal(t, "healthy", body.Services["database"])
	})

	t.Run("queue not configured", func(t *testing.T) {
		router := newTestRouter(&stubSyncService{}, &stubFlagService{}, stubChecker{}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		var body HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_configured", body.Services["queue"])
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
