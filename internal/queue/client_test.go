package queue

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	WorkspaceID string `json:"workspace_id"`
}

func TestNewJob(t *testing.T) {
	job, err := NewJob("messaging-create-company-and-contact-after-sync", payload{WorkspaceID: "ws-1"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.Equal(t, 0, job.Attempt)
	assert.JSONEq(t, `{"workspace_id":"ws-1"}`, string(job.Data))
	assert.False(t, job.EnqueuedAt.IsZero())
}

func TestJob_RetryKeepsIdentity(t *testing.T) {
	job, err := NewJob("job", payload{WorkspaceID: "ws-1"})
	require.NoError(t, err)

	next := job.Retry()

	assert.Equal(t, job.ID, next.ID)
	assert.Equal(t, 1, next.Attempt)
	assert.Equal(t, 0, job.Attempt)
}

func TestJob_RoundTripThroughEnvelope(t *testing.T) {
	job, err := NewJob("job", payload{WorkspaceID: "ws-1"})
	require.NoError(t, err)

	raw, err := json.Marshal(job)
	require.NoError(t, err)

	var decoded Job
	require.NoError(t, json.Unmarshal(raw, &decoded))

	var p payload
	require.NoError(t, decoded.Decode(&p))
	assert.Equal(t, "ws-1", p.WorkspaceID)
}

func TestJob_DecodeInvalidData(t *testing.T) {
	job := &Job{Name: "job", Data: json.RawMessage(`"not an object"`)}

	var p payload
	assert.Error(t, job.Decode(&p))
}
