package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSyncFollowupJobData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		data    SyncFollowupJobData
		wantErr bool
	}{
		{
			name:    "valid",
			data:    SyncFollowupJobData{WorkspaceID: uuid.New(), MessageChannelID: uuid.New()},
			wantErr: false,
		},
		{
			name:    "missing workspace",
			data:    SyncFollowupJobData{MessageChannelID: uuid.New()},
			wantErr: true,
		},
		{
			name:    "missing message channel",
			data:    SyncFollowupJobData{WorkspaceID: uuid.New()},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.True(t, IsPermanent(err))
		})
	}
}

func TestIsPermanent(t *testing.T) {
	assert.True(t, IsPermanent(ErrNotFoundWithMsg("connected account missing")))
	assert.False(t, IsPermanent(ErrConflictWithMsg("busy")))
	assert.False(t, IsPermanent(errors.New("connection reset by peer")))
}
