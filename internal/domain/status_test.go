package domain_test

import (
	"testing"
	"time"

	"github.com/mixforge/mixforge-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   domain.TaskStatus
		terminal bool
	}{
		{domain.TaskStatusPending, false},
		{domain.TaskStatusTextReady, false},
		{domain.TaskStatusFirstReady, false},
		{domain.TaskStatusComplete, true},
		{domain.TaskStatusCreateFailed, true},
		{domain.TaskStatusGenerateFailed, true},
		{domain.TaskStatusCallbackException, true},
		{domain.TaskStatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestTaskStatus_CacheTTL(t *testing.T) {
	assert.Equal(t, 24*time.Hour, domain.TaskStatusComplete.CacheTTL())
	assert.Equal(t, 24*time.Hour, domain.TaskStatusRejected.CacheTTL())
	assert.Equal(t, time.Hour, domain.TaskStatusTextReady.CacheTTL())
	assert.Equal(t, time.Hour, domain.TaskStatusFirstReady.CacheTTL())
	assert.Equal(t, time.Hour, domain.TaskStatusPending.CacheTTL())
}

func TestTaskStatus_IsValid(t *testing.T) {
	for _, status := range []domain.TaskStatus{
		domain.TaskStatusPending,
		domain.TaskStatusTextReady,
		domain.TaskStatusFirstReady,
		domain.TaskStatusComplete,
		domain.TaskStatusCreateFailed,
		domain.TaskStatusGenerateFailed,
		domain.TaskStatusCallbackException,
		domain.TaskStatusRejected,
	} {
		assert.True(t, status.IsValid(), "expected %q to be valid", status)
	}

	assert.False(t, domain.TaskStatus("SUCCESS").IsValid(),
		"provider wire statuses must not leak into the domain enum")
	assert.False(t, domain.TaskStatus("").IsValid())
}
