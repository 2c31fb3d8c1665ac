package main

import (
	"context"
	"testing"

	"go-crm-leads/internal/features/leadsync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	leadsync.LeadSyncService
	called string
	hours  int
}

func (s *stubService) RunScheduledSync(ctx context.Context) *leadsync.SyncResult {
	s.called = "scheduled"
	return &leadsync.SyncResult{Success: true}
}

func (s *stubService) RunManualFetch(ctx context.Context, hours int) *leadsync.SyncResult {
	s.called = "manual"
	s.hours = hours
	return &leadsync.SyncResult{Success: true}
}

func (s *stubService) RunConnectionTest(ctx context.Context) *leadsync.SyncResult {
	s.called = "test"
	return &leadsync.SyncResult{Success: false, Message: "Invalid hash"}
}

func TestRunDispatchesByMode(t *testing.T) {
	for _, mode := range []leadsync.Mode{leadsync.ModeScheduled, leadsync.ModeManual, leadsync.ModeTest} {
		svc := &stubService{}
		result, err := run(context.Background(), svc, mode, 12)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, string(mode), svc.called)
	}
}

func TestRunPassesHours(t *testing.T) {
	svc := &stubService{}
	_, err := run(context.Background(), svc, leadsync.ModeManual, 72)
	require.NoError(t, err)
	assert.Equal(t, 72, svc.hours)
}

func TestRunUnknownMode(t *testing.T) {
	_, err := run(context.Background(), &stubService{}, "weekly", 24)
	assert.Error(t, err)
}
