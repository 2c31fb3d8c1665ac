package logger

import (
	"context"
	"sync"
	"testing"

	common_models "go-crm-leads/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memorySink struct {
	mu      sync.Mutex
	records []common_models.Log
}

func (s *memorySink) InsertLog(ctx context.Context, record common_models.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func TestDBCoreTeesEntriesWithRunFields(t *testing.T) {
	sink := &memorySink{}
	writer := NewDBLogWriter(sink, "test-app", 10)

	base, observed := observer.New(zapcore.InfoLevel)
	log := zap.New(NewDBCore(base, writer)).With(zap.String("run_id", "run-1"))

	log.Info("lead sync finished", zap.String("mode", "scheduled"))
	log.Debug("below level")
	writer.Close()

	assert.Equal(t, 1, observed.Len())
	require.Len(t, sink.records, 1)
	rec := sink.records[0]
	assert.Equal(t, "lead sync finished", rec.Message)
	assert.Equal(t, "run-1", rec.RunID)
	assert.Equal(t, "scheduled", rec.Mode)
	assert.Equal(t, "test-app", rec.AppId)
	assert.Equal(t, 20, rec.LogLevelId)
}

func TestAddLogDropsWhenBufferFull(t *testing.T) {
	w := &DBLogWriter{logChan: make(chan LogEntry, 1), done: make(chan struct{})}
	w.AddLog(LogEntry{Message: "first"})
	w.AddLog(LogEntry{Message: "second"})
	assert.Len(t, w.logChan, 1)
}

func TestLoggingAfterCloseIsDropped(t *testing.T) {
	sink := &memorySink{}
	writer := NewDBLogWriter(sink, "test-app", 10)

	base, observed := observer.New(zapcore.InfoLevel)
	log := zap.New(NewDBCore(base, writer))

	log.Info("before shutdown")
	writer.Close()

	assert.NotPanics(t, func() {
		log.Info("Disconnecting from MongoDB")
		writer.Close()
	})
	assert.Equal(t, 2, observed.Len())
	require.Len(t, sink.records, 1)
	assert.Equal(t, "before shutdown", sink.records[0].Message)
}

func TestMapLevelToInt(t *testing.T) {
	assert.Equal(t, 10, mapLevelToInt(zapcore.DebugLevel))
	assert.Equal(t, 30, mapLevelToInt(zapcore.WarnLevel))
	assert.Equal(t, 40, mapLevelToInt(zapcore.ErrorLevel))
	assert.Equal(t, 20, mapLevelToInt(zapcore.DPanicLevel))
}
