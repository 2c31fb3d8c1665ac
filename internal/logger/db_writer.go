package logger

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	common_models "go-crm-leads/internal/common/models"

	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to our worker
type LogEntry struct {
	Level   zapcore.Level
	Message string
	Caller  string
	RunID   string
	Mode    string
}

// LogSink persists a single log record.
type LogSink interface {
	InsertLog(ctx context.Context, record common_models.Log) error
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	sink    LogSink
	logChan chan LogEntry
	appId   string
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewDBLogWriter starts the background worker immediately.
func NewDBLogWriter(sink LogSink, appId string, buffer int) *DBLogWriter {
	writer := &DBLogWriter{
		sink:    sink,
		logChan: make(chan LogEntry, buffer),
		appId:   appId,
		done:    make(chan struct{}),
	}

	go writer.processLogs()

	return writer
}

// AddLog never blocks the caller; a full buffer drops the entry and so does
// a closed writer.
func (w *DBLogWriter) AddLog(entry LogEntry) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}

	select {
	case w.logChan <- entry:
	default:
		fmt.Fprintln(os.Stderr, "DB log channel full, dropping log:", entry.Message)
	}
}

// Close drains pending entries and stops the worker. Safe to call twice.
func (w *DBLogWriter) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.logChan)
	}
	w.mu.Unlock()
	<-w.done
}

func (w *DBLogWriter) processLogs() {
	defer close(w.done)
	for entry := range w.logChan {
		record := common_models.Log{
			AppId:        w.appId,
			Message:      entry.Message,
			LogLevelId:   mapLevelToInt(entry.Level),
			Caller:       entry.Caller,
			RunID:        entry.RunID,
			Mode:         entry.Mode,
			CreatedOnUtc: time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		// Errors are ignored to keep the app running.
		_ = w.sink.InsertLog(ctx, record)
		cancel()
	}
}

func mapLevelToInt(l zapcore.Level) int {
	switch l {
	case zapcore.DebugLevel:
		return 10
	case zapcore.InfoLevel:
		return 20
	case zapcore.WarnLevel:
		return 30
	case zapcore.ErrorLevel:
		return 40
	case zapcore.FatalLevel:
		return 50
	default:
		return 20
	}
}
