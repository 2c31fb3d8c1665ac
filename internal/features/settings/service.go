package settings

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// WatermarkStore reads and advances the scheduled-sync watermark.
type WatermarkStore interface {
	GetLastFetchTimestamp(ctx context.Context) int64
	UpdateLastFetchTimestamp(ctx context.Context, timestamp int64)
}

type WatermarkServiceImpl struct {
	Repo   SettingsRepository
	Logger *zap.Logger
	now    func() time.Time
}

func NewWatermarkService(repo SettingsRepository, logger *zap.Logger) WatermarkStore {
	return &WatermarkServiceImpl{
		Repo:   repo,
		Logger: logger.Named("watermark"),
		now:    time.Now,
	}
}

// GetLastFetchTimestamp never fails: an unreadable or missing watermark falls
// back to now - 24h. A wider window only costs extra dedup work.
func (s *WatermarkServiceImpl) GetLastFetchTimestamp(ctx context.Context) int64 {
	fallback := s.now().Add(-DefaultLookback).Unix()

	setting, err := s.Repo.Get(ctx, WatermarkKey)
	if err != nil {
		s.Logger.Warn("No stored watermark, using default lookback",
			zap.Error(err), zap.Int64("fallback", fallback))
		return fallback
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(setting.Value), 10, 64)
	if err != nil || ts <= 0 {
		s.Logger.Warn("Stored watermark is invalid, using default lookback",
			zap.String("value", setting.Value), zap.Int64("fallback", fallback))
		return fallback
	}
	return ts
}

// UpdateLastFetchTimestamp logs a failed write instead of returning it; the
// next cycle reprocesses the window and dedup absorbs it.
func (s *WatermarkServiceImpl) UpdateLastFetchTimestamp(ctx context.Context, timestamp int64) {
	if err := s.Repo.Upsert(ctx, WatermarkKey, strconv.FormatInt(timestamp, 10)); err != nil {
		s.Logger.Warn("Failed to persist watermark", zap.Error(err), zap.Int64("timestamp", timestamp))
		return
	}
	s.Logger.Info("Watermark advanced", zap.Int64("timestamp", timestamp))
}
