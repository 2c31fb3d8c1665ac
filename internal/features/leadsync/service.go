package leadsync

import (
	"context"
	"fmt"
	"strconv"
	"time"

	common_models "go-crm-leads/internal/common/models"
	"go-crm-leads/internal/config"
	"go-crm-leads/internal/features/enquiry"
	"go-crm-leads/internal/features/housing"
	"go-crm-leads/internal/features/settings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientFactory builds the upstream client for one run, so a configuration
// error fails that run instead of the process.
type ClientFactory func() (housing.LeadClient, error)

// LeadSyncService ties the upstream client, watermark and upserter together.
// The Fetch/Manual/Test methods are the bare operations; the Run* methods add
// run ids, history, notifications and the scheduled-run guard.
type LeadSyncService interface {
	FetchAndSyncLatestLeads(ctx context.Context) *SyncResult
	ManualFetch(ctx context.Context, hoursBack int) *SyncResult
	TestConnection(ctx context.Context) *SyncResult

	RunScheduledSync(ctx context.Context) *SyncResult
	RunManualFetch(ctx context.Context, hoursBack int) *SyncResult
	RunConnectionTest(ctx context.Context) *SyncResult

	ListRuns(ctx context.Context, limit int) ([]SyncRun, error)
	GetRun(ctx context.Context, runID string) (*SyncRun, error)
}

type LeadSyncServiceImpl struct {
	NewClient ClientFactory
	Watermark settings.WatermarkStore
	Upserter  enquiry.UpsertService
	Runs      RunLogRepository
	Guard     *RunGuard
	Publisher Publisher
	Logger    *zap.Logger
	now       func() time.Time
}

func NewLeadSyncService(
	cfg *config.Config,
	watermark settings.WatermarkStore,
	upserter enquiry.UpsertService,
	runs RunLogRepository,
	guard *RunGuard,
	hub *Hub,
	logger *zap.Logger,
) LeadSyncService {
	return &LeadSyncServiceImpl{
		NewClient: HousingClientFactory(cfg.Housing, logger),
		Watermark: watermark,
		Upserter:  upserter,
		Runs:      runs,
		Guard:     guard,
		Publisher: hub,
		Logger:    logger.Named("lead_sync"),
		now:       time.Now,
	}
}

func HousingClientFactory(cfg config.HousingConfig, logger *zap.Logger) ClientFactory {
	return func() (housing.LeadClient, error) {
		return housing.NewClient(cfg, logger)
	}
}

// FetchAndSyncLatestLeads syncs [watermark, now). The watermark moves to the
// window end only after the whole batch has been processed; any failure
// leaves it where it was.
func (s *LeadSyncServiceImpl) FetchAndSyncLatestLeads(ctx context.Context) (result *SyncResult) {
	defer s.recoverInto(&result)

	client, err := s.NewClient()
	if err != nil {
		return failure(err)
	}

	now := s.now()
	start := s.Watermark.GetLastFetchTimestamp(ctx)
	end := now.Unix()

	raws, err := client.FetchLeads(ctx, strconv.FormatInt(start, 10), strconv.FormatInt(end, 10))
	if err != nil {
		s.Logger.Error("Scheduled fetch failed", zap.Error(err))
		return failure(err)
	}

	if len(raws) == 0 {
		s.Watermark.UpdateLastFetchTimestamp(ctx, end)
		return &SyncResult{
			Success: true,
			Message: "No new leads found",
			Stats:   &SyncStats{},
			Details: []enquiry.LeadOutcome{},
		}
	}

	result = s.syncBatch(ctx, housing.ProcessLeads(raws, now))
	s.Watermark.UpdateLastFetchTimestamp(ctx, end)
	return result
}

// ManualFetch syncs [now - hoursBack, now) without touching the watermark.
func (s *LeadSyncServiceImpl) ManualFetch(ctx context.Context, hoursBack int) (result *SyncResult) {
	defer s.recoverInto(&result)

	if hoursBack <= 0 {
		hoursBack = DefaultManualHours
	}

	client, err := s.NewClient()
	if err != nil {
		return failure(err)
	}

	leads, err := client.FetchLatestLeads(ctx, hoursBack)
	if err != nil {
		s.Logger.Error("Manual fetch failed", zap.Int("hours_back", hoursBack), zap.Error(err))
		return failure(err)
	}

	return s.syncBatch(ctx, leads)
}

// TestConnection fetches the last hour and returns the raw leads unsynced.
// Nothing is processed, so the result carries no stats.
func (s *LeadSyncServiceImpl) TestConnection(ctx context.Context) (result *SyncResult) {
	defer s.recoverInto(&result)

	client, err := s.NewClient()
	if err != nil {
		return failure(err)
	}

	end := s.now().Unix()
	start := end - testWindowHours*3600
	raws, err := client.FetchLeads(ctx, strconv.FormatInt(start, 10), strconv.FormatInt(end, 10))
	if err != nil {
		return failure(err)
	}

	return &SyncResult{
		Success: true,
		Message: fmt.Sprintf("Connection successful. Found %d leads in the last hour", len(raws)),
		Leads:   raws,
	}
}

func (s *LeadSyncServiceImpl) syncBatch(ctx context.Context, leads []common_models.CanonicalLead) *SyncResult {
	summary := s.Upserter.SyncLeads(ctx, leads)
	return &SyncResult{
		Success: true,
		Message: fmt.Sprintf("Processed %d leads: %d inserted, %d skipped, %d errors",
			len(leads), summary.Inserted, summary.Skipped, summary.Errors),
		Stats: &SyncStats{
			Fetched:  len(leads),
			Inserted: summary.Inserted,
			Skipped:  summary.Skipped,
			Errors:   summary.Errors,
		},
		Details: summary.Details,
	}
}

func (s *LeadSyncServiceImpl) recoverInto(result **SyncResult) {
	if r := recover(); r != nil {
		s.Logger.Error("Lead sync panicked", zap.Any("panic", r))
		*result = &SyncResult{Success: false, Message: fmt.Sprintf("lead sync failed: %v", r)}
	}
}

func (s *LeadSyncServiceImpl) RunScheduledSync(ctx context.Context) *SyncResult {
	var result *SyncResult
	ran := s.Guard.Do(ctx, scheduledLockKey, func(ctx context.Context) {
		result = s.record(ctx, ModeScheduled, s.FetchAndSyncLatestLeads)
	})
	if !ran {
		return &SyncResult{Success: false, Message: MessageSyncInProgress, Mode: ModeScheduled}
	}
	return result
}

func (s *LeadSyncServiceImpl) RunManualFetch(ctx context.Context, hoursBack int) *SyncResult {
	return s.record(ctx, ModeManual, func(ctx context.Context) *SyncResult {
		return s.ManualFetch(ctx, hoursBack)
	})
}

func (s *LeadSyncServiceImpl) RunConnectionTest(ctx context.Context) *SyncResult {
	return s.record(ctx, ModeTest, s.TestConnection)
}

// record runs op under a fresh run id, then stores and publishes the outcome.
// History and notification failures never change the result.
func (s *LeadSyncServiceImpl) record(ctx context.Context, mode Mode, op func(context.Context) *SyncResult) *SyncResult {
	runID := uuid.NewString()
	logger := s.Logger.With(zap.String("run_id", runID), zap.String("mode", string(mode)))
	started := s.now()

	logger.Info("Lead sync started")
	result := op(ctx)
	result.RunID = runID
	result.Mode = mode
	finished := s.now()

	if result.Success {
		logger.Info("Lead sync finished", zap.String("message", result.Message), zap.Duration("took", finished.Sub(started)))
	} else {
		logger.Error("Lead sync failed", zap.String("message", result.Message))
	}

	if s.Runs != nil {
		run := &SyncRun{
			RunID:     runID,
			Mode:      mode,
			StartTime: started.UTC(),
			EndTime:   finished.UTC(),
			Success:   result.Success,
			Message:   result.Message,
			Stats:     result.Stats,
			Details:   result.Details,
		}
		if err := s.Runs.Create(ctx, run); err != nil {
			logger.Warn("Failed to record sync run", zap.Error(err))
		}
	}

	if s.Publisher != nil {
		s.Publisher.Publish(RunEvent{
			Type:    "lead_sync.completed",
			RunID:   runID,
			Mode:    mode,
			Success: result.Success,
			Message: result.Message,
			Stats:   result.Stats,
			At:      finished.UTC(),
		})
	}

	return result
}

func (s *LeadSyncServiceImpl) ListRuns(ctx context.Context, limit int) ([]SyncRun, error) {
	return s.Runs.List(ctx, limit)
}

func (s *LeadSyncServiceImpl) GetRun(ctx context.Context, runID string) (*SyncRun, error) {
	return s.Runs.Get(ctx, runID)
}
