package leadsync

import (
	"context"
	"fmt"
	"strings"

	"go-crm-leads/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler fires RunScheduledSync on LEAD_SYNC_SCHEDULE. "off" or an empty
// schedule disables it.
type Scheduler struct {
	schedule string
	service  LeadSyncService
	logger   *zap.Logger
	cron     *cron.Cron
	entryID  cron.EntryID
}

func NewScheduler(cfg *config.Config, service LeadSyncService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		schedule: strings.TrimSpace(cfg.LeadSyncSchedule),
		service:  service,
		logger:   logger.Named("lead_sync_scheduler"),
	}
}

func (s *Scheduler) Enabled() bool {
	return s.schedule != "" && !strings.EqualFold(s.schedule, "off")
}

func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.logger.Info("Lead sync schedule disabled")
		return nil
	}

	s.cron = cron.New()
	entryID, err := s.cron.AddFunc(s.schedule, s.runOnce)
	if err != nil {
		return fmt.Errorf("invalid LEAD_SYNC_SCHEDULE %q: %w", s.schedule, err)
	}
	s.entryID = entryID
	s.cron.Start()

	s.logger.Info("Lead sync scheduler started",
		zap.String("schedule", s.schedule),
		zap.Time("next_run", s.cron.Entry(entryID).Next))
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Lead sync scheduler stopped")
}

func (s *Scheduler) runOnce() {
	result := s.service.RunScheduledSync(context.Background())
	if !result.Success {
		s.logger.Warn("Scheduled lead sync did not succeed", zap.String("message", result.Message))
	}
}
