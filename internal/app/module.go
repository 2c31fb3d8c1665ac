package app

import (
	"context"
	"time"

	"go-crm-leads/internal/config"
	"go-crm-leads/internal/database"
	"go-crm-leads/internal/features/enquiry"
	"go-crm-leads/internal/features/leadsync"
	"go-crm-leads/internal/features/settings"
	"go-crm-leads/internal/logger"
	"go-crm-leads/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Core provides everything a lead sync needs: config, logging, stores and
// the feature services. Both the API server and the CLI build on it.
var Core = fx.Module("core",
	fx.Provide(
		config.LoadConfig,
		logger.NewLogger,

		database.NewDatabase,
		database.NewPostgres,
		database.NewRedis,

		settings.NewSettingsRepository,
		enquiry.NewEnquiryRepository,
		leadsync.NewRunLogRepository,

		settings.NewWatermarkService,
		enquiry.NewEmployeeAssigner,
		enquiry.NewUpsertService,
		leadsync.NewRunGuard,
		leadsync.NewHub,
		leadsync.NewLeadSyncService,
	),
	fx.Invoke(
		func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
		InitializeIndexes,
	),
)

// ZapEventLogger routes fx lifecycle events through the app logger.
func ZapEventLogger() fx.Option {
	return fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	})
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// InitializeIndexes ensures the Mongo indexes exist. Postgres repositories
// get theirs from the schema bootstrap.
func InitializeIndexes(lc fx.Lifecycle, log *zap.Logger, settingsRepo settings.SettingsRepository, enquiryRepo enquiry.EnquiryRepository, runRepo leadsync.RunLogRepository) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				repos := map[string]interface{}{
					"settings":       settingsRepo,
					"enquiries":      enquiryRepo,
					"lead_sync_logs": runRepo,
				}
				for name, repo := range repos {
					idx, ok := repo.(indexer)
					if !ok {
						continue
					}
					if err := idx.EnsureIndexes(ctx); err != nil {
						log.Warn("Failed to ensure indexes", zap.String("collection", name), zap.Error(err))
					}
				}
			}()
			return nil
		},
	})
}
