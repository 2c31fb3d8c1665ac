package logger

import (
	"context"

	common_models "go-crm-leads/internal/common/models"
	"go-crm-leads/internal/config"
	"go-crm-leads/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type mongoLogSink struct {
	collection *mongo.Collection
}

func (s *mongoLogSink) InsertLog(ctx context.Context, record common_models.Log) error {
	_, err := s.collection.InsertOne(ctx, record)
	return err
}

// NewLogger builds the zap logger. With a Mongo store, entries are also
// written to the "logs" collection.
func NewLogger(lc fx.Lifecycle, cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Enable Caller to get Function Name
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	if mongodb == nil || mongodb.DB == nil {
		zap.ReplaceGlobals(baseLogger)
		return baseLogger, nil
	}

	dbWriter := NewDBLogWriter(&mongoLogSink{collection: mongodb.DB.Collection("logs")}, cfg.AppId, 1000)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			dbWriter.Close()
			return nil
		},
	})

	finalLogger := zap.New(NewDBCore(baseLogger.Core(), dbWriter), zap.AddCaller())
	zap.ReplaceGlobals(finalLogger)
	return finalLogger, nil
}
