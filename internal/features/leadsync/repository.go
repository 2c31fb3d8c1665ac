package leadsync

import (
	"context"
	"errors"

	"go-crm-leads/internal/config"
	"go-crm-leads/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultListLimit = 20

type RunLogRepository interface {
	Create(ctx context.Context, run *SyncRun) error
	Get(ctx context.Context, runID string) (*SyncRun, error)
	List(ctx context.Context, limit int) ([]SyncRun, error)
}

func NewRunLogRepository(cfg *config.Config, mongodb *database.MongodbDB, pg *database.PostgresDB) RunLogRepository {
	if cfg.UsesPostgres() {
		return NewPostgresRunLogRepository(pg.DB)
	}
	return NewMongoRunLogRepository(mongodb.DB)
}

type RunLogRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMongoRunLogRepository(db *mongo.Database) RunLogRepository {
	return &RunLogRepositoryImpl{
		collection: db.Collection("lead_sync_logs"),
	}
}

func (r *RunLogRepositoryImpl) Create(ctx context.Context, run *SyncRun) error {
	_, err := r.collection.InsertOne(ctx, run)
	return err
}

func (r *RunLogRepositoryImpl) Get(ctx context.Context, runID string) (*SyncRun, error) {
	var run SyncRun
	err := r.collection.FindOne(ctx, bson.M{"run_id": runID}).Decode(&run)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return &run, nil
}

func (r *RunLogRepositoryImpl) List(ctx context.Context, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"details": 0})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	runs := []SyncRun{}
	if err = cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *RunLogRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "run_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "start_time", Value: -1}}},
	})
	return err
}
