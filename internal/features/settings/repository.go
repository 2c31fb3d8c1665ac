package settings

import (
	"context"
	"errors"
	"time"

	"go-crm-leads/internal/config"
	"go-crm-leads/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SettingsRepository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, key, value string) error
}

// NewSettingsRepository picks the implementation matching STORE_DRIVER.
func NewSettingsRepository(cfg *config.Config, mongodb *database.MongodbDB, pg *database.PostgresDB) SettingsRepository {
	if cfg.UsesPostgres() {
		return NewPostgresSettingsRepository(pg.DB)
	}
	return NewMongoSettingsRepository(mongodb.DB)
}

type SettingsRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewMongoSettingsRepository(db *mongo.Database) SettingsRepository {
	return &SettingsRepositoryImpl{
		Collection: db.Collection("settings"),
	}
}

func (r *SettingsRepositoryImpl) Get(ctx context.Context, key string) (*Setting, error) {
	var setting Setting
	err := r.Collection.FindOne(ctx, bson.M{"key": key}).Decode(&setting)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return &setting, nil
}

func (r *SettingsRepositoryImpl) Upsert(ctx context.Context, key, value string) error {
	filter := bson.M{"key": key}
	update := bson.M{"$set": bson.M{"key": key, "value": value, "updated_at": time.Now().UTC()}}
	opts := options.Update().SetUpsert(true)
	_, err := r.Collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// EnsureIndexes creates the unique key index.
func (r *SettingsRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
