package enquiry

import (
	"context"
	"errors"
	"fmt"

	"go-crm-leads/internal/config"
	"go-crm-leads/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type EnquiryRepository interface {
	FindByMobile(ctx context.Context, mobile string) (*Enquiry, error)
	Insert(ctx context.Context, enquiry *Enquiry) (string, error)
}

// NewEnquiryRepository picks the implementation matching STORE_DRIVER.
func NewEnquiryRepository(cfg *config.Config, mongodb *database.MongodbDB, pg *database.PostgresDB) EnquiryRepository {
	if cfg.UsesPostgres() {
		return NewPostgresEnquiryRepository(pg.DB)
	}
	return NewMongoEnquiryRepository(mongodb.DB)
}

type EnquiryRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMongoEnquiryRepository(db *mongo.Database) EnquiryRepository {
	return &EnquiryRepositoryImpl{
		collection: db.Collection("enquiries"),
	}
}

func (r *EnquiryRepositoryImpl) FindByMobile(ctx context.Context, mobile string) (*Enquiry, error) {
	var doc struct {
		ID      primitive.ObjectID `bson:"_id"`
		Enquiry `bson:",inline"`
	}
	err := r.collection.FindOne(ctx, bson.M{"mobile": mobile}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEnquiryNotFound
		}
		return nil, err
	}
	e := doc.Enquiry
	e.ID = doc.ID.Hex()
	return &e, nil
}

func (r *EnquiryRepositoryImpl) Insert(ctx context.Context, enquiry *Enquiry) (string, error) {
	res, err := r.collection.InsertOne(ctx, enquiry)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", res.InsertedID), nil
	}
	return oid.Hex(), nil
}

// EnsureIndexes indexes mobile for the existence check. It is not unique:
// stored data predates this pipeline and may already hold duplicates.
func (r *EnquiryRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "mobile", Value: 1}},
	})
	return err
}
