package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	RunIDKey ContextKey = "run_id"
	ModeKey  ContextKey = "sync_mode"
)

// Log is a persisted application log entry.
type Log struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppId        string             `bson:"app_id" json:"app_id"`
	Message      string             `bson:"message" json:"message"`
	LogLevelId   int                `bson:"log_level_id" json:"log_level_id"`
	Caller       string             `bson:"caller,omitempty" json:"caller,omitempty"`
	RunID        string             `bson:"run_id,omitempty" json:"run_id,omitempty"`
	Mode         string             `bson:"mode,omitempty" json:"mode,omitempty"`
	CreatedOnUtc time.Time          `bson:"created_on_utc" json:"created_on_utc"`
}
