package settings

import (
	"errors"
	"time"
)

// ErrSettingNotFound is returned when no row exists for a key.
var ErrSettingNotFound = errors.New("setting not found")

// Setting is one row of the generic key/value config table.
type Setting struct {
	Key       string    `json:"key" bson:"key"` // Unique index on key
	Value     string    `json:"value" bson:"value"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// WatermarkKey holds the epoch seconds of the last successful scheduled sync.
const WatermarkKey = "housing_last_fetch_timestamp"

// DefaultLookback is used when no watermark has been stored yet.
const DefaultLookback = 24 * time.Hour
