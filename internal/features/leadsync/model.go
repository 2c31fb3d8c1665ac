package leadsync

import (
	"errors"
	"time"

	"go-crm-leads/internal/features/enquiry"
	"go-crm-leads/internal/features/housing"
)

var ErrRunNotFound = errors.New("sync run not found")

type Mode string

const (
	ModeScheduled Mode = "scheduled"
	ModeManual    Mode = "manual"
	ModeTest      Mode = "test"
)

const (
	DefaultManualHours = 24
	MaxManualHours     = 720

	// connection tests look back a fixed hour
	testWindowHours = 1

	MessageSyncInProgress = "lead sync already in progress"
)

// SyncStats holds fetched == inserted + skipped + errors.
type SyncStats struct {
	Fetched  int `json:"fetched" bson:"fetched"`
	Inserted int `json:"inserted" bson:"inserted"`
	Skipped  int `json:"skipped" bson:"skipped"`
	Errors   int `json:"errors" bson:"errors"`
}

// SyncResult is what every trigger returns to its caller.
type SyncResult struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Stats   *SyncStats            `json:"stats,omitempty"`
	Details []enquiry.LeadOutcome `json:"details,omitempty"`
	Leads   []housing.RawLead     `json:"leads,omitempty"`
	RunID   string                `json:"run_id,omitempty"`
	Mode    Mode                  `json:"mode,omitempty"`
}

// SyncRun is the persisted history entry for one trigger invocation.
type SyncRun struct {
	RunID     string                `json:"run_id" bson:"run_id"`
	Mode      Mode                  `json:"mode" bson:"mode"`
	StartTime time.Time             `json:"start_time" bson:"start_time"`
	EndTime   time.Time             `json:"end_time" bson:"end_time"`
	Success   bool                  `json:"success" bson:"success"`
	Message   string                `json:"message" bson:"message"`
	Stats     *SyncStats            `json:"stats,omitempty" bson:"stats,omitempty"`
	Details   []enquiry.LeadOutcome `json:"details,omitempty" bson:"details,omitempty"`
}

// RunEvent is pushed to websocket subscribers after each run.
type RunEvent struct {
	Type    string     `json:"type"`
	RunID   string     `json:"run_id"`
	Mode    Mode       `json:"mode"`
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Stats   *SyncStats `json:"stats,omitempty"`
	At      time.Time  `json:"at"`
}

func failure(err error) *SyncResult {
	return &SyncResult{Success: false, Message: err.Error()}
}
