package enquiry

import (
	"errors"
	"time"

	common_models "go-crm-leads/internal/common/models"
)

// ErrEnquiryNotFound is returned by lookups that match no row.
var ErrEnquiryNotFound = errors.New("enquiry not found")

const (
	SourceHousing = "Housing.com"
	StatusNew     = "New"
)

// Enquiry is the persisted shape of a lead in the enquiries table.
type Enquiry struct {
	ID               string    `json:"id" bson:"-"`
	ClientName       string    `json:"client_name" bson:"client_name"`
	Mobile           string    `json:"mobile" bson:"mobile"`
	Email            string    `json:"email" bson:"email"`
	Configuration    string    `json:"configuration" bson:"configuration"`
	EnquiryFor       string    `json:"enquiry_for" bson:"enquiry_for"`
	PropertyType     string    `json:"property_type" bson:"property_type"`
	CreatedDate      string    `json:"created_date" bson:"created_date"`
	Budget           string    `json:"budget" bson:"budget"`
	Area             string    `json:"area" bson:"area"`
	Remarks          string    `json:"remarks" bson:"remarks"`
	Source           string    `json:"source" bson:"source"`
	Status           string    `json:"status" bson:"status"`
	AssignedEmp      string    `json:"assigned_emp" bson:"assigned_emp"`
	NextFollowUpDate string    `json:"next_follow_up_date" bson:"next_follow_up_date"`
	InsertedAt       time.Time `json:"inserted_at" bson:"inserted_at"`
}

// OutcomeStatus is the closed set of per-lead results.
type OutcomeStatus string

const (
	OutcomeInserted OutcomeStatus = "inserted"
	OutcomeSkipped  OutcomeStatus = "skipped"
	OutcomeError    OutcomeStatus = "error"
)

const ErrLeadAlreadyExists = "Lead already exists"

// InsertResult is the result of InsertLead for one lead.
type InsertResult struct {
	Success bool          `json:"success"`
	ID      string        `json:"id,omitempty"`
	Status  OutcomeStatus `json:"status"`
	Error   string        `json:"error,omitempty"`
}

// LeadOutcome is one entry of a sync's details array.
type LeadOutcome struct {
	Lead   common_models.CanonicalLead `json:"lead" bson:"lead"`
	Status OutcomeStatus               `json:"status" bson:"status"`
	ID     string                      `json:"id,omitempty" bson:"id,omitempty"`
	Error  string                      `json:"error,omitempty" bson:"error,omitempty"`
}

// SyncSummary tallies a batch. Inserted+Skipped+Errors == len(Details).
type SyncSummary struct {
	Inserted int           `json:"inserted"`
	Skipped  int           `json:"skipped"`
	Errors   int           `json:"errors"`
	Details  []LeadOutcome `json:"details"`
}
