package enquiry

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	common_models "go-crm-leads/internal/common/models"

	"go.uber.org/zap"
)

// Assigner picks the owning employee for a lead's area.
type Assigner interface {
	AssignEmployee(area string) string
}

// UpsertService inserts canonical leads that are not already stored.
type UpsertService interface {
	CheckLeadExists(ctx context.Context, mobile string) bool
	AssignEmployee(area string) string
	InsertLead(ctx context.Context, lead common_models.CanonicalLead) InsertResult
	SyncLeads(ctx context.Context, leads []common_models.CanonicalLead) SyncSummary
}

type UpsertServiceImpl struct {
	Repo     EnquiryRepository
	Assigner Assigner
	Logger   *zap.Logger
	now      func() time.Time
}

func NewUpsertService(repo EnquiryRepository, assigner *EmployeeAssigner, logger *zap.Logger) UpsertService {
	return &UpsertServiceImpl{
		Repo:     repo,
		Assigner: assigner,
		Logger:   logger.Named("enquiry"),
		now:      time.Now,
	}
}

// CleanMobile strips everything but digits.
func CleanMobile(mobile string) string {
	var b strings.Builder
	b.Grow(len(mobile))
	for _, r := range mobile {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CheckLeadExists looks up the mobile as given, then cleaned. A lookup error
// other than not-found is reported as false so the insert still proceeds.
func (s *UpsertServiceImpl) CheckLeadExists(ctx context.Context, mobile string) bool {
	candidates := []string{mobile}
	if cleaned := CleanMobile(mobile); cleaned != "" && cleaned != mobile {
		candidates = append(candidates, cleaned)
	}

	for _, candidate := range candidates {
		_, err := s.Repo.FindByMobile(ctx, candidate)
		switch {
		case err == nil:
			return true
		case errors.Is(err, ErrEnquiryNotFound):
			continue
		default:
			s.Logger.Warn("Could not verify existing lead, allowing insert",
				zap.String("mobile", candidate), zap.Error(err))
			return false
		}
	}
	return false
}

func (s *UpsertServiceImpl) AssignEmployee(area string) string {
	return s.Assigner.AssignEmployee(area)
}

func (s *UpsertServiceImpl) InsertLead(ctx context.Context, lead common_models.CanonicalLead) InsertResult {
	if msg := validateLead(lead); msg != "" {
		return InsertResult{Status: OutcomeError, Error: msg}
	}

	mobile := CleanMobile(lead.Mobile)

	if s.CheckLeadExists(ctx, lead.Mobile) {
		return InsertResult{Status: OutcomeSkipped, Error: ErrLeadAlreadyExists}
	}

	now := s.now()
	record := &Enquiry{
		ClientName:       strings.TrimSpace(lead.ClientName),
		Mobile:           mobile,
		Email:            strings.TrimSpace(lead.Email),
		Configuration:    lead.Configuration,
		EnquiryFor:       lead.EnquiryFor,
		PropertyType:     lead.PropertyType,
		CreatedDate:      lead.CreatedDate,
		Budget:           withDefault(lead.Budget, common_models.NotSpecified),
		Area:             lead.Area,
		Remarks:          lead.Remarks,
		Source:           SourceHousing,
		Status:           StatusNew,
		AssignedEmp:      s.AssignEmployee(lead.Area),
		NextFollowUpDate: now.Format("2006-01-02"),
		InsertedAt:       now.UTC(),
	}

	id, err := s.Repo.Insert(ctx, record)
	if err != nil {
		return InsertResult{Status: OutcomeError, Error: err.Error()}
	}
	return InsertResult{Success: true, ID: id, Status: OutcomeInserted}
}

// SyncLeads processes leads one at a time. Check-then-insert is not atomic,
// so running leads concurrently could let two copies of a mobile through.
func (s *UpsertServiceImpl) SyncLeads(ctx context.Context, leads []common_models.CanonicalLead) SyncSummary {
	summary := SyncSummary{Details: make([]LeadOutcome, 0, len(leads))}

	for _, lead := range leads {
		res := s.InsertLead(ctx, lead)
		summary.Details = append(summary.Details, LeadOutcome{
			Lead:   lead,
			Status: res.Status,
			ID:     res.ID,
			Error:  res.Error,
		})

		switch res.Status {
		case OutcomeInserted:
			summary.Inserted++
		case OutcomeSkipped:
			summary.Skipped++
		default:
			summary.Errors++
			s.Logger.Warn("Lead not inserted",
				zap.String("client_name", lead.ClientName),
				zap.String("mobile", lead.Mobile),
				zap.String("error", res.Error))
		}
	}

	s.Logger.Info("Lead batch processed",
		zap.Int("inserted", summary.Inserted),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", summary.Errors))
	return summary
}

func validateLead(lead common_models.CanonicalLead) string {
	var missing []string
	if strings.TrimSpace(lead.ClientName) == "" {
		missing = append(missing, "client_name")
	}
	if CleanMobile(lead.Mobile) == "" {
		missing = append(missing, "mobile")
	}
	if len(missing) == 0 {
		return ""
	}
	return "Missing required fields: " + strings.Join(missing, ", ")
}

func withDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
