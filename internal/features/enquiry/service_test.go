package enquiry

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	common_models "go-crm-leads/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockEnquiryRepo struct {
	ByMobile  map[string]*Enquiry
	Inserted  []*Enquiry
	FindCalls []string
	FindErr   error
	InsertErr error
	nextID    int
}

func NewMockEnquiryRepo() *MockEnquiryRepo {
	return &MockEnquiryRepo{ByMobile: map[string]*Enquiry{}}
}

func (m *MockEnquiryRepo) FindByMobile(ctx context.Context, mobile string) (*Enquiry, error) {
	m.FindCalls = append(m.FindCalls, mobile)
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	if e, ok := m.ByMobile[mobile]; ok {
		return e, nil
	}
	return nil, ErrEnquiryNotFound
}

func (m *MockEnquiryRepo) Insert(ctx context.Context, e *Enquiry) (string, error) {
	if m.InsertErr != nil {
		return "", m.InsertErr
	}
	m.nextID++
	e.ID = strconv.Itoa(m.nextID)
	m.ByMobile[e.Mobile] = e
	m.Inserted = append(m.Inserted, e)
	return e.ID, nil
}

type fixedAssigner string

func (f fixedAssigner) AssignEmployee(string) string { return string(f) }

func newService(repo EnquiryRepository) *UpsertServiceImpl {
	return &UpsertServiceImpl{
		Repo:     repo,
		Assigner: fixedAssigner("EMP042"),
		Logger:   zap.NewNop(),
		now:      func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) },
	}
}

func lead(name, mobile string) common_models.CanonicalLead {
	return common_models.CanonicalLead{
		ClientName:    name,
		Mobile:        mobile,
		Configuration: common_models.NotSpecified,
		EnquiryFor:    "Greenview",
		Area:          "Wakad",
	}
}

func TestCleanMobile(t *testing.T) {
	assert.Equal(t, "919876543210", CleanMobile("+91 98765-43210"))
	assert.Equal(t, "9876543210", CleanMobile("(987) 654.3210"))
	assert.Empty(t, CleanMobile(" - "))
}

func TestInsertLeadTwiceSkipsSecond(t *testing.T) {
	repo := NewMockEnquiryRepo()
	svc := newService(repo)

	first := svc.InsertLead(context.Background(), lead("Asha", "9876543210"))
	require.True(t, first.Success)
	assert.Equal(t, OutcomeInserted, first.Status)
	assert.Equal(t, "1", first.ID)

	second := svc.InsertLead(context.Background(), lead("Asha", "9876543210"))
	assert.False(t, second.Success)
	assert.Equal(t, OutcomeSkipped, second.Status)
	assert.Equal(t, "Lead already exists", second.Error)
	assert.Len(t, repo.Inserted, 1)
}

func TestInsertLeadMapsStorageColumns(t *testing.T) {
	repo := NewMockEnquiryRepo()
	svc := newService(repo)

	res := svc.InsertLead(context.Background(), lead("  Asha ", "98765 43210"))
	require.True(t, res.Success)

	rec := repo.Inserted[0]
	assert.Equal(t, "Asha", rec.ClientName)
	assert.Equal(t, "9876543210", rec.Mobile)
	assert.Equal(t, common_models.NotSpecified, rec.Budget)
	assert.Equal(t, "2024-03-01", rec.NextFollowUpDate)
	assert.Equal(t, "EMP042", rec.AssignedEmp)
	assert.Equal(t, SourceHousing, rec.Source)
	assert.Equal(t, StatusNew, rec.Status)
}

func TestInsertLeadValidationNeverChecksExistence(t *testing.T) {
	repo := NewMockEnquiryRepo()
	svc := newService(repo)

	res := svc.InsertLead(context.Background(), lead("", "9876543210"))

	assert.False(t, res.Success)
	assert.Equal(t, OutcomeError, res.Status)
	assert.Contains(t, res.Error, "client_name")
	assert.Empty(t, repo.FindCalls)
	assert.Empty(t, repo.Inserted)

	res = svc.InsertLead(context.Background(), lead("Asha", ""))
	assert.Equal(t, OutcomeError, res.Status)
	assert.Contains(t, res.Error, "mobile")
	assert.Empty(t, repo.FindCalls)
}

func TestInsertLeadPersistenceError(t *testing.T) {
	repo := NewMockEnquiryRepo()
	repo.InsertErr = errors.New("duplicate key value violates constraint")
	svc := newService(repo)

	res := svc.InsertLead(context.Background(), lead("Asha", "9876543210"))
	assert.False(t, res.Success)
	assert.Equal(t, OutcomeError, res.Status)
	assert.Equal(t, "duplicate key value violates constraint", res.Error)
}

func TestCheckLeadExistsRetriesCleanedMobile(t *testing.T) {
	repo := NewMockEnquiryRepo()
	repo.ByMobile["9876543210"] = &Enquiry{Mobile: "9876543210"}
	svc := newService(repo)

	assert.True(t, svc.CheckLeadExists(context.Background(), "98765-43210"))
	assert.Equal(t, []string{"98765-43210", "9876543210"}, repo.FindCalls)
}

func TestCheckLeadExistsSingleLookupWhenAlreadyClean(t *testing.T) {
	repo := NewMockEnquiryRepo()
	svc := newService(repo)

	assert.False(t, svc.CheckLeadExists(context.Background(), "9876543210"))
	assert.Equal(t, []string{"9876543210"}, repo.FindCalls)
}

func TestCheckLeadExistsLookupErrorAllowsInsert(t *testing.T) {
	repo := NewMockEnquiryRepo()
	repo.FindErr = errors.New("i/o timeout")
	svc := newService(repo)

	assert.False(t, svc.CheckLeadExists(context.Background(), "9876543210"))

	res := svc.InsertLead(context.Background(), lead("Asha", "9876543210"))
	assert.Equal(t, OutcomeInserted, res.Status)
}

func TestSyncLeadsIsIdempotent(t *testing.T) {
	repo := NewMockEnquiryRepo()
	svc := newService(repo)
	batch := []common_models.CanonicalLead{
		lead("Asha", "9876543210"),
		lead("Ravi", "9123456780"),
		lead("Meera", "9000000001"),
	}

	first := svc.SyncLeads(context.Background(), batch)
	assert.Equal(t, 3, first.Inserted)

	second := svc.SyncLeads(context.Background(), batch)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, len(batch), second.Skipped)
	assert.Equal(t, 0, second.Errors)
}

func TestSyncLeadsConservesCountsAndIsolatesFailures(t *testing.T) {
	repo := NewMockEnquiryRepo()
	repo.ByMobile["9123456780"] = &Enquiry{Mobile: "9123456780"}
	svc := newService(repo)
	batch := []common_models.CanonicalLead{
		lead("Asha", "9876543210"),
		lead("", "9000000002"),
		lead("Ravi", "9123456780"),
		lead("NoPhone", ""),
		lead("Meera", "9000000001"),
	}

	summary := svc.SyncLeads(context.Background(), batch)

	assert.Equal(t, 2, summary.Inserted)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Errors)
	assert.Equal(t, len(batch), summary.Inserted+summary.Skipped+summary.Errors)
	require.Len(t, summary.Details, len(batch))
	for i, d := range summary.Details {
		assert.Equal(t, batch[i], d.Lead)
	}
	assert.Equal(t, OutcomeError, summary.Details[1].Status)
	assert.Equal(t, OutcomeError, summary.Details[3].Status)
	assert.Equal(t, OutcomeSkipped, summary.Details[2].Status)
}

func TestSyncLeadsEmptyBatch(t *testing.T) {
	summary := newService(NewMockEnquiryRepo()).SyncLeads(context.Background(), nil)
	assert.Zero(t, summary.Inserted+summary.Skipped+summary.Errors)
	assert.NotNil(t, summary.Details)
}
