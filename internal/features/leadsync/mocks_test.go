package leadsync

import (
	"context"
	"sync"

	common_models "go-crm-leads/internal/common/models"
	"go-crm-leads/internal/features/enquiry"
	"go-crm-leads/internal/features/housing"
)

type MockLeadClient struct {
	Raws        []housing.RawLead
	Err         error
	FetchCalls  [][2]string
	LatestHours []int
}

func (m *MockLeadClient) FetchLeads(ctx context.Context, start, end string) ([]housing.RawLead, error) {
	m.FetchCalls = append(m.FetchCalls, [2]string{start, end})
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Raws, nil
}

func (m *MockLeadClient) FetchLatestLeads(ctx context.Context, hoursBack int) ([]common_models.CanonicalLead, error) {
	m.LatestHours = append(m.LatestHours, hoursBack)
	if m.Err != nil {
		return nil, m.Err
	}
	return housing.ProcessLeads(m.Raws, fixedNow), nil
}

type MockWatermark struct {
	Value   int64
	Reads   int
	Updates []int64
}

func (m *MockWatermark) GetLastFetchTimestamp(ctx context.Context) int64 {
	m.Reads++
	return m.Value
}

func (m *MockWatermark) UpdateLastFetchTimestamp(ctx context.Context, ts int64) {
	m.Updates = append(m.Updates, ts)
	m.Value = ts
}

// MockUpserter inserts every valid lead once and skips repeats by mobile.
type MockUpserter struct {
	seen   map[string]bool
	Calls  int
	Panics bool
}

func (m *MockUpserter) CheckLeadExists(ctx context.Context, mobile string) bool {
	return m.seen[enquiry.CleanMobile(mobile)]
}

func (m *MockUpserter) AssignEmployee(area string) string { return "EMP001" }

func (m *MockUpserter) InsertLead(ctx context.Context, lead common_models.CanonicalLead) enquiry.InsertResult {
	if lead.ClientName == "" || enquiry.CleanMobile(lead.Mobile) == "" {
		return enquiry.InsertResult{Status: enquiry.OutcomeError, Error: "Missing required fields"}
	}
	if m.seen == nil {
		m.seen = map[string]bool{}
	}
	mobile := enquiry.CleanMobile(lead.Mobile)
	if m.seen[mobile] {
		return enquiry.InsertResult{Status: enquiry.OutcomeSkipped, Error: enquiry.ErrLeadAlreadyExists}
	}
	m.seen[mobile] = true
	return enquiry.InsertResult{Success: true, ID: mobile, Status: enquiry.OutcomeInserted}
}

func (m *MockUpserter) SyncLeads(ctx context.Context, leads []common_models.CanonicalLead) enquiry.SyncSummary {
	m.Calls++
	if m.Panics {
		panic("store exploded")
	}
	summary := enquiry.SyncSummary{Details: []enquiry.LeadOutcome{}}
	for _, lead := range leads {
		res := m.InsertLead(ctx, lead)
		summary.Details = append(summary.Details, enquiry.LeadOutcome{Lead: lead, Status: res.Status, ID: res.ID, Error: res.Error})
		switch res.Status {
		case enquiry.OutcomeInserted:
			summary.Inserted++
		case enquiry.OutcomeSkipped:
			summary.Skipped++
		default:
			summary.Errors++
		}
	}
	return summary
}

type MockRunLogRepo struct {
	Runs      []*SyncRun
	CreateErr error
}

func (m *MockRunLogRepo) Create(ctx context.Context, run *SyncRun) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Runs = append(m.Runs, run)
	return nil
}

func (m *MockRunLogRepo) Get(ctx context.Context, runID string) (*SyncRun, error) {
	for _, r := range m.Runs {
		if r.RunID == runID {
			return r, nil
		}
	}
	return nil, ErrRunNotFound
}

func (m *MockRunLogRepo) List(ctx context.Context, limit int) ([]SyncRun, error) {
	out := []SyncRun{}
	for _, r := range m.Runs {
		out = append(out, *r)
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []RunEvent
}

func (p *recordingPublisher) Publish(event RunEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}
