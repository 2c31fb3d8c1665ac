package leadsync

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go-crm-leads/internal/features/enquiry"
)

type PostgresRunLogRepository struct {
	db *sql.DB
}

func NewPostgresRunLogRepository(db *sql.DB) RunLogRepository {
	return &PostgresRunLogRepository{db: db}
}

// runPayload is the JSONB column holding the variable part of a run.
type runPayload struct {
	Stats   *SyncStats            `json:"stats,omitempty"`
	Details []enquiry.LeadOutcome `json:"details,omitempty"`
}

func (r *PostgresRunLogRepository) Create(ctx context.Context, run *SyncRun) error {
	payload, err := json.Marshal(runPayload{Stats: run.Stats, Details: run.Details})
	if err != nil {
		return fmt.Errorf("failed to encode run payload: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO lead_sync_logs (run_id, mode, start_time, end_time, success, message, payload)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.RunID, string(run.Mode), run.StartTime, run.EndTime, run.Success, run.Message, payload,
	)
	return err
}

func (r *PostgresRunLogRepository) Get(ctx context.Context, runID string) (*SyncRun, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT run_id, mode, start_time, end_time, success, message, payload
		 FROM lead_sync_logs WHERE run_id = $1`, runID)

	run, err := scanRun(row.Scan, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return run, err
}

func (r *PostgresRunLogRepository) List(ctx context.Context, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT run_id, mode, start_time, end_time, success, message, payload
		 FROM lead_sync_logs ORDER BY start_time DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []SyncRun{}
	for rows.Next() {
		run, err := scanRun(rows.Scan, false)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func scanRun(scan func(dest ...any) error, withDetails bool) (*SyncRun, error) {
	var (
		run     SyncRun
		mode    string
		payload []byte
	)
	if err := scan(&run.RunID, &mode, &run.StartTime, &run.EndTime, &run.Success, &run.Message, &payload); err != nil {
		return nil, err
	}
	run.Mode = Mode(mode)

	if len(payload) > 0 {
		var p runPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("failed to decode run payload: %w", err)
		}
		run.Stats = p.Stats
		if withDetails {
			run.Details = p.Details
		}
	}
	return &run, nil
}
