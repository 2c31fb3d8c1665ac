package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-crm-leads/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// PostgresDB wraps the relational store. DB is nil unless STORE_DRIVER=postgres.
type PostgresDB struct {
	DB *sql.DB
}

// NewPostgres opens the PostgreSQL pool when the store driver asks for it.
func NewPostgres(lc fx.Lifecycle, cfg *config.Config) (*PostgresDB, error) {
	if !cfg.UsesPostgres() {
		return &PostgresDB{}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	zap.L().Info("Connected to PostgreSQL")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			zap.L().Info("Closing PostgreSQL pool")
			return db.Close()
		},
	})

	return &PostgresDB{DB: db}, nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS enquiries (
		id BIGSERIAL PRIMARY KEY,
		client_name TEXT NOT NULL,
		mobile TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		configuration TEXT NOT NULL DEFAULT '',
		enquiry_for TEXT NOT NULL DEFAULT '',
		property_type TEXT NOT NULL DEFAULT '',
		created_date TEXT NOT NULL DEFAULT '',
		budget TEXT NOT NULL DEFAULT '',
		area TEXT NOT NULL DEFAULT '',
		remarks TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		assigned_emp TEXT NOT NULL DEFAULT '',
		next_follow_up_date TEXT NOT NULL DEFAULT '',
		inserted_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS enquiries_mobile_idx ON enquiries (mobile)`,
	`CREATE TABLE IF NOT EXISTS app_config (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS lead_sync_logs (
		run_id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ,
		success BOOLEAN NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		payload JSONB NOT NULL
	)`,
}

// EnsureSchema creates the tables the repositories expect.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
