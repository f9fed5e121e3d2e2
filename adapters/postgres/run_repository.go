package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"faqreport/domain/core"
	"faqreport/domain/run"
	"faqreport/ports"

	"github.com/jmoiron/sqlx"
)

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new Postgres run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// EnsureTable creates the report_runs table if it does not exist
func EnsureTable(ctx context.Context, db *sqlx.DB) error {
	const query = `CREATE TABLE IF NOT EXISTS report_runs (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		started_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ,
		manifest    JSONB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create report_runs table: %w", err)
	}
	return nil
}

// Save inserts or replaces a run manifest
func (r *runRepository) Save(ctx context.Context, m *run.Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	const query = `INSERT INTO report_runs (id, source, started_at, finished_at, manifest)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			source = EXCLUDED.source,
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at,
			manifest = EXCLUDED.manifest`

	var finished *time.Time
	if !m.FinishedAt.IsZero() {
		t := m.FinishedAt.Time()
		finished = &t
	}

	if _, err := r.db.ExecContext(ctx, query,
		m.RunID.String(), m.Source, m.StartedAt.Time(), finished, payload,
	); err != nil {
		return fmt.Errorf("failed to save run manifest: %w", err)
	}
	return nil
}

// GetByID retrieves a run manifest by its ID
func (r *runRepository) GetByID(ctx context.Context, id core.RunID) (*run.Manifest, error) {
	const query = `SELECT manifest FROM report_runs WHERE id = $1`

	var payload []byte
	if err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("failed to get run manifest: %w", err)
	}

	var m run.Manifest
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	return &m, nil
}

// List returns the most recent run manifests, newest first
func (r *runRepository) List(ctx context.Context, limit int) ([]*run.Manifest, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT manifest FROM report_runs ORDER BY started_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list run manifests: %w", err)
	}
	defer rows.Close()

	var manifests []*run.Manifest
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan run manifest: %w", err)
		}
		var m run.Manifest
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
		manifests = append(manifests, &m)
	}
	return manifests, rows.Err()
}
