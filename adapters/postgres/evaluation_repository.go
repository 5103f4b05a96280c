// Package postgres persists evaluation runs and their report sections.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"datacheck/domain/core"
	"datacheck/domain/report"
	"datacheck/ports"
)

// evaluationRepository implements the EvaluationStore interface
type evaluationRepository struct {
	db *sqlx.DB
}

// NewEvaluationRepository creates an evaluation store backed by Postgres.
func NewEvaluationRepository(db *sqlx.DB) ports.EvaluationStore {
	return &evaluationRepository{db: db}
}

// EnsureSchema creates the evaluation tables when absent.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS evaluation_runs (
			id TEXT PRIMARY KEY,
			dataset_name TEXT NOT NULL,
			extended BOOLEAN NOT NULL,
			sections INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS evaluation_sections (
			run_id TEXT NOT NULL REFERENCES evaluation_runs(id) ON DELETE CASCADE,
			position INT NOT NULL,
			name TEXT NOT NULL,
			grid JSONB NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Save inserts a run row plus one section row per report section.
func (r *evaluationRepository) Save(ctx context.Context, datasetName string, extended bool, rep *report.Report) (*ports.RunSummary, error) {
	id := core.NewID()
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO evaluation_runs (id, dataset_name, extended, sections) VALUES ($1, $2, $3, $4)`,
		id, datasetName, extended, rep.Len(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	for i, section := range rep.Sections() {
		grid, err := json.Marshal(section.Grid)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal section %q: %w", section.Name, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO evaluation_sections (run_id, position, name, grid) VALUES ($1, $2, $3, $4)`,
			id, i, section.Name, grid,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert section %q: %w", section.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return r.summary(ctx, id)
}

// Get loads a run summary and reconstructs its report.
func (r *evaluationRepository) Get(ctx context.Context, id core.ID) (*ports.RunSummary, *report.Report, error) {
	summary, err := r.summary(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.QueryxContext(ctx,
		`SELECT name, grid FROM evaluation_sections WHERE run_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sections: %w", err)
	}
	defer rows.Close()

	rep := report.New()
	for rows.Next() {
		var name string
		var raw []byte
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, nil, fmt.Errorf("failed to scan section: %w", err)
		}
		var grid report.Grid
		if err := json.Unmarshal(raw, &grid); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal section %q: %w", name, err)
		}
		rep.Add(name, grid)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate sections: %w", err)
	}
	return summary, rep, nil
}

// List returns the most recent runs, newest first.
func (r *evaluationRepository) List(ctx context.Context, limit int) ([]ports.RunSummary, error) {
	if limit < 1 {
		return nil, &core.ArgumentError{Name: "limit", Reason: "must be a positive integer"}
	}
	var runs []ports.RunSummary
	err := r.db.SelectContext(ctx, &runs,
		`SELECT id, dataset_name, extended, sections, created_at::TEXT AS created_at
		 FROM evaluation_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

func (r *evaluationRepository) summary(ctx context.Context, id core.ID) (*ports.RunSummary, error) {
	var summary ports.RunSummary
	err := r.db.GetContext(ctx, &summary,
		`SELECT id, dataset_name, extended, sections, created_at::TEXT AS created_at
		 FROM evaluation_runs WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	return &summary, nil
}
