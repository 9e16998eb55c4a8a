package postgres

import (
	"context"
	"database/sql"

	"github.com/dermalyze/ratioplot/internal/repository"
	"github.com/dermalyze/ratioplot/pkg/models"
)

// PostgresRunRepository implements RunRepository for PostgreSQL
type PostgresRunRepository struct {
	db *sql.DB
}

// NewPostgresRunRepository creates a new PostgreSQL run repository
func NewPostgresRunRepository(db *sql.DB) repository.RunRepository {
	return &PostgresRunRepository{db: db}
}

// Create inserts a new plot run record
func (r *PostgresRunRepository) Create(ctx context.Context, run *models.PlotRun) error {
	query := `
		INSERT INTO plot_runs (id, mel_records, mel_binned, nv_records, nv_binned, output_path, plot_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Melanoma.Records,
		run.Melanoma.Binned,
		run.Normal.Records,
		run.Normal.Binned,
		run.OutputPath,
		run.PlotURL,
		run.CreatedAt)

	return err
}

// GetByID retrieves a plot run by ID
func (r *PostgresRunRepository) GetByID(ctx context.Context, id string) (*models.PlotRun, error) {
	query := `
		SELECT id, mel_records, mel_binned, nv_records, nv_binned, output_path, plot_url, created_at
		FROM plot_runs
		WHERE id = $1`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRecent retrieves the most recent plot runs, newest first
func (r *PostgresRunRepository) ListRecent(ctx context.Context, limit int) ([]*models.PlotRun, error) {
	query := `
		SELECT id, mel_records, mel_binned, nv_records, nv_binned, output_path, plot_url, created_at
		FROM plot_runs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.PlotRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.PlotRun, error) {
	var run models.PlotRun
	var plotURL sql.NullString

	err := s.Scan(
		&run.ID,
		&run.Melanoma.Records,
		&run.Melanoma.Binned,
		&run.Normal.Records,
		&run.Normal.Binned,
		&run.OutputPath,
		&plotURL,
		&run.CreatedAt)

	if err != nil {
		return nil, err
	}

	if plotURL.Valid {
		run.PlotURL = &plotURL.String
	}

	return &run, nil
}
