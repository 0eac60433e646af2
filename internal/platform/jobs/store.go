package jobs

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRunStore keeps job history in the job_runs table.
type PGRunStore struct {
	DB *pgxpool.Pool
}

func NewPGRunStore(db *pgxpool.Pool) *PGRunStore {
	return &PGRunStore{DB: db}
}

func (s *PGRunStore) StartRun(ctx context.Context, jobType, subject string) (string, error) {
	var runID string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, subject, status)
    VALUES ($1,$2,'running')
    RETURNING id
  `, jobType, subject).Scan(&runID)
	return runID, err
}

func (s *PGRunStore) FinishRun(ctx context.Context, runID, status string, details []byte) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE job_runs
    SET status = $1, details_json = $2, completed_at = now()
    WHERE id = $3
  `, status, details, runID)
	return err
}
