package goals

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recognition/internal/domain/apperr"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const goalColumns = `id, COALESCE(owner_id::text, ''), COALESCE(title, ''), COALESCE(description, ''), start_date, end_date, priority, status, progress, created_at`

func (s *Store) ListGoalsByOwner(ctx context.Context, ownerID string, filter Filter) ([]Goal, error) {
	query := "SELECT " + goalColumns + " FROM goals WHERE owner_id = $1"
	where, args := filter.clauses([]any{ownerID})
	query += where + " ORDER BY created_at, id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, goal)
	}
	return out, rows.Err()
}

func (s *Store) GetGoal(ctx context.Context, goalID string) (Goal, error) {
	if !validID(goalID) {
		return Goal{}, apperr.NotFound("goal", goalID)
	}
	goal, err := scanGoal(s.DB.QueryRow(ctx, "SELECT "+goalColumns+" FROM goals WHERE id = $1", goalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, apperr.NotFound("goal", goalID)
	}
	return goal, err
}

func (s *Store) CreateGoal(ctx context.Context, ownerID string, input GoalInput) (Goal, error) {
	return scanGoal(s.DB.QueryRow(ctx, `
    INSERT INTO goals (owner_id, title, description, start_date, end_date, priority, status, progress)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING `+goalColumns,
		ownerID, input.Title, input.Description, input.StartDate, input.EndDate,
		int16(input.Priority), int16(input.Status), int16(input.Progress)))
}

func (s *Store) UpdateGoal(ctx context.Context, goalID string, input GoalInput) (Goal, error) {
	if !validID(goalID) {
		return Goal{}, apperr.NotFound("goal", goalID)
	}
	goal, err := scanGoal(s.DB.QueryRow(ctx, `
    UPDATE goals
    SET title = $1, description = $2, start_date = $3, end_date = $4, priority = $5, status = $6, progress = $7
    WHERE id = $8
    RETURNING `+goalColumns,
		input.Title, input.Description, input.StartDate, input.EndDate,
		int16(input.Priority), int16(input.Status), int16(input.Progress), goalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, apperr.NotFound("goal", goalID)
	}
	return goal, err
}

func (s *Store) DeleteGoal(ctx context.Context, goalID string) error {
	if !validID(goalID) {
		return apperr.NotFound("goal", goalID)
	}
	tag, err := s.DB.Exec(ctx, "DELETE FROM goals WHERE id = $1", goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("goal", goalID)
	}
	return nil
}

func (s *Store) AppendJournal(ctx context.Context, goalID, ownerID, text string) (Journal, error) {
	var entry Journal
	err := s.DB.QueryRow(ctx, `
    INSERT INTO goal_journals (goal_id, owner_id, journal)
    VALUES ($1,$2,$3)
    RETURNING id, goal_id, COALESCE(owner_id::text, ''), journal, journal_date
  `, goalID, nullIfEmpty(ownerID), text).Scan(&entry.ID, &entry.GoalID, &entry.OwnerID, &entry.Journal, &entry.JournalDate)
	return entry, err
}

func (s *Store) ListJournal(ctx context.Context, goalID string) ([]Journal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, goal_id, COALESCE(owner_id::text, ''), journal, journal_date
    FROM goal_journals
    WHERE goal_id = $1
    ORDER BY journal_date DESC, id DESC
  `, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Journal
	for rows.Next() {
		var entry Journal
		if err := rows.Scan(&entry.ID, &entry.GoalID, &entry.OwnerID, &entry.Journal, &entry.JournalDate); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func scanGoal(row pgx.Row) (Goal, error) {
	var g Goal
	var priority, status, progress int16
	if err := row.Scan(&g.ID, &g.OwnerID, &g.Title, &g.Description, &g.StartDate, &g.EndDate, &priority, &status, &progress, &g.CreatedAt); err != nil {
		return Goal{}, err
	}
	g.Priority = Priority(priority)
	g.Status = Status(status)
	g.Progress = Progress(progress)
	return g, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
