package reviews

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

const reviewColumns = `r.id, r.manager_id, COALESCE(m.user_id::text, ''), r.employee_id, r.created_date,
    r.job_knowledge, r.job_knowledge_score, r.quality_of_work, r.quality_of_work_score,
    r.communication, r.communication_score, r.teamwork, r.teamwork_score,
    r.initiative, r.initiative_score, r.total_review`

func (s *Store) ListReviewsByManager(ctx context.Context, managerID string, filter Filter) ([]Review, error) {
	query := "SELECT " + reviewColumns + " FROM reviews r JOIN managers m ON m.id = r.manager_id WHERE r.manager_id = $1"
	where, args := filter.clauses([]any{managerID})
	query += where + " ORDER BY r.created_date, r.id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, review)
	}
	return out, rows.Err()
}

func (s *Store) GetReview(ctx context.Context, reviewID string) (Review, error) {
	if !validID(reviewID) {
		return Review{}, apperr.NotFound("review", reviewID)
	}
	review, err := scanReview(s.DB.QueryRow(ctx,
		"SELECT "+reviewColumns+" FROM reviews r JOIN managers m ON m.id = r.manager_id WHERE r.id = $1", reviewID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, apperr.NotFound("review", reviewID)
	}
	return review, err
}

func (s *Store) CreateReview(ctx context.Context, managerID, employeeID string, sec Sections) (Review, error) {
	return scanReview(s.DB.QueryRow(ctx, `
    WITH r AS (
      INSERT INTO reviews (manager_id, employee_id,
        job_knowledge, job_knowledge_score, quality_of_work, quality_of_work_score,
        communication, communication_score, teamwork, teamwork_score,
        initiative, initiative_score, total_review)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
      RETURNING *
    )
    SELECT `+reviewColumns+` FROM r JOIN managers m ON m.id = r.manager_id`,
		managerID, employeeID,
		sec.JobKnowledge, int16(sec.JobKnowledgeScore), sec.QualityOfWork, int16(sec.QualityOfWorkScore),
		sec.Communication, int16(sec.CommunicationScore), sec.Teamwork, int16(sec.TeamworkScore),
		sec.Initiative, int16(sec.InitiativeScore), int16(sec.TotalReview)))
}

func (s *Store) UpdateReview(ctx context.Context, reviewID string, sec Sections) (Review, error) {
	if !validID(reviewID) {
		return Review{}, apperr.NotFound("review", reviewID)
	}
	review, err := scanReview(s.DB.QueryRow(ctx, `
    WITH r AS (
      UPDATE reviews
      SET job_knowledge = $1, job_knowledge_score = $2, quality_of_work = $3, quality_of_work_score = $4,
          communication = $5, communication_score = $6, teamwork = $7, teamwork_score = $8,
          initiative = $9, initiative_score = $10, total_review = $11
      WHERE id = $12
      RETURNING *
    )
    SELECT `+reviewColumns+` FROM r JOIN managers m ON m.id = r.manager_id`,
		sec.JobKnowledge, int16(sec.JobKnowledgeScore), sec.QualityOfWork, int16(sec.QualityOfWorkScore),
		sec.Communication, int16(sec.CommunicationScore), sec.Teamwork, int16(sec.TeamworkScore),
		sec.Initiative, int16(sec.InitiativeScore), int16(sec.TotalReview), reviewID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, apperr.NotFound("review", reviewID)
	}
	return review, err
}

func (s *Store) DeleteReview(ctx context.Context, reviewID string) error {
	if !validID(reviewID) {
		return apperr.NotFound("review", reviewID)
	}
	tag, err := s.DB.Exec(ctx, "DELETE FROM reviews WHERE id = $1", reviewID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("review", reviewID)
	}
	return nil
}

func scanReview(row pgx.Row) (Review, error) {
	var r Review
	var scores [6]int16
	if err := row.Scan(&r.ID, &r.ManagerID, &r.ManagerUserID, &r.EmployeeID, &r.CreatedDate,
		&r.JobKnowledge, &scores[0], &r.QualityOfWork, &scores[1],
		&r.Communication, &scores[2], &r.Teamwork, &scores[3],
		&r.Initiative, &scores[4], &scores[5]); err != nil {
		return Review{}, err
	}
	r.JobKnowledgeScore = Score(scores[0])
	r.QualityOfWorkScore = Score(scores[1])
	r.CommunicationScore = Score(scores[2])
	r.TeamworkScore = Score(scores[3])
	r.InitiativeScore = Score(scores[4])
	r.TotalReview = Score(scores[5])
	return r, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
