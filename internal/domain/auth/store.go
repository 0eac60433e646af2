package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"recognition/internal/domain/apperr"
)

type StoreAPI interface {
	FindUserByUsername(ctx context.Context, username string) (UserRecord, error)
	CreateUser(ctx context.Context, username, email, passwordHash string) (User, error)
	GetUser(ctx context.Context, userID string) (User, error)
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (UserRecord, error) {
	var out UserRecord
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, email, password_hash, created_at
    FROM users
    WHERE lower(username) = lower($1)
  `, username).Scan(&out.ID, &out.Username, &out.Email, &out.PasswordHash, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return UserRecord{}, apperr.NotFound("user", username)
	}
	return out, err
}

func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string) (User, error) {
	var out User
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (username, email, password_hash)
    VALUES ($1,$2,$3)
    RETURNING id, username, email, created_at
  `, username, email, passwordHash).Scan(&out.ID, &out.Username, &out.Email, &out.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return User{}, ErrUsernameTaken
	}
	return out, err
}

func (s *Store) GetUser(ctx context.Context, userID string) (User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return User{}, apperr.NotFound("user", userID)
	}
	var out User
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, email, created_at
    FROM users
    WHERE id = $1
  `, userID).Scan(&out.ID, &out.Username, &out.Email, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound("user", userID)
	}
	return out, err
}
