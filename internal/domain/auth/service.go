package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"recognition/internal/domain/apperr"
)

type Service struct {
	Store       StoreAPI
	Secret      string
	TokenTTL    time.Duration
	AllowSignup bool
}

func NewService(store StoreAPI, secret string, ttl time.Duration, allowSignup bool) *Service {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Service{Store: store, Secret: secret, TokenTTL: ttl, AllowSignup: allowSignup}
}

// Login checks the password and returns a signed bearer token.
func (s *Service) Login(ctx context.Context, username, password string) (string, User, error) {
	record, err := s.Store.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}
	if err := CheckPassword(record.PasswordHash, password); err != nil {
		return "", User{}, ErrInvalidCredentials
	}
	token, err := GenerateToken(s.Secret, Claims{UserID: record.ID, Username: record.Username}, s.TokenTTL)
	if err != nil {
		return "", User{}, err
	}
	return token, record.User, nil
}

func (s *Service) Signup(ctx context.Context, username, email, password string) (User, error) {
	if !s.AllowSignup {
		return User{}, ErrSignupDisabled
	}
	username = strings.TrimSpace(username)
	if _, err := s.Store.FindUserByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return User{}, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	return s.Store.CreateUser(ctx, username, strings.TrimSpace(email), hash)
}

func (s *Service) User(ctx context.Context, userID string) (User, error) {
	return s.Store.GetUser(ctx, userID)
}
