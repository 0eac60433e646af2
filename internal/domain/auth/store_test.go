package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"recognition/internal/domain/apperr"
	"recognition/internal/domain/auth"
	"recognition/internal/platform/db/dbtest"
)

func TestStoreSignupAndLogin(t *testing.T) {
	pool := dbtest.Open(t)
	store := auth.NewStore(pool)
	svc := auth.NewService(store, "test-secret", time.Hour, true)
	ctx := context.Background()

	created, err := svc.Signup(ctx, " Ada ", "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if created.Username != "Ada" || created.ID == "" {
		t.Fatalf("unexpected user %+v", created)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "exact", username: "Ada", password: "correct horse"},
		{name: "case insensitive", username: "ada", password: "correct horse"},
		{name: "wrong password", username: "ada", password: "battery", wantErr: auth.ErrInvalidCredentials},
		{name: "unknown user", username: "grace", password: "correct horse", wantErr: auth.ErrInvalidCredentials},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token, user, err := svc.Login(ctx, tc.username, tc.password)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil || token == "" || user.ID != created.ID {
				t.Fatalf("login = %q %+v %v", token, user, err)
			}
		})
	}

	if _, err := svc.Signup(ctx, "ADA", "", "pw"); !errors.Is(err, auth.ErrUsernameTaken) {
		t.Fatalf("duplicate signup: %v", err)
	}
	if _, err := store.CreateUser(ctx, "ada", "", "hash"); !errors.Is(err, auth.ErrUsernameTaken) {
		t.Fatalf("unique index must map to ErrUsernameTaken, got %v", err)
	}

	got, err := store.GetUser(ctx, created.ID)
	if err != nil || got.Email != "ada@example.com" {
		t.Fatalf("get user = %+v, %v", got, err)
	}
	if _, err := store.GetUser(ctx, "not-a-uuid"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("get malformed id: %v", err)
	}
}
