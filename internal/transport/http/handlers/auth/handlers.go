package authhandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recognition/internal/domain/access"
	"recognition/internal/domain/audit"
	"recognition/internal/domain/auth"
	"recognition/internal/domain/people"
	"recognition/internal/transport/http/api"
	"recognition/internal/transport/http/middleware"
	"recognition/internal/transport/http/shared"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, auth.User, error)
	Signup(ctx context.Context, username, email, password string) (auth.User, error)
}

type ProfileService interface {
	Profile(ctx context.Context, id access.Identity) (people.Profile, error)
}

type ActivityLister interface {
	ListByActor(ctx context.Context, actorID string, limit, offset int) ([]audit.Event, error)
}

type Handler struct {
	Auth     AuthService
	Profiles ProfileService
	Activity ActivityLister
	Audit    audit.Recorder
}

func NewHandler(authSvc AuthService, profiles ProfileService, activity ActivityLister, auditSvc audit.Recorder) *Handler {
	return &Handler{Auth: authSvc, Profiles: profiles, Activity: activity, Audit: auditSvc}
}

// RegisterPublicRoutes mounts the endpoints reachable without a token.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/signup", h.handleSignup)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.handleMe)
	r.Get("/me/activity", h.handleActivity)
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=128"`
}

type signupRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	token, user, err := h.Auth.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
			return
		}
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{"token": token, "user": user}, requestID)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload signupRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	user, err := h.Auth.Signup(r.Context(), payload.Username, payload.Email, payload.Password)
	switch {
	case errors.Is(err, auth.ErrSignupDisabled):
		api.Fail(w, http.StatusForbidden, "signup_disabled", "self signup is disabled", requestID)
		return
	case errors.Is(err, auth.ErrUsernameTaken):
		api.Fail(w, http.StatusConflict, "username_taken", "username already taken", requestID)
		return
	case err != nil:
		api.FailError(w, err, requestID)
		return
	}
	if h.Audit != nil {
		if err := h.Audit.Record(r.Context(), audit.Entry{
			ActorID:    user.ID,
			Action:     "auth.signup",
			EntityType: "user",
			EntityID:   user.ID,
			RequestID:  requestID,
			IP:         shared.ClientIP(r),
			After:      user,
		}); err != nil {
			slog.Warn("audit auth.signup failed", "err", err)
		}
	}
	api.Created(w, user, requestID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	profile, err := h.Profiles.Profile(r.Context(), id)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, profile, requestID)
}

func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	page := shared.ParsePagination(r, 50, 200)
	events, err := h.Activity.ListByActor(r.Context(), id.UserID, page.Limit, page.Offset)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, events, requestID)
}
