package goalshandler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recognition/internal/domain/access"
	"recognition/internal/domain/audit"
	"recognition/internal/domain/goals"
	"recognition/internal/transport/http/api"
	"recognition/internal/transport/http/middleware"
	"recognition/internal/transport/http/shared"
)

type GoalService interface {
	List(ctx context.Context, id access.Identity, params map[string]string) ([]goals.Goal, error)
	Get(ctx context.Context, id access.Identity, goalID string) (goals.Goal, error)
	Create(ctx context.Context, id access.Identity, input goals.GoalInput) (goals.Goal, error)
	Update(ctx context.Context, id access.Identity, goalID string, input goals.GoalInput) (goals.Goal, error)
	Delete(ctx context.Context, id access.Identity, goalID string) error
	AppendJournal(ctx context.Context, id access.Identity, goalID, text string) (goals.Journal, error)
	Journal(ctx context.Context, id access.Identity, goalID string) ([]goals.Journal, error)
}

type Handler struct {
	Service GoalService
	Audit   audit.Recorder
}

func NewHandler(service GoalService, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/goals", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{goalID}", h.handleGet)
		r.Put("/{goalID}", h.handleUpdate)
		r.Delete("/{goalID}", h.handleDelete)
		r.Get("/{goalID}/journal", h.handleJournal)
		r.Post("/{goalID}/journal", h.handleAppendJournal)
	})
}

type goalRequest struct {
	Title       string          `json:"title" validate:"max=150"`
	Description string          `json:"description" validate:"max=2000"`
	StartDate   *string         `json:"startDate"`
	EndDate     *string         `json:"endDate"`
	Priority    *goals.Priority `json:"priority" validate:"required"`
	Status      *goals.Status   `json:"status" validate:"required"`
	Progress    *goals.Progress `json:"progress" validate:"required"`
}

func (p goalRequest) input() (goals.GoalInput, error) {
	in := goals.GoalInput{
		Title:       p.Title,
		Description: p.Description,
		Priority:    *p.Priority,
		Status:      *p.Status,
		Progress:    *p.Progress,
	}
	start, err := shared.OptionalDate("startDate", p.StartDate)
	if err != nil {
		return goals.GoalInput{}, err
	}
	if start != nil {
		in.StartDate = *start
	}
	end, err := shared.OptionalDate("endDate", p.EndDate)
	if err != nil {
		return goals.GoalInput{}, err
	}
	in.EndDate = end
	return in, nil
}

// journalRequest carries no tags: the goal lookup must run before the text
// is checked.
type journalRequest struct {
	Journal string `json:"journal"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	list, err := h.Service.List(r.Context(), id, shared.QueryParams(r))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, list, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	var payload goalRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	input, err := payload.input()
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	goal, err := h.Service.Create(r.Context(), id, input)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.record(r, id, "goal.create", goal.ID, nil, goal)
	api.Created(w, goal, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	goal, err := h.Service.Get(r.Context(), id, chi.URLParam(r, "goalID"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, goal, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	goalID := chi.URLParam(r, "goalID")
	before, err := h.Service.Get(r.Context(), id, goalID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	var payload goalRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	input, err := payload.input()
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	goal, err := h.Service.Update(r.Context(), id, goalID, input)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.record(r, id, "goal.update", goal.ID, before, goal)
	api.Success(w, goal, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	goalID := chi.URLParam(r, "goalID")
	if err := h.Service.Delete(r.Context(), id, goalID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.record(r, id, "goal.delete", goalID, nil, nil)
	api.NoContent(w)
}

func (h *Handler) handleJournal(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	entries, err := h.Service.Journal(r.Context(), id, chi.URLParam(r, "goalID"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, entries, requestID)
}

func (h *Handler) handleAppendJournal(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	var payload journalRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	entry, err := h.Service.AppendJournal(r.Context(), id, chi.URLParam(r, "goalID"), payload.Journal)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.record(r, id, "goal.journal.append", entry.GoalID, nil, entry)
	api.Created(w, entry, requestID)
}

func (h *Handler) record(r *http.Request, id access.Identity, action, goalID string, before, after any) {
	if h.Audit == nil {
		return
	}
	if err := h.Audit.Record(r.Context(), audit.Entry{
		ActorID:    id.UserID,
		Action:     action,
		EntityType: "goal",
		EntityID:   goalID,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         shared.ClientIP(r),
		Before:     before,
		After:      after,
	}); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}
