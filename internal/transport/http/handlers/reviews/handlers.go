package reviewshandler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recognition/internal/domain/access"
	"recognition/internal/domain/audit"
	"recognition/internal/domain/reviews"
	"recognition/internal/transport/http/api"
	"recognition/internal/transport/http/middleware"
	"recognition/internal/transport/http/shared"
)

type ReviewService interface {
	DepartmentReviews(ctx context.Context, id access.Identity, params map[string]string) ([]reviews.Review, error)
	Get(ctx context.Context, id access.Identity, reviewID string) (reviews.Review, error)
	Create(ctx context.Context, id access.Identity, employeeID string, sections reviews.Sections) (reviews.Review, error)
	Update(ctx context.Context, id access.Identity, reviewID string, sections reviews.Sections) (reviews.Review, error)
	Delete(ctx context.Context, id access.Identity, reviewID string) error
}

type Handler struct {
	Service ReviewService
	Audit   audit.Recorder
}

func NewHandler(service ReviewService, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/department/reviews", h.handleList)
	r.Post("/department/employees/{employeeID}/reviews", h.handleCreate)
	r.Get("/reviews/{reviewID}", h.handleGet)
	r.Put("/reviews/{reviewID}", h.handleUpdate)
	r.Delete("/reviews/{reviewID}", h.handleDelete)
}

type reviewRequest struct {
	JobKnowledge       string         `json:"jobKnowledge" validate:"required,max=4000"`
	JobKnowledgeScore  *reviews.Score `json:"jobKnowledgeScore" validate:"required"`
	QualityOfWork      string         `json:"qualityOfWork" validate:"required,max=4000"`
	QualityOfWorkScore *reviews.Score `json:"qualityOfWorkScore" validate:"required"`
	Communication      string         `json:"communication" validate:"required,max=4000"`
	CommunicationScore *reviews.Score `json:"communicationScore" validate:"required"`
	Teamwork           string         `json:"teamwork" validate:"required,max=4000"`
	TeamworkScore      *reviews.Score `json:"teamworkScore" validate:"required"`
	Initiative         string         `json:"initiative" validate:"required,max=4000"`
	InitiativeScore    *reviews.Score `json:"initiativeScore" validate:"required"`
	TotalReview        *reviews.Score `json:"totalReview" validate:"required"`
}

func (p reviewRequest) sections() reviews.Sections {
	return reviews.Sections{
		JobKnowledge:       p.JobKnowledge,
		JobKnowledgeScore:  *p.JobKnowledgeScore,
		QualityOfWork:      p.QualityOfWork,
		QualityOfWorkScore: *p.QualityOfWorkScore,
		Communication:      p.Communication,
		CommunicationScore: *p.CommunicationScore,
		Teamwork:           p.Teamwork,
		TeamworkScore:      *p.TeamworkScore,
		Initiative:         p.Initiative,
		InitiativeScore:    *p.InitiativeScore,
		TotalReview:        *p.TotalReview,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	list, err := h.Service.DepartmentReviews(r.Context(), id, shared.QueryParams(r))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, list, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	var payload reviewRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	review, err := h.Service.Create(r.Context(), id, chi.URLParam(r, "employeeID"), payload.sections())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.record(r, id, "review.create", review.ID, nil, review)
	api.Created(w, review, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	review, err := h.Service.Get(r.Context(), id, chi.URLParam(r, "reviewID"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, review, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	reviewID := chi.URLParam(r, "reviewID")
	before, err := h.Service.Get(r.Context(), id, reviewID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	var payload reviewRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	review, err := h.Service.Update(r.Context(), id, reviewID, payload.sections())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.record(r, id, "review.update", review.ID, before, review)
	api.Success(w, review, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	reviewID := chi.URLParam(r, "reviewID")
	if err := h.Service.Delete(r.Context(), id, reviewID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.record(r, id, "review.delete", reviewID, nil, nil)
	api.NoContent(w)
}

func (h *Handler) record(r *http.Request, id access.Identity, action, reviewID string, before, after any) {
	if h.Audit == nil {
		return
	}
	if err := h.Audit.Record(r.Context(), audit.Entry{
		ActorID:    id.UserID,
		Action:     action,
		EntityType: "review",
		EntityID:   reviewID,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         shared.ClientIP(r),
		Before:     before,
		After:      after,
	}); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}
