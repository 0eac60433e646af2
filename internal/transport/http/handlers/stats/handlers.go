package statshandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recognition/internal/domain/access"
	"recognition/internal/domain/stats"
	"recognition/internal/transport/http/api"
	"recognition/internal/transport/http/middleware"
)

type StatsService interface {
	Summary(ctx context.Context, id access.Identity) (stats.Summary, error)
	ChartPath(ctx context.Context, id access.Identity, kind string) (string, error)
}

type Handler struct {
	Service StatsService
}

func NewHandler(service StatsService) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.handleSummary)
	r.Get("/stats/charts/{kind}", h.handleChart)
}

// handleSummary answers from the current goals. Chart files are rendered in
// the background and may still show the previous summary.
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	summary, err := h.Service.Summary(r.Context(), id)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, summary, requestID)
}

func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	path, err := h.Service.ChartPath(r.Context(), id, chi.URLParam(r, "kind"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, r, path)
}
