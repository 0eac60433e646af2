package departmenthandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recognition/internal/domain/access"
	"recognition/internal/domain/goals"
	"recognition/internal/domain/people"
	"recognition/internal/transport/http/api"
	"recognition/internal/transport/http/middleware"
	"recognition/internal/transport/http/shared"
)

type EmployeeService interface {
	DepartmentEmployees(ctx context.Context, id access.Identity) ([]people.Employee, error)
	Employee(ctx context.Context, id access.Identity, employeeID string) (people.Employee, error)
}

type GoalService interface {
	EmployeeGoals(ctx context.Context, id access.Identity, employeeID string, params map[string]string) ([]goals.Goal, error)
}

// Handler serves the manager's view of their department.
type Handler struct {
	People EmployeeService
	Goals  GoalService
}

func NewHandler(peopleSvc EmployeeService, goalSvc GoalService) *Handler {
	return &Handler{People: peopleSvc, Goals: goalSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/department/employees", h.handleListEmployees)
	r.Get("/department/employees/{employeeID}", h.handleGetEmployee)
	r.Get("/department/employees/{employeeID}/goals", h.handleEmployeeGoals)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	employees, err := h.People.DepartmentEmployees(r.Context(), id)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	employee, err := h.People.Employee(r.Context(), id, chi.URLParam(r, "employeeID"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, employee, requestID)
}

func (h *Handler) handleEmployeeGoals(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	list, err := h.Goals.EmployeeGoals(r.Context(), id, chi.URLParam(r, "employeeID"), shared.QueryParams(r))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, list, requestID)
}
