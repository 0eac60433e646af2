package reviewshandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"recognition/internal/domain/access"
	"recognition/internal/domain/apperr"
	"recognition/internal/domain/audit"
	"recognition/internal/domain/people"
	"recognition/internal/domain/reviews"
	"recognition/internal/transport/http/middleware"
)

const (
	empAda   = "6f1d2a8e-3b4c-4d5e-8f90-112233445566"
	empGrace = "6f1d2a8e-3b4c-4d5e-8f90-112233445577"
)

type reviewStore struct {
	reviews map[string]reviews.Review
	seq     int
}

func (s *reviewStore) ListReviewsByManager(_ context.Context, managerID string, filter reviews.Filter) ([]reviews.Review, error) {
	var out []reviews.Review
	for i := 1; i <= s.seq; i++ {
		r, ok := s.reviews[fmt.Sprintf("rev-%d", i)]
		if ok && r.ManagerID == managerID && filter.Match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *reviewStore) GetReview(_ context.Context, reviewID string) (reviews.Review, error) {
	r, ok := s.reviews[reviewID]
	if !ok {
		return reviews.Review{}, apperr.NotFound("review", reviewID)
	}
	return r, nil
}

func (s *reviewStore) CreateReview(_ context.Context, managerID, employeeID string, sections reviews.Sections) (reviews.Review, error) {
	s.seq++
	r := reviews.Review{
		ID:            fmt.Sprintf("rev-%d", s.seq),
		ManagerID:     managerID,
		ManagerUserID: "u-" + managerID,
		EmployeeID:    employeeID,
		CreatedDate:   time.Date(2023+s.seq, time.June, 1, 0, 0, 0, 0, time.UTC),
		Sections:      sections,
	}
	s.reviews[r.ID] = r
	return r, nil
}

func (s *reviewStore) UpdateReview(_ context.Context, reviewID string, sections reviews.Sections) (reviews.Review, error) {
	r := s.reviews[reviewID]
	r.Sections = sections
	s.reviews[reviewID] = r
	return r, nil
}

func (s *reviewStore) DeleteReview(_ context.Context, reviewID string) error {
	delete(s.reviews, reviewID)
	return nil
}

type directory map[string]people.Employee

func (d directory) FindEmployee(_ context.Context, employeeID string) (people.Employee, error) {
	e, ok := d[employeeID]
	if !ok {
		return people.Employee{}, apperr.NotFound("employee", employeeID)
	}
	return e, nil
}

type countingAudit struct {
	count int
}

func (c *countingAudit) Record(context.Context, audit.Entry) error {
	c.count++
	return nil
}

var identities = map[string]access.Identity{
	"boss":  {UserID: "u-mgr-1", ManagerID: "mgr-1"},
	"rival": {UserID: "u-mgr-2", ManagerID: "mgr-2"},
	"ada":   {UserID: "u-ada", EmployeeID: empAda},
}

func newRouter() (http.Handler, *reviewStore, *countingAudit) {
	store := &reviewStore{reviews: map[string]reviews.Review{}}
	svc := reviews.NewService(store, directory{
		empAda:   {ID: empAda, ManagerID: "mgr-1"},
		empGrace: {ID: empGrace, ManagerID: "mgr-1"},
	})
	rec := &countingAudit{}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if id, ok := identities[req.Header.Get("X-Test-User")]; ok {
				req = req.WithContext(middleware.WithIdentity(req.Context(), id))
			}
			next.ServeHTTP(w, req)
		})
	})
	NewHandler(svc, rec).RegisterRoutes(r)
	return r, store, rec
}

func do(t *testing.T, handler http.Handler, user, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("X-Test-User", user)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func reviewBody(total string) string {
	return `{"jobKnowledge":"deep","jobKnowledgeScore":15,` +
		`"qualityOfWork":"careful","qualityOfWorkScore":"Meets Expectations",` +
		`"communication":"clear","communicationScore":8,` +
		`"teamwork":"helpful","teamworkScore":0,` +
		`"initiative":"proactive","initiativeScore":15,` +
		`"totalReview":` + total + `}`
}

func TestCreateReview(t *testing.T) {
	tests := []struct {
		name   string
		user   string
		path   string
		body   string
		status int
	}{
		{name: "manager creates", user: "boss", path: "/department/employees/" + empAda + "/reviews", body: reviewBody("15"), status: http.StatusCreated},
		{name: "employee forbidden", user: "ada", path: "/department/employees/" + empAda + "/reviews", body: reviewBody("15"), status: http.StatusForbidden},
		{name: "unknown employee", user: "boss", path: "/department/employees/6f1d2a8e-3b4c-4d5e-8f90-000000000000/reviews", body: reviewBody("8"), status: http.StatusNotFound},
		{name: "score outside tiers", user: "boss", path: "/department/employees/" + empAda + "/reviews", body: reviewBody("10"), status: http.StatusBadRequest},
		{name: "missing total", user: "boss", path: "/department/employees/" + empAda + "/reviews", body: `{"jobKnowledge":"x","jobKnowledgeScore":8}`, status: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, _, _ := newRouter()
			rec := do(t, router, tc.user, http.MethodPost, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
		})
	}
}

func TestReviewOwnership(t *testing.T) {
	router, store, rec := newRouter()
	do(t, router, "boss", http.MethodPost, "/department/employees/"+empAda+"/reviews", reviewBody("8"))

	tests := []struct {
		name   string
		user   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "author reads", user: "boss", method: http.MethodGet, path: "/reviews/rev-1", status: http.StatusOK},
		{name: "other manager reads", user: "rival", method: http.MethodGet, path: "/reviews/rev-1", status: http.StatusForbidden},
		{name: "missing review", user: "rival", method: http.MethodGet, path: "/reviews/rev-9", status: http.StatusNotFound},
		{name: "other manager updates", user: "rival", method: http.MethodPut, path: "/reviews/rev-1", body: reviewBody("15"), status: http.StatusForbidden},
		{name: "author updates", user: "boss", method: http.MethodPut, path: "/reviews/rev-1", body: reviewBody("15"), status: http.StatusOK},
		{name: "other manager deletes", user: "rival", method: http.MethodDelete, path: "/reviews/rev-1", status: http.StatusForbidden},
		{name: "author deletes", user: "boss", method: http.MethodDelete, path: "/reviews/rev-1", status: http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := do(t, router, tc.user, tc.method, tc.path, tc.body)
			if got.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", got.Code, tc.status, got.Body.String())
			}
		})
	}
	if len(store.reviews) != 0 {
		t.Fatal("review should be deleted")
	}
	if rec.count != 3 {
		t.Fatalf("audit count = %d, want 3", rec.count)
	}
}

func TestDepartmentReviewsFilters(t *testing.T) {
	router, _, _ := newRouter()
	do(t, router, "boss", http.MethodPost, "/department/employees/"+empAda+"/reviews", reviewBody("8"))
	do(t, router, "boss", http.MethodPost, "/department/employees/"+empGrace+"/reviews", reviewBody("15"))

	tests := []struct {
		name   string
		query  string
		status int
		count  int
	}{
		{name: "all", query: "", status: http.StatusOK, count: 2},
		{name: "by year", query: "?year=2025", status: http.StatusOK, count: 1},
		{name: "bad year ignored", query: "?year=abc", status: http.StatusOK, count: 2},
		{name: "by employee", query: "?employee=" + empAda, status: http.StatusOK, count: 1},
		{name: "bad employee", query: "?employee=ada", status: http.StatusBadRequest},
		{name: "by total", query: "?review=15", status: http.StatusOK, count: 1},
		{name: "total outside tiers", query: "?review=3", status: http.StatusOK, count: 0},
		{name: "bad total", query: "?review=high", status: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, "boss", http.MethodGet, "/department/reviews"+tc.query, "")
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.status != http.StatusOK {
				return
			}
			var env struct {
				Data []reviews.Review `json:"data"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(env.Data) != tc.count {
				t.Fatalf("expected %d reviews, got %d", tc.count, len(env.Data))
			}
		})
	}

	if rec := do(t, router, "rival", http.MethodGet, "/department/reviews", ""); rec.Code != http.StatusOK {
		t.Fatalf("rival status = %d", rec.Code)
	}
	if rec := do(t, router, "ada", http.MethodGet, "/department/reviews", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("employee status = %d", rec.Code)
	}
}
