package reviews

import (
	"context"

	"recognition/internal/domain/access"
	"recognition/internal/domain/people"
)

type EmployeeFinder interface {
	FindEmployee(ctx context.Context, employeeID string) (people.Employee, error)
}

type Service struct {
	Store     StoreAPI
	Employees EmployeeFinder
}

func NewService(store StoreAPI, employees EmployeeFinder) *Service {
	return &Service{Store: store, Employees: employees}
}

// DepartmentReviews lists the reviews authored by the calling manager.
func (s *Service) DepartmentReviews(ctx context.Context, id access.Identity, params map[string]string) ([]Review, error) {
	if err := access.Check(id, access.ActionViewDepartment, access.Target{}); err != nil {
		return nil, err
	}
	filter, err := ParseFilter(params)
	if err != nil {
		return nil, err
	}
	out, err := s.Store.ListReviewsByManager(ctx, id.ManagerID, filter)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Review{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id access.Identity, reviewID string) (Review, error) {
	return s.authorized(ctx, id, access.ActionViewReview, reviewID)
}

// Create records a review of employeeID authored by the calling manager.
func (s *Service) Create(ctx context.Context, id access.Identity, employeeID string, sections Sections) (Review, error) {
	if err := access.Check(id, access.ActionCreateReview, access.Target{}); err != nil {
		return Review{}, err
	}
	employee, err := s.Employees.FindEmployee(ctx, employeeID)
	if err != nil {
		return Review{}, err
	}
	if err := sections.Validate(); err != nil {
		return Review{}, err
	}
	return s.Store.CreateReview(ctx, id.ManagerID, employee.ID, sections)
}

func (s *Service) Update(ctx context.Context, id access.Identity, reviewID string, sections Sections) (Review, error) {
	if _, err := s.authorized(ctx, id, access.ActionChangeReview, reviewID); err != nil {
		return Review{}, err
	}
	if err := sections.Validate(); err != nil {
		return Review{}, err
	}
	return s.Store.UpdateReview(ctx, reviewID, sections)
}

func (s *Service) Delete(ctx context.Context, id access.Identity, reviewID string) error {
	if _, err := s.authorized(ctx, id, access.ActionDeleteReview, reviewID); err != nil {
		return err
	}
	return s.Store.DeleteReview(ctx, reviewID)
}

func (s *Service) authorized(ctx context.Context, id access.Identity, action access.Action, reviewID string) (Review, error) {
	review, err := s.Store.GetReview(ctx, reviewID)
	if err != nil {
		return Review{}, err
	}
	if err := access.Check(id, action, access.Target{ManagerUserID: review.ManagerUserID}); err != nil {
		return Review{}, err
	}
	return review, nil
}
