package goals

import (
	"context"
	"time"

	"recognition/internal/domain/access"
	"recognition/internal/domain/people"
)

// EmployeeFinder resolves employee records for the employee-goals listing.
type EmployeeFinder interface {
	FindEmployee(ctx context.Context, employeeID string) (people.Employee, error)
}

type Service struct {
	Store     StoreAPI
	Employees EmployeeFinder
	Now       func() time.Time
}

func NewService(store StoreAPI, employees EmployeeFinder) *Service {
	return &Service{Store: store, Employees: employees, Now: time.Now}
}

func (s *Service) today() time.Time {
	if s.Now == nil {
		return DateOnly(time.Now())
	}
	return DateOnly(s.Now())
}

// List returns the caller's own goals narrowed by params.
func (s *Service) List(ctx context.Context, id access.Identity, params map[string]string) ([]Goal, error) {
	if err := access.Check(id, access.ActionListGoals, access.Target{}); err != nil {
		return nil, err
	}
	filter, err := ParseFilter(params)
	if err != nil {
		return nil, err
	}
	return s.listByOwner(ctx, id.UserID, filter)
}

func (s *Service) Get(ctx context.Context, id access.Identity, goalID string) (Goal, error) {
	return s.authorized(ctx, id, access.ActionViewGoal, goalID)
}

func (s *Service) Create(ctx context.Context, id access.Identity, input GoalInput) (Goal, error) {
	if err := access.Check(id, access.ActionCreateGoal, access.Target{}); err != nil {
		return Goal{}, err
	}
	input = input.normalized(s.today())
	if err := input.Validate(); err != nil {
		return Goal{}, err
	}
	return s.Store.CreateGoal(ctx, id.UserID, input)
}

func (s *Service) Update(ctx context.Context, id access.Identity, goalID string, input GoalInput) (Goal, error) {
	current, err := s.authorized(ctx, id, access.ActionChangeGoal, goalID)
	if err != nil {
		return Goal{}, err
	}
	if input.StartDate.IsZero() {
		input.StartDate = current.StartDate
	}
	input = input.normalized(s.today())
	if err := input.Validate(); err != nil {
		return Goal{}, err
	}
	return s.Store.UpdateGoal(ctx, goalID, input)
}

func (s *Service) Delete(ctx context.Context, id access.Identity, goalID string) error {
	if _, err := s.authorized(ctx, id, access.ActionDeleteGoal, goalID); err != nil {
		return err
	}
	return s.Store.DeleteGoal(ctx, goalID)
}

// EmployeeGoals lists the goals owned by the user linked to an employee.
// An employee without a linked user has no goals.
func (s *Service) EmployeeGoals(ctx context.Context, id access.Identity, employeeID string, params map[string]string) ([]Goal, error) {
	if err := access.Check(id, access.ActionViewEmployeeGoals, access.Target{}); err != nil {
		return nil, err
	}
	filter, err := ParseFilter(params)
	if err != nil {
		return nil, err
	}
	employee, err := s.Employees.FindEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.UserID == "" {
		return []Goal{}, nil
	}
	return s.listByOwner(ctx, employee.UserID, filter)
}

func (s *Service) listByOwner(ctx context.Context, ownerID string, filter Filter) ([]Goal, error) {
	goals, err := s.Store.ListGoalsByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []Goal{}
	}
	return goals, nil
}

// authorized loads the goal first so a missing goal reports not found
// before any ownership decision.
func (s *Service) authorized(ctx context.Context, id access.Identity, action access.Action, goalID string) (Goal, error) {
	goal, err := s.Store.GetGoal(ctx, goalID)
	if err != nil {
		return Goal{}, err
	}
	if err := access.Check(id, action, access.Target{OwnerUserID: goal.OwnerID}); err != nil {
		return Goal{}, err
	}
	return goal, nil
}
