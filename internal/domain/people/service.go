package people

import (
	"context"
	"errors"

	"recognition/internal/domain/access"
	"recognition/internal/domain/apperr"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Identity resolves which profiles are attached to a user. A missing
// profile is not an error; it just leaves the capability empty.
func (s *Service) Identity(ctx context.Context, userID, username string) (access.Identity, error) {
	id := access.Identity{UserID: userID, Username: username}
	if userID == "" {
		return id, nil
	}
	manager, err := s.Store.ManagerByUserID(ctx, userID)
	switch {
	case err == nil:
		id.ManagerID = manager.ID
	case !errors.Is(err, apperr.ErrNotFound):
		return access.Identity{}, err
	}
	employee, err := s.Store.EmployeeByUserID(ctx, userID)
	switch {
	case err == nil:
		id.EmployeeID = employee.ID
	case !errors.Is(err, apperr.ErrNotFound):
		return access.Identity{}, err
	}
	return id, nil
}

func (s *Service) Profile(ctx context.Context, id access.Identity) (Profile, error) {
	profile := Profile{UserID: id.UserID, Username: id.Username}
	if id.ManagerID != "" {
		manager, err := s.Store.GetManager(ctx, id.ManagerID)
		if err != nil {
			return Profile{}, err
		}
		profile.Manager = &manager
	}
	if id.EmployeeID != "" {
		employee, err := s.Store.GetEmployee(ctx, id.EmployeeID)
		if err != nil {
			return Profile{}, err
		}
		profile.Employee = &employee
	}
	return profile, nil
}

func (s *Service) DepartmentEmployees(ctx context.Context, id access.Identity) ([]Employee, error) {
	if err := access.Check(id, access.ActionViewDepartment, access.Target{}); err != nil {
		return nil, err
	}
	employees, err := s.Store.ListEmployeesByManager(ctx, id.ManagerID)
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []Employee{}
	}
	return employees, nil
}

func (s *Service) Employee(ctx context.Context, id access.Identity, employeeID string) (Employee, error) {
	if err := access.Check(id, access.ActionViewEmployee, access.Target{}); err != nil {
		return Employee{}, err
	}
	return s.Store.GetEmployee(ctx, employeeID)
}

// FindEmployee looks an employee up without any access check; callers
// must have already authorized the action.
func (s *Service) FindEmployee(ctx context.Context, employeeID string) (Employee, error) {
	return s.Store.GetEmployee(ctx, employeeID)
}
