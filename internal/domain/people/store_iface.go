package people

import "context"

type StoreAPI interface {
	ManagerByUserID(ctx context.Context, userID string) (Manager, error)
	EmployeeByUserID(ctx context.Context, userID string) (Employee, error)
	GetManager(ctx context.Context, managerID string) (Manager, error)
	GetEmployee(ctx context.Context, employeeID string) (Employee, error)
	ListEmployeesByManager(ctx context.Context, managerID string) ([]Employee, error)
}
