package people

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recognition/internal/domain/apperr"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const managerColumns = `id, COALESCE(user_id::text, ''), first_name, last_name, email, hire_date, term_date, department, status`

const employeeColumns = `id, COALESCE(user_id::text, ''), COALESCE(manager_id::text, ''), first_name, last_name, email, hire_date, term_date, position, status`

func (s *Store) ManagerByUserID(ctx context.Context, userID string) (Manager, error) {
	return s.scanManager(s.DB.QueryRow(ctx, "SELECT "+managerColumns+" FROM managers WHERE user_id = $1", userID), userID)
}

func (s *Store) GetManager(ctx context.Context, managerID string) (Manager, error) {
	if _, err := uuid.Parse(managerID); err != nil {
		return Manager{}, apperr.NotFound("manager", managerID)
	}
	return s.scanManager(s.DB.QueryRow(ctx, "SELECT "+managerColumns+" FROM managers WHERE id = $1", managerID), managerID)
}

func (s *Store) EmployeeByUserID(ctx context.Context, userID string) (Employee, error) {
	return s.scanEmployee(s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE user_id = $1", userID), userID)
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return Employee{}, apperr.NotFound("employee", employeeID)
	}
	return s.scanEmployee(s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", employeeID), employeeID)
}

func (s *Store) ListEmployeesByManager(ctx context.Context, managerID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE manager_id = $1
    ORDER BY last_name, first_name
  `, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployeeRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) scanManager(row pgx.Row, key string) (Manager, error) {
	var m Manager
	var status int16
	err := row.Scan(&m.ID, &m.UserID, &m.FirstName, &m.LastName, &m.Email, &m.HireDate, &m.TermDate, &m.Department, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Manager{}, apperr.NotFound("manager", key)
	}
	if err != nil {
		return Manager{}, err
	}
	m.Status = ActivityStatus(status)
	return m, nil
}

func (s *Store) scanEmployee(row pgx.Row, key string) (Employee, error) {
	emp, err := scanEmployeeRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, apperr.NotFound("employee", key)
	}
	return emp, err
}

func scanEmployeeRow(row pgx.Row) (Employee, error) {
	var e Employee
	var status int16
	if err := row.Scan(&e.ID, &e.UserID, &e.ManagerID, &e.FirstName, &e.LastName, &e.Email, &e.HireDate, &e.TermDate, &e.Position, &status); err != nil {
		return Employee{}, err
	}
	e.Status = ActivityStatus(status)
	return e, nil
}
