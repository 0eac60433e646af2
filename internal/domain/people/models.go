package people

import "time"

type ActivityStatus int

const (
	StatusActive ActivityStatus = iota
	StatusTerminated
)

var activityLabels = map[ActivityStatus]string{
	StatusActive:     "Active",
	StatusTerminated: "Terminated",
}

func (s ActivityStatus) String() string {
	if label, ok := activityLabels[s]; ok {
		return label
	}
	return "Unknown"
}

func (s ActivityStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Manager struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId,omitempty"`
	FirstName  string         `json:"firstName"`
	LastName   string         `json:"lastName"`
	Email      string         `json:"email"`
	HireDate   time.Time      `json:"hireDate"`
	TermDate   *time.Time     `json:"termDate,omitempty"`
	Department string         `json:"department"`
	Status     ActivityStatus `json:"status"`
}

func (m Manager) FullName() string {
	return m.FirstName + " " + m.LastName
}

type Employee struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId,omitempty"`
	ManagerID string         `json:"managerId,omitempty"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Email     string         `json:"email"`
	HireDate  time.Time      `json:"hireDate"`
	TermDate  *time.Time     `json:"termDate,omitempty"`
	Position  string         `json:"position"`
	Status    ActivityStatus `json:"status"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Profile is the identity view returned to the user about themselves.
type Profile struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	Manager  *Manager  `json:"manager,omitempty"`
	Employee *Employee `json:"employee,omitempty"`
}
