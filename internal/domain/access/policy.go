package access

import (
	"fmt"

	"recognition/internal/domain/apperr"
)

// Identity is the acting user together with the profiles linked to it.
// ManagerID and EmployeeID are empty when the user has no such profile.
type Identity struct {
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	ManagerID  string `json:"managerId,omitempty"`
	EmployeeID string `json:"employeeId,omitempty"`
}

func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

func (i Identity) IsManager() bool {
	return i.Authenticated() && i.ManagerID != ""
}

func (i Identity) IsEmployee() bool {
	return i.Authenticated() && i.EmployeeID != ""
}

type Action string

const (
	ActionListGoals         Action = "goal.list"
	ActionCreateGoal        Action = "goal.create"
	ActionViewGoal          Action = "goal.view"
	ActionChangeGoal        Action = "goal.change"
	ActionDeleteGoal        Action = "goal.delete"
	ActionAppendJournal     Action = "goal.journal.append"
	ActionViewDepartment    Action = "department.view"
	ActionViewEmployee      Action = "employee.view"
	ActionViewEmployeeGoals Action = "employee.goals.view"
	ActionCreateReview      Action = "review.create"
	ActionViewReview        Action = "review.view"
	ActionChangeReview      Action = "review.change"
	ActionDeleteReview      Action = "review.delete"
	ActionViewStats         Action = "stats.view"
)

// Target carries the ownership facts a rule needs. OwnerUserID is the goal
// owner; ManagerUserID is the user linked to a review's author.
type Target struct {
	OwnerUserID   string
	ManagerUserID string
}

func Can(id Identity, action Action, target Target) bool {
	if !id.Authenticated() {
		return false
	}
	switch action {
	case ActionListGoals, ActionCreateGoal, ActionViewStats, ActionAppendJournal:
		// journal append is not tied to goal ownership
		return true
	case ActionViewGoal, ActionChangeGoal, ActionDeleteGoal:
		return target.OwnerUserID != "" && target.OwnerUserID == id.UserID
	case ActionViewDepartment, ActionViewEmployee, ActionViewEmployeeGoals, ActionCreateReview:
		return id.IsManager()
	case ActionViewReview, ActionChangeReview, ActionDeleteReview:
		return target.ManagerUserID != "" && target.ManagerUserID == id.UserID
	}
	return false
}

func Check(id Identity, action Action, target Target) error {
	if Can(id, action, target) {
		return nil
	}
	return fmt.Errorf("%s: %w", action, apperr.ErrForbidden)
}
