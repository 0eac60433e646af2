package access

import (
	"errors"
	"testing"

	"recognition/internal/domain/apperr"
)

func TestCan(t *testing.T) {
	owner := Identity{UserID: "u1"}
	other := Identity{UserID: "u2"}
	manager := Identity{UserID: "m1", ManagerID: "mgr-1"}
	anonymous := Identity{}

	tests := []struct {
		name   string
		id     Identity
		action Action
		target Target
		want   bool
	}{
		{name: "owner views goal", id: owner, action: ActionViewGoal, target: Target{OwnerUserID: "u1"}, want: true},
		{name: "other cannot view goal", id: other, action: ActionViewGoal, target: Target{OwnerUserID: "u1"}},
		{name: "owner deletes goal", id: owner, action: ActionDeleteGoal, target: Target{OwnerUserID: "u1"}, want: true},
		{name: "manager cannot change foreign goal", id: manager, action: ActionChangeGoal, target: Target{OwnerUserID: "u1"}},
		{name: "ownerless goal is nobody's", id: owner, action: ActionViewGoal, target: Target{}},
		{name: "any user creates goal", id: other, action: ActionCreateGoal, want: true},
		{name: "any user lists own goals", id: other, action: ActionListGoals, want: true},
		{name: "any user views own stats", id: other, action: ActionViewStats, want: true},
		{name: "anonymous cannot view stats", id: anonymous, action: ActionViewStats},
		{name: "any user appends journal", id: other, action: ActionAppendJournal, target: Target{OwnerUserID: "u1"}, want: true},
		{name: "anonymous cannot create goal", id: anonymous, action: ActionCreateGoal},
		{name: "manager views department", id: manager, action: ActionViewDepartment, want: true},
		{name: "employee cannot view department", id: Identity{UserID: "u3", EmployeeID: "e3"}, action: ActionViewDepartment},
		{name: "manager creates review", id: manager, action: ActionCreateReview, want: true},
		{name: "plain user cannot create review", id: owner, action: ActionCreateReview},
		{name: "author manager views review", id: manager, action: ActionViewReview, target: Target{ManagerUserID: "m1"}, want: true},
		{name: "other manager cannot view review", id: Identity{UserID: "m2", ManagerID: "mgr-2"}, action: ActionViewReview, target: Target{ManagerUserID: "m1"}},
		{name: "unknown action denied", id: manager, action: Action("nope")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Can(tc.id, tc.action, tc.target); got != tc.want {
				t.Fatalf("Can(%+v, %s) = %v, want %v", tc.id, tc.action, got, tc.want)
			}
		})
	}
}

func TestCheckReturnsForbidden(t *testing.T) {
	err := Check(Identity{UserID: "u1"}, ActionViewDepartment, Target{})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if errors.Is(err, apperr.ErrNotFound) {
		t.Fatal("forbidden must stay distinct from not found")
	}
	if err := Check(Identity{UserID: "u1"}, ActionCreateGoal, Target{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
