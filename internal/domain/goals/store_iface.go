package goals

import "context"

type StoreAPI interface {
	ListGoalsByOwner(ctx context.Context, ownerID string, filter Filter) ([]Goal, error)
	GetGoal(ctx context.Context, goalID string) (Goal, error)
	CreateGoal(ctx context.Context, ownerID string, input GoalInput) (Goal, error)
	UpdateGoal(ctx context.Context, goalID string, input GoalInput) (Goal, error)
	DeleteGoal(ctx context.Context, goalID string) error
	AppendJournal(ctx context.Context, goalID, ownerID, text string) (Journal, error)
	ListJournal(ctx context.Context, goalID string) ([]Journal, error)
}
