package reviews

import "context"

type StoreAPI interface {
	ListReviewsByManager(ctx context.Context, managerID string, filter Filter) ([]Review, error)
	GetReview(ctx context.Context, reviewID string) (Review, error)
	CreateReview(ctx context.Context, managerID, employeeID string, sections Sections) (Review, error)
	UpdateReview(ctx context.Context, reviewID string, sections Sections) (Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
}
