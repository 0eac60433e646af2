package stats

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"recognition/internal/domain/access"
	"recognition/internal/domain/apperr"
	"recognition/internal/domain/goals"
)

const JobRenderCharts = "render_charts"

// Chart kinds, one rendered file per series.
const (
	ChartPriority = "priority"
	ChartStatus   = "status"
	ChartProgress = "progress"
)

type GoalLister interface {
	List(ctx context.Context, id access.Identity, params map[string]string) ([]goals.Goal, error)
}

type Enqueuer interface {
	Enqueue(jobType, subject string, run func(context.Context) (any, error))
}

// Renderer turns a summary into chart files and locates them afterwards.
type Renderer interface {
	Render(ctx context.Context, userID string, summary Summary) error
	Path(userID, kind string) string
}

type Service struct {
	Goals  GoalLister
	Jobs   Enqueuer
	Charts Renderer
}

func NewService(goalLister GoalLister, jobs Enqueuer, charts Renderer) *Service {
	return &Service{Goals: goalLister, Jobs: jobs, Charts: charts}
}

// Summary aggregates the caller's goals and queues a chart render. It does
// not wait for the render; chart files lag behind until the job has run.
func (s *Service) Summary(ctx context.Context, id access.Identity) (Summary, error) {
	if err := access.Check(id, access.ActionViewStats, access.Target{}); err != nil {
		return Summary{}, err
	}
	list, err := s.Goals.List(ctx, id, nil)
	if err != nil {
		return Summary{}, err
	}
	summary := Compute(list)
	if s.Jobs != nil && s.Charts != nil {
		userID := id.UserID
		s.Jobs.Enqueue(JobRenderCharts, userID, func(ctx context.Context) (any, error) {
			return map[string]any{"totalGoals": summary.TotalGoals}, s.Charts.Render(ctx, userID, summary)
		})
	}
	return summary, nil
}

// ChartPath returns the last rendered chart of the given kind for the caller.
func (s *Service) ChartPath(ctx context.Context, id access.Identity, kind string) (string, error) {
	if err := access.Check(id, access.ActionViewStats, access.Target{}); err != nil {
		return "", err
	}
	switch kind {
	case ChartPriority, ChartStatus, ChartProgress:
	default:
		return "", apperr.NotFound("chart", kind)
	}
	if s.Charts == nil {
		return "", apperr.NotFound("chart", kind)
	}
	path := s.Charts.Path(id.UserID, kind)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperr.NotFound("chart", kind)
		}
		return "", err
	}
	return path, nil
}
