package stats

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"recognition/internal/domain/access"
	"recognition/internal/domain/apperr"
	"recognition/internal/domain/goals"
)

type staticGoals []goals.Goal

func (g staticGoals) List(ctx context.Context, id access.Identity, params map[string]string) ([]goals.Goal, error) {
	return g, nil
}

type queuedJob struct {
	jobType, subject string
	run              func(context.Context) (any, error)
}

// heldQueue keeps jobs until the test runs them, so the caller can observe
// the summary before any chart exists.
type heldQueue struct {
	jobs []queuedJob
}

func (q *heldQueue) Enqueue(jobType, subject string, run func(context.Context) (any, error)) {
	q.jobs = append(q.jobs, queuedJob{jobType: jobType, subject: subject, run: run})
}

type fileRenderer struct {
	dir      string
	rendered []Summary
}

func (r *fileRenderer) Render(ctx context.Context, userID string, summary Summary) error {
	r.rendered = append(r.rendered, summary)
	for _, kind := range []string{ChartPriority, ChartStatus, ChartProgress} {
		path := r.Path(userID, kind)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte("%PDF"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (r *fileRenderer) Path(userID, kind string) string {
	return filepath.Join(r.dir, userID, kind+".pdf")
}

func TestSummaryReturnsBeforeRender(t *testing.T) {
	queue := &heldQueue{}
	renderer := &fileRenderer{dir: t.TempDir()}
	svc := NewService(staticGoals{
		{Priority: goals.PriorityHigh, Status: goals.StatusInProgress, Progress: 30},
	}, queue, renderer)
	id := access.Identity{UserID: "u1"}
	ctx := context.Background()

	summary, err := svc.Summary(ctx, id)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalGoals != 1 {
		t.Fatalf("total = %d", summary.TotalGoals)
	}
	if len(renderer.rendered) != 0 {
		t.Fatal("render must not run inline")
	}
	if len(queue.jobs) != 1 || queue.jobs[0].jobType != JobRenderCharts || queue.jobs[0].subject != "u1" {
		t.Fatalf("unexpected queued jobs %+v", queue.jobs)
	}
	if _, err := svc.ChartPath(ctx, id, ChartStatus); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("chart should not exist before the job runs, got %v", err)
	}

	if _, err := queue.jobs[0].run(ctx); err != nil {
		t.Fatalf("render job: %v", err)
	}
	path, err := svc.ChartPath(ctx, id, ChartStatus)
	if err != nil {
		t.Fatalf("chart path: %v", err)
	}
	if filepath.Base(path) != "status.pdf" {
		t.Fatalf("unexpected chart path %q", path)
	}
}

func TestChartPathRejectsUnknownKindAndAnonymous(t *testing.T) {
	svc := NewService(staticGoals{}, &heldQueue{}, &fileRenderer{dir: t.TempDir()})
	ctx := context.Background()
	if _, err := svc.ChartPath(ctx, access.Identity{UserID: "u1"}, "../secrets"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.ChartPath(ctx, access.Identity{}, ChartStatus); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := svc.Summary(ctx, access.Identity{}); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden summary, got %v", err)
	}
}
