package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Job outcomes reported to the Observer.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeDropped   = "dropped"
)

// RunStore records job executions. A nil RunStore disables recording.
type RunStore interface {
	StartRun(ctx context.Context, jobType, subject string) (string, error)
	FinishRun(ctx context.Context, runID, status string, details []byte) error
}

type Observer interface {
	RecordJob(jobType, outcome string)
}

// Service is a fire-and-forget task queue drained by a single worker.
// Submitters never learn whether their job ran.
type Service struct {
	Runs     RunStore
	Observer Observer
	queue    chan job
	wg       sync.WaitGroup
}

type job struct {
	Type    string
	Subject string
	Run     func(context.Context) (any, error)
}

func New(size int, runs RunStore, observer Observer) *Service {
	if size <= 0 {
		size = 128
	}
	return &Service{
		Runs:     runs,
		Observer: observer,
		queue:    make(chan job, size),
	}
}

// Start launches the worker. It exits when ctx is cancelled; Wait blocks
// until it has.
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.worker(ctx)
	}()
}

func (s *Service) Wait() {
	s.wg.Wait()
}

// Enqueue never blocks. When the buffer is full the job is dropped and logged.
func (s *Service) Enqueue(jobType, subject string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Subject: subject, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType, "subject", subject)
		s.observe(jobType, OutcomeDropped)
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "subject", j.Subject, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (details any, err error) {
	runID := ""
	if s.Runs != nil {
		id, startErr := s.Runs.StartRun(ctx, j.Type, j.Subject)
		if startErr != nil {
			slog.Warn("job run insert failed", "jobType", j.Type, "err", startErr)
		}
		runID = id
	}

	details, err = safeRun(ctx, j.Run)
	status := OutcomeCompleted
	if err != nil {
		status = OutcomeFailed
	}
	s.observe(j.Type, status)

	if runID != "" {
		detailsJSON, marshalErr := json.Marshal(details)
		if marshalErr != nil {
			slog.Warn("job details marshal failed", "err", marshalErr)
			detailsJSON = []byte("{}")
		}
		if updErr := s.Runs.FinishRun(ctx, runID, status, detailsJSON); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func safeRun(ctx context.Context, run func(context.Context) (any, error)) (details any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("job panicked: %v", rec)
		}
	}()
	return run(ctx)
}

func (s *Service) observe(jobType, outcome string) {
	if s.Observer != nil {
		s.Observer.RecordJob(jobType, outcome)
	}
}
