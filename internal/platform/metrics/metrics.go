package metrics

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector keeps process-lifetime counters for HTTP traffic and background
// jobs. It is safe for concurrent use.
type Collector struct {
	requests    atomic.Uint64
	serverErrs  atomic.Uint64
	throttled   atomic.Uint64
	durationSum atomic.Uint64

	mu   sync.Mutex
	jobs map[string]map[string]uint64
}

func New() *Collector {
	return &Collector{jobs: map[string]map[string]uint64{}}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.Add(1)
	switch {
	case status >= http.StatusInternalServerError:
		c.serverErrs.Add(1)
	case status == http.StatusTooManyRequests:
		c.throttled.Add(1)
	}
	c.durationSum.Add(uint64(duration.Milliseconds()))
}

// RecordJob counts a background job outcome (completed, failed or dropped)
// under its job type.
func (c *Collector) RecordJob(jobType, outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	byOutcome := c.jobs[jobType]
	if byOutcome == nil {
		byOutcome = map[string]uint64{}
		c.jobs[jobType] = byOutcome
	}
	byOutcome[outcome]++
}

func (c *Collector) Snapshot() map[string]any {
	total := c.requests.Load()
	totalMs := c.durationSum.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	var completed, failed, dropped uint64
	perType := make(map[string]map[string]uint64, len(c.jobs))
	for jobType, byOutcome := range c.jobs {
		copied := make(map[string]uint64, len(byOutcome))
		for outcome, n := range byOutcome {
			copied[outcome] = n
		}
		perType[jobType] = copied
		completed += byOutcome["completed"]
		failed += byOutcome["failed"]
		dropped += byOutcome["dropped"]
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":      total,
		"errorsTotal":        c.serverErrs.Load(),
		"rateLimitedTotal":   c.throttled.Load(),
		"avgDurationMs":      avg,
		"totalDurationMs":    totalMs,
		"jobsCompletedTotal": completed,
		"jobsFailedTotal":    failed,
		"jobsDroppedTotal":   dropped,
		"jobsByType":         perType,
	}
}
