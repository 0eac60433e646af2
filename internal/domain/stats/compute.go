package stats

import "recognition/internal/domain/goals"

// Point is one labelled value of a chart series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Series []Point

func (s Series) Total() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

type Summary struct {
	TotalGoals int    `json:"totalGoals"`
	Priority   Series `json:"priority"`
	Status     Series `json:"status"`
	Progress   Series `json:"progress"`
}

// Compute aggregates one user's goals. Priority and status series list the
// non-empty groups in choice order. Progress always carries the average of
// the in-progress and on-hold groups, 0 for an empty group.
func Compute(list []goals.Goal) Summary {
	priorityCounts := map[goals.Priority]int{}
	statusCounts := map[goals.Status]int{}
	progressSum := map[goals.Status]int{}
	for _, g := range list {
		priorityCounts[g.Priority]++
		statusCounts[g.Status]++
		progressSum[g.Status] += int(g.Progress)
	}

	summary := Summary{
		TotalGoals: len(list),
		Priority:   Series{},
		Status:     Series{},
	}
	for _, p := range goals.Priorities() {
		if n := priorityCounts[p]; n > 0 {
			summary.Priority = append(summary.Priority, Point{Label: p.String(), Value: float64(n)})
		}
	}
	for _, s := range goals.Statuses() {
		if n := statusCounts[s]; n > 0 {
			summary.Status = append(summary.Status, Point{Label: s.String(), Value: float64(n)})
		}
	}
	for _, s := range []goals.Status{goals.StatusInProgress, goals.StatusOnHold} {
		avg := 0.0
		if n := statusCounts[s]; n > 0 {
			avg = float64(progressSum[s]) / float64(n)
		}
		summary.Progress = append(summary.Progress, Point{Label: s.String(), Value: avg})
	}
	return summary
}
