package stats

import (
	"testing"

	"recognition/internal/domain/goals"
)

func goal(p goals.Priority, s goals.Status, progress goals.Progress) goals.Goal {
	return goals.Goal{Priority: p, Status: s, Progress: progress}
}

func TestComputeGroupsAndOmitsEmpty(t *testing.T) {
	list := []goals.Goal{
		goal(goals.PriorityLow, goals.StatusInProgress, 40),
		goal(goals.PriorityHigh, goals.StatusInProgress, 60),
		goal(goals.PriorityHigh, goals.StatusComplete, 100),
		goal(goals.PriorityLow, goals.StatusPlanned, 0),
	}
	s := Compute(list)

	if s.TotalGoals != 4 {
		t.Fatalf("total = %d", s.TotalGoals)
	}
	wantPriority := Series{{Label: "High", Value: 2}, {Label: "Low", Value: 2}}
	assertSeries(t, "priority", s.Priority, wantPriority)
	wantStatus := Series{{Label: "Planned", Value: 1}, {Label: "In progress", Value: 2}, {Label: "Complete", Value: 1}}
	assertSeries(t, "status", s.Status, wantStatus)
	wantProgress := Series{{Label: "In progress", Value: 50}, {Label: "On hold", Value: 0}}
	assertSeries(t, "progress", s.Progress, wantProgress)

	if s.Priority.Total() != float64(s.TotalGoals) || s.Status.Total() != float64(s.TotalGoals) {
		t.Fatalf("group counts must sum to the total: %v %v", s.Priority, s.Status)
	}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	if s.TotalGoals != 0 || len(s.Priority) != 0 || len(s.Status) != 0 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.Priority == nil || s.Status == nil {
		t.Fatal("empty series should encode as [] not null")
	}
	if len(s.Progress) != 2 || s.Progress[0].Value != 0 || s.Progress[1].Value != 0 {
		t.Fatalf("progress must keep both groups at 0: %v", s.Progress)
	}
}

func TestComputeProgressAverageIsFractional(t *testing.T) {
	s := Compute([]goals.Goal{
		goal(goals.PriorityMedium, goals.StatusOnHold, 10),
		goal(goals.PriorityMedium, goals.StatusOnHold, 20),
		goal(goals.PriorityMedium, goals.StatusOnHold, 20),
	})
	got := s.Progress[1].Value
	if got < 16.66 || got > 16.67 {
		t.Fatalf("on hold average = %v", got)
	}
}

func assertSeries(t *testing.T, name string, got, want Series) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s series = %v, want %v", name, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s series = %v, want %v", name, got, want)
		}
	}
}
