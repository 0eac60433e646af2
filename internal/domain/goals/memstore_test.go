package goals

import (
	"context"
	"fmt"
	"sort"
	"time"

	"recognition/internal/domain/apperr"
)

type memStore struct {
	goals    map[string]Goal
	journals []Journal
	nextID   int
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		goals: map[string]Goal{},
		clock: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) ListGoalsByOwner(ctx context.Context, ownerID string, filter Filter) ([]Goal, error) {
	var out []Goal
	for _, g := range m.goals {
		if g.OwnerID == ownerID && filter.Match(g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) GetGoal(ctx context.Context, goalID string) (Goal, error) {
	g, ok := m.goals[goalID]
	if !ok {
		return Goal{}, apperr.NotFound("goal", goalID)
	}
	return g, nil
}

func (m *memStore) CreateGoal(ctx context.Context, ownerID string, input GoalInput) (Goal, error) {
	m.nextID++
	g := Goal{
		ID:          fmt.Sprintf("goal-%d", m.nextID),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Priority:    input.Priority,
		Status:      input.Status,
		Progress:    input.Progress,
		CreatedAt:   m.tick(),
	}
	m.goals[g.ID] = g
	return g, nil
}

func (m *memStore) UpdateGoal(ctx context.Context, goalID string, input GoalInput) (Goal, error) {
	g, ok := m.goals[goalID]
	if !ok {
		return Goal{}, apperr.NotFound("goal", goalID)
	}
	g.Title, g.Description = input.Title, input.Description
	g.StartDate, g.EndDate = input.StartDate, input.EndDate
	g.Priority, g.Status, g.Progress = input.Priority, input.Status, input.Progress
	m.goals[goalID] = g
	return g, nil
}

func (m *memStore) DeleteGoal(ctx context.Context, goalID string) error {
	if _, ok := m.goals[goalID]; !ok {
		return apperr.NotFound("goal", goalID)
	}
	delete(m.goals, goalID)
	return nil
}

func (m *memStore) AppendJournal(ctx context.Context, goalID, ownerID, text string) (Journal, error) {
	entry := Journal{
		ID:          int64(len(m.journals) + 1),
		GoalID:      goalID,
		OwnerID:     ownerID,
		Journal:     text,
		JournalDate: m.clock,
	}
	m.journals = append(m.journals, entry)
	return entry, nil
}

func (m *memStore) ListJournal(ctx context.Context, goalID string) ([]Journal, error) {
	var out []Journal
	for _, entry := range m.journals {
		if entry.GoalID == goalID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JournalDate.Equal(out[j].JournalDate) {
			return out[i].JournalDate.After(out[j].JournalDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
