package goals

import (
	"strings"
	"time"
	"unicode/utf8"

	"recognition/internal/domain/apperr"
)

const (
	MaxTitleLength       = 150
	MaxDescriptionLength = 2000
	MaxJournalLength     = 4000
)

type Goal struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	Progress    Progress   `json:"progress"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (g Goal) String() string {
	return g.Title + ", " + g.Status.String()
}

// GoalInput holds the user-editable fields of a goal.
type GoalInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	Priority    Priority
	Status      Status
	Progress    Progress
}

func (in GoalInput) Validate() error {
	if utf8.RuneCountInString(in.Title) > MaxTitleLength {
		return apperr.Invalid("title", "must be at most 150 characters")
	}
	if utf8.RuneCountInString(in.Description) > MaxDescriptionLength {
		return apperr.Invalid("description", "must be at most 2000 characters")
	}
	if !in.Priority.Valid() {
		return apperr.Invalid("priority", "unknown priority")
	}
	if !in.Status.Valid() {
		return apperr.Invalid("status", "unknown status")
	}
	if !in.Progress.Valid() {
		return apperr.Invalid("progress", "must be one of 0, 10, ..., 100")
	}
	if in.EndDate != nil && !in.StartDate.IsZero() && in.EndDate.Before(in.StartDate) {
		return apperr.Invalid("endDate", "must be on or after startDate")
	}
	return nil
}

func (in GoalInput) normalized(today time.Time) GoalInput {
	in.Title = strings.TrimSpace(in.Title)
	if in.StartDate.IsZero() {
		in.StartDate = today
	}
	in.StartDate = DateOnly(in.StartDate)
	if in.EndDate != nil {
		end := DateOnly(*in.EndDate)
		in.EndDate = &end
	}
	return in
}

// Journal is one immutable note attached to a goal.
type Journal struct {
	ID          int64     `json:"id"`
	GoalID      string    `json:"goalId"`
	OwnerID     string    `json:"ownerId,omitempty"`
	Journal     string    `json:"journal"`
	JournalDate time.Time `json:"journalDate"`
}

func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
