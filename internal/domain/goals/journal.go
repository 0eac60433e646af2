package goals

import (
	"context"
	"strings"
	"unicode/utf8"

	"recognition/internal/domain/access"
	"recognition/internal/domain/apperr"
)

// AppendJournal adds a note to a goal. Any signed-in user may append as long
// as the goal exists; ownership of the goal is not required.
func (s *Service) AppendJournal(ctx context.Context, id access.Identity, goalID, text string) (Journal, error) {
	goal, err := s.Store.GetGoal(ctx, goalID)
	if err != nil {
		return Journal{}, err
	}
	if err := access.Check(id, access.ActionAppendJournal, access.Target{OwnerUserID: goal.OwnerID}); err != nil {
		return Journal{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Journal{}, apperr.Invalid("journal", "must not be empty")
	}
	if utf8.RuneCountInString(text) > MaxJournalLength {
		return Journal{}, apperr.Invalid("journal", "must be at most 4000 characters")
	}
	return s.Store.AppendJournal(ctx, goal.ID, id.UserID, text)
}

// Journal lists a goal's notes newest first. Reading follows the goal's
// view rule.
func (s *Service) Journal(ctx context.Context, id access.Identity, goalID string) ([]Journal, error) {
	if _, err := s.authorized(ctx, id, access.ActionViewGoal, goalID); err != nil {
		return nil, err
	}
	entries, err := s.Store.ListJournal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Journal{}
	}
	return entries, nil
}
