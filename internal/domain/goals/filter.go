package goals

import (
	"fmt"
	"strings"
	"time"

	"recognition/internal/domain/apperr"
)

// Filter narrows a goal listing. Zero value matches everything.
type Filter struct {
	Status    *Status
	Priority  *Priority
	StartDate *time.Time
	EndDate   *time.Time
}

const filterAll = "all"

// ParseFilter reads the optional status, priority, start_date and end_date
// parameters. "all" or an empty value disables a filter.
func ParseFilter(params map[string]string) (Filter, error) {
	var f Filter
	if raw := filterValue(params, "status"); raw != "" {
		status, err := ParseStatus(raw)
		if err != nil {
			return Filter{}, err
		}
		f.Status = &status
	}
	if raw := filterValue(params, "priority"); raw != "" {
		priority, err := ParsePriority(raw)
		if err != nil {
			return Filter{}, err
		}
		f.Priority = &priority
	}
	start, err := parseFilterDate(params, "start_date")
	if err != nil {
		return Filter{}, err
	}
	end, err := parseFilterDate(params, "end_date")
	if err != nil {
		return Filter{}, err
	}
	f.StartDate, f.EndDate = start, end
	return f, nil
}

func filterValue(params map[string]string, key string) string {
	value := strings.TrimSpace(params[key])
	if strings.EqualFold(value, filterAll) {
		return ""
	}
	return value
}

func parseFilterDate(params map[string]string, key string) (*time.Time, error) {
	raw := strings.TrimSpace(params[key])
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperr.Invalid(key, "must be a valid date in YYYY-MM-DD format")
	}
	return &parsed, nil
}

// HasRange reports whether the date range test applies; it needs both bounds.
func (f Filter) HasRange() bool {
	return f.StartDate != nil && f.EndDate != nil
}

func (f Filter) Match(g Goal) bool {
	if f.Status != nil && g.Status != *f.Status {
		return false
	}
	if f.Priority != nil && g.Priority != *f.Priority {
		return false
	}
	if f.HasRange() {
		if DateOnly(g.StartDate).Before(DateOnly(*f.StartDate)) {
			return false
		}
		if g.EndDate == nil || DateOnly(*g.EndDate).After(DateOnly(*f.EndDate)) {
			return false
		}
	}
	return true
}

// clauses renders the filter as SQL conditions continuing the placeholder
// numbering of args.
func (f Filter) clauses(args []any) (string, []any) {
	var sb strings.Builder
	if f.Status != nil {
		args = append(args, int16(*f.Status))
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	if f.Priority != nil {
		args = append(args, int16(*f.Priority))
		fmt.Fprintf(&sb, " AND priority = $%d", len(args))
	}
	if f.HasRange() {
		args = append(args, DateOnly(*f.StartDate))
		fmt.Fprintf(&sb, " AND start_date >= $%d", len(args))
		args = append(args, DateOnly(*f.EndDate))
		fmt.Fprintf(&sb, " AND end_date IS NOT NULL AND end_date <= $%d", len(args))
	}
	return sb.String(), args
}
