package goals

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"recognition/internal/domain/apperr"
)

// enumTable maps the stored ordinal of a choice list to its display label.
// The same tables drive validation, JSON and the statistics labels.
type enumTable[T ~int] struct {
	field  string
	order  []T
	labels map[T]string
}

func (t enumTable[T]) valid(v T) bool {
	_, ok := t.labels[v]
	return ok
}

func (t enumTable[T]) label(v T) string {
	if label, ok := t.labels[v]; ok {
		return label
	}
	return fmt.Sprintf("%s(%d)", t.field, int(v))
}

func (t enumTable[T]) slug(v T) string {
	return slugify(t.label(v))
}

// parse accepts the ordinal, the slug or the label, case-insensitively.
func (t enumTable[T]) parse(raw string) (T, error) {
	value := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(value); err == nil {
		if t.valid(T(n)) {
			return T(n), nil
		}
		return 0, apperr.Invalid(t.field, fmt.Sprintf("unknown value %q", raw))
	}
	normalized := slugify(value)
	for _, v := range t.order {
		if slugify(t.labels[v]) == normalized {
			return v, nil
		}
	}
	return 0, apperr.Invalid(t.field, fmt.Sprintf("unknown value %q", raw))
}

func (t enumTable[T]) unmarshalJSON(data []byte) (T, error) {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		return t.parse(strconv.Itoa(n))
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, apperr.Invalid(t.field, "must be a string or number")
	}
	return t.parse(s)
}

func slugify(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
}

type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

var priorities = enumTable[Priority]{
	field: "priority",
	order: []Priority{PriorityHigh, PriorityMedium, PriorityLow},
	labels: map[Priority]string{
		PriorityHigh:   "High",
		PriorityMedium: "Medium",
		PriorityLow:    "Low",
	},
}

func Priorities() []Priority { return append([]Priority(nil), priorities.order...) }

func ParsePriority(raw string) (Priority, error) { return priorities.parse(raw) }

func (p Priority) Valid() bool    { return priorities.valid(p) }
func (p Priority) String() string { return priorities.label(p) }
func (p Priority) Slug() string   { return priorities.slug(p) }

func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Slug())
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	v, err := priorities.unmarshalJSON(data)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

type Status int

const (
	StatusPlanned Status = iota
	StatusInProgress
	StatusComplete
	StatusOnHold
	StatusCancelled
)

var statuses = enumTable[Status]{
	field: "status",
	order: []Status{StatusPlanned, StatusInProgress, StatusComplete, StatusOnHold, StatusCancelled},
	labels: map[Status]string{
		StatusPlanned:    "Planned",
		StatusInProgress: "In progress",
		StatusComplete:   "Complete",
		StatusOnHold:     "On hold",
		StatusCancelled:  "Cancelled",
	},
}

func Statuses() []Status { return append([]Status(nil), statuses.order...) }

func ParseStatus(raw string) (Status, error) { return statuses.parse(raw) }

func (s Status) Valid() bool    { return statuses.valid(s) }
func (s Status) String() string { return statuses.label(s) }
func (s Status) Slug() string   { return statuses.slug(s) }

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slug())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	v, err := statuses.unmarshalJSON(data)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Progress is a completion percentage restricted to 0, 10, ..., 100.
type Progress int

const (
	ProgressMin  Progress = 0
	ProgressMax  Progress = 100
	ProgressStep Progress = 10
)

func (p Progress) Valid() bool {
	return p >= ProgressMin && p <= ProgressMax && p%ProgressStep == 0
}

func (p Progress) String() string {
	return fmt.Sprintf("%d %%", int(p))
}

func ProgressBuckets() []Progress {
	out := make([]Progress, 0, 11)
	for p := ProgressMin; p <= ProgressMax; p += ProgressStep {
		out = append(out, p)
	}
	return out
}

func ParseProgress(raw string) (Progress, error) {
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%")))
	if err != nil || !Progress(n).Valid() {
		return 0, apperr.Invalid("progress", "must be one of 0, 10, ..., 100")
	}
	return Progress(n), nil
}
