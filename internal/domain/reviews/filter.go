package reviews

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"recognition/internal/domain/apperr"
)

// Filter narrows the department review listing. Zero value matches everything.
type Filter struct {
	Year       *int
	EmployeeID string
	Review     *int
}

// ParseFilter reads year, employee and review. A year that is not an integer
// (or does not fit in 32 bits) is dropped silently while a non-integer review
// is rejected; clients rely on both behaviours.
func ParseFilter(params map[string]string) (Filter, error) {
	var f Filter
	if raw := value(params, "year"); raw != "" {
		if year, err := strconv.ParseInt(raw, 10, 32); err == nil {
			y := int(year)
			f.Year = &y
		}
	}
	if raw := value(params, "employee"); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			return Filter{}, apperr.Invalid("employee", "must be a valid employee id")
		}
		f.EmployeeID = raw
	}
	if raw := value(params, "review"); raw != "" {
		review, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, apperr.Invalid("review", "must be an integer")
		}
		f.Review = &review
	}
	return f, nil
}

func value(params map[string]string, key string) string {
	raw := strings.TrimSpace(params[key])
	if strings.EqualFold(raw, "all") {
		return ""
	}
	return raw
}

func (f Filter) Match(r Review) bool {
	if f.Year != nil && r.CreatedDate.UTC().Year() != *f.Year {
		return false
	}
	if f.EmployeeID != "" && !strings.EqualFold(r.EmployeeID, f.EmployeeID) {
		return false
	}
	if f.Review != nil && int(r.TotalReview) != *f.Review {
		return false
	}
	return true
}

// unencodable reports a filter value that cannot equal any stored column
// value: a review outside SMALLINT or a year outside INTEGER. Such a filter
// matches nothing and its value never reaches the query.
func (f Filter) unencodable() bool {
	if f.Year != nil && (*f.Year < math.MinInt32 || *f.Year > math.MaxInt32) {
		return true
	}
	return f.Review != nil && (*f.Review < math.MinInt16 || *f.Review > math.MaxInt16)
}

// clauses renders the filter as SQL conditions continuing the placeholder
// numbering of args. Years are compared in UTC, as Match does.
func (f Filter) clauses(args []any) (string, []any) {
	if f.unencodable() {
		return " AND FALSE", args
	}
	var sb strings.Builder
	if f.Year != nil {
		args = append(args, int32(*f.Year))
		fmt.Fprintf(&sb, " AND EXTRACT(YEAR FROM r.created_date AT TIME ZONE 'UTC')::int = $%d", len(args))
	}
	if f.EmployeeID != "" {
		args = append(args, f.EmployeeID)
		fmt.Fprintf(&sb, " AND r.employee_id = $%d", len(args))
	}
	if f.Review != nil {
		args = append(args, int16(*f.Review))
		fmt.Fprintf(&sb, " AND r.total_review = $%d", len(args))
	}
	return sb.String(), args
}
