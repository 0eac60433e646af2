package reviews

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"recognition/internal/domain/apperr"
)

// Score is one of the three fixed review tiers. The tier value is what gets
// stored and compared, not an ordinal.
type Score int

const (
	ScoreNearlyMeets Score = 0
	ScoreMeets       Score = 8
	ScoreExceeds     Score = 15
)

var scoreLabels = map[Score]string{
	ScoreNearlyMeets: "Nearly Meets Expectations",
	ScoreMeets:       "Meets Expectations",
	ScoreExceeds:     "Exceeds Expectations",
}

func Scores() []Score {
	return []Score{ScoreNearlyMeets, ScoreMeets, ScoreExceeds}
}

func (s Score) Valid() bool {
	_, ok := scoreLabels[s]
	return ok
}

func (s Score) String() string {
	if label, ok := scoreLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("Score(%d)", int(s))
}

// ParseScore accepts the tier value or its label.
func ParseScore(raw string) (Score, error) {
	value := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(value); err == nil && Score(n).Valid() {
		return Score(n), nil
	}
	for _, s := range Scores() {
		if strings.EqualFold(scoreLabels[s], value) {
			return s, nil
		}
	}
	return 0, apperr.Invalid("score", fmt.Sprintf("unknown score %q", raw))
}

func (s *Score) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		parsed, err := ParseScore(strconv.Itoa(n))
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return apperr.Invalid("score", "must be a number or label")
	}
	parsed, err := ParseScore(label)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
