package grades

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidScore is returned when a score is not a finite number
var ErrInvalidScore = errors.New("invalid score")

// decimalScore accepts plain decimal notation with an optional exponent.
// Hex floats and digit separators are not scores.
var decimalScore = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseScore parses user input into a decimal score. Surrounding whitespace
// is ignored; NaN, infinities and hex notation are rejected.
func ParseScore(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidScore)
	}
	if !decimalScore.MatchString(trimmed) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, text)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidScore, text)
	}
	return v, nil
}

// FormatScore renders a score the shortest way that round-trips (8.5, 10, 7.25)
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DetailLines projects a score sequence into numbered display lines,
// e.g. "1ª sprint: 8.5" or "2º semestre: 7".
func DetailLines(c Category, scores []float64) []string {
	lines := make([]string, 0, len(scores))
	for i, s := range scores {
		lines = append(lines, c.PeriodLabel(i+1)+": "+FormatScore(s))
	}
	return lines
}
