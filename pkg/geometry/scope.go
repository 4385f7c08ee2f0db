package geometry

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/chart/pkg/errors"
)

// Scope is the calendar span covered by the x axis of an aggregate chart.
type Scope int

const (
	ScopeWeek Scope = iota
	ScopeMonth
	ScopeYear
)

// String returns the config name of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeWeek:
		return "week"
	case ScopeMonth:
		return "month"
	case ScopeYear:
		return "year"
	default:
		return "Scope(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseScope parses "week", "month" or "year".
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week":
		return ScopeWeek, nil
	case "month":
		return ScopeMonth, nil
	case "year":
		return ScopeYear, nil
	}
	return 0, errors.Preconditionf("geometry.ParseScope", errors.ErrUnsupportedScope, "%q", s)
}

// Buckets returns how many aggregate points the scope holds for the period
// containing ref.
func (s Scope) Buckets(ref time.Time) int {
	switch s {
	case ScopeWeek:
		return 7
	case ScopeMonth:
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return first.AddDate(0, 1, -1).Day()
	case ScopeYear:
		return 12
	default:
		return 0
	}
}

// Labels returns one value-anchored label per bucket: weekday names, day
// numbers or month names. Bucket i is anchored at value i.
func (s Scope) Labels(ref time.Time) []Label {
	n := s.Buckets(ref)
	out := make([]Label, n)
	for i := range n {
		var text string
		switch s {
		case ScopeWeek:
			text = time.Weekday((i + 1) % 7).String()[:3]
		case ScopeMonth:
			text = strconv.Itoa(i + 1)
		case ScopeYear:
			text = time.Month(i + 1).String()[:3]
		}
		out[i] = ValueLabel(float64(i), text)
	}
	return out
}
