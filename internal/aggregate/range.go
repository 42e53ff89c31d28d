package aggregate

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Range is a half-open time range [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

// DayRange returns the range covering the calendar day of t in t's location.
func DayRange(t time.Time) Range {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Range{From: start, To: start.AddDate(0, 0, 1)}
}

// String renders the range for user-facing messages.
func (r Range) String() string {
	last := r.To.Add(-time.Nanosecond)
	if r.From.Format(dateLayout) == last.Format(dateLayout) {
		return r.From.Format(dateLayout)
	}
	return fmt.Sprintf("%s to %s", r.From.Format(dateLayout), last.Format(dateLayout))
}

// ParseDateRange parses the analysis date selector: "today", "yesterday",
// a single YYYY-MM-DD day, or an inclusive YYYY-MM-DD:YYYY-MM-DD span.
func ParseDateRange(s string, now time.Time) (Range, error) {
	s = strings.TrimSpace(s)

	switch strings.ToLower(s) {
	case "", "today":
		return DayRange(now), nil
	case "yesterday":
		return DayRange(now.AddDate(0, 0, -1)), nil
	}

	if from, to, ok := strings.Cut(s, ":"); ok {
		start, err := time.ParseInLocation(dateLayout, from, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("invalid range start %q: must be YYYY-MM-DD", from)
		}
		end, err := time.ParseInLocation(dateLayout, to, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("invalid range end %q: must be YYYY-MM-DD", to)
		}
		if end.Before(start) {
			return Range{}, fmt.Errorf("range end %s is before start %s", to, from)
		}
		return Range{From: start, To: end.AddDate(0, 0, 1)}, nil
	}

	day, err := time.ParseInLocation(dateLayout, s, now.Location())
	if err != nil {
		return Range{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD, 'today', 'yesterday', or a YYYY-MM-DD:YYYY-MM-DD range", s)
	}
	return DayRange(day), nil
}
