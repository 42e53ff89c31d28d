package aggregate

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/hugo/focustrack/internal/models"
)

// AppTotal is one entry of the ranked per-app breakdown.
type AppTotal struct {
	AppName  string
	Duration time.Duration
}

// Result is the derived, read-only view of one summarize run. It is
// recomputed fresh on every analysis invocation and never persisted.
type Result struct {
	Range            Range
	TotalsByCategory map[string]time.Duration
	TotalsByApp      map[string]time.Duration
	CountsByCategory map[string]int
	Hourly           [24]time.Duration
	TopApps          []AppTotal
	Total            time.Duration
}

// Options tunes the aggregation.
type Options struct {
	// MinDuration drops intervals whose in-range portion is shorter
	// than this, filtering out window-switch noise.
	MinDuration time.Duration

	// Name derives the activity name an interval is attributed to,
	// allowing title-aware refinement (one activity per site or file
	// instead of per app). Nil keys everything by app name.
	Name func(app, title string) string
}

// Summarize folds intervals overlapping the range into per-category,
// per-app, and per-hour totals. Intervals spanning the range edge are
// clipped; an interval crossing an hour (or midnight) boundary
// contributes proportionally to every bucket it touches, so totals are
// conserved across the hourly distribution. The function performs no
// I/O itself: reading the log and persisting category decisions belong
// to the caller.
func Summarize(intervals []models.ActivityInterval, resolve func(activity string) (string, error), r Range, opts Options) (*Result, error) {
	res := &Result{
		Range:            r,
		TotalsByCategory: make(map[string]time.Duration),
		TotalsByApp:      make(map[string]time.Duration),
		CountsByCategory: make(map[string]int),
	}

	categories := make(map[string]string)

	for _, iv := range intervals {
		cl, ok := clip(iv, r)
		if !ok {
			continue
		}

		d := cl.Duration()
		if d < opts.MinDuration {
			continue
		}

		name := cl.AppName
		if opts.Name != nil {
			if refined := opts.Name(cl.AppName, cl.Title); refined != "" {
				name = refined
			}
		}

		cat, ok := categories[name]
		if !ok {
			var err error
			cat, err = resolve(name)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to categorize %q", name)
			}
			categories[name] = cat
		}

		res.TotalsByApp[name] += d
		res.TotalsByCategory[cat] += d
		res.CountsByCategory[cat]++
		res.Total += d
		distributeHourly(&res.Hourly, cl)
	}

	res.TopApps = rankApps(res.TotalsByApp)
	return res, nil
}

// Bounds returns the earliest start and latest end across the intervals,
// used to tell the user what the log actually covers when a requested
// range is empty.
func Bounds(intervals []models.ActivityInterval) (first, last time.Time, ok bool) {
	for _, iv := range intervals {
		if !ok || iv.Start.Before(first) {
			first = iv.Start
		}
		if !ok || iv.End.After(last) {
			last = iv.End
		}
		ok = true
	}
	return first, last, ok
}

func clip(iv models.ActivityInterval, r Range) (models.ActivityInterval, bool) {
	from, to := r.From, r.To
	if from.IsZero() {
		from = iv.Start
	}
	if to.IsZero() {
		to = iv.End
	}
	return iv.Clip(from, to)
}

// distributeHourly walks the interval hour by hour on the wall clock,
// crediting each bucket with the portion that falls inside it.
func distributeHourly(buckets *[24]time.Duration, iv models.ActivityInterval) {
	cur := iv.Start
	for cur.Before(iv.End) {
		hourEnd := time.Date(cur.Year(), cur.Month(), cur.Day(), cur.Hour(), 0, 0, 0, cur.Location()).Add(time.Hour)
		if hourEnd.After(iv.End) {
			hourEnd = iv.End
		}
		buckets[cur.Hour()] += hourEnd.Sub(cur)
		cur = hourEnd
	}
}

// rankApps orders apps by duration descending, breaking ties by name so
// the output is deterministic.
func rankApps(totals map[string]time.Duration) []AppTotal {
	ranked := make([]AppTotal, 0, len(totals))
	for app, d := range totals {
		ranked = append(ranked, AppTotal{AppName: app, Duration: d})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Duration != ranked[j].Duration {
			return ranked[i].Duration > ranked[j].Duration
		}
		return ranked[i].AppName < ranked[j].AppName
	})
	return ranked
}
