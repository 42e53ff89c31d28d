package logstore

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/hugo/focustrack/internal/models"
)

// Store is the append-only persistence layer for activity intervals.
// Appends are durable and ordered; reads return intervals sorted by
// start time together with the number of malformed records that were
// skipped along the way.
type Store interface {
	// Append writes one closed interval as a single atomic record.
	Append(iv models.ActivityInterval) error

	// ReadAll returns every interval in the log in start-time order.
	ReadAll() ([]models.ActivityInterval, int, error)

	// ReadRange returns intervals overlapping the half-open range
	// [from, to). A zero from or to leaves that side unbounded.
	ReadRange(from, to time.Time) ([]models.ActivityInterval, int, error)

	Close() error
}

// Open selects a backend by file extension: SQLite for database
// extensions, CSV for everything else.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path)
	default:
		return OpenCSV(path)
	}
}

func filterRange(intervals []models.ActivityInterval, from, to time.Time) []models.ActivityInterval {
	out := make([]models.ActivityInterval, 0, len(intervals))
	for _, iv := range intervals {
		if !from.IsZero() && !iv.End.After(from) {
			continue
		}
		if !to.IsZero() && !iv.Start.Before(to) {
			continue
		}
		out = append(out, iv)
	}
	return out
}
