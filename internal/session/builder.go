package session

import (
	"time"

	"github.com/hugo/focustrack/internal/models"
)

// Builder folds the raw sample stream into closed activity intervals.
// It holds at most one open interval: consecutive samples for the same
// (app, title) pair extend it, anything else closes it. A gap longer
// than the inactivity threshold closes the interval at the last sample
// seen before the gap, so away time is never attributed to a window.
type Builder struct {
	threshold  time.Duration
	open       *models.ActivityInterval
	lastSample time.Time
}

// NewBuilder creates a builder with the given inactivity threshold.
func NewBuilder(threshold time.Duration) *Builder {
	return &Builder{threshold: threshold}
}

// Observe consumes one sample and returns the interval it closed, if any.
// Single-sample sessions carry no measurable time and are dropped rather
// than emitted as zero-length rows.
func (b *Builder) Observe(s models.Sample) *models.ActivityInterval {
	var closed *models.ActivityInterval

	switch {
	case b.open == nil:
		if !s.Idle() {
			b.openInterval(s)
		}

	case b.continues(s):
		// Same window, gap within threshold: the interval just grows.

	default:
		closed = b.closeOpen()
		if !s.Idle() {
			b.openInterval(s)
		}
	}

	b.lastSample = s.Timestamp
	return closed
}

// Flush closes the still-open interval using the last known sample time.
// Call it before shutdown so no partial interval is lost.
func (b *Builder) Flush() *models.ActivityInterval {
	if b.open == nil {
		return nil
	}
	return b.closeOpen()
}

// Open reports whether an interval is currently being built.
func (b *Builder) Open() bool {
	return b.open != nil
}

func (b *Builder) continues(s models.Sample) bool {
	return !s.Idle() &&
		s.AppName == b.open.AppName &&
		s.Title == b.open.Title &&
		s.Timestamp.Sub(b.lastSample) <= b.threshold
}

func (b *Builder) openInterval(s models.Sample) {
	b.open = &models.ActivityInterval{
		Start:   s.Timestamp,
		AppName: s.AppName,
		Title:   s.Title,
	}
}

func (b *Builder) closeOpen() *models.ActivityInterval {
	iv := b.open
	b.open = nil
	iv.End = b.lastSample
	if !iv.End.After(iv.Start) {
		return nil
	}
	return iv
}
