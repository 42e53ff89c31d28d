package models

import "time"

// Sample is a single poll-time observation of the focused window.
// An empty AppName marks an idle tick (no focused window, locked screen,
// or a probe failure that was downgraded to idle).
type Sample struct {
	Timestamp time.Time
	AppName   string
	Title     string
}

// Idle reports whether the sample carries no focused window.
func (s Sample) Idle() bool {
	return s.AppName == ""
}

// ActivityInterval is a merged, contiguous focus session on one
// (app, title) pair. End is strictly after Start for every interval
// that reaches the log.
type ActivityInterval struct {
	Start   time.Time
	End     time.Time
	AppName string
	Title   string
}

// Duration returns the length of the interval.
func (iv ActivityInterval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether the interval touches the half-open range [from, to).
func (iv ActivityInterval) Overlaps(from, to time.Time) bool {
	return iv.Start.Before(to) && iv.End.After(from)
}

// Clip bounds the interval to [from, to). The second return value is false
// when nothing of the interval remains inside the range.
func (iv ActivityInterval) Clip(from, to time.Time) (ActivityInterval, bool) {
	if !iv.Overlaps(from, to) {
		return ActivityInterval{}, false
	}
	clipped := iv
	if clipped.Start.Before(from) {
		clipped.Start = from
	}
	if clipped.End.After(to) {
		clipped.End = to
	}
	if !clipped.End.After(clipped.Start) {
		return ActivityInterval{}, false
	}
	return clipped, true
}
