package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo/focustrack/internal/models"
)

var base = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func at(sec int, app, title string) models.Sample {
	return models.Sample{
		Timestamp: base.Add(time.Duration(sec) * time.Second),
		AppName:   app,
		Title:     title,
	}
}

func idle(sec int) models.Sample {
	return models.Sample{Timestamp: base.Add(time.Duration(sec) * time.Second)}
}

// feed runs samples through the builder and collects every closed interval,
// including the final flush.
func feed(b *Builder, samples ...models.Sample) []models.ActivityInterval {
	var out []models.ActivityInterval
	for _, s := range samples {
		if iv := b.Observe(s); iv != nil {
			out = append(out, *iv)
		}
	}
	if iv := b.Flush(); iv != nil {
		out = append(out, *iv)
	}
	return out
}

func TestUnbrokenRunEmitsOneInterval(t *testing.T) {
	b := NewBuilder(15 * time.Second)

	got := feed(b,
		at(0, "chrome", "Inbox"),
		at(10, "chrome", "Inbox"),
		at(20, "chrome", "Inbox"),
		at(30, "chrome", "Inbox"),
	)

	require.Len(t, got, 1)
	assert.Equal(t, base, got[0].Start)
	assert.Equal(t, base.Add(30*time.Second), got[0].End)
	assert.Equal(t, "chrome", got[0].AppName)
}

func TestWindowChangeClosesAtLastSample(t *testing.T) {
	b := NewBuilder(15 * time.Second)

	got := feed(b,
		at(0, "chrome", "A"),
		at(10, "chrome", "A"),
		at(20, "code", "B"),
		at(30, "code", "B"),
	)

	require.Len(t, got, 2)
	assert.Equal(t, base, got[0].Start)
	assert.Equal(t, base.Add(10*time.Second), got[0].End, "closes at last pre-change sample")
	assert.Equal(t, "chrome", got[0].AppName)
	assert.Equal(t, base.Add(20*time.Second), got[1].Start)
	assert.Equal(t, "code", got[1].AppName)
}

func TestTitleChangeSplitsInterval(t *testing.T) {
	b := NewBuilder(15 * time.Second)

	got := feed(b,
		at(0, "chrome", "Inbox"),
		at(10, "chrome", "Inbox"),
		at(20, "chrome", "Docs"),
		at(30, "chrome", "Docs"),
	)

	require.Len(t, got, 2)
	assert.Equal(t, "Inbox", got[0].Title)
	assert.Equal(t, "Docs", got[1].Title)
}

func TestGapBeyondThresholdSplits(t *testing.T) {
	b := NewBuilder(15 * time.Second)

	got := feed(b,
		at(0, "chrome", "A"),
		at(10, "chrome", "A"),
		at(60, "chrome", "A"), // 50s gap
		at(70, "chrome", "A"),
	)

	require.Len(t, got, 2)
	assert.Equal(t, base.Add(10*time.Second), got[0].End, "does not extend into the gap")
	assert.Equal(t, base.Add(60*time.Second), got[1].Start)
	assert.Equal(t, base.Add(70*time.Second), got[1].End)
}

func TestGapExactlyAtThresholdContinues(t *testing.T) {
	b := NewBuilder(15 * time.Second)

	got := feed(b,
		at(0, "chrome", "A"),
		at(15, "chrome", "A"),
	)

	require.Len(t, got, 1)
	assert.Equal(t, base.Add(15*time.Second), got[0].End)
}

func TestIdleSampleClosesInterval(t *testing.T) {
	b := NewBuilder(15 * time.Second)

	got := feed(b,
		at(0, "chrome", "A"),
		at(10, "chrome", "A"),
		idle(20),
		idle(30),
		at(40, "code", "B"),
		at(50, "code", "B"),
	)

	require.Len(t, got, 2)
	assert.Equal(t, base.Add(10*time.Second), got[0].End)
	assert.Equal(t, base.Add(40*time.Second), got[1].Start, "reopens only on the next non-idle sample")
}

func TestLeadingIdleSamplesOpenNothing(t *testing.T) {
	b := NewBuilder(15 * time.Second)

	got := feed(b, idle(0), idle(10))
	assert.Empty(t, got)
	assert.False(t, b.Open())
}

func TestSingleSampleSessionIsDropped(t *testing.T) {
	b := NewBuilder(15 * time.Second)

	// chrome is seen in exactly one sample; a zero-length row would
	// violate the end > start invariant.
	got := feed(b,
		at(0, "chrome", "A"),
		at(10, "code", "B"),
		at(20, "code", "B"),
	)

	require.Len(t, got, 1)
	assert.Equal(t, "code", got[0].AppName)
}

func TestFlushClosesOpenInterval(t *testing.T) {
	b := NewBuilder(15 * time.Second)

	require.Nil(t, b.Observe(at(0, "chrome", "A")))
	require.Nil(t, b.Observe(at(10, "chrome", "A")))
	require.True(t, b.Open())

	iv := b.Flush()
	require.NotNil(t, iv)
	assert.Equal(t, base.Add(10*time.Second), iv.End)
	assert.False(t, b.Open())
	assert.Nil(t, b.Flush(), "second flush is a no-op")
}

func TestSpecScenarioChromeThenCode(t *testing.T) {
	b := NewBuilder(15 * time.Second)

	var closed []models.ActivityInterval
	for _, s := range []models.Sample{
		at(0, "Chrome", "A"),
		at(10, "Chrome", "A"),
		at(20, "Code", "B"),
	} {
		if iv := b.Observe(s); iv != nil {
			closed = append(closed, *iv)
		}
	}

	require.Len(t, closed, 1)
	assert.Equal(t, base, closed[0].Start)
	assert.Equal(t, base.Add(10*time.Second), closed[0].End)
	assert.Equal(t, "Chrome", closed[0].AppName)
	assert.True(t, b.Open(), "Code interval remains open")
}
