package tracker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hugo/focustrack/internal/config"
	"github.com/hugo/focustrack/internal/logstore"
	"github.com/hugo/focustrack/internal/models"
	"github.com/hugo/focustrack/internal/session"
	"github.com/hugo/focustrack/pkg/window"
)

// Service runs the tracking loop: poll the probe, fold samples into
// intervals, append closed intervals to the log. A probe failure is
// downgraded to an idle sample so a flaky window system never kills
// tracking; a store failure is fatal because continuing without durable
// logging would silently lose data.
type Service struct {
	config   *config.Config
	store    logstore.Store
	probe    window.Probe
	builder  *session.Builder
	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

func NewService(cfg *config.Config, store logstore.Store, probe window.Probe) *Service {
	return &Service{
		config:   cfg,
		store:    store,
		probe:    probe,
		builder:  session.NewBuilder(cfg.EffectiveInactivityThreshold()),
		stopChan: make(chan struct{}),
	}
}

// Start blocks in the poll loop until the context is cancelled or Stop
// is called. The still-open interval is flushed before returning.
func (s *Service) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("tracker is already running")
	}
	defer s.running.Store(false)

	log.Printf("Starting tracker with %v poll interval, %v inactivity threshold",
		s.config.Tracker.PollInterval, s.config.EffectiveInactivityThreshold())

	ticker := time.NewTicker(s.config.Tracker.PollInterval)
	defer ticker.Stop()

	if err := s.poll(time.Now()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("Tracker stopped by context")
			if err := s.flush(); err != nil {
				return err
			}
			return ctx.Err()

		case <-s.stopChan:
			log.Println("Tracker stopped")
			return s.flush()

		case tick := <-ticker.C:
			if err := s.poll(tick); err != nil {
				return err
			}
		}
	}
}

// Stop requests a graceful shutdown; the poll loop observes it between
// ticks and flushes the open interval. Safe to call from any goroutine,
// any number of times.
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// IsRunning reports whether the loop is active.
func (s *Service) IsRunning() bool {
	return s.running.Load()
}

// poll takes one sample and persists whatever interval it closes.
func (s *Service) poll(now time.Time) error {
	return s.observe(s.sample(now))
}

func (s *Service) observe(sample models.Sample) error {
	iv := s.builder.Observe(sample)
	if iv == nil {
		return nil
	}
	return s.append(*iv)
}

// sample asks the probe for the focused window, converting failures and
// idle/locked states into an idle sample.
func (s *Service) sample(now time.Time) models.Sample {
	fw, err := s.probe.FocusedWindow()
	if err != nil {
		log.Printf("Window probe failed, treating tick as idle: %v", err)
		return models.Sample{Timestamp: now}
	}
	if fw == nil {
		return models.Sample{Timestamp: now}
	}

	return models.Sample{
		Timestamp: now,
		AppName:   fw.AppName,
		Title:     fw.Title,
	}
}

func (s *Service) flush() error {
	iv := s.builder.Flush()
	if iv == nil {
		return nil
	}
	return s.append(*iv)
}

func (s *Service) append(iv models.ActivityInterval) error {
	if err := s.store.Append(iv); err != nil {
		return fmt.Errorf("failed to persist interval: %w", err)
	}
	log.Printf("Logged %s (%s): %v", iv.AppName, iv.Title, iv.Duration())
	return nil
}
