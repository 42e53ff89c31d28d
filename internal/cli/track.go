package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hugo/focustrack/internal/config"
	"github.com/hugo/focustrack/internal/daemon"
	"github.com/hugo/focustrack/internal/logstore"
	"github.com/hugo/focustrack/internal/tracker"
	"github.com/hugo/focustrack/pkg/detector"
)

// daemonChildEnv marks the forked child so it runs the loop instead of
// forking again.
const daemonChildEnv = "FOCUSTRACK_DAEMON_CHILD"

func newTrackCmd(cfg *config.Config) *cobra.Command {
	var (
		intervalSec  int
		thresholdSec int
		logFile      string
		foreground   bool
	)

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Start tracking the focused window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if logFile != "" {
				cfg.Log.Path = logFile
			}
			if cmd.Flags().Changed("interval") {
				if err := cfg.SetPollInterval(time.Duration(intervalSec) * time.Second); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("inactivity-threshold") {
				cfg.Tracker.InactivityThreshold = time.Duration(thresholdSec) * time.Second
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			if !foreground && os.Getenv(daemonChildEnv) != "1" {
				return daemonize(cfg)
			}
			return runTracker(cfg)
		},
	}

	cmd.Flags().IntVarP(&intervalSec, "interval", "i", 10, "poll interval in seconds")
	cmd.Flags().StringVarP(&logFile, "log-file", "l", "", "path to the activity log (default activity_log.csv)")
	cmd.Flags().IntVar(&thresholdSec, "inactivity-threshold", 0, "seconds without samples before a session splits (0 derives from the poll interval)")
	cmd.Flags().BoolVar(&foreground, "foreground", false, "run in the foreground instead of detaching")

	return cmd
}

func runTracker(cfg *config.Config) error {
	if os.Getenv(daemonChildEnv) == "1" {
		logFile, err := os.OpenFile(cfg.Daemon.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			log.SetOutput(logFile)
			defer logFile.Close()
		}
	}

	// The PID lock serializes writers: a second tracker on the same log
	// would interleave records.
	dm := daemon.New(cfg.Daemon.PIDFile)
	if err := dm.Acquire(); err != nil {
		return err
	}
	defer dm.Release()

	store, err := logstore.Open(cfg.Log.Path)
	if err != nil {
		return fmt.Errorf("failed to open activity log: %w", err)
	}
	defer store.Close()

	probe, err := detector.New()
	if err != nil {
		return fmt.Errorf("failed to initialize window probe: %w", err)
	}
	defer probe.Close()

	svc := tracker.NewService(cfg, store, probe)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		svc.Stop()
	}()

	log.Printf("Configuration:\n%s", cfg.String())

	if err := svc.Start(ctx); err != nil && err != context.Canceled {
		return err
	}

	log.Println("Tracker stopped successfully")
	return nil
}

// daemonize re-executes the binary detached from the terminal.
func daemonize(cfg *config.Config) error {
	env := append(os.Environ(), daemonChildEnv+"=1")

	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil},
		Sys: &syscall.SysProcAttr{
			Setsid: true,
		},
	}

	process, err := os.StartProcess(os.Args[0], os.Args, procAttr)
	if err != nil {
		return fmt.Errorf("failed to start tracker process: %w", err)
	}

	fmt.Printf("Tracker started (PID: %d)\n", process.Pid)
	fmt.Printf("Logs: %s\n", cfg.Daemon.LogFile)
	return nil
}
