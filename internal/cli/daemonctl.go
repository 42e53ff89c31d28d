package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo/focustrack/internal/config"
	"github.com/hugo/focustrack/internal/daemon"
	"github.com/hugo/focustrack/pkg/detector"
)

func newStopCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running tracker",
		RunE: func(cmd *cobra.Command, args []string) error {
			dm := daemon.New(cfg.Daemon.PIDFile)
			if err := dm.Stop(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tracker stopped")
			return nil
		},
	}
}

func newStatusCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tracker status and the currently focused window",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			dm := daemon.New(cfg.Daemon.PIDFile)
			running, pid, err := dm.IsRunning()
			if err != nil {
				return err
			}

			if running {
				fmt.Fprintf(out, "Status: Running (PID: %d)\n", pid)
				fmt.Fprintf(out, "Poll Interval: %v\n", cfg.Tracker.PollInterval)
				fmt.Fprintf(out, "Log: %s\n", cfg.Log.Path)
			} else {
				fmt.Fprintln(out, "Status: Not running")
			}

			// Probe the current window even when the tracker is down.
			probe, err := detector.New()
			if err != nil {
				fmt.Fprintf(out, "\nCould not probe current window: %v\n", err)
				return nil
			}
			defer probe.Close()

			fw, err := probe.FocusedWindow()
			switch {
			case err != nil:
				fmt.Fprintf(out, "\nCould not probe current window: %v\n", err)
			case fw == nil:
				fmt.Fprintln(out, "\nCurrent Window: none (idle or locked)")
			default:
				fmt.Fprintf(out, "\nCurrent Window:\n  App: %s\n  Title: %s\n", fw.AppName, fw.Title)
			}
			return nil
		},
	}
}
