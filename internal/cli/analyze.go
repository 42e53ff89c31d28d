package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hugo/focustrack/internal/aggregate"
	"github.com/hugo/focustrack/internal/category"
	"github.com/hugo/focustrack/internal/config"
	"github.com/hugo/focustrack/internal/logstore"
	"github.com/hugo/focustrack/internal/models"
	"github.com/hugo/focustrack/internal/reporter"
)

func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	var (
		dateStr string
		output  string
		logFile string
		catFile string
		topN    int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Summarize tracked time by category, app, and hour",
		RunE: func(cmd *cobra.Command, args []string) error {
			if logFile != "" {
				cfg.Log.Path = logFile
			}
			if catFile != "" {
				cfg.Category.Path = catFile
			}
			if cmd.Flags().Changed("top") {
				cfg.Report.TopApps = topN
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			r, err := aggregate.ParseDateRange(dateStr, time.Now())
			if err != nil {
				return err
			}

			store, err := logstore.Open(cfg.Log.Path)
			if err != nil {
				return fmt.Errorf("failed to open activity log: %w", err)
			}
			defer store.Close()

			intervals, skipped, err := store.ReadAll()
			if err != nil {
				return err
			}

			// Resolve the range against what the log actually covers
			// before any prompting happens, so an unsatisfiable range
			// fails fast with no partial output.
			if err := checkRange(intervals, r, cfg.Log.Path); err != nil {
				return err
			}

			resolver, err := category.LoadResolver(cfg.Category.Path, newCategoryPrompter(os.Stdin, cmd.OutOrStdout()))
			if err != nil {
				return err
			}

			res, err := aggregate.Summarize(intervals, resolver.Resolve, r, aggregate.Options{
				MinDuration: cfg.Report.MinDuration,
				Name:        category.ActivityName,
			})
			if err != nil {
				return err
			}

			rendered, err := reporter.New(cfg).Render(res, output)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)

			if skipped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipped %d malformed record(s) in %s\n", skipped, cfg.Log.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "today", "date to analyze (YYYY-MM-DD, 'today', 'yesterday', or YYYY-MM-DD:YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", reporter.OutputBoth, "visualization type (bar, pie, both)")
	cmd.Flags().StringVarP(&logFile, "log-file", "l", "", "path to the activity log (default activity_log.csv)")
	cmd.Flags().StringVarP(&catFile, "category-file", "c", "", "path to the category mapping (default app_categories.json)")
	cmd.Flags().IntVar(&topN, "top", 5, "how many applications the insights section lists")

	return cmd
}

// checkRange rejects a range no logged interval overlaps, telling the
// user what the log does cover.
func checkRange(intervals []models.ActivityInterval, r aggregate.Range, logPath string) error {
	if len(intervals) == 0 {
		return fmt.Errorf("activity log %s contains no intervals", logPath)
	}

	for _, iv := range intervals {
		if iv.Overlaps(r.From, r.To) {
			return nil
		}
	}

	first, last, _ := aggregate.Bounds(intervals)
	return fmt.Errorf("no activity found for %s; the log covers %s to %s",
		r, first.Format("2006-01-02"), last.Format("2006-01-02"))
}
