package reporter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hugo/focustrack/internal/aggregate"
	"github.com/hugo/focustrack/internal/config"
)

const (
	// OutputBar renders the per-category bar chart.
	OutputBar = "bar"
	// OutputPie renders the per-category percentage breakdown.
	OutputPie = "pie"
	// OutputBoth renders both.
	OutputBoth = "both"
)

const barWidth = 40

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4A90E2"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7F7F7F"))
)

// Reporter renders an aggregation result for the terminal.
type Reporter struct {
	config *config.Config
}

// New creates a new reporter
func New(cfg *config.Config) *Reporter {
	return &Reporter{config: cfg}
}

// Render produces the full report for the requested output mode
// (bar, pie, or both). The summary table and insights are always shown.
func (r *Reporter) Render(res *aggregate.Result, output string) (string, error) {
	switch output {
	case OutputBar, OutputPie, OutputBoth:
	default:
		return "", fmt.Errorf("invalid output type: %s (valid: bar, pie, both)", output)
	}

	if res.Total == 0 {
		return fmt.Sprintf("No activity recorded for %s.\n", res.Range), nil
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Activity Summary — %s", res.Range)))
	b.WriteString("\n\n")
	b.WriteString(r.summaryTable(res))

	if output == OutputBar || output == OutputBoth {
		b.WriteString("\n")
		b.WriteString(r.barChart(res))
	}
	if output == OutputPie || output == OutputBoth {
		b.WriteString("\n")
		b.WriteString(r.breakdown(res))
	}

	b.WriteString("\n")
	b.WriteString(r.insights(res))

	return b.String(), nil
}

func (r *Reporter) summaryTable(res *aggregate.Result) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-24s %10s %10s %9s", "Category", "Time", "Sessions", "Percent")))
	b.WriteString("\n")

	for _, c := range rankCategories(res.TotalsByCategory) {
		pct := 100 * float64(c.Duration) / float64(res.Total)
		b.WriteString(fmt.Sprintf("%-24s %10s %10d %8.1f%%\n",
			truncate(c.Name, 24),
			FormatDuration(c.Duration),
			res.CountsByCategory[c.Name],
			pct))
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("Total: %s", FormatDuration(res.Total))))
	b.WriteString("\n")
	return b.String()
}

func (r *Reporter) barChart(res *aggregate.Result) string {
	ranked := rankCategories(res.TotalsByCategory)
	if len(ranked) == 0 {
		return ""
	}
	max := ranked[0].Duration

	var b strings.Builder
	b.WriteString(headerStyle.Render("Time by Category"))
	b.WriteString("\n")

	for _, c := range ranked {
		n := int(float64(barWidth) * float64(c.Duration) / float64(max))
		if n < 1 {
			n = 1
		}
		b.WriteString(fmt.Sprintf("%-16s %s %s\n",
			categoryStyle.Render(truncate(c.Name, 16)),
			barStyle.Render(strings.Repeat("█", n)),
			FormatDuration(c.Duration)))
	}
	return b.String()
}

func (r *Reporter) breakdown(res *aggregate.Result) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Share of Tracked Time"))
	b.WriteString("\n")

	for _, c := range rankCategories(res.TotalsByCategory) {
		pct := 100 * float64(c.Duration) / float64(res.Total)
		segments := int(pct / 5)
		if segments < 1 {
			segments = 1
		}
		b.WriteString(fmt.Sprintf("%-16s %s %.1f%%\n",
			categoryStyle.Render(truncate(c.Name, 16)),
			barStyle.Render(strings.Repeat("◼", segments)),
			pct))
	}
	return b.String()
}

func (r *Reporter) insights(res *aggregate.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Top %d Applications", r.config.Report.TopApps)))
	b.WriteString("\n")
	for i, app := range res.TopApps {
		if i >= r.config.Report.TopApps {
			break
		}
		b.WriteString(fmt.Sprintf("  • %s: %s\n", app.AppName, FormatDuration(app.Duration)))
	}

	peaks := peakHours(res.Hourly, 3)
	if len(peaks) > 0 {
		b.WriteString(headerStyle.Render("Peak Activity Hours"))
		b.WriteString("\n")
		for _, h := range peaks {
			b.WriteString(fmt.Sprintf("  • %02d:00–%02d:59: %s\n", h, h, FormatDuration(res.Hourly[h])))
		}
	}

	return b.String()
}

type categoryTotal struct {
	Name     string
	Duration time.Duration
}

func rankCategories(totals map[string]time.Duration) []categoryTotal {
	ranked := make([]categoryTotal, 0, len(totals))
	for name, d := range totals {
		ranked = append(ranked, categoryTotal{Name: name, Duration: d})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Duration != ranked[j].Duration {
			return ranked[i].Duration > ranked[j].Duration
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// peakHours returns up to n hour indices ordered by tracked time,
// skipping empty buckets.
func peakHours(hourly [24]time.Duration, n int) []int {
	hours := make([]int, 0, 24)
	for h, d := range hourly {
		if d > 0 {
			hours = append(hours, h)
		}
	}
	sort.Slice(hours, func(i, j int) bool {
		if hourly[hours[i]] != hourly[hours[j]] {
			return hourly[hours[i]] > hourly[hours[j]]
		}
		return hours[i] < hours[j]
	})
	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}

// FormatDuration renders a duration in the compact form reports use.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
