package category

import (
	"net/url"
	"regexp"
	"strings"
)

// NameFunc derives the activity name recorded for an interval. It lets
// title-aware rules split a single app into finer activities (one per
// site, one per file) before category resolution.
type NameFunc func(app, title string) string

var urlPattern = regexp.MustCompile(`https?://\S+`)

// ActivityName refines well-known apps using the window title: browser
// windows become the site domain, editor windows the open file.
// Everything else keys by app name.
func ActivityName(app, title string) string {
	if title == "" {
		return app
	}

	lower := strings.ToLower(app)
	switch {
	case strings.Contains(lower, "chrome") || strings.Contains(lower, "chromium"):
		return browserActivity(title)
	case lower == "code" || lower == "code-oss" || strings.Contains(lower, "visual studio code"):
		return editorActivity(title)
	}
	return app
}

func browserActivity(title string) string {
	if match := urlPattern.FindString(title); match != "" {
		if u, err := url.Parse(match); err == nil && u.Host != "" {
			return u.Host
		}
		return "Unknown URL"
	}

	// Non-page windows (New Tab, Settings) keep their trailing segment.
	parts := strings.Split(title, " - ")
	return "Chrome - " + parts[len(parts)-1]
}

func editorActivity(title string) string {
	file, _, _ := strings.Cut(title, " - ")
	if file == "" {
		return "VSCode"
	}
	return "VSCode - " + file
}
