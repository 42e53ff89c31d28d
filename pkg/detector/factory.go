package detector

import (
	"fmt"
	"os"

	"github.com/hugo/focustrack/pkg/integrations/x11"
	"github.com/hugo/focustrack/pkg/window"
)

// New returns a probe for the current display server.
func New() (window.Probe, error) {
	switch DetectDisplayServer() {
	case "x11":
		return x11.NewProbe()
	case "wayland":
		// XWayland exposes the same EWMH surface for most clients.
		if os.Getenv("DISPLAY") != "" {
			return x11.NewProbe()
		}
		return nil, fmt.Errorf("wayland session without XWayland is not supported")
	default:
		return nil, fmt.Errorf("no supported display server found")
	}
}

// DetectDisplayServer inspects the session environment.
func DetectDisplayServer() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}
