package window

// FocusedWindow describes the window currently holding input focus.
type FocusedWindow struct {
	AppName string
	Title   string
}

// Probe is the OS-level primitive the tracker polls. Implementations
// return (nil, nil) when the system is idle or the screen is locked so
// that callers can tell "no focus" apart from a broken probe.
type Probe interface {
	// FocusedWindow returns the currently focused window, or nil when
	// the user is idle/locked.
	FocusedWindow() (*FocusedWindow, error)

	// IsAvailable checks whether this probe can run on the current system.
	IsAvailable() bool

	// Close releases any resources held by the probe.
	Close() error
}
