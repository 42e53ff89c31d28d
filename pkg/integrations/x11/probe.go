package x11

import (
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/hugo/focustrack/pkg/window"
)

// idleThresholdSeconds is how long without input before a poll is
// reported as idle instead of attributing time to the focused window.
const idleThresholdSeconds = 300

var atomNames = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_NAME",
	"WM_NAME",
	"WM_CLASS",
	"UTF8_STRING",
}

// Probe implements window.Probe against an X11 display using the EWMH
// properties. The connection is opened once and reused across polls.
type Probe struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

// NewProbe connects to the X server and interns the atoms the probe needs.
func NewProbe() (*Probe, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	p := &Probe{
		conn:  conn,
		root:  setup.DefaultScreen(conn).Root,
		atoms: make(map[string]xproto.Atom, len(atomNames)),
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to intern atom %s: %w", name, err)
		}
		p.atoms[name] = reply.Atom
	}

	return p, nil
}

// IsAvailable reports whether an X11 session is reachable.
func (p *Probe) IsAvailable() bool {
	return p.conn != nil && os.Getenv("DISPLAY") != ""
}

// FocusedWindow returns the active window, or nil when the user is idle
// or the screen is locked.
func (p *Probe) FocusedWindow() (*window.FocusedWindow, error) {
	if p.screenLocked() || p.idleSeconds() > idleThresholdSeconds {
		return nil, nil
	}

	active, err := p.activeWindow()
	if err != nil {
		return nil, err
	}
	if active == 0 {
		// No window holds focus (empty desktop); treat as idle.
		return nil, nil
	}

	title := p.windowName(active)
	instance, class := p.windowClass(active)

	appName := class
	if appName == "" {
		appName = instance
	}
	if appName == "" {
		return nil, fmt.Errorf("active window 0x%x has no WM_CLASS", active)
	}

	return &window.FocusedWindow{
		AppName: appName,
		Title:   title,
	}, nil
}

// Close shuts down the X connection.
func (p *Probe) Close() error {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
	return nil
}

func (p *Probe) property(win xproto.Window, atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(p.conn, false, win, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (p *Probe) activeWindow() (xproto.Window, error) {
	data, err := p.property(p.root, p.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err == nil && len(data) >= 4 {
		if win := xproto.Window(binary.LittleEndian.Uint32(data)); win != 0 {
			return win, nil
		}
	}

	// Fall back to the input focus for window managers without EWMH.
	reply, err := xproto.GetInputFocus(p.conn).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to query input focus: %w", err)
	}
	if reply.Focus == 0 || reply.Focus == p.root {
		return 0, nil
	}
	return p.topLevelParent(reply.Focus), nil
}

func (p *Probe) topLevelParent(win xproto.Window) xproto.Window {
	for {
		reply, err := xproto.QueryTree(p.conn, win).Reply()
		if err != nil || reply.Parent == p.root || reply.Parent == 0 {
			return win
		}
		win = reply.Parent
	}
}

func (p *Probe) windowName(win xproto.Window) string {
	data, err := p.property(win, p.atoms["_NET_WM_NAME"], p.atoms["UTF8_STRING"], 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	data, err = p.property(win, p.atoms["WM_NAME"], xproto.AtomString, 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	return ""
}

func (p *Probe) windowClass(win xproto.Window) (instance, class string) {
	data, err := p.property(win, p.atoms["WM_CLASS"], xproto.AtomString, 256)
	if err != nil || len(data) == 0 {
		return "", ""
	}

	parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	if len(parts) >= 1 {
		instance = parts[0]
	}
	if len(parts) >= 2 {
		class = parts[1]
	}
	return instance, class
}

// idleSeconds reports seconds since the last user input, 0 when unknown.
func (p *Probe) idleSeconds() int64 {
	output, err := exec.Command("xprintidle").Output()
	if err != nil {
		return 0
	}

	idleMs, err := strconv.ParseInt(strings.TrimSpace(string(output)), 10, 64)
	if err != nil {
		return 0
	}

	return idleMs / 1000
}

// screenLocked checks for a running screen locker process.
func (p *Probe) screenLocked() bool {
	lockers := []string{
		"gnome-screensaver-dialog",
		"kscreenlocker",
		"i3lock",
		"slock",
		"xscreensaver",
		"xsecurelock",
	}

	for _, locker := range lockers {
		if err := exec.Command("pgrep", "-x", locker).Run(); err == nil {
			return true
		}
	}

	return false
}
