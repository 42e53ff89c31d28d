package window

import "testing"

type MockProbe struct {
	Window    *FocusedWindow
	Err       error
	Available bool
	CloseErr  error
}

func (m *MockProbe) FocusedWindow() (*FocusedWindow, error) {
	return m.Window, m.Err
}

func (m *MockProbe) IsAvailable() bool {
	return m.Available
}

func (m *MockProbe) Close() error {
	return m.CloseErr
}

func TestMockProbe(t *testing.T) {
	var _ Probe = (*MockProbe)(nil)

	mock := &MockProbe{
		Window:    &FocusedWindow{AppName: "firefox", Title: "Example Page"},
		Available: true,
	}

	fw, err := mock.FocusedWindow()
	if err != nil {
		t.Errorf("FocusedWindow() error: %v", err)
	}
	if fw.AppName != "firefox" {
		t.Errorf("AppName = %s, want firefox", fw.AppName)
	}

	if !mock.IsAvailable() {
		t.Error("IsAvailable() = false, want true")
	}

	if err := mock.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestIdleIsNilWindow(t *testing.T) {
	mock := &MockProbe{Available: true}

	fw, err := mock.FocusedWindow()
	if err != nil {
		t.Errorf("FocusedWindow() error: %v", err)
	}
	if fw != nil {
		t.Errorf("FocusedWindow() = %+v, want nil for idle", fw)
	}
}
