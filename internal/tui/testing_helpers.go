package tui

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/biaslens/internal/config"
	"github.com/studiowebux/biaslens/internal/session"
)

// fakeClipboard records clipboard writes
type fakeClipboard struct {
	writes []string
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.writes = append(f.writes, text)
	return nil
}

// CreateTestModel creates a Model backed by a temporary config directory.
// profiles may be empty to use the default profile.
func CreateTestModel(t *testing.T, baseURL string, profiles string) (*Model, *fakeClipboard) {
	t.Helper()

	if err := config.InitializeAt(t.TempDir()); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	if profiles != "" {
		if err := os.WriteFile(config.ProfilesFile, []byte(profiles), config.FilePermissions); err != nil {
			t.Fatalf("Failed to write profiles: %v", err)
		}
	}

	mgr := session.NewManager()
	if err := mgr.Load(); err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	clip := &fakeClipboard{}
	m, err := New(mgr, "test-version", Options{BaseURL: baseURL, Clipboard: clip})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	t.Cleanup(m.Cleanup)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &m, clip
}

// AssertModelField checks a model field value
func AssertModelField(t *testing.T, name string, got, want interface{}) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// runCmd executes a command synchronously and feeds back the messages the
// model reacts to. Timer-based messages (cursor blink, spinner) are skipped.
func runCmd(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(m, c)
		}
	case analyzeResultMsg, clipboardMsg, exportMsg, analyticsLoadedMsg:
		m.Update(msg)
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// press sends a key and returns the resulting command without running it
func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}
