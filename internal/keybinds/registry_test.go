package keybinds

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistry_MatchFallsBackToGlobal(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		context Context
		key     string
		want    Action
		found   bool
	}{
		{ContextResults, "j", ActionNavigateDown, true},
		{ContextResults, "tab", ActionNextMode, true},
		{ContextInput, "ctrl+s", ActionSubmit, true},
		{ContextInput, "j", "", false},
		{ContextHelp, "tab", "", false},
		{ContextSearch, "esc", ActionCancel, true},
	}

	for _, tt := range tests {
		got, ok := r.Match(tt.context, tt.key)
		if got != tt.want || ok != tt.found {
			t.Errorf("Match(%s, %q) = (%q, %v), want (%q, %v)", tt.context, tt.key, got, ok, tt.want, tt.found)
		}
	}
}

func TestRegistry_SpecificOverridesGlobal(t *testing.T) {
	r := DefaultRegistry()
	r.Register(ContextResults, "tab", ActionNavigateDown)

	if got, _ := r.Match(ContextResults, "tab"); got != ActionNavigateDown {
		t.Errorf("results tab = %q", got)
	}
	if got, _ := r.Match(ContextInput, "tab"); got != ActionNextMode {
		t.Errorf("input tab = %q", got)
	}
}

func TestRegistry_GetBindingString(t *testing.T) {
	r := DefaultRegistry()

	if got := r.GetBindingString(ContextResults, ActionNavigateDown); got != "j / down" {
		t.Errorf("GetBindingString = %q", got)
	}
	if got := r.GetBindingString(ContextInput, ActionCopyOne); got != "unbound" {
		t.Errorf("GetBindingString = %q", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keybinds.jsonc")
	content := `{
  // vim users
  "results": {
    "x": "copy_one",
    "q": "none",
    "z": "fly",
  },
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got, _ := r.Match(ContextResults, "x"); got != ActionCopyOne {
		t.Errorf("x = %q", got)
	}
	if _, ok := r.Match(ContextResults, "q"); ok {
		t.Error("q should be unbound")
	}
	if _, ok := r.Match(ContextResults, "z"); ok {
		t.Error("invalid binding should be skipped")
	}
	if got, _ := r.Match(ContextResults, "y"); got != ActionCopyOne {
		t.Errorf("defaults should survive, y = %q", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "nope.jsonc"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := r.Match(ContextGlobal, "ctrl+s"); !ok {
		t.Error("expected default bindings")
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.jsonc")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if r == nil {
		t.Fatal("expected default registry alongside the error")
	}
}
