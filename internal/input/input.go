package input

import (
	"strings"

	"github.com/studiowebux/biaslens/internal/types"
)

// State holds the active mode and the raw input of every mode.
// For audio the stored value is the path of the selected file.
type State struct {
	active types.Mode
	values map[types.Mode]string
}

// NewState creates an input state starting on the URL tab
func NewState() *State {
	return &State{
		active: types.ModeURL,
		values: make(map[types.Mode]string),
	}
}

// Active returns the active mode
func (s *State) Active() types.Mode {
	return s.active
}

// SetMode activates a mode and clears the input of every mode
func (s *State) SetMode(m types.Mode) {
	s.active = m
	s.values = make(map[types.Mode]string)
}

// SetInput stores the raw value for exactly that mode
func (s *State) SetInput(m types.Mode, value string) {
	s.values[m] = value
}

// Input returns the raw value stored for a mode
func (s *State) Input(m types.Mode) string {
	return s.values[m]
}

// Current returns the raw value of the active mode
func (s *State) Current() string {
	return s.values[s.active]
}

// Ready reports whether the active mode has something to submit.
// Whitespace-only input counts as empty; "other" is never ready.
func (s *State) Ready() bool {
	if s.active == types.ModeOther {
		return false
	}
	return strings.TrimSpace(s.values[s.active]) != ""
}
