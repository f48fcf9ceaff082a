// Package analysis owns the client-side session: the input state, the
// result store, the error state, the loading flag and the request
// generation that keeps late responses from leaking across mode switches.
package analysis

import (
	"github.com/studiowebux/biaslens/internal/filter"
	"github.com/studiowebux/biaslens/internal/input"
	"github.com/studiowebux/biaslens/internal/types"
)

// Ticket identifies one submission. Responses are applied only while the
// ticket's generation is still current.
type Ticket struct {
	Generation uint64
	Mode       types.Mode
	Input      string
}

// State is not safe for concurrent use; it is driven from a single event loop.
type State struct {
	inputs     *input.State
	results    []types.AnalysisRecord
	errMsg     string
	loading    bool
	generation uint64
}

// NewState creates an empty session on the URL tab
func NewState() *State {
	return &State{
		inputs:  input.NewState(),
		results: []types.AnalysisRecord{},
	}
}

// Mode returns the active mode
func (s *State) Mode() types.Mode {
	return s.inputs.Active()
}

// SetMode switches modes. Every input, the result store and the error state
// are cleared, and any pending response is abandoned.
func (s *State) SetMode(m types.Mode) {
	s.inputs.SetMode(m)
	s.results = []types.AnalysisRecord{}
	s.errMsg = ""
	s.loading = false
	s.generation++
}

// SetInput stores the raw value for a mode
func (s *State) SetInput(m types.Mode, value string) {
	s.inputs.SetInput(m, value)
}

// Input returns the raw value for a mode
func (s *State) Input(m types.Mode) string {
	return s.inputs.Input(m)
}

// CanSubmit reports whether Begin would start a submission
func (s *State) CanSubmit() bool {
	return !s.loading && s.inputs.Ready()
}

// Begin starts a submission of the active mode's input. It returns false
// (and changes nothing) while a request is loading or when the input is empty.
func (s *State) Begin() (Ticket, bool) {
	if !s.CanSubmit() {
		return Ticket{}, false
	}
	s.generation++
	s.loading = true
	return Ticket{
		Generation: s.generation,
		Mode:       s.inputs.Active(),
		Input:      s.inputs.Current(),
	}, true
}

// Current reports whether a ticket still belongs to the latest submission
func (s *State) Current(t Ticket) bool {
	return t.Generation == s.generation
}

// Complete replaces the result store and clears the error state.
// Stale tickets are ignored and false is returned.
func (s *State) Complete(t Ticket, records []types.AnalysisRecord) bool {
	if !s.Current(t) {
		return false
	}
	if records == nil {
		records = []types.AnalysisRecord{}
	}
	s.results = records
	s.errMsg = ""
	s.loading = false
	return true
}

// Fail records an error message and leaves the result store untouched.
// Stale tickets are ignored and false is returned.
func (s *State) Fail(t Ticket, msg string) bool {
	if !s.Current(t) {
		return false
	}
	s.errMsg = msg
	s.loading = false
	return true
}

// Results returns the result store. Callers must not modify it.
func (s *State) Results() []types.AnalysisRecord {
	return s.results
}

// Filtered derives the records matching the criteria
func (s *State) Filtered(criteria types.FilterCriteria) []types.AnalysisRecord {
	return filter.Recompute(s.results, criteria)
}

// Err returns the last error message, or "" when there is none
func (s *State) Err() string {
	return s.errMsg
}

// Loading reports whether a submission is in flight
func (s *State) Loading() bool {
	return s.loading
}
