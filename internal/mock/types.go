package mock

import (
	"fmt"
	"time"

	"github.com/studiowebux/biaslens/internal/types"
)

// Config represents the mock analysis service configuration
type Config struct {
	Port     int       `json:"port" yaml:"port"`                             // Server port (default: 8000)
	Host     string    `json:"host" yaml:"host"`                             // Server host (default: localhost)
	Logging  bool      `json:"logging" yaml:"logging"`                       // Print each handled request
	Delay    int       `json:"delay,omitempty" yaml:"delay,omitempty"`       // Response delay in milliseconds
	Fixtures []Fixture `json:"fixtures,omitempty" yaml:"fixtures,omitempty"` // Canned responses, first match wins
}

// Fixture is a canned response for one input mode
type Fixture struct {
	Name     string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Mode     string                 `json:"mode" yaml:"mode"`                       // text, url, video or audio
	Match    string                 `json:"match,omitempty" yaml:"match,omitempty"` // Substring of the submitted input
	Status   int                    `json:"status,omitempty" yaml:"status,omitempty"`
	Detail   string                 `json:"detail,omitempty" yaml:"detail,omitempty"` // Sent as {detail} on non-2xx
	Analysis []types.AnalysisRecord `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Delay    int                    `json:"delay,omitempty" yaml:"delay,omitempty"` // Overrides Config.Delay
}

// RequestLog represents a logged request
type RequestLog struct {
	Timestamp   time.Time     `json:"timestamp"`
	Mode        string        `json:"mode"`
	Size        int           `json:"size"`
	MatchedRule string        `json:"matchedRule"`
	Status      int           `json:"status"`
	Records     int           `json:"records"`
	Duration    time.Duration `json:"duration"`
}

// String renders the entry as one line for the mock command's output
func (l RequestLog) String() string {
	mode := l.Mode
	if mode == "" {
		mode = "-"
	}
	return fmt.Sprintf("%s %s %d records=%d %s", mode, l.MatchedRule, l.Status, l.Records, l.Duration)
}
