package types

import (
	"fmt"
	"strings"
)

// Mode is the selected input modality
type Mode int

const (
	ModeURL Mode = iota
	ModeText
	ModeVideo
	ModeAudio
	ModeOther
)

var modeNames = map[Mode]string{
	ModeURL:   "url",
	ModeText:  "text",
	ModeVideo: "video",
	ModeAudio: "audio",
	ModeOther: "other",
}

// Modes returns every mode in tab order
func Modes() []Mode {
	return []Mode{ModeURL, ModeText, ModeVideo, ModeAudio, ModeOther}
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode converts a mode name (case-insensitive) to a Mode
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for mode, n := range modeNames {
		if n == name {
			return mode, nil
		}
	}
	return ModeURL, fmt.Errorf("unknown mode '%s' (expected url, text, video, audio or other)", s)
}
