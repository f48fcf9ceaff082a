package executor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/studiowebux/biaslens/internal/types"
)

// ErrUnsupportedMode is returned for modes the service cannot analyze
var ErrUnsupportedMode = errors.New("mode is not supported yet")

// ErrEmptyInput is returned when the active input has nothing to send
var ErrEmptyInput = errors.New("nothing to analyze")

// SplitSentences breaks text after '.', '!' or '?' when the next character is
// whitespace. Units are trimmed and empty units dropped.
func SplitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			sentences = appendTrimmed(sentences, string(runes[start:i+1]))
			start = i + 1
		}
	}
	sentences = appendTrimmed(sentences, string(runes[start:]))

	return sentences
}

func appendTrimmed(sentences []string, unit string) []string {
	if unit = strings.TrimSpace(unit); unit != "" {
		sentences = append(sentences, unit)
	}
	return sentences
}

// BuildRequest shapes the payload for a mode from its raw input.
// For audio the input is a file path; the file is read and base64-encoded.
func BuildRequest(mode types.Mode, raw string) (*types.AnalyzeRequest, error) {
	switch mode {
	case types.ModeText:
		sentences := SplitSentences(raw)
		if len(sentences) == 0 {
			return nil, ErrEmptyInput
		}
		return &types.AnalyzeRequest{Sentences: sentences}, nil

	case types.ModeURL:
		if strings.TrimSpace(raw) == "" {
			return nil, ErrEmptyInput
		}
		return &types.AnalyzeRequest{URL: raw}, nil

	case types.ModeVideo:
		if strings.TrimSpace(raw) == "" {
			return nil, ErrEmptyInput
		}
		return &types.AnalyzeRequest{VideoURL: raw}, nil

	case types.ModeAudio:
		encoded, err := EncodeAudioFile(raw)
		if err != nil {
			return nil, err
		}
		return &types.AnalyzeRequest{AudioBase64: encoded}, nil

	default:
		return nil, fmt.Errorf("%s: %w", mode, ErrUnsupportedMode)
	}
}

// EncodeAudioFile reads an audio file and returns its bytes as standard base64
func EncodeAudioFile(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrEmptyInput
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read audio file: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
