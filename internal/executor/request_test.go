package executor

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/studiowebux/biaslens/internal/types"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"two sentences", "Hello world. This is great!", []string{"Hello world.", "This is great!"}},
		{"question and newline", "Is it?\nYes.", []string{"Is it?", "Yes."}},
		{"no terminal punctuation", "no punctuation here", []string{"no punctuation here"}},
		{"punctuation without space", "v1.2 is out.Really", []string{"v1.2 is out.Really"}},
		{"extra whitespace", "  One.   Two.  ", []string{"One.", "Two."}},
		{"ellipsis", "Wait... what?! Ok.", []string{"Wait...", "what?!", "Ok."}},
		{"empty", "", nil},
		{"only whitespace", " \n\t ", nil},
		{"only punctuation", ". ! ?", []string{".", "!", "?"}},
		{"unicode", "Ça va. Très bien!", []string{"Ça va.", "Très bien!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name string
		mode types.Mode
		raw  string
		want *types.AnalyzeRequest
	}{
		{"text", types.ModeText, "Hello world. This is great!", &types.AnalyzeRequest{Sentences: []string{"Hello world.", "This is great!"}}},
		{"url", types.ModeURL, "https://example.com/a", &types.AnalyzeRequest{URL: "https://example.com/a"}},
		{"video", types.ModeVideo, "https://video.example.com/1", &types.AnalyzeRequest{VideoURL: "https://video.example.com/1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildRequest(tt.mode, tt.raw)
			if err != nil {
				t.Fatalf("BuildRequest() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildRequest_Audio(t *testing.T) {
	data := []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0xff, 0x10}
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write audio file: %v", err)
	}

	got, err := BuildRequest(types.ModeAudio, path)
	if err != nil {
		t.Fatalf("BuildRequest() error: %v", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(got.AudioBase64)
	if err != nil {
		t.Fatalf("Payload is not valid base64: %v", err)
	}
	if !reflect.DeepEqual(decoded, data) {
		t.Errorf("Decoded audio mismatch: %v", decoded)
	}
	if got.URL != "" || got.VideoURL != "" || got.Sentences != nil {
		t.Errorf("Audio payload should only set audio_base64: %+v", got)
	}
}

func TestBuildRequest_AudioMissingFile(t *testing.T) {
	_, err := BuildRequest(types.ModeAudio, filepath.Join(t.TempDir(), "missing.mp3"))
	if err == nil {
		t.Fatal("Expected error for missing audio file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped not-exist error, got %v", err)
	}
}

func TestBuildRequest_Errors(t *testing.T) {
	if _, err := BuildRequest(types.ModeOther, "x"); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("Expected ErrUnsupportedMode, got %v", err)
	}
	if _, err := BuildRequest(types.ModeText, "   "); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput for blank text, got %v", err)
	}
	if _, err := BuildRequest(types.ModeURL, ""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput for blank url, got %v", err)
	}
	if _, err := BuildRequest(types.ModeAudio, ""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput for no audio file, got %v", err)
	}
}
