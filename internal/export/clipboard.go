package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/studiowebux/biaslens/internal/types"
)

// Clipboard receives plain text
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard. When the OS clipboard is not
// reachable (no xclip/xsel/pbcopy, SSH sessions) it falls back to an OSC52
// escape sequence written to Terminal, which most terminal emulators honour.
type SystemClipboard struct {
	Terminal io.Writer
}

// NewSystemClipboard creates a clipboard with the OSC52 fallback on stderr
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{Terminal: os.Stderr}
}

// WriteAll copies text to the clipboard
func (c *SystemClipboard) WriteAll(text string) error {
	if !clipboard.Unsupported {
		err := clipboard.WriteAll(text)
		if err == nil {
			return nil
		}
		slog.Debug("system clipboard unavailable, using OSC52", slog.String("error", err.Error()))
	}

	if c.Terminal == nil {
		return fmt.Errorf("no clipboard available")
	}
	if _, err := osc52.New(text).WriteTo(c.Terminal); err != nil {
		return fmt.Errorf("failed to write OSC52 sequence: %w", err)
	}
	return nil
}

// CopyAllSentences copies every sentence, newline-separated
func CopyAllSentences(c Clipboard, records []types.AnalysisRecord) error {
	if err := c.WriteAll(Sentences(records)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// CopyOneSentence copies a single sentence. Pass "" for an absent sentence.
func CopyOneSentence(c Clipboard, sentence string) error {
	if err := c.WriteAll(sentence); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
