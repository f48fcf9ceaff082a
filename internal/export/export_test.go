package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/studiowebux/biaslens/internal/types"
)

type fakeClipboard struct {
	writes []string
	err    error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, text)
	return nil
}

func TestCSV_Format(t *testing.T) {
	records := []types.AnalysisRecord{
		{Sentence: "Hello world.", Bias: "neutral", Sentiment: "POSITIVE"},
		{Sentence: `He said "no".`, Bias: "left", Sentiment: "negative"},
	}

	want := `"Sentence","Bias","Sentiment"` + "\n" +
		`"Hello world.","neutral","POSITIVE"` + "\n" +
		`"He said ""no"".","left","negative"`

	if got := CSV(records); got != want {
		t.Errorf("CSV() =\n%s\nwant\n%s", got, want)
	}
}

func TestCSV_EmptyStore(t *testing.T) {
	if got := CSV(nil); got != `"Sentence","Bias","Sentiment"` {
		t.Errorf("Expected header only, got %q", got)
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	records := []types.AnalysisRecord{
		{Sentence: `Quote "inside" here.`, Bias: "loaded language", Sentiment: "negative"},
		{Sentence: "Commas, everywhere, really.", Bias: "neutral", Sentiment: "neutral"},
		{Sentence: "Line\nbreak.", Bias: `odd "label"`, Sentiment: "Positive"},
		{Sentence: "", Bias: "Unknown", Sentiment: "unknown"},
		{Sentence: `""`, Bias: ",", Sentiment: "\"\n\""},
	}

	reader := csv.NewReader(strings.NewReader(CSV(records)))
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse exported CSV: %v", err)
	}

	if !reflect.DeepEqual(rows[0], []string{"Sentence", "Bias", "Sentiment"}) {
		t.Errorf("Unexpected header: %v", rows[0])
	}

	var parsed []types.AnalysisRecord
	for _, row := range rows[1:] {
		parsed = append(parsed, types.AnalysisRecord{Sentence: row[0], Bias: row[1], Sentiment: row[2]})
	}
	if !reflect.DeepEqual(parsed, records) {
		t.Errorf("Round trip mismatch:\n got %#v\nwant %#v", parsed, records)
	}
}

func TestExportCSV(t *testing.T) {
	d := ExportCSV([]types.AnalysisRecord{{Sentence: "A", Bias: "b", Sentiment: "c"}})
	if d.Filename != "analysis.csv" {
		t.Errorf("Expected filename analysis.csv, got %s", d.Filename)
	}
	if d.MIMEType != "text/csv" {
		t.Errorf("Expected MIME text/csv, got %s", d.MIMEType)
	}
	if !bytes.HasPrefix(d.Data, []byte(`"Sentence"`)) {
		t.Errorf("Unexpected data: %s", d.Data)
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	d := ExportCSV([]types.AnalysisRecord{{Sentence: "A", Bias: "b", Sentiment: "c"}})

	path, err := Save(dir, d)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if filepath.Base(path) != CSVFilename {
		t.Errorf("Expected %s, got %s", CSVFilename, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(data, d.Data) {
		t.Errorf("Saved data mismatch: %s", data)
	}
}

func TestCopyAllSentences(t *testing.T) {
	clip := &fakeClipboard{}
	records := []types.AnalysisRecord{{Sentence: "One."}, {Sentence: "Two!"}, {Sentence: "Three?"}}

	if err := CopyAllSentences(clip, records); err != nil {
		t.Fatalf("CopyAllSentences() failed: %v", err)
	}
	if len(clip.writes) != 1 || clip.writes[0] != "One.\nTwo!\nThree?" {
		t.Errorf("Unexpected clipboard writes: %q", clip.writes)
	}
}

func TestCopyAllSentences_Empty(t *testing.T) {
	clip := &fakeClipboard{}
	if err := CopyAllSentences(clip, nil); err != nil {
		t.Fatalf("CopyAllSentences() failed: %v", err)
	}
	if len(clip.writes) != 1 || clip.writes[0] != "" {
		t.Errorf("Expected empty string copied, got %q", clip.writes)
	}
}

func TestCopyOneSentence(t *testing.T) {
	clip := &fakeClipboard{}
	if err := CopyOneSentence(clip, "Only me."); err != nil {
		t.Fatalf("CopyOneSentence() failed: %v", err)
	}
	if clip.writes[0] != "Only me." {
		t.Errorf("Expected 'Only me.', got %q", clip.writes[0])
	}
}

func TestCopy_PropagatesError(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no display")}
	err := CopyOneSentence(clip, "x")
	if err == nil || !strings.Contains(err.Error(), "no display") {
		t.Errorf("Expected wrapped clipboard error, got %v", err)
	}
}
