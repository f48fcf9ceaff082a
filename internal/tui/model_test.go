package tui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/biaslens/internal/executor"
	"github.com/studiowebux/biaslens/internal/types"
)

const sampleBody = `{"analysis":[
	{"sentence":"Taxes are theft.","bias":"right","sentiment":"Negative"},
	{"sentence":"Healthcare is a right.","bias":"left","sentiment":"Positive"},
	{"sentence":"The meeting is at noon.","bias":"center","sentiment":"neutral"}
]}`

func newAnalysisServer(t *testing.T, status int, body string, payloads *[]map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if payloads != nil {
			data, _ := io.ReadAll(r.Body)
			var p map[string]any
			json.Unmarshal(data, &p)
			*payloads = append(*payloads, p)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNew_InitialState(t *testing.T) {
	m, _ := CreateTestModel(t, "http://localhost:1", "")

	AssertModelField(t, "mode", m.state.Mode(), types.ModeURL)
	AssertModelField(t, "view", m.view, ViewNormal)
	AssertModelField(t, "focus", m.focus, FocusInput)
	AssertModelField(t, "loading", m.state.Loading(), false)

	if m.client == nil {
		t.Fatal("client should be configured")
	}
	if m.client.Endpoint() != "http://localhost:1/analyze" {
		t.Errorf("Unexpected endpoint %s", m.client.Endpoint())
	}
	if m.analyticsManager != nil {
		t.Error("analytics should be disabled by default")
	}
}

func TestSubmit_URLSuccess(t *testing.T) {
	var payloads []map[string]any
	server := newAnalysisServer(t, http.StatusOK, sampleBody, &payloads)
	m, _ := CreateTestModel(t, server.URL, "")

	press(m, keyRunes("https://example.com/article"))
	cmd := press(m, keyType(tea.KeyEnter))
	if !m.state.Loading() {
		t.Fatal("Expected loading after submit")
	}

	runCmd(m, cmd)

	if len(payloads) != 1 || payloads[0]["url"] != "https://example.com/article" {
		t.Fatalf("Unexpected payloads %v", payloads)
	}
	if got := len(m.state.Results()); got != 3 {
		t.Fatalf("Expected 3 results, got %d", got)
	}
	AssertModelField(t, "loading", m.state.Loading(), false)
	AssertModelField(t, "focus", m.focus, FocusResults)
	if !strings.Contains(m.View(), "Taxes are theft.") {
		t.Error("Expected results in the view")
	}
}

func TestSubmit_TextSplitsSentences(t *testing.T) {
	var payloads []map[string]any
	server := newAnalysisServer(t, http.StatusOK, sampleBody, &payloads)
	m, _ := CreateTestModel(t, server.URL, "")

	press(m, keyType(tea.KeyTab))
	AssertModelField(t, "mode", m.state.Mode(), types.ModeText)

	press(m, keyRunes("Hello world. This is great!"))
	runCmd(m, press(m, keyType(tea.KeyCtrlS)))

	if len(payloads) != 1 {
		t.Fatalf("Expected one request, got %d", len(payloads))
	}
	sentences, _ := payloads[0]["sentences"].([]any)
	if len(sentences) != 2 || sentences[0] != "Hello world." || sentences[1] != "This is great!" {
		t.Errorf("Unexpected sentences %v", sentences)
	}
}

func TestSubmit_EmptyInputRefused(t *testing.T) {
	var payloads []map[string]any
	server := newAnalysisServer(t, http.StatusOK, sampleBody, &payloads)
	m, _ := CreateTestModel(t, server.URL, "")

	press(m, keyRunes("   "))
	cmd := press(m, keyType(tea.KeyEnter))
	if cmd != nil {
		runCmd(m, cmd)
	}
	if len(payloads) != 0 {
		t.Error("Whitespace input must not be submitted")
	}
	AssertModelField(t, "loading", m.state.Loading(), false)
}

func TestSubmit_OtherModeRefused(t *testing.T) {
	m, _ := CreateTestModel(t, "http://localhost:1", "")

	press(m, keyType(tea.KeyShiftTab))
	AssertModelField(t, "mode", m.state.Mode(), types.ModeOther)

	if cmd := press(m, keyType(tea.KeyCtrlS)); cmd != nil {
		t.Error("Expected no command for the other mode")
	}
	if m.errorMsg == "" {
		t.Error("Expected an unsupported message")
	}
}

func TestSubmit_ServerDetail(t *testing.T) {
	server := newAnalysisServer(t, http.StatusBadRequest, `{"detail":"Unsupported article"}`, nil)
	m, _ := CreateTestModel(t, server.URL, "")

	press(m, keyRunes("https://example.com"))
	runCmd(m, press(m, keyType(tea.KeyEnter)))

	AssertModelField(t, "state error", m.state.Err(), "Unsupported article")
	AssertModelField(t, "errorMsg", m.errorMsg, "Unsupported article")
	AssertModelField(t, "loading", m.state.Loading(), false)
}

func TestModeSwitchDropsLateResponse(t *testing.T) {
	server := newAnalysisServer(t, http.StatusOK, sampleBody, nil)
	m, _ := CreateTestModel(t, server.URL, "")

	press(m, keyRunes("https://example.com"))
	cmd := press(m, keyType(tea.KeyEnter))

	// Switch tabs while the request is in flight
	press(m, keyType(tea.KeyTab))
	AssertModelField(t, "loading after switch", m.state.Loading(), false)

	runCmd(m, cmd)

	if len(m.state.Results()) != 0 {
		t.Error("Late response must not populate the new mode")
	}
	AssertModelField(t, "mode", m.state.Mode(), types.ModeText)
	AssertModelField(t, "text input", m.state.Input(types.ModeText), "")
}

func TestModeSwitchClearsEverything(t *testing.T) {
	server := newAnalysisServer(t, http.StatusOK, sampleBody, nil)
	m, _ := CreateTestModel(t, server.URL, "")

	press(m, keyRunes("https://example.com"))
	runCmd(m, press(m, keyType(tea.KeyEnter)))
	press(m, keyRunes("b"))

	press(m, keyType(tea.KeyTab))
	press(m, keyType(tea.KeyShiftTab))

	AssertModelField(t, "mode", m.state.Mode(), types.ModeURL)
	AssertModelField(t, "url input", m.state.Input(types.ModeURL), "")
	AssertModelField(t, "line widget", m.lineInput.Value(), "")
	AssertModelField(t, "bias filter", m.criteria.Bias, "")
	AssertModelField(t, "results", len(m.state.Results()), 0)
}

func TestResultFilters(t *testing.T) {
	server := newAnalysisServer(t, http.StatusOK, sampleBody, nil)
	m, _ := CreateTestModel(t, server.URL, "")

	press(m, keyRunes("https://example.com"))
	runCmd(m, press(m, keyType(tea.KeyEnter)))

	press(m, keyRunes("b"))
	AssertModelField(t, "bias", m.criteria.Bias, "right")
	if got := len(m.visibleRecords()); got != 1 {
		t.Errorf("Expected 1 visible record, got %d", got)
	}

	press(m, keyRunes("s"))
	AssertModelField(t, "sentiment", m.criteria.Sentiment, "negative")

	press(m, keyRunes("c"))
	AssertModelField(t, "cleared bias", m.criteria.Bias, "")
	if got := len(m.visibleRecords()); got != 3 {
		t.Errorf("Expected 3 visible records after clear, got %d", got)
	}

	// Filtering never mutates the store
	if got := len(m.state.Results()); got != 3 {
		t.Errorf("Store changed to %d records", got)
	}
}

func TestSearch(t *testing.T) {
	server := newAnalysisServer(t, http.StatusOK, sampleBody, nil)
	m, _ := CreateTestModel(t, server.URL, "")

	press(m, keyRunes("https://example.com"))
	runCmd(m, press(m, keyType(tea.KeyEnter)))

	press(m, keyRunes("/"))
	AssertModelField(t, "view", m.view, ViewSearch)
	press(m, keyRunes("noon"))
	press(m, keyType(tea.KeyEnter))

	AssertModelField(t, "view", m.view, ViewNormal)
	records := m.visibleRecords()
	if len(records) != 1 || records[0].Sentence != "The meeting is at noon." {
		t.Errorf("Unexpected search result %+v", records)
	}
}

func TestCopyAndExport(t *testing.T) {
	server := newAnalysisServer(t, http.StatusOK, sampleBody, nil)
	exportDir := filepath.Join(t.TempDir(), "out")
	m, clip := CreateTestModel(t, server.URL, `[{"name":"Default","exportDir":"`+exportDir+`"}]`)

	press(m, keyRunes("https://example.com"))
	runCmd(m, press(m, keyType(tea.KeyEnter)))

	press(m, keyRunes("j"))
	runCmd(m, press(m, keyRunes("y")))
	runCmd(m, press(m, keyRunes("Y")))

	if len(clip.writes) != 2 {
		t.Fatalf("Expected 2 clipboard writes, got %d", len(clip.writes))
	}
	if clip.writes[0] != "Healthcare is a right." {
		t.Errorf("Unexpected selected copy %q", clip.writes[0])
	}
	if clip.writes[1] != "Taxes are theft.\nHealthcare is a right.\nThe meeting is at noon." {
		t.Errorf("Unexpected copy all %q", clip.writes[1])
	}

	runCmd(m, press(m, keyRunes("e")))
	data, err := os.ReadFile(filepath.Join(exportDir, "analysis.csv"))
	if err != nil {
		t.Fatalf("Expected analysis.csv: %v", err)
	}
	if !strings.HasPrefix(string(data), `"Sentence","Bias","Sentiment"`) {
		t.Errorf("Unexpected CSV %q", data)
	}
	if !strings.Contains(m.statusMsg, "analysis.csv") {
		t.Errorf("Expected export status, got %q", m.statusMsg)
	}
}

func TestCopyWithoutResults(t *testing.T) {
	m, clip := CreateTestModel(t, "http://localhost:1", "")

	runCmd(m, press(m, keyType(tea.KeyCtrlY)))
	if len(clip.writes) != 1 || clip.writes[0] != "" {
		t.Errorf("Expected an empty clipboard write, got %v", clip.writes)
	}
}

func TestProfileSwitch(t *testing.T) {
	m, _ := CreateTestModel(t, "", `[
  {"name": "local", "baseUrl": "http://localhost:8000"},
  {"name": "remote", "baseUrl": "https://bias.example.com"}
]`)

	press(m, keyType(tea.KeyCtrlP))
	AssertModelField(t, "view", m.view, ViewProfileSwitch)
	press(m, keyRunes("j"))
	press(m, keyType(tea.KeyEnter))

	AssertModelField(t, "view", m.view, ViewNormal)
	AssertModelField(t, "profile", m.sessionMgr.GetActiveProfile().Name, "remote")
	if m.client.Endpoint() != "https://bias.example.com/analyze" {
		t.Errorf("Client not rebuilt: %s", m.client.Endpoint())
	}
}

func TestAnalyticsRecorded(t *testing.T) {
	server := newAnalysisServer(t, http.StatusOK, sampleBody, nil)
	m, _ := CreateTestModel(t, server.URL, `[{"name":"tracked","analyticsEnabled":true}]`)

	if m.analyticsManager == nil {
		t.Fatal("Expected analytics to be enabled")
	}

	press(m, keyRunes("https://example.com"))
	runCmd(m, press(m, keyType(tea.KeyEnter)))

	runCmd(m, press(m, keyType(tea.KeyCtrlT)))
	AssertModelField(t, "view", m.view, ViewAnalytics)
	if len(m.analyticsStats) != 1 || m.analyticsStats[0].Mode != "url" {
		t.Fatalf("Unexpected stats %+v", m.analyticsStats)
	}
	if m.analyticsStats[0].TotalRecords != 3 {
		t.Errorf("Expected 3 records, got %d", m.analyticsStats[0].TotalRecords)
	}

	press(m, keyRunes("C"))
	AssertModelField(t, "view", m.view, ViewAnalyticsClearConfirm)
	runCmd(m, press(m, keyRunes("y")))
	if len(m.analyticsStats) != 0 {
		t.Errorf("Expected stats cleared, got %d", len(m.analyticsStats))
	}
}

func TestAbandonedSubmissionNotRecorded(t *testing.T) {
	server := newAnalysisServer(t, http.StatusOK, sampleBody, nil)
	m, _ := CreateTestModel(t, server.URL, `[{"name":"tracked","analyticsEnabled":true}]`)

	press(m, keyRunes("https://example.com"))
	cmd := press(m, keyType(tea.KeyEnter))
	press(m, keyType(tea.KeyTab))
	runCmd(m, cmd)

	entries, err := m.analyticsManager.LoadAll("tracked", 10)
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no recorded submissions, got %+v", entries)
	}
}

func TestSuccessStatusShowsSize(t *testing.T) {
	server := newAnalysisServer(t, http.StatusOK, sampleBody, nil)
	m, _ := CreateTestModel(t, server.URL, "")

	press(m, keyRunes("https://example.com"))
	runCmd(m, press(m, keyType(tea.KeyEnter)))

	want := "Analyzed 3 sentences (" + executor.FormatSize(len(sampleBody)) + ")"
	if !strings.HasPrefix(m.statusMsg, want) {
		t.Errorf("statusMsg = %q, want prefix %q", m.statusMsg, want)
	}
}

func TestEmptyResultsMessage(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		search string
		want   string
	}{
		{"no sentences returned", `{"analysis":[]}`, "", "No results yet"},
		{"search hides everything", sampleBody, "qqqqqq", "Press c to clear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newAnalysisServer(t, http.StatusOK, tt.body, nil)
			m, _ := CreateTestModel(t, server.URL, "")

			press(m, keyRunes("https://example.com"))
			runCmd(m, press(m, keyType(tea.KeyEnter)))
			m.search = tt.search
			m.updateResultsView()

			if got := m.resultsView.View(); !strings.Contains(got, tt.want) {
				t.Errorf("Expected %q in results view, got %q", tt.want, got)
			}
		})
	}
}

func TestCycleLabel(t *testing.T) {
	labels := []string{"left", "right"}
	tests := []struct {
		current string
		want    string
	}{
		{"", "left"},
		{"left", "right"},
		{"right", ""},
		{"gone", ""},
	}
	for _, tt := range tests {
		if got := cycleLabel(labels, tt.current); got != tt.want {
			t.Errorf("cycleLabel(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
	if got := cycleLabel(nil, ""); got != "" {
		t.Errorf("cycleLabel(nil) = %q", got)
	}
}

func TestNextMode(t *testing.T) {
	AssertModelField(t, "next of url", nextMode(types.ModeURL, 1), types.ModeText)
	AssertModelField(t, "prev of url", nextMode(types.ModeURL, -1), types.ModeOther)
	AssertModelField(t, "next of other", nextMode(types.ModeOther, 1), types.ModeURL)
}

func TestRenderRecordWraps(t *testing.T) {
	r := types.AnalysisRecord{Sentence: strings.Repeat("word ", 20), Bias: "left", Sentiment: "positive"}
	out := renderRecord(0, r, 20, false)
	if lines := strings.Count(out, "\n"); lines < 4 {
		t.Errorf("Expected wrapped sentence, got %d lines", lines+1)
	}
}

func TestCustomKeybindings(t *testing.T) {
	m, _ := CreateTestModel(t, "http://localhost:1", "")

	path := filepath.Join(t.TempDir(), "keybinds.jsonc")
	content := `{
  // swap quit away from q
  "results": {"q": "none", "x": "quit"},
  "global": {"ctrl+n": "next_mode"}
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	custom, err := New(m.sessionMgr, "test-version", Options{BaseURL: "http://localhost:1", Clipboard: &fakeClipboard{}, KeybindsFile: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(custom.Cleanup)
	custom.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	press(&custom, keyType(tea.KeyCtrlN))
	AssertModelField(t, "mode", custom.state.Mode(), types.ModeText)

	custom.focus = FocusResults
	if cmd := press(&custom, keyRunes("q")); cmd != nil {
		t.Error("q should be unbound")
	}
}

func TestHelpListsBindings(t *testing.T) {
	m, _ := CreateTestModel(t, "http://localhost:1", "")

	press(m, keyType(tea.KeyF1))
	AssertModelField(t, "view", m.view, ViewHelp)

	view := m.View()
	for _, want := range []string{"ctrl+s", "analyze the current input", "cycle bias filter"} {
		if !strings.Contains(view, want) {
			t.Errorf("help is missing %q", want)
		}
	}

	press(m, keyType(tea.KeyEsc))
	AssertModelField(t, "view", m.view, ViewNormal)
}
