package mock

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/studiowebux/biaslens/internal/executor"
	"github.com/studiowebux/biaslens/internal/types"
)

func newTestClient(t *testing.T, cfg *Config) (*executor.Client, *Server) {
	t.Helper()
	srv := NewServer(cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := executor.NewClient(executor.Options{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, srv
}

func TestServer_ClassifiesSentences(t *testing.T) {
	client, srv := newTestClient(t, &Config{Logging: true})

	req, err := executor.BuildRequest(types.ModeText, "The rollout was a success. Everyone knows they are lazy. It rained.")
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	result, err := client.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	want := []types.AnalysisRecord{
		{Sentence: "The rollout was a success.", Bias: BiasNeutral, Sentiment: SentimentPositive},
		{Sentence: "Everyone knows they are lazy.", Bias: BiasGeneral, Sentiment: SentimentNegative},
		{Sentence: "It rained.", Bias: BiasNeutral, Sentiment: SentimentNeutral},
	}
	if len(result.Records) != len(want) {
		t.Fatalf("got %d records, want %d", len(result.Records), len(want))
	}
	for i := range want {
		if result.Records[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, result.Records[i], want[i])
		}
	}

	select {
	case entry := <-srv.Requests():
		if entry.Mode != "text" || entry.MatchedRule != "classifier" || entry.Records != 3 {
			t.Errorf("unexpected log entry: %+v", entry)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a request log entry")
	}
}

func TestServer_NoRequestsWithoutLogging(t *testing.T) {
	client, srv := newTestClient(t, &Config{})

	req, err := executor.BuildRequest(types.ModeText, "It rained.")
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if _, err := client.Analyze(context.Background(), req); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	select {
	case entry := <-srv.Requests():
		t.Errorf("unexpected log entry: %+v", entry)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRequestLog_String(t *testing.T) {
	tests := []struct {
		name  string
		entry RequestLog
		want  string
	}{
		{
			name:  "classified text",
			entry: RequestLog{Mode: "text", MatchedRule: "classifier", Status: 200, Records: 3, Duration: 1500 * time.Microsecond},
			want:  "text classifier 200 records=3 1.5ms",
		},
		{
			name:  "invalid body",
			entry: RequestLog{MatchedRule: "invalid", Status: 400},
			want:  "- invalid 400 records=0 0s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServer_MissingInput(t *testing.T) {
	client, _ := newTestClient(t, &Config{})

	_, err := client.Analyze(context.Background(), &types.AnalyzeRequest{})

	var serverErr *executor.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serverErr.Status != http.StatusBadRequest || serverErr.Detail != "No input provided" {
		t.Errorf("unexpected error: %+v", serverErr)
	}
}

func TestServer_FixtureMatch(t *testing.T) {
	cfg := &Config{
		Fixtures: []Fixture{
			{Name: "paywalled", Mode: "url", Match: "paywall", Status: 403, Detail: "Article is behind a paywall"},
			{Name: "article", Mode: "url", Analysis: []types.AnalysisRecord{
				{Sentence: "Taxes rose.", Bias: "neutral", Sentiment: "neutral"},
			}},
		},
	}
	client, _ := newTestClient(t, cfg)

	result, err := client.Analyze(context.Background(), &types.AnalyzeRequest{URL: "https://example.com/a"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(result.Records) != 1 || result.Records[0].Sentence != "Taxes rose." {
		t.Errorf("unexpected records: %+v", result.Records)
	}

	_, err = client.Analyze(context.Background(), &types.AnalyzeRequest{URL: "https://example.com/paywall/b"})
	var serverErr *executor.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serverErr.Status != 403 || serverErr.Error() != "Article is behind a paywall" {
		t.Errorf("unexpected error: %+v", serverErr)
	}
}

func TestServer_ModeWithoutFixture(t *testing.T) {
	client, _ := newTestClient(t, &Config{})

	_, err := client.Analyze(context.Background(), &types.AnalyzeRequest{VideoURL: "https://youtube.com/watch?v=x"})

	var serverErr *executor.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serverErr.Status != http.StatusNotImplemented || !strings.Contains(serverErr.Detail, "video") {
		t.Errorf("unexpected error: %+v", serverErr)
	}
}

func TestServer_RejectsOtherMethods(t *testing.T) {
	ts := httptest.NewServer(NewServer(&Config{}).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/analyze")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestServer_StartStop(t *testing.T) {
	srv := NewServer(&Config{Host: "127.0.0.1", Port: 0})
	srv.config.Port = 0 // NewServer defaults 0 to 8000; bind an ephemeral port instead

	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	if !strings.HasPrefix(srv.GetAddress(), "http://127.0.0.1:") {
		t.Errorf("address = %q", srv.GetAddress())
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mock.yaml")
	content := `port: 9000
logging: true
fixtures:
  - name: article
    mode: url
    analysis:
      - sentence: "Taxes rose."
        bias: neutral
        sentiment: neutral
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 9000 || !cfg.Logging || len(cfg.Fixtures) != 1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Fixtures[0].Analysis[0].Bias != "neutral" {
		t.Errorf("unexpected fixture: %+v", cfg.Fixtures[0])
	}

	out := filepath.Join(dir, "copy.json")
	if err := SaveConfig(cfg, out); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if _, err := LoadConfig(out); err != nil {
		t.Errorf("LoadConfig(saved): %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"empty", Config{}, false},
		{"bad port", Config{Port: 70000}, true},
		{"unknown mode", Config{Fixtures: []Fixture{{Mode: "pdf"}}}, true},
		{"other mode", Config{Fixtures: []Fixture{{Mode: "other"}}}, true},
		{"bad status", Config{Fixtures: []Fixture{{Mode: "url", Status: 42}}}, true},
		{"negative delay", Config{Delay: -1}, true},
		{"valid", Config{Fixtures: []Fixture{{Mode: "audio", Status: 500}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(&tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		sentence  string
		bias      string
		sentiment string
	}{
		{"", BiasNeutral, SentimentNeutral},
		{"They NEVER listen.", BiasGeneral, SentimentNeutral},
		{"The plan is flawed and unfair.", BiasGeneral, SentimentNegative},
		{"A strong and effective result.", BiasNeutral, SentimentPositive},
		{"It was a mistake, despite the success.", BiasNeutral, SentimentNegative},
	}

	for _, tt := range tests {
		if got := ClassifyBias(tt.sentence); got != tt.bias {
			t.Errorf("ClassifyBias(%q) = %q, want %q", tt.sentence, got, tt.bias)
		}
		if got := ClassifySentiment(tt.sentence); got != tt.sentiment {
			t.Errorf("ClassifySentiment(%q) = %q, want %q", tt.sentence, got, tt.sentiment)
		}
	}
}
