package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/studiowebux/biaslens/internal/types"
)

// maxBodySize caps request bodies; audio arrives base64 encoded
const maxBodySize = 64 << 20

// Server is a local stand-in for the analysis service. Text submissions are
// classified offline; other modes are answered from fixtures.
type Server struct {
	config     *Config
	httpServer *http.Server
	listener   net.Listener
	requests   chan RequestLog
}

// NewServer creates a new mock server
func NewServer(config *Config) *Server {
	if config.Port == 0 {
		config.Port = 8000
	}
	if config.Host == "" {
		config.Host = "localhost"
	}

	return &Server{
		config:   config,
		requests: make(chan RequestLog, 100),
	}
}

// Handler returns the HTTP handler serving POST /analyze
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	return mux
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("mock server error", slog.String("error", err.Error()))
		}
	}()

	slog.Info("mock analysis service started", slog.String("address", s.GetAddress()))
	return nil
}

// Stop stops the mock server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// handleAnalyze answers one analysis submission
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	r.Body.Close()
	if err != nil {
		writeDetail(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}

	var req types.AnalyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.respond(w, start, RequestLog{Size: len(body), MatchedRule: "invalid"}, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}

	mode, input, ok := requestMode(&req)
	if !ok {
		s.respond(w, start, RequestLog{Size: len(body), MatchedRule: "none"}, http.StatusBadRequest, "No input provided", nil)
		return
	}

	entry := RequestLog{Mode: mode.String(), Size: len(body)}

	if fixture := s.findFixture(mode, input); fixture != nil {
		s.sleep(fixture.Delay)
		entry.MatchedRule = fixture.Name
		if entry.MatchedRule == "" {
			entry.MatchedRule = "fixture:" + fixture.Mode
		}
		status := fixture.Status
		if status == 0 {
			status = http.StatusOK
		}
		s.respond(w, start, entry, status, fixture.Detail, fixture.Analysis)
		return
	}

	s.sleep(0)

	if mode != types.ModeText {
		entry.MatchedRule = "unsupported"
		detail := fmt.Sprintf("%s analysis needs a fixture on the mock server", mode)
		s.respond(w, start, entry, http.StatusNotImplemented, detail, nil)
		return
	}

	records := make([]types.AnalysisRecord, 0, len(req.Sentences))
	for _, sentence := range req.Sentences {
		records = append(records, types.AnalysisRecord{
			Sentence:  sentence,
			Bias:      ClassifyBias(sentence),
			Sentiment: ClassifySentiment(sentence),
		})
	}
	entry.MatchedRule = "classifier"
	s.respond(w, start, entry, http.StatusOK, "", records)
}

// respond writes {analysis} for 2xx statuses and {detail} otherwise
func (s *Server) respond(w http.ResponseWriter, start time.Time, entry RequestLog, status int, detail string, records []types.AnalysisRecord) {
	if status >= 200 && status < 300 {
		if records == nil {
			records = []types.AnalysisRecord{}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{"analysis": records})
		entry.Records = len(records)
	} else {
		if detail == "" {
			detail = http.StatusText(status)
		}
		writeDetail(w, status, detail)
	}

	entry.Status = status
	entry.Timestamp = start
	entry.Duration = time.Since(start)

	if s.config.Logging {
		s.logRequest(entry)
	}
	slog.Debug("mock request",
		slog.String("mode", entry.Mode),
		slog.String("rule", entry.MatchedRule),
		slog.Int("status", status),
		slog.Int("records", entry.Records))
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

// requestMode detects the payload shape and returns the submitted input
func requestMode(req *types.AnalyzeRequest) (types.Mode, string, bool) {
	switch {
	case len(req.Sentences) > 0:
		return types.ModeText, strings.Join(req.Sentences, " "), true
	case req.URL != "":
		return types.ModeURL, req.URL, true
	case req.VideoURL != "":
		return types.ModeVideo, req.VideoURL, true
	case req.AudioBase64 != "":
		return types.ModeAudio, req.AudioBase64, true
	}
	return types.ModeOther, "", false
}

// findFixture returns the first fixture for mode whose Match is in input
func (s *Server) findFixture(mode types.Mode, input string) *Fixture {
	for i := range s.config.Fixtures {
		f := &s.config.Fixtures[i]
		if !strings.EqualFold(f.Mode, mode.String()) {
			continue
		}
		if f.Match == "" || strings.Contains(input, f.Match) {
			return f
		}
	}
	return nil
}

func (s *Server) sleep(fixtureDelay int) {
	delay := s.config.Delay
	if fixtureDelay > 0 {
		delay = fixtureDelay
	}
	if delay > 0 {
		time.Sleep(time.Duration(delay) * time.Millisecond)
	}
}

// logRequest publishes a handled request. Entries are dropped while the
// buffer is full.
func (s *Server) logRequest(log RequestLog) {
	select {
	case s.requests <- log:
	default:
	}
}

// Requests streams handled requests when Config.Logging is set
func (s *Server) Requests() <-chan RequestLog {
	return s.requests
}

// GetAddress returns the server base URL
func (s *Server) GetAddress() string {
	if s.listener != nil {
		return "http://" + s.listener.Addr().String()
	}
	return fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
}
