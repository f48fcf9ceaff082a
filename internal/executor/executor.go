package executor

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/studiowebux/biaslens/internal/normalize"
	"github.com/studiowebux/biaslens/internal/types"
)

const (
	// DefaultBaseURL is used when no base URL is configured
	DefaultBaseURL = "http://localhost:8000"
	// DefaultTimeout bounds a single analysis request
	DefaultTimeout = 120 * time.Second

	analyzePath = "/analyze"
)

// Options configures a Client
type Options struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
	TLS     *types.TLSConfig
}

// Client posts analysis requests to a single endpoint
type Client struct {
	endpoint   string
	headers    map[string]string
	httpClient *http.Client
}

// Result is a successful analysis response
type Result struct {
	Records      []types.AnalysisRecord
	Status       int
	Body         []byte
	Malformed    bool  // body could not be parsed; Records is empty
	Duration     int64 // milliseconds
	RequestSize  int   // bytes
	ResponseSize int   // bytes
}

// NewClient builds a client for the service at opts.BaseURL
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient, err := buildHTTPClient(opts.TLS, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
	}

	return &Client{
		endpoint:   strings.TrimRight(base, "/") + analyzePath,
		headers:    opts.Headers,
		httpClient: httpClient,
	}, nil
}

// Endpoint returns the full analyze URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze posts one request and waits for the response.
// Transport failures return *NetworkError, non-2xx statuses *ServerError.
// A 2xx body that does not parse is reported through Result.Malformed.
func (c *Client) Analyze(ctx context.Context, req *types.AnalyzeRequest) (*Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	duration := time.Since(startTime).Milliseconds()

	slog.Debug("analysis response",
		slog.String("endpoint", c.endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", duration),
		slog.Int("bytes", len(body)))

	if !IsSuccessStatus(resp.StatusCode) {
		return nil, newServerError(resp.StatusCode, body)
	}

	result := &Result{
		Status:       resp.StatusCode,
		Body:         body,
		Duration:     duration,
		RequestSize:  len(payload),
		ResponseSize: len(body),
	}

	if readErr != nil {
		slog.Warn("failed to read response body", slog.String("error", readErr.Error()))
		result.Records = []types.AnalysisRecord{}
		result.Malformed = true
		return result, nil
	}

	result.Records, result.Malformed = normalize.Decode(body)
	if result.Malformed {
		slog.Warn("malformed analysis response, treating as empty", slog.Int("bytes", len(body)))
	}
	return result, nil
}

// buildHTTPClient creates an HTTP client with optional TLS/mTLS configuration
func buildHTTPClient(tlsConfig *types.TLSConfig, timeout time.Duration) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if tlsConfig != nil {
		tlsCfg := &tls.Config{
			InsecureSkipVerify: tlsConfig.InsecureSkipVerify,
		}

		// Client certificate (mTLS)
		if tlsConfig.CertFile != "" && tlsConfig.KeyFile != "" {
			cert, err := tls.LoadX509KeyPair(tlsConfig.CertFile, tlsConfig.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load client certificate: %w", err)
			}
			tlsCfg.Certificates = []tls.Certificate{cert}
		}

		if tlsConfig.CAFile != "" {
			caCert, err := os.ReadFile(tlsConfig.CAFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA certificate: %w", err)
			}
			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM(caCert) {
				return nil, fmt.Errorf("failed to parse CA certificate")
			}
			tlsCfg.RootCAs = caCertPool
		}

		transport.TLSClientConfig = tlsCfg
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
