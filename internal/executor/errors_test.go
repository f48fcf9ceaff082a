package executor

import (
	"errors"
	"testing"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name     string
		errStr   string
		wantText string
	}{
		{
			name:     "empty error",
			errStr:   "",
			wantText: "",
		},
		{
			name:     "client timeout",
			errStr:   `Post "http://localhost:8000/analyze": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`,
			wantText: "Request timeout - the analysis service took too long, try increasing the timeout in your profile",
		},
		{
			name:     "DNS lookup failure",
			errStr:   "dial tcp: lookup nonexistent.example.com: no such host",
			wantText: "DNS resolution failed - verify the service hostname and network",
		},
		{
			name:     "connection refused",
			errStr:   "dial tcp 127.0.0.1:9999: connect: connection refused",
			wantText: "Connection refused - check that the analysis service is running and the base URL is correct",
		},
		{
			name:     "connection reset",
			errStr:   "read tcp 127.0.0.1:8080->127.0.0.1:54321: read: connection reset by peer",
			wantText: "Connection reset by server - the service may have crashed",
		},
		{
			name:     "bad scheme",
			errStr:   `Post "localhost:8000/analyze": unsupported protocol scheme "localhost"`,
			wantText: "Invalid base URL - use http:// or https://",
		},
		{
			name:     "unexpected EOF",
			errStr:   `Post "http://x/analyze": EOF`,
			wantText: "Connection closed unexpectedly - the service terminated the connection",
		},
		{
			name:     "unknown",
			errStr:   "something odd",
			wantText: "Request failed: something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeError(tt.errStr); got != tt.wantText {
				t.Errorf("CategorizeError(%q) = %q, want %q", tt.errStr, got, tt.wantText)
			}
		})
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &NetworkError{Err: cause}
	if !errors.Is(err, cause) {
		t.Error("NetworkError should unwrap to its cause")
	}
}

func TestNewServerError(t *testing.T) {
	if got := newServerError(422, []byte(`{"detail":"No input provided"}`)); got.Error() != "No input provided" {
		t.Errorf("Expected detail, got %q", got.Error())
	}
	if got := newServerError(404, nil); got.Error() != "Request failed: 404" {
		t.Errorf("Expected generic message, got %q", got.Error())
	}
}
