package executor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NetworkError is a transport failure before any response was received
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return CategorizeError(e.Err.Error())
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is a non-2xx response. Detail is the server's "detail" message
// when the body carried one.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Request failed: %d", e.Status)
}

// newServerError extracts a string "detail" field from an error body.
// Anything else (no body, not JSON, non-string detail) leaves Detail empty.
func newServerError(status int, body []byte) *ServerError {
	var payload struct {
		Detail any `json:"detail"`
	}
	serverErr := &ServerError{Status: status}
	if err := json.Unmarshal(body, &payload); err == nil {
		if detail, ok := payload.Detail.(string); ok {
			serverErr.Detail = detail
		}
	}
	return serverErr
}

// CategorizeError turns a transport error string into an actionable message
func CategorizeError(errStr string) string {
	if errStr == "" {
		return ""
	}

	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "context canceled") {
		return "Request cancelled"
	}

	if strings.Contains(errLower, "deadline exceeded") ||
		strings.Contains(errLower, "client.timeout") {
		return "Request timeout - the analysis service took too long, try increasing the timeout in your profile"
	}

	if strings.Contains(errLower, "proxy") {
		return "Proxy connection failed - verify proxy settings"
	}

	if strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "dial tcp: lookup") {
		return "DNS resolution failed - verify the service hostname and network"
	}

	if strings.Contains(errLower, "connection refused") {
		return "Connection refused - check that the analysis service is running and the base URL is correct"
	}

	if strings.Contains(errLower, "connection reset") {
		return "Connection reset by server - the service may have crashed"
	}

	if strings.Contains(errLower, "network is unreachable") ||
		strings.Contains(errLower, "no route to host") {
		return "Network unreachable - check network connection and firewall settings"
	}

	if strings.Contains(errLower, "x509") ||
		strings.Contains(errLower, "certificate") ||
		strings.Contains(errLower, "tls") {
		return "TLS error - verify the certificate settings in your profile: " + errStr
	}

	if strings.Contains(errLower, "unsupported protocol") ||
		strings.Contains(errLower, "invalid url") ||
		strings.Contains(errLower, "missing protocol scheme") {
		return "Invalid base URL - use http:// or https://"
	}

	if strings.Contains(errLower, "eof") {
		return "Connection closed unexpectedly - the service terminated the connection"
	}

	if strings.Contains(errLower, "timeout") {
		return "Connection timeout - the service took too long to respond"
	}

	return "Request failed: " + errStr
}
