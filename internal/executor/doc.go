/*
Package executor shapes and sends analysis requests.

# Overview

The executor package is the request dispatcher between the input state and
the analysis service:
  - Sentence splitting for pasted text
  - Per-mode payload shaping (text, url, video, audio)
  - A single POST /analyze round trip
  - Error classification
  - TLS/mTLS configuration

# Payloads

Every mode posts to the same endpoint; the service dispatches on payload
shape rather than on a mode field:

	text   -> {"sentences": [...]}   (SplitSentences)
	url    -> {"url": "..."}
	video  -> {"video_url": "..."}
	audio  -> {"audio_base64": "..."} (file bytes, standard base64)

The "other" mode returns ErrUnsupportedMode.

# Sentence Splitting

Text is broken after '.', '!' or '?' when followed by whitespace. Units are
trimmed and empty units dropped, so

	"Hello world. This is great!"

becomes ["Hello world.", "This is great!"]. Abbreviations such as "e.g. this"
are split too; the service re-splits nothing.

# Error Handling

Errors are categorized as:
  - NetworkError: no response was received (DNS, refused, timeout, TLS).
    Error() returns an actionable message from CategorizeError.
  - ServerError: non-2xx status. Error() is the server's "detail" string
    when present, otherwise "Request failed: <status>".
  - Malformed response: a 2xx body that is not a JSON object. This is not
    an error; Result.Malformed is set and Records is empty.

Callers use errors.As to tell them apart.

# Example Usage

	client, err := executor.NewClient(executor.Options{BaseURL: "http://localhost:8000"})
	if err != nil {
		return err
	}
	req, err := executor.BuildRequest(types.ModeText, "Hello world. This is great!")
	if err != nil {
		return err
	}
	result, err := client.Analyze(ctx, req)
*/
package executor
