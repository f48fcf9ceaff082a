/*
Package types defines core data structures used throughout biaslens.

# Overview

The types package provides shared type definitions for:
  - Input modes (url, text, video, audio, other)
  - Analysis requests sent to the service
  - Canonical analysis records and filter criteria
  - Configuration (profiles, TLS)
  - Export downloads

# Modes

Mode is an enum with a stable tab order (Modes). ParseMode accepts the
lower-case names used on the command line and in the TUI tab bar. The
"other" mode exists as a placeholder tab and can never be submitted.

# Requests

AnalyzeRequest is the JSON body posted to /analyze. Only one field is
populated per request; the server dispatches on payload shape:

	{"sentences": ["Hello world.", "This is great!"]}
	{"url": "https://example.com/article"}
	{"video_url": "https://example.com/watch?v=1"}
	{"audio_base64": "UklGRiQAAABXQVZF..."}

# Records

AnalysisRecord is always canonical: the normalizer substitutes
DefaultSentence, DefaultBias and DefaultSentiment for anything the server
left out. Code past the normalization boundary never re-checks fields.

# Configuration

Profile:

	{
	  "name": "local",
	  "baseUrl": "http://localhost:8000",
	  "timeout": 60,
	  "headers": {"X-Client": "biaslens"},
	  "exportDir": "./exports",
	  "analyticsEnabled": true
	}
*/
package types
