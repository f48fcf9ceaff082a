package types

// AnalysisRecord is one sentence paired with its bias and sentiment classification.
// Records are always canonical once they leave the normalizer: no field is empty
// because the server omitted it.
type AnalysisRecord struct {
	Sentence  string `json:"sentence" yaml:"sentence"`
	Bias      string `json:"bias" yaml:"bias"`
	Sentiment string `json:"sentiment" yaml:"sentiment"`
}

// Canonical defaults substituted for missing record fields
const (
	DefaultSentence  = "N/A"
	DefaultBias      = "Unknown"
	DefaultSentiment = "unknown"
)

// FilterCriteria narrows the result store without mutating it.
// Bias is matched exactly, Sentiment case-insensitively. Empty means "any".
type FilterCriteria struct {
	Bias      string `json:"bias,omitempty" yaml:"bias,omitempty"`
	Sentiment string `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
}

// IsEmpty reports whether no criterion is set
func (c FilterCriteria) IsEmpty() bool {
	return c.Bias == "" && c.Sentiment == ""
}

// AnalyzeRequest is the JSON body posted to /analyze.
// Exactly one field is set; the server dispatches on payload shape.
type AnalyzeRequest struct {
	Sentences   []string `json:"sentences,omitempty"`
	URL         string   `json:"url,omitempty"`
	VideoURL    string   `json:"video_url,omitempty"`
	AudioBase64 string   `json:"audio_base64,omitempty"`
}

// Profile holds per-environment client settings
type Profile struct {
	Name             string            `json:"name"`
	BaseURL          string            `json:"baseUrl,omitempty"`
	Headers          map[string]string `json:"headers,omitempty"`
	TimeoutSeconds   int               `json:"timeout,omitempty"`
	TLS              *TLSConfig        `json:"tls,omitempty"`
	Output           string            `json:"output,omitempty"`           // text, json, yaml, csv
	ExportDir        string            `json:"exportDir,omitempty"`        // where analysis.csv is written
	AnalyticsEnabled *bool             `json:"analyticsEnabled,omitempty"` // nil = disabled
}

// IsAnalyticsEnabled reports whether submissions should be logged
func (p *Profile) IsAnalyticsEnabled() bool {
	return p != nil && p.AnalyticsEnabled != nil && *p.AnalyticsEnabled
}

// TLSConfig contains TLS/mTLS settings for the analysis endpoint
type TLSConfig struct {
	CertFile           string `json:"certFile,omitempty"`
	KeyFile            string `json:"keyFile,omitempty"`
	CAFile             string `json:"caFile,omitempty"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify,omitempty"`
}

// Session represents state persisted between runs
type Session struct {
	ActiveProfile string `json:"activeProfile,omitempty"`
}

// Download is a file produced for the user to save
type Download struct {
	Filename string
	MIMEType string
	Data     []byte
}
