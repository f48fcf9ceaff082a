// Package normalize maps loosely shaped server records into canonical
// AnalysisRecords. It is the only place record fields are validated.
package normalize

import (
	"encoding/json"

	"github.com/studiowebux/biaslens/internal/types"
)

// Records canonicalizes raw server records. It never fails: anything that is
// not an object becomes a fully defaulted record, and any field that is
// missing, null or not a string gets its default.
func Records(raw []any) []types.AnalysisRecord {
	records := make([]types.AnalysisRecord, 0, len(raw))
	for _, item := range raw {
		records = append(records, Record(item))
	}
	return records
}

// Record canonicalizes a single raw record
func Record(item any) types.AnalysisRecord {
	obj, _ := item.(map[string]any)

	bias, ok := stringField(obj, "bias")
	if !ok {
		// Older backends label the field bias_label
		bias, ok = stringField(obj, "bias_label")
	}
	if !ok {
		bias = types.DefaultBias
	}

	return types.AnalysisRecord{
		Sentence:  stringOr(obj, "sentence", types.DefaultSentence),
		Bias:      bias,
		Sentiment: stringOr(obj, "sentiment", types.DefaultSentiment),
	}
}

// Decode parses a successful response body and returns its canonical records.
// malformed is true when the body is not a JSON object; the records are then
// empty. A missing or non-array "analysis" field yields an empty result.
func Decode(body []byte) (records []types.AnalysisRecord, malformed bool) {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil || envelope == nil {
		return []types.AnalysisRecord{}, true
	}

	raw, _ := envelope["analysis"].([]any)
	return Records(raw), false
}

func stringField(obj map[string]any, key string) (string, bool) {
	if obj == nil {
		return "", false
	}
	s, ok := obj[key].(string)
	return s, ok
}

func stringOr(obj map[string]any, key, fallback string) string {
	if s, ok := stringField(obj, key); ok {
		return s
	}
	return fallback
}
