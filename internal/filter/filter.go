package filter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/biaslens/internal/types"
)

// Recompute returns the records matching the criteria, in their original order.
// Bias is compared exactly; the record's sentiment is lower-cased before being
// compared with the criterion. The input slice is never modified.
func Recompute(records []types.AnalysisRecord, criteria types.FilterCriteria) []types.AnalysisRecord {
	filtered := make([]types.AnalysisRecord, 0, len(records))
	for _, r := range records {
		if criteria.Bias != "" && r.Bias != criteria.Bias {
			continue
		}
		if criteria.Sentiment != "" && strings.ToLower(r.Sentiment) != criteria.Sentiment {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// BiasLabels extracts the distinct bias labels in first-seen order
func BiasLabels(records []types.AnalysisRecord) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, r := range records {
		if !seen[r.Bias] {
			seen[r.Bias] = true
			labels = append(labels, r.Bias)
		}
	}
	return labels
}

// SentimentLabels extracts the distinct lower-cased sentiments in first-seen order
func SentimentLabels(records []types.AnalysisRecord) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, r := range records {
		s := strings.ToLower(r.Sentiment)
		if !seen[s] {
			seen[s] = true
			labels = append(labels, s)
		}
	}
	return labels
}

// Search keeps the records whose sentence fuzzy-matches the pattern.
// Matches are returned in original order, not by score.
func Search(records []types.AnalysisRecord, pattern string) []types.AnalysisRecord {
	if strings.TrimSpace(pattern) == "" {
		return records
	}

	sentences := make([]string, len(records))
	for i, r := range records {
		sentences[i] = r.Sentence
	}

	matches := fuzzy.Find(pattern, sentences)
	indexes := make([]int, 0, len(matches))
	for _, match := range matches {
		indexes = append(indexes, match.Index)
	}
	sort.Ints(indexes)

	result := make([]types.AnalysisRecord, 0, len(indexes))
	for _, idx := range indexes {
		result = append(result, records[idx])
	}
	return result
}

// Apply runs a JMESPath expression against a raw JSON response body
// (e.g. analysis[?bias=='left'].sentence)
func Apply(body string, query string) (string, error) {
	if query == "" {
		return body, nil
	}

	var data interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(query)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", query, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}

	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(output), nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}
