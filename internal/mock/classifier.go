package mock

import "strings"

// Phrase lists used by the offline classifiers. Matching is a lowercase
// substring test, negative phrases win over positive ones.
var (
	biasPhrases = []string{
		"less committed", "avoiding responsibilities", "can't possibly contribute",
		"inferior", "lazy", "weak", "worthless", "not serious",
		"clearly better", "everyone knows", "never contributes",
		"historically", "always", "never", "clearly superior",
		"undeserving", "privileged", "biased", "discriminatory",
		"unfair", "favoring", "prejudice", "stereotype",
	}

	negativePhrases = []string{
		"less committed", "avoiding responsibilities", "can't possibly contribute",
		"lazy", "weak", "unreliable", "not serious", "worthless",
		"caused offense", "biased", "halted feature", "problematic",
		"offended", "controversial", "criticism", "failure", "mistake",
		"error", "wrong", "flawed", "negative impact",
	}

	positivePhrases = []string{
		"improved", "success", "helpful", "advancement", "achievement",
		"effective", "robust", "strong", "valuable", "correct",
	}
)

const (
	BiasGeneral = "general bias"
	BiasNeutral = "neutral"

	SentimentNegative = "negative"
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
)

// ClassifyBias labels a sentence "general bias" or "neutral"
func ClassifyBias(sentence string) string {
	if containsAny(normalizeSentence(sentence), biasPhrases) {
		return BiasGeneral
	}
	return BiasNeutral
}

// ClassifySentiment labels a sentence negative, positive or neutral
func ClassifySentiment(sentence string) string {
	t := normalizeSentence(sentence)
	switch {
	case containsAny(t, negativePhrases):
		return SentimentNegative
	case containsAny(t, positivePhrases):
		return SentimentPositive
	}
	return SentimentNeutral
}

func normalizeSentence(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.NewReplacer("“", `"`, "”", `"`, "’", "'").Replace(s)
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(s string, phrases []string) bool {
	if s == "" {
		return false
	}
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
