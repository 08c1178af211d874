package suggestion

import (
	"strings"
	"unicode/utf8"
)

const (
	minConfidence = 0.6
	maxConfidence = 0.95

	baseScore = 0.5
)

// taskTerms is the vocabulary of a complete task breakdown.
var taskTerms = []string{
	"step",
	"consider",
	"implement",
	"review",
	"test",
	"plan",
	"analyze",
}

// Score estimates how complete and relevant a generated description looks.
// It is a heuristic, not a calibrated probability, and always lands in [0.6, 0.95].
func Score(response, title string) float64 {
	score := baseScore

	length := utf8.RuneCountInString(response)
	if length > 100 {
		score += 0.2
	}
	if length > 200 {
		score += 0.1
	}

	lower := strings.ToLower(response)

	found := 0
	for _, term := range taskTerms {
		if strings.Contains(lower, term) {
			found++
		}
	}
	score += float64(found) / float64(len(taskTerms)) * 0.2

	if words := strings.Fields(strings.ToLower(title)); len(words) > 0 && strings.Contains(lower, words[0]) {
		score += 0.1
	}

	// Clamp last.
	return min(maxConfidence, max(minConfidence, score))
}
