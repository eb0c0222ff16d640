package verify

import (
	"regexp"
	"strings"

	"github.com/ppiankov/veridex/internal/model"
)

var numberPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// genericCorrection is returned when the contradicting sources offer no
// differing number to substitute
const genericCorrection = "Contradicting sources do not agree on a specific figure; verify this claim manually."

// SuggestCorrection attempts a best-effort numeric correction for a disputed
// claim: the most frequent number in the contradicting excerpts replaces the
// claim's first number when they differ.
func SuggestCorrection(claim string, contradicting []model.ResultItem) string {
	claimNumbers := numberPattern.FindAllString(claim, -1)
	if len(claimNumbers) == 0 {
		return genericCorrection
	}

	var corpus strings.Builder
	for _, item := range contradicting {
		corpus.WriteString(item.Title)
		corpus.WriteString(" ")
		corpus.WriteString(item.Excerpt)
		corpus.WriteString(" ")
	}

	best := mostFrequentNumber(corpus.String())
	if best == "" || best == claimNumbers[0] {
		return genericCorrection
	}

	return strings.Replace(claim, claimNumbers[0], best, 1)
}

// mostFrequentNumber returns the number appearing most often in text.
// Ties go to the number seen first.
func mostFrequentNumber(text string) string {
	numbers := numberPattern.FindAllString(text, -1)
	if len(numbers) == 0 {
		return ""
	}

	counts := make(map[string]int)
	var order []string
	for _, n := range numbers {
		if counts[n] == 0 {
			order = append(order, n)
		}
		counts[n]++
	}

	best := ""
	for _, n := range order {
		if best == "" || counts[n] > counts[best] {
			best = n
		}
	}

	return best
}
