package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/veridex/internal/model"
)

// Extractor extracts verifiable claims from content. The pattern-based
// implementation below is deliberately heuristic; a statistical model can be
// swapped in behind this interface without touching the fact checker.
type Extractor interface {
	Extract(content string) []model.Claim
}

// DefaultMaxClaims bounds the number of claims returned per extraction call
const DefaultMaxClaims = 10

// Claim mining runs three independent passes over the content, in fixed
// order. Matches are concatenated in pass order before the cap, so
// truncation is deterministic (first-N by appearance, not by importance).
var (
	// A number, optionally scaled (million/billion/%/percent), followed by
	// trailing context
	statisticPattern = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?(?:\s*(?:million|billion|%|percent))?)(\s[^.!?\n]{10,100})`)

	// A 4-digit year or year range preceded by an optional temporal
	// preposition, followed by an event description
	historicalPattern = regexp.MustCompile(`(?:(?:[Ii]n|[Bb]y|[Dd]uring|[Ss]ince|[Ff]rom)\s+)?\b((?:1[0-9]|20)\d{2}(?:\s*[-\x{2013}]\s*(?:1[0-9]|20)\d{2})?)\b([^.!?\n]{15,100})`)

	// A capitalized multi-word proper name, a copular verb, and a role
	// description
	biographicalPattern = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\s+(is|was|becomes|will be)\s+([^.!?\n]{10,80})`)
)

// PatternExtractor mines statistic, historical, and biographical claims
// with regular expressions
type PatternExtractor struct {
	maxClaims int
}

// NewPatternExtractor creates a pattern extractor returning at most
// maxClaims claims per call
func NewPatternExtractor(maxClaims int) *PatternExtractor {
	if maxClaims <= 0 {
		maxClaims = DefaultMaxClaims
	}
	return &PatternExtractor{maxClaims: maxClaims}
}

// Extract mines claims from content. HTML input is tolerated: markup is
// reduced to its visible text before the passes run.
func (e *PatternExtractor) Extract(content string) []model.Claim {
	text := content
	if looksLikeHTML(content) {
		text = VisibleText(content)
	}

	claims := e.extractStatistics(text)
	claims = append(claims, e.extractHistorical(text)...)
	claims = append(claims, e.extractBiographical(text)...)

	if len(claims) > e.maxClaims {
		claims = claims[:e.maxClaims]
	}

	return claims
}

func (e *PatternExtractor) extractStatistics(text string) []model.Claim {
	var claims []model.Claim
	for _, m := range statisticPattern.FindAllStringSubmatch(text, -1) {
		claims = append(claims, model.Claim{
			Type:    model.ClaimTypeStatistic,
			Text:    strings.TrimSpace(m[0]),
			Value:   strings.TrimSpace(m[1]),
			Context: strings.TrimSpace(m[2]),
		})
	}
	return claims
}

func (e *PatternExtractor) extractHistorical(text string) []model.Claim {
	var claims []model.Claim
	for _, m := range historicalPattern.FindAllStringSubmatch(text, -1) {
		claims = append(claims, model.Claim{
			Type:  model.ClaimTypeHistorical,
			Text:  strings.TrimSpace(m[0]),
			Date:  strings.TrimSpace(m[1]),
			Event: strings.TrimSpace(m[2]),
		})
	}
	return claims
}

func (e *PatternExtractor) extractBiographical(text string) []model.Claim {
	var claims []model.Claim
	for _, m := range biographicalPattern.FindAllStringSubmatch(text, -1) {
		claims = append(claims, model.Claim{
			Type:   model.ClaimTypeBiographical,
			Text:   strings.TrimSpace(m[0]),
			Person: strings.TrimSpace(m[1]),
			Role:   strings.TrimSpace(m[3]),
		})
	}
	return claims
}

func looksLikeHTML(content string) bool {
	return strings.Contains(content, "</") || strings.Contains(content, "/>") ||
		strings.Contains(strings.ToLower(content), "<p>") ||
		strings.Contains(strings.ToLower(content), "<html")
}
