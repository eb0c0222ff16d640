package verify

import (
	"strings"
	"unicode"

	"github.com/ppiankov/veridex/internal/model"
)

// Sentiment classifies one evidence item relative to a claim
type Sentiment int

const (
	SentimentNeutral Sentiment = iota
	SentimentSupporting
	SentimentContradicting
)

// Classifier classifies evidence against a claim. The lexical implementation
// below is deliberately heuristic; an entailment model can be swapped in
// behind this interface without touching the fact checker.
type Classifier interface {
	Classify(claim string, item model.ResultItem, language string) Sentiment
}

// contradictionWords lists words whose presence marks a result as
// contradicting regardless of how well its text matches the claim.
// Unmapped language codes fall back to English.
var contradictionWords = map[string][]string{
	"en": {"false", "incorrect", "not", "error", "inaccurate", "wrong", "untrue", "misleading", "debunked"},
	"es": {"falso", "incorrecto", "no", "error", "inexacto", "equivocado"},
	"fr": {"faux", "incorrect", "pas", "erreur", "inexact", "trompeur"},
	"de": {"falsch", "inkorrekt", "nicht", "fehler", "ungenau", "unwahr"},
}

// minTokenLength drops short filler words from claim tokenization
const minTokenLength = 4

// supportThreshold is the match rate above which a result counts as
// supporting
const supportThreshold = 0.5

// LexicalClassifier classifies by token overlap and a contradiction-word
// list
type LexicalClassifier struct{}

// NewLexicalClassifier creates a new lexical classifier
func NewLexicalClassifier() *LexicalClassifier {
	return &LexicalClassifier{}
}

// Classify compares the claim tokens against the result's title and excerpt.
// Contradiction words take priority over the match rate.
func (c *LexicalClassifier) Classify(claim string, item model.ResultItem, language string) Sentiment {
	text := strings.ToLower(item.Title + " " + item.Excerpt)

	if containsAny(text, wordsFor(language)) {
		return SentimentContradicting
	}

	tokens := claimTokens(claim)
	if len(tokens) == 0 {
		return SentimentNeutral
	}

	matched := 0
	for _, token := range tokens {
		if strings.Contains(text, token) {
			matched++
		}
	}

	if float64(matched)/float64(len(tokens)) > supportThreshold {
		return SentimentSupporting
	}

	return SentimentNeutral
}

// claimTokens splits a claim into lower-cased words longer than the filler
// threshold (a length heuristic stands in for a stopword list)
func claimTokens(claim string) []string {
	fields := strings.FieldsFunc(strings.ToLower(claim), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var tokens []string
	for _, f := range fields {
		if len(f) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}

	return tokens
}

func wordsFor(language string) []string {
	if words, ok := contradictionWords[strings.ToLower(language)]; ok {
		return words
	}
	return contradictionWords["en"]
}

// containsAny reports whether any listed word appears as a whole word in
// text. Whole-word matching keeps "not" from firing on "notable".
func containsAny(text string, words []string) bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}

	return false
}
