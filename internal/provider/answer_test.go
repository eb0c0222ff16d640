package provider

import (
	"context"
	"strings"
	"testing"

	"github.com/ppiankov/veridex/internal/model"
)

func TestNewAnswerEngine_RequiresAPIKey(t *testing.T) {
	if _, err := NewAnswerEngine(model.AnswerEngineConfig{Enabled: true}); err == nil {
		t.Error("Expected error without API key")
	}
}

func TestAnswerEngine_IsAvailable(t *testing.T) {
	p, err := NewAnswerEngine(model.AnswerEngineConfig{Enabled: true, APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("Expected provider to build, got %v", err)
	}
	if !p.IsAvailable(context.Background()) {
		t.Error("Expected provider with key to be available")
	}

	disabled, err := NewAnswerEngine(model.AnswerEngineConfig{Enabled: false, APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("Expected provider to build, got %v", err)
	}
	if disabled.IsAvailable(context.Background()) {
		t.Error("Expected disabled provider to be unavailable")
	}
}

func TestResultsFromAnswer_SyntheticResultFirst(t *testing.T) {
	results := resultsFromAnswer("how many expatriates worldwide", "About 304 million.", nil)

	if len(results) != 1 {
		t.Fatalf("Expected 1 result without citations, got %d", len(results))
	}
	if results[0].RelevanceScore != 85 {
		t.Errorf("Expected fixed answer score 85, got %d", results[0].RelevanceScore)
	}
	if results[0].Title != "how many expatriates worldwide" {
		t.Errorf("Expected title derived from query, got '%s'", results[0].Title)
	}
	if results[0].Excerpt != "About 304 million." {
		t.Errorf("Expected answer as excerpt, got '%s'", results[0].Excerpt)
	}
	if results[0].URL != "" {
		t.Errorf("Expected synthetic result without URL, got '%s'", results[0].URL)
	}
}

func TestResultsFromAnswer_CitationScoresDecreaseAndFloor(t *testing.T) {
	citations := []string{
		"https://a.example.org",
		"https://b.example.org",
		"https://c.example.org",
		"https://d.example.org",
		"https://e.example.org",
		"https://f.example.org",
		"https://g.example.org",
		"https://h.example.org",
	}

	results := resultsFromAnswer("query", "answer", citations)

	if len(results) != len(citations)+1 {
		t.Fatalf("Expected %d results, got %d", len(citations)+1, len(results))
	}

	wantScores := []int{80, 75, 70, 65, 60, 55, 50, 50}
	for i, want := range wantScores {
		got := results[i+1].RelevanceScore
		if got != want {
			t.Errorf("Citation %d: expected score %d, got %d", i, want, got)
		}
	}
}

func TestAnswerTitle_TruncatesLongQueries(t *testing.T) {
	long := strings.Repeat("visa rules ", 20)

	title := answerTitle(long)

	if len(title) > 80 {
		t.Errorf("Expected title capped at 80 chars, got %d", len(title))
	}
	if !strings.HasSuffix(title, "...") {
		t.Errorf("Expected ellipsis on truncated title, got '%s'", title)
	}
}

func TestExtractCitations_DeduplicatesAndTrims(t *testing.T) {
	text := `Sources:
- https://example.org/report.
- https://example.org/report
- https://other.example.org/data,`

	urls := extractCitations(text)

	if len(urls) != 2 {
		t.Fatalf("Expected 2 unique URLs, got %d: %v", len(urls), urls)
	}
	if urls[0] != "https://example.org/report" {
		t.Errorf("Expected trailing punctuation trimmed, got '%s'", urls[0])
	}
	if urls[1] != "https://other.example.org/data" {
		t.Errorf("Expected trailing comma trimmed, got '%s'", urls[1])
	}
}

func TestClampScore(t *testing.T) {
	cases := []struct{ in, want int }{
		{-5, 0},
		{0, 0},
		{57, 57},
		{100, 100},
		{140, 100},
	}
	for _, tc := range cases {
		if got := ClampScore(tc.in); got != tc.want {
			t.Errorf("ClampScore(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
