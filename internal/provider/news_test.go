package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/veridex/internal/model"
)

func newsServer(t *testing.T, handler http.HandlerFunc) (*NewsIndex, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewNewsIndex(model.NewsIndexConfig{
		Enabled:  true,
		APIKey:   "test-key",
		Endpoint: server.URL,
		Timeout:  5 * time.Second,
		PageSize: 20,
	})
	if err != nil {
		t.Fatalf("Expected provider to build, got %v", err)
	}

	return p, server
}

func TestNewsIndex_RequiresAPIKey(t *testing.T) {
	if _, err := NewNewsIndex(model.NewsIndexConfig{Enabled: true}); err == nil {
		t.Error("Expected error without API key")
	}
}

func TestNewsIndex_RequestParameters(t *testing.T) {
	var gotQuery, gotLang, gotSort, gotFrom, gotKey string

	p, _ := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = q.Get("q")
		gotLang = q.Get("language")
		gotSort = q.Get("sortBy")
		gotFrom = q.Get("from")
		gotKey = r.Header.Get("X-Api-Key")
		json.NewEncoder(w).Encode(newsResponse{Status: "ok"})
	})

	if _, err := p.Search(context.Background(), "digital nomad visa", "es"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotQuery != "digital nomad visa" {
		t.Errorf("Expected query passed through, got '%s'", gotQuery)
	}
	if gotLang != "es" {
		t.Errorf("Expected mapped language 'es', got '%s'", gotLang)
	}
	if gotSort != "relevancy" {
		t.Errorf("Expected sortBy=relevancy, got '%s'", gotSort)
	}
	if gotKey != "test-key" {
		t.Errorf("Expected API key header, got '%s'", gotKey)
	}

	from, err := time.Parse("2006-01-02", gotFrom)
	if err != nil {
		t.Fatalf("Expected parsable from date, got '%s'", gotFrom)
	}
	expected := time.Now().AddDate(0, -3, 0)
	if from.Before(expected.AddDate(0, 0, -2)) || from.After(expected.AddDate(0, 0, 2)) {
		t.Errorf("Expected from date three months back, got %s", gotFrom)
	}
}

func TestNewsIndex_UnmappedLanguageFallsBackToEnglish(t *testing.T) {
	var gotLang string

	p, _ := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.URL.Query().Get("language")
		json.NewEncoder(w).Encode(newsResponse{Status: "ok"})
	})

	if _, err := p.Search(context.Background(), "anything", "sw"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotLang != "en" {
		t.Errorf("Expected fallback language 'en', got '%s'", gotLang)
	}
}

func TestNewsIndex_MapsArticles(t *testing.T) {
	p, _ := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(newsResponse{
			Status: "ok",
			Articles: []newsArticle{
				{
					Title:       "Portugal updates visa rules",
					Description: "The visa program changed this spring.",
					URL:         "https://news.example.org/visa",
					PublishedAt: "2026-06-01T10:00:00Z",
				},
				{
					Title: "No URL means no result",
				},
			},
		})
	})

	results, err := p.Search(context.Background(), "visa Portugal", "en")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 result (URL-less article dropped), got %d", len(results))
	}

	r := results[0]
	if r.SourceType != model.SourceNewsIndex {
		t.Errorf("Expected news_index source type, got %s", r.SourceType)
	}
	if r.URL != "https://news.example.org/visa" {
		t.Errorf("Unexpected URL %s", r.URL)
	}
	if r.PublishedDate == nil {
		t.Error("Expected published date to be parsed")
	}
	if r.RelevanceScore <= 0 || r.RelevanceScore > 100 {
		t.Errorf("Expected score in (0,100], got %d", r.RelevanceScore)
	}
}

func TestNewsIndex_ServerErrorSurfaces(t *testing.T) {
	p, _ := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	if _, err := p.Search(context.Background(), "anything", "en"); err == nil {
		t.Error("Expected error on non-2xx response")
	}
}

func TestNewsIndex_MalformedPayloadSurfaces(t *testing.T) {
	p, _ := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "{not json")
	})

	if _, err := p.Search(context.Background(), "anything", "en"); err == nil {
		t.Error("Expected error on malformed payload")
	}
}

func TestScoreArticle_TermFrequency(t *testing.T) {
	// "tax" appears 3 times across title+description (+30) and once in the
	// title (+20)
	score := scoreArticle([]string{"tax"}, "Tax reform passes", "The tax bill raises tax rates.")

	if score != 50 {
		t.Errorf("Expected score 50, got %d", score)
	}
}

func TestScoreArticle_CappedAt100(t *testing.T) {
	desc := ""
	for i := 0; i < 30; i++ {
		desc += "budget "
	}

	score := scoreArticle([]string{"budget"}, "Budget budget budget", desc)

	if score != 100 {
		t.Errorf("Expected score capped at 100, got %d", score)
	}
}

func TestScoreArticle_NoMatches(t *testing.T) {
	if score := scoreArticle([]string{"visa"}, "Sports results", "Final score report."); score != 0 {
		t.Errorf("Expected zero score without matches, got %d", score)
	}
}
