package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/veridex/internal/model"
)

// newsLanguages maps 2-letter codes to the news index's language vocabulary.
// Unmapped codes fall back to "en".
var newsLanguages = map[string]string{
	"en": "en",
	"es": "es",
	"fr": "fr",
	"de": "de",
	"it": "it",
	"nl": "nl",
	"pt": "pt",
	"ru": "ru",
	"ar": "ar",
	"zh": "zh",
}

// NewsIndex is the news index provider. It issues a keyword search
// restricted to the last three months and scores articles by term frequency.
type NewsIndex struct {
	httpClient *http.Client
	config     model.NewsIndexConfig
}

// NewNewsIndex creates a new news index provider
func NewNewsIndex(config model.NewsIndexConfig) (*NewsIndex, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("news index API key is required")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &NewsIndex{
		httpClient: &http.Client{Timeout: timeout},
		config:     config,
	}, nil
}

// Name returns the provider name
func (p *NewsIndex) Name() string {
	return "news_index"
}

// SourceType returns the source category for this provider
func (p *NewsIndex) SourceType() model.SourceType {
	return model.SourceNewsIndex
}

// IsAvailable checks if the provider is properly configured
func (p *NewsIndex) IsAvailable(ctx context.Context) bool {
	return p.config.Enabled && p.config.APIKey != ""
}

type newsResponse struct {
	Status   string        `json:"status"`
	Articles []newsArticle `json:"articles"`
}

type newsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Search issues a keyword search against the news index
func (p *NewsIndex) Search(ctx context.Context, query, language string) ([]model.ResultItem, error) {
	pageSize := p.config.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	lang, ok := newsLanguages[strings.ToLower(language)]
	if !ok {
		lang = "en"
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", lang)
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("from", time.Now().AddDate(0, -3, 0).Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", p.config.APIKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news index request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("news index status: %d", resp.StatusCode)
	}

	var body newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	terms := queryTerms(query)
	results := make([]model.ResultItem, 0, len(body.Articles))
	for _, article := range body.Articles {
		if article.URL == "" {
			continue
		}

		item := model.ResultItem{
			SourceType:     model.SourceNewsIndex,
			Title:          article.Title,
			URL:            article.URL,
			Excerpt:        article.Description,
			RelevanceScore: scoreArticle(terms, article.Title, article.Description),
		}
		if t, err := time.Parse(time.RFC3339, article.PublishedAt); err == nil {
			item.PublishedDate = &t
		}
		results = append(results, item)
	}

	return results, nil
}

// queryTerms splits a query into lower-cased scoring terms
func queryTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// scoreArticle computes term-frequency relevance: +10 per term occurrence in
// title+description, +20 bonus when the term appears in the title, capped
// at 100.
func scoreArticle(terms []string, title, description string) int {
	lowerTitle := strings.ToLower(title)
	combined := lowerTitle + " " + strings.ToLower(description)

	score := 0
	for _, term := range terms {
		score += 10 * strings.Count(combined, term)
		if strings.Contains(lowerTitle, term) {
			score += 20
		}
	}

	return ClampScore(score)
}
