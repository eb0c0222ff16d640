package provider

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/veridex/internal/model"
)

const (
	answerScore        = 85 // Fixed score for the synthetic aggregated answer
	citationScoreStart = 80 // First citation score, decreasing by 5 per index
	citationScoreFloor = 50
)

var urlPattern = regexp.MustCompile(`https?://[^\s\)\]>"']+`)

// AnswerEngine is the AI answer engine provider. It asks a chat model to
// answer the query with cited source URLs and maps the answer plus its
// citations into result items.
type AnswerEngine struct {
	client *openai.Client
	config model.AnswerEngineConfig
}

// NewAnswerEngine creates a new answer engine provider
func NewAnswerEngine(config model.AnswerEngineConfig) (*AnswerEngine, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("answer engine API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &AnswerEngine{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *AnswerEngine) Name() string {
	return "answer_engine"
}

// SourceType returns the source category for this provider
func (p *AnswerEngine) SourceType() model.SourceType {
	return model.SourceAnswerEngine
}

// IsAvailable checks if the provider is properly configured
func (p *AnswerEngine) IsAvailable(ctx context.Context) bool {
	return p.config.Enabled && p.config.APIKey != ""
}

// Search asks the model to answer the query and returns the aggregated
// answer plus one result per cited URL
func (p *AnswerEngine) Search(ctx context.Context, query, language string) ([]model.ResultItem, error) {
	timeout := p.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatModel := p.config.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a research assistant. Answer factual queries concisely and list the URLs of your sources under a 'Sources:' heading, one per line. Answer in the language of the ISO code given by the user.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Language: %s\nQuery: %s", language, query),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("answer engine request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("answer engine returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	return resultsFromAnswer(query, content, extractCitations(content)), nil
}

// resultsFromAnswer maps an aggregated answer and its citation URLs into
// result items: the answer itself at a fixed high score, then one item per
// citation with a score decreasing by 5 per index, floored at 50.
func resultsFromAnswer(query, content string, citations []string) []model.ResultItem {
	results := []model.ResultItem{
		{
			SourceType:     model.SourceAnswerEngine,
			Title:          answerTitle(query),
			Excerpt:        content,
			RelevanceScore: answerScore,
		},
	}

	for i, url := range citations {
		score := citationScoreStart - 5*i
		if score < citationScoreFloor {
			score = citationScoreFloor
		}
		results = append(results, model.ResultItem{
			SourceType:     model.SourceAnswerEngine,
			Title:          fmt.Sprintf("Source cited for: %s", answerTitle(query)),
			URL:            url,
			RelevanceScore: score,
		})
	}

	return results
}

// answerTitle derives a result title from the query text
func answerTitle(query string) string {
	query = strings.TrimSpace(query)
	if len(query) > 80 {
		query = query[:77] + "..."
	}
	return query
}

// extractCitations pulls unique URLs out of the answer text
func extractCitations(text string) []string {
	matches := urlPattern.FindAllString(text, -1)

	seen := make(map[string]bool)
	var unique []string
	for _, url := range matches {
		url = strings.TrimRight(url, ".,;:!?")
		if !seen[url] {
			seen[url] = true
			unique = append(unique, url)
		}
	}

	return unique
}
