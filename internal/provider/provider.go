package provider

import (
	"context"

	"github.com/ppiankov/veridex/internal/model"
)

// Provider defines the interface for external search providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// SourceType returns the source category for results from this provider
	SourceType() model.SourceType

	// Search runs a query against the provider and returns scored results
	Search(ctx context.Context, query, language string) ([]model.ResultItem, error)

	// IsAvailable checks if the provider is properly configured
	IsAvailable(ctx context.Context) bool
}

// ClampScore bounds a relevance score to [0, 100]
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
