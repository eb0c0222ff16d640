package provider

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/ppiankov/veridex/internal/model"
)

// Limited wraps a provider with a rate limiter so batch verification cannot
// exceed the provider's request budget
type Limited struct {
	Provider
	limiter *rate.Limiter
}

// NewLimited wraps a provider with the given rate limit
func NewLimited(p Provider, requestsPerSecond float64, burst int) *Limited {
	if burst <= 0 {
		burst = 1
	}

	return &Limited{
		Provider: p,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Search waits for rate limit clearance, then delegates to the wrapped
// provider
func (l *Limited) Search(ctx context.Context, query, language string) ([]model.ResultItem, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.Provider.Search(ctx, query, language)
}
