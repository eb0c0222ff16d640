package provider

import (
	"context"

	"go.uber.org/zap"

	"github.com/ppiankov/veridex/internal/model"
)

// Build constructs the enabled providers from configuration, in deterministic
// merge order: answer engine first, then news index. A provider with missing
// credentials is skipped silently - that is configuration, not an error.
func Build(cfg model.ProvidersConfig, logger *zap.Logger) []Provider {
	var providers []Provider

	if cfg.AnswerEngine.Enabled && cfg.AnswerEngine.APIKey != "" {
		p, err := NewAnswerEngine(cfg.AnswerEngine)
		if err != nil {
			logger.Warn("answer engine disabled", zap.Error(err))
		} else {
			providers = append(providers, limit(p, cfg))
		}
	} else {
		logger.Debug("answer engine not configured, skipping")
	}

	if cfg.NewsIndex.Enabled && cfg.NewsIndex.APIKey != "" {
		p, err := NewNewsIndex(cfg.NewsIndex)
		if err != nil {
			logger.Warn("news index disabled", zap.Error(err))
		} else {
			providers = append(providers, limit(p, cfg))
		}
	} else {
		logger.Debug("news index not configured, skipping")
	}

	return providers
}

func limit(p Provider, cfg model.ProvidersConfig) Provider {
	if cfg.RequestsPerSecond <= 0 {
		return p
	}
	return NewLimited(p, cfg.RequestsPerSecond, cfg.Burst)
}

// Available filters providers down to those reporting availability
func Available(ctx context.Context, providers []Provider) []Provider {
	var out []Provider
	for _, p := range providers {
		if p.IsAvailable(ctx) {
			out = append(out, p)
		}
	}
	return out
}
