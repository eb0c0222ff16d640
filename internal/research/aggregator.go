package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/veridex/internal/cache"
	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/provider"
)

// Storage persists query history, result sets, and the research cache
type Storage interface {
	RecordQuery(ctx context.Context, q model.ResearchQuery) (int64, error)
	RecordResults(ctx context.Context, queryID int64, items []model.ResultItem) error
	UpsertCache(ctx context.Context, entry model.ResearchCache) error
	ReadCache(ctx context.Context, key string) (*model.ResearchCache, error)
	TouchCache(ctx context.Context, key string) error
}

// Aggregator turns a free-text query plus language into a deduplicated,
// ranked list of evidence items, with caching to bound external-call volume.
type Aggregator struct {
	providers []provider.Provider
	memory    cache.Cache
	storage   Storage
	logger    *zap.Logger

	cacheEnabled bool
	ttl          time.Duration
	memoryTTL    time.Duration
	maxResults   int
	boost        int
}

// NewAggregator creates an aggregator from explicit collaborators. Providers
// must be supplied in merge order (answer engine first, then news index).
func NewAggregator(cfg *model.Config, providers []provider.Provider, memory cache.Cache, storage Storage, logger *zap.Logger) *Aggregator {
	maxResults := cfg.Research.MaxResults
	if maxResults <= 0 {
		maxResults = 15
	}
	boost := cfg.Research.CorroborationBoost
	if boost <= 0 {
		boost = 10
	}
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	memoryTTL := cfg.Cache.MemoryTTL
	if memoryTTL <= 0 {
		memoryTTL = 10 * time.Minute
	}

	return &Aggregator{
		providers:    providers,
		memory:       memory,
		storage:      storage,
		logger:       logger,
		cacheEnabled: cfg.Cache.Enabled,
		ttl:          ttl,
		memoryTTL:    memoryTTL,
		maxResults:   maxResults,
		boost:        boost,
	}
}

// providerOutcome carries either a provider's results or its error. Only Ok
// outcomes are merged; errors are collected for logging so a single provider
// failure never aborts the whole search.
type providerOutcome struct {
	name  string
	items []model.ResultItem
	err   error
}

// Search aggregates evidence for a query. Sources narrows the providers
// consulted; when empty, every configured provider is used. A provider
// failure degrades to zero results from that provider. Zero enabled
// providers yields an empty result list, not an error.
func (a *Aggregator) Search(ctx context.Context, query, language string, sources ...model.SourceType) ([]model.ResultItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if language == "" {
		language = "en"
	}

	key := cache.Key(query, language)

	if a.cacheEnabled {
		if cached, ok := a.readCache(ctx, key); ok {
			a.logger.Info("research cache hit",
				zap.String("cache_key", key),
				zap.Int("results", len(cached)))
			a.recordQuery(ctx, query, language, key, true, len(cached))
			return cached, nil
		}
	}

	a.logger.Info("research cache miss", zap.String("cache_key", key))

	enabled := a.selectProviders(ctx, sources)
	outcomes := a.fanOut(ctx, enabled, query, language)

	var merged []model.ResultItem
	for _, outcome := range outcomes {
		if outcome.err != nil {
			a.logger.Warn("provider search failed",
				zap.String("provider", outcome.name),
				zap.Error(outcome.err))
			continue
		}
		merged = append(merged, outcome.items...)
	}

	results := Rank(Dedupe(merged, a.boost), a.maxResults)

	a.persist(ctx, query, language, key, results)

	return results, nil
}

// selectProviders filters configured providers by requested source types and
// availability. Disabled providers are skipped silently.
func (a *Aggregator) selectProviders(ctx context.Context, sources []model.SourceType) []provider.Provider {
	wanted := make(map[model.SourceType]bool, len(sources))
	for _, s := range sources {
		wanted[s] = true
	}

	var enabled []provider.Provider
	for _, p := range a.providers {
		if len(sources) > 0 && !wanted[p.SourceType()] {
			continue
		}
		if !p.IsAvailable(ctx) {
			a.logger.Debug("provider unavailable, skipping", zap.String("provider", p.Name()))
			continue
		}
		enabled = append(enabled, p)
	}

	return enabled
}

// fanOut queries providers concurrently. Outcomes are returned in provider
// order so the merge stays deterministic regardless of completion order.
func (a *Aggregator) fanOut(ctx context.Context, providers []provider.Provider, query, language string) []providerOutcome {
	outcomes := make([]providerOutcome, len(providers))

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(idx int, p provider.Provider) {
			defer wg.Done()
			items, err := p.Search(ctx, query, language)
			outcomes[idx] = providerOutcome{name: p.Name(), items: items, err: err}
		}(i, p)
	}
	wg.Wait()

	return outcomes
}

// readCache checks the memory layer first, then the store. The stored hit
// counter is incremented on every hit so it stays authoritative even when
// the memory layer serves the read.
func (a *Aggregator) readCache(ctx context.Context, key string) ([]model.ResultItem, bool) {
	if payload, ok := a.memory.Get(key); ok {
		var results []model.ResultItem
		if err := json.Unmarshal(payload, &results); err == nil {
			if err := a.storage.TouchCache(ctx, key); err != nil {
				a.logger.Warn("cache touch failed", zap.Error(err))
			}
			return results, true
		}
		_ = a.memory.Delete(key)
	}

	entry, err := a.storage.ReadCache(ctx, key)
	if err != nil {
		a.logger.Warn("cache read failed", zap.Error(err))
		return nil, false
	}
	if entry == nil {
		return nil, false
	}

	if payload, err := json.Marshal(entry.Results); err == nil {
		_ = a.memory.Set(key, payload, a.memoryTTL)
	}

	return entry.Results, true
}

// persist writes the query row, its result rows, and the cache snapshot.
// Persistence failures are advisory: they are logged, never propagated.
func (a *Aggregator) persist(ctx context.Context, query, language, key string, results []model.ResultItem) {
	queryID := a.recordQuery(ctx, query, language, key, false, len(results))
	if queryID > 0 {
		if err := a.storage.RecordResults(ctx, queryID, results); err != nil {
			a.logger.Warn("record results failed", zap.Error(err))
		}
	}

	if !a.cacheEnabled {
		return
	}

	entry := model.ResearchCache{
		CacheKey:     key,
		QueryText:    query,
		LanguageCode: language,
		Results:      results,
		ExpiresAt:    time.Now().UTC().Add(a.ttl),
	}
	if err := a.storage.UpsertCache(ctx, entry); err != nil {
		a.logger.Warn("cache write failed", zap.Error(err))
	}

	if payload, err := json.Marshal(results); err == nil {
		_ = a.memory.Set(key, payload, a.memoryTTL)
	}
}

func (a *Aggregator) recordQuery(ctx context.Context, query, language, key string, hit bool, count int) int64 {
	id, err := a.storage.RecordQuery(ctx, model.ResearchQuery{
		QueryText:    query,
		LanguageCode: language,
		CacheKey:     key,
		CacheHit:     hit,
		ResultsCount: count,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		a.logger.Warn("record query failed", zap.Error(err))
		return 0
	}
	return id
}

// Dedupe groups results by normalized URL. The first occurrence wins and its
// relevance score is boosted by the given increment per duplicate, capped at
// 100, rewarding cross-source corroboration. Results without a URL (the
// synthetic aggregated answer) pass through untouched.
func Dedupe(items []model.ResultItem, boost int) []model.ResultItem {
	seen := make(map[string]int)
	out := make([]model.ResultItem, 0, len(items))

	for _, item := range items {
		item.RelevanceScore = provider.ClampScore(item.RelevanceScore)

		if item.URL == "" {
			out = append(out, item)
			continue
		}

		norm := normalizeURL(item.URL)
		if idx, ok := seen[norm]; ok {
			out[idx].RelevanceScore = provider.ClampScore(out[idx].RelevanceScore + boost)
			continue
		}

		seen[norm] = len(out)
		out = append(out, item)
	}

	return out
}

// Rank stable-sorts results descending by relevance score and truncates to
// the given maximum. Ties keep their original relative order.
func Rank(items []model.ResultItem, max int) []model.ResultItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RelevanceScore > items[j].RelevanceScore
	})

	if max > 0 && len(items) > max {
		items = items[:max]
	}

	return items
}

// normalizeURL canonicalizes a URL for duplicate grouping: lower-cased
// scheme and host, no fragment, no trailing slash
func normalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")

	return u.String()
}
