package model

import "time"

// ResearchQuery records one (query, language) lookup attempt.
// Rows are append-only: created once per search invocation, never mutated.
type ResearchQuery struct {
	ID           int64     `json:"id"`
	QueryText    string    `json:"query_text"`
	LanguageCode string    `json:"language_code"`
	CacheKey     string    `json:"cache_key"`
	CacheHit     bool      `json:"cache_hit"`
	ResultsCount int       `json:"results_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResearchCache is a keyed snapshot of the last aggregated result set for a
// (query, language) pair. At most one live row exists per cache key; expiry
// is enforced by the lookup predicate, not by background eviction.
type ResearchCache struct {
	CacheKey     string       `json:"cache_key"`
	QueryText    string       `json:"query_text"`
	LanguageCode string       `json:"language_code"`
	Results      []ResultItem `json:"results"`
	HitCount     int          `json:"hit_count"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

// Expired reports whether the snapshot is past its TTL at the given time
func (c *ResearchCache) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
