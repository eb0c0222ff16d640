package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ppiankov/veridex/internal/model"
)

// Store persists research queries, their result sets, and the research cache
// in SQLite. Query and result rows are append-only; only the cache row for a
// given key is ever overwritten.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at the given path and runs migrations
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite tolerates exactly one writer
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS research_queries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query_text TEXT NOT NULL,
		language_code TEXT NOT NULL,
		cache_key TEXT NOT NULL,
		cache_hit INTEGER NOT NULL DEFAULT 0,
		results_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_queries_cache_key ON research_queries(cache_key);
	CREATE INDEX IF NOT EXISTS idx_queries_created ON research_queries(created_at DESC);

	CREATE TABLE IF NOT EXISTS research_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query_id INTEGER NOT NULL,
		source_type TEXT NOT NULL,
		title TEXT,
		url TEXT NOT NULL,
		excerpt TEXT,
		published_date DATETIME,
		relevance_score INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (query_id) REFERENCES research_queries(id)
	);

	CREATE INDEX IF NOT EXISTS idx_results_query ON research_results(query_id);

	CREATE TABLE IF NOT EXISTS research_cache (
		cache_key TEXT PRIMARY KEY,
		query_text TEXT NOT NULL,
		language_code TEXT NOT NULL,
		results TEXT NOT NULL,
		hit_count INTEGER NOT NULL DEFAULT 0,
		expires_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cache_expires ON research_cache(expires_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordQuery inserts one research query row and returns its id
func (s *Store) RecordQuery(ctx context.Context, q model.ResearchQuery) (int64, error) {
	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO research_queries (query_text, language_code, cache_key, cache_hit, results_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		q.QueryText, q.LanguageCode, q.CacheKey, q.CacheHit, q.ResultsCount, createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert query: %w", err)
	}

	return res.LastInsertId()
}

// RecordResults inserts the result rows for a query in one transaction
func (s *Store) RecordResults(ctx context.Context, queryID int64, items []model.ResultItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO research_results (query_id, source_type, title, url, excerpt, published_date, relevance_score)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		if item.URL == "" {
			continue // Persisted results must carry a URL
		}
		var published interface{}
		if item.PublishedDate != nil {
			published = item.PublishedDate.UTC()
		}
		if _, err := stmt.ExecContext(ctx, queryID, string(item.SourceType), item.Title, item.URL, item.Excerpt, published, item.RelevanceScore); err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
	}

	return tx.Commit()
}

// UpsertCache writes or overwrites the cache snapshot for a key.
// Concurrent misses on the same key race benignly: last writer wins.
func (s *Store) UpsertCache(ctx context.Context, entry model.ResearchCache) error {
	payload, err := json.Marshal(entry.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO research_cache (cache_key, query_text, language_code, results, hit_count, expires_at)
		VALUES (?, ?, ?, ?, 0, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			query_text = excluded.query_text,
			language_code = excluded.language_code,
			results = excluded.results,
			hit_count = 0,
			expires_at = excluded.expires_at`,
		entry.CacheKey, entry.QueryText, entry.LanguageCode, string(payload), entry.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert cache: %w", err)
	}

	return nil
}

// ReadCache returns the live snapshot for a key and increments its hit
// counter, or nil when no unexpired entry exists. Expiry is enforced here,
// in the lookup predicate - there is no background eviction.
func (s *Store) ReadCache(ctx context.Context, key string) (*model.ResearchCache, error) {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE research_cache SET hit_count = hit_count + 1
		WHERE cache_key = ? AND expires_at > ?`, key, now)
	if err != nil {
		return nil, fmt.Errorf("touch cache: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return nil, err
	}

	var entry model.ResearchCache
	var payload string
	row := s.db.QueryRowContext(ctx, `
		SELECT cache_key, query_text, language_code, results, hit_count, expires_at
		FROM research_cache
		WHERE cache_key = ? AND expires_at > ?`, key, now)
	if err := row.Scan(&entry.CacheKey, &entry.QueryText, &entry.LanguageCode, &payload, &entry.HitCount, &entry.ExpiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &entry.Results); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}

	return &entry, nil
}

// TouchCache increments the hit counter for a key without reading the
// snapshot. Used when the in-process layer serves the read but the stored
// counter must stay authoritative.
func (s *Store) TouchCache(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE research_cache SET hit_count = hit_count + 1
		WHERE cache_key = ? AND expires_at > ?`, key, time.Now().UTC())
	return err
}

// QueryHistory returns the most recent query records, newest first
func (s *Store) QueryHistory(ctx context.Context, limit int) ([]model.ResearchQuery, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query_text, language_code, cache_key, cache_hit, results_count, created_at
		FROM research_queries
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []model.ResearchQuery
	for rows.Next() {
		var q model.ResearchQuery
		if err := rows.Scan(&q.ID, &q.QueryText, &q.LanguageCode, &q.CacheKey, &q.CacheHit, &q.ResultsCount, &q.CreatedAt); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}

	return queries, rows.Err()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
