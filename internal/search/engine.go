// Package search filters, scores and ranks catalog records for a free-text query.
package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/config"
	"github.com/hyperjump/stodlotsen/internal/metrics"
	"github.com/hyperjump/stodlotsen/internal/models"
	"github.com/hyperjump/stodlotsen/internal/ranking"
)

// DefaultMaxResults is used when the configuration sets no limit.
const DefaultMaxResults = 8

// Engine runs filtered keyword searches over the current catalog snapshot.
type Engine struct {
	source catalog.Source
	config *config.SearchConfig
	logger *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets a logger for search outcomes (debug level).
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates a search engine reading records from source.
func NewEngine(source catalog.Source, cfg *config.SearchConfig, opts ...EngineOption) *Engine {
	if cfg == nil {
		cfg = &config.SearchConfig{}
	}
	e := &Engine{source: source, config: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search runs query against the current snapshot. Finding nothing is an
// empty response, not an error; errors come only from loading the catalog.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	snap, err := e.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return e.SearchSnapshot(snap, query), nil
}

// SearchSnapshot runs query against snap.
func (e *Engine) SearchSnapshot(snap *catalog.Snapshot, query *models.SearchQuery) *models.SearchResponse {
	startTime := time.Now()
	q := *query
	q.ApplyDefaults()

	hits := Rank(snap.Records(), &q, e.config.NationalRegions)
	total := len(hits)
	if limit := e.limit(); len(hits) > limit {
		hits = hits[:limit]
	}
	if !q.Explain {
		for _, h := range hits {
			h.Breakdown = nil
		}
	}

	response := &models.SearchResponse{
		SearchID:  uuid.NewString(),
		Query:     q.Query,
		Language:  catalog.ResolveLanguage(q.Language),
		Total:     total,
		Hits:      hits,
		QueryTime: time.Since(startTime).Milliseconds(),
	}
	if total == 0 && q.Category != "" {
		response.Suggestion, _ = SuggestCategory(snap.Records(), q.Category)
	}

	metrics.ObserveSearch(total)
	e.logger.Debug("search",
		zap.String("search_id", response.SearchID),
		zap.String("query", q.Query),
		zap.String("audience", q.Audience),
		zap.String("category", q.Category),
		zap.String("region", q.Region),
		zap.Int("total", total),
		zap.Int("shown", len(hits)),
	)
	return response
}

func (e *Engine) limit() int {
	if e.config.MaxResults > 0 {
		return e.config.MaxResults
	}
	return DefaultMaxResults
}

// Rank filters records, scores the survivors against q and returns every hit
// with a positive score, best first. Equal scores keep catalog order.
func Rank(records []*models.SupportRecord, q *models.SearchQuery, nationalRegions []string) []*models.Hit {
	filter := NewFilter(q, nationalRegions)
	normalized := ranking.Normalize(q.Query)

	hits := make([]*models.Hit, 0)
	if normalized.IsEmpty() {
		return hits
	}
	for _, r := range records {
		if !filter.Matches(r) {
			continue
		}
		breakdown := ranking.Explain(r, normalized)
		if breakdown.Total <= 0 {
			continue
		}
		hits = append(hits, &models.Hit{Score: breakdown.Total, Record: r, Breakdown: breakdown})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits
}
