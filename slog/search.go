package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/javadex"
)

// Ensure LoggingSearchService implements javadex.SearchService.
var _ javadex.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with query logging.
type LoggingSearchService struct {
	next   javadex.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next javadex.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the query.
func (s *LoggingSearchService) Search(ctx context.Context, query string, opts javadex.SearchOptions) (results []javadex.SearchResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"query", query,
			"index", opts.IndexID,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		}
		if len(results) > 0 {
			attrs = append(attrs, "tier", results[0].Tier.String())
		}
		s.logger.Info("search", attrs...)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}
