package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/javadex"
)

// Ensure LoggingIndexService implements javadex.IndexService.
var _ javadex.IndexService = (*LoggingIndexService)(nil)

// LoggingIndexService wraps an IndexService and logs writes. Reads pass
// through unlogged.
type LoggingIndexService struct {
	next   javadex.IndexService
	logger *slog.Logger
}

// NewLoggingIndexService creates a new LoggingIndexService.
func NewLoggingIndexService(next javadex.IndexService, logger *slog.Logger) *LoggingIndexService {
	return &LoggingIndexService{next: next, logger: logger}
}

// CreateIndex delegates to the wrapped service and logs the import.
func (s *LoggingIndexService) CreateIndex(ctx context.Context, idx *javadex.Index, members []*javadex.Member) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create index",
			"name", idx.Name,
			"id", idx.ID,
			"members", len(members),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateIndex(ctx, idx, members)
}

// ReplaceIndex delegates to the wrapped service and logs the swap.
func (s *LoggingIndexService) ReplaceIndex(ctx context.Context, id string, idx *javadex.Index, members []*javadex.Member) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("replace index",
			"name", idx.Name,
			"old_id", id,
			"id", idx.ID,
			"members", len(members),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceIndex(ctx, id, idx, members)
}

func (s *LoggingIndexService) FindIndexByID(ctx context.Context, id string) (*javadex.Index, error) {
	return s.next.FindIndexByID(ctx, id)
}

func (s *LoggingIndexService) FindIndexByName(ctx context.Context, name string) (*javadex.Index, error) {
	return s.next.FindIndexByName(ctx, name)
}

func (s *LoggingIndexService) FindIndexes(ctx context.Context, filter javadex.IndexFilter) ([]*javadex.Index, error) {
	return s.next.FindIndexes(ctx, filter)
}

// DeleteIndex delegates to the wrapped service and logs the removal.
func (s *LoggingIndexService) DeleteIndex(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete index",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteIndex(ctx, id)
}
