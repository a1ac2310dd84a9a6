package mock

import (
	"context"

	"github.com/fwojciec/javadex"
)

var (
	_ javadex.IndexService  = (*IndexService)(nil)
	_ javadex.MemberService = (*MemberService)(nil)
	_ javadex.SearchService = (*SearchService)(nil)
)

// IndexService is a mock implementation of javadex.IndexService.
type IndexService struct {
	CreateIndexFn     func(ctx context.Context, idx *javadex.Index, members []*javadex.Member) error
	ReplaceIndexFn    func(ctx context.Context, id string, idx *javadex.Index, members []*javadex.Member) error
	FindIndexByIDFn   func(ctx context.Context, id string) (*javadex.Index, error)
	FindIndexByNameFn func(ctx context.Context, name string) (*javadex.Index, error)
	FindIndexesFn     func(ctx context.Context, filter javadex.IndexFilter) ([]*javadex.Index, error)
	DeleteIndexFn     func(ctx context.Context, id string) error
}

func (s *IndexService) CreateIndex(ctx context.Context, idx *javadex.Index, members []*javadex.Member) error {
	return s.CreateIndexFn(ctx, idx, members)
}

func (s *IndexService) ReplaceIndex(ctx context.Context, id string, idx *javadex.Index, members []*javadex.Member) error {
	return s.ReplaceIndexFn(ctx, id, idx, members)
}

func (s *IndexService) FindIndexByID(ctx context.Context, id string) (*javadex.Index, error) {
	return s.FindIndexByIDFn(ctx, id)
}

func (s *IndexService) FindIndexByName(ctx context.Context, name string) (*javadex.Index, error) {
	return s.FindIndexByNameFn(ctx, name)
}

func (s *IndexService) FindIndexes(ctx context.Context, filter javadex.IndexFilter) ([]*javadex.Index, error) {
	return s.FindIndexesFn(ctx, filter)
}

func (s *IndexService) DeleteIndex(ctx context.Context, id string) error {
	return s.DeleteIndexFn(ctx, id)
}

// MemberService is a mock implementation of javadex.MemberService.
type MemberService struct {
	FindMembersFn func(ctx context.Context, filter javadex.MemberFilter) ([]*javadex.Member, error)
}

func (s *MemberService) FindMembers(ctx context.Context, filter javadex.MemberFilter) ([]*javadex.Member, error) {
	return s.FindMembersFn(ctx, filter)
}

// SearchService is a mock implementation of javadex.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts javadex.SearchOptions) ([]javadex.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts javadex.SearchOptions) ([]javadex.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}
