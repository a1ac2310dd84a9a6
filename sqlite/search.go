package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/javadex"
)

// Compile-time interface verification.
var _ javadex.SearchService = (*SearchService)(nil)

// SearchService implements javadex.SearchService by loading candidate
// members from SQLite and ranking them in memory.
type SearchService struct {
	members *MemberService
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB) *SearchService {
	return &SearchService{members: NewMemberService(db)}
}

// Search ranks the members of opts.IndexID against query.
func (s *SearchService) Search(ctx context.Context, query string, opts javadex.SearchOptions) ([]javadex.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, javadex.Errorf(javadex.EINVALID, "search query required")
	}
	if opts.IndexID == "" {
		return nil, javadex.Errorf(javadex.EINVALID, "search index required")
	}

	filter := javadex.MemberFilter{IndexID: &opts.IndexID}
	if opts.Package != "" {
		filter.Package = &opts.Package
	}
	if opts.Class != "" {
		filter.Class = &opts.Class
	}

	candidates, err := s.members.FindMembers(ctx, filter)
	if err != nil {
		return nil, err
	}

	return javadex.Rank(candidates, query, opts.Limit), nil
}
