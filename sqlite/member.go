package sqlite

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/javadex"
)

// Compile-time interface verification.
var _ javadex.MemberService = (*MemberService)(nil)

// MemberService implements javadex.MemberService using SQLite.
type MemberService struct {
	db *DB
}

// NewMemberService creates a new MemberService.
func NewMemberService(db *DB) *MemberService {
	return &MemberService{db: db}
}

// FindMembers retrieves members matching the filter, ordered by index and position.
func (s *MemberService) FindMembers(ctx context.Context, filter javadex.MemberFilter) ([]*javadex.Member, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT module, package, class, label, url FROM members WHERE 1=1")

	if filter.IndexID != nil {
		query.WriteString(" AND index_id = ?")
		args = append(args, *filter.IndexID)
	}
	if filter.Package != nil {
		query.WriteString(" AND package = ?")
		args = append(args, *filter.Package)
	}
	if filter.Class != nil {
		query.WriteString(" AND class = ?")
		args = append(args, *filter.Class)
	}
	if filter.LabelPrefix != nil {
		// substr counts characters, and the comparison is case-sensitive unlike LIKE.
		query.WriteString(" AND substr(label, 1, ?) = ?")
		args = append(args, utf8.RuneCountInString(*filter.LabelPrefix), *filter.LabelPrefix)
	}

	query.WriteString(" ORDER BY index_id, position")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*javadex.Member{}
	for rows.Next() {
		var m javadex.Member
		if err := rows.Scan(&m.Module, &m.Package, &m.Class, &m.Label, &m.URL); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}

	return members, rows.Err()
}
