package sqlite

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/javadex"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite requires a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// HashMembers computes an order-sensitive xxHash of member content and
// returns it as a hex string.
func HashMembers(members []*javadex.Member) string {
	d := xxhash.New()
	for _, m := range members {
		for _, field := range []string{m.Module, m.Package, m.Class, m.Label, m.URL} {
			_, _ = d.WriteString(field)
			_, _ = d.Write([]byte{0})
		}
		_, _ = d.Write([]byte{'\n'})
	}
	return hex.EncodeToString(d.Sum(nil))
}
