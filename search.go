package javadex

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

// MatchTier orders how well a member matched a query. Lower is better.
type MatchTier int

// MatchTier constants, best first.
const (
	TierExact MatchTier = iota
	TierExactFold
	TierPrefix
	TierCamelCase
	TierSubstring
)

// String returns a short name for the tier.
func (t MatchTier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierExactFold:
		return "exact-fold"
	case TierPrefix:
		return "prefix"
	case TierCamelCase:
		return "camel-case"
	case TierSubstring:
		return "substring"
	}
	return "unknown"
}

// SearchService provides ranked search over stored members.
type SearchService interface {
	// Search returns members of one index ordered by match quality.
	// Returns an empty slice when nothing matches.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Index to search. Required.
	IndexID string `json:"indexId"`

	// Restrict candidates to a package and/or class.
	Package string `json:"package,omitempty"`
	Class   string `json:"class,omitempty"`

	// Maximum number of results to return. Zero means unlimited.
	Limit int `json:"limit,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	Member *Member   `json:"member"`
	Tier   MatchTier `json:"tier"`
}

// Rank matches query against members and returns the matches best first.
// Ties are broken by shorter label, then qualified name, then input order.
func Rank(members []*Member, query string, limit int) []SearchResult {
	query = strings.TrimSpace(query)
	results := []SearchResult{}
	if query == "" {
		return results
	}

	lower := strings.ToLower(query)
	qualified := strings.Contains(query, ".")
	segments := camelSegments(query)

	for _, m := range members {
		tier, ok := matchMember(m, query, lower, qualified, segments)
		if ok {
			results = append(results, SearchResult{Member: m, Tier: tier})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if len(a.Member.Label) != len(b.Member.Label) {
			return len(a.Member.Label) < len(b.Member.Label)
		}
		return a.Member.QualifiedName() < b.Member.QualifiedName()
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func matchMember(m *Member, query, lower string, qualified bool, segments []string) (MatchTier, bool) {
	if qualified {
		short := m.Class + "." + m.Label
		full := m.QualifiedName()
		switch {
		case short == query || full == query ||
			m.Class+"."+memberName(m.Label) == query:
			return TierExact, true
		case strings.EqualFold(short, query) || strings.EqualFold(full, query):
			return TierExactFold, true
		case strings.HasPrefix(strings.ToLower(short), lower) || strings.HasPrefix(strings.ToLower(full), lower):
			return TierPrefix, true
		case qualifiedCamelMatch(m, query):
			return TierCamelCase, true
		case strings.Contains(strings.ToLower(full), lower):
			return TierSubstring, true
		}
		return 0, false
	}

	name := memberName(m.Label)
	switch {
	case name == query || m.Label == query:
		return TierExact, true
	case strings.EqualFold(name, query) || strings.EqualFold(m.Label, query):
		return TierExactFold, true
	case strings.HasPrefix(strings.ToLower(m.Label), lower):
		return TierPrefix, true
	case camelMatch(segments, name):
		return TierCamelCase, true
	case strings.Contains(strings.ToLower(m.Label), lower):
		return TierSubstring, true
	}
	return 0, false
}

// qualifiedCamelMatch matches "Class.gPD" or "pkg.Class.gPD": the part
// before the last dot names the class, the rest is a camel-case query.
func qualifiedCamelMatch(m *Member, query string) bool {
	i := strings.LastIndexByte(query, '.')
	owner, tail := query[:i], query[i+1:]
	if !strings.EqualFold(owner, m.Class) && !strings.EqualFold(owner, m.Package+"."+m.Class) {
		return false
	}
	return camelMatch(camelSegments(tail), memberName(m.Label))
}

// memberName returns the label up to its parameter list.
func memberName(label string) string {
	if i := strings.IndexByte(label, '('); i >= 0 {
		return label[:i]
	}
	return label
}

// camelSegments splits "gPD" into ["g", "P", "D"]. Queries without an inner
// upper-case letter return nil, which disables camel-case matching.
func camelSegments(query string) []string {
	var segments []string
	start := 0
	for i, r := range query {
		if i > 0 && unicode.IsUpper(r) {
			segments = append(segments, query[start:i])
			start = i
		}
	}
	if start == 0 {
		return nil
	}
	return append(segments, query[start:])
}

// camelWords splits "getPipelineData" into ["get", "Pipeline", "Data"].
func camelWords(name string) []string {
	var words []string
	start := 0
	prevUpper := false
	for i, r := range name {
		upper := unicode.IsUpper(r)
		if i > 0 && upper && !prevUpper {
			words = append(words, name[start:i])
			start = i
		}
		prevUpper = upper
	}
	return append(words, name[start:])
}

// camelMatch reports whether each segment is a prefix of consecutive camel
// words of name, starting at any word. Segment heads match exactly, the
// remaining letters ignore case.
func camelMatch(segments []string, name string) bool {
	if len(segments) == 0 {
		return false
	}
	words := camelWords(name)
	for start := 0; start+len(segments) <= len(words); start++ {
		matched := true
		for i, seg := range segments {
			if !segmentPrefix(words[start+i], seg) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func segmentPrefix(word, seg string) bool {
	if seg == "" || len(seg) > len(word) {
		return false
	}
	if unicode.IsUpper(rune(seg[0])) && word[0] != seg[0] {
		return false
	}
	return strings.EqualFold(word[:len(seg)], seg)
}

// Suggest returns up to n distinct member names within edit distance 2 of
// query, closest first.
func Suggest(members []*Member, query string, n int) []string {
	query = strings.TrimSpace(memberName(query))
	if i := strings.LastIndexByte(query, '.'); i >= 0 {
		query = query[i+1:]
	}
	query = strings.ToLower(query)
	if query == "" || n <= 0 {
		return nil
	}

	type candidate struct {
		name string
		dist int
	}
	seen := make(map[string]bool)
	var candidates []candidate
	for _, m := range members {
		name := memberName(m.Label)
		if seen[name] {
			continue
		}
		seen[name] = true
		if d := damerauLevenshtein(query, strings.ToLower(name)); d <= 2 {
			candidates = append(candidates, candidate{name: name, dist: d})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})

	var names []string
	for _, c := range candidates {
		if len(names) == n {
			break
		}
		names = append(names, c.name)
	}
	return names
}

// damerauLevenshtein computes the optimal string alignment distance over runes.
func damerauLevenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	matrix := make([][]int, len(ra)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(rb)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			matrix[i][j] = min(matrix[i-1][j]+1, matrix[i][j-1]+1, matrix[i-1][j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				matrix[i][j] = min(matrix[i][j], matrix[i-2][j-2]+1)
			}
		}
	}
	return matrix[len(ra)][len(rb)]
}
