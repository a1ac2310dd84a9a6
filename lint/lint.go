// Package lint checks member-search indexes for structural problems.
package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/javadex"
	"github.com/fwojciec/javadex/bloom"
)

// Severity of a Problem.
type Severity string

// Severity constants.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule names reported in Problem.Rule.
const (
	RuleEmptyField        = "empty-field"
	RuleLabelSyntax       = "label-syntax"
	RuleAnchorEncoding    = "anchor-encoding"
	RuleAnchorArity       = "anchor-arity"
	RuleConstructorAnchor = "constructor-anchor"
	RuleConflictingAnchor = "conflicting-anchor"
	RuleDuplicate         = "duplicate"
)

// falsePositiveRate of the duplicate screening filter.
const falsePositiveRate = 0.001

// Problem is a single finding. Position is the zero-based record index.
type Problem struct {
	Position int             `json:"position"`
	Member   *javadex.Member `json:"member"`
	Rule     string          `json:"rule"`
	Severity Severity        `json:"severity"`
	Message  string          `json:"message"`
}

// String formats the problem as "#12 error label-syntax: message".
func (p Problem) String() string {
	return fmt.Sprintf("#%d %s %s: %s", p.Position, p.Severity, p.Rule, p.Message)
}

// Lint checks every member and the collection as a whole.
// Problems are ordered by position, then rule.
func Lint(members []*javadex.Member) []Problem {
	var problems []Problem
	for i, m := range members {
		problems = append(problems, lintMember(i, m)...)
	}
	problems = append(problems, lintDuplicates(members)...)

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Position < problems[j].Position
	})
	return problems
}

// HasErrors reports whether any problem has error severity.
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}

func lintMember(pos int, m *javadex.Member) []Problem {
	var problems []Problem
	report := func(rule string, sev Severity, format string, args ...any) {
		problems = append(problems, Problem{
			Position: pos,
			Member:   m,
			Rule:     rule,
			Severity: sev,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	var empty []string
	if m.Package == "" {
		empty = append(empty, "package")
	}
	if m.Class == "" {
		empty = append(empty, "class")
	}
	if m.Label == "" {
		empty = append(empty, "label")
	}
	if len(empty) > 0 {
		report(RuleEmptyField, SeverityError, "empty %s", strings.Join(empty, ", "))
	}
	if m.Label == "" {
		return problems
	}

	sig, err := javadex.ParseLabel(m.Label)
	if err != nil {
		report(RuleLabelSyntax, SeverityError, "%s", javadex.ErrorMessage(err))
	}

	if m.URL == "" {
		return problems
	}
	anchor, err := m.Anchor()
	if err != nil {
		report(RuleAnchorEncoding, SeverityError, "%s", javadex.ErrorMessage(err))
		return problems
	}

	// Signature checks need a parsed label.
	if sig.Kind != javadex.KindMethod {
		return problems
	}
	name, params, hasParams := javadex.SplitAnchor(anchor)
	if !hasParams {
		report(RuleAnchorArity, SeverityWarning, "method label %q has anchor %q without parameters", m.Label, anchor)
		return problems
	}
	if len(params) != len(sig.Params) {
		report(RuleAnchorArity, SeverityWarning, "label %q has %d parameters, anchor %q has %d",
			m.Label, len(sig.Params), anchor, len(params))
	}
	if sig.IsConstructor(m.Class) && name != "<init>" && name != sig.Name {
		report(RuleConstructorAnchor, SeverityWarning, "constructor %q anchors at %q", m.Label, anchor)
	}
	return problems
}

// lintDuplicates finds repeated (package, class, label) keys. A Bloom filter
// screens all keys first; only keys it has seen twice are tracked exactly.
func lintDuplicates(members []*javadex.Member) []Problem {
	filter := bloom.NewFilter(uint(len(members)), falsePositiveRate)
	candidates := make(map[javadex.MemberKey]bool)
	for _, m := range members {
		key := m.Key()
		if filter.TestAndAdd(key.String()) {
			candidates[key] = true
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	var problems []Problem
	first := make(map[javadex.MemberKey]int)
	for i, m := range members {
		key := m.Key()
		if !candidates[key] {
			continue
		}
		prev, seen := first[key]
		if !seen {
			first[key] = i
			continue
		}
		orig := members[prev]
		if orig.URL == m.URL {
			problems = append(problems, Problem{
				Position: i,
				Member:   m,
				Rule:     RuleDuplicate,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s duplicates record #%d", key, prev),
			})
			continue
		}
		problems = append(problems, Problem{
			Position: i,
			Member:   m,
			Rule:     RuleConflictingAnchor,
			Severity: SeverityError,
			Message:  fmt.Sprintf("%s anchors at %q but record #%d anchors at %q", key, m.URL, prev, orig.URL),
		})
	}
	return problems
}
