package javadex

import (
	"context"
	"net/url"
	"strings"
)

// Member represents one record of a javadoc member-search index.
type Member struct {
	Module  string `json:"m,omitempty"`
	Package string `json:"p"`
	Class   string `json:"c"`
	Label   string `json:"l"`
	URL     string `json:"url,omitempty"` // Percent-encoded anchor; empty when it equals the label
}

// Validate returns an error if the member contains invalid fields.
func (m *Member) Validate() error {
	if m.Package == "" {
		return Errorf(EINVALID, "member package required")
	}
	if m.Class == "" {
		return Errorf(EINVALID, "member class required")
	}
	if m.Label == "" {
		return Errorf(EINVALID, "member label required")
	}
	if _, err := ParseLabel(m.Label); err != nil {
		return err
	}
	return nil
}

// MemberKey identifies a member within an index.
type MemberKey struct {
	Package string
	Class   string
	Label   string
}

// String returns the key in qualified form.
func (k MemberKey) String() string {
	return k.Package + "." + k.Class + "." + k.Label
}

// Key returns the (package, class, label) identity of the member.
func (m *Member) Key() MemberKey {
	return MemberKey{Package: m.Package, Class: m.Class, Label: m.Label}
}

// QualifiedName returns "package.Class.label".
func (m *Member) QualifiedName() string {
	return m.Key().String()
}

// Anchor returns the decoded anchor id of the member on its class page.
// Without an explicit URL the anchor is the label itself.
func (m *Member) Anchor() (string, error) {
	if m.URL == "" {
		return strings.ReplaceAll(m.Label, " ", ""), nil
	}
	anchor, err := url.PathUnescape(m.URL)
	if err != nil {
		return "", Errorf(EINVALID, "member %s: malformed anchor %q", m.QualifiedName(), m.URL)
	}
	return anchor, nil
}

// PagePath returns the class page path relative to the documentation root.
// Example: org.apache.turbine.test + BaseTestCase → org/apache/turbine/test/BaseTestCase.html
func (m *Member) PagePath() string {
	var b strings.Builder
	if m.Module != "" {
		b.WriteString(m.Module)
		b.WriteByte('/')
	}
	b.WriteString(strings.ReplaceAll(m.Package, ".", "/"))
	b.WriteByte('/')
	b.WriteString(m.Class)
	b.WriteString(".html")
	return b.String()
}

// Href returns the link the javadoc search widget builds for the member.
func (m *Member) Href() string {
	fragment := m.URL
	if fragment == "" {
		fragment = m.Label
	}
	return m.PagePath() + "#" + fragment
}

// MemberService represents a service for reading stored members.
type MemberService interface {
	// FindMembers retrieves members matching the filter, in index order.
	FindMembers(ctx context.Context, filter MemberFilter) ([]*Member, error)
}

// MemberFilter represents a filter for FindMembers.
type MemberFilter struct {
	IndexID     *string `json:"indexId"`
	Package     *string `json:"package"`
	Class       *string `json:"class"`
	LabelPrefix *string `json:"labelPrefix"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
