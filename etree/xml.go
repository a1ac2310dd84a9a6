// Package etree provides an XML form of member-search indexes using
// github.com/beevik/etree.
package etree

import (
	"io"

	"github.com/beevik/etree"
	"github.com/fwojciec/javadex"
)

// Element and attribute names of the XML form.
const (
	RootElement   = "memberSearchIndex"
	MemberElement = "member"
)

// Encode writes members as an indented XML document.
func Encode(w io.Writer, members []*javadex.Member) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement(RootElement)
	for _, m := range members {
		el := root.CreateElement(MemberElement)
		if m.Module != "" {
			el.CreateAttr("module", m.Module)
		}
		el.CreateAttr("package", m.Package)
		el.CreateAttr("class", m.Class)
		el.CreateAttr("label", m.Label)
		if m.URL != "" {
			el.CreateAttr("url", m.URL)
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

// Decode parses the XML form written by Encode.
func Decode(r io.Reader) ([]*javadex.Member, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, javadex.Errorf(javadex.EINVALID, "member XML: %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != RootElement {
		return nil, javadex.Errorf(javadex.EINVALID, "member XML: root element must be <%s>", RootElement)
	}

	elements := root.SelectElements(MemberElement)
	members := make([]*javadex.Member, 0, len(elements))
	for i, el := range elements {
		m := &javadex.Member{
			Module:  el.SelectAttrValue("module", ""),
			Package: el.SelectAttrValue("package", ""),
			Class:   el.SelectAttrValue("class", ""),
			Label:   el.SelectAttrValue("label", ""),
			URL:     el.SelectAttrValue("url", ""),
		}
		if m.Package == "" || m.Class == "" || m.Label == "" {
			return nil, javadex.Errorf(javadex.EINVALID, "member XML: member %d requires package, class and label", i+1)
		}
		members = append(members, m)
	}
	return members, nil
}
