// Package goquery reads anchors and member documentation out of rendered
// javadoc class pages using github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/javadex"
)

// Ensure AnchorExtractor implements javadex.AnchorExtractor at compile time.
var _ javadex.AnchorExtractor = (*AnchorExtractor)(nil)

// blockSelector matches the containers javadoc puts member details in.
// JDK 16+ uses <section class="detail" id=...>; earlier releases place an
// empty <a id=...> before a <ul class="blockList">.
const blockSelector = "section, div, ul, li"

// AnchorExtractor parses javadoc class pages.
type AnchorExtractor struct{}

// NewAnchorExtractor creates a new AnchorExtractor.
func NewAnchorExtractor() *AnchorExtractor {
	return &AnchorExtractor{}
}

// Anchors returns every id and name attribute value on the page.
func (e *AnchorExtractor) Anchors(html string) (map[string]bool, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	anchors := make(map[string]bool)
	doc.Find("[id], a[name]").Each(func(_ int, sel *goquery.Selection) {
		if id, ok := sel.Attr("id"); ok && id != "" {
			anchors[id] = true
		}
		if name, ok := sel.Attr("name"); ok && name != "" && goquery.NodeName(sel) == "a" {
			anchors[name] = true
		}
	})
	return anchors, nil
}

// Section returns the outer HTML documenting the member at anchor.
func (e *AnchorExtractor) Section(html, anchor string) (string, error) {
	doc, err := parse(html)
	if err != nil {
		return "", err
	}

	target := findAnchor(doc, anchor)
	if target == nil {
		return "", javadex.Errorf(javadex.ENOTFOUND, "anchor %q not found on page", anchor)
	}

	block := target
	if goquery.NodeName(target) == "a" {
		block = target.NextAllFiltered(blockSelector).First()
		if block.Length() == 0 {
			return "", javadex.Errorf(javadex.ENOTFOUND, "anchor %q has no documentation block", anchor)
		}
	} else if !target.Is(blockSelector) {
		return "", javadex.Errorf(javadex.ENOTFOUND, "anchor %q is on a <%s>, not a documentation block", anchor, goquery.NodeName(target))
	}

	out, err := goquery.OuterHtml(block)
	if err != nil {
		return "", err
	}
	return out, nil
}

// findAnchor matches attributes directly; anchors such as "<init>()" and
// "f(java.lang.String[])" cannot be written as CSS selectors.
func findAnchor(doc *goquery.Document, anchor string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("[id], a[name]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		id, _ := sel.Attr("id")
		name, _ := sel.Attr("name")
		if id == anchor || (name == anchor && goquery.NodeName(sel) == "a") {
			found = sel
			return false
		}
		return true
	})
	return found
}

func parse(html string) (*goquery.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, javadex.Errorf(javadex.EINVALID, "empty HTML input")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, javadex.Errorf(javadex.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}
