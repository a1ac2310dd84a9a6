package main

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/fwojciec/javadex"
	"github.com/fwojciec/javadex/etree"
	jhttp "github.com/fwojciec/javadex/http"
	"github.com/fwojciec/javadex/javadoc"
)

// detectFormat resolves "auto" from the source name's extension.
// Anything that is not .json or .xml is read as a javadoc script.
func detectFormat(name, format string) string {
	if format != "" && format != "auto" {
		return format
	}
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return "json"
	case ".xml":
		return "xml"
	}
	return "js"
}

// decodeIndex parses data in the given format.
func decodeIndex(data []byte, format string) (*javadoc.File, error) {
	r := bytes.NewReader(data)
	switch format {
	case "js":
		return javadoc.Decode(r)
	case "json":
		members, err := javadoc.DecodeJSON(r)
		if err != nil {
			return nil, err
		}
		return &javadoc.File{Members: members}, nil
	case "xml":
		members, err := etree.Decode(r)
		if err != nil {
			return nil, err
		}
		return &javadoc.File{Members: members}, nil
	}
	return nil, javadex.Errorf(javadex.EINVALID, "unknown format %q", format)
}

// encodeIndex writes the members of idx in the given format. Scripts keep
// the layout they were imported with.
func encodeIndex(w io.Writer, idx *javadex.Index, members []*javadex.Member, format string) error {
	switch format {
	case "js":
		return javadoc.Encode(w, javadoc.FromLayout(idx.Layout, members))
	case "json":
		return javadoc.EncodeJSON(w, members)
	case "xml":
		return etree.Encode(w, members)
	}
	return javadex.Errorf(javadex.EINVALID, "unknown format %q", format)
}

// findIndex looks up an index by name with a CLI-friendly not-found message.
func findIndex(deps *Dependencies, name string) (*javadex.Index, error) {
	idx, err := deps.Indexes.FindIndexByName(deps.Ctx, name)
	if javadex.ErrorCode(err) == javadex.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: index %q not found. Use 'javadex list' to see available indexes.\n", name)
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return nil, err
	}
	return idx, nil
}

// allMembers loads every member of an index in order.
func allMembers(deps *Dependencies, idx *javadex.Index) ([]*javadex.Member, error) {
	members, err := deps.Members.FindMembers(deps.Ctx, javadex.MemberFilter{IndexID: &idx.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", javadex.ErrorMessage(err))
		return nil, err
	}
	return members, nil
}

// memberURL is the absolute link to m when the index has a base, otherwise
// the relative href.
func memberURL(idx *javadex.Index, m *javadex.Member) string {
	if idx.SourceURL == "" {
		return m.Href()
	}
	if u, err := jhttp.Resolve(idx.SourceURL, m.Href()); err == nil {
		return u
	}
	return m.Href()
}
