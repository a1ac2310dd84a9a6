// Package javadoc reads and writes the member-search-index.js files that
// the javadoc tool generates for its browser search widget.
package javadoc

import (
	"bytes"
	"encoding/json"
	"io"
	"regexp"

	"github.com/fwojciec/javadex"
)

// Default values used when encoding a File with empty fields.
const (
	DefaultVar    = "memberSearchIndex"
	DefaultURLKey = "url"

	// UpdateTrailer is appended by javadoc 12 and later.
	UpdateTrailer = ";updateSearchResults();"
)

// File is a decoded member-search index script.
type File struct {
	// Var is the global variable the array is assigned to.
	Var string

	// Declared reports whether the assignment is a "var" declaration.
	Declared bool

	// URLKey is the object key used for anchors: "url" or "u".
	URLKey string

	// Trailer is whatever statement follows the array, such as
	// UpdateTrailer. Empty means the file ends with the array.
	Trailer string

	Members []*javadex.Member
}

var assignRe = regexp.MustCompile(`^\s*(var\s+)?([A-Za-z_$][\w$]*)\s*=\s*`)

// record mirrors the on-disk object. Both anchor keys are decoded.
type record struct {
	P   string `json:"p"`
	M   string `json:"m"`
	C   string `json:"c"`
	L   string `json:"l"`
	URL string `json:"url"`
	U   string `json:"u"`
}

// Decode parses a member-search-index.js script.
func Decode(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	loc := assignRe.FindSubmatchIndex(data)
	if loc == nil {
		return nil, javadex.Errorf(javadex.EINVALID, "index script: missing variable assignment")
	}
	f := &File{Var: string(data[loc[4]:loc[5]]), Declared: loc[2] >= 0}

	dec := json.NewDecoder(bytes.NewReader(data[loc[1]:]))
	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, javadex.Errorf(javadex.EINVALID, "index script: %v", err)
	}

	trailer := bytes.TrimSpace(data[loc[1]+int(dec.InputOffset()):])
	switch string(trailer) {
	case "", ";":
		f.Trailer = string(trailer)
	case UpdateTrailer:
		f.Trailer = UpdateTrailer
	default:
		return nil, javadex.Errorf(javadex.EINVALID, "index script: unexpected trailer %q", truncate(string(trailer), 40))
	}

	f.Members, f.URLKey = fromRecords(records)
	return f, nil
}

// DecodeJSON parses a plain JSON array of member records.
func DecodeJSON(r io.Reader) ([]*javadex.Member, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, javadex.Errorf(javadex.EINVALID, "member JSON: %v", err)
	}
	members, _ := fromRecords(records)
	return members, nil
}

func fromRecords(records []record) ([]*javadex.Member, string) {
	urlKey := ""
	members := make([]*javadex.Member, 0, len(records))
	for _, rec := range records {
		m := &javadex.Member{Module: rec.M, Package: rec.P, Class: rec.C, Label: rec.L, URL: rec.URL}
		if m.URL == "" {
			m.URL = rec.U
		}
		if urlKey == "" {
			switch {
			case rec.URL != "":
				urlKey = "url"
			case rec.U != "":
				urlKey = "u"
			}
		}
		members = append(members, m)
	}
	if urlKey == "" {
		urlKey = DefaultURLKey
	}
	return members, urlKey
}

// Encode writes f in javadoc's own layout: compact objects with keys in
// m, p, c, l, url order and optional keys omitted when empty.
func Encode(w io.Writer, f *File) error {
	name := f.Var
	if name == "" {
		name = DefaultVar
	}

	var buf bytes.Buffer
	if f.Declared {
		buf.WriteString("var ")
	}
	buf.WriteString(name)
	buf.WriteString(" = ")
	writeArray(&buf, f.Members, urlKeyOrDefault(f.URLKey))
	buf.WriteString(f.Trailer)

	_, err := w.Write(buf.Bytes())
	return err
}

// Layout returns the parts of f needed to write it back unchanged.
func (f *File) Layout() javadex.ScriptLayout {
	return javadex.ScriptLayout{Var: f.Var, Declared: f.Declared, URLKey: f.URLKey, Trailer: f.Trailer}
}

// FromLayout builds a File for members in the given layout. The zero layout
// produces current javadoc output: the default variable, the url key and
// UpdateTrailer.
func FromLayout(layout javadex.ScriptLayout, members []*javadex.Member) *File {
	if layout.Var == "" {
		return &File{Var: DefaultVar, URLKey: DefaultURLKey, Trailer: UpdateTrailer, Members: members}
	}
	return &File{
		Var:      layout.Var,
		Declared: layout.Declared,
		URLKey:   layout.URLKey,
		Trailer:  layout.Trailer,
		Members:  members,
	}
}

// EncodeJSON writes members as a plain JSON array.
func EncodeJSON(w io.Writer, members []*javadex.Member) error {
	var buf bytes.Buffer
	writeArray(&buf, members, DefaultURLKey)
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func urlKeyOrDefault(key string) string {
	if key == "u" {
		return "u"
	}
	return DefaultURLKey
}

func writeArray(buf *bytes.Buffer, members []*javadex.Member, urlKey string) {
	buf.WriteByte('[')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		if m.Module != "" {
			writeField(buf, "m", m.Module, true)
		}
		writeField(buf, "p", m.Package, m.Module == "")
		writeField(buf, "c", m.Class, false)
		writeField(buf, "l", m.Label, false)
		if m.URL != "" {
			writeField(buf, urlKey, m.URL, false)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
}

func writeField(buf *bytes.Buffer, key, value string, first bool) {
	if !first {
		buf.WriteByte(',')
	}
	buf.WriteByte('"')
	buf.WriteString(key)
	buf.WriteString(`":`)
	writeString(buf, value)
}

// writeString quotes s without the HTML escaping encoding/json applies.
func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
