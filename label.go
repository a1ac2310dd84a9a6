package javadex

import (
	"strings"
	"unicode"
)

// Kind identifies what a member label describes.
type Kind string

// Kind constants for Signature.
const (
	KindField  Kind = "field"
	KindMethod Kind = "method"
)

// Signature is a parsed member label such as "doPerform(PipelineData, Context)".
type Signature struct {
	Name   string   `json:"name"`
	Kind   Kind     `json:"kind"`
	Params []string `json:"params,omitempty"`
}

// IsConstructor reports whether the signature names a constructor of class.
// Nested classes ("PipelineTest.Worker") are matched on their last segment.
func (s Signature) IsConstructor(class string) bool {
	if s.Kind != KindMethod {
		return false
	}
	if i := strings.LastIndexByte(class, '.'); i >= 0 {
		class = class[i+1:]
	}
	return s.Name == class
}

// ParseLabel parses a member label into its name and parameter types.
// Labels without parentheses are fields. Returns EINVALID when the label is
// not a Java identifier optionally followed by a parameter list.
func ParseLabel(label string) (Signature, error) {
	p := &labelParser{s: label}

	name, ok := p.ident()
	if !ok {
		return Signature{}, Errorf(EINVALID, "label %q: expected member name", label)
	}
	if p.eof() {
		return Signature{Name: name, Kind: KindField}, nil
	}
	if !p.consume('(') {
		return Signature{}, Errorf(EINVALID, "label %q: unexpected %q after name", label, p.rest())
	}

	sig := Signature{Name: name, Kind: KindMethod}
	p.spaces()
	if p.consume(')') {
		if !p.eof() {
			return Signature{}, Errorf(EINVALID, "label %q: trailing %q", label, p.rest())
		}
		return sig, nil
	}

	for {
		p.spaces()
		start := p.pos
		if !p.typ() {
			return Signature{}, Errorf(EINVALID, "label %q: bad parameter type at offset %d", label, start)
		}
		varargs := p.consumeString("...")
		sig.Params = append(sig.Params, strings.TrimSpace(label[start:p.pos]))
		p.spaces()
		if p.consume(')') {
			break
		}
		if varargs {
			return Signature{}, Errorf(EINVALID, "label %q: varargs must be the last parameter", label)
		}
		if !p.consume(',') {
			return Signature{}, Errorf(EINVALID, "label %q: expected ',' or ')' at offset %d", label, p.pos)
		}
	}
	if !p.eof() {
		return Signature{}, Errorf(EINVALID, "label %q: trailing %q", label, p.rest())
	}
	return sig, nil
}

// SplitAnchor splits a decoded anchor such as
// "doPerform(org.apache.turbine.pipeline.PipelineData,int)" into its name and
// parameters. Anchors without parentheses return a nil parameter slice and
// hasParams false.
func SplitAnchor(anchor string) (name string, params []string, hasParams bool) {
	open := strings.IndexByte(anchor, '(')
	if open < 0 || !strings.HasSuffix(anchor, ")") {
		return anchor, nil, false
	}
	name = anchor[:open]
	inner := strings.TrimSpace(anchor[open+1 : len(anchor)-1])
	if inner == "" {
		return name, []string{}, true
	}

	depth, last := 0, 0
	for i, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				params = append(params, strings.TrimSpace(inner[last:i]))
				last = i + 1
			}
		}
	}
	params = append(params, strings.TrimSpace(inner[last:]))
	return name, params, true
}

type labelParser struct {
	s   string
	pos int
}

func (p *labelParser) eof() bool    { return p.pos >= len(p.s) }
func (p *labelParser) rest() string { return p.s[p.pos:] }

func (p *labelParser) peek() rune {
	for _, r := range p.s[p.pos:] {
		return r
	}
	return 0
}

func (p *labelParser) consume(b byte) bool {
	if p.pos < len(p.s) && p.s[p.pos] == b {
		p.pos++
		return true
	}
	return false
}

func (p *labelParser) consumeString(s string) bool {
	if strings.HasPrefix(p.s[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *labelParser) spaces() {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func (p *labelParser) ident() (string, bool) {
	start := p.pos
	for i, r := range p.s[p.pos:] {
		if i == 0 && !isIdentStart(r) {
			return "", false
		}
		if !isIdentPart(r) {
			p.pos = start + i
			return p.s[start:p.pos], p.pos > start
		}
	}
	p.pos = len(p.s)
	return p.s[start:], p.pos > start
}

// typ parses a possibly qualified, possibly generic, possibly array type.
func (p *labelParser) typ() bool {
	for {
		if _, ok := p.ident(); !ok {
			return false
		}
		if p.peek() == '<' && !p.typeArgs() {
			return false
		}
		if !p.consume('.') {
			break
		}
		// "..." is varargs, not a qualifier.
		if p.peek() == '.' {
			p.pos--
			break
		}
	}
	for p.consumeString("[]") {
	}
	return true
}

func (p *labelParser) typeArgs() bool {
	if !p.consume('<') {
		return false
	}
	for {
		p.spaces()
		if p.consume('?') {
			p.spaces()
			if p.consumeString("extends ") || p.consumeString("super ") {
				p.spaces()
				if !p.typ() {
					return false
				}
			}
		} else if !p.typ() {
			return false
		}
		p.spaces()
		if p.consume('>') {
			return true
		}
		if !p.consume(',') {
			return false
		}
	}
}
