package wiktscan

import "strings"

// MaxTemplateDepth bounds how far ParseParams descends into nested
// templates.  Anything nested deeper is skipped by brace counting.
const MaxTemplateDepth = 64

// A Wikilink is a parsed [[target#anchor|display]].
type Wikilink struct {
	Target  string
	Anchor  string
	Display string

	hasDisplay bool
}

// Text is what the link renders as: the display text if there is one,
// the target otherwise.
func (w Wikilink) Text() string {
	if w.hasDisplay {
		return w.Display
	}
	return w.Target
}

// A templateCall is a parsed {{name|param|...}}.
type templateCall struct {
	Name   string
	Params []string
}

// ParseParams splits the argument list of a template into its
// parameters.
//
// Pipes inside [[...]] and {{...}} do not split.  Links are replaced by
// their rendered text, nested templates produce no text, and every
// parameter is trimmed.  Unterminated constructs run to the end of the
// input instead of failing.
//
//	ParseParams("[[Isle of Man|Manx]]|-ness") == []string{"Manx", "-ness"}
func ParseParams(s string) []string {
	p := &paramParser{s: []rune(s)}
	return p.params()
}

type paramParser struct {
	s     []rune
	pos   int
	depth int
}

func (p *paramParser) atEnd() bool {
	return p.pos >= len(p.s)
}

func (p *paramParser) peek() rune {
	if p.atEnd() {
		return 0
	}
	return p.s[p.pos]
}

// has reports whether the two runes at the cursor are a, b.
func (p *paramParser) has(a, b rune) bool {
	return p.pos+1 < len(p.s) && p.s[p.pos] == a && p.s[p.pos+1] == b
}

// params ::= param ("|" param)*
func (p *paramParser) params() []string {
	var rv []string
	for !p.atEnd() {
		rv = append(rv, p.param(false))
		if p.peek() != '|' {
			break
		}
		p.pos++
	}
	return rv
}

// param ::= (wikilink | template | char)*
//
// Inside a template a param also stops at "}}".
func (p *paramParser) param(inTemplate bool) string {
	var sb strings.Builder
	for !p.atEnd() && p.peek() != '|' {
		switch {
		case inTemplate && p.has('}', '}'):
			return strings.TrimSpace(sb.String())
		case p.has('[', '['):
			sb.WriteString(p.wikilink().Text())
		case p.has('{', '{'):
			p.template()
		default:
			sb.WriteRune(p.s[p.pos])
			p.pos++
		}
	}
	return strings.TrimSpace(sb.String())
}

// wikilink ::= "[[" target ("#" anchor)? ("|" display)? "]]"
func (p *paramParser) wikilink() Wikilink {
	p.pos += 2
	w := Wikilink{Target: p.until('#', '|', ']')}
	if p.peek() == '#' {
		p.pos++
		w.Anchor = p.until('|', ']')
	}
	if p.peek() == '|' {
		p.pos++
		w.Display = p.until(']')
		w.hasDisplay = true
	}
	if p.has(']', ']') {
		p.pos += 2
	}
	return w
}

func (p *paramParser) until(stops ...rune) string {
	start := p.pos
	for !p.atEnd() {
		r := p.s[p.pos]
		for _, s := range stops {
			if r == s {
				return string(p.s[start:p.pos])
			}
		}
		p.pos++
	}
	return string(p.s[start:])
}

// template ::= "{{" param ("|" param)* "}}"
func (p *paramParser) template() templateCall {
	p.pos += 2
	if p.depth >= MaxTemplateDepth {
		p.skipTemplate()
		return templateCall{}
	}
	p.depth++
	defer func() { p.depth-- }()

	var params []string
	for !p.atEnd() && !p.has('}', '}') {
		params = append(params, p.param(true))
		if p.peek() != '|' {
			break
		}
		p.pos++
	}
	if p.has('}', '}') {
		p.pos += 2
	}

	t := templateCall{}
	if len(params) > 0 {
		t.Name, t.Params = params[0], params[1:]
	}
	return t
}

// skipTemplate consumes the rest of a template, closing braces
// included, without recursing.
func (p *paramParser) skipTemplate() {
	level := 1
	for !p.atEnd() {
		switch {
		case p.has('{', '{'):
			level++
			p.pos += 2
		case p.has('}', '}'):
			level--
			p.pos += 2
			if level == 0 {
				return
			}
		default:
			p.pos++
		}
	}
}

// parseTemplate parses a single template at the start of s.
func parseTemplate(s string) templateCall {
	p := &paramParser{s: []rune(s)}
	if !p.has('{', '{') {
		return templateCall{}
	}
	return p.template()
}
