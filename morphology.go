package wiktscan

import (
	"regexp"
	"strings"
)

// MorphologyKind is the overall shape of a derivation.
type MorphologyKind string

// The morphology kinds.
const (
	KindPrefixed    MorphologyKind = "prefixed"
	KindSuffixed    MorphologyKind = "suffixed"
	KindCircumfixed MorphologyKind = "circumfixed"
	KindAffixed     MorphologyKind = "affixed"
	KindCompound    MorphologyKind = "compound"
)

// Joiner marks the side of an affix that attaches to the base.
const Joiner = "-"

// Morphology is the etymological structure of a word.
type Morphology struct {
	Kind       MorphologyKind `json:"type"`
	Base       string         `json:"base,omitempty"`
	Components []string       `json:"components"`
	Prefixes   []string       `json:"prefixes"`
	Suffixes   []string       `json:"suffixes"`
	Interfixes []string       `json:"interfixes,omitempty"`
	IsCompound bool           `json:"is_compound"`
	Template   string         `json:"etymology_template"`
}

var etymologyRE, suffixRE, prefixRE, confixRE, langCodeRE *regexp.Regexp

// variadicREs are tried in order after the fixed-arity templates.
var variadicREs []*regexp.Regexp

func init() {
	etymologyRE = regexp.MustCompile(`(?si)===+\s*Etymology\s*\d*\s*===+\s*\n(.+)`)
	suffixRE = regexp.MustCompile(`(?i)\{\{suffix\|en\|([^}|]+)\|([^}|]+)(?:\|([^}|]+))?\}\}`)
	prefixRE = regexp.MustCompile(`(?i)\{\{prefix\|en\|([^}|]+)\|([^}|]+)(?:\|([^}|]+))?\}\}`)
	confixRE = regexp.MustCompile(`(?i)\{\{confix\|en\|([^}|]+)\|([^}|]+)\|([^}|]+)(?:\|([^}|]+))?\}\}`)
	langCodeRE = regexp.MustCompile(`(?i)^[a-z]{2,4}:`)
	variadicREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\{\{compound\|en\|([^}]+)\}\}`),
		regexp.MustCompile(`(?i)\{\{af(?:fix)?\|en\|([^}]+)\}\}`),
		regexp.MustCompile(`(?i)\{\{surf\|en\|([^}]+)\}\}`),
	}
}

// etymologySection returns the first Etymology subsection, up to the
// next header of level three or deeper.
func etymologySection(english string) (string, bool) {
	m := etymologyRE.FindStringSubmatch(english)
	if m == nil {
		return "", false
	}
	body := m[1]
	if i := strings.Index(body, "\n==="); i >= 0 {
		body = body[:i]
	}
	return body, true
}

// ExtractMorphology derives the morphology of a word from the first
// derivation template in its etymology.
//
// Templates are tried as suffix, prefix, confix, compound, affix and
// surf, and the first one that yields components wins.  It returns
// nil when there is no etymology, no usable template, or the word
// turns out to be simple.
func ExtractMorphology(english string) *Morphology {
	etym, ok := etymologySection(english)
	if !ok {
		return nil
	}

	if m := suffixRE.FindStringSubmatch(etym); m != nil {
		base := stripWikilinks(strings.TrimSpace(m[1]))
		suffix := asSuffix(stripWikilinks(strings.TrimSpace(m[2])))
		return classifyMorphology([]string{base, suffix}, m[0])
	}

	if m := prefixRE.FindStringSubmatch(etym); m != nil {
		prefix := asPrefix(stripWikilinks(strings.TrimSpace(m[1])))
		base := stripWikilinks(strings.TrimSpace(m[2]))
		return classifyMorphology([]string{prefix, base}, m[0])
	}

	if m := confixRE.FindStringSubmatch(etym); m != nil {
		prefix := asPrefix(stripWikilinks(strings.TrimSpace(m[1])))
		base := stripWikilinks(strings.TrimSpace(m[2]))
		suffix := asSuffix(stripWikilinks(strings.TrimSpace(m[3])))
		return &Morphology{
			Kind:       KindCircumfixed,
			Base:       base,
			Components: []string{prefix, base, suffix},
			Prefixes:   []string{prefix},
			Suffixes:   []string{suffix},
			Template:   m[0],
		}
	}

	for _, re := range variadicREs {
		m := re.FindStringSubmatch(etym)
		if m == nil {
			continue
		}
		if parts := cleanComponents(ParseParams(m[1])); len(parts) >= 2 {
			return classifyMorphology(parts, m[0])
		}
	}
	return nil
}

func asPrefix(s string) string {
	if strings.HasSuffix(s, Joiner) {
		return s
	}
	return s + Joiner
}

func asSuffix(s string) string {
	if strings.HasPrefix(s, Joiner) {
		return s
	}
	return Joiner + s
}

// cleanComponents drops the parts of a variadic template that are not
// morphemes of the English word: named parameters, foreign etyma such
// as "grc:λόγος", markup-only leftovers.
func cleanComponents(parts []string) []string {
	var rv []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || strings.Contains(part, "=") ||
			langCodeRE.MatchString(part) {
			continue
		}
		part = decodeEntities(part)
		if strings.ContainsAny(part, "<>") {
			part = strings.TrimSpace(tagRE.ReplaceAllString(part, ""))
			if part == "" {
				continue
			}
		}
		part = strings.TrimSpace(stripWikilinks(part))
		// A bare joiner is punctuation, not an interfix.
		switch part {
		case "", Joiner, "|", "<", ">", "[[", "]]":
			continue
		}
		rv = append(rv, part)
	}
	return rv
}

// classifyMorphology classifies components by where they carry a
// joiner: trailing only is a prefix, leading only a suffix, both an
// interfix, neither a base.
func classifyMorphology(components []string, template string) *Morphology {
	m := &Morphology{
		Components: components,
		Prefixes:   []string{},
		Suffixes:   []string{},
		Template:   template,
	}
	var bases []string
	for _, c := range components {
		lead, trail := strings.HasPrefix(c, Joiner), strings.HasSuffix(c, Joiner)
		switch {
		case lead && trail:
			m.Interfixes = append(m.Interfixes, c)
		case trail:
			m.Prefixes = append(m.Prefixes, c)
		case lead:
			m.Suffixes = append(m.Suffixes, c)
		default:
			bases = append(bases, c)
		}
	}

	hasPrefix, hasSuffix := len(m.Prefixes) > 0, len(m.Suffixes) > 0
	switch {
	case hasPrefix && hasSuffix:
		m.Kind = KindAffixed
	case hasPrefix:
		m.Kind = KindPrefixed
	case hasSuffix:
		m.Kind = KindSuffixed
	case len(bases) >= 2:
		m.Kind = KindCompound
		m.IsCompound = true
	default:
		// Nothing derivational about it.
		return nil
	}

	if !m.IsCompound && len(bases) > 0 {
		m.Base = bases[0]
	}
	return m
}
