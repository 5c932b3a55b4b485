package wiktscan

import (
	"regexp"
	"strings"
)

var englishRE, languageRE, headerRE, definitionRE *regexp.Regexp

func init() {
	englishRE = regexp.MustCompile(`(?i)==\s*English\s*==`)
	languageRE = regexp.MustCompile(`(?m)^==\s*([^=]+?)\s*==$`)
	headerRE = regexp.MustCompile(`(?m)^===+\s*(.+?)\s*===+\s*$`)
	definitionRE = regexp.MustCompile(`(?m)^#\s+(.+)$`)
}

// HasEnglishSection reports whether text carries an ==English== header.
func HasEnglishSection(text string) bool {
	return englishRE.MatchString(text)
}

// EnglishSection returns the text between the ==English== header and
// the next level-two header naming some other language.
func EnglishSection(text string) (string, bool) {
	loc := englishRE.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[1]:]
	for _, m := range languageRE.FindAllStringSubmatchIndex(rest, -1) {
		if !strings.EqualFold(rest[m[2]:m[3]], "english") {
			return rest[:m[0]], true
		}
	}
	return rest, true
}

// A POSSection is one part-of-speech section and its definition lines.
type POSSection struct {
	POS         string
	Definitions []string
}

type header struct {
	start int
	pos   string
}

// POSSections finds the part-of-speech sections of an English section.
//
// A section runs from its header to the next recognized header.
// Headers the taxonomy does not know (Etymology, Pronunciation, ...)
// are ignored, and sections without a single definition are dropped.
// Only top-level "# " lines count as definitions.
func POSSections(english string, tax *Taxonomy) []POSSection {
	var headers []header
	for _, m := range headerRE.FindAllStringSubmatchIndex(english, -1) {
		if code, ok := tax.POSCode(english[m[2]:m[3]]); ok {
			headers = append(headers, header{start: m[0], pos: code})
		}
	}

	var rv []POSSection
	for i, h := range headers {
		end := len(english)
		if i+1 < len(headers) {
			end = headers[i+1].start
		}
		var defs []string
		for _, m := range definitionRE.FindAllStringSubmatch(english[h.start:end], -1) {
			defs = append(defs, m[1])
		}
		if len(defs) > 0 {
			rv = append(rv, POSSection{POS: h.pos, Definitions: defs})
		}
	}
	return rv
}
