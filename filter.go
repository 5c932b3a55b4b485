package wiktscan

import "regexp"

// A Reason says why a page was set aside.  ReasonNone means it was
// kept.
type Reason int

// The rejection reasons, in the order they are checked.
const (
	ReasonNone Reason = iota
	ReasonSkipped
	ReasonSpecial
	ReasonRedirect
	ReasonNonEnglish
	ReasonDictOnly
	ReasonNonLatin
)

var reasonNames = [...]string{
	ReasonNone:       "kept",
	ReasonSkipped:    "skipped",
	ReasonSpecial:    "special",
	ReasonRedirect:   "redirect",
	ReasonNonEnglish: "non_english",
	ReasonDictOnly:   "dict_only",
	ReasonNonLatin:   "non_latin",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}

// A RawPage is a page that survived filtering.  Body is the page's
// wikitext, still entity-escaped as it was in the dump.
type RawPage struct {
	Seq   int64
	Title string
	Body  string
}

var titleRE, nsRE, textRE, redirectRE, dictOnlyRE *regexp.Regexp

func init() {
	titleRE = regexp.MustCompile(`<title>([^<]+)</title>`)
	nsRE = regexp.MustCompile(`<ns>(\d+)</ns>`)
	textRE = regexp.MustCompile(`(?s)<text[^>]*>(.+?)</text>`)
	redirectRE = regexp.MustCompile(`<redirect\s+title="[^"]+"`)
	dictOnlyRE = regexp.MustCompile(`(?i)\{\{no entry\|en`)
}

// A Filter decides which pages are worth assembling.
type Filter struct {
	tax *Taxonomy
}

// NewFilter gets a Filter using the taxonomy's reserved title prefixes.
func NewFilter(tax *Taxonomy) *Filter {
	return &Filter{tax: tax}
}

// Check runs a page fragment through the filters.
//
// The checks run in a fixed order and the first failure decides the
// reason: missing title, non-main namespace, reserved title prefix,
// redirect, missing text, no English section, dictionary-only entry,
// and finally a title not written in Latin script.
func (f *Filter) Check(frag Fragment) (RawPage, Reason) {
	page := RawPage{Seq: frag.Seq}

	m := titleRE.FindStringSubmatch(frag.XML)
	if m == nil {
		return page, ReasonSkipped
	}
	page.Title = m[1]

	if m := nsRE.FindStringSubmatch(frag.XML); m != nil && m[1] != "0" {
		return page, ReasonSpecial
	}
	if f.tax.IsSpecialTitle(page.Title) {
		return page, ReasonSpecial
	}
	if redirectRE.MatchString(frag.XML) {
		return page, ReasonRedirect
	}

	m = textRE.FindStringSubmatch(frag.XML)
	if m == nil {
		return page, ReasonSkipped
	}
	page.Body = m[1]

	if !HasEnglishSection(page.Body) {
		return page, ReasonNonEnglish
	}
	if dictOnlyRE.MatchString(page.Body) {
		return page, ReasonDictOnly
	}
	if !IsEnglishLike(page.Title) {
		return page, ReasonNonLatin
	}
	return page, ReasonNone
}
