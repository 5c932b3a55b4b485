package wiktscan

import (
	"regexp"
	"strings"
	"unicode"
)

// UnknownPOS is the part of speech of an English page that has no
// recognizable part-of-speech section.
const UnknownPOS = "unknown"

// A SenseEntry is one output record: a single definition line of a
// word, together with everything known about the word itself.
//
// Field order is the output order.
type SenseEntry struct {
	Word           string      `json:"id"`
	POS            string      `json:"pos"`
	WordCount      int         `json:"wc"`
	IsAbbreviation bool        `json:"is_abbreviation,omitempty"`
	IsInflected    bool        `json:"is_inflected,omitempty"`
	IsPhrase       bool        `json:"is_phrase,omitempty"`
	Syllables      *int        `json:"nsyll,omitempty"`
	PhraseType     string      `json:"phrase_type,omitempty"`
	Lemma          string      `json:"lemma,omitempty"`
	DomainTags     []string    `json:"domain_tags,omitempty"`
	RegionTags     []string    `json:"region_tags,omitempty"`
	RegisterTags   []string    `json:"register_tags,omitempty"`
	TemporalTags   []string    `json:"temporal_tags,omitempty"`
	SpellingRegion string      `json:"spelling_region,omitempty"`
	Morphology     *Morphology `json:"morphology,omitempty"`
}

// A WordRecord holds the facts shared by every sense of a page.
type WordRecord struct {
	Word           string
	WordCount      int
	IsPhrase       bool
	IsAbbreviation bool
	IsInflected    bool
	Lemma          string
	PhraseType     string
	Syllables      *int
	Morphology     *Morphology
	SpellingRegion string
}

func (w *WordRecord) sense(pos string, l SenseLabels) SenseEntry {
	return SenseEntry{
		Word:           w.Word,
		POS:            pos,
		WordCount:      w.WordCount,
		IsAbbreviation: w.IsAbbreviation,
		IsInflected:    w.IsInflected,
		IsPhrase:       w.IsPhrase,
		Syllables:      w.Syllables,
		PhraseType:     w.PhraseType,
		Lemma:          w.Lemma,
		DomainTags:     l.Domain,
		RegionTags:     l.Region,
		RegisterTags:   l.Register,
		TemporalTags:   l.Temporal,
		SpellingRegion: w.SpellingRegion,
		Morphology:     w.Morphology,
	}
}

var abbreviationRE, inflectionExistsRE, definitionTemplateRE, headTemplateRE, prepPhraseRE *regexp.Regexp

// inflectionREs are tried in order; the first usable lemma wins.
var inflectionREs []*regexp.Regexp

var inflectionCategories = []string{
	"Category:English verb forms",
	"Category:English noun forms",
	"Category:English adjective forms",
	"Category:English adverb forms",
	"Category:English plurals",
}

var phraseCategories = []struct{ category, phraseType string }{
	{"Category:English idioms", "idiom"},
	{"Category:English proverbs", "proverb"},
	{"Category:English prepositional phrases", "prepositional phrase"},
	{"Category:English adverbial phrases", "adverbial phrase"},
	{"Category:English verb phrases", "verb phrase"},
	{"Category:English noun phrases", "noun phrase"},
	{"Category:English sayings", "proverb"},
}

func init() {
	abbreviationRE = regexp.MustCompile(`(?i)\{\{(?:abbreviation of|abbrev of|abbr of|initialism of)\|en\|`)
	inflectionExistsRE = regexp.MustCompile(`(?i)\{\{(?:plural of|past tense of|past participle of|present participle of|comparative of|superlative of|inflection of)\|en\|`)
	definitionTemplateRE = regexp.MustCompile(`(?i)\{\{(?:abbr of|abbreviation of|abbrev of|initialism of|acronym of|alternative form of|alt form|alt sp|plural of|past tense of|past participle of|present participle of|en-(?:noun|verb|adj|adv|past of))\|en\|`)
	headTemplateRE = regexp.MustCompile(`(?i)\{\{(?:head|en-head|head-lite)\|en\|([^}|]+)`)
	prepPhraseRE = regexp.MustCompile(`(?i)\{\{en-prepphr\b`)

	for _, name := range []string{
		`plural of`,
		`past tense of`,
		`past participle of`,
		`present participle of`,
		`(?:en-third-person singular of|third-person singular of)`,
		`comparative of`,
		`superlative of`,
		`inflection of`,
	} {
		inflectionREs = append(inflectionREs,
			regexp.MustCompile(`(?i)\{\{`+name+`\|en\|([^|}]+)`))
	}
}

// An Assembler turns the English text of a page into sense entries.
type Assembler struct {
	tax *Taxonomy
}

// NewAssembler gets an Assembler classifying with the given taxonomy.
func NewAssembler(tax *Taxonomy) *Assembler {
	return &Assembler{tax: tax}
}

// Word builds the word-level record of a page from its English section.
func (a *Assembler) Word(title, english string) WordRecord {
	w := WordRecord{Word: strings.TrimSpace(title)}
	w.WordCount = len(strings.Fields(w.Word))
	w.IsPhrase = w.WordCount > 1
	if w.IsPhrase {
		w.PhraseType = PhraseType(english)
	}
	if n, ok := EstimateSyllables(english); ok {
		w.Syllables = &n
	}
	w.Morphology = ExtractMorphology(english)
	w.IsAbbreviation = abbreviationRE.MatchString(english)
	w.Lemma = Lemma(english)
	w.IsInflected = w.Lemma != "" || isInflected(english)
	w.SpellingRegion, _ = a.tax.FindSpellingRegion(english)
	return w
}

// Page produces the sense entries of a page, one per definition line.
//
// A page with an English section but no part-of-speech section still
// yields a single UnknownPOS entry if there is other evidence of an
// English entry: an English category, an {{en-noun}}-style headword
// template or a definition template such as {{plural of|en|...}}.
func (a *Assembler) Page(title, text string) []SenseEntry {
	english, ok := EnglishSection(text)
	if !ok {
		return nil
	}
	w := a.Word(title, english)

	sections := POSSections(english, a.tax)
	if len(sections) == 0 {
		if hasEnglishEvidence(english) {
			return []SenseEntry{w.sense(UnknownPOS, SenseLabels{})}
		}
		return nil
	}

	var rv []SenseEntry
	for _, s := range sections {
		for _, def := range s.Definitions {
			rv = append(rv, w.sense(s.POS, a.tax.ClassifyLabels(def)))
		}
	}
	return rv
}

func hasEnglishEvidence(english string) bool {
	return strings.Contains(strings.ToLower(english), "category:english") ||
		strings.Contains(english, "{{en-noun") ||
		strings.Contains(english, "{{en-verb") ||
		strings.Contains(english, "{{en-adj") ||
		strings.Contains(english, "{{en-adv") ||
		definitionTemplateRE.MatchString(english)
}

func isInflected(english string) bool {
	if inflectionExistsRE.MatchString(english) {
		return true
	}
	for _, c := range inflectionCategories {
		if strings.Contains(english, c) {
			return true
		}
	}
	return false
}

// Lemma finds the base form named by the first inflection template,
// e.g. "cat" from {{plural of|en|cat}} on the page for "cats".
// Lemmas that do not look like English words are ignored.
func Lemma(english string) string {
	for _, re := range inflectionREs {
		m := re.FindStringSubmatch(english)
		if m == nil {
			continue
		}
		lemma := strings.ToLower(cleanLemma(strings.TrimSpace(m[1])))
		if lemma != "" && IsEnglishLike(lemma) {
			return lemma
		}
	}
	return ""
}

func phraseTypeOf(label string, allowForm bool) string {
	switch label {
	case "idiom", "proverb", "prepositional phrase", "adverbial phrase", "verb phrase", "noun phrase":
		return label
	case "verb phrase form":
		if allowForm {
			return label
		}
	case "saying", "adage":
		return "proverb"
	}
	return ""
}

// PhraseType names the kind of a multi-word expression.  Section
// headers are trusted first, then {{head|en|...}}, then
// {{en-prepphr}}, then categories.
func PhraseType(english string) string {
	for _, m := range headerRE.FindAllStringSubmatch(english, -1) {
		if pt := phraseTypeOf(normalizeHeader(m[1]), true); pt != "" {
			return pt
		}
	}
	for _, m := range headTemplateRE.FindAllStringSubmatch(english, -1) {
		if pt := phraseTypeOf(strings.ToLower(strings.TrimSpace(m[1])), false); pt != "" {
			return pt
		}
	}
	if prepPhraseRE.MatchString(english) {
		return "prepositional phrase"
	}
	for _, c := range phraseCategories {
		if strings.Contains(english, c.category) {
			return c.phraseType
		}
	}
	return ""
}

// CaseForm is the capitalization pattern of a headword.
type CaseForm int

// The case forms.
const (
	CaseLower CaseForm = iota
	CaseTitle
	CaseUpper
	CaseMixed
)

func (c CaseForm) String() string {
	switch c {
	case CaseTitle:
		return "title"
	case CaseUpper:
		return "upper"
	case CaseMixed:
		return "mixed"
	}
	return "lower"
}

// ClassifyCase reports the capitalization of s, looking at letters
// only.  A word without letters counts as lower case.
func ClassifyCase(s string) CaseForm {
	var letters []rune
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return CaseLower
	}

	allLower, allUpper, restLower := true, true, true
	for i, r := range letters {
		if !unicode.IsLower(r) {
			allLower = false
			if i > 0 {
				restLower = false
			}
		}
		if !unicode.IsUpper(r) {
			allUpper = false
		}
	}
	switch {
	case allLower:
		return CaseLower
	case allUpper:
		return CaseUpper
	case unicode.IsUpper(letters[0]) && restLower:
		return CaseTitle
	}
	return CaseMixed
}
