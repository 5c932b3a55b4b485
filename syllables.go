package wiktscan

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxSyllables is the largest IPA-derived count taken at face value.
const MaxSyllables = 15

var rhymesRE, syllableCategoryRE, ipaRE, ipaTranscriptionRE, hyphenationRE *regexp.Regexp

func init() {
	rhymesRE = regexp.MustCompile(`(?i)\{\{rhymes\|en\|[^}]*\|s=(\d+)`)
	syllableCategoryRE = regexp.MustCompile(`(?i)\[\[Category:English\s+(\d+)-syllable\s+words?\]\]`)
	ipaRE = regexp.MustCompile(`(?i)\{\{IPA\|en\|([^}]+)\}\}`)
	ipaTranscriptionRE = regexp.MustCompile(`[/\[]([^/\[\]]+)[/\]]`)
	hyphenationRE = regexp.MustCompile(`(?i)\{\{(?:hyphenation|hyph)\|en\|([^}]+)\}\}`)
}

// EstimateSyllables finds the syllable count of a word.
//
// Sources are consulted from most to least reliable: an explicit s=
// on {{rhymes}}, the first {{IPA}} transcription, an "N-syllable
// words" category, and finally {{hyphenation}}.
func EstimateSyllables(english string) (int, bool) {
	for _, f := range []func(string) (int, bool){
		syllablesFromRhymes,
		syllablesFromIPA,
		syllablesFromCategory,
		syllablesFromHyphenation,
	} {
		if n, ok := f(english); ok {
			return n, true
		}
	}
	return 0, false
}

func syllablesFromRhymes(text string) (int, bool) {
	return firstInt(rhymesRE, text)
}

func syllablesFromCategory(text string) (int, bool) {
	return firstInt(syllableCategoryRE, text)
}

func firstInt(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

func syllablesFromIPA(text string) (int, bool) {
	m := ipaRE.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	t := ipaTranscriptionRE.FindStringSubmatch(m[1])
	if t == nil {
		return 0, false
	}
	n := CountIPASyllables(t[1])
	if n == 0 || n > MaxSyllables {
		return 0, false
	}
	return n, true
}

// syllablesFromHyphenation counts the segments of the first
// alternative of {{hyphenation|en|dic|tion|a|ry}}.  A lone segment
// longer than three bytes is most likely an unsplit word, not a
// one-syllable one.
func syllablesFromHyphenation(text string) (int, bool) {
	m := hyphenationRE.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	first, _, _ := strings.Cut(m[1], "||")

	var segments []string
	for _, part := range strings.Split(first, "|") {
		part = strings.TrimSpace(part)
		if part != "" && !strings.Contains(part, "=") {
			segments = append(segments, part)
		}
	}
	if len(segments) == 0 || (len(segments) == 1 && len(segments[0]) > 3) {
		return 0, false
	}
	return len(segments), true
}

const syllabicMark = '\u0329'

func isIPAVowel(r rune) bool {
	switch r {
	case 'i', 'ɪ', 'e', 'ɛ', 'æ', 'a', 'ɑ', 'ɒ', 'ɔ', 'o', 'ʊ', 'u', 'ʌ', 'ə', 'ɜ', 'ɝ', 'ɐ',
		'ᵻ', 'ᵿ', 'ɚ':
		return true
	}
	return false
}

func isIPAModifier(r rune) bool {
	switch r {
	case 'ː', 'ˑ', '\u0303', '\u032F', '\u0361':
		return true
	}
	return false
}

func isOffglide(r rune) bool {
	switch r {
	case 'ɪ', 'ʊ', 'ə', 'ɐ':
		return true
	}
	return false
}

// CountIPASyllables counts the vowel nuclei of an IPA transcription.
//
// A diphthong counts once: after a vowel, length and tie marks are
// skipped along with at most one off-glide.  A consonant carrying the
// syllabic mark (U+0329) counts as a nucleus of its own.
func CountIPASyllables(ipa string) int {
	rs := []rune(ipa)
	count := 0
	for i := 0; i < len(rs); {
		if i+1 < len(rs) && rs[i+1] == syllabicMark {
			count++
			i += 2
			continue
		}
		if !isIPAVowel(rs[i]) {
			i++
			continue
		}
		count++
		i++
		glided := false
	glide:
		for i < len(rs) {
			switch {
			case isIPAModifier(rs[i]):
				i++
			case !glided && isOffglide(rs[i]):
				glided = true
				i++
			default:
				break glide
			}
		}
	}
	return count
}

// A SyllableReport lays every syllable source side by side.
type SyllableReport struct {
	Word         string `json:"id"`
	Rhymes       *int   `json:"rhymes"`
	IPA          *int   `json:"ipa"`
	Category     *int   `json:"category"`
	Hyphenation  *int   `json:"hyphenation"`
	Final        *int   `json:"final_value"`
	Disagreement bool   `json:"has_disagreement"`
}

// SyllableSources evaluates all syllable sources of a page's English
// section.  It reports false when none of them has an answer.
func SyllableSources(word, english string) (SyllableReport, bool) {
	rep := SyllableReport{Word: word}
	opt := func(n int, ok bool) *int {
		if !ok {
			return nil
		}
		return &n
	}
	rep.Rhymes = opt(syllablesFromRhymes(english))
	rep.IPA = opt(syllablesFromIPA(english))
	rep.Category = opt(syllablesFromCategory(english))
	rep.Hyphenation = opt(syllablesFromHyphenation(english))

	var seen []int
	for _, p := range []*int{rep.Rhymes, rep.IPA, rep.Category, rep.Hyphenation} {
		if p == nil {
			continue
		}
		if rep.Final == nil {
			rep.Final = p
		}
		if len(seen) > 0 && *p != seen[0] {
			rep.Disagreement = true
		}
		seen = append(seen, *p)
	}
	return rep, rep.Final != nil
}
