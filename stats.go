package wiktscan

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats count what happened to the pages of a run.
type Stats struct {
	PagesProcessed int64
	WordsWritten   int64
	SensesWritten  int64

	Special    int64
	Redirects  int64
	DictOnly   int64
	NonEnglish int64
	NonLatin   int64
	Skipped    int64

	CaseLower int64
	CaseTitle int64
	CaseUpper int64
	CaseMixed int64

	// Sources is filled in by syllable report runs only.
	Sources SyllableStats

	Elapsed time.Duration

	// LimitReached is set when the run stopped at the output limit
	// instead of at the end of the input.
	LimitReached bool
}

// Reject counts a page set aside for the given reason.
func (s *Stats) Reject(r Reason) {
	switch r {
	case ReasonSkipped:
		s.Skipped++
	case ReasonSpecial:
		s.Special++
	case ReasonRedirect:
		s.Redirects++
	case ReasonNonEnglish:
		s.NonEnglish++
	case ReasonDictOnly:
		s.DictOnly++
	case ReasonNonLatin:
		s.NonLatin++
	}
}

// Word counts a headword that made it to the output.
func (s *Stats) Word(title string) {
	s.WordsWritten++
	switch ClassifyCase(title) {
	case CaseLower:
		s.CaseLower++
	case CaseTitle:
		s.CaseTitle++
	case CaseUpper:
		s.CaseUpper++
	default:
		s.CaseMixed++
	}
}

// Merge adds the counters of o to s.
func (s *Stats) Merge(o Stats) {
	s.PagesProcessed += o.PagesProcessed
	s.WordsWritten += o.WordsWritten
	s.SensesWritten += o.SensesWritten
	s.Special += o.Special
	s.Redirects += o.Redirects
	s.DictOnly += o.DictOnly
	s.NonEnglish += o.NonEnglish
	s.NonLatin += o.NonLatin
	s.Skipped += o.Skipped
	s.CaseLower += o.CaseLower
	s.CaseTitle += o.CaseTitle
	s.CaseUpper += o.CaseUpper
	s.CaseMixed += o.CaseMixed
	s.Sources.Merge(o.Sources)
	s.LimitReached = s.LimitReached || o.LimitReached
}

// SyllableStats count which syllable sources a word had.
type SyllableStats struct {
	Rhymes        int64
	IPA           int64
	Category      int64
	Hyphenation   int64
	Disagreements int64
}

// Add counts the sources present in a report.
func (s *SyllableStats) Add(rep SyllableReport) {
	if rep.Rhymes != nil {
		s.Rhymes++
	}
	if rep.IPA != nil {
		s.IPA++
	}
	if rep.Category != nil {
		s.Category++
	}
	if rep.Hyphenation != nil {
		s.Hyphenation++
	}
	if rep.Disagreement {
		s.Disagreements++
	}
}

func (s *SyllableStats) Merge(o SyllableStats) {
	s.Rhymes += o.Rhymes
	s.IPA += o.IPA
	s.Category += o.Category
	s.Hyphenation += o.Hyphenation
	s.Disagreements += o.Disagreements
}

// Rate is the number of pages processed per second.
func (s Stats) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.PagesProcessed) / s.Elapsed.Seconds()
}

// Report writes a human readable summary of a run.
func (s Stats) Report(w io.Writer, strategy Strategy) {
	avg := float64(s.SensesWritten) / float64(max(s.WordsWritten, 1))
	fmt.Fprintf(w, "Strategy: %v\n", strategy)
	fmt.Fprintf(w, "Pages processed: %s\n", humanize.Comma(s.PagesProcessed))
	fmt.Fprintf(w, "Words written: %s\n", humanize.Comma(s.WordsWritten))
	fmt.Fprintf(w, "Senses written: %s (%.2f per word)\n", humanize.Comma(s.SensesWritten), avg)
	fmt.Fprintf(w, "Case: %s lower, %s title, %s upper, %s mixed\n",
		humanize.Comma(s.CaseLower), humanize.Comma(s.CaseTitle),
		humanize.Comma(s.CaseUpper), humanize.Comma(s.CaseMixed))
	fmt.Fprintf(w, "Special pages: %s\n", humanize.Comma(s.Special))
	fmt.Fprintf(w, "Redirects: %s\n", humanize.Comma(s.Redirects))
	fmt.Fprintf(w, "Dictionary-only terms: %s\n", humanize.Comma(s.DictOnly))
	fmt.Fprintf(w, "Non-English pages: %s\n", humanize.Comma(s.NonEnglish))
	fmt.Fprintf(w, "Non-Latin scripts: %s\n", humanize.Comma(s.NonLatin))
	fmt.Fprintf(w, "Skipped: %s\n", humanize.Comma(s.Skipped))
	fmt.Fprintf(w, "Time: %v (%s pages/s)\n", s.Elapsed.Round(time.Millisecond),
		humanize.Commaf(float64(int64(s.Rate()))))
	if src := s.Sources; src != (SyllableStats{}) {
		fmt.Fprintf(w, "Syllable sources: %s rhymes, %s IPA, %s category, %s hyphenation\n",
			humanize.Comma(src.Rhymes), humanize.Comma(src.IPA),
			humanize.Comma(src.Category), humanize.Comma(src.Hyphenation))
		fmt.Fprintf(w, "Disagreements: %s\n", humanize.Comma(src.Disagreements))
	}
	if s.LimitReached {
		fmt.Fprintf(w, "Stopped at the output limit.\n")
	}
}
