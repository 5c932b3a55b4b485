package wiktscan

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsCounting(t *testing.T) {
	var s Stats
	for _, r := range []Reason{ReasonSpecial, ReasonRedirect, ReasonRedirect, ReasonNonEnglish,
		ReasonDictOnly, ReasonNonLatin, ReasonSkipped, ReasonNone} {
		s.Reject(r)
	}
	assert.EqualValues(t, 1, s.Special)
	assert.EqualValues(t, 2, s.Redirects)
	assert.EqualValues(t, 1, s.NonEnglish)
	assert.EqualValues(t, 1, s.DictOnly)
	assert.EqualValues(t, 1, s.NonLatin)
	assert.EqualValues(t, 1, s.Skipped)

	for _, w := range []string{"cat", "Paris", "NASA", "iPhone", "dog"} {
		s.Word(w)
	}
	assert.EqualValues(t, 5, s.WordsWritten)
	assert.EqualValues(t, 2, s.CaseLower)
	assert.EqualValues(t, 1, s.CaseTitle)
	assert.EqualValues(t, 1, s.CaseUpper)
	assert.EqualValues(t, 1, s.CaseMixed)
}

func TestStatsMerge(t *testing.T) {
	a := Stats{PagesProcessed: 10, SensesWritten: 4, Redirects: 1, Sources: SyllableStats{IPA: 2}}
	b := Stats{PagesProcessed: 5, SensesWritten: 1, Redirects: 2, LimitReached: true,
		Sources: SyllableStats{IPA: 1, Disagreements: 1}}
	a.Merge(b)
	assert.EqualValues(t, 15, a.PagesProcessed)
	assert.EqualValues(t, 5, a.SensesWritten)
	assert.EqualValues(t, 3, a.Redirects)
	assert.True(t, a.LimitReached)
	assert.Equal(t, SyllableStats{IPA: 3, Disagreements: 1}, a.Sources)
}

func TestStatsReport(t *testing.T) {
	s := Stats{
		PagesProcessed: 1234567,
		WordsWritten:   1000,
		SensesWritten:  2500,
		Redirects:      42,
		Elapsed:        2 * time.Second,
	}
	assert.InDelta(t, 617283.5, s.Rate(), 0.01)

	var sb strings.Builder
	s.Report(&sb, Channel)
	out := sb.String()
	assert.Contains(t, out, "Strategy: channel")
	assert.Contains(t, out, "Pages processed: 1,234,567")
	assert.Contains(t, out, "Senses written: 2,500 (2.50 per word)")
	assert.Contains(t, out, "Redirects: 42")
	assert.Contains(t, out, "617,283 pages/s")
	assert.NotContains(t, out, "Syllable sources")
	assert.NotContains(t, out, "limit")
}

func TestStatsRateZero(t *testing.T) {
	assert.Zero(t, Stats{PagesProcessed: 5}.Rate())
}
