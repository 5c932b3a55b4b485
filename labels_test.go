package wiktscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLabels(t *testing.T) {
	t.Parallel()
	tax := DefaultTaxonomy()
	tests := []struct {
		line string
		exp  SenseLabels
	}{
		{"A plain definition.", SenseLabels{}},
		{"{{lb|en|informal}} Happy.", SenseLabels{Register: []string{"informal"}}},
		{
			"{{lb|en|US|_|slang|computing}} A program.",
			SenseLabels{Register: []string{"slang"}, Domain: []string{"computing"}, Region: []string{"en-US"}},
		},
		{
			"{{label|en|archaic, British}} Old.",
			SenseLabels{Temporal: []string{"archaic"}, Region: []string{"en-GB"}},
		},
		{
			"{{lb|en|US}} {{lb|en|American|obsolete}} Twice.",
			SenseLabels{Temporal: []string{"obsolete"}, Region: []string{"en-US"}},
		},
		{
			"{{lb|en|vulgar|slang}} Rude.",
			SenseLabels{Register: []string{"slang", "vulgar"}},
		},
		{"{{lb|fr|slang}} Not English.", SenseLabels{}},
		{"{{lb|en|slang&lt;!-- medicine --&gt;}} Hidden.", SenseLabels{Register: []string{"slang"}}},
		{"{{lb|en|not-a-label}} Nope.", SenseLabels{}},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, tax.ClassifyLabels(test.line), test.line)
	}
}

func TestFindSpellingRegion(t *testing.T) {
	t.Parallel()
	tax := DefaultTaxonomy()

	r, ok := tax.FindSpellingRegion("{{en-noun}}\n# {{tlb|en|American spelling}} A color.")
	assert.True(t, ok)
	assert.Equal(t, "en-US", r)

	r, ok = tax.FindSpellingRegion("# {{lb|en|informal|British spelling}} A colour.")
	assert.True(t, ok)
	assert.Equal(t, "en-GB", r)

	_, ok = tax.FindSpellingRegion("# {{lb|en|informal}} A thing.")
	assert.False(t, ok)
}
