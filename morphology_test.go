package wiktscan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func etymology(body string) string {
	return "===Etymology===\n" + body + "\n\n===Noun===\n# A thing.\n"
}

func TestExtractMorphology(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		exp  *Morphology
	}{
		{
			"suffix", etymology("From {{suffix|en|happy|ness}}."),
			&Morphology{
				Kind: KindSuffixed, Base: "happy",
				Components: []string{"happy", "-ness"},
				Prefixes:   []string{}, Suffixes: []string{"-ness"},
				Template: "{{suffix|en|happy|ness}}",
			},
		},
		{
			"prefix", etymology("{{prefix|en|un|[[do]]}}"),
			&Morphology{
				Kind: KindPrefixed, Base: "do",
				Components: []string{"un-", "do"},
				Prefixes:   []string{"un-"}, Suffixes: []string{},
				Template: "{{prefix|en|un|[[do]]}}",
			},
		},
		{
			"confix", etymology("{{confix|en|en|light|ment}}"),
			&Morphology{
				Kind: KindCircumfixed, Base: "light",
				Components: []string{"en-", "light", "-ment"},
				Prefixes:   []string{"en-"}, Suffixes: []string{"-ment"},
				Template: "{{confix|en|en|light|ment}}",
			},
		},
		{
			"compound", etymology("{{compound|en|black|bird}}"),
			&Morphology{
				Kind:       KindCompound,
				Components: []string{"black", "bird"},
				Prefixes:   []string{}, Suffixes: []string{},
				IsCompound: true,
				Template:   "{{compound|en|black|bird}}",
			},
		},
		{
			"affix", etymology("{{af|en|un-|happy|-ness|pos=noun}}"),
			&Morphology{
				Kind: KindAffixed, Base: "happy",
				Components: []string{"un-", "happy", "-ness"},
				Prefixes:   []string{"un-"}, Suffixes: []string{"-ness"},
				Template: "{{af|en|un-|happy|-ness|pos=noun}}",
			},
		},
		{
			"interfix", etymology("{{affix|en|speed|-o-|meter}}"),
			&Morphology{
				Kind:       KindCompound,
				Components: []string{"speed", "-o-", "meter"},
				Prefixes:   []string{}, Suffixes: []string{},
				Interfixes: []string{"-o-"},
				IsCompound: true,
				Template:   "{{affix|en|speed|-o-|meter}}",
			},
		},
		{
			"surf", etymology("{{surf|en|[[bio-]]|-logy}}"),
			&Morphology{
				Kind:       KindAffixed,
				Components: []string{"bio-", "-logy"},
				Prefixes:   []string{"bio-"}, Suffixes: []string{"-logy"},
				Template: "{{surf|en|[[bio-]]|-logy}}",
			},
		},
		{"foreign parts only", etymology("{{af|en|grc:λόγος|-logy}}"), nil},
		{"single component", etymology("{{af|en|happy}}"), nil},
		{"no template", etymology("From Old English."), nil},
		{"no etymology", "===Noun===\n# {{suffix|en|happy|ness}}", nil},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, ExtractMorphology(test.text), test.name)
	}
}

func TestExtractMorphologyFirstEtymologyOnly(t *testing.T) {
	text := "===Etymology 1===\nFrom Old English.\n\n===Etymology 2===\n{{suffix|en|bear|ish}}\n"
	assert.Nil(t, ExtractMorphology(text))
}

func TestCleanComponents(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in  []string
		exp []string
	}{
		{[]string{"bi-", "gloss1=two", "-illion"}, []string{"bi-", "-illion"}},
		{[]string{"grc:πλαγκτός", "drifter", "-on"}, []string{"drifter", "-on"}},
		{[]string{"foo", "-", "bar"}, []string{"foo", "bar"}},
		{[]string{" speed ", "-o-", "meter"}, []string{"speed", "-o-", "meter"}},
		{[]string{"word&lt;t:gloss&gt;", "[[thing]]", "]]"}, []string{"word", "thing"}},
		{[]string{"", "|", "&lt;id:x&gt;"}, nil},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, cleanComponents(test.in), "%q", test.in)
	}
}

func TestExtractMorphologyBareJoiner(t *testing.T) {
	m := ExtractMorphology(etymology("{{af|en|foo|-|bar}}"))
	require.NotNil(t, m)
	assert.Equal(t, KindCompound, m.Kind)
	assert.Equal(t, []string{"foo", "bar"}, m.Components)
	assert.Empty(t, m.Interfixes)
}

func TestMorphologyKindMatchesAffixes(t *testing.T) {
	t.Parallel()
	sets := [][]string{
		{"un-", "do"}, {"do", "-er"}, {"un-", "do", "-able"},
		{"black", "bird"}, {"speed", "-o-", "meter"}, {"re-", "un-", "do"},
		{"-o-", "x"}, {"lone"},
	}
	for _, components := range sets {
		m := classifyMorphology(components, "")
		if m == nil {
			continue
		}
		hasPrefix, hasSuffix := len(m.Prefixes) > 0, len(m.Suffixes) > 0
		switch m.Kind {
		case KindAffixed:
			assert.True(t, hasPrefix && hasSuffix, "%v", components)
		case KindPrefixed:
			assert.True(t, hasPrefix && !hasSuffix, "%v", components)
		case KindSuffixed:
			assert.True(t, !hasPrefix && hasSuffix, "%v", components)
		case KindCompound:
			assert.True(t, m.IsCompound, "%v", components)
			assert.False(t, hasPrefix || hasSuffix, "%v", components)
		}
		for _, p := range m.Prefixes {
			assert.True(t, strings.HasSuffix(p, Joiner))
		}
		for _, s := range m.Suffixes {
			assert.True(t, strings.HasPrefix(s, Joiner))
		}
	}
	require.Nil(t, classifyMorphology([]string{"lone"}, ""))
	require.Nil(t, classifyMorphology([]string{"-o-", "x"}, ""))
}
