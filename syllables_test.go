package wiktscan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountIPASyllables(t *testing.T) {
	t.Parallel()
	tests := []struct {
		ipa string
		exp int
	}{
		{"kæt", 1},
		{"ˈkæt", 1},
		{"kiːp", 1},
		{"baɪt", 1},
		{"ˈhæpinəs", 3},
		{"ˈdɪkʃəˌnɛɹi", 4},
		{"ˈbʌtn\u0329", 2},
		{"ˈbɝːd", 1},
		{"ʃ", 0},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, CountIPASyllables(test.ipa), test.ipa)
	}
}

func TestEstimateSyllables(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		exp  int
		ok   bool
	}{
		{"rhymes", "* {{rhymes|en|æt|s=1}}", 1, true},
		{"ipa", "* {{IPA|en|/ˈdɪkʃəˌnɛɹi/|/ˈdɪkʃənəɹi/}}", 4, true},
		{"ipa brackets", "* {{IPA|en|[ˈkæt]}}", 1, true},
		{"category", "[[Category:English 3-syllable words]]", 3, true},
		{"hyphenation", "* {{hyphenation|en|dic|tion|a|ry}}", 4, true},
		{"hyphenation alternatives", "* {{hyph|en|dic|tion|a|ry||dic|tion|ary}}", 4, true},
		{"hyphenation short word", "* {{hyph|en|cat}}", 1, true},
		{"hyphenation unsplit", "* {{hyph|en|dictionary}}", 0, false},
		{"rhymes first", "{{IPA|en|/ˈhæpinəs/}} {{rhymes|en|æpinəs|s=2}}", 2, true},
		{"ipa before category", "{{IPA|en|/kæt/}} [[Category:English 2-syllable words]]", 1, true},
		{"nothing", "===Noun===\n# A thing.", 0, false},
	}
	for _, test := range tests {
		n, ok := EstimateSyllables(test.text)
		assert.Equal(t, test.ok, ok, test.name)
		assert.Equal(t, test.exp, n, test.name)
	}
}

func TestSyllableSources(t *testing.T) {
	t.Parallel()
	rep, ok := SyllableSources("happiness",
		"{{IPA|en|/ˈhæpinəs/}} {{rhymes|en|æpinəs|s=3}} {{hyphenation|en|hap|pi|ness}}")
	require.True(t, ok)
	require.NotNil(t, rep.Final)
	assert.Equal(t, 3, *rep.Final)
	assert.False(t, rep.Disagreement)
	assert.Nil(t, rep.Category)

	rep, ok = SyllableSources("fire",
		"{{IPA|en|/ˈfaɪə/}} {{rhymes|en|aɪə(ɹ)|s=1}} [[Category:English 2-syllable words]]")
	require.True(t, ok)
	assert.Equal(t, 1, *rep.Final)
	assert.True(t, rep.Disagreement)

	_, ok = SyllableSources("x", "# nothing")
	assert.False(t, ok)
}

func TestSyllableReportJSON(t *testing.T) {
	one := 1
	b, err := json.Marshal(SyllableReport{Word: "cat", Rhymes: &one, Final: &one})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"cat","rhymes":1,"ipa":null,"category":null,
		"hyphenation":null,"final_value":1,"has_disagreement":false}`, string(b))
}
