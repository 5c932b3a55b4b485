package wiktscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEnglishLike(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in  string
		exp bool
	}{
		{"cat", true},
		{"ice cream", true},
		{"café", true},
		{"cafe\u0301", true}, // composes to é
		{"naïve", true},
		{"don't", true},
		{"rock’n’roll", true},
		{"T-shirt", true},
		{"A.M.", true},
		{"and/or", true},
		{"24/7 store", true},
		{"", false},
		{"   ", false},
		{"123", false},
		{"γάτα", false},
		{"кот", false},
		{"猫", false},
		{"R&D", false},
		{"a;b", false},
		{"<b>", false},
		{"tab\there", false},
		{"q\u0308", false}, // no precomposed form
		{"\U0001D538bc", false},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, IsEnglishLike(test.in), "%q", test.in)
	}
}
