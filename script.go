package wiktscan

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	latinExtendedLo = 0x00C0
	latinExtendedHi = 0x024F
	combiningLo     = 0x0300
	combiningHi     = 0x036F
)

// IsEnglishLike reports whether token is written in the Latin script an
// English headword would use.
//
// After NFC normalization the token must contain at least one letter,
// every letter must be ASCII or Latin extended (U+00C0-U+024F), and the
// only whitespace allowed is the ordinary space.  Ampersands,
// semicolons and angle brackets reject the token outright, as do
// combining marks and anything outside the Basic Multilingual Plane.
func IsEnglishLike(token string) bool {
	s := norm.NFC.String(token)
	if strings.TrimSpace(s) == "" {
		return false
	}

	sawLetter := false
	for _, r := range s {
		switch {
		case r == ' ':
			continue
		case unicode.IsSpace(r):
			return false
		case r == '&', r == ';', r == '<', r == '>':
			return false
		}

		if r < unicode.MaxASCII+1 {
			if unicode.IsLetter(r) {
				sawLetter = true
			}
			continue
		}

		switch {
		case unicode.IsLetter(r):
			if r < latinExtendedLo || r > latinExtendedHi {
				return false
			}
			sawLetter = true
		case isAllowedPunct(r):
		case r >= combiningLo && r <= combiningHi:
			return false
		case r > 0xFFFF:
			return false
		}
	}
	return sawLetter
}

func isAllowedPunct(r rune) bool {
	switch r {
	case '’', '\'', '‘', '-', '–', '.', '/':
		return true
	}
	return false
}
