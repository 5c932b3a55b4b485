package wiktscan

import (
	"regexp"
	"strings"
)

var commentRE, escapedCommentRE, wikilinkRE, tagRE *regexp.Regexp

var entityReplacer = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")

func init() {
	commentRE = regexp.MustCompile(`(?s)<!--.*?-->`)
	escapedCommentRE = regexp.MustCompile(`(?s)&lt;!--.*?--&gt;`)
	wikilinkRE = regexp.MustCompile(`\[\[([^\]|]+)(?:\|[^\]]+)?\]\]`)
	tagRE = regexp.MustCompile(`<[^>]+>`)
}

// StripComments removes html comments from wikitext, whether or not
// the dump left them entity-escaped.
func StripComments(text string) string {
	if strings.Contains(text, "&lt;!--") {
		text = escapedCommentRE.ReplaceAllString(text, "")
	}
	if strings.Contains(text, "<!--") {
		text = commentRE.ReplaceAllString(text, "")
	}
	return text
}

// stripWikilinks reduces [[target]] and [[target|display]] to target
// and drops any stray closing brackets.
func stripWikilinks(s string) string {
	if !strings.Contains(s, "[[") && !strings.Contains(s, "]]") {
		return s
	}
	s = wikilinkRE.ReplaceAllString(s, "$1")
	return strings.ReplaceAll(s, "]]", "")
}

func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entityReplacer.Replace(s)
}

// cleanLemma reduces the first argument of an inflection template to a
// bare word: anchors, links, and nested templates are removed.
func cleanLemma(raw string) string {
	s := raw
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}

	for {
		start := strings.Index(s, "[[")
		if start < 0 {
			break
		}
		end := strings.Index(s[start:], "]]")
		if end < 0 {
			s = s[:start]
			break
		}
		target := s[start+2 : start+end]
		if i := strings.IndexByte(target, '|'); i >= 0 {
			target = target[:i]
		}
		// [[:en:word]]
		target = strings.TrimLeft(target, ":")
		if i := strings.LastIndexByte(target, ':'); i >= 0 {
			target = target[i+1:]
		}
		s = s[:start] + target + s[start+end+2:]
	}
	s = strings.ReplaceAll(s, "]]", "")

	for {
		start := strings.Index(s, "{{")
		if start < 0 {
			break
		}
		end := strings.Index(s[start:], "}}")
		if end < 0 {
			s = s[:start]
			break
		}
		s = s[:start] + s[start+end+2:]
	}
	s = strings.ReplaceAll(s, "}}", "")
	s = strings.ReplaceAll(s, "//", "")

	return strings.TrimSpace(s)
}
