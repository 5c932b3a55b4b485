package wiktscan

import (
	"regexp"
	"sort"
	"strings"
)

var contextLabelRE, headLabelRE *regexp.Regexp

func init() {
	contextLabelRE = regexp.MustCompile(`(?i)\{\{(?:lb|label|context)\|en\|([^}]+)\}\}`)
	headLabelRE = regexp.MustCompile(`(?i)\{\{(?:tlb|lb)\|en\|([^}]+)\}\}`)
}

// SenseLabels are the label tags of a single definition line.  Each
// list is sorted and free of duplicates.
type SenseLabels struct {
	Register []string
	Temporal []string
	Domain   []string
	Region   []string
}

// ClassifyLabels sorts the {{lb|en|...}} labels of a definition line
// into register, temporal, domain and region tags.
//
// A label is checked against each vocabulary in that order and lands
// in the first one that knows it.  Region labels are reported as their
// region code.  Unknown labels are dropped.
func (t *Taxonomy) ClassifyLabels(line string) SenseLabels {
	register, temporal, domain, region := map[string]bool{}, map[string]bool{}, map[string]bool{}, map[string]bool{}

	for _, m := range contextLabelRE.FindAllStringSubmatch(StripComments(line), -1) {
		for _, label := range splitLabels(m[1]) {
			switch {
			case t.register[label]:
				register[label] = true
			case t.temporal[label]:
				temporal[label] = true
			case t.domain[label]:
				domain[label] = true
			default:
				if code, ok := t.region[label]; ok {
					region[code] = true
				}
			}
		}
	}

	return SenseLabels{
		Register: sortedKeys(register),
		Temporal: sortedKeys(temporal),
		Domain:   sortedKeys(domain),
		Region:   sortedKeys(region),
	}
}

// FindSpellingRegion returns the region code of the first spelling label
// ("American spelling", ...) in a {{tlb|en|...}} or {{lb|en|...}}.
func (t *Taxonomy) FindSpellingRegion(text string) (string, bool) {
	for _, m := range headLabelRE.FindAllStringSubmatch(text, -1) {
		for _, label := range strings.Split(m[1], "|") {
			if r, ok := t.SpellingRegion(label); ok {
				return r, true
			}
		}
	}
	return "", false
}

func splitLabels(s string) []string {
	var rv []string
	for _, part := range strings.Split(s, "|") {
		for _, label := range strings.Split(part, ",") {
			label = strings.ToLower(strings.TrimSpace(label))
			if label != "" {
				rv = append(rv, label)
			}
		}
	}
	return rv
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	rv := make([]string, 0, len(m))
	for k := range m {
		rv = append(rv, k)
	}
	sort.Strings(rv)
	return rv
}
