package wiktscan

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy/default.yaml
var defaultTaxonomyYAML []byte

// A POSClass groups the section headers that name one part of speech.
type POSClass struct {
	Code     string   `yaml:"code"`
	Name     string   `yaml:"name"`
	Variants []string `yaml:"variants"`
}

// TaxonomyFile is the on-disk form of a Taxonomy.
type TaxonomyFile struct {
	POSClasses          []POSClass        `yaml:"pos_classes"`
	RegisterLabels      []string          `yaml:"register_labels"`
	TemporalLabels      []string          `yaml:"temporal_labels"`
	DomainLabels        []string          `yaml:"domain_labels"`
	RegionLabels        map[string]string `yaml:"region_labels"`
	SpellingLabels      map[string]string `yaml:"spelling_labels"`
	SpecialPagePrefixes []string          `yaml:"special_page_prefixes"`
}

// A Taxonomy is the lookup table behind every classification.
//
// It is built once and never modified, so a single value may be shared
// by any number of goroutines.
type Taxonomy struct {
	pos             map[string]string
	register        map[string]bool
	temporal        map[string]bool
	domain          map[string]bool
	region          map[string]string
	spelling        map[string]string
	specialPrefixes []string
}

// ErrEmptyTaxonomy is returned when a taxonomy defines no parts of speech.
var ErrEmptyTaxonomy = errors.New("taxonomy defines no part-of-speech classes")

// NewTaxonomy builds a Taxonomy from its file form.
func NewTaxonomy(f TaxonomyFile) (*Taxonomy, error) {
	if len(f.POSClasses) == 0 {
		return nil, ErrEmptyTaxonomy
	}
	t := &Taxonomy{
		pos:             map[string]string{},
		register:        toSet(f.RegisterLabels),
		temporal:        toSet(f.TemporalLabels),
		domain:          toSet(f.DomainLabels),
		region:          lowerKeys(f.RegionLabels),
		spelling:        lowerKeys(f.SpellingLabels),
		specialPrefixes: append([]string(nil), f.SpecialPagePrefixes...),
	}
	for _, c := range f.POSClasses {
		if c.Code == "" {
			return nil, fmt.Errorf("pos class %q has no code", c.Name)
		}
		for _, v := range c.Variants {
			t.pos[normalizeHeader(v)] = c.Code
		}
	}
	return t, nil
}

// ReadTaxonomy decodes a YAML taxonomy.
func ReadTaxonomy(r io.Reader) (*Taxonomy, error) {
	var f TaxonomyFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}
	return NewTaxonomy(f)
}

// LoadTaxonomy reads a YAML taxonomy from the named file.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: %w", err)
	}
	defer f.Close()
	t, err := ReadTaxonomy(f)
	if err != nil {
		return nil, fmt.Errorf("taxonomy %s: %w", path, err)
	}
	return t, nil
}

// DefaultTaxonomy returns the built-in taxonomy.
func DefaultTaxonomy() *Taxonomy {
	t, err := ReadTaxonomy(bytes.NewReader(defaultTaxonomyYAML))
	if err != nil {
		panic("built-in taxonomy: " + err.Error())
	}
	return t
}

// POSCode maps a section header to its part-of-speech code.
func (t *Taxonomy) POSCode(header string) (string, bool) {
	code, ok := t.pos[normalizeHeader(header)]
	return code, ok
}

// SpellingRegion maps a spelling label such as "American spelling" to
// a region code.
func (t *Taxonomy) SpellingRegion(label string) (string, bool) {
	r, ok := t.spelling[strings.ToLower(strings.TrimSpace(label))]
	return r, ok
}

// IsSpecialTitle reports whether a title starts with a reserved prefix.
func (t *Taxonomy) IsSpecialTitle(title string) bool {
	for _, p := range t.specialPrefixes {
		if strings.HasPrefix(title, p) {
			return true
		}
	}
	return false
}

func normalizeHeader(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func toSet(in []string) map[string]bool {
	rv := make(map[string]bool, len(in))
	for _, s := range in {
		rv[strings.ToLower(strings.TrimSpace(s))] = true
	}
	return rv
}

func lowerKeys(in map[string]string) map[string]string {
	rv := make(map[string]string, len(in))
	for k, v := range in {
		rv[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return rv
}
