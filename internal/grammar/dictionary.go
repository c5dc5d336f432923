package grammar

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jonathan/invitation-letters/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed dictionary.yaml
var defaultDictionary []byte

// Cardinality is the grammatical number selected by a count.
type Cardinality int

const (
	CardinalityNone Cardinality = iota
	Singular
	Dual
	Plural
)

// CardinalityOf buckets a count: 1 is singular, 2 is dual, anything above is plural.
func CardinalityOf(n int) Cardinality {
	switch {
	case n <= 0:
		return CardinalityNone
	case n == 1:
		return Singular
	case n == 2:
		return Dual
	default:
		return Plural
	}
}

// Forms holds the three number forms of one gender branch.
type Forms struct {
	Singular string `yaml:"singular" json:"singular"`
	Dual     string `yaml:"dual" json:"dual"`
	Plural   string `yaml:"plural" json:"plural"`
}

// For returns the form for c, or "" for CardinalityNone.
func (f Forms) For(c Cardinality) string {
	switch c {
	case Singular:
		return f.Singular
	case Dual:
		return f.Dual
	case Plural:
		return f.Plural
	default:
		return ""
	}
}

func (f Forms) complete() bool {
	return f.Singular != "" && f.Dual != "" && f.Plural != ""
}

// Inflections holds masculine and feminine forms of a word.
type Inflections struct {
	Masculine Forms `yaml:"masculine" json:"masculine"`
	Feminine  Forms `yaml:"feminine" json:"feminine"`
}

// Form returns the inflection for gender g and number c. Unknown gender uses
// the masculine branch.
func (in Inflections) Form(g types.Gender, c Cardinality) string {
	if g == types.GenderFemale {
		return in.Feminine.For(c)
	}
	return in.Masculine.For(c)
}

// Entry is a job title keyed by its canonical masculine root.
type Entry struct {
	Key         string `yaml:"key" json:"key"`
	Inflections `yaml:",inline"`
	// Review carries a note for entries awaiting a native-language review.
	Review string `yaml:"review,omitempty" json:"review,omitempty"`
}

type document struct {
	Honorifics Inflections `yaml:"honorifics"`
	Pronouns   Inflections `yaml:"pronouns"`
	Titles     []Entry     `yaml:"titles"`
}

// Dictionary is an immutable lookup from canonical job titles to their
// inflected forms, together with the honorific and pronoun tables.
type Dictionary struct {
	Honorifics Inflections
	Pronouns   Inflections
	entries    []Entry
	index      map[string]int
}

// Parse decodes a YAML dictionary document and checks every entry is complete.
func Parse(data []byte) (*Dictionary, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}

	if !doc.Honorifics.Masculine.complete() || !doc.Honorifics.Feminine.complete() {
		return nil, &LoadError{Message: "honorifics must define all six forms"}
	}
	if !doc.Pronouns.Masculine.complete() || !doc.Pronouns.Feminine.complete() {
		return nil, &LoadError{Message: "pronouns must define all six forms"}
	}

	d := &Dictionary{
		Honorifics: doc.Honorifics,
		Pronouns:   doc.Pronouns,
		entries:    make([]Entry, 0, len(doc.Titles)),
		index:      make(map[string]int, len(doc.Titles)),
	}
	for i, e := range doc.Titles {
		e.Key = strings.TrimSpace(e.Key)
		if e.Key == "" {
			return nil, &LoadError{Message: fmt.Sprintf("title %d has an empty key", i)}
		}
		if !e.Masculine.complete() || !e.Feminine.complete() {
			return nil, &LoadError{Message: fmt.Sprintf("title %q must define all six forms", e.Key)}
		}
		if _, dup := d.index[e.Key]; dup {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate title %q", e.Key)}
		}
		d.index[e.Key] = len(d.entries)
		d.entries = append(d.entries, e)
	}
	return d, nil
}

// Load reads a dictionary document from path.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read file %s", path), Cause: err}
	}
	return Parse(data)
}

var loadDefault = sync.OnceValues(func() (*Dictionary, error) {
	return Parse(defaultDictionary)
})

// Default returns the embedded dictionary.
func Default() *Dictionary {
	d, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("embedded dictionary is invalid: %v", err))
	}
	return d
}

// Lookup returns the entry stored under a canonical key.
func (d *Dictionary) Lookup(key string) (Entry, bool) {
	i, ok := d.index[key]
	if !ok {
		return Entry{}, false
	}
	return d.entries[i], true
}

// Entries returns the entries in document order.
func (d *Dictionary) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// FlaggedForReview returns the entries carrying a review note.
func (d *Dictionary) FlaggedForReview() []Entry {
	var out []Entry
	for _, e := range d.entries {
		if e.Review != "" {
			out = append(out, e)
		}
	}
	return out
}
