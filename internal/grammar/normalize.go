package grammar

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FeminineMarker is the ta marbuta ending that marks a feminine noun.
const FeminineMarker = 'ة'

// Normalize resolves an observed job title to its canonical masculine root.
//
// The title is returned unchanged when it is already a key. Otherwise the
// feminine forms of every entry are scanned for an exact match. Compound titles
// whose first word carries the feminine marker are retried with that marker
// removed. A title that matches nothing is returned as is, and callers are
// expected to use it verbatim.
func (d *Dictionary) Normalize(title string) string {
	if _, ok := d.index[title]; ok {
		return title
	}

	for _, e := range d.entries {
		f := e.Feminine
		if title == f.Singular || title == f.Dual || title == f.Plural {
			return e.Key
		}
	}

	if masculine, ok := masculinizeFirstWord(title); ok {
		if _, found := d.index[masculine]; found {
			return masculine
		}
	}

	return title
}

// Known reports whether a title normalizes to a dictionary entry.
func (d *Dictionary) Known(title string) bool {
	_, ok := d.index[d.Normalize(title)]
	return ok
}

// masculinizeFirstWord drops a trailing feminine marker from the first word.
func masculinizeFirstWord(title string) (string, bool) {
	first, rest := title, ""
	if i := strings.IndexFunc(title, unicode.IsSpace); i >= 0 {
		first, rest = title[:i], title[i:]
	}

	last, size := utf8.DecodeLastRuneInString(first)
	if last != FeminineMarker || size == len(first) {
		return "", false
	}
	return first[:len(first)-size] + rest, true
}
