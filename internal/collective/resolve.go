// Package collective builds the grammatically agreed collective designations
// (titles, names, pronoun and job title) for a group of invitees.
package collective

import (
	"strings"

	"github.com/jonathan/invitation-letters/internal/grammar"
	"github.com/jonathan/invitation-letters/internal/types"
)

const (
	// Preposition is attached to the first segment of a collective title.
	Preposition = "ب"
	// Connector coordinates the female segment after a male segment.
	Connector = "و"
	// NameSeparator joins full names.
	NameSeparator = " " + Connector
)

// Resolver derives CollectiveTitles from a group's members.
type Resolver struct {
	dict *grammar.Dictionary
}

// NewResolver creates a Resolver over dict. A nil dict uses the embedded dictionary.
func NewResolver(dict *grammar.Dictionary) *Resolver {
	if dict == nil {
		dict = grammar.Default()
	}
	return &Resolver{dict: dict}
}

// Resolve computes the collective designations for members. It does not
// modify members and its output depends only on their order and content.
func (r *Resolver) Resolve(members []types.Employee) types.CollectiveTitles {
	if len(members) == 0 {
		return types.CollectiveTitles{}
	}

	var males, females []types.Employee
	for _, m := range members {
		switch m.Gender {
		case types.GenderMale:
			males = append(males, m)
		case types.GenderFemale:
			females = append(females, m)
		}
	}

	maleTitle := r.segment(types.GenderMale, males)
	femaleTitle := r.segment(types.GenderFemale, females)
	if maleTitle != "" {
		maleTitle = Preposition + maleTitle
	}
	if femaleTitle != "" {
		if maleTitle != "" {
			femaleTitle = Connector + femaleTitle
		} else {
			femaleTitle = Preposition + femaleTitle
		}
	}

	total := len(members)
	gender := agreementGender(members, len(males), len(females))
	number := grammar.CardinalityOf(total)

	return types.CollectiveTitles{
		City:                  members[0].City,
		MaleCollectiveTitle:   maleTitle,
		FemaleCollectiveTitle: femaleTitle,
		CollectiveTitle:       joinNonEmpty(maleTitle, femaleTitle),
		ContextualPronoun:     r.dict.Pronouns.Form(gender, number),
		AgreedJobTitle:        r.agreedJobTitle(members[0].JobTitle, gender, number),
		InviteeNames:          joinNames(members),
		MaleCount:             len(males),
		FemaleCount:           len(females),
		Total:                 total,
	}
}

// segment renders one gender partition as honorific plus joined names.
func (r *Resolver) segment(g types.Gender, members []types.Employee) string {
	if len(members) == 0 {
		return ""
	}
	honorific := r.dict.Honorifics.Form(g, grammar.CardinalityOf(len(members)))
	return honorific + " " + joinNames(members)
}

// agreedJobTitle inflects the representative title, or returns it verbatim
// when it is not in the dictionary.
func (r *Resolver) agreedJobTitle(title string, g types.Gender, n grammar.Cardinality) string {
	entry, ok := r.dict.Lookup(r.dict.Normalize(title))
	if !ok {
		return title
	}
	return entry.Form(g, n)
}

// agreementGender picks the gender that pronouns and titles agree with. A
// single member decides alone, a pair is feminine only when both are female,
// and larger groups are masculine as soon as one male is present.
func agreementGender(members []types.Employee, males, females int) types.Gender {
	switch len(members) {
	case 1:
		if members[0].Gender == types.GenderFemale {
			return types.GenderFemale
		}
		return types.GenderMale
	case 2:
		if females == 2 {
			return types.GenderFemale
		}
		return types.GenderMale
	default:
		if males == 0 && females > 0 {
			return types.GenderFemale
		}
		return types.GenderMale
	}
}

func joinNames(members []types.Employee) string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.FullName
	}
	return strings.Join(names, NameSeparator)
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
