package letters

import (
	"strings"

	"github.com/jonathan/invitation-letters/internal/collective"
	"github.com/jonathan/invitation-letters/internal/grammar"
	"github.com/jonathan/invitation-letters/internal/types"
)

// Assembler builds the flat GroupDocument of a group.
type Assembler struct {
	dict     *grammar.Dictionary
	resolver *collective.Resolver
}

// NewAssembler creates an Assembler. A nil dict uses the embedded dictionary.
func NewAssembler(dict *grammar.Dictionary) *Assembler {
	if dict == nil {
		dict = grammar.Default()
	}
	return &Assembler{dict: dict, resolver: collective.NewResolver(dict)}
}

// Assemble merges the group's location with the collective titles of its
// members. A responsible person is removed from the members by identifier and
// cited only in the responsibility line.
func (a *Assembler) Assemble(group types.Group, responsible *types.Employee) types.GroupDocument {
	members := group.Members
	line := ""
	if responsible != nil {
		members = excludeID(members, responsible.ID)
		line = a.ResponsibilityLine(*responsible)
	}

	return types.GroupDocument{
		CollectiveTitles:   a.resolver.Resolve(members),
		Group:              group.Key,
		WorkLocation:       group.Key.WorkLocation,
		Division:           group.Key.Division,
		Employees:          members,
		ResponsibilityLine: line,
		Responsible:        responsible,
	}
}

// ResponsibilityLine is the singular honorific of e followed by e's job title.
func (a *Assembler) ResponsibilityLine(e types.Employee) string {
	honorific := a.dict.Honorifics.Form(e.Gender, grammar.Singular)
	return strings.TrimSpace(honorific + " " + e.JobTitle)
}

func excludeID(members []types.Employee, id int64) []types.Employee {
	out := make([]types.Employee, 0, len(members))
	for _, m := range members {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}
