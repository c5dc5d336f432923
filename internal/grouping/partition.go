// Package grouping partitions the invited list by location and finds the
// responsible person of each group in the roster.
package grouping

import (
	"fmt"
	"strings"

	"github.com/jonathan/invitation-letters/internal/types"
)

// ResponsibilityKeywords mark a supervisory post.
var ResponsibilityKeywords = []string{"رئيس", "رئيسة", "وكيل", "وكيلة"}

// Skipped is an invited record left out of grouping, with the reason.
type Skipped struct {
	Employee types.Employee `json:"employee"`
	Reason   string         `json:"reason"`
}

// Partition groups the invited list by (work location, division, city) in a
// single order-preserving pass. Groups appear in first-seen order and members
// keep their invited-list order. Records without an identifier or a known
// gender, and repeated identifiers, are returned as skipped.
func Partition(invited []types.Employee) ([]types.Group, []Skipped) {
	var (
		groups  []types.Group
		skipped []Skipped
		index   = make(map[types.GroupKey]int)
		seen    = make(map[int64]struct{}, len(invited))
	)

	for _, e := range invited {
		if reason := malformed(e); reason != "" {
			skipped = append(skipped, Skipped{Employee: e, Reason: reason})
			continue
		}
		if _, dup := seen[e.ID]; dup {
			skipped = append(skipped, Skipped{Employee: e, Reason: fmt.Sprintf("duplicate employee id %d", e.ID)})
			continue
		}
		seen[e.ID] = struct{}{}

		key := e.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, types.Group{Key: key})
		}
		groups[i].Members = append(groups[i].Members, e)
	}

	return groups, skipped
}

func malformed(e types.Employee) string {
	switch {
	case e.ID <= 0:
		return "missing employee id"
	case e.Gender == types.GenderUnknown:
		return "missing gender"
	default:
		return ""
	}
}

// IsResponsible reports whether a post responsibility contains one of the
// responsibility keywords.
func IsResponsible(postResponsibility string) bool {
	post := strings.TrimSpace(postResponsibility)
	if post == "" {
		return false
	}
	for _, kw := range ResponsibilityKeywords {
		if strings.Contains(post, kw) {
			return true
		}
	}
	return false
}

// FindResponsible returns the first roster employee, in roster order, whose
// key equals key and whose post responsibility is supervisory.
func FindResponsible(roster []types.Employee, key types.GroupKey) (types.Employee, bool) {
	for _, e := range roster {
		if e.Key() == key && IsResponsible(e.PostResponsibility) {
			return e, true
		}
	}
	return types.Employee{}, false
}
