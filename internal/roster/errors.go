// Package roster manages the invited list as an ordered, duplicate-free
// subset of the roster and hands read-only snapshots to the generator.
package roster

import (
	"fmt"
	"strings"
)

// NotInRosterError lists identifiers that do not belong to the roster.
type NotInRosterError struct {
	IDs []int64
}

func (e *NotInRosterError) Error() string {
	return fmt.Sprintf("employees not in roster: %s", joinIDs(e.IDs))
}

// DuplicateError lists identifiers that appear more than once in a roster import.
type DuplicateError struct {
	IDs []int64
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate employee ids: %s", joinIDs(e.IDs))
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
