// Package letters assembles per-group document data and drives a generation
// run through the template renderer.
package letters

import (
	"fmt"

	"github.com/jonathan/invitation-letters/internal/types"
)

// GenerationError reports the group whose rendering stopped a run.
type GenerationError struct {
	Key     types.GroupKey
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation error for group %s: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation error for group %s: %s", e.Key, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
