// Package grammar holds the inflection tables for job titles, honorifics and
// pronouns, and resolves observed job titles to their canonical masculine root.
package grammar

import "fmt"

// LoadError represents an error reading or decoding a dictionary document
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dictionary load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("dictionary load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
