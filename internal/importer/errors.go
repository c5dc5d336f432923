// Package importer reads roster files and invited-ID spreadsheets into
// employee records and identifier lists.
package importer

import "fmt"

// ImportError represents a file that could not be read or parsed.
type ImportError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("import error for %s: %s", e.Path, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}
