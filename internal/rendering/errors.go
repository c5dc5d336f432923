// Package rendering fills document templates with group data and writes one
// artifact per group.
package rendering

import "fmt"

// TemplateError represents an error reading, parsing or executing a template
type TemplateError struct {
	Path    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	where := ""
	if e.Path != "" {
		where = " (" + e.Path + ")"
	}
	if e.Cause != nil {
		return fmt.Sprintf("template error%s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error%s: %s", where, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure writing a rendered artifact
type RenderError struct {
	Artifact string
	Message  string
	Cause    error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s %s: %v", e.Message, e.Artifact, e.Cause)
	}
	return fmt.Sprintf("render error: %s %s", e.Message, e.Artifact)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
