package rendering

import (
	"html"
	"strings"
)

// latexReplacer escapes \ { } $ & % # ^ _ ~
var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX escapes special LaTeX characters in text
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}
	return latexReplacer.Replace(text)
}

// EscapeHTML escapes text for HTML element and attribute content.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

func noEscape(text string) string { return text }

// escaperFor picks the escape function for an artifact extension.
func escaperFor(ext string) func(string) string {
	switch strings.ToLower(ext) {
	case ".tex":
		return EscapeLaTeX
	case ".html", ".htm", ".xml":
		return EscapeHTML
	default:
		return noEscape
	}
}
