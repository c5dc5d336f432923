// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/invitation-letters/internal/grouping"
	"github.com/jonathan/invitation-letters/internal/importer"
	"github.com/jonathan/invitation-letters/internal/letters"
	"github.com/jonathan/invitation-letters/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Widths count runes.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintGroups outputs the document data of each group and the excluded records.
func (p *Printer) PrintGroups(docs []types.GroupDocument, skipped []grouping.Skipped) {
	for i, doc := range docs {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Members:     %d (%d male, %d female)\n", doc.Total, doc.MaleCount, doc.FemaleCount))
		sb.WriteString(fmt.Sprintf("Title:       %s\n", doc.CollectiveTitle))
		sb.WriteString(fmt.Sprintf("Pronoun:     %s\n", doc.ContextualPronoun))
		sb.WriteString(fmt.Sprintf("Job title:   %s\n", doc.AgreedJobTitle))
		if doc.ResponsibilityLine != "" {
			sb.WriteString(fmt.Sprintf("Responsible: %s", doc.ResponsibilityLine))
			if doc.Responsible != nil {
				sb.WriteString(fmt.Sprintf(" (%s, #%d)", doc.Responsible.FullName, doc.Responsible.ID))
			}
			sb.WriteString("\n")
		}
		p.printBox(fmt.Sprintf("GROUP %d: %s", i+1, doc.Key()), strings.TrimSuffix(sb.String(), "\n"))
	}

	if len(skipped) > 0 {
		p.PrintSkipped(skipped)
	}
}

// PrintSkipped lists invitees excluded from grouping.
func (p *Printer) PrintSkipped(skipped []grouping.Skipped) {
	if len(skipped) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(skipped), maxItemsToShow)
	for _, s := range skipped[:count] {
		sb.WriteString(fmt.Sprintf("  • #%d %s: %s\n", s.Employee.ID, s.Employee.FullName, s.Reason))
	}
	if len(skipped) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skipped)-maxItemsToShow))
	}
	p.printBox(fmt.Sprintf("EXCLUDED INVITEES (%d)", len(skipped)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs a summary of a generation run.
func (p *Printer) PrintReport(report *letters.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", report.RunID))
	sb.WriteString(fmt.Sprintf("Status:    %s\n", report.Status))
	if !report.FinishedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Duration:  %s\n", report.FinishedAt.Sub(report.StartedAt).Round(1e6)))
	}
	sb.WriteString(fmt.Sprintf("Letters:   %d\n", len(report.Artifacts)))
	if report.Error != "" {
		sb.WriteString(fmt.Sprintf("Error:     %s\n", report.Error))
	}

	if len(report.Artifacts) > 0 {
		sb.WriteString("\n")
		count := min(len(report.Artifacts), maxItemsToShow)
		for _, a := range report.Artifacts[:count] {
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", a.Path, a.Members))
		}
		if len(report.Artifacts) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Artifacts)-maxItemsToShow))
		}
	}

	p.printBox("GENERATION REPORT", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintSkipped(report.Skipped)
}

// PrintImport outputs a summary of a roster import.
func (p *Printer) PrintImport(result *importer.RosterResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Imported:  %d\n", len(result.Employees)))
	sb.WriteString(fmt.Sprintf("Rejected:  %d\n", len(result.Rejected)))
	count := min(len(result.Rejected), maxItemsToShow)
	for _, r := range result.Rejected[:count] {
		sb.WriteString(fmt.Sprintf("  • record %d (#%d): %s\n", r.Index, r.EmployeeID, r.Reason))
	}
	if len(result.Rejected) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Rejected)-maxItemsToShow))
	}

	p.printBox("ROSTER IMPORT", strings.TrimSuffix(sb.String(), "\n"))
}
