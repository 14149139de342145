// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/docorator/internal/draft"
	"github.com/jonathan/docorator/internal/form"
	"github.com/jonathan/docorator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = clip(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func shorten(s string, n int) string {
	return clip(strings.Join(strings.Fields(s), " "), n)
}

// clip limits s to n runes, ending in "..." when cut.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// PrintDraft outputs the active document type, mode, filled fields and, for
// resumes, the list collections.
func (p *Printer) PrintDraft(d *draft.Draft, mode types.Mode) {
	if d == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:     %s\n", d.Kind().Label()))
	sb.WriteString(fmt.Sprintf("Mode:     %s\n", mode.Title()))
	sb.WriteString("\n")

	names := append(append([]string(nil), types.BaseFields...), d.Kind().Fields()...)
	filled := 0
	for _, name := range names {
		v, _ := d.Field(name)
		if v == "" {
			continue
		}
		filled++
		sb.WriteString(fmt.Sprintf("%-20s %s\n", name+":", shorten(v, 30)))
	}
	if filled == 0 {
		sb.WriteString("(no fields filled)\n")
	}

	if d.Kind().HasLists() {
		sb.WriteString("\n")
		for _, l := range draft.AllLists() {
			items, _ := d.Render(l)
			sb.WriteString(fmt.Sprintf("%s (%d)\n", l, len(items)))
			count := min(len(items), maxItemsToShow)
			for i := 0; i < count; i++ {
				sb.WriteString(fmt.Sprintf("  • %s\n", items[i].Summary))
			}
			if len(items) > maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
			}
		}
	}

	p.printBox("DRAFT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintList outputs every item of a list with its index for edit and delete actions.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintList(list draft.ListName, items []draft.Item) {
	if len(items) == 0 {
		fmt.Fprintf(p.out, "%s: (empty)\n", list)
		return
	}
	fmt.Fprintf(p.out, "%s:\n", list)
	for _, it := range items {
		fmt.Fprintf(p.out, "  [%d] %s\n", it.Index, it.Summary)
	}
}

// PrintDocuments outputs the user's generated documents.
func (p *Printer) PrintDocuments(docs []types.DocumentRecord) {
	if len(docs) == 0 {
		p.printBox("DOCUMENTS", "No documents yet")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total documents: %d\n\n", len(docs)))
	for _, doc := range docs {
		editable := ""
		if doc.InputData != nil {
			editable = " *"
		}
		created := doc.CreatedAt
		if len(created) > 10 {
			created = created[:10]
		}
		sb.WriteString(fmt.Sprintf("%-10s %-8s %s%s\n", created, doc.DocType, doc.ID, editable))
	}
	sb.WriteString("\n* editable")

	p.printBox("DOCUMENTS", sb.String())
}

// PrintArtifact outputs where a generated document was written.
func (p *Printer) PrintArtifact(a *form.Artifact) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:     %s\n", a.DocType.Label()))
	sb.WriteString(fmt.Sprintf("File:     %s\n", a.Filename))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes\n", a.Size))
	sb.WriteString(fmt.Sprintf("Format:   %s", a.ContentType))

	p.printBox("DOCUMENT READY", sb.String())
}
