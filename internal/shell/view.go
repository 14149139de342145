package shell

import (
	"fmt"
	"io"

	"github.com/jonathan/docorator/internal/draft"
	"github.com/jonathan/docorator/internal/form"
	"github.com/jonathan/docorator/internal/observability"
	"github.com/jonathan/docorator/internal/types"
)

// TextView renders controller notifications as plain text.
type TextView struct {
	out     io.Writer
	printer *observability.Printer
	// Quiet suppresses list re-renders; alerts and results are always shown.
	Quiet bool
}

// NewTextView creates a TextView writing to out.
func NewTextView(out io.Writer) *TextView {
	return &TextView{out: out, printer: observability.NewPrinter(out)}
}

func (v *TextView) KindChanged(kind types.DocType) {
	fmt.Fprintf(v.out, "Editing %s (fields: %v)\n", kind.Label(), kind.Fields())
}

func (v *TextView) ModeChanged(mode types.Mode) {
	fmt.Fprintf(v.out, "%s: %s\n", mode.Title(), mode.Description())
}

func (v *TextView) ListChanged(list draft.ListName, items []draft.Item) {
	if v.Quiet {
		return
	}
	v.printer.PrintList(list, items)
}

func (v *TextView) Alert(message string) {
	fmt.Fprintf(v.out, "! %s\n", message)
}

func (v *TextView) Busy(busy bool) {
	if busy {
		fmt.Fprintln(v.out, "Working...")
	}
}

func (v *TextView) ArtifactReady(a *form.Artifact) {
	v.printer.PrintArtifact(a)
	fmt.Fprintf(v.out, "Saved to %s\n", a.Path)
}
