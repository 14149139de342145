package form

import (
	"github.com/jonathan/docorator/internal/draft"
	"github.com/jonathan/docorator/internal/types"
)

// View is the surface the controller reports to. Every method is a
// notification; the controller never reads from the view.
type View interface {
	// KindChanged asks the view to show only the input group of kind.
	KindChanged(kind types.DocType)
	// ModeChanged asks the view to update the mode banner.
	ModeChanged(mode types.Mode)
	// ListChanged delivers a fresh render of a list after any mutation.
	ListChanged(list draft.ListName, items []draft.Item)
	// Alert shows a message to the user.
	Alert(message string)
	// Busy disables or re-enables the triggering control.
	Busy(busy bool)
	// ArtifactReady exposes the downloadable result of a submission.
	ArtifactReady(a *Artifact)
}

// NopView ignores every notification. Embed it to implement part of View.
type NopView struct{}

func (NopView) KindChanged(types.DocType) {}
func (NopView) ModeChanged(types.Mode) {}
func (NopView) ListChanged(draft.ListName, []draft.Item) {}
func (NopView) Alert(string) {}
func (NopView) Busy(bool) {}
func (NopView) ArtifactReady(*Artifact) {}
