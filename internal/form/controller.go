// Package form implements the draft form controller: it owns the in-memory
// draft, applies user actions to it, builds the generate payload, submits it
// and rehydrates drafts of previously generated documents for editing.
//
// The controller only exposes data-in/data-out operations and reports to a
// View; it has no dependency on any concrete UI.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/docorator/internal/api"
	"github.com/jonathan/docorator/internal/draft"
	"github.com/jonathan/docorator/internal/types"
)

var (
	// ErrBusy is returned when a network operation is already in flight.
	ErrBusy = errors.New("another request is in progress")
	// ErrNoInputData is returned when a document was generated before input data was retained.
	ErrNoInputData = errors.New("document has no saved input data")
)

const noInputDataMessage = "This document is too old to be edited (no saved input data)."

// Backend is the part of the API the controller talks to.
type Backend interface {
	Generate(ctx context.Context, p types.Payload) (*api.Blob, error)
	GetDocument(ctx context.Context, id string) (*types.DocumentRecord, error)
}

// Authenticator reports whether a credential is present, redirecting to
// login when asked to.
type Authenticator interface {
	RequireAuth(redirectOnMissing bool) bool
}

// Options configures a Controller.
type Options struct {
	// ArtifactDir is where submitted documents are written. Defaults to ".".
	ArtifactDir string
	// View receives notifications. Defaults to NopView.
	View View
	// Now is the clock used to name artifacts. Defaults to time.Now.
	Now func() time.Time
}

// Controller owns a single draft and the form state around it.
// Its methods are meant to be called from one goroutine; only the busy
// flag is safe for concurrent use.
type Controller struct {
	backend Backend
	auth    Authenticator
	view    View
	now     func() time.Time
	dir     string

	draft     *draft.Draft
	mode      types.Mode
	aiContext string
	inputs    Inputs
	artifact  *Artifact

	busy atomic.Bool
}

// New creates a controller holding an empty resume draft in manual mode.
func New(backend Backend, auth Authenticator, opts Options) *Controller {
	c := &Controller{
		backend: backend,
		auth:    auth,
		view:    opts.View,
		now:     opts.Now,
		dir:     opts.ArtifactDir,
		draft:   draft.New(),
		mode:    types.ModeManual,
	}
	if c.view == nil {
		c.view = NopView{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.dir == "" {
		c.dir = "."
	}
	return c
}

// Kind returns the active document type.
func (c *Controller) Kind() types.DocType {
	return c.draft.Kind()
}

// Mode returns the authoring mode.
func (c *Controller) Mode() types.Mode {
	return c.mode
}

// Field returns a base field or a field of the active document type.
func (c *Controller) Field(name string) (string, bool) {
	return c.draft.Field(name)
}

// Draft returns the controller's draft. Mutating it directly bypasses view
// notifications.
func (c *Controller) Draft() *draft.Draft {
	return c.draft
}

// Inputs returns a copy of the pending input groups.
func (c *Controller) Inputs() Inputs {
	return c.inputs
}

// Artifact returns the result of the last successful submission, or nil.
func (c *Controller) Artifact() *Artifact {
	return c.artifact
}

// Busy reports whether a network operation is in flight.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// SetDocumentKind switches the active document type. Lists and the fields of
// other types are kept.
func (c *Controller) SetDocumentKind(kind types.DocType) error {
	if err := c.draft.SetKind(kind); err != nil {
		return err
	}
	c.view.KindChanged(kind)
	return nil
}

// SetMode switches between manual and guided authoring.
func (c *Controller) SetMode(mode types.Mode) {
	c.mode = mode
	c.view.ModeChanged(mode)
}

// SetAIContext sets the free-text context sent with guided submissions.
func (c *Controller) SetAIContext(text string) {
	c.aiContext = text
}

// AIContext returns the guided-mode context text.
func (c *Controller) AIContext() string {
	return c.aiContext
}

// SetField sets a base field or a field of the active document type.
func (c *Controller) SetField(name, value string) error {
	return c.draft.SetField(name, value)
}

// SetInput fills a list's input group without committing it.
func (c *Controller) SetInput(list draft.ListName, entry any) error {
	return c.inputs.set(list, entry)
}

// AddListEntry fills the list's input group with entry and commits it.
func (c *Controller) AddListEntry(list draft.ListName, entry any) error {
	if err := c.SetInput(list, entry); err != nil {
		return err
	}
	return c.Commit(list)
}

// Commit validates the list's input group and stores it in the list.
//
// Skills and achievements that are empty after trimming are ignored without
// error. Structured entries missing a required field are reported through
// the view and returned as *draft.ValidationError; the list is not touched.
// On success the input group is cleared and the list re-rendered. A
// detached entry being edited goes back to its original position.
func (c *Controller) Commit(list draft.ListName) error {
	switch list {
	case draft.ListSkills:
		if v := strings.TrimSpace(c.inputs.Skill); v != "" {
			c.draft.Skills.Commit(v)
		} else {
			return nil
		}
	case draft.ListAchievements:
		if v := strings.TrimSpace(c.inputs.Achievement); v != "" {
			c.draft.Achievements.Commit(v)
		} else {
			return nil
		}
	case draft.ListExperience:
		e := c.inputs.Experience.entry()
		if err := c.validate(list, e); err != nil {
			return err
		}
		c.draft.Experience.Commit(e)
	case draft.ListProjects:
		p := trimProject(c.inputs.Project)
		if err := c.validate(list, p); err != nil {
			return err
		}
		c.draft.Projects.Commit(p)
	case draft.ListEducation:
		e := trimEducation(c.inputs.Education)
		if err := c.validate(list, e); err != nil {
			return err
		}
		c.draft.Education.Commit(e)
	default:
		return fmt.Errorf("%w: %q", draft.ErrUnknownList, list)
	}

	c.inputs.clear(list)
	c.refresh(list)
	return nil
}

func (c *Controller) validate(list draft.ListName, entry any) error {
	err := draft.ValidateEntry(list, entry)
	var verr *draft.ValidationError
	if errors.As(err, &verr) {
		c.view.Alert(verr.Message)
	}
	return err
}

// EditListEntry takes the entry out of its list and copies it into the
// list's input group. Committing the group puts it back in place.
func (c *Controller) EditListEntry(list draft.ListName, id uuid.UUID) error {
	switch list {
	case draft.ListSkills:
		v, err := c.draft.Skills.Detach(id)
		if err != nil {
			return err
		}
		c.inputs.Skill = v
	case draft.ListAchievements:
		v, err := c.draft.Achievements.Detach(id)
		if err != nil {
			return err
		}
		c.inputs.Achievement = v
	case draft.ListExperience:
		v, err := c.draft.Experience.Detach(id)
		if err != nil {
			return err
		}
		c.inputs.Experience = experienceInput(v)
	case draft.ListProjects:
		v, err := c.draft.Projects.Detach(id)
		if err != nil {
			return err
		}
		c.inputs.Project = v
	case draft.ListEducation:
		v, err := c.draft.Education.Detach(id)
		if err != nil {
			return err
		}
		c.inputs.Education = v
	default:
		return fmt.Errorf("%w: %q", draft.ErrUnknownList, list)
	}
	c.refresh(list)
	return nil
}

// RemoveListEntry deletes the entry without confirmation.
func (c *Controller) RemoveListEntry(list draft.ListName, id uuid.UUID) error {
	var err error
	switch list {
	case draft.ListSkills:
		err = c.draft.Skills.Remove(id)
	case draft.ListAchievements:
		err = c.draft.Achievements.Remove(id)
	case draft.ListExperience:
		err = c.draft.Experience.Remove(id)
	case draft.ListProjects:
		err = c.draft.Projects.Remove(id)
	case draft.ListEducation:
		err = c.draft.Education.Remove(id)
	default:
		err = fmt.Errorf("%w: %q", draft.ErrUnknownList, list)
	}
	if err != nil {
		return err
	}
	c.refresh(list)
	return nil
}

// RenderList returns the current display items of a list.
func (c *Controller) RenderList(list draft.ListName) ([]draft.Item, error) {
	return c.draft.Render(list)
}

func (c *Controller) refresh(list draft.ListName) {
	items, err := c.draft.Render(list)
	if err != nil {
		return
	}
	c.view.ListChanged(list, items)
}

func (c *Controller) refreshAll() {
	for _, l := range draft.AllLists() {
		c.refresh(l)
	}
}

// BuildPayload assembles the generate request for the active document type.
// The AI flag and context are only set in guided mode. The controller never
// rewrites fields itself.
func (c *Controller) BuildPayload() types.Payload {
	p := types.Payload{
		DocType:    c.draft.Kind(),
		UseGemini:  c.mode == types.ModeGuided,
		Fields:     c.draft.Fields(),
		ReturnDocx: false,
	}
	if p.UseGemini {
		text := c.aiContext
		p.AIContext = &text
	}
	return p
}
