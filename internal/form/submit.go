package form

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"

	"github.com/jonathan/docorator/internal/api"
	"github.com/jonathan/docorator/internal/draft"
	"github.com/jonathan/docorator/internal/session"
	"github.com/jonathan/docorator/internal/types"
)

// EditParam is the query parameter that requests the edit flow.
const EditParam = "edit_doc_id"

// Artifact is a rendered document written to local disk.
type Artifact struct {
	Path        string
	Filename    string
	ContentType string
	Size        int
	DocType     types.DocType
}

// Submit sends the draft to the backend and stores the rendered document as
// the controller's single artifact.
//
// Without a credential nothing is sent and session.ErrNotAuthenticated is
// returned after the login redirect. A second call while one is in flight
// returns ErrBusy. The payload is sent as built; the server is the only
// judge of its content. Server failures are shown through the view verbatim
// and returned; the draft is left untouched so the user can retry.
func (c *Controller) Submit(ctx context.Context) (*Artifact, error) {
	if !c.auth.RequireAuth(true) {
		return nil, session.ErrNotAuthenticated
	}
	if !c.begin() {
		return nil, ErrBusy
	}
	defer c.end()

	p := c.BuildPayload()
	blob, err := c.backend.Generate(ctx, p)
	if err != nil {
		if !isAuthError(err) {
			c.view.Alert("Error: " + err.Error())
		}
		return nil, err
	}

	artifact, err := c.writeArtifact(p.DocType, blob)
	if err != nil {
		c.view.Alert("Error: " + err.Error())
		return nil, err
	}
	c.artifact = artifact
	c.view.ArtifactReady(artifact)
	return artifact, nil
}

func (c *Controller) writeArtifact(kind types.DocType, blob *api.Blob) (*Artifact, error) {
	ext := ".pdf"
	if blob.ContentType == api.ContentTypeDOCX {
		ext = ".docx"
	}
	name := fmt.Sprintf("%s_%d%s", kind, c.now().UnixMilli(), ext)

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	path := filepath.Join(c.dir, name)
	if err := os.WriteFile(path, blob.Data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	contentType := blob.ContentType
	if contentType == "" {
		contentType = api.ContentTypePDF
	}
	return &Artifact{
		Path:        path,
		Filename:    name,
		ContentType: contentType,
		Size:        len(blob.Data),
		DocType:     kind,
	}, nil
}

// LoadDraftForEdit replaces the form with the stored input data of a
// previously generated document and switches to manual mode.
//
// A document without input data is reported through the view and
// ErrNoInputData returned. Fetch and decode failures are logged and
// returned. In every failure case the form keeps its current state.
func (c *Controller) LoadDraftForEdit(ctx context.Context, docID string) error {
	if !c.auth.RequireAuth(true) {
		return session.ErrNotAuthenticated
	}
	if !c.begin() {
		return ErrBusy
	}
	defer c.end()

	rec, err := c.backend.GetDocument(ctx, docID)
	if err != nil {
		log.Printf("[form] Failed to load doc %s for edit: %v", docID, err)
		return fmt.Errorf("failed to load document %s: %w", docID, err)
	}
	if rec.InputData == nil {
		c.view.Alert(noInputDataMessage)
		return ErrNoInputData
	}

	d, err := draft.FromInputData(rec.DocType, rec.InputData)
	if err != nil {
		log.Printf("[form] Failed to load doc %s for edit: %v", docID, err)
		return fmt.Errorf("failed to load document %s: %w", docID, err)
	}

	log.Printf("[form] Loading input data of %s document %s", d.Kind(), docID)
	c.Restore(d)
	return nil
}

// Restore replaces the form's draft with d, clears every input group, the
// guided-mode context and the previous artifact, and switches to manual mode.
func (c *Controller) Restore(d *draft.Draft) {
	c.draft = d
	c.inputs = Inputs{}
	c.aiContext = ""
	c.artifact = nil
	c.view.KindChanged(d.Kind())
	c.refreshAll()
	c.SetMode(types.ModeManual)
}

// EditRequest reads the edit parameter from a page URL. It returns the
// requested document id, or "" when there is none, and the URL with the
// parameter removed.
func EditRequest(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	q := u.Query()
	id := q.Get(EditParam)
	if !q.Has(EditParam) {
		return "", rawURL, nil
	}
	q.Del(EditParam)
	u.RawQuery = q.Encode()
	return id, u.String(), nil
}

func (c *Controller) begin() bool {
	if !c.busy.CompareAndSwap(false, true) {
		return false
	}
	c.view.Busy(true)
	return true
}

func (c *Controller) end() {
	c.busy.Store(false)
	c.view.Busy(false)
}

func isAuthError(err error) bool {
	return errors.Is(err, session.ErrNotAuthenticated) || errors.Is(err, session.ErrUnauthorized)
}
