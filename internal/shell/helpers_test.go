package shell

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jonathan/docorator/internal/api"
	"github.com/jonathan/docorator/internal/form"
	"github.com/jonathan/docorator/internal/types"
)

type stubBackend struct {
	payloads []types.Payload
	record   *types.DocumentRecord
	loaded   []string
}

func (b *stubBackend) Generate(_ context.Context, p types.Payload) (*api.Blob, error) {
	b.payloads = append(b.payloads, p)
	return &api.Blob{Data: []byte("%PDF-1.4"), ContentType: api.ContentTypePDF}, nil
}

func (b *stubBackend) GetDocument(_ context.Context, id string) (*types.DocumentRecord, error) {
	b.loaded = append(b.loaded, id)
	return b.record, nil
}

type allowAll struct{}

func (allowAll) RequireAuth(bool) bool { return true }

func newTestDispatcher(t *testing.T) (*Dispatcher, *form.Controller, *stubBackend, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	backend := &stubBackend{}
	view := NewTextView(out)
	view.Quiet = true
	c := form.New(backend, allowAll{}, form.Options{
		ArtifactDir: t.TempDir(),
		View:        view,
		Now:         func() time.Time { return time.UnixMilli(1700000000000) },
	})
	return NewDispatcher(c, out), c, backend, out
}

func run(t *testing.T, d *Dispatcher, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if _, err := d.Dispatch(context.Background(), line); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
}
