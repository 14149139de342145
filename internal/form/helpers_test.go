package form

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/docorator/internal/api"
	"github.com/jonathan/docorator/internal/draft"
	"github.com/jonathan/docorator/internal/types"
)

type fakeBackend struct {
	mu       sync.Mutex
	payloads []types.Payload
	blob     *api.Blob
	genErr   error
	record   *types.DocumentRecord
	getErr   error
	getCalls int
	block    chan struct{}
	started  chan struct{}
}

func (b *fakeBackend) Generate(_ context.Context, p types.Payload) (*api.Blob, error) {
	b.mu.Lock()
	b.payloads = append(b.payloads, p)
	b.mu.Unlock()
	if b.started != nil {
		close(b.started)
	}
	if b.block != nil {
		<-b.block
	}
	if b.genErr != nil {
		return nil, b.genErr
	}
	return b.blob, nil
}

func (b *fakeBackend) GetDocument(_ context.Context, _ string) (*types.DocumentRecord, error) {
	b.getCalls++
	if b.getErr != nil {
		return nil, b.getErr
	}
	return b.record, nil
}

type fakeAuth struct {
	ok        bool
	redirects int
}

func (a *fakeAuth) RequireAuth(redirect bool) bool {
	if !a.ok && redirect {
		a.redirects++
	}
	return a.ok
}

type recordingView struct {
	kinds     []types.DocType
	modes     []types.Mode
	renders   map[draft.ListName][]draft.Item
	alerts    []string
	busy      []bool
	artifacts []*Artifact
}

func newRecordingView() *recordingView {
	return &recordingView{renders: make(map[draft.ListName][]draft.Item)}
}

func (v *recordingView) KindChanged(k types.DocType) { v.kinds = append(v.kinds, k) }
func (v *recordingView) ModeChanged(m types.Mode) { v.modes = append(v.modes, m) }
func (v *recordingView) ListChanged(l draft.ListName, items []draft.Item) {
	v.renders[l] = items
}
func (v *recordingView) Alert(msg string) { v.alerts = append(v.alerts, msg) }
func (v *recordingView) Busy(b bool) { v.busy = append(v.busy, b) }
func (v *recordingView) ArtifactReady(a *Artifact) { v.artifacts = append(v.artifacts, a) }

func newTestController(t *testing.T, backend *fakeBackend, auth *fakeAuth) (*Controller, *recordingView) {
	t.Helper()
	view := newRecordingView()
	c := New(backend, auth, Options{
		ArtifactDir: t.TempDir(),
		View:        view,
		Now:         func() time.Time { return time.UnixMilli(1700000000000) },
	})
	return c, view
}

func summaries(items []draft.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Summary)
	}
	return out
}

func rawInput(t *testing.T, s string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return m
}
