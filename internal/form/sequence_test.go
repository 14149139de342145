package form

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/docorator/internal/draft"
	"github.com/jonathan/docorator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listKind builds numbered entries for one list and predicts their summaries.
type listKind struct {
	list    draft.ListName
	entry   func(n int) any
	summary func(n int) string
}

var sequenceKinds = []listKind{
	{
		list:    draft.ListSkills,
		entry:   func(n int) any { return fmt.Sprintf("skill %d", n) },
		summary: func(n int) string { return fmt.Sprintf("skill %d", n) },
	},
	{
		list:    draft.ListAchievements,
		entry:   func(n int) any { return fmt.Sprintf("award %d", n) },
		summary: func(n int) string { return fmt.Sprintf("award %d", n) },
	},
	{
		list:    draft.ListExperience,
		entry:   func(n int) any { return types.Experience{Title: fmt.Sprintf("Role %d", n), Company: "Acme"} },
		summary: func(n int) string { return fmt.Sprintf("Role %d at Acme", n) },
	},
	{
		list:    draft.ListProjects,
		entry:   func(n int) any { return types.Project{Name: fmt.Sprintf("P%d", n), TechStack: "Go"} },
		summary: func(n int) string { return fmt.Sprintf("P%d (Go)", n) },
	},
	{
		list:    draft.ListEducation,
		entry:   func(n int) any { return types.Education{Degree: fmt.Sprintf("D%d", n), Institute: "MIT"} },
		summary: func(n int) string { return fmt.Sprintf("D%d, MIT", n) },
	},
}

type modelEntry struct {
	id      uuid.UUID
	summary string
}

// listModel mirrors the expected list contents, including a detached entry.
type listModel struct {
	entries    []modelEntry
	pending    *modelEntry
	pendingIdx int

	added, removed, dropped int
}

func (m *listModel) summaries() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.summary)
	}
	return out
}

func (m *listModel) pendingCount() int {
	if m.pending != nil {
		return 1
	}
	return 0
}

// commit records a committed value and returns the index it landed at and
// the id it must carry (uuid.Nil for a fresh entry).
func (m *listModel) commit(summary string) (int, uuid.UUID) {
	if m.pending == nil {
		m.entries = append(m.entries, modelEntry{summary: summary})
		m.added++
		return len(m.entries) - 1, uuid.Nil
	}
	idx := min(m.pendingIdx, len(m.entries))
	id := m.pending.id
	m.entries = append(m.entries[:idx], append([]modelEntry{{id: id, summary: summary}}, m.entries[idx:]...)...)
	m.pending = nil
	return idx, id
}

func (m *listModel) detach(idx int) {
	if m.pending != nil {
		m.dropped++
	}
	e := m.entries[idx]
	m.pending = &e
	m.pendingIdx = idx
	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
}

func (m *listModel) remove(idx int) {
	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
	m.removed++
	if m.pending != nil && idx < m.pendingIdx {
		m.pendingIdx--
	}
}

// Random add/remove/edit/re-commit sequences: the list always matches the
// model, its length is additions minus removals minus edits not resubmitted,
// and the view always shows the current render.
func TestListOperations_RandomSequences(t *testing.T) {
	for _, kind := range sequenceKinds {
		for seed := int64(1); seed <= 12; seed++ {
			t.Run(fmt.Sprintf("%s/seed%d", kind.list, seed), func(t *testing.T) {
				rng := rand.New(rand.NewSource(seed))
				c, view := newTestController(t, &fakeBackend{}, &fakeAuth{ok: true})
				m := &listModel{}
				next := 0

				for step := 0; step < 60; step++ {
					var landed int
					var wantID uuid.UUID
					committed := false

					op := rng.Intn(6)
					if len(m.entries) == 0 && op >= 2 && op <= 4 {
						op = 0
					}
					switch op {
					case 0, 1: // add a new value (fills a detached slot when one exists)
						next++
						require.NoError(t, c.AddListEntry(kind.list, kind.entry(next)))
						landed, wantID = m.commit(kind.summary(next))
						committed = true
					case 2: // remove
						i := rng.Intn(len(m.entries))
						items, err := c.RenderList(kind.list)
						require.NoError(t, err)
						require.NoError(t, c.RemoveListEntry(kind.list, items[i].ID))
						m.remove(i)
					case 3, 4: // edit, then maybe re-commit unchanged
						i := rng.Intn(len(m.entries))
						items, err := c.RenderList(kind.list)
						require.NoError(t, err)
						require.NoError(t, c.EditListEntry(kind.list, items[i].ID))
						m.detach(i)
						if op == 3 {
							require.NoError(t, c.Commit(kind.list))
							landed, wantID = m.commit(m.pending.summary)
							committed = true
						}
					case 5: // re-commit whatever the input group holds
						if m.pending == nil {
							continue
						}
						require.NoError(t, c.Commit(kind.list))
						landed, wantID = m.commit(m.pending.summary)
						committed = true
					}

					items, err := c.RenderList(kind.list)
					require.NoError(t, err)
					if committed {
						if wantID == uuid.Nil {
							m.entries[landed].id = items[landed].ID
						} else {
							assert.Equal(t, wantID, items[landed].ID, "re-committed entry keeps its id")
						}
					}

					require.Equal(t, m.summaries(), summaries(items), "step %d", step)
					for i, it := range items {
						assert.Equal(t, m.entries[i].id, it.ID)
						assert.Equal(t, i, it.Index)
					}
					n, err := c.Draft().Len(kind.list)
					require.NoError(t, err)
					assert.Equal(t, m.added-m.removed-m.dropped-m.pendingCount(), n)
					assert.Equal(t, items, view.renders[kind.list])
				}
			})
		}
	}
}
