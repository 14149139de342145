package draft

import (
	"fmt"

	"github.com/google/uuid"
)

// Entry is a list value together with its stable id.
type Entry[T any] struct {
	ID    uuid.UUID
	Value T
}

type detached[T any] struct {
	Entry[T]
	index int
}

// List is an ordered collection whose entries keep a stable id across mutations.
//
// An entry taken out for editing with Detach remembers its position; the next
// Commit puts it back there under the same id. Only one entry per list can be
// detached at a time.
type List[T any] struct {
	entries []Entry[T]
	pending *detached[T]
}

// Len returns the number of entries currently in the list.
// A detached entry is not counted.
func (l *List[T]) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in order.
func (l *List[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(l.entries))
	copy(out, l.entries)
	return out
}

// Values returns the entry values in order. The result is never nil.
func (l *List[T]) Values() []T {
	out := make([]T, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.Value)
	}
	return out
}

// Get returns the entry with the given id.
func (l *List[T]) Get(id uuid.UUID) (T, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.entries[i].Value, true
	}
	var zero T
	return zero, false
}

// Append adds v at the end of the list and returns its new id.
func (l *List[T]) Append(v T) uuid.UUID {
	id := uuid.New()
	l.entries = append(l.entries, Entry[T]{ID: id, Value: v})
	return id
}

// Commit stores v. If an entry is detached it is reinserted at its original
// position with its original id; otherwise v is appended.
func (l *List[T]) Commit(v T) uuid.UUID {
	if l.pending == nil {
		return l.Append(v)
	}
	p := l.pending
	l.pending = nil

	idx := min(p.index, len(l.entries))
	l.entries = append(l.entries, Entry[T]{})
	copy(l.entries[idx+1:], l.entries[idx:])
	l.entries[idx] = Entry[T]{ID: p.ID, Value: v}
	return p.ID
}

// Detach removes the entry with the given id and returns its value for editing.
// A previously detached entry that was never committed is dropped.
func (l *List[T]) Detach(id uuid.UUID) (T, error) {
	i := l.indexOf(id)
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	e := l.entries[i]
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.pending = &detached[T]{Entry: e, index: i}
	return e.Value, nil
}

// Pending reports whether an entry is detached for editing.
func (l *List[T]) Pending() bool {
	return l.pending != nil
}

// Remove deletes the entry with the given id.
func (l *List[T]) Remove(id uuid.UUID) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	if l.pending != nil && i < l.pending.index {
		l.pending.index--
	}
	return nil
}

// Replace discards all entries, including a detached one, and stores vals with fresh ids.
func (l *List[T]) Replace(vals []T) {
	l.entries = make([]Entry[T], 0, len(vals))
	l.pending = nil
	for _, v := range vals {
		l.Append(v)
	}
}

func (l *List[T]) indexOf(id uuid.UUID) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
