// Package history maintains a linear undo/redo stack of scene snapshots.
// Entries are immutable once pushed: a push clones the snapshot, and undo or
// redo only move the cursor. The store is single-owner and carries no locks;
// callers serialize access.
package history

import "scenestudio/internal/domain"

// Store is a classic linear-history undo stack. Pushing while the cursor is
// behind the tail truncates the redo entries, so history never branches.
type Store struct {
	entries []domain.SceneSnapshot
	cursor  int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{cursor: -1}
}

// Push records a new snapshot as the current state, discarding any entries
// that were ahead of the cursor.
func (s *Store) Push(snap domain.SceneSnapshot) {
	s.entries = append(s.entries[:s.cursor+1], snap.Clone())
	s.cursor = len(s.entries) - 1
}

// Current returns the snapshot at the cursor.
func (s *Store) Current() (domain.SceneSnapshot, bool) {
	if s.cursor < 0 {
		return domain.SceneSnapshot{}, false
	}
	return s.entries[s.cursor].Clone(), true
}

// Undo steps the cursor back one entry and returns the resulting snapshot.
// At the oldest entry it is a no-op reporting ok=false.
func (s *Store) Undo() (domain.SceneSnapshot, bool) {
	if s.cursor <= 0 {
		return domain.SceneSnapshot{}, false
	}
	s.cursor--
	return s.entries[s.cursor].Clone(), true
}

// Redo steps the cursor forward one entry and returns the resulting
// snapshot. At the newest entry it is a no-op reporting ok=false.
func (s *Store) Redo() (domain.SceneSnapshot, bool) {
	if s.cursor < 0 || s.cursor >= len(s.entries)-1 {
		return domain.SceneSnapshot{}, false
	}
	s.cursor++
	return s.entries[s.cursor].Clone(), true
}

// CanUndo reports whether an older entry exists.
func (s *Store) CanUndo() bool { return s.cursor > 0 }

// CanRedo reports whether a newer entry exists.
func (s *Store) CanRedo() bool { return s.cursor >= 0 && s.cursor < len(s.entries)-1 }

// Len reports the number of retained entries.
func (s *Store) Len() int { return len(s.entries) }
