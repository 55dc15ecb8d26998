package history

import (
	"math"
	"slices"

	"github.com/jmylchreest/glance/internal/model"
)

// noCursor marks the icon-only state where nothing is shown on the bar.
const noCursor = -1

// Options configures Store behavior.
type Options struct {
	// ReplaceMovesToEnd moves a replaced entry to the end of the history
	// instead of keeping its original position.
	ReplaceMovesToEnd bool
}

// Store is an insertion-ordered map of notifications keyed by ID, plus the
// visible cursor.
type Store struct {
	order   []uint32                       // IDs in insertion order
	entries map[uint32]*model.Notification // ID -> entry
	lastID  uint32
	cursor  int
	opts    Options
}

// NewStore creates an empty Store with no visible entry.
func NewStore(opts Options) *Store {
	return &Store{
		order:   make([]uint32, 0),
		entries: make(map[uint32]*model.Notification),
		cursor:  noCursor,
		opts:    opts,
	}
}

// SetOptions replaces the store options. Existing entries are not reordered.
func (s *Store) SetOptions(opts Options) {
	s.opts = opts
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.order)
}

// LastID returns the most recently allocated ID.
func (s *Store) LastID() uint32 {
	return s.lastID
}

// SetLastID seeds the ID generator.
func (s *Store) SetLastID(id uint32) {
	s.lastID = id
}

// nextID allocates the next free ID. It wraps from MaxUint32 back to 1,
// never returns 0 and skips IDs still present in the history.
func (s *Store) nextID() uint32 {
	for {
		if s.lastID == math.MaxUint32 {
			s.lastID = 1
		} else {
			s.lastID++
		}
		if _, taken := s.entries[s.lastID]; !taken {
			return s.lastID
		}
	}
}

// Upsert inserts n under idHint, or under a freshly allocated ID when idHint
// is 0. An existing entry with the same ID is replaced in place (or moved to
// the end with ReplaceMovesToEnd). It returns the resulting ID and the
// entry's index.
func (s *Store) Upsert(idHint uint32, n model.Notification) (uint32, int) {
	id := idHint
	if id == 0 {
		id = s.nextID()
	}

	n.ID = id
	n.Read = false
	entry := &n

	if _, exists := s.entries[id]; exists {
		s.entries[id] = entry
		idx := s.IndexOf(id)
		if !s.opts.ReplaceMovesToEnd || idx == len(s.order)-1 {
			return id, idx
		}
		s.order = append(slices.Delete(s.order, idx, idx+1), id)
		s.clampCursor()
		return id, len(s.order) - 1
	}

	s.entries[id] = entry
	s.order = append(s.order, id)
	return id, len(s.order) - 1
}

// Get returns a copy of the entry with the given ID.
func (s *Store) Get(id uint32) (model.Notification, bool) {
	n, ok := s.entries[id]
	if !ok {
		return model.Notification{}, false
	}
	return *n, true
}

// At returns a copy of the entry at index. It panics if index is out of range.
func (s *Store) At(index int) model.Notification {
	return *s.entries[s.order[index]]
}

// IndexOf returns the position of id in insertion order, or -1.
func (s *Store) IndexOf(id uint32) int {
	return slices.Index(s.order, id)
}

// Entries returns copies of all entries in insertion order.
func (s *Store) Entries() []model.Notification {
	result := make([]model.Notification, len(s.order))
	for i, id := range s.order {
		result[i] = *s.entries[id]
	}
	return result
}

// Remove deletes the entry with the given ID. Removing an absent ID is a
// no-op. It reports whether an entry was removed.
func (s *Store) Remove(id uint32) bool {
	idx := s.IndexOf(id)
	if idx < 0 {
		return false
	}
	s.removeAt(idx)
	return true
}

// RemoveVisible deletes the entry under the cursor and returns its ID.
// It returns ErrNoVisible, leaving the store untouched, when the cursor is
// not set.
func (s *Store) RemoveVisible() (uint32, error) {
	if s.cursor == noCursor {
		return 0, ErrNoVisible
	}
	id := s.order[s.cursor]
	s.removeAt(s.cursor)
	return id, nil
}

func (s *Store) removeAt(idx int) {
	delete(s.entries, s.order[idx])
	s.order = slices.Delete(s.order, idx, idx+1)
	s.clampCursor()
}

// clampCursor restores the cursor invariant after the history shrank.
func (s *Store) clampCursor() {
	if s.cursor < len(s.order) {
		return
	}
	if len(s.order) == 0 {
		s.cursor = noCursor
		return
	}
	s.cursor = len(s.order) - 1
}

// MarkRead sets the read flag of the entry at index. It reports whether the
// flag changed; out of range indexes are ignored.
func (s *Store) MarkRead(index int) bool {
	if index < 0 || index >= len(s.order) {
		return false
	}
	return s.entries[s.order[index]].MarkRead()
}

// Cursor returns the visible index and whether one is set.
func (s *Store) Cursor() (int, bool) {
	if s.cursor == noCursor {
		return 0, false
	}
	return s.cursor, true
}

// SetCursor points the cursor at index.
func (s *Store) SetCursor(index int) error {
	if index < 0 || index >= len(s.order) {
		return ErrIndexOutOfRange
	}
	s.cursor = index
	return nil
}

// ClearCursor hides the bar entry while keeping the history.
func (s *Store) ClearCursor() {
	s.cursor = noCursor
}

// Visible returns a copy of the entry under the cursor.
func (s *Store) Visible() (model.Notification, bool) {
	if s.cursor == noCursor {
		return model.Notification{}, false
	}
	return s.At(s.cursor), true
}

// UnreadCount returns the number of unread entries.
func (s *Store) UnreadCount() int {
	count := 0
	for _, n := range s.entries {
		if !n.Read {
			count++
		}
	}
	return count
}
