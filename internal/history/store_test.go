package history

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/glance/internal/model"
)

func testNotification(summary string) model.Notification {
	return model.Notification{AppName: "test", Summary: summary, Body: summary + " body"}
}

func summaries(s *Store) []string {
	var out []string
	for _, n := range s.Entries() {
		out = append(out, n.Summary)
	}
	return out
}

func TestNewStore(t *testing.T) {
	s := NewStore(Options{})
	assert.Equal(t, 0, s.Len())
	_, ok := s.Cursor()
	assert.False(t, ok)
}

func TestStore_UpsertAllocatesSequentialIDs(t *testing.T) {
	s := NewStore(Options{})

	id1, idx1 := s.Upsert(0, testNotification("a"))
	id2, idx2 := s.Upsert(0, testNotification("b"))

	assert.Equal(t, uint32(1), id1)
	assert.Equal(t, uint32(2), id2)
	assert.Equal(t, 0, idx1)
	assert.Equal(t, 1, idx2)
	assert.Equal(t, 2, s.Len())
}

func TestStore_IDWraparound(t *testing.T) {
	s := NewStore(Options{})
	s.SetLastID(math.MaxUint32 - 1)

	id, _ := s.Upsert(0, testNotification("max"))
	assert.Equal(t, uint32(math.MaxUint32), id)

	id, _ = s.Upsert(0, testNotification("wrapped"))
	assert.Equal(t, uint32(1), id, "wraps to 1, never 0")
}

func TestStore_IDWraparoundSkipsLiveIDs(t *testing.T) {
	s := NewStore(Options{})
	s.Upsert(1, testNotification("one"))
	s.Upsert(2, testNotification("two"))
	s.SetLastID(math.MaxUint32)

	id, _ := s.Upsert(0, testNotification("three"))
	assert.Equal(t, uint32(3), id)
}

func TestStore_ReplaceKeepsPosition(t *testing.T) {
	s := NewStore(Options{})
	s.Upsert(0, testNotification("a"))
	s.Upsert(0, testNotification("b"))
	s.Upsert(0, testNotification("c"))
	s.MarkRead(0)

	id, idx := s.Upsert(1, testNotification("a2"))

	assert.Equal(t, uint32(1), id)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []string{"a2", "b", "c"}, summaries(s))
	assert.False(t, s.At(0).Read, "replacement starts unread")
}

func TestStore_ReplaceMovesToEnd(t *testing.T) {
	s := NewStore(Options{ReplaceMovesToEnd: true})
	s.Upsert(0, testNotification("a"))
	s.Upsert(0, testNotification("b"))
	s.Upsert(0, testNotification("c"))

	id, idx := s.Upsert(1, testNotification("a2"))

	assert.Equal(t, uint32(1), id)
	assert.Equal(t, 2, idx)
	assert.Equal(t, []string{"b", "c", "a2"}, summaries(s))
}

func TestStore_UpsertUnknownExplicitIDAppends(t *testing.T) {
	s := NewStore(Options{})
	s.Upsert(0, testNotification("a"))

	id, idx := s.Upsert(42, testNotification("explicit"))
	assert.Equal(t, uint32(42), id)
	assert.Equal(t, 1, idx)
	assert.Equal(t, uint32(1), s.LastID(), "explicit ids do not advance the generator")
}

func TestStore_Remove(t *testing.T) {
	s := NewStore(Options{})
	s.Upsert(0, testNotification("a"))
	s.Upsert(0, testNotification("b"))
	s.Upsert(0, testNotification("c"))

	t.Run("removes by id preserving order", func(t *testing.T) {
		assert.True(t, s.Remove(2))
		assert.Equal(t, []string{"a", "c"}, summaries(s))
		_, ok := s.Get(2)
		assert.False(t, ok)
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		assert.False(t, s.Remove(99))
		assert.Equal(t, 2, s.Len())
	})
}

func TestStore_RemoveClampsCursor(t *testing.T) {
	s := NewStore(Options{})
	s.Upsert(0, testNotification("a"))
	s.Upsert(0, testNotification("b"))
	require.NoError(t, s.SetCursor(1))

	s.Remove(2)
	idx, ok := s.Cursor()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	s.Remove(1)
	_, ok = s.Cursor()
	assert.False(t, ok)
}

func TestStore_RemoveBeforeCursorKeepsIndex(t *testing.T) {
	s := NewStore(Options{})
	s.Upsert(0, testNotification("a"))
	s.Upsert(0, testNotification("b"))
	s.Upsert(0, testNotification("c"))
	require.NoError(t, s.SetCursor(1))

	s.Remove(1)

	idx, ok := s.Cursor()
	require.True(t, ok)
	assert.Equal(t, 1, idx, "index is positional, not tied to an entry")
	assert.Equal(t, "c", s.At(idx).Summary)
}

func TestStore_RemoveVisible(t *testing.T) {
	t.Run("removes the cursor entry", func(t *testing.T) {
		s := NewStore(Options{})
		s.Upsert(0, testNotification("a"))
		s.Upsert(0, testNotification("b"))
		require.NoError(t, s.SetCursor(1))

		id, err := s.RemoveVisible()
		require.NoError(t, err)
		assert.Equal(t, uint32(2), id)
		assert.Equal(t, 1, s.Len())

		idx, ok := s.Cursor()
		require.True(t, ok)
		assert.Equal(t, 0, idx)
	})

	t.Run("fails without a cursor", func(t *testing.T) {
		s := NewStore(Options{})
		s.Upsert(0, testNotification("a"))

		_, err := s.RemoveVisible()
		assert.ErrorIs(t, err, ErrNoVisible)
		assert.Equal(t, 1, s.Len())
	})
}

func TestStore_SetCursor(t *testing.T) {
	s := NewStore(Options{})
	assert.ErrorIs(t, s.SetCursor(0), ErrIndexOutOfRange)

	s.Upsert(0, testNotification("a"))
	require.NoError(t, s.SetCursor(0))
	assert.ErrorIs(t, s.SetCursor(1), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.SetCursor(-1), ErrIndexOutOfRange)

	s.ClearCursor()
	_, ok := s.Visible()
	assert.False(t, ok)
}

func TestStore_MarkRead(t *testing.T) {
	s := NewStore(Options{})
	s.Upsert(0, testNotification("a"))

	assert.True(t, s.MarkRead(0))
	assert.False(t, s.MarkRead(0))
	assert.False(t, s.MarkRead(5))
	assert.Equal(t, 0, s.UnreadCount())
}

func TestStore_EntriesAreCopies(t *testing.T) {
	s := NewStore(Options{})
	s.Upsert(0, testNotification("a"))

	entries := s.Entries()
	entries[0].Summary = "mutated"

	assert.Equal(t, "a", s.At(0).Summary)
}
