package history

// The cursor transitions below report whether the view must be re-rendered.
// Navigating an empty history is a silent no-op.

// MarkCurrentRead marks the visible entry read. With no visible entry it
// changes nothing but still asks for a render.
func (s *Store) MarkCurrentRead() bool {
	if s.cursor != noCursor {
		s.MarkRead(s.cursor)
	}
	return true
}

// Previous moves the cursor one entry back, marking the entry it leaves as
// read. At index 0 the entry is marked read and the cursor stays.
func (s *Store) Previous() bool {
	if len(s.order) == 0 {
		return false
	}

	switch {
	case s.cursor == noCursor:
		s.cursor = 0
	case s.cursor == 0:
		s.MarkRead(0)
	default:
		s.MarkRead(s.cursor)
		s.cursor--
	}
	return true
}

// Next moves the cursor one entry forward, marking the entry it leaves as
// read. At the last index the entry is marked read and the cursor stays.
func (s *Store) Next() bool {
	if len(s.order) == 0 {
		return false
	}

	switch {
	case s.cursor == noCursor:
		s.cursor = 0
	case s.cursor == len(s.order)-1:
		s.MarkRead(s.cursor)
	default:
		s.MarkRead(s.cursor)
		s.cursor++
	}
	return true
}
