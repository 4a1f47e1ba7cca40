package clip

import "errors"

// ErrUnderflow is returned by Pop on an empty stack.
var ErrUnderflow = errors.New("clip: pop on empty clip stack")

// Stack manages nested rectangular clip regions with push/pop operations.
// Each entry stores the effective region it replaced, so Pop restores the
// previous region without recomputing intersections.
type Stack struct {
	entries []entry
	current Rect
	clipped bool // false while no clip (or a no-clip entry) is in effect
}

// entry represents a single clip operation in the stack.
type entry struct {
	prev        Rect
	prevClipped bool
}

// NewStack creates an empty stack. Until the first push everything is
// visible.
func NewStack() *Stack {
	return &Stack{
		entries: make([]entry, 0, 8), // Pre-allocate for common case
	}
}

// Push pushes a rectangular clip region. The effective region becomes the
// intersection of the current region and r.
func (s *Stack) Push(r Rect) {
	s.entries = append(s.entries, entry{prev: s.current, prevClipped: s.clipped})
	if s.clipped {
		r = s.current.Intersect(r)
	}
	if r.IsEmpty() {
		r = Rect{}
	}
	s.current = r
	s.clipped = true
}

// PushNone pushes an entry that disables clipping until it is popped.
func (s *Stack) PushNone() {
	s.entries = append(s.entries, entry{prev: s.current, prevClipped: s.clipped})
	s.current = Rect{}
	s.clipped = false
}

// Pop removes the most recent entry and restores the region in effect
// before it was pushed.
func (s *Stack) Pop() error {
	n := len(s.entries)
	if n == 0 {
		return ErrUnderflow
	}
	e := s.entries[n-1]
	s.entries = s.entries[:n-1]
	s.current = e.prev
	s.clipped = e.prevClipped
	return nil
}

// Current returns the effective clip region. ok is false when nothing is
// clipped.
func (s *Stack) Current() (r Rect, ok bool) {
	return s.current, s.clipped
}

// Box intersects r with the effective region. changed reports whether
// the result differs from r.
func (s *Stack) Box(r Rect) (out Rect, changed bool) {
	if !s.clipped {
		return r, false
	}
	out = s.current.Intersect(r)
	return out, out != r
}

// Visible reports whether any part of r survives clipping.
func (s *Stack) Visible(r Rect) bool {
	if r.IsEmpty() {
		return false
	}
	if !s.clipped {
		return true
	}
	return s.current.Intersects(r)
}

// Depth returns the current depth of the clip stack.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Reset drops every entry.
func (s *Stack) Reset() {
	s.entries = s.entries[:0]
	s.current = Rect{}
	s.clipped = false
}
