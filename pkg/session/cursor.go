package session

// Cursor tracks the selected row of a result list of length n.
// The index is -1 when nothing is selected.
type Cursor struct {
	index int
	n     int
}

// NewCursor returns a cursor with no selection over an empty list.
func NewCursor() Cursor {
	return Cursor{index: -1}
}

// Reset clears the selection for a new list of length n.
func (c *Cursor) Reset(n int) {
	c.index = -1
	c.n = n
}

// Clear deselects without changing the list length.
func (c *Cursor) Clear() {
	c.index = -1
}

// Index returns the selected row or -1.
func (c Cursor) Index() int {
	return c.index
}

// Len returns the list length the cursor moves over.
func (c Cursor) Len() int {
	return c.n
}

// Valid reports whether the index selects a row.
func (c Cursor) Valid() bool {
	return c.index >= 0 && c.index < c.n
}

// Move steps the selection by dir (+1 down, -1 up). From no selection,
// down selects the first row and up the last. The result is clamped to
// [0, n-1]; an empty list keeps the index at -1.
func (c *Cursor) Move(dir int) {
	switch {
	case dir > 0:
		if c.Valid() {
			c.index++
		} else {
			c.index = 0
		}
	case dir < 0:
		if c.Valid() {
			c.index--
		} else {
			c.index = c.n - 1
		}
	default:
		return
	}
	c.index = clamp(c.index, 0, c.n-1)
}

// clamp applies the upper bound last so an empty range yields hi (-1).
func clamp(x, lo, hi int) int {
	if x < lo {
		x = lo
	}
	if x > hi {
		x = hi
	}
	return x
}
