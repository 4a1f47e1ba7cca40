// Package clip provides the rectangular clip stack used by page devices.
package clip

// Rect is an axis-aligned region in device units, anchored at its
// top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect returns the rectangle at (x, y) of size w by h.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the x coordinate one past the last column.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom is the y coordinate one past the last row.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// IsEmpty reports whether r covers no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Intersect returns the overlap of r and o, or the zero Rect when they
// share no area.
func (r Rect) Intersect(o Rect) Rect {
	left, top := max(r.X, o.X), max(r.Y, o.Y)
	right, bottom := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if right <= left || bottom <= top {
		return Rect{}
	}
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// Intersects reports whether r and o overlap with non-zero area.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).IsEmpty()
}
