package page

import "math"

// Offset is one translate step.
type Offset struct {
	DX, DY int
}

// Frame tracks the page coordinate system of an open page: origin, scale,
// rotation and the stack of nested translations.
//
// Origin, scale and rotation are absolute: each call replaces the previous
// value. Translations compose additively and must be undone in reverse
// order. The origin query never reflects translations.
type Frame struct {
	originX, originY int
	sx, sy           float64
	angle            float64
	stack            []Offset
}

// NewFrame returns an identity frame.
func NewFrame() Frame {
	return Frame{sx: 1, sy: 1, stack: make([]Offset, 0, 8)}
}

// Reset restores the identity frame and drops all translations.
func (f *Frame) Reset() {
	f.originX, f.originY = 0, 0
	f.sx, f.sy = 1, 1
	f.angle = 0
	f.stack = f.stack[:0]
}

// SetOrigin replaces the origin.
func (f *Frame) SetOrigin(x, y int) {
	f.originX, f.originY = x, y
}

// Origin returns the last origin set.
func (f *Frame) Origin() (x, y int) {
	return f.originX, f.originY
}

// SetScale replaces the scale and moves the origin back to the top-left
// corner of the printable area. A zero sy means sy = sx.
func (f *Frame) SetScale(sx, sy float64) error {
	if sy == 0 {
		sy = sx
	}
	if sx <= 0 || sy <= 0 || math.IsNaN(sx) || math.IsNaN(sy) {
		return ErrInvalidScale
	}
	f.sx, f.sy = sx, sy
	f.originX, f.originY = 0, 0
	return nil
}

// ScaleFactors returns the current scale.
func (f *Frame) ScaleFactors() (sx, sy float64) {
	return f.sx, f.sy
}

// SetRotation replaces the rotation, in counter-clockwise degrees.
func (f *Frame) SetRotation(angle float64) {
	f.angle = angle
}

// Rotation returns the current rotation.
func (f *Frame) Rotation() float64 {
	return f.angle
}

// Push records a translation.
func (f *Frame) Push(dx, dy int) {
	f.stack = append(f.stack, Offset{DX: dx, DY: dy})
}

// Pop removes the most recent translation. ok is false when the stack is
// empty.
func (f *Frame) Pop() (o Offset, ok bool) {
	n := len(f.stack)
	if n == 0 {
		return Offset{}, false
	}
	o = f.stack[n-1]
	f.stack = f.stack[:n-1]
	return o, true
}

// Depth returns the number of pending translations.
func (f *Frame) Depth() int {
	return len(f.stack)
}

// Translation returns the sum of pending translations.
func (f *Frame) Translation() (dx, dy int) {
	for _, o := range f.stack {
		dx += o.DX
		dy += o.DY
	}
	return dx, dy
}

// PrintableRect converts a page of pw x ph points with margins lm, tm into
// printable width and height in current units.
func (f *Frame) PrintableRect(pw, ph, lm, tm float64) (w, h int) {
	w = int(math.Round((pw - 2*lm) / f.sx))
	h = int(math.Round((ph - 2*tm) / f.sy))
	return w, h
}

// Margins converts margins lm, tm (points) to current units. Margins are
// symmetric: right equals left and bottom equals top.
func (f *Frame) Margins(lm, tm float64) (left, top, right, bottom int) {
	left = int(math.Round(lm / f.sx))
	top = int(math.Round(tm / f.sy))
	return left, top, left, top
}
