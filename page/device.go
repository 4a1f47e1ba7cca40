package page

import (
	"github.com/gogpu/ggprint"
	"github.com/gogpu/ggprint/text"
)

// Device is the page device contract: job and page lifecycle plus the
// page coordinate system.
//
// Page coordinates start in points (1/72 inch) with the origin at the
// top-left corner of the printable area and y growing downwards.
type Device interface {
	// State returns the lifecycle state.
	State() State

	// StartJob starts a job of pageCount pages (0 = unbounded) and reports
	// the page range to print. Valid only when Idle.
	StartJob(pageCount int) (from, to int, err error)

	// StartPage opens the next page with an identity frame. Valid only in
	// JobActive.
	StartPage() error

	// PrintableRect returns the printable area in current units. It
	// reflects Scale but not Translate or Rotate. Valid only in PageOpen.
	PrintableRect() (w, h int, err error)

	// Margins returns the space between the printable area and the page
	// edges, in current units. Valid only in PageOpen.
	Margins() (left, top, right, bottom int, err error)

	// SetOrigin places the drawing origin relative to the printable area.
	// Successive calls do not compose. Not affected by Rotate.
	SetOrigin(x, y int)

	// Origin returns the last origin set.
	Origin() (x, y int)

	// Scale replaces the scale and resets the origin. A zero sy means
	// sy = sx.
	Scale(sx, sy float64)

	// Rotate replaces the rotation around the origin (counter-clockwise
	// degrees).
	Rotate(angle float64)

	// Translate shifts the coordinate frame. Every Translate must be
	// matched by one Untranslate.
	Translate(dx, dy int)

	// Untranslate undoes the most recent Translate. Calling it without a
	// pending Translate panics.
	Untranslate()

	// Translation returns the sum of pending translations.
	Translation() (dx, dy int)

	// Retain hands a resource to the open page; it is released at
	// EndPage at the latest.
	Retain(r Resource)

	// EndPage closes the page and flushes its output.
	EndPage() error

	// EndJob closes the output and returns to Idle. Ending an idle device
	// is a no-op.
	EndJob() error
}

// Point is a position in page coordinates.
type Point struct {
	X, Y float64
}

// Pt creates a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Painter is the set of drawing primitives a device accepts while a page
// is open. Primitives do not return errors; a primitive used outside a
// page, or an output failure, is reported by the next EndPage or EndJob.
type Painter interface {
	SetColor(c ggprint.Color)
	Color() ggprint.Color
	SetLineStyle(ls LineStyle)
	LineStyle() LineStyle
	SetFont(f text.Font, size float64)
	Font() (text.Font, float64)

	Line(x0, y0, x1, y1 float64)
	Polyline(pts ...Point)
	Rect(x, y, w, h float64)
	RectFill(x, y, w, h float64)
	Loop(pts ...Point)
	Polygon(pts ...Point)
	Point(x, y float64)
	Circle(x, y, r float64)

	// Arc strokes the part of the ellipse inscribed in (x, y, w, h)
	// between a1 and a2 degrees, counter-clockwise from 3 o'clock.
	Arc(x, y, w, h, a1, a2 float64)

	// Pie fills the sector Arc would outline.
	Pie(x, y, w, h, a1, a2 float64)

	// DrawText draws s with its baseline starting at (x, y).
	DrawText(s string, x, y float64)

	// DrawTextAngle draws s rotated counter-clockwise by angle degrees
	// around (x, y).
	DrawTextAngle(angle float64, s string, x, y float64)

	TextWidth(s string) float64
	Descent() float64
	Height() float64

	// DrawImage draws img scaled into (x, y, w, h). The pixmap is only
	// read during the call.
	DrawImage(img *ggprint.Pixmap, x, y, w, h float64)

	PushClip(x, y, w, h float64)
	PushNoClip()
	PopClip()

	// ClipBox intersects (x, y, w, h) with the current clip. changed
	// reports whether the result differs from the input.
	ClipBox(x, y, w, h float64) (cx, cy, cw, ch float64, changed bool)

	// NotClipped reports whether any part of (x, y, w, h) is visible.
	NotClipped(x, y, w, h float64) bool
}

// Canvas is a page device that also accepts drawing primitives. Drawing
// routines receive the Canvas explicitly; there is no current device.
type Canvas interface {
	Device
	Painter
}
