package ps

import (
	"strings"

	"github.com/gogpu/ggprint/internal/clip"
	"github.com/gogpu/ggprint/page"
	"github.com/gogpu/ggprint/text"
)

// Line strokes a segment.
func (d *Device) Line(x0, y0, x1, y1 float64) {
	if !d.onPage() {
		return
	}
	d.syncColor()
	d.syncLine()
	d.writef("%s %s %s %s L\n", num(x0), num(y0), num(x1), num(y1))
}

// Polyline strokes connected segments through pts.
func (d *Device) Polyline(pts ...page.Point) {
	d.path(pts, false, "ST")
}

// Loop strokes the closed outline through pts.
func (d *Device) Loop(pts ...page.Point) {
	d.path(pts, true, "ST")
}

// Polygon fills the closed outline through pts.
func (d *Device) Polygon(pts ...page.Point) {
	d.path(pts, true, "FL")
}

func (d *Device) path(pts []page.Point, closed bool, op string) {
	if !d.onPage() || len(pts) < 2 {
		return
	}
	d.syncColor()
	if op == "ST" {
		d.syncLine()
	}
	var b strings.Builder
	b.WriteString("NP ")
	for i, p := range pts {
		b.WriteString(num(p.X))
		b.WriteByte(' ')
		b.WriteString(num(p.Y))
		if i == 0 {
			b.WriteString(" MT")
		} else {
			b.WriteString(" LT")
		}
		if i%8 == 7 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	if closed {
		b.WriteString("CP ")
	}
	b.WriteString(op)
	d.writeln(b.String())
}

// Rect strokes the outline of a rectangle.
func (d *Device) Rect(x, y, w, h float64) {
	if !d.onPage() || w <= 0 || h <= 0 {
		return
	}
	d.syncColor()
	d.syncLine()
	d.writef("%s %s %s %s R\n", num(x), num(y), num(w), num(h))
}

// RectFill fills a rectangle.
func (d *Device) RectFill(x, y, w, h float64) {
	if !d.onPage() || w <= 0 || h <= 0 {
		return
	}
	d.syncColor()
	d.writef("%s %s %s %s RF\n", num(x), num(y), num(w), num(h))
}

// Point fills a single unit square.
func (d *Device) Point(x, y float64) {
	if !d.onPage() {
		return
	}
	d.syncColor()
	d.writef("%s %s PT\n", num(x), num(y))
}

// Circle strokes a circle of radius r centred on (x, y).
func (d *Device) Circle(x, y, r float64) {
	if !d.onPage() || r <= 0 {
		return
	}
	d.syncColor()
	d.syncLine()
	d.writef("NP %s %s %s %s 0 360 EP ST\n", num(x), num(y), num(r), num(r))
}

// Arc strokes part of the ellipse inscribed in (x, y, w, h).
func (d *Device) Arc(x, y, w, h, a1, a2 float64) {
	if !d.onPage() || w <= 0 || h <= 0 {
		return
	}
	d.syncColor()
	d.syncLine()
	cx, cy, rx, ry := x+w/2, y+h/2, w/2, h/2
	d.writef("NP %s %s %s %s %s %s EP ST\n", num(cx), num(cy), num(rx), num(ry), num(a1), num(a2))
}

// Pie fills the sector of the ellipse inscribed in (x, y, w, h).
func (d *Device) Pie(x, y, w, h, a1, a2 float64) {
	if !d.onPage() || w <= 0 || h <= 0 {
		return
	}
	d.syncColor()
	cx, cy, rx, ry := x+w/2, y+h/2, w/2, h/2
	d.writef("NP %s %s MT %s %s %s %s %s %s EP CP FL\n",
		num(cx), num(cy), num(cx), num(cy), num(rx), num(ry), num(a1), num(a2))
}

// DrawText draws s with its baseline starting at (x, y). Characters
// outside Latin-1 print as '?'.
func (d *Device) DrawText(s string, x, y float64) {
	if !d.onPage() || s == "" {
		return
	}
	d.syncColor()
	d.syncFont()
	d.writef("%s %s %s T\n", d.encode(s), num(x), num(y))
}

// DrawTextAngle draws s rotated counter-clockwise by angle degrees around
// (x, y).
func (d *Device) DrawTextAngle(angle float64, s string, x, y float64) {
	if angle == 0 {
		d.DrawText(s, x, y)
		return
	}
	if !d.onPage() || s == "" {
		return
	}
	d.syncColor()
	d.syncFont()
	d.writef("GS %s %s TR %s ROT %s 0 0 T GR\n", num(x), num(y), num(-angle), d.encode(s))
}

func (d *Device) encode(s string) string {
	if d.font.Latin1() {
		return text.Escape(text.Latin1(s))
	}
	return text.Escape([]byte(s))
}

// TextWidth returns the advance width of s in the current font.
func (d *Device) TextWidth(s string) float64 {
	return d.measurer.Width(s, d.font, d.size)
}

// Descent returns the distance from the baseline to the bottom of the
// current font.
func (d *Device) Descent() float64 {
	return d.measurer.Metrics(d.font, d.size).Descent
}

// Height returns the line height of the current font.
func (d *Device) Height() float64 {
	return d.measurer.Metrics(d.font, d.size).Height
}

// PushClip intersects the clip region with a rectangle until the matching
// PopClip.
func (d *Device) PushClip(x, y, w, h float64) {
	if !d.onPage() {
		return
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	d.clips.Push(clip.NewRect(x, y, w, h))
	d.gsave(scopeClip)
	d.writef("%s %s %s %s CL\n", num(x), num(y), num(w), num(h))
}

// PushNoClip disables clipping until the matching PopClip.
func (d *Device) PushNoClip() {
	if !d.onPage() {
		return
	}
	d.clips.PushNone()
	d.gsave(scopeClip)
	d.writeln("initclip")
}

// PopClip restores the clip region in effect before the matching push.
// It panics when no clip is pushed or when a Translate made after the
// push is still pending.
func (d *Device) PopClip() {
	if !d.onPage() {
		return
	}
	if err := d.clips.Pop(); err != nil {
		panic("ps: " + err.Error())
	}
	n := len(d.scopes)
	if n == 0 {
		return
	}
	if d.scopes[n-1].kind != scopeClip {
		panic("ps: PopClip crosses a pending Translate")
	}
	d.grestore()
}

// ClipBox intersects a rectangle with the current clip region.
func (d *Device) ClipBox(x, y, w, h float64) (cx, cy, cw, ch float64, changed bool) {
	r, changed := d.clips.Box(clip.NewRect(x, y, w, h))
	return r.X, r.Y, r.W, r.H, changed
}

// NotClipped reports whether any part of a rectangle is visible.
func (d *Device) NotClipped(x, y, w, h float64) bool {
	return d.clips.Visible(clip.NewRect(x, y, w, h))
}
