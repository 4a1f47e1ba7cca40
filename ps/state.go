package ps

import (
	"slices"
	"strings"

	"github.com/gogpu/ggprint"
	"github.com/gogpu/ggprint/page"
	"github.com/gogpu/ggprint/text"
)

// gstate is the part of the interpreter graphics state the device
// tracks. A zero *Set flag means the value in the stream is unknown.
type gstate struct {
	color    ggprint.Color
	colorSet bool
	line     page.LineStyle
	lineSet  bool
	font     text.Font
	size     float64
	fontSet  bool
}

// baseState is the state after the page setup: black, everything else
// unknown.
var baseState = gstate{color: ggprint.Black, colorSet: true}

type scopeKind uint8

const (
	scopeTranslate scopeKind = iota
	scopeClip
)

// scope is one gsave level opened by Translate or a clip push, with the
// stream state to restore on the matching grestore.
type scope struct {
	kind  scopeKind
	saved gstate
}

func (d *Device) gsave(kind scopeKind) {
	d.scopes = append(d.scopes, scope{kind: kind, saved: d.emitted})
	d.writeln("GS")
}

func (d *Device) grestore() {
	n := len(d.scopes)
	d.emitted = d.scopes[n-1].saved
	d.scopes = d.scopes[:n-1]
	d.writeln("GR")
}

// SetColor sets the color for subsequent primitives.
func (d *Device) SetColor(c ggprint.Color) {
	d.color = c
}

// Color returns the current color.
func (d *Device) Color() ggprint.Color {
	return d.color
}

// SetLineStyle sets the line style for subsequent strokes.
func (d *Device) SetLineStyle(ls page.LineStyle) {
	ls.Dashes = slices.Clone(ls.Dashes)
	d.line = ls
}

// LineStyle returns the current line style.
func (d *Device) LineStyle() page.LineStyle {
	return d.line
}

// SetFont sets the font for subsequent text. Invalid fonts fall back to
// Helvetica and non-positive sizes to DefaultFontSize.
func (d *Device) SetFont(f text.Font, size float64) {
	if !f.Valid() {
		f = text.Helvetica
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	d.font, d.size = f, size
}

// Font returns the current font and size.
func (d *Device) Font() (text.Font, float64) {
	return d.font, d.size
}

func (d *Device) syncColor() {
	if d.emitted.colorSet && d.emitted.color == d.color {
		return
	}
	c := d.color
	if c.IsGray() {
		d.writef("%s SGRAY\n", num(float64(c.R)/255))
	} else {
		r, g, b := c.Float()
		d.writef("%s %s %s SRGB\n", num(r), num(g), num(b))
	}
	d.emitted.color = c
	d.emitted.colorSet = true
}

func (d *Device) syncLine() {
	if d.emitted.lineSet && d.emitted.line.Equal(d.line) {
		return
	}
	ls := d.line
	var b strings.Builder
	b.WriteString(num(ls.Width))
	b.WriteString(" LW [")
	for i, v := range ls.Pattern() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(num(v))
	}
	b.WriteString("] 0 SD ")
	b.WriteString(capCode(ls.Cap))
	b.WriteString(" LC ")
	b.WriteString(joinCode(ls.Join))
	b.WriteString(" LJ")
	d.writeln(b.String())
	d.emitted.line = ls
	d.emitted.lineSet = true
}

func (d *Device) syncFont() {
	if d.emitted.fontSet && d.emitted.font == d.font && d.emitted.size == d.size {
		return
	}
	name := d.font.PostScriptName()
	if d.font.Latin1() {
		name += latin1Suffix
	}
	d.writef("/%s %s FS\n", name, num(d.size))
	d.emitted.font = d.font
	d.emitted.size = d.size
	d.emitted.fontSet = true
}

func capCode(c page.CapStyle) string {
	switch c {
	case page.CapRound:
		return "1"
	case page.CapSquare:
		return "2"
	default:
		return "0"
	}
}

func joinCode(j page.JoinStyle) string {
	switch j {
	case page.JoinRound:
		return "1"
	case page.JoinBevel:
		return "2"
	default:
		return "0"
	}
}
