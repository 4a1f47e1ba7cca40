package text

import "fmt"

// Font identifies one of the standard page fonts.
type Font int

// Standard fonts, in catalogue order.
const (
	Helvetica Font = iota
	HelveticaBold
	HelveticaItalic
	HelveticaBoldItalic
	Courier
	CourierBold
	CourierItalic
	CourierBoldItalic
	Times
	TimesBold
	TimesItalic
	TimesBoldItalic
	Symbol
	Screen
	ScreenBold
	ZapfDingbats

	fontCount
)

var postScriptNames = [fontCount]string{
	"Helvetica",
	"Helvetica-Bold",
	"Helvetica-Oblique",
	"Helvetica-BoldOblique",
	"Courier",
	"Courier-Bold",
	"Courier-Oblique",
	"Courier-BoldOblique",
	"Times-Roman",
	"Times-Bold",
	"Times-Italic",
	"Times-BoldItalic",
	"Symbol",
	"Courier",
	"Courier-Bold",
	"ZapfDingbats",
}

// Valid reports whether f is in the catalogue.
func (f Font) Valid() bool {
	return f >= 0 && f < fontCount
}

// PostScriptName returns the printer-resident font name. Invalid fonts
// map to Helvetica.
func (f Font) PostScriptName() string {
	if !f.Valid() {
		return postScriptNames[Helvetica]
	}
	return postScriptNames[f]
}

// Latin1 reports whether the font uses a text encoding. Symbol and
// ZapfDingbats carry their own built-in encodings and must not be
// re-encoded.
func (f Font) Latin1() bool {
	return f != Symbol && f != ZapfDingbats
}

// Monospace reports whether every glyph has the same advance.
func (f Font) Monospace() bool {
	switch f {
	case Courier, CourierBold, CourierItalic, CourierBoldItalic, Screen, ScreenBold:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (f Font) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Font(%d)", int(f))
	}
	return postScriptNames[f]
}

// Fonts returns every catalogue entry in order.
func Fonts() []Font {
	fonts := make([]Font, fontCount)
	for i := range fonts {
		fonts[i] = Font(i)
	}
	return fonts
}
