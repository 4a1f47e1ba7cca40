package page

// DashStyle selects a predefined dash pattern.
type DashStyle uint8

// Dash styles.
const (
	Solid DashStyle = iota
	Dash
	Dot
	DashDot
	DashDotDot
)

// CapStyle selects how open line ends are drawn.
type CapStyle uint8

// Cap styles. CapDefault leaves the device default (flat).
const (
	CapDefault CapStyle = iota
	CapFlat
	CapRound
	CapSquare
)

// JoinStyle selects how line segments meet.
type JoinStyle uint8

// Join styles. JoinDefault leaves the device default (miter).
const (
	JoinDefault JoinStyle = iota
	JoinMiter
	JoinRound
	JoinBevel
)

// LineStyle describes stroked lines. Width 0 means the thinnest line the
// device can draw. Dashes, when set, overrides Dash with explicit on/off
// lengths.
type LineStyle struct {
	Dash   DashStyle
	Cap    CapStyle
	Join   JoinStyle
	Width  float64
	Dashes []float64
}

// Equal reports whether two styles produce identical strokes.
func (ls LineStyle) Equal(o LineStyle) bool {
	if ls.Dash != o.Dash || ls.Cap != o.Cap || ls.Join != o.Join || ls.Width != o.Width {
		return false
	}
	if len(ls.Dashes) != len(o.Dashes) {
		return false
	}
	for i := range ls.Dashes {
		if ls.Dashes[i] != o.Dashes[i] {
			return false
		}
	}
	return true
}

// Pattern returns the on/off dash lengths for the style, or nil for a
// solid line. Predefined patterns scale with the line width.
func (ls LineStyle) Pattern() []float64 {
	if len(ls.Dashes) > 0 {
		return ls.Dashes
	}
	w := ls.Width
	if w < 1 {
		w = 1
	}
	switch ls.Dash {
	case Dash:
		return []float64{3 * w, w}
	case Dot:
		return []float64{w, w}
	case DashDot:
		return []float64{3 * w, w, w, w}
	case DashDotDot:
		return []float64{3 * w, w, w, w, w, w}
	default:
		return nil
	}
}
