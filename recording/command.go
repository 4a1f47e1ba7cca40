package recording

import (
	"github.com/gogpu/ggprint"
	"github.com/gogpu/ggprint/page"
	"github.com/gogpu/ggprint/text"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Frame commands
	CmdSetOrigin   CommandType = iota // Place the origin
	CmdScale                          // Replace the scale
	CmdRotate                         // Replace the rotation
	CmdTranslate                      // Push a translation
	CmdUntranslate                    // Pop a translation

	// Style commands
	CmdSetColor     // Set drawing color
	CmdSetLineStyle // Set line style
	CmdSetFont      // Set font and size

	// Drawing commands
	CmdLine      // Stroke a segment
	CmdPolyline  // Stroke connected segments
	CmdLoop      // Stroke a closed outline
	CmdPolygon   // Fill a closed outline
	CmdRect      // Stroke or fill a rectangle
	CmdPoint     // Fill one unit square
	CmdCircle    // Stroke a circle
	CmdArc       // Stroke an elliptical arc or fill a pie
	CmdDrawText  // Draw text, optionally rotated
	CmdDrawImage // Draw a pixmap

	// Clip commands
	CmdPushClip   // Intersect the clip with a rectangle
	CmdPushNoClip // Disable clipping
	CmdPopClip    // Restore the previous clip
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSetOrigin:    "SetOrigin",
	CmdScale:        "Scale",
	CmdRotate:       "Rotate",
	CmdTranslate:    "Translate",
	CmdUntranslate:  "Untranslate",
	CmdSetColor:     "SetColor",
	CmdSetLineStyle: "SetLineStyle",
	CmdSetFont:      "SetFont",
	CmdLine:         "Line",
	CmdPolyline:     "Polyline",
	CmdLoop:         "Loop",
	CmdPolygon:      "Polygon",
	CmdRect:         "Rect",
	CmdPoint:        "Point",
	CmdCircle:       "Circle",
	CmdArc:          "Arc",
	CmdDrawText:     "DrawText",
	CmdDrawImage:    "DrawImage",
	CmdPushClip:     "PushClip",
	CmdPushNoClip:   "PushNoClip",
	CmdPopClip:      "PopClip",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// ImageRef is a reference to an image in the resource pool.
type ImageRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference points to a valid image.
func (r ImageRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// --------------------------------------------------------------------------
// Frame Commands
// --------------------------------------------------------------------------

// SetOriginCommand places the origin relative to the printable area.
type SetOriginCommand struct {
	X, Y int
}

// Type implements Command.
func (SetOriginCommand) Type() CommandType { return CmdSetOrigin }

// ScaleCommand replaces the scale. SY has already been defaulted.
type ScaleCommand struct {
	SX, SY float64
}

// Type implements Command.
func (ScaleCommand) Type() CommandType { return CmdScale }

// RotateCommand replaces the rotation.
type RotateCommand struct {
	Angle float64
}

// Type implements Command.
func (RotateCommand) Type() CommandType { return CmdRotate }

// TranslateCommand pushes a translation.
type TranslateCommand struct {
	DX, DY int
}

// Type implements Command.
func (TranslateCommand) Type() CommandType { return CmdTranslate }

// UntranslateCommand pops the most recent translation.
type UntranslateCommand struct{}

// Type implements Command.
func (UntranslateCommand) Type() CommandType { return CmdUntranslate }

// --------------------------------------------------------------------------
// Style Commands
// --------------------------------------------------------------------------

// SetColorCommand sets the drawing color.
type SetColorCommand struct {
	Color ggprint.Color
}

// Type implements Command.
func (SetColorCommand) Type() CommandType { return CmdSetColor }

// SetLineStyleCommand sets the line style.
type SetLineStyleCommand struct {
	Style page.LineStyle
}

// Type implements Command.
func (SetLineStyleCommand) Type() CommandType { return CmdSetLineStyle }

// SetFontCommand sets the font and size.
type SetFontCommand struct {
	Font text.Font
	Size float64
}

// Type implements Command.
func (SetFontCommand) Type() CommandType { return CmdSetFont }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// LineCommand strokes a segment.
type LineCommand struct {
	X0, Y0, X1, Y1 float64
}

// Type implements Command.
func (LineCommand) Type() CommandType { return CmdLine }

// PolylineCommand strokes connected segments.
type PolylineCommand struct {
	Points []page.Point
}

// Type implements Command.
func (PolylineCommand) Type() CommandType { return CmdPolyline }

// LoopCommand strokes a closed outline.
type LoopCommand struct {
	Points []page.Point
}

// Type implements Command.
func (LoopCommand) Type() CommandType { return CmdLoop }

// PolygonCommand fills a closed outline.
type PolygonCommand struct {
	Points []page.Point
}

// Type implements Command.
func (PolygonCommand) Type() CommandType { return CmdPolygon }

// RectCommand strokes or fills a rectangle.
type RectCommand struct {
	X, Y, W, H float64
	Fill       bool
}

// Type implements Command.
func (RectCommand) Type() CommandType { return CmdRect }

// PointCommand fills a unit square.
type PointCommand struct {
	X, Y float64
}

// Type implements Command.
func (PointCommand) Type() CommandType { return CmdPoint }

// CircleCommand strokes a circle.
type CircleCommand struct {
	X, Y, R float64
}

// Type implements Command.
func (CircleCommand) Type() CommandType { return CmdCircle }

// ArcCommand strokes an elliptical arc, or fills the pie sector when Fill
// is set.
type ArcCommand struct {
	X, Y, W, H float64
	A1, A2     float64
	Fill       bool
}

// Type implements Command.
func (ArcCommand) Type() CommandType { return CmdArc }

// DrawTextCommand draws text rotated by Angle degrees around (X, Y).
type DrawTextCommand struct {
	Text  string
	X, Y  float64
	Angle float64
}

// Type implements Command.
func (DrawTextCommand) Type() CommandType { return CmdDrawText }

// DrawImageCommand draws a pooled pixmap into a rectangle.
type DrawImageCommand struct {
	Image      ImageRef
	X, Y, W, H float64
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// --------------------------------------------------------------------------
// Clip Commands
// --------------------------------------------------------------------------

// PushClipCommand intersects the clip with a rectangle.
type PushClipCommand struct {
	X, Y, W, H float64
}

// Type implements Command.
func (PushClipCommand) Type() CommandType { return CmdPushClip }

// PushNoClipCommand disables clipping.
type PushNoClipCommand struct{}

// Type implements Command.
func (PushNoClipCommand) Type() CommandType { return CmdPushNoClip }

// PopClipCommand restores the previous clip.
type PopClipCommand struct{}

// Type implements Command.
func (PopClipCommand) Type() CommandType { return CmdPopClip }
