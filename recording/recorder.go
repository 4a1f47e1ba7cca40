package recording

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/gogpu/ggprint"
	"github.com/gogpu/ggprint/internal/clip"
	"github.com/gogpu/ggprint/page"
	"github.com/gogpu/ggprint/text"
)

func init() {
	page.Register("recording", func(w io.Writer) page.Canvas {
		if w == nil {
			return NewRecorder()
		}
		return NewRecorder(WithDump(w))
	})
}

// Recorder captures page operations as commands.
// It implements page.Canvas with the same lifecycle rules as the output
// devices. Use FinishRecording to obtain the Recording of the last
// completed job.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	page.Machine

	opts     options
	measurer *text.Measurer

	frame  page.Frame
	clips  *clip.Stack
	res    page.Resources
	scopes []bool // true for a clip scope, false for a translation

	color ggprint.Color
	line  page.LineStyle
	font  text.Font
	size  float64

	pages     [][]Command
	resources *ResourcePool
	seqErr    error
	finished  *Recording
}

// DefaultFontSize is the font size in effect at the start of every page.
const DefaultFontSize = 14

// NewRecorder creates an idle recorder.
func NewRecorder(opts ...Option) *Recorder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m := o.measurer
	if m == nil {
		m = text.Default()
	}
	return &Recorder{
		opts:     o,
		measurer: m,
		frame:    page.NewFrame(),
		clips:    clip.NewStack(),
		res:      page.Resources{Deferred: o.deferred},
		color:    ggprint.Black,
		font:     text.Helvetica,
		size:     DefaultFontSize,
	}
}

// FinishRecording returns the Recording of the last completed job, or nil
// if no job has completed.
func (r *Recorder) FinishRecording() *Recording {
	return r.finished
}

// --------------------------------------------------------------------------
// Job and page lifecycle
// --------------------------------------------------------------------------

// StartJob starts recording a job.
func (r *Recorder) StartJob(pageCount int) (from, to int, err error) {
	if err := r.Machine.StartJob(pageCount); err != nil {
		return 0, 0, err
	}
	r.pages = nil
	r.resources = NewResourcePool()
	r.seqErr = nil
	from, to = page.PageRange(pageCount)
	return from, to, nil
}

// StartPage opens a new page with an identity frame.
func (r *Recorder) StartPage() error {
	if err := r.Machine.StartPage(); err != nil {
		return err
	}
	r.frame.Reset()
	r.clips.Reset()
	r.scopes = r.scopes[:0]
	r.color = ggprint.Black
	r.line = page.LineStyle{}
	r.font, r.size = text.Helvetica, DefaultFontSize
	r.pages = append(r.pages, make([]Command, 0, 64))
	return nil
}

// PrintableRect returns the printable area in current units.
func (r *Recorder) PrintableRect() (w, h int, err error) {
	if err := r.RequirePage(); err != nil {
		return 0, 0, err
	}
	pw, ph := r.opts.layout.PageSize(r.opts.format)
	w, h = r.frame.PrintableRect(float64(pw), float64(ph), r.opts.leftMargin, r.opts.topMargin)
	return w, h, nil
}

// Margins returns the margins in current units.
func (r *Recorder) Margins() (left, top, right, bottom int, err error) {
	if err := r.RequirePage(); err != nil {
		return 0, 0, 0, 0, err
	}
	left, top, right, bottom = r.frame.Margins(r.opts.leftMargin, r.opts.topMargin)
	return left, top, right, bottom, nil
}

// EndPage closes the page. Open clips and translations are closed with
// recorded pops so the page replays balanced.
func (r *Recorder) EndPage() error {
	if err := r.RequirePage(); err != nil {
		return err
	}
	var errs []error
	if n := r.clips.Depth(); n > 0 {
		ggprint.Logger().Warn("recording: unbalanced clip stack at end of page", "depth", n)
		errs = append(errs, page.ErrUnbalancedClip)
	}
	if n := r.frame.Depth(); n > 0 {
		ggprint.Logger().Warn("recording: unbalanced translate at end of page", "depth", n)
		errs = append(errs, page.ErrUnbalancedTranslate)
	}
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if r.scopes[i] {
			r.record(PopClipCommand{})
		} else {
			r.record(UntranslateCommand{})
		}
	}
	r.scopes = r.scopes[:0]
	r.clips.Reset()
	r.frame.Reset()
	r.res.ReleaseAll()
	_ = r.Machine.EndPage()
	return r.takeErrors(errs)
}

// EndJob ends an open page, finishes the Recording and writes the dump.
func (r *Recorder) EndJob() error {
	if r.State() == page.Idle {
		return nil
	}
	var errs []error
	if r.State() == page.PageOpen {
		if err := r.EndPage(); err != nil {
			errs = append(errs, err)
		}
	}
	r.finished = &Recording{
		format:    r.opts.format,
		layout:    r.opts.layout,
		bound:     r.Bound(),
		pages:     r.pages,
		resources: r.resources,
	}
	r.pages = nil
	r.Machine.EndJob()
	if r.opts.dump != nil {
		if _, err := r.finished.WriteTo(r.opts.dump); err != nil {
			errs = append(errs, fmt.Errorf("recording: write dump: %w", err))
		}
	}
	return r.takeErrors(errs)
}

func (r *Recorder) takeErrors(errs []error) error {
	if r.seqErr != nil {
		errs = append(errs, r.seqErr)
		r.seqErr = nil
	}
	return errors.Join(errs...)
}

// Retain hands res to the open page.
func (r *Recorder) Retain(res page.Resource) {
	r.res.Retain(res)
}

// --------------------------------------------------------------------------
// Frame
// --------------------------------------------------------------------------

// SetOrigin places the drawing origin.
func (r *Recorder) SetOrigin(x, y int) {
	if !r.transformable() {
		return
	}
	r.frame.SetOrigin(x, y)
	r.record(SetOriginCommand{X: x, Y: y})
}

// Origin returns the last origin set.
func (r *Recorder) Origin() (x, y int) {
	return r.frame.Origin()
}

// Translation returns the sum of pending translations.
func (r *Recorder) Translation() (dx, dy int) {
	return r.frame.Translation()
}

// Scale replaces the scale and resets the origin.
func (r *Recorder) Scale(sx, sy float64) {
	if !r.transformable() {
		return
	}
	if err := r.frame.SetScale(sx, sy); err != nil {
		r.recordSeq(err)
		return
	}
	sx, sy = r.frame.ScaleFactors()
	r.record(ScaleCommand{SX: sx, SY: sy})
}

// Rotate replaces the rotation.
func (r *Recorder) Rotate(angle float64) {
	if !r.transformable() {
		return
	}
	r.frame.SetRotation(angle)
	r.record(RotateCommand{Angle: angle})
}

// Translate pushes a translation.
func (r *Recorder) Translate(dx, dy int) {
	if !r.onPage() {
		return
	}
	r.frame.Push(dx, dy)
	r.scopes = append(r.scopes, false)
	r.record(TranslateCommand{DX: dx, DY: dy})
}

// Untranslate pops the most recent translation. Clips pushed after it are
// popped first and reported at EndPage.
func (r *Recorder) Untranslate() {
	if !r.onPage() {
		return
	}
	if _, ok := r.frame.Pop(); !ok {
		panic("recording: Untranslate without matching Translate")
	}
	for len(r.scopes) > 0 && r.scopes[len(r.scopes)-1] {
		ggprint.Logger().Warn("recording: clip left open inside translate")
		_ = r.clips.Pop()
		r.scopes = r.scopes[:len(r.scopes)-1]
		r.record(PopClipCommand{})
		r.recordSeq(page.ErrUnbalancedClip)
	}
	if len(r.scopes) > 0 {
		r.scopes = r.scopes[:len(r.scopes)-1]
	}
	r.record(UntranslateCommand{})
}

func (r *Recorder) transformable() bool {
	if !r.onPage() {
		return false
	}
	if len(r.scopes) > 0 {
		r.recordSeq(page.ErrNestedTransform)
		return false
	}
	return true
}

// --------------------------------------------------------------------------
// Style
// --------------------------------------------------------------------------

// SetColor sets the drawing color.
func (r *Recorder) SetColor(c ggprint.Color) {
	r.color = c
	r.record(SetColorCommand{Color: c})
}

// Color returns the drawing color.
func (r *Recorder) Color() ggprint.Color {
	return r.color
}

// SetLineStyle sets the line style.
func (r *Recorder) SetLineStyle(ls page.LineStyle) {
	ls.Dashes = slices.Clone(ls.Dashes)
	r.line = ls
	r.record(SetLineStyleCommand{Style: ls})
}

// LineStyle returns the line style.
func (r *Recorder) LineStyle() page.LineStyle {
	return r.line
}

// SetFont sets the font and size. Invalid fonts fall back to Helvetica and
// non-positive sizes to DefaultFontSize.
func (r *Recorder) SetFont(f text.Font, size float64) {
	if !f.Valid() {
		f = text.Helvetica
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	r.font, r.size = f, size
	r.record(SetFontCommand{Font: f, Size: size})
}

// Font returns the font and size.
func (r *Recorder) Font() (text.Font, float64) {
	return r.font, r.size
}

// TextWidth returns the advance width of s in the current font.
func (r *Recorder) TextWidth(s string) float64 {
	return r.measurer.Width(s, r.font, r.size)
}

// Descent returns the descent of the current font.
func (r *Recorder) Descent() float64 {
	return r.measurer.Metrics(r.font, r.size).Descent
}

// Height returns the line height of the current font.
func (r *Recorder) Height() float64 {
	return r.measurer.Metrics(r.font, r.size).Height
}

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

// Line records a segment.
func (r *Recorder) Line(x0, y0, x1, y1 float64) {
	r.draw(LineCommand{X0: x0, Y0: y0, X1: x1, Y1: y1})
}

// Polyline records connected segments.
func (r *Recorder) Polyline(pts ...page.Point) {
	r.draw(PolylineCommand{Points: slices.Clone(pts)})
}

// Loop records a closed outline.
func (r *Recorder) Loop(pts ...page.Point) {
	r.draw(LoopCommand{Points: slices.Clone(pts)})
}

// Polygon records a filled outline.
func (r *Recorder) Polygon(pts ...page.Point) {
	r.draw(PolygonCommand{Points: slices.Clone(pts)})
}

// Rect records a stroked rectangle.
func (r *Recorder) Rect(x, y, w, h float64) {
	r.draw(RectCommand{X: x, Y: y, W: w, H: h})
}

// RectFill records a filled rectangle.
func (r *Recorder) RectFill(x, y, w, h float64) {
	r.draw(RectCommand{X: x, Y: y, W: w, H: h, Fill: true})
}

// Point records a unit square.
func (r *Recorder) Point(x, y float64) {
	r.draw(PointCommand{X: x, Y: y})
}

// Circle records a stroked circle.
func (r *Recorder) Circle(x, y, radius float64) {
	r.draw(CircleCommand{X: x, Y: y, R: radius})
}

// Arc records an elliptical arc.
func (r *Recorder) Arc(x, y, w, h, a1, a2 float64) {
	r.draw(ArcCommand{X: x, Y: y, W: w, H: h, A1: a1, A2: a2})
}

// Pie records a filled pie sector.
func (r *Recorder) Pie(x, y, w, h, a1, a2 float64) {
	r.draw(ArcCommand{X: x, Y: y, W: w, H: h, A1: a1, A2: a2, Fill: true})
}

// DrawText records horizontal text.
func (r *Recorder) DrawText(s string, x, y float64) {
	r.draw(DrawTextCommand{Text: s, X: x, Y: y})
}

// DrawTextAngle records rotated text.
func (r *Recorder) DrawTextAngle(angle float64, s string, x, y float64) {
	r.draw(DrawTextCommand{Text: s, X: x, Y: y, Angle: angle})
}

// DrawImage copies img into the recording and records its placement.
func (r *Recorder) DrawImage(img *ggprint.Pixmap, x, y, w, h float64) {
	if !r.onPage() {
		return
	}
	ref := r.resources.AddImage(img)
	if !ref.IsValid() {
		return
	}
	r.record(DrawImageCommand{Image: ref, X: x, Y: y, W: w, H: h})
}

// PushClip records a clip push.
func (r *Recorder) PushClip(x, y, w, h float64) {
	if !r.onPage() {
		return
	}
	r.clips.Push(clip.NewRect(x, y, max(w, 0), max(h, 0)))
	r.scopes = append(r.scopes, true)
	r.record(PushClipCommand{X: x, Y: y, W: w, H: h})
}

// PushNoClip records a push that disables clipping.
func (r *Recorder) PushNoClip() {
	if !r.onPage() {
		return
	}
	r.clips.PushNone()
	r.scopes = append(r.scopes, true)
	r.record(PushNoClipCommand{})
}

// PopClip records a clip pop. It panics when no clip is pushed or when a
// Translate made after the push is still pending.
func (r *Recorder) PopClip() {
	if !r.onPage() {
		return
	}
	if err := r.clips.Pop(); err != nil {
		panic("recording: " + err.Error())
	}
	if n := len(r.scopes); n > 0 {
		if !r.scopes[n-1] {
			panic("recording: PopClip crosses a pending Translate")
		}
		r.scopes = r.scopes[:n-1]
	}
	r.record(PopClipCommand{})
}

// ClipBox intersects a rectangle with the current clip.
func (r *Recorder) ClipBox(x, y, w, h float64) (cx, cy, cw, ch float64, changed bool) {
	out, changed := r.clips.Box(clip.NewRect(x, y, w, h))
	return out.X, out.Y, out.W, out.H, changed
}

// NotClipped reports whether any part of a rectangle is visible.
func (r *Recorder) NotClipped(x, y, w, h float64) bool {
	return r.clips.Visible(clip.NewRect(x, y, w, h))
}

// draw records a drawing command if a page is open.
func (r *Recorder) draw(cmd Command) {
	if !r.onPage() {
		return
	}
	r.record(cmd)
}

// record appends cmd to the open page. Style changes made outside a page
// only update the current state.
func (r *Recorder) record(cmd Command) {
	if r.State() != page.PageOpen {
		return
	}
	n := len(r.pages) - 1
	r.pages[n] = append(r.pages[n], cmd)
}

func (r *Recorder) onPage() bool {
	if r.State() != page.PageOpen {
		r.recordSeq(page.ErrNoPage)
		return false
	}
	return true
}

func (r *Recorder) recordSeq(err error) {
	if r.seqErr == nil {
		r.seqErr = err
		ggprint.Logger().Warn("recording: sequencing error", "err", err)
	}
}
