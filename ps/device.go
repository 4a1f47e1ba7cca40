package ps

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/gogpu/ggprint"
	"github.com/gogpu/ggprint/internal/clip"
	"github.com/gogpu/ggprint/page"
	"github.com/gogpu/ggprint/text"
)

func init() {
	page.Register("ps", func(w io.Writer) page.Canvas {
		return New(WithWriter(w))
	})
}

// Device is a page.Canvas that writes PostScript.
//
// Device is not safe for concurrent use.
type Device struct {
	page.Machine

	opts     options
	measurer *text.Measurer

	out    *bufio.Writer
	sink   io.Writer
	file   *os.File
	err    error // sticky write error
	seqErr error // sequencing error waiting to be reported

	frame  page.Frame
	res    page.Resources
	clips  *clip.Stack
	scopes []scope

	// requested drawing state
	color ggprint.Color
	line  page.LineStyle
	font  text.Font
	size  float64

	// state in effect in the output stream
	emitted gstate
}

// DefaultFontSize is the font size in effect at the start of every page.
const DefaultFontSize = 14

// New creates a PostScript device. No output is produced until StartJob.
func New(opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m := o.measurer
	if m == nil {
		m = text.Default()
	}
	return &Device{
		opts:     o,
		measurer: m,
		frame:    page.NewFrame(),
		res:      page.Resources{Deferred: o.deferred},
		clips:    clip.NewStack(),
		color:    ggprint.Black,
		font:     text.Helvetica,
		size:     DefaultFontSize,
	}
}

// Err returns the first write error, if any.
func (d *Device) Err() error {
	return d.err
}

// PageSize returns the logical page size in points, after orientation.
func (d *Device) PageSize() (width, height int) {
	return d.opts.layout.PageSize(d.opts.format)
}

// StartJob opens the output and writes the document header.
func (d *Device) StartJob(pageCount int) (from, to int, err error) {
	if d.State() != page.Idle {
		return 0, 0, page.ErrJobActive
	}
	if pageCount < 0 {
		return 0, 0, page.ErrPageCount
	}
	if err := d.openSink(); err != nil {
		return 0, 0, err
	}
	if err := d.Machine.StartJob(pageCount); err != nil {
		return 0, 0, err
	}
	d.err = nil
	d.seqErr = nil
	d.writeHeader(pageCount)
	from, to = page.PageRange(pageCount)
	ggprint.Logger().Debug("ps: job started", "pages", pageCount,
		"format", d.opts.format.String(), "layout", d.opts.layout.String())
	return from, to, nil
}

func (d *Device) openSink() error {
	switch {
	case d.opts.path != "":
		f, err := os.Create(d.opts.path)
		if err != nil {
			return fmt.Errorf("ps: open output: %w", err)
		}
		d.file = f
		d.sink = f
	case d.opts.writer != nil:
		d.sink = d.opts.writer
	default:
		return page.ErrNoSink
	}
	if d.out == nil {
		d.out = bufio.NewWriter(d.sink)
	} else {
		d.out.Reset(d.sink)
	}
	return nil
}

func (d *Device) writeHeader(pageCount int) {
	mw, mh := d.opts.format.Size()
	d.writeln("%!PS-Adobe-3.0")
	d.writef("%%%%Creator: %s\n", d.opts.creator)
	if d.opts.title != "" {
		d.writef("%%%%Title: %s\n", d.opts.title)
	}
	if pageCount > 0 {
		d.writef("%%%%Pages: %d\n", pageCount)
	} else {
		d.writeln("%%Pages: (atend)")
	}
	d.writef("%%%%BoundingBox: 0 0 %d %d\n", mw, mh)
	d.writef("%%%%DocumentMedia: %s %d %d 0 () ()\n", d.opts.format.String(), mw, mh)
	d.writef("%%%%Orientation: %s\n", orientation(d.opts.layout))
	d.writef("%%%%LanguageLevel: %d\n", d.opts.level)
	d.writeln("%%DocumentData: Clean7Bit")
	d.writeln("%%EndComments")
	d.writeln("%%BeginProlog")
	d.write(prolog)
	d.writeln("%%EndProlog")
	d.writeln("%%BeginSetup")
	defined := make(map[string]bool)
	for _, f := range text.Fonts() {
		name := f.PostScriptName()
		if !f.Latin1() || defined[name] {
			continue
		}
		defined[name] = true
		d.writef("/%s%s /%s RE\n", name, latin1Suffix, name)
	}
	d.writeln("%%EndSetup")
}

func orientation(l page.Layout) string {
	if l.IsLandscape() {
		return "Landscape"
	}
	return "Portrait"
}

// StartPage writes the page setup and resets the frame and drawing state.
func (d *Device) StartPage() error {
	if err := d.Machine.StartPage(); err != nil {
		return err
	}
	n := d.Pages()
	mw, mh := d.opts.format.Size()
	_, ph := d.PageSize()

	d.frame.Reset()
	d.clips.Reset()
	d.scopes = d.scopes[:0]
	d.color = ggprint.Black
	d.line = page.LineStyle{}
	d.font, d.size = text.Helvetica, DefaultFontSize
	d.emitted = baseState

	d.writef("%%%%Page: %d %d\n", n, n)
	d.writef("%%%%PageBoundingBox: 0 0 %d %d\n", mw, mh)
	d.writef("%%%%PageOrientation: %s\n", orientation(d.opts.layout))
	d.writeln("%%BeginPageSetup")
	d.writeln("/pagesave save def")
	d.writeln("%%EndPageSetup")
	switch d.opts.layout & page.Orientation {
	case page.Landscape:
		d.writef("90 ROT 0 %d TR\n", -mw)
	case page.Landscape | page.Reversed:
		d.writef("-90 ROT %d 0 TR\n", -mh)
	case page.Reversed:
		d.writef("%d %d TR 180 ROT\n", mw, mh)
	}
	d.writef("0 %d TR 1 -1 SC\n", ph)
	d.writef("%s %s TR\n", num(d.opts.leftMargin), num(d.opts.topMargin))
	d.writeln("GS")
	ggprint.Logger().Debug("ps: page started", "page", n)
	return nil
}

// PrintableRect returns the printable area in current units.
func (d *Device) PrintableRect() (w, h int, err error) {
	if err := d.RequirePage(); err != nil {
		return 0, 0, err
	}
	pw, ph := d.PageSize()
	w, h = d.frame.PrintableRect(float64(pw), float64(ph), d.opts.leftMargin, d.opts.topMargin)
	return w, h, nil
}

// Margins returns the margins in current units.
func (d *Device) Margins() (left, top, right, bottom int, err error) {
	if err := d.RequirePage(); err != nil {
		return 0, 0, 0, 0, err
	}
	left, top, right, bottom = d.frame.Margins(d.opts.leftMargin, d.opts.topMargin)
	return left, top, right, bottom, nil
}

// SetOrigin places the drawing origin relative to the printable area.
func (d *Device) SetOrigin(x, y int) {
	if !d.transformable() {
		return
	}
	d.frame.SetOrigin(x, y)
	d.writeFrame()
}

// Origin returns the last origin set.
func (d *Device) Origin() (x, y int) {
	return d.frame.Origin()
}

// Translation returns the sum of pending translations.
func (d *Device) Translation() (dx, dy int) {
	return d.frame.Translation()
}

// Scale replaces the scale and resets the origin.
func (d *Device) Scale(sx, sy float64) {
	if !d.transformable() {
		return
	}
	if err := d.frame.SetScale(sx, sy); err != nil {
		d.recordSeq(err)
		return
	}
	d.writeFrame()
}

// Rotate replaces the rotation.
func (d *Device) Rotate(angle float64) {
	if !d.transformable() {
		return
	}
	d.frame.SetRotation(angle)
	d.writeFrame()
}

func (d *Device) transformable() bool {
	if !d.onPage() {
		return false
	}
	if len(d.scopes) > 0 {
		d.recordSeq(page.ErrNestedTransform)
		return false
	}
	return true
}

// writeFrame replaces the frame level of the graphics state stack.
func (d *Device) writeFrame() {
	sx, sy := d.frame.ScaleFactors()
	ox, oy := d.frame.Origin()
	d.writeln("GR GS")
	d.emitted = baseState
	if sx != 1 || sy != 1 {
		d.writef("%s %s SC\n", num(sx), num(sy))
	}
	if ox != 0 || oy != 0 {
		d.writef("%d %d TR\n", ox, oy)
	}
	if a := d.frame.Rotation(); a != 0 {
		d.writef("%s ROT\n", num(-a))
	}
}

// Translate shifts the coordinate frame until the matching Untranslate.
func (d *Device) Translate(dx, dy int) {
	if !d.onPage() {
		return
	}
	d.frame.Push(dx, dy)
	d.gsave(scopeTranslate)
	d.writef("%d %d TR\n", dx, dy)
}

// Untranslate undoes the most recent Translate. Clips pushed after it and
// still open are closed first and reported at EndPage.
func (d *Device) Untranslate() {
	if !d.onPage() {
		return
	}
	if _, ok := d.frame.Pop(); !ok {
		panic("ps: Untranslate without matching Translate")
	}
	for len(d.scopes) > 0 && d.scopes[len(d.scopes)-1].kind == scopeClip {
		ggprint.Logger().Warn("ps: clip left open inside translate")
		_ = d.clips.Pop()
		d.grestore()
		d.recordSeq(page.ErrUnbalancedClip)
	}
	if len(d.scopes) > 0 {
		d.grestore()
	}
}

// Retain hands r to the open page.
func (d *Device) Retain(r page.Resource) {
	d.res.Retain(r)
}

// EndPage unwinds open scopes, releases page resources and writes
// showpage.
func (d *Device) EndPage() error {
	if err := d.RequirePage(); err != nil {
		return err
	}
	var errs []error
	if n := d.clips.Depth(); n > 0 {
		ggprint.Logger().Warn("ps: unbalanced clip stack at end of page", "depth", n)
		errs = append(errs, page.ErrUnbalancedClip)
	}
	if n := d.frame.Depth(); n > 0 {
		ggprint.Logger().Warn("ps: unbalanced translate at end of page", "depth", n)
		errs = append(errs, page.ErrUnbalancedTranslate)
	}
	for len(d.scopes) > 0 {
		d.grestore()
	}
	d.clips.Reset()
	d.frame.Reset()

	d.writeln("GR")
	d.writeln("pagesave restore")
	d.writeln("showpage")
	d.writeln("%%PageTrailer")
	d.flush()

	released := d.res.ReleaseAll()
	_ = d.Machine.EndPage()
	ggprint.Logger().Debug("ps: page ended", "page", d.Pages(), "released", released)

	return d.takeErrors(errs)
}

// EndJob ends an open page, writes the trailer and closes the output.
func (d *Device) EndJob() error {
	if d.State() == page.Idle {
		return nil
	}
	var errs []error
	if d.State() == page.PageOpen {
		if err := d.EndPage(); err != nil {
			errs = append(errs, err)
		}
	}
	d.writeln("%%Trailer")
	if d.Bound() == 0 {
		d.writef("%%%%Pages: %d\n", d.Pages())
	}
	d.writeln("%%EOF")
	d.flush()

	if d.opts.closeFunc != nil {
		if err := d.opts.closeFunc(d.sink); err != nil {
			errs = append(errs, fmt.Errorf("ps: close output: %w", err))
		}
	}
	if d.file != nil {
		if err := d.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ps: close output: %w", err))
		}
		d.file = nil
	}
	d.sink = nil
	d.res.ReleaseAll()
	d.Machine.EndJob()
	ggprint.Logger().Debug("ps: job ended", "pages", d.Pages())

	return d.takeErrors(errs)
}

// takeErrors joins errs with the pending sequencing error and the sticky
// write error. The sequencing error is reported once.
func (d *Device) takeErrors(errs []error) error {
	if d.seqErr != nil {
		errs = append(errs, d.seqErr)
		d.seqErr = nil
	}
	if d.err != nil {
		errs = append(errs, d.err)
	}
	return errors.Join(errs...)
}

// onPage reports whether a page is open, recording ErrNoPage otherwise.
func (d *Device) onPage() bool {
	if d.State() != page.PageOpen {
		d.recordSeq(page.ErrNoPage)
		return false
	}
	return true
}

func (d *Device) recordSeq(err error) {
	if d.seqErr == nil {
		d.seqErr = err
		ggprint.Logger().Warn("ps: sequencing error", "err", err)
	}
}

func (d *Device) write(s string) {
	if d.err != nil || d.out == nil {
		return
	}
	if _, err := d.out.WriteString(s); err != nil {
		d.err = fmt.Errorf("ps: write: %w", err)
	}
}

func (d *Device) writeln(s string) {
	d.write(s)
	d.write("\n")
}

func (d *Device) writef(format string, args ...any) {
	if d.err != nil || d.out == nil {
		return
	}
	if _, err := fmt.Fprintf(d.out, format, args...); err != nil {
		d.err = fmt.Errorf("ps: write: %w", err)
	}
}

func (d *Device) flush() {
	if d.err != nil || d.out == nil {
		return
	}
	if err := d.out.Flush(); err != nil {
		d.err = fmt.Errorf("ps: write: %w", err)
	}
}

// num formats v with at most three decimals.
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	s := strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
	if s == "-0" {
		return "0"
	}
	return s
}
