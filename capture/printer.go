package capture

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/ggprint"
	"github.com/gogpu/ggprint/page"
)

// DefaultChunkWidth is the widest region read back in one transfer.
const DefaultChunkWidth = 500

// ErrNoDisplay is returned by PrintWindowPart when the Printer has no
// Display.
var ErrNoDisplay = errors.New("capture: no display for pixel read-back")

// ErrNothingCaptured is returned by ReadbackSurfacePrinter when no part of
// the surface could be read back.
var ErrNothingCaptured = errors.New("capture: no pixels read back")

// Display is the window system side of a capture: it can raise windows
// and read their pixels back.
type Display interface {
	// FrontWindow returns the window currently in front, or nil.
	FrontWindow() Node

	// Show raises win to the front so its pixels are current.
	Show(win Node) error

	// ReadRegion reads a region of win in window coordinates. A nil
	// pixmap with a nil error means there was nothing to read.
	ReadRegion(win Node, x, y, w, h int) (*ggprint.Pixmap, error)
}

// Option configures a Printer.
type Option func(*Printer)

// WithDisplay sets the display used for pixel read-back.
func WithDisplay(d Display) Option {
	return func(p *Printer) {
		p.Display = d
	}
}

// WithChunkWidth sets the widest region read back in one transfer. Zero
// reads every region in one piece; negative values are ignored.
func WithChunkWidth(w int) Option {
	return func(p *Printer) {
		if w >= 0 {
			p.ChunkWidth = w
		}
	}
}

// Printer prints widget trees onto a canvas.
//
// A Printer is not safe for concurrent use, and a canvas must not be
// shared between printers running concurrently.
type Printer struct {
	Canvas     page.Canvas
	Display    Display
	ChunkWidth int
}

// NewPrinter creates a printer drawing onto c.
func NewPrinter(c page.Canvas, opts ...Option) *Printer {
	p := &Printer{Canvas: c, ChunkWidth: DefaultChunkWidth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PrintWidget draws n and its subtree with n's top-left corner at offset
// (dx, dy) from the current origin. Invisible nodes are skipped. Draw
// errors do not stop the traversal; they are returned together once the
// whole subtree has been visited.
func (p *Printer) PrintWidget(n Node, dx, dy int) error {
	if n == nil || !n.Visible() {
		return nil
	}
	n.Damage()

	c := p.Canvas
	oldX, oldY := c.Origin()
	newX, newY := oldX+dx, oldY+dy
	if !n.Kind().IsWindow() {
		b := n.Bounds()
		newX -= b.X
		newY -= b.Y
	}
	if tx, ty := newX-oldX, newY-oldY; tx != 0 || ty != 0 {
		c.Translate(tx, ty)
		defer c.Untranslate()
	}

	drawErr := p.drawNode(n)
	return errors.Join(drawErr, p.traverse(n))
}

// drawNode draws n itself, clipped to its bounds when it is a window.
func (p *Printer) drawNode(n Node) error {
	c := p.Canvas
	kind := n.Kind()
	if kind.IsWindow() {
		b := n.Bounds()
		c.PushClip(0, 0, float64(b.W), float64(b.H))
		defer c.PopClip()
	}
	if kind.IsAccelerated() {
		if sp, ok := LookupSurfacePrinter(SurfacePlugin); ok {
			err := sp.PrintSurface(c, n)
			if err == nil {
				return nil
			}
			ggprint.Logger().Warn("capture: surface printer failed, drawing widget instead", "err", err)
		}
	}
	return n.Draw(c)
}

// traverse prints the windows nested anywhere below n at their position
// within n.
func (p *Printer) traverse(n Node) error {
	if !n.Kind().HasChildren() {
		return nil
	}
	var errs []error
	for _, child := range n.Children() {
		if child == nil || !child.Visible() {
			continue
		}
		var err error
		if child.Kind().IsWindow() {
			b := child.Bounds()
			err = p.PrintWidget(child, b.X, b.Y)
		} else {
			err = p.traverse(child)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// chunk is one captured slice of a region.
type chunk struct {
	img    *ggprint.Pixmap
	offset int
	width  int
}

// PrintWindowPart captures the region (x, y, w, h) of win from the display
// and draws it with its top-left corner at (dx, dy). Wide regions are read
// in slices of ChunkWidth. Slices that cannot be read are skipped.
//
// Each captured buffer is handed to the canvas with Retain once drawn.
func (p *Printer) PrintWindowPart(win Node, x, y, w, h, dx, dy int) error {
	_, err := p.printWindowPart(win, x, y, w, h, dx, dy)
	return err
}

// printWindowPart does the work of PrintWindowPart and reports how many
// chunks reached the canvas.
func (p *Printer) printWindowPart(win Node, x, y, w, h, dx, dy int) (int, error) {
	if p.Display == nil {
		return 0, ErrNoDisplay
	}
	if w <= 0 || h <= 0 {
		return 0, nil
	}
	log := ggprint.Logger()

	front := p.Display.FrontWindow()
	if err := p.Display.Show(win); err != nil {
		return 0, fmt.Errorf("capture: show window: %w", err)
	}

	step := p.ChunkWidth
	if step <= 0 {
		step = w
	}
	chunks := make([]chunk, 0, (w+step-1)/step)
	for off := 0; off < w; off += step {
		cw := min(step, w-off)
		img, err := p.Display.ReadRegion(win, x+off, y, cw, h)
		switch {
		case err != nil:
			log.Warn("capture: read-back failed, chunk skipped", "x", x+off, "y", y, "w", cw, "h", h, "err", err)
			continue
		case img == nil:
			log.Warn("capture: empty read-back, chunk skipped", "x", x+off, "y", y, "w", cw, "h", h)
			continue
		}
		chunks = append(chunks, chunk{img: img, offset: off, width: cw})
	}

	if front != nil {
		if err := p.Display.Show(front); err != nil {
			log.Warn("capture: restoring front window failed", "err", err)
		}
	}

	c := p.Canvas
	for _, ch := range chunks {
		c.DrawImage(ch.img, float64(dx+ch.offset), float64(dy), float64(ch.width), float64(h))
		c.Retain(ch.img)
	}
	return len(chunks), nil
}

// FitToPage scales the page so that n fits the printable area and centres
// it. It only shrinks; widgets that already fit print at scale 1. It must
// be called with a page open and no translations or clips pushed.
func (p *Printer) FitToPage(n Node) error {
	c := p.Canvas
	w, h, err := c.PrintableRect()
	if err != nil {
		return err
	}
	b := n.Bounds()
	if b.W <= 0 || b.H <= 0 {
		return nil
	}
	s := math.Min(float64(w)/float64(b.W), float64(h)/float64(b.H))
	if s < 1 {
		c.Scale(s, s)
		if w, h, err = c.PrintableRect(); err != nil {
			return err
		}
	}
	c.SetOrigin(max((w-b.W)/2, 0), max((h-b.H)/2, 0))
	return nil
}
