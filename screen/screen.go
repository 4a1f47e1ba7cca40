// Package screen provides an in-memory display for pixel read-back.
//
// A Screen holds the pixels of a set of windows and a stacking order. It
// implements capture.Display, so the capture package can print windows
// whose contents are only available as pixels, without a window system.
//
//	scr := screen.New(screen.WithMaxTransfer(500))
//	scr.AddWindow(glView, frame) // frame is an *image.RGBA
//	p := capture.NewPrinter(dev, capture.WithDisplay(scr))
package screen

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/ggprint"
	"github.com/gogpu/ggprint/capture"
)

var (
	// ErrUnknownWindow is returned for windows that were never added.
	ErrUnknownWindow = errors.New("screen: unknown window")

	// ErrNotFront is returned by ReadRegion when the window is covered by
	// another window.
	ErrNotFront = errors.New("screen: window is not in front")

	// ErrTransferLimit is returned by ReadRegion for regions wider than
	// the transfer limit.
	ErrTransferLimit = errors.New("screen: region exceeds transfer limit")
)

// Option configures a Screen.
type Option func(*Screen)

// WithMaxTransfer limits the width of a single read-back, like platforms
// that cannot transfer wide regions at once. Zero means no limit.
func WithMaxTransfer(w int) Option {
	return func(s *Screen) {
		s.maxTransfer = w
	}
}

// WithOutputScale sets the pixels per unit of read-back results. Zero
// keeps the resolution of each window's backing image.
func WithOutputScale(f float64) Option {
	return func(s *Screen) {
		s.outputScale = f
	}
}

// WithInterpolator sets the resampler used when the output scale differs
// from a window's resolution. The default is draw.ApproxBiLinear.
func WithInterpolator(i draw.Interpolator) Option {
	return func(s *Screen) {
		s.interp = i
	}
}

type window struct {
	img   *image.RGBA
	scale float64 // backing pixels per unit
}

// Screen is an in-memory display. It is safe for concurrent use.
type Screen struct {
	mu          sync.Mutex
	windows     map[capture.Node]*window
	order       []capture.Node // back to front
	maxTransfer int
	outputScale float64
	interp      draw.Interpolator
}

var _ capture.Display = (*Screen)(nil)

// New creates an empty screen.
func New(opts ...Option) *Screen {
	s := &Screen{
		windows: make(map[capture.Node]*window),
		interp:  draw.ApproxBiLinear,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddWindow registers win with its backing pixels and puts it in front.
// The resolution is the ratio between the image width and the window
// width. Nodes are used as map keys and must be comparable.
func (s *Screen) AddWindow(win capture.Node, img *image.RGBA) error {
	if win == nil || img == nil {
		return fmt.Errorf("screen: AddWindow needs a window and an image")
	}
	scale := 1.0
	if w := win.Bounds().W; w > 0 && img.Bounds().Dx() > 0 {
		scale = float64(img.Bounds().Dx()) / float64(w)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[win] = &window{img: img, scale: scale}
	s.raise(win)
	return nil
}

// RemoveWindow forgets win.
func (s *Screen) RemoveWindow(win capture.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, win)
	s.order = slices.DeleteFunc(s.order, func(n capture.Node) bool { return n == win })
}

// FrontWindow implements capture.Display.
func (s *Screen) FrontWindow() capture.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return nil
	}
	return s.order[len(s.order)-1]
}

// Show implements capture.Display.
func (s *Screen) Show(win capture.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.windows[win]; !ok {
		return ErrUnknownWindow
	}
	s.raise(win)
	return nil
}

func (s *Screen) raise(win capture.Node) {
	s.order = slices.DeleteFunc(s.order, func(n capture.Node) bool { return n == win })
	s.order = append(s.order, win)
}

// ReadRegion implements capture.Display. The region is given in window
// units. Parts of it outside the window read as white, so the result always
// covers the whole region; a region entirely outside yields a nil pixmap.
// The result is a depth 3 pixmap owned by the caller.
func (s *Screen) ReadRegion(win capture.Node, x, y, w, h int) (*ggprint.Pixmap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wd, ok := s.windows[win]
	if !ok {
		return nil, ErrUnknownWindow
	}
	if s.order[len(s.order)-1] != win {
		return nil, ErrNotFront
	}
	if s.maxTransfer > 0 && w > s.maxTransfer {
		return nil, fmt.Errorf("%w: %d > %d", ErrTransferLimit, w, s.maxTransfer)
	}
	if w <= 0 || h <= 0 {
		return nil, nil
	}

	bounds := wd.img.Bounds()
	req := image.Rect(
		int(float64(x)*wd.scale), int(float64(y)*wd.scale),
		int(float64(x+w)*wd.scale), int(float64(y+h)*wd.scale),
	).Add(bounds.Min)
	src := req.Intersect(bounds)
	if src.Empty() {
		return nil, nil
	}

	out := wd.scale
	if s.outputScale > 0 {
		out = s.outputScale
	}
	k := out / wd.scale
	scaled := func(v int) int { return int(float64(v)*k + 0.5) }

	dst := image.NewRGBA(image.Rect(0, 0, max(scaled(req.Dx()), 1), max(scaled(req.Dy()), 1)))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(ggprint.White.Color()), image.Point{}, draw.Src)
	at := image.Rect(
		scaled(src.Min.X-req.Min.X), scaled(src.Min.Y-req.Min.Y),
		scaled(src.Max.X-req.Min.X), scaled(src.Max.Y-req.Min.Y),
	).Intersect(dst.Bounds())
	if at.Empty() {
		return nil, nil
	}
	if at.Dx() == src.Dx() && at.Dy() == src.Dy() {
		draw.Copy(dst, at.Min, wd.img, src, draw.Src, nil)
	} else {
		s.interp.Scale(dst, at, wd.img, src, draw.Src, nil)
	}
	return ggprint.FromRGBA(dst)
}
