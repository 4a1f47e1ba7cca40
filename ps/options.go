package ps

import (
	"io"

	"github.com/gogpu/ggprint"
	"github.com/gogpu/ggprint/page"
	"github.com/gogpu/ggprint/text"
)

// DefaultMargin is the margin, in points, between the media edge and the
// printable area on every side.
const DefaultMargin = 18

// Option configures a Device during creation.
//
// Example:
//
//	dev := ps.New(ps.WithFile("out.ps"), ps.WithFormat(page.Letter), ps.WithLayout(page.Landscape))
type Option func(*options)

// options holds optional configuration for Device creation.
type options struct {
	writer      io.Writer
	path        string
	format      page.Format
	layout      page.Layout
	leftMargin  float64
	topMargin   float64
	level       int
	title       string
	creator     string
	deferred    bool
	interpolate bool
	background  ggprint.Color
	closeFunc   func(io.Writer) error
	measurer    *text.Measurer
}

// defaultOptions returns the default device options.
func defaultOptions() options {
	return options{
		format:     page.A4,
		layout:     page.Portrait,
		leftMargin: DefaultMargin,
		topMargin:  DefaultMargin,
		level:      2,
		creator:    "ggprint " + ggprint.Version,
		background: ggprint.White,
	}
}

// WithWriter sends the output to w. The writer is not closed by EndJob
// unless WithCloseFunc is given.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithFile creates (or truncates) path at StartJob and closes it at
// EndJob. A file that cannot be created makes StartJob fail.
func WithFile(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithFormat selects the paper format.
func WithFormat(f page.Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithLayout selects portrait or landscape, optionally reversed.
func WithLayout(l page.Layout) Option {
	return func(o *options) {
		o.layout = l
	}
}

// WithMargins sets the left/right and top/bottom margins in points.
func WithMargins(left, top float64) Option {
	return func(o *options) {
		o.leftMargin = left
		o.topMargin = top
	}
}

// WithLanguageLevel selects PostScript language level 2 or 3. Other
// values are ignored.
func WithLanguageLevel(level int) Option {
	return func(o *options) {
		if level == 2 || level == 3 {
			o.level = level
		}
	}
}

// WithTitle sets the %%Title comment.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithCreator sets the %%Creator comment.
func WithCreator(creator string) Option {
	return func(o *options) {
		o.creator = creator
	}
}

// WithDeferredImages keeps captured pixel buffers handed to Retain alive
// until the end of the page instead of releasing them immediately.
func WithDeferredImages(deferred bool) Option {
	return func(o *options) {
		o.deferred = deferred
	}
}

// WithInterpolate asks the interpreter to smooth scaled images.
func WithInterpolate(interpolate bool) Option {
	return func(o *options) {
		o.interpolate = interpolate
	}
}

// WithBackground sets the colour that translucent image pixels are
// composited over.
func WithBackground(c ggprint.Color) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithCloseFunc runs fn on the output at EndJob, after the trailer is
// flushed. Use it to close a pipe or hand the stream to a spooler.
func WithCloseFunc(fn func(io.Writer) error) Option {
	return func(o *options) {
		o.closeFunc = fn
	}
}

// WithMeasurer sets the text measurer used by TextWidth, Descent and
// Height. The default is text.Default().
func WithMeasurer(m *text.Measurer) Option {
	return func(o *options) {
		o.measurer = m
	}
}
