package recording

import (
	"io"

	"github.com/gogpu/ggprint/page"
	"github.com/gogpu/ggprint/text"
)

// DefaultMargin is the margin, in points, around the printable area.
const DefaultMargin = 18

// Option configures a Recorder.
type Option func(*options)

type options struct {
	dump       io.Writer
	format     page.Format
	layout     page.Layout
	leftMargin float64
	topMargin  float64
	deferred   bool
	measurer   *text.Measurer
}

func defaultOptions() options {
	return options{
		format:     page.A4,
		layout:     page.Portrait,
		leftMargin: DefaultMargin,
		topMargin:  DefaultMargin,
	}
}

// WithDump writes a text dump of every finished job to w.
func WithDump(w io.Writer) Option {
	return func(o *options) {
		o.dump = w
	}
}

// WithFormat selects the paper format used for page geometry queries.
func WithFormat(f page.Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithLayout selects the page orientation.
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

// WithDeferredImages holds retained resources until the end of the page.
func WithDeferredImages(deferred bool) Option {
	return func(o *options) {
		o.deferred = deferred
	}
}

// WithMeasurer sets the text measurer used for metrics queries.
func WithMeasurer(m *text.Measurer) Option {
	return func(o *options) {
		o.measurer = m
	}
}
