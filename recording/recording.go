package recording

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/ggprint/page"
)

// Recording is an immutable container for the commands of one job.
// It can be replayed to any page.Canvas.
type Recording struct {
	format    page.Format
	layout    page.Layout
	bound     int
	pages     [][]Command
	resources *ResourcePool
}

// Format returns the paper format the job was recorded for.
func (r *Recording) Format() page.Format {
	return r.format
}

// Layout returns the page layout the job was recorded for.
func (r *Recording) Layout() page.Layout {
	return r.layout
}

// PageCount returns the number of recorded pages.
func (r *Recording) PageCount() int {
	return len(r.pages)
}

// Pages returns the commands of every page, in order.
func (r *Recording) Pages() [][]Command {
	return r.pages
}

// Commands returns the commands of page i (0-based), or nil when out of
// range.
func (r *Recording) Commands(i int) []Command {
	if i < 0 || i >= len(r.pages) {
		return nil
	}
	return r.pages[i]
}

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool {
	return r.resources
}

// Release returns the recorded pixel data to the pixmap pool. The
// recording cannot be replayed with images afterwards.
func (r *Recording) Release() {
	r.resources.Release()
}

// Bound returns the page count declared when the job was recorded
// (0 = unbounded).
func (r *Recording) Bound() int {
	return r.bound
}

// Playback replays the recording as one job on c, declaring the number of
// recorded pages as the job's page count.
func (r *Recording) Playback(c page.Canvas) error {
	if _, _, err := c.StartJob(len(r.pages)); err != nil {
		return fmt.Errorf("recording: playback: %w", err)
	}
	var errs []error
	for i, cmds := range r.pages {
		if err := c.StartPage(); err != nil {
			errs = append(errs, fmt.Errorf("recording: playback page %d: %w", i+1, err))
			break
		}
		r.replay(c, cmds)
		if err := c.EndPage(); err != nil {
			errs = append(errs, fmt.Errorf("recording: playback page %d: %w", i+1, err))
		}
	}
	if err := c.EndJob(); err != nil {
		errs = append(errs, fmt.Errorf("recording: playback: %w", err))
	}
	return errors.Join(errs...)
}

// replay applies the commands of one page.
func (r *Recording) replay(c page.Canvas, cmds []Command) {
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case SetOriginCommand:
			c.SetOrigin(cmd.X, cmd.Y)
		case ScaleCommand:
			c.Scale(cmd.SX, cmd.SY)
		case RotateCommand:
			c.Rotate(cmd.Angle)
		case TranslateCommand:
			c.Translate(cmd.DX, cmd.DY)
		case UntranslateCommand:
			c.Untranslate()
		case SetColorCommand:
			c.SetColor(cmd.Color)
		case SetLineStyleCommand:
			c.SetLineStyle(cmd.Style)
		case SetFontCommand:
			c.SetFont(cmd.Font, cmd.Size)
		case LineCommand:
			c.Line(cmd.X0, cmd.Y0, cmd.X1, cmd.Y1)
		case PolylineCommand:
			c.Polyline(cmd.Points...)
		case LoopCommand:
			c.Loop(cmd.Points...)
		case PolygonCommand:
			c.Polygon(cmd.Points...)
		case RectCommand:
			if cmd.Fill {
				c.RectFill(cmd.X, cmd.Y, cmd.W, cmd.H)
			} else {
				c.Rect(cmd.X, cmd.Y, cmd.W, cmd.H)
			}
		case PointCommand:
			c.Point(cmd.X, cmd.Y)
		case CircleCommand:
			c.Circle(cmd.X, cmd.Y, cmd.R)
		case ArcCommand:
			if cmd.Fill {
				c.Pie(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.A1, cmd.A2)
			} else {
				c.Arc(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.A1, cmd.A2)
			}
		case DrawTextCommand:
			if cmd.Angle != 0 {
				c.DrawTextAngle(cmd.Angle, cmd.Text, cmd.X, cmd.Y)
			} else {
				c.DrawText(cmd.Text, cmd.X, cmd.Y)
			}
		case DrawImageCommand:
			if img := r.resources.Image(cmd.Image); img != nil {
				c.DrawImage(img, cmd.X, cmd.Y, cmd.W, cmd.H)
			}
		case PushClipCommand:
			c.PushClip(cmd.X, cmd.Y, cmd.W, cmd.H)
		case PushNoClipCommand:
			c.PushNoClip()
		case PopClipCommand:
			c.PopClip()
		}
	}
}

// WriteTo writes a text dump of the recording to w, one command per
// line under a header line per page. It implements io.WriterTo.
func (r *Recording) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	fmt.Fprintf(bw, "job %s %s pages=%d\n", r.format, r.layout, len(r.pages))
	for i, cmds := range r.pages {
		fmt.Fprintf(bw, "page %d\n", i+1)
		for _, cmd := range cmds {
			fmt.Fprintf(bw, "\t%s %+v\n", cmd.Type(), cmd)
		}
	}
	err := bw.Flush()
	return cw.n, err
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
