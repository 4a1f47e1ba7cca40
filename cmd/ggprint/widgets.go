package main

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/ggprint"
	"github.com/gogpu/ggprint/capture"
	"github.com/gogpu/ggprint/page"
	"github.com/gogpu/ggprint/screen"
	"github.com/gogpu/ggprint/text"
)

// widget is a minimal retained-mode widget for the demo tree.
type widget struct {
	kind     capture.Kind
	bounds   capture.Rect
	label    string
	children []capture.Node
	paint    func(c page.Canvas, w *widget)
}

func (w *widget) Visible() bool            { return true }
func (w *widget) Bounds() capture.Rect     { return w.bounds }
func (w *widget) Kind() capture.Kind       { return w.kind }
func (w *widget) Damage()                  {}
func (w *widget) Children() []capture.Node { return w.children }

func (w *widget) Draw(c page.Canvas) error {
	if w.paint != nil {
		w.paint(c, w)
	}
	if w.kind.HasChildren() {
		return capture.DrawChildren(c, w)
	}
	return nil
}

// box returns the rectangle a widget paints in, which is (0, 0) based for
// windows.
func (w *widget) box() (x, y, bw, bh float64) {
	b := w.bounds
	if w.kind.IsWindow() {
		return 0, 0, float64(b.W), float64(b.H)
	}
	return float64(b.X), float64(b.Y), float64(b.W), float64(b.H)
}

func paintWindow(c page.Canvas, w *widget) {
	x, y, bw, bh := w.box()
	c.SetColor(ggprint.Background)
	c.RectFill(x, y, bw, bh)
	c.SetColor(ggprint.Black)
	c.SetLineStyle(page.LineStyle{Width: 1})
	c.Rect(x, y, bw, bh)
}

func paintLabel(c page.Canvas, w *widget) {
	x, y, _, bh := w.box()
	c.SetColor(ggprint.Black)
	c.SetFont(text.HelveticaBold, 14)
	c.DrawText(w.label, x, y+bh-c.Descent())
}

func paintButton(c page.Canvas, w *widget) {
	x, y, bw, bh := w.box()
	c.SetColor(ggprint.Hex("E0E0E0"))
	c.RectFill(x, y, bw, bh)
	c.SetColor(ggprint.White)
	c.Polyline(page.Pt(x, y+bh-1), page.Pt(x, y), page.Pt(x+bw-1, y))
	c.SetColor(ggprint.Gray(96))
	c.Polyline(page.Pt(x+bw-1, y), page.Pt(x+bw-1, y+bh-1), page.Pt(x, y+bh-1))
	c.SetColor(ggprint.Black)
	c.SetFont(text.Helvetica, 12)
	tw := c.TextWidth(w.label)
	c.DrawText(w.label, x+(bw-tw)/2, y+(bh+c.Height())/2-c.Descent())
}

func paintCheckbox(c page.Canvas, w *widget) {
	x, y, _, bh := w.box()
	s := bh - 4
	c.SetColor(ggprint.White)
	c.RectFill(x, y+2, s, s)
	c.SetColor(ggprint.Black)
	c.Rect(x, y+2, s, s)
	c.SetLineStyle(page.LineStyle{Width: 2, Cap: page.CapRound, Join: page.JoinRound})
	c.Polyline(page.Pt(x+3, y+2+s/2), page.Pt(x+s/2, y+s-1), page.Pt(x+s-2, y+5))
	c.SetLineStyle(page.LineStyle{Width: 1})
	c.SetFont(text.Helvetica, 12)
	c.DrawText(w.label, x+s+6, y+bh-c.Descent()-2)
}

func paintChart(c page.Canvas, w *widget) {
	_, _, bw, bh := w.box()
	c.SetColor(ggprint.White)
	c.RectFill(0, 0, bw, bh)
	shares := []float64{0.45, 0.3, 0.25}
	colors := []ggprint.Color{ggprint.Red, ggprint.Blue, ggprint.Yellow}
	d := math.Min(bw, bh) - 20
	a := 0.0
	for i, s := range shares {
		c.SetColor(colors[i])
		c.Pie(10, 10, d, d, a, a+s*360)
		a += s * 360
	}
	c.SetColor(ggprint.Black)
	c.Circle(10+d/2, 10+d/2, d/2)
	c.SetLineStyle(page.LineStyle{Dash: page.Dot, Width: 1})
	c.Line(d+20, 10, d+20, bh-10)
	c.SetLineStyle(page.LineStyle{Width: 1})
	c.SetFont(text.TimesItalic, 11)
	c.DrawTextAngle(90, "share", d+34, bh-10)
}

func paintSurfaceFallback(c page.Canvas, w *widget) {
	_, _, bw, bh := w.box()
	c.SetColor(ggprint.Black)
	c.RectFill(0, 0, bw, bh)
	c.SetColor(ggprint.White)
	c.SetFont(text.Courier, 10)
	c.DrawText("surface not captured", 8, bh/2)
}

// buildTree creates the demo window and registers the pixels of its
// accelerated surface with scr.
func buildTree(scr *screen.Screen) (capture.Node, error) {
	surface := &widget{
		kind:   capture.KindAcceleratedSurface,
		bounds: capture.Rect{X: 10, Y: 200, W: 720, H: 80},
		paint:  paintSurfaceFallback,
	}
	if err := scr.AddWindow(surface, gradient(surface.bounds.W, surface.bounds.H)); err != nil {
		return nil, err
	}

	chart := &widget{
		kind:   capture.KindWindow,
		bounds: capture.Rect{X: 460, Y: 40, W: 260, H: 150},
		paint:  paintChart,
	}
	options := &widget{
		kind:   capture.KindGroup,
		bounds: capture.Rect{X: 10, Y: 90, W: 200, H: 60},
		children: []capture.Node{
			&widget{kind: capture.KindWidget, bounds: capture.Rect{X: 10, Y: 95, W: 190, H: 22}, label: "Include totals", paint: paintCheckbox},
			&widget{kind: capture.KindWidget, bounds: capture.Rect{X: 10, Y: 122, W: 190, H: 22}, label: "Größe anzeigen", paint: paintCheckbox},
		},
	}
	return &widget{
		kind:   capture.KindWindow,
		bounds: capture.Rect{W: 740, H: 290},
		paint:  paintWindow,
		children: []capture.Node{
			&widget{kind: capture.KindWidget, bounds: capture.Rect{X: 10, Y: 10, W: 300, H: 24}, label: "Quarterly report", paint: paintLabel},
			&widget{kind: capture.KindWidget, bounds: capture.Rect{X: 10, Y: 50, W: 90, H: 28}, label: "Refresh", paint: paintButton},
			&widget{kind: capture.KindWidget, bounds: capture.Rect{X: 110, Y: 50, W: 90, H: 28}, label: "Export", paint: paintButton},
			options,
			chart,
			surface,
		},
	}, nil
}

// gradient renders the pixels of the demo surface.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := float64(x) / float64(w)
			v := 0.5 + 0.5*math.Sin(float64(x)/18+float64(y)/9)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(40 + 180*t),
				G: uint8(60 + 120*v),
				B: uint8(200 - 150*t),
				A: 255,
			})
		}
	}
	return img
}
