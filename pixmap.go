package ggprint

import (
	"fmt"
	"image"
	"image/color"
	"sync"
)

// Pixmap is a rectangular pixel buffer captured from a display or decoded
// from an image. Pixels are stored row by row with Depth bytes per pixel:
// 1 (gray), 3 (RGB) or 4 (RGBA, non-premultiplied).
//
// Pixmaps are pooled. Release returns the buffer to the pool; a released
// pixmap must not be read again.
type Pixmap struct {
	width  int
	height int
	depth  int
	data   []uint8

	released bool
}

var pixPool = sync.Pool{
	New: func() any { return new([]uint8) },
}

// NewPixmap creates a pixmap with the given dimensions and depth.
// The buffer is zeroed.
func NewPixmap(width, height, depth int) (*Pixmap, error) {
	switch depth {
	case 1, 3, 4:
	default:
		return nil, fmt.Errorf("ggprint: unsupported pixmap depth %d", depth)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ggprint: invalid pixmap size %dx%d", width, height)
	}

	n := width * height * depth
	bp := pixPool.Get().(*[]uint8)
	buf := *bp
	if cap(buf) < n {
		buf = make([]uint8, n)
	} else {
		buf = buf[:n]
		clear(buf)
	}

	return &Pixmap{width: width, height: height, depth: depth, data: buf}, nil
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Depth returns the number of bytes per pixel.
func (p *Pixmap) Depth() int {
	return p.depth
}

// Stride returns the number of bytes per row.
func (p *Pixmap) Stride() int {
	return p.width * p.depth
}

// Data returns the raw pixel data.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Released reports whether Release has been called.
func (p *Pixmap) Released() bool {
	return p.released
}

// Release returns the pixel buffer to the pool. It is safe to call more
// than once.
func (p *Pixmap) Release() {
	if p == nil || p.released {
		return
	}
	p.released = true
	buf := p.data[:0]
	p.data = nil
	pixPool.Put(&buf)
}

// SetPixel sets the color of a single pixel. Gray pixmaps store the
// luminance of c.
func (p *Pixmap) SetPixel(x, y int, c Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * p.depth
	switch p.depth {
	case 1:
		p.data[i] = luma(c)
	case 3:
		p.data[i+0], p.data[i+1], p.data[i+2] = c.R, c.G, c.B
	case 4:
		p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3] = c.R, c.G, c.B, 255
	}
}

// Pixel returns the color of a single pixel. For RGBA pixmaps the pixel
// is composited over bg.
func (p *Pixmap) Pixel(x, y int, bg Color) Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return bg
	}
	i := (y*p.width + x) * p.depth
	switch p.depth {
	case 1:
		return Gray(p.data[i])
	case 3:
		return RGB(p.data[i], p.data[i+1], p.data[i+2])
	default:
		a := uint32(p.data[i+3])
		blend := func(s, d uint8) uint8 {
			return uint8((uint32(s)*a + uint32(d)*(255-a) + 127) / 255) //nolint:gosec // result <= 255
		}
		return RGB(blend(p.data[i], bg.R), blend(p.data[i+1], bg.G), blend(p.data[i+2], bg.B))
	}
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			img.Set(x, y, p.At(x, y))
		}
	}
	return img
}

// FromRGBA copies img into a new RGB pixmap, compositing over white.
func FromRGBA(img *image.RGBA) (*Pixmap, error) {
	b := img.Bounds()
	pm, err := NewPixmap(b.Dx(), b.Dy(), 3)
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			pm.SetPixel(x, y, FromColor(img.RGBAAt(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return pm, nil
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if p.depth == 4 && x >= 0 && x < p.width && y >= 0 && y < p.height {
		i := (y*p.width + x) * 4
		return color.NRGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
	}
	return p.Pixel(x, y, White).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// luma returns the Rec. 601 luminance of c.
func luma(c Color) uint8 {
	return uint8((299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B) + 500) / 1000) //nolint:gosec // result <= 255
}
