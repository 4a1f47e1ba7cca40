package ps

import (
	"encoding/hex"
	"fmt"

	"github.com/gogpu/ggprint"
)

// hexLineBytes is the number of source bytes per line of hex data.
const hexLineBytes = 39

// DrawImage draws img scaled into (x, y, w, h) using a level 2 image
// dictionary. Depth 4 pixels are composited over the background colour.
func (d *Device) DrawImage(img *ggprint.Pixmap, x, y, w, h float64) {
	if !d.onPage() || img == nil || img.Released() || w <= 0 || h <= 0 {
		return
	}
	iw, ih := img.Width(), img.Height()
	space, decode, comps := "/DeviceRGB", "[0 1 0 1 0 1]", 3
	if img.Depth() == 1 {
		space, decode, comps = "/DeviceGray", "[0 1]", 1
	}
	d.writef("GS %s %s TR %s %s SC %s setcolorspace\n", num(x), num(y), num(w), num(h), space)
	d.writef("<< /ImageType 1 /Width %d /Height %d /BitsPerComponent 8 /Decode %s\n", iw, ih, decode)
	d.writef("/ImageMatrix [%d 0 0 %d 0 0] /Interpolate %t\n", iw, ih, d.opts.interpolate)
	d.writeln("/DataSource currentfile /ASCIIHexDecode filter >> image")
	d.writeImageData(img, comps)
	d.writeln(">")
	d.writeln("GR")
	ggprint.Logger().Debug("ps: image", "width", iw, "height", ih, "depth", img.Depth())
}

// writeImageData writes the samples of img as hex, top row first.
func (d *Device) writeImageData(img *ggprint.Pixmap, comps int) {
	iw, ih := img.Width(), img.Height()
	row := make([]byte, iw*comps)
	line := make([]byte, hex.EncodedLen(hexLineBytes)+1)
	for y := 0; y < ih; y++ {
		switch img.Depth() {
		case 1, 3:
			copy(row, img.Data()[y*img.Stride():y*img.Stride()+iw*comps])
		default:
			for x := 0; x < iw; x++ {
				c := img.Pixel(x, y, d.opts.background)
				row[x*3], row[x*3+1], row[x*3+2] = c.R, c.G, c.B
			}
		}
		for off := 0; off < len(row); off += hexLineBytes {
			end := min(off+hexLineBytes, len(row))
			n := hex.Encode(line, row[off:end])
			line[n] = '\n'
			d.write(string(line[:n+1]))
		}
		if d.err != nil {
			return
		}
	}
}

// String implements fmt.Stringer for diagnostics.
func (d *Device) String() string {
	return fmt.Sprintf("ps.Device(%s, %s, %s)", d.opts.format, d.opts.layout, d.State())
}
