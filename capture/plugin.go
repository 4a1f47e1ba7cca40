package capture

import (
	"sort"
	"sync"

	"github.com/gogpu/ggprint/page"
)

// SurfacePlugin is the name the Printer looks up for accelerated
// surfaces.
const SurfacePlugin = "opengl.device"

// SurfacePrinter prints a node whose contents are not reachable through
// Draw. It draws at the current origin of c.
type SurfacePrinter interface {
	PrintSurface(c page.Canvas, n Node) error
}

// SurfacePrinterFunc adapts a function to SurfacePrinter.
type SurfacePrinterFunc func(c page.Canvas, n Node) error

// PrintSurface implements SurfacePrinter.
func (f SurfacePrinterFunc) PrintSurface(c page.Canvas, n Node) error {
	return f(c, n)
}

var (
	pluginsMu sync.RWMutex
	plugins   = make(map[string]SurfacePrinter)
)

// RegisterSurfacePrinter registers sp under name, replacing any previous
// registration. Platform backends register under SurfacePlugin.
//
// RegisterSurfacePrinter panics if sp is nil.
func RegisterSurfacePrinter(name string, sp SurfacePrinter) {
	if sp == nil {
		panic("capture: RegisterSurfacePrinter printer is nil")
	}
	pluginsMu.Lock()
	defer pluginsMu.Unlock()
	plugins[name] = sp
}

// UnregisterSurfacePrinter removes the printer registered under name.
func UnregisterSurfacePrinter(name string) {
	pluginsMu.Lock()
	defer pluginsMu.Unlock()
	delete(plugins, name)
}

// LookupSurfacePrinter returns the printer registered under name.
func LookupSurfacePrinter(name string) (SurfacePrinter, bool) {
	pluginsMu.RLock()
	defer pluginsMu.RUnlock()
	sp, ok := plugins[name]
	return sp, ok
}

// SurfacePrinters returns the registered names, sorted.
func SurfacePrinters() []string {
	pluginsMu.RLock()
	defer pluginsMu.RUnlock()
	names := make([]string, 0, len(plugins))
	for name := range plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReadbackSurfacePrinter prints a surface by reading its pixels back from
// a Display. ChunkWidth is the widest single read: zero means
// DefaultChunkWidth and a negative value reads the surface in one piece.
type ReadbackSurfacePrinter struct {
	Display    Display
	ChunkWidth int
}

// PrintSurface implements SurfacePrinter. It returns ErrNothingCaptured
// when every read failed, so the caller can draw the widget instead.
func (r ReadbackSurfacePrinter) PrintSurface(c page.Canvas, n Node) error {
	p := NewPrinter(c, WithDisplay(r.Display))
	switch {
	case r.ChunkWidth < 0:
		p.ChunkWidth = 0
	case r.ChunkWidth > 0:
		p.ChunkWidth = r.ChunkWidth
	}
	b := n.Bounds()
	drawn, err := p.printWindowPart(n, 0, 0, b.W, b.H, 0, 0)
	if err != nil {
		return err
	}
	if drawn == 0 && b.W > 0 && b.H > 0 {
		return ErrNothingCaptured
	}
	return nil
}
