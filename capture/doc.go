// Package capture prints live widget trees onto a page device.
//
// A Printer walks a tree of Nodes and re-runs each visible node's drawing
// routine against a page.Canvas, translated so that the on-screen layout
// is preserved. Nested windows are positioned with Translate and clipped to
// their bounds. Surfaces whose contents cannot be redrawn, such as
// hardware-accelerated views, are handed to a SurfacePrinter plugin or
// captured as pixels through a Display.
//
//	p := capture.NewPrinter(dev, capture.WithDisplay(scr))
//	err := p.PrintWidget(win, 0, 0)
//
// Widgets draw in the coordinates of their enclosing window; windows draw
// with their own top-left corner at (0, 0).
package capture
