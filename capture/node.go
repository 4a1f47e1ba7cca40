package capture

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggprint/page"
)

// Kind tags a node with the capabilities the traversal switches on.
type Kind uint8

const (
	// KindWidget is a leaf widget drawn in window coordinates.
	KindWidget Kind = iota

	// KindGroup is a container drawn in window coordinates.
	KindGroup

	// KindWindow is a top-level window or subwindow with its own
	// coordinate system.
	KindWindow

	// KindAcceleratedSurface is a window whose contents are rendered by
	// hardware and cannot be redrawn through Draw.
	KindAcceleratedSurface
)

var kindNames = [...]string{
	KindWidget:             "Widget",
	KindGroup:              "Group",
	KindWindow:             "Window",
	KindAcceleratedSurface: "AcceleratedSurface",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsWindow reports whether nodes of this kind have their own coordinate
// system.
func (k Kind) IsWindow() bool {
	return k == KindWindow || k == KindAcceleratedSurface
}

// HasChildren reports whether nodes of this kind may contain children.
func (k Kind) HasChildren() bool {
	return k != KindWidget
}

// IsAccelerated reports whether the contents must be captured instead of
// redrawn.
func (k Kind) IsAccelerated() bool {
	return k == KindAcceleratedSurface
}

// Rect is an integer rectangle in screen units.
type Rect struct {
	X, Y, W, H int
}

// Node is one element of a widget tree.
type Node interface {
	// Visible reports whether the node is shown.
	Visible() bool

	// Bounds returns the node's rectangle. Widgets and groups report it in
	// the coordinates of their enclosing window; windows report their
	// position within the parent window.
	Bounds() Rect

	// Kind returns the capability tag.
	Kind() Kind

	// Damage marks the node for a full redraw.
	Damage()

	// Draw paints the node onto c.
	Draw(c page.Canvas) error

	// Children returns the direct children of a container.
	Children() []Node
}

// DrawChildren draws the visible, non-window children of n that intersect
// the current clip. Containers call it from Draw; nested windows are
// printed by the traversal instead.
func DrawChildren(c page.Canvas, n Node) error {
	var errs []error
	for _, child := range n.Children() {
		if child == nil || !child.Visible() || child.Kind().IsWindow() {
			continue
		}
		b := child.Bounds()
		if !c.NotClipped(float64(b.X), float64(b.Y), float64(b.W), float64(b.H)) {
			continue
		}
		child.Damage()
		if err := child.Draw(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
