package recording

import "github.com/gogpu/ggprint"

// ResourcePool stores the pixel data referenced by recording commands.
// Each Add copies the pixmap so the caller may release its own buffer.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	images []*ggprint.Pixmap
}

// NewResourcePool creates an empty resource pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		images: make([]*ggprint.Pixmap, 0, 8),
	}
}

// AddImage copies img into the pool and returns its reference. A nil or
// released pixmap yields an invalid reference.
func (p *ResourcePool) AddImage(img *ggprint.Pixmap) ImageRef {
	if img == nil || img.Released() {
		return ImageRef(InvalidRef)
	}
	cp, err := ggprint.NewPixmap(img.Width(), img.Height(), img.Depth())
	if err != nil {
		return ImageRef(InvalidRef)
	}
	copy(cp.Data(), img.Data())
	p.images = append(p.images, cp)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return ImageRef(uint32(len(p.images) - 1))
}

// Image returns the pixmap for ref, or nil when ref is invalid.
func (p *ResourcePool) Image(ref ImageRef) *ggprint.Pixmap {
	if !ref.IsValid() || int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// ImageCount returns the number of images in the pool.
func (p *ResourcePool) ImageCount() int {
	return len(p.images)
}

// Release returns every pooled pixmap to the pixmap pool. References
// become invalid.
func (p *ResourcePool) Release() {
	for i, img := range p.images {
		img.Release()
		p.images[i] = nil
	}
	p.images = p.images[:0]
}
