package page

// Resource is something a page keeps alive until it ends, typically a
// captured pixel buffer that the output stream still references.
type Resource interface {
	Release()
}

// Resources is the per-page owned resource list.
//
// When Deferred is false, Retain releases a resource immediately. When
// Deferred is true, resources are held until ReleaseAll, which devices call
// at the end of every page.
type Resources struct {
	Deferred bool
	items    []Resource
}

// Retain hands r to the page.
func (r *Resources) Retain(res Resource) {
	if res == nil {
		return
	}
	if !r.Deferred {
		res.Release()
		return
	}
	r.items = append(r.items, res)
}

// ReleaseAll releases every held resource, most recent first, and returns
// how many were released.
func (r *Resources) ReleaseAll() int {
	n := len(r.items)
	for i := n - 1; i >= 0; i-- {
		r.items[i].Release()
		r.items[i] = nil
	}
	r.items = r.items[:0]
	return n
}

// Len returns the number of held resources.
func (r *Resources) Len() int {
	return len(r.items)
}
