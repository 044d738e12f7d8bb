package marquee

// regionIDCounter is a plain counter; regions are only touched from the frame loop.
var regionIDCounter uint32

func nextRegionID() uint32 {
	regionIDCounter++
	return regionIDCounter
}

// Region is one addressable area of the page. A single flat struct is used for
// every role; the engine reads Box and writes the visual fields.
type Region struct {
	// Identity
	ID   uint32
	Name string
	Role Role

	// Hierarchy
	Parent   *Region
	children []*Region

	// Layout (document space, owned by the page)
	Box Rect

	// Visual surface (owned by whichever component animates it)
	Alpha   float64
	OffsetX float64
	OffsetY float64
	Scale   float64
	Width   float64
	Value   float64
	Text    string

	// Metadata
	Label string

	// Internal
	entered  bool
	disposed bool
}

// NewRegion creates a detached region with neutral visual defaults.
func NewRegion(name string, role Role, box Rect) *Region {
	return &Region{
		ID:    nextRegionID(),
		Name:  name,
		Role:  role,
		Box:   box,
		Alpha: 1,
		Scale: 1,
		Width: 1,
	}
}

// --- Target ---

// Property returns the current value of p.
func (r *Region) Property(p Property) float64 {
	switch p {
	case PropAlpha:
		return r.Alpha
	case PropOffsetX:
		return r.OffsetX
	case PropOffsetY:
		return r.OffsetY
	case PropScale:
		return r.Scale
	case PropWidth:
		return r.Width
	case PropValue:
		return r.Value
	}
	return 0
}

// SetProperty sets p to v. Writes to a disposed region are dropped.
func (r *Region) SetProperty(p Property, v float64) {
	if r.IsDisposed() {
		return
	}
	switch p {
	case PropAlpha:
		r.Alpha = v
	case PropOffsetX:
		r.OffsetX = v
	case PropOffsetY:
		r.OffsetY = v
	case PropScale:
		r.Scale = v
	case PropWidth:
		r.Width = v
	case PropValue:
		r.Value = v
	}
}

// SetText replaces the displayed text. Writes to a disposed region are dropped.
func (r *Region) SetText(s string) {
	if r.IsDisposed() {
		return
	}
	r.Text = s
}

// Bounds returns the region's document-space box.
func (r *Region) Bounds() Rect {
	return r.Box
}

// InViewport reports whether any part of the region is inside vp.
func (r *Region) InViewport(vp Viewport) bool {
	if r.IsDisposed() {
		return false
	}
	return r.Box.Y <= vp.ScrollY+vp.Height && r.Box.Y+r.Box.Height >= vp.ScrollY
}

// Entered reports whether an enter-once binding on this region has fired.
func (r *Region) Entered() bool {
	return r != nil && r.entered
}

func (r *Region) markEntered(v bool) {
	r.entered = v
}

// --- Tree ---

// AddChild appends child to this region's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this region (cycle).
func (r *Region) AddChild(child *Region) {
	if child == nil {
		panic("marquee: cannot add nil child")
	}
	if isAncestor(child, r) {
		panic("marquee: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = r
	r.children = append(r.children, child)
}

// RemoveChild detaches child from this region.
// Panics if child.Parent != r.
func (r *Region) RemoveChild(child *Region) {
	if child.Parent != r {
		panic("marquee: child's parent is not this region")
	}
	r.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this region from its parent.
// No-op if this region has no parent.
func (r *Region) RemoveFromParent() {
	if r.Parent == nil {
		return
	}
	r.Parent.RemoveChild(r)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (r *Region) Children() []*Region {
	return r.children
}

// Walk visits r and its descendants in document order. Returning false from
// fn skips the visited region's subtree.
func (r *Region) Walk(fn func(*Region) bool) {
	if r == nil || r.disposed {
		return
	}
	if !fn(r) {
		return
	}
	for _, c := range r.children {
		c.Walk(fn)
	}
}

// Descendants returns every descendant (not r itself) with the given role, in
// document order.
func (r *Region) Descendants(role Role) []*Region {
	var out []*Region
	if r == nil {
		return out
	}
	for _, c := range r.children {
		c.Walk(func(n *Region) bool {
			if n.Role == role {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// Find returns the first region named name in document order, or nil.
func (r *Region) Find(name string) *Region {
	var found *Region
	r.Walk(func(n *Region) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// --- Disposal ---

// Dispose removes this region from its parent, marks it as disposed,
// and recursively disposes all descendants. Animations still holding the
// region stop writing to it on their next frame.
func (r *Region) Dispose() {
	if r.disposed {
		return
	}
	r.RemoveFromParent()
	r.dispose()
}

func (r *Region) dispose() {
	r.disposed = true
	r.ID = 0
	for _, child := range r.children {
		child.Parent = nil
		child.dispose()
	}
	r.children = nil
	r.Parent = nil
}

// IsDisposed returns true if this region has been disposed. A nil region
// counts as disposed.
func (r *Region) IsDisposed() bool {
	return r == nil || r.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of region.
func isAncestor(candidate, region *Region) bool {
	for p := region; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from r.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (r *Region) removeChildByPtr(child *Region) {
	for i, c := range r.children {
		if c == child {
			copy(r.children[i:], r.children[i+1:])
			r.children[len(r.children)-1] = nil
			r.children = r.children[:len(r.children)-1]
			return
		}
	}
}

// --- Rendering helpers ---

// WorldAlpha returns the region's alpha multiplied by every ancestor's.
func (r *Region) WorldAlpha() float64 {
	a := 1.0
	for p := r; p != nil; p = p.Parent {
		a *= p.Alpha
	}
	return a
}

// ScreenRect returns the region's box in viewport space: its own and its
// ancestors' offsets applied, scaled around its center, and shifted up by the
// scroll position.
func (r *Region) ScreenRect(vp Viewport) Rect {
	var dx, dy float64
	for p := r; p != nil; p = p.Parent {
		dx += p.OffsetX
		dy += p.OffsetY
	}
	b := r.Box
	w, h := b.Width*r.Scale, b.Height*r.Scale
	return Rect{
		X:      b.X + dx + (b.Width-w)/2,
		Y:      b.Y + dy + (b.Height-h)/2 - vp.ScrollY,
		Width:  w,
		Height: h,
	}
}
