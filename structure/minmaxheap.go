// Package structure provides allocation-light, index-addressed data
// structures for the matching core's hot path. Operations are expressed as
// index arithmetic over a caller-owned backing slice, in the style of
// container/heap and of this module's arena-indexed teacher structures: no
// per-element allocation, no pointer chasing.
package structure

// Interface is implemented by a caller's backing slice to participate in
// the min-max heap algorithms below. It mirrors container/heap.Interface
// but omits Push/Pop: callers own slice growth and truncation themselves
// (the matching core keeps a fixed-capacity active/inactive/free layout),
// these functions only ever rearrange existing elements by index.
type Interface interface {
	// Len is the number of elements currently participating in the heap
	// (the active region; callers exclude inactive/free slots).
	Len() int

	// Less reports whether the element at index i must sort before the
	// element at index j under the heap's ordering for the level (min or
	// max) it is being compared at. For a min-max heap storing a single
	// total order, Less should return true when i < j.
	Less(i, j int) bool

	// Swap exchanges the elements at indices i and j, along with whatever
	// auxiliary index the caller keeps (e.g. an order-id -> slot map).
	Swap(i, j int)
}

// isMinLevel reports whether index i sits on an even level (a "min" level)
// of the implicit binary tree, counting the root (index 0) as level 0. The
// min-max heap alternates min/max levels: even levels hold the smaller of
// their descendants family, odd levels the larger.
func isMinLevel(i int) bool {
	level := 0
	for n := i + 1; n > 1; n >>= 1 {
		level++
	}
	return level%2 == 0
}

func parent(i int) int      { return (i - 1) / 2 }
func hasParent(i int) bool  { return i > 0 }
func grandparent(i int) int { return parent(parent(i)) }
func hasGrandparent(i int) bool {
	return hasParent(i) && hasParent(parent(i))
}

// PushUp restores the min-max heap property after an element has been
// placed (or its key decreased/increased) at index i, by sifting it
// upward. Call this after an insert at the end of the active region.
func PushUp(h Interface, i int) {
	if isMinLevel(i) {
		if hasParent(i) && h.Less(parent(i), i) {
			h.Swap(i, parent(i))
			pushUpMax(h, parent(i))
		} else {
			pushUpMin(h, i)
		}
	} else {
		if hasParent(i) && h.Less(i, parent(i)) {
			h.Swap(i, parent(i))
			pushUpMin(h, parent(i))
		} else {
			pushUpMax(h, i)
		}
	}
}

func pushUpMin(h Interface, i int) {
	for hasGrandparent(i) && h.Less(i, grandparent(i)) {
		h.Swap(i, grandparent(i))
		i = grandparent(i)
	}
}

func pushUpMax(h Interface, i int) {
	for hasGrandparent(i) && h.Less(grandparent(i), i) {
		h.Swap(i, grandparent(i))
		i = grandparent(i)
	}
}

// PushDown restores the min-max heap property after the element at index i
// may be out of place relative to its descendants, by sifting it downward.
// Call this after removing the top (move the last active element to index
// 0 first) or after an in-place key change at i.
func PushDown(h Interface, i int) {
	if isMinLevel(i) {
		pushDownMin(h, i)
	} else {
		pushDownMax(h, i)
	}
}

// children and grandchildren of i, restricted to valid indices under n.
func childrenAndGrandchildren(n, i int) []int {
	var out []int
	l, r := 2*i+1, 2*i+2
	for _, c := range []int{l, r} {
		if c < n {
			out = append(out, c)
		}
	}
	for _, c := range []int{l, r} {
		if c >= n {
			continue
		}
		gl, gr := 2*c+1, 2*c+2
		for _, g := range []int{gl, gr} {
			if g < n {
				out = append(out, g)
			}
		}
	}
	return out
}

func pushDownMin(h Interface, i int) {
	n := h.Len()
	for {
		descendants := childrenAndGrandchildren(n, i)
		if len(descendants) == 0 {
			return
		}
		m := descendants[0]
		for _, d := range descendants[1:] {
			if h.Less(d, m) {
				m = d
			}
		}
		if !h.Less(m, i) {
			return
		}
		h.Swap(i, m)
		if isGrandchild(i, m) {
			if h.Less(parent(m), m) {
				h.Swap(m, parent(m))
			}
			i = m
			continue
		}
		return
	}
}

func pushDownMax(h Interface, i int) {
	n := h.Len()
	for {
		descendants := childrenAndGrandchildren(n, i)
		if len(descendants) == 0 {
			return
		}
		m := descendants[0]
		for _, d := range descendants[1:] {
			if h.Less(m, d) {
				m = d
			}
		}
		if !h.Less(i, m) {
			return
		}
		h.Swap(i, m)
		if isGrandchild(i, m) {
			if h.Less(m, parent(m)) {
				h.Swap(m, parent(m))
			}
			i = m
			continue
		}
		return
	}
}

func isGrandchild(ancestor, i int) bool {
	return hasGrandparent(i) && grandparent(i) == ancestor
}

// Fix restores the heap property at i whether the element's key moved up
// or down relative to the rest of the heap, by trying PushDown first (a
// no-op if i has no out-of-order descendant) and then PushUp. Used by
// callers that change a key in place and aren't sure which direction it
// moved (e.g. an amend that can raise or lower price).
func Fix(h Interface, i int) {
	PushDown(h, i)
	PushUp(h, i)
}
