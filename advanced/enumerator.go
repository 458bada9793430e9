package advanced

import "iter"

// An EdgeIterator visits every live edge of a mesh exactly once, optionally
// followed by its symmetric twin. Traversal order is by arena slot. Behavior
// is undefined if the mesh is modified during iteration; call Reset to start
// over afterwards.
type EdgeIterator struct {
	mesh *Mesh
	sym  bool
	quad int32
	// Whether the twin of the current quad is still due
	twin bool
}

func (m *Mesh) NewEdgeIterator(sym bool) *EdgeIterator {
	return &EdgeIterator{mesh: m, sym: sym}
}

// Next returns the next edge, or false once the mesh is exhausted.
func (it *EdgeIterator) Next() (EdgeID, bool) {
	if it.twin {
		it.twin = false
		return EdgeID(it.quad-1)<<2 | 1, true
	}
	for ; it.quad < it.mesh.quads.size; it.quad++ {
		if it.mesh.quads.isAlive(it.quad) {
			e := EdgeID(it.quad) << 2
			it.quad++
			it.twin = it.sym
			return e, true
		}
	}
	return NilEdge, false
}

func (it *EdgeIterator) Reset() {
	it.quad = 0
	it.twin = false
}

// Edges is a restartable sequence of the live primal edges, each followed by
// its twin when sym is set.
func (m *Mesh) Edges(sym bool) iter.Seq[EdgeID] {
	return func(yield func(EdgeID) bool) {
		it := m.NewEdgeIterator(sym)
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			if !yield(e) {
				return
			}
		}
	}
}

// Triangles yields one edge of every interior face.
func (m *Mesh) Triangles() iter.Seq[EdgeID] {
	return func(yield func(EdgeID) bool) {
		for e := range m.Edges(true) {
			id := m.TriangleID(e)
			if id == OuterFace {
				continue
			}
			// Report each face from the edge of its three with the lowest id
			if e > m.Lnext(e) || e > m.Lprev(e) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
