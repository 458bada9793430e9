package advanced

// Every face carries a TriangleID stamped on its three edges. Ids come from a
// counter and are never reused, so consumers can key cached per-face data on
// them and drop whatever shows up in the destroyed list of an update.

// NewTriangle stamps a fresh id on the face to the left of e, which must be a
// triangle. Cached clearances of the face are reset.
func (m *Mesh) NewTriangle(e EdgeID) TriangleID {
	f := m.Lnext(e)
	g := m.Lnext(f)
	if m.Lnext(g) != e {
		fatalf("face left of edge %d is not a triangle", e)
	}
	m.lastTriangle++
	id := m.lastTriangle
	for _, x := range [3]EdgeID{e, f, g} {
		r := m.rec(x)
		r.triangle = id
		r.clearance = -1
	}
	return id
}

// DestroyedTriangle records that the face with the given id no longer exists.
func (m *Mesh) DestroyedTriangle(id TriangleID) {
	m.destroyed = append(m.destroyed, id)
}

// Report the face left of e as destroyed and clear its id from every edge of
// the face. Calling it again on the same face is a no-op.
func (m *Mesh) destroyFace(e EdgeID) {
	id := m.rec(e).triangle
	if id == OuterFace {
		return
	}
	m.DestroyedTriangle(id)
	w := m.newWatchdog("destroyFace")
	for f := e; ; {
		w.tick()
		m.rec(f).triangle = OuterFace
		f = m.Lnext(f)
		if f == e {
			return
		}
	}
}

// Ids destroyed since the start of the current update. The slice is owned by
// the mesh.
func (m *Mesh) Destroyed() []TriangleID { return m.destroyed }

func (m *Mesh) TriangleID(e EdgeID) TriangleID { return m.rec(e).triangle }

// The corners of the face left of e, starting at the origin of e.
func (m *Mesh) Triangle(e EdgeID) [3]Point {
	f := m.Lnext(e)
	return [3]Point{m.OrgPoint(e), m.OrgPoint(f), m.DestPoint(f)}
}

func (m *Mesh) Clearance(e EdgeID) float64 { return m.rec(e).clearance }

func (m *Mesh) SetClearance(e EdgeID, clearance float64) { m.rec(e).clearance = clearance }

func (m *Mesh) resetClearance(e EdgeID) {
	m.rec(e).clearance = -1
	m.rec(e.Sym()).clearance = -1
}
