package advanced

// Quad edge primitives after Guibas & Stolfi, "Primitives for the Manipulation
// of General Subdivisions and the Computation of Voronoi Diagrams". Each
// record stores only Onext; every other neighbour is derived from it with
// rotations.

func (m *Mesh) quad(e EdgeID) *QuadEdge { return m.quads.get(int32(e.Quad())) }

func (m *Mesh) rec(e EdgeID) *edgeRecord { return &m.quad(e).edges[e&3] }

func (m *Mesh) EdgeAlive(e EdgeID) bool { return e >= 0 && m.quads.isAlive(int32(e.Quad())) }

func (m *Mesh) Onext(e EdgeID) EdgeID { return m.rec(e).next }

func (m *Mesh) Oprev(e EdgeID) EdgeID { return m.Onext(e.Rot()).Rot() }

func (m *Mesh) Lnext(e EdgeID) EdgeID { return m.Onext(e.InvRot()).Rot() }

func (m *Mesh) Lprev(e EdgeID) EdgeID { return m.Onext(e).Sym() }

func (m *Mesh) Rnext(e EdgeID) EdgeID { return m.Onext(e.Rot()).InvRot() }

func (m *Mesh) Rprev(e EdgeID) EdgeID { return m.Onext(e.Sym()) }

func (m *Mesh) Dnext(e EdgeID) EdgeID { return m.Onext(e.Sym()).Sym() }

func (m *Mesh) Dprev(e EdgeID) EdgeID { return m.Onext(e.InvRot()).InvRot() }

func (m *Mesh) Org(e EdgeID) VertexID { return m.rec(e).org }

func (m *Mesh) Dest(e EdgeID) VertexID { return m.rec(e.Sym()).org }

func (m *Mesh) OrgPoint(e EdgeID) Point { return m.position(m.Org(e)) }

func (m *Mesh) DestPoint(e EdgeID) Point { return m.position(m.Dest(e)) }

// Also makes e the anchor of v, so the anchor never points at a stale edge.
func (m *Mesh) setOrg(e EdgeID, v VertexID) {
	m.rec(e).org = v
	m.Vertex(v).Edge = e
}

func (m *Mesh) makeEdge() EdgeID {
	id, q := m.quads.alloc()
	e := EdgeID(id) << 2
	q.edges[0].next = e
	q.edges[1].next = e + 1
	q.edges[2].next = e + 3
	q.edges[3].next = e + 2
	for i := range q.edges {
		q.edges[i].org = NilVertex
		q.edges[i].clearance = -1
	}
	return e
}

// Splice merges the origin rings of a and b if they are distinct, or splits
// them if they are the same. The left face rings are split or merged in
// step.
func (m *Mesh) Splice(a, b EdgeID) {
	alpha := m.Onext(a).Rot()
	beta := m.Onext(b).Rot()

	aNext, bNext := m.Onext(a), m.Onext(b)
	alphaNext, betaNext := m.Onext(alpha), m.Onext(beta)

	m.rec(a).next = bNext
	m.rec(b).next = aNext
	m.rec(alpha).next = betaNext
	m.rec(beta).next = alphaNext
}

// Connect adds a new edge from the destination of a to the origin of b, such
// that a, the new edge and b share a left face.
func (m *Mesh) Connect(a, b EdgeID) EdgeID {
	e := m.makeEdge()
	m.setOrg(e, m.Dest(a))
	m.setOrg(e.Sym(), m.Org(b))
	m.Splice(e, m.Lnext(a))
	m.Splice(e.Sym(), b)
	return e
}

// If v is anchored on e, move its anchor to another edge of its star, or to
// NilEdge if e is the last one.
func (m *Mesh) fixAnchor(v VertexID, e EdgeID) {
	vertex := m.Vertex(v)
	if vertex.Edge != e {
		return
	}
	if next := m.Onext(e); next != e {
		vertex.Edge = next
	} else {
		vertex.Edge = NilEdge
	}
}

// Detach e from the mesh and release it. Face ids are not touched; the caller
// is responsible for destroying the faces first.
func (m *Mesh) deleteEdge(e EdgeID) {
	m.fixAnchor(m.Org(e), e)
	m.fixAnchor(m.Dest(e), e.Sym())
	m.Splice(e, m.Oprev(e))
	m.Splice(e.Sym(), m.Oprev(e.Sym()))
	q := m.quad(e)
	m.creps.put(q.crep)
	q.crep = nil
	m.quads.release(int32(e.Quad()))
}

// Swap turns e counterclockwise inside the quadrilateral formed by its two
// faces. Both faces are reported destroyed and restamped.
func (m *Mesh) Swap(e EdgeID) {
	m.destroyFace(e)
	m.destroyFace(e.Sym())

	a := m.Oprev(e)
	b := m.Oprev(e.Sym())
	if v := m.Org(e); m.Vertex(v).Edge == e {
		m.Vertex(v).Edge = a
	}
	if v := m.Dest(e); m.Vertex(v).Edge == e.Sym() {
		m.Vertex(v).Edge = b
	}

	m.Splice(e, a)
	m.Splice(e.Sym(), b)
	m.Splice(e, m.Lnext(a))
	m.Splice(e.Sym(), m.Lnext(b))
	m.setOrg(e, m.Dest(a))
	m.setOrg(e.Sym(), m.Dest(b))

	m.NewTriangle(e)
	m.NewTriangle(e.Sym())
}

// Find the edge from u to v, or NilEdge.
func (m *Mesh) findEdge(u, v VertexID) EdgeID {
	start := m.Vertex(u).Edge
	if start == NilEdge {
		return NilEdge
	}
	w := m.newWatchdog("findEdge")
	e := start
	for {
		w.tick()
		if m.Dest(e) == v {
			return e
		}
		e = m.Onext(e)
		if e == start {
			return NilEdge
		}
	}
}

// The edges leaving v, counterclockwise from its anchor.
func (m *Mesh) Star(v VertexID) []EdgeID {
	start := m.Vertex(v).Edge
	if start == NilEdge {
		return nil
	}
	var star []EdgeID
	w := m.newWatchdog("Star")
	for e := start; ; {
		w.tick()
		star = append(star, e)
		e = m.Onext(e)
		if e == start {
			return star
		}
	}
}
