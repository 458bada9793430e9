package advanced

import (
	"github.com/osuushi/navmesh/predicates"
	"go.uber.org/zap"
)

// InsertPoint adds p to the triangulation and restores the Delaunay property
// around it. A point within epsilon of an existing vertex snaps to that vertex
// instead, and a point within epsilon of an edge is moved onto the edge.
func (m *Mesh) InsertPoint(p Point) VertexID {
	m.checkInside(p)
	if v, d := m.FindClosestVertex(p); v != NilVertex && d <= m.eps {
		return v
	}

	e, onEdge := m.FindTriangleContainingPoint(p)
	if !onEdge {
		// Find the nearest edge of the face, if it is too close for comfort
		nearest := NilEdge
		var projected Point
		bestDist := m.eps
		for _, f := range [3]EdgeID{e, m.Lnext(e), m.Lprev(e)} {
			q, d := closestOnSegment(p, m.OrgPoint(f), m.DestPoint(f))
			if d < bestDist {
				nearest, projected, bestDist = f, q, d
			}
		}
		if nearest != NilEdge {
			// The projection may land within epsilon of an endpoint
			for _, v := range [2]VertexID{m.Org(nearest), m.Dest(nearest)} {
				if m.position(v).Sub(projected).Norm() <= m.eps {
					return v
				}
			}
			if m.canSplit(nearest, projected) {
				m.logger.Debug("projecting point onto edge",
					zap.Stringer("point", p),
					zap.Stringer("projected", projected),
					zap.Int32("edge", int32(nearest)))
				p, e, onEdge = projected, nearest, true
			}
		}
	}

	var v VertexID
	if onEdge {
		v = m.insertPointInEdge(e, p)
	} else {
		v = m.insertPointInFace(e, p)
	}
	m.FlipEdges()
	return v
}

// Whether splitting edge e at p leaves all four resulting triangles with
// positive orientation.
func (m *Mesh) canSplit(e EdgeID, p Point) bool {
	if m.TriangleID(e) == OuterFace || m.TriangleID(e.Sym()) == OuterFace {
		return false
	}
	a, b := m.OrgPoint(e), m.DestPoint(e)
	c := m.DestPoint(m.Lnext(e))
	d := m.DestPoint(m.Lnext(e.Sym()))
	return predicates.Orient2D(a, p, c) > 0 &&
		predicates.Orient2D(p, b, c) > 0 &&
		predicates.Orient2D(b, p, d) > 0 &&
		predicates.Orient2D(p, a, d) > 0
}

// Connect a new vertex at p to every corner of the face left of e. Returns the
// new vertex and the face edges, each of which now bounds a triangle with the
// new vertex.
func (m *Mesh) fan(e EdgeID, p Point) (VertexID, []EdgeID) {
	var rim []EdgeID
	w := m.newWatchdog("fan")
	for f := e; ; {
		w.tick()
		rim = append(rim, f)
		f = m.Lnext(f)
		if f == e {
			break
		}
	}

	v := m.newVertex(p)
	base := m.makeEdge()
	m.setOrg(base, m.Org(e))
	m.setOrg(base.Sym(), v)
	m.Splice(base, e)
	start := base
	for {
		w.tick()
		base = m.Connect(e, base.Sym())
		e = m.Oprev(base)
		if m.Lnext(e) == start {
			break
		}
	}
	for _, f := range rim {
		m.NewTriangle(f)
	}
	return v, rim
}

// Split the triangle left of e into three around p.
func (m *Mesh) insertPointInFace(e EdgeID, p Point) VertexID {
	m.destroyFace(e)
	v, rim := m.fan(e, p)
	m.flipStack = append(m.flipStack, rim...)
	return v
}

// Split edge e at p, turning its two triangles into four. The crep of e moves
// to one half and is copied onto the other.
func (m *Mesh) insertPointInEdge(e EdgeID, p Point) VertexID {
	m.destroyFace(e)
	m.destroyFace(e.Sym())

	a, b := m.Org(e), m.Dest(e)
	q := m.quad(e)
	crep := q.crep
	q.crep = nil

	e = m.Oprev(e)
	m.deleteEdge(m.Onext(e))
	v, rim := m.fan(e, p)
	m.flipStack = append(m.flipStack, rim...)

	if crep != nil {
		m.quad(m.findEdge(a, v)).crep = crep
		m.quad(m.findEdge(v, b)).crep = m.creps.clone(crep)
	}
	return v
}

// FlipEdges runs Lawson's algorithm over the flip stack until every edge on it
// is locally Delaunay or constrained.
func (m *Mesh) FlipEdges() {
	w := m.newWatchdog("FlipEdges")
	for len(m.flipStack) > 0 {
		w.tick()
		e := m.flipStack[len(m.flipStack)-1]
		m.flipStack = m.flipStack[:len(m.flipStack)-1]
		if !m.EdgeAlive(e) || m.Constrained(e) {
			continue
		}
		if m.TriangleID(e) == OuterFace || m.TriangleID(e.Sym()) == OuterFace {
			continue
		}
		a, b := m.OrgPoint(e), m.DestPoint(e)
		c := m.DestPoint(m.Lnext(e))
		d := m.DestPoint(m.Lnext(e.Sym()))
		if predicates.InCircleTest(a, b, c, d) > 0 {
			m.flipStack = append(m.flipStack,
				m.Lnext(e), m.Lprev(e), m.Lnext(e.Sym()), m.Lprev(e.Sym()))
			m.Swap(e)
			m.observer.ObserveFlip()
		}
	}
}
