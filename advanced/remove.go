package advanced

import (
	"math"

	"github.com/osuushi/navmesh/dbg"
	"go.uber.org/zap"
)

// RemoveConstraint retracts obstacle id. Every edge it borders loses the id,
// edges left unconstrained are flipped back to Delaunay, and vertices that are
// no longer needed are removed.
func (m *Mesh) RemoveConstraint(id ObstacleID) {
	ob, ok := m.obstacles[id]
	if !ok {
		fatalf("cannot remove unknown obstacle %d", id)
	}
	delete(m.obstacles, id)

	if ob.point {
		m.Vertex(ob.vertex).PointConstraints--
		m.RemoveIfEligible(ob.vertex)
		return
	}
	m.Vertex(ob.vertex).ConstraintHandles--

	// Breadth first over the edges tagged with id
	m.markGen++
	gen := m.markGen
	open := append(m.open[:0], ob.vertex)
	closed := m.closed[:0]
	m.Vertex(ob.vertex).mark = gen
	w := m.newWatchdog("RemoveConstraint")
	for i := 0; i < len(open); i++ {
		u := open[i]
		closed = append(closed, u)
		for _, e := range m.Star(u) {
			w.tick()
			q := m.quad(e)
			if !q.crep.Contains(id) {
				continue
			}
			q.crep = q.crep.remove(id)
			if len(q.crep) == 0 {
				m.creps.put(q.crep)
				q.crep = nil
				m.resetClearance(e)
				m.flipStack = append(m.flipStack, e)
			}
			if next := m.Vertex(m.Dest(e)); next.mark != gen {
				next.mark = gen
				open = append(open, m.Dest(e))
			}
		}
	}
	m.open = open

	m.FlipEdges()
	for _, v := range closed {
		m.RemoveIfEligible(v)
	}
	m.closed = closed
}

// RemoveIfEligible removes v if nothing holds on to it anymore: either no
// constrained edge touches it, or it is a nearly straight joint between two
// edges of the same constraints.
func (m *Mesh) RemoveIfEligible(v VertexID) {
	if !m.VertexAlive(v) {
		return
	}
	vertex := m.Vertex(v)
	if vertex.PointConstraints > 0 || vertex.ConstraintHandles > 0 {
		return
	}

	var constrained []EdgeID
	for _, e := range m.Star(v) {
		if m.Constrained(e) {
			constrained = append(constrained, e)
		}
	}
	switch len(constrained) {
	case 0:
		m.removeVertex(v)
	case 2:
		if m.semiCollinear(v, constrained[0], constrained[1]) {
			m.removeSemiCollinear(v, constrained[0], constrained[1])
		}
	}
}

// Whether the constrained edges e1 and e2 leaving v can be fused into one edge
// between their far ends.
func (m *Mesh) semiCollinear(v VertexID, e1, e2 EdgeID) bool {
	if !m.Crep(e1).Equal(m.Crep(e2)) {
		return false
	}
	// A vertex of degree two only shows up in a broken mesh
	if m.Onext(e1) == e2 && m.Onext(e2) == e1 {
		return false
	}
	a, b := m.Dest(e1), m.Dest(e2)
	pa, pb, pv := m.position(a), m.position(b), m.position(v)
	ab := pb.Sub(pa)
	t := pv.Sub(pa).Dot(ab) / ab.Dot(ab)
	if !(t > 0 && t < 1) {
		return false
	}
	if math.Abs(ab.Cross(pv.Sub(pa)))/ab.Norm() > m.config.CollinearMargin {
		return false
	}

	// The star splits into the vertices right of ab, between e1 and e2, and
	// those left of it, between e2 and e1
	w := m.newWatchdog("semiCollinear")
	for _, side := range [2]struct {
		from, to EdgeID
		sign     float64
	}{{e1, e2, -1}, {e2, e1, 1}} {
		for e := m.Onext(side.from); e != side.to; e = m.Onext(e) {
			w.tick()
			if m.orient(a, b, m.Dest(e))*side.sign <= 0 {
				return false
			}
		}
	}
	return true
}

// Remove v and its star, then retriangulate the hole.
func (m *Mesh) removeVertex(v VertexID) {
	star := m.Star(v)
	rim := m.Lnext(star[0])
	for _, e := range star {
		m.destroyFace(e)
	}
	for _, e := range star {
		m.deleteEdge(e)
	}
	m.logger.Debug("removed vertex",
		zap.String("vertex", dbg.Name(v)),
		zap.Int("degree", len(star)))
	m.releaseVertex(v)

	m.triangulatePolygon(rim)
	m.FlipEdges()
}

// Remove v, and replace its two constrained edges with a single edge between
// their far ends. When e1 and e2 are neighbours around v, that edge already
// exists and takes over their crep.
func (m *Mesh) removeSemiCollinear(v VertexID, e1, e2 EdgeID) {
	a, b := m.Dest(e1), m.Dest(e2)
	crep := m.quad(e1).crep
	m.quad(e1).crep = nil
	chord := NilEdge
	if m.Onext(e1) == e2 || m.Onext(e2) == e1 {
		chord = m.findEdge(a, b)
	}

	star := m.Star(v)
	rim := m.Lnext(star[0])
	for _, e := range star {
		m.destroyFace(e)
	}
	for _, e := range star {
		m.deleteEdge(e)
	}
	m.logger.Debug("fused semi-collinear vertex",
		zap.String("vertex", dbg.Name(v)),
		zap.Int32("a", int32(a)),
		zap.Int32("b", int32(b)))
	m.releaseVertex(v)

	if chord != NilEdge {
		q := m.quad(chord)
		if q.crep == nil {
			q.crep = crep
		} else {
			for _, id := range crep {
				q.crep = q.crep.add(id)
			}
			m.creps.put(crep)
		}
		m.resetClearance(chord)
		m.triangulatePolygon(rim)
		m.FlipEdges()
		return
	}

	// Find the hole edges entering a and leaving b
	toA, fromB := NilEdge, NilEdge
	w := m.newWatchdog("removeSemiCollinear")
	for e := rim; ; {
		w.tick()
		if m.Dest(e) == a {
			toA = e
		}
		if m.Org(e) == b {
			fromB = e
		}
		e = m.Lnext(e)
		if e == rim {
			break
		}
	}
	if toA == NilEdge || fromB == NilEdge {
		fatalf("fused edge endpoints %d, %d are not on the hole", a, b)
	}

	n := m.Connect(toA, fromB)
	m.quad(n).crep = crep
	m.resetClearance(n)
	m.triangulatePolygon(n)
	m.triangulatePolygon(n.Sym())
	m.FlipEdges()
}

// Ear clip the simple polygon left of e, then queue every edge touched for
// flipping.
func (m *Mesh) triangulatePolygon(e EdgeID) {
	var poly []EdgeID
	w := m.newWatchdog("triangulatePolygon")
	for f := e; ; {
		w.tick()
		poly = append(poly, f)
		f = m.Lnext(f)
		if f == e {
			break
		}
	}
	m.flipStack = append(m.flipStack, poly...)

	for len(poly) > 3 {
		w.tick()
		n := len(poly)
		clipped := false
		for i := 0; i < n && !clipped; i++ {
			first, second := poly[i], poly[(i+1)%n]
			p0, p1, p2 := m.Org(first), m.Dest(first), m.Dest(second)
			if m.orient(p0, p1, p2) <= 0 || m.earBlocked(poly, i, p0, p1, p2) {
				continue
			}
			d := m.Connect(second, first)
			m.NewTriangle(d)
			m.flipStack = append(m.flipStack, d)
			if i == n-1 {
				poly[n-1] = d.Sym()
				poly = poly[1:]
			} else {
				poly[i] = d.Sym()
				poly = append(poly[:i+1], poly[i+2:]...)
			}
			clipped = true
		}
		if !clipped {
			fatalf("no ear found in polygon of %d edges", n)
		}
	}
	m.NewTriangle(poly[0])
}

// Whether a polygon vertex other than the ear's own corners lies inside or on
// the ear p0 p1 p2, which starts at poly[i].
func (m *Mesh) earBlocked(poly []EdgeID, i int, p0, p1, p2 VertexID) bool {
	for j := range poly {
		if j == i || j == (i+1)%len(poly) || j == (i+2)%len(poly) {
			continue
		}
		u := m.Org(poly[j])
		if u == p0 || u == p1 || u == p2 {
			continue
		}
		if m.orient(p0, p1, u) >= 0 && m.orient(p1, p2, u) >= 0 && m.orient(p2, p0, u) >= 0 {
			return true
		}
	}
	return false
}
