package advanced

import (
	"math"

	"github.com/osuushi/navmesh/predicates"
)

func (m *Mesh) orient(a, b, c VertexID) float64 {
	return predicates.Orient2D(m.position(a), m.position(b), m.position(c))
}

// Orientation of p relative to the directed edge e
func (m *Mesh) orientEdge(e EdgeID, p Point) float64 {
	return predicates.Orient2D(m.OrgPoint(e), m.DestPoint(e), p)
}

// FindClosestVertex returns the vertex nearest to p and its distance.
func (m *Mesh) FindClosestVertex(p Point) (VertexID, float64) {
	return m.index.closest(p, m.position)
}

// Whether p lies inside the extent shrunk by epsilon on every side
func (m *Mesh) insideDomain(p Point) bool {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return false
	}
	return p.X >= m.extent.X.Lo+m.eps && p.X <= m.extent.X.Hi-m.eps &&
		p.Y >= m.extent.Y.Lo+m.eps && p.Y <= m.extent.Y.Hi-m.eps
}

func (m *Mesh) checkInside(p Point) {
	if !m.insideDomain(p) {
		fatalf("point %v is outside the domain %v shrunk by %v", p, m.extent, m.eps)
	}
}

// FindTriangleContainingPoint walks from the vertex nearest p to the face
// containing p. It returns an edge of that face with p on its left, and
// whether p lies exactly on the returned edge.
//
// The order in which the two remaining edges of each face are tested is
// random, which keeps the walk from cycling.
func (m *Mesh) FindTriangleContainingPoint(p Point) (EdgeID, bool) {
	m.checkInside(p)
	start, _ := m.FindClosestVertex(p)
	return m.locate(p, m.Vertex(start).Edge)
}

func (m *Mesh) locate(p Point, e EdgeID) (EdgeID, bool) {
	if m.orientEdge(e, p) < 0 {
		e = e.Sym()
	}
	w := m.newWatchdog("FindTriangleContainingPoint")
	for {
		w.tick()
		next, prev := m.Lnext(e), m.Lprev(e)
		if m.rand.Intn(2) == 0 {
			next, prev = prev, next
		}
		if m.orientEdge(next, p) < 0 {
			e = next.Sym()
			continue
		}
		if m.orientEdge(prev, p) < 0 {
			e = prev.Sym()
			continue
		}
		// p is inside the face or on its boundary
		for _, f := range [3]EdgeID{e, next, prev} {
			if m.orientEdge(f, p) == 0 {
				return f, true
			}
		}
		return e, false
	}
}

// Distance from p to the segment ab, and the closest point of the segment.
func closestOnSegment(p, a, b Point) (Point, float64) {
	ab := b.Sub(a)
	lengthSq := ab.Dot(ab)
	if lengthSq == 0 {
		return a, p.Sub(a).Norm()
	}
	t := p.Sub(a).Dot(ab) / lengthSq
	t = math.Max(0, math.Min(1, t))
	q := a.Add(ab.Mul(t))
	return q, p.Sub(q).Norm()
}

// Intersection of the lines through ab and cd. The lines must not be
// parallel.
func lineIntersection(a, b, c, d Point) Point {
	r := b.Sub(a)
	s := d.Sub(c)
	t := c.Sub(a).Cross(s) / r.Cross(s)
	return a.Add(r.Mul(t))
}
