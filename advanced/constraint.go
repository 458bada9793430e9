package advanced

import (
	"github.com/osuushi/navmesh/predicates"
	"go.uber.org/zap"
)

// Deep enough for any sane input; a runaway recursion means the support
// search is bouncing between the same vertices.
const maxSegmentDepth = 64

func (m *Mesh) Constrained(e EdgeID) bool { return len(m.quad(e).crep) > 0 }

// The obstacles bordering e. Owned by the mesh; copy it to keep it.
func (m *Mesh) Crep(e EdgeID) Crep { return m.quad(e).crep }

func (m *Mesh) addConstraint(e EdgeID, id ObstacleID) {
	q := m.quad(e)
	if q.crep == nil {
		q.crep = m.creps.get()
		m.resetClearance(e)
	}
	q.crep = q.crep.add(id)
}

// InsertSegment constrains the straight path from a to b with the obstacle id.
// Edges crossed by the path are removed, and where the path crosses an edge
// that is already constrained, a support vertex is placed on that edge and
// the path is bent through it.
func (m *Mesh) InsertSegment(a, b VertexID, id ObstacleID) {
	m.insertSegment(a, b, id, 0)
}

func (m *Mesh) insertSegment(a, b VertexID, id ObstacleID, depth int) {
	if depth > maxSegmentDepth {
		fatalf("segment %d -> %d of obstacle %d: support search did not converge", a, b, id)
	}
	w := m.newWatchdog("InsertSegment")
walk:
	for a != b {
		w.tick()
		e, collinear := m.starWedge(a, b)
		if collinear {
			// An edge already runs along the segment
			m.addConstraint(e, id)
			a = m.Dest(e)
			continue
		}

		// The segment leaves a through the face left of e and crosses the
		// opposite edge. Crossed edges always run from the right of the segment
		// to its left.
		m.crossed = m.crossed[:0]
		cur := m.Lnext(e)
		for {
			w.tick()
			if m.Constrained(cur) {
				support := m.createPRef(a, b, cur)
				m.insertSegment(a, support, id, depth+1)
				a = support
				continue walk
			}
			m.crossed = append(m.crossed, cur)

			across := cur.Sym()
			z := m.Dest(m.Lnext(across))
			if z == b {
				m.insertSegmentNoConstraints(a, b, e, id)
				return
			}
			switch o := m.orient(a, b, z); {
			case o == 0:
				// A vertex sits exactly on the segment
				m.insertSegmentNoConstraints(a, z, e, id)
				a = z
				continue walk
			case o > 0:
				cur = m.Lnext(across)
			default:
				cur = m.Lprev(across)
			}
		}
	}
}

// Find where the segment from a toward b leaves a. Returns either an edge from
// a running along the segment (collinear), or the edge e such that the
// segment passes strictly between e and Onext(e).
func (m *Mesh) starWedge(a, b VertexID) (EdgeID, bool) {
	pa, pb := m.position(a), m.position(b)
	dir := pb.Sub(pa)
	start := m.Vertex(a).Edge
	w := m.newWatchdog("starWedge")
	for e := start; ; {
		w.tick()
		px := m.DestPoint(e)
		o := predicates.Orient2D(pa, px, pb)
		if o == 0 && px.Sub(pa).Dot(dir) > 0 {
			return e, true
		}
		if o > 0 {
			py := m.DestPoint(m.Onext(e))
			if predicates.Orient2D(pa, py, pb) < 0 {
				return e, false
			}
		}
		e = m.Onext(e)
		if e == start {
			fatalf("no face around vertex %d contains the direction to vertex %d", a, b)
		}
	}
}

// Realise the segment from a to c, whose crossed edges were collected in
// m.crossed by the walk. e leaves a, with the first crossed edge opposite a in
// its left face. The crossed edges are removed and the two cavities on either
// side of the new edge are retriangulated.
func (m *Mesh) insertSegmentNoConstraints(a, c VertexID, e EdgeID, id ObstacleID) {
	last := m.crossed[len(m.crossed)-1]
	// Leaves c on the far side of the last crossed edge, and survives the
	// deletions below
	ec := m.Lprev(last.Sym())
	if m.Org(ec) != c {
		fatalf("segment walk lost track of vertex %d", c)
	}

	for _, x := range m.crossed {
		m.destroyFace(x)
		m.destroyFace(x.Sym())
	}
	for _, x := range m.crossed {
		m.deleteEdge(x)
	}

	n := m.Connect(m.Lprev(e), ec)
	m.triangulatePseudo(n)
	m.triangulatePseudo(n.Sym())
	m.addConstraint(n, id)
	m.crossed = m.crossed[:0]
}

// Triangulate the pseudo-polygon left of base, whose vertices all lie left of
// base, so the result is constrained Delaunay. After Anglada, "An improved
// incremental algorithm for constructing restricted Delaunay triangulations".
func (m *Mesh) triangulatePseudo(base EdgeID) {
	first := m.Lnext(base)
	if m.Lnext(m.Lnext(first)) == base {
		m.NewTriangle(base)
		return
	}

	p, q := m.OrgPoint(base), m.DestPoint(base)
	// best ends at the vertex whose circle with base contains no other vertex
	best := first
	w := m.newWatchdog("triangulatePseudo")
	for f := m.Lnext(first); m.Lnext(f) != base; f = m.Lnext(f) {
		w.tick()
		if predicates.InCircleTest(p, q, m.DestPoint(best), m.DestPoint(f)) > 0 {
			best = f
		}
	}

	if m.Lnext(best) != m.Lprev(base) {
		cp := m.Connect(best, base)
		m.triangulatePseudo(cp.Sym())
	}
	if best != first {
		qc := m.Connect(base, m.Lprev(base))
		m.triangulatePseudo(qc.Sym())
	}
	m.NewTriangle(base)
}

// Choose the support vertex where the segment from a to b crosses the
// constrained edge cross. Prefers an existing vertex, then a split of cross at
// the crossing, then a split stepped away from the crossing.
func (m *Mesh) createPRef(a, b VertexID, cross EdgeID) VertexID {
	pa, pb := m.position(a), m.position(b)

	// An endpoint of the crossed edge close to the segment wins outright. This
	// is what absorbs constraints that nearly overlap.
	support := NilVertex
	bestT := 2.0
	ab := pb.Sub(pa)
	for _, v := range [2]VertexID{m.Org(cross), m.Dest(cross)} {
		pv := m.position(v)
		if _, d := closestOnSegment(pv, pa, pb); d > m.eps {
			continue
		}
		if t := pv.Sub(pa).Dot(ab) / ab.Dot(ab); t < bestT {
			support, bestT = v, t
		}
	}
	if support != NilVertex {
		return support
	}

	px, py := m.OrgPoint(cross), m.DestPoint(cross)
	q, _ := closestOnSegment(lineIntersection(pa, pb, px, py), px, py)
	if v, d := m.FindClosestVertex(q); d <= m.eps {
		if v != a && v != b {
			return v
		}
	} else if m.canSplit(cross, q) {
		return m.splitSupport(cross, q)
	}
	return m.getSupport(a, b, cross, q)
}

// Step away from q along the crossed edge in increments of epsilon/2,
// alternating sides, until an existing vertex or a safe split point turns up.
// Falls back to the endpoint of the crossed edge nearest q. The steps follow
// cross rather than the segment, since the support must split cross for the
// path to get past it.
func (m *Mesh) getSupport(a, b VertexID, cross EdgeID, q Point) VertexID {
	px, py := m.OrgPoint(cross), m.DestPoint(cross)
	length := py.Sub(px).Norm()
	dir := py.Sub(px).Mul(1 / length)
	t0 := q.Sub(px).Dot(dir)
	step := m.eps / 2

	w := m.newWatchdog("getSupport")
	for k := 1; ; k++ {
		w.tick()
		inside := false
		for _, sign := range [2]float64{1, -1} {
			t := t0 + sign*float64(k)*step
			if t <= 0 || t >= length {
				continue
			}
			inside = true
			s := px.Add(dir.Mul(t))
			v, d := m.FindClosestVertex(s)
			if d <= m.eps {
				if v != a && v != b {
					return v
				}
				continue
			}
			if m.canSplit(cross, s) {
				return m.splitSupport(cross, s)
			}
		}
		if !inside {
			break
		}
	}

	m.logger.Debug("support search fell back to an endpoint",
		zap.Int32("edge", int32(cross)),
		zap.Stringer("crossing", q))
	if q.Sub(px).Norm() <= q.Sub(py).Norm() {
		return m.Org(cross)
	}
	return m.Dest(cross)
}

func (m *Mesh) splitSupport(cross EdgeID, p Point) VertexID {
	v := m.insertPointInEdge(cross, p)
	m.FlipEdges()
	m.observer.ObserveSupport()
	m.logger.Debug("split constrained edge for support",
		zap.Stringer("point", p),
		zap.Int32("vertex", int32(v)))
	return v
}
