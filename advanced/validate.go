package advanced

import (
	"github.com/osuushi/navmesh/predicates"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Validate rederives the mesh invariants from scratch and returns every
// violation found. Each violation is also logged at warn level. This is
// meant for tests and debugging; it walks the whole mesh.
func (m *Mesh) Validate() []error {
	var problems []error
	report := func(format string, args ...interface{}) {
		err := errors.Errorf(format, args...)
		m.logger.Warn("navmesh invariant violated", zap.Error(err))
		problems = append(problems, err)
	}

	faceSizes := make(map[TriangleID]int)
	for e := range m.Edges(true) {
		for _, r := range [4]EdgeID{e, e.Rot(), e.Sym(), e.InvRot()} {
			if m.Onext(m.Oprev(r)) != r {
				report("edge %d: Onext and Oprev disagree", r)
			}
		}
		if !m.EdgeAlive(m.Onext(e)) {
			report("edge %d: Onext points at a released edge", e)
			continue
		}
		if org := m.Org(e); !m.VertexAlive(org) {
			report("edge %d: origin %d is not a live vertex", e, org)
			continue
		}
		if m.Org(m.Onext(e)) != m.Org(e) {
			report("edge %d: Onext %d has a different origin", e, m.Onext(e))
		}
		if m.Org(e) == m.Dest(e) {
			report("edge %d: loops on vertex %d", e, m.Org(e))
		}

		crep := m.Crep(e)
		if crep != nil && len(crep) == 0 {
			report("edge %d: crep is empty but not released", e)
		}

		id := m.TriangleID(e)
		if id == OuterFace {
			if !crep.Contains(Boundary) {
				report("edge %d: bounds the outer face but is not a boundary edge", e)
			}
			continue
		}
		faceSizes[id]++
		next, prev := m.Lnext(e), m.Lprev(e)
		if m.Lnext(next) != prev || m.Lnext(prev) != e {
			report("edge %d: face %d is not a triangle", e, id)
			continue
		}
		if m.TriangleID(next) != id || m.TriangleID(prev) != id {
			report("edge %d: face edges disagree on id %d", e, id)
		}
		if m.orient(m.Org(e), m.Dest(e), m.Dest(next)) <= 0 {
			report("edge %d: face %d is not counterclockwise", e, id)
		}

		// Delaunay, checked once per unconstrained edge
		if e&1 != 0 || m.Constrained(e) || m.TriangleID(e.Sym()) == OuterFace {
			continue
		}
		a, b := m.OrgPoint(e), m.DestPoint(e)
		c := m.DestPoint(next)
		d := m.DestPoint(m.Lnext(e.Sym()))
		if predicates.InCircleTest(a, b, c, d) > 0 {
			report("edge %d: not locally Delaunay", e)
		}
	}
	for id, n := range faceSizes {
		if n != 3 {
			report("triangle %d: id carried by %d edges", id, n)
		}
	}

	for _, v := range m.live {
		vertex := m.Vertex(v)
		if !m.extent.ContainsPoint(vertex.Point) {
			report("vertex %d: %v is outside the extent", v, vertex.Point)
		}
		if vertex.Edge == NilEdge {
			report("vertex %d: isolated", v)
			continue
		}
		if !m.EdgeAlive(vertex.Edge) || m.Org(vertex.Edge) != v {
			report("vertex %d: anchor edge %d does not leave it", v, vertex.Edge)
		}
		if m.live[vertex.listIndex] != v {
			report("vertex %d: live list index %d is stale", v, vertex.listIndex)
		}
	}

	for id, ob := range m.obstacles {
		if !m.VertexAlive(ob.vertex) {
			report("obstacle %d: first vertex %d is gone", id, ob.vertex)
		}
	}
	return problems
}
