package advanced

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// Update applies one batch of obstacle changes and returns the ids of every
// face destroyed along the way.
//
// points holds the boundaries of the new obstacles back to back, with
// segmentLengths giving the number of points of each and obstacleIDs its id.
// A boundary whose last point repeats its first is closed. A single point is a
// point obstacle. Obstacles listed in removals are retracted before anything
// is inserted.
//
// The whole batch is checked before the mesh is touched; invalid input panics
// with a MeshError and leaves the mesh as it was. A panic after that point
// leaves the mesh inconsistent for good, see Interrupted.
func (m *Mesh) Update(points []Point, segmentLengths []int, obstacleIDs []ObstacleID, removals []ObstacleID) []TriangleID {
	if m.updating {
		fatalf("an earlier update was interrupted, the mesh is inconsistent")
	}
	start := time.Now()
	m.destroyed = m.destroyed[:0]
	m.validateBatch(points, segmentLengths, obstacleIDs, removals)
	m.updating = true

	for _, id := range removals {
		m.RemoveConstraint(id)
	}
	offset := 0
	for i, n := range segmentLengths {
		m.InsertObstacle(obstacleIDs[i], points[offset:offset+n])
		offset += n
	}

	m.updating = false

	destroyed := append([]TriangleID(nil), m.destroyed...)
	elapsed := time.Since(start)
	m.observer.ObserveUpdate(elapsed, len(destroyed))
	m.logger.Debug("navmesh update",
		zap.Int("inserted", len(segmentLengths)),
		zap.Int("removed", len(removals)),
		zap.Int("destroyed", len(destroyed)),
		zap.Int("vertices", m.NumVertices()),
		zap.Duration("elapsed", elapsed))
	return destroyed
}

// Interrupted reports whether an update stopped part way through. Such a mesh
// may be topologically broken and must be discarded.
func (m *Mesh) Interrupted() bool { return m.updating }

// InsertObstacle adds the boundary of one obstacle. See Update for the
// meaning of points.
func (m *Mesh) InsertObstacle(id ObstacleID, points []Point) {
	if len(points) == 1 {
		v := m.InsertPoint(points[0])
		m.Vertex(v).PointConstraints++
		m.obstacles[id] = obstacle{vertex: v, point: true}
		return
	}

	first := m.InsertPoint(points[0])
	m.Vertex(first).ConstraintHandles++
	m.obstacles[id] = obstacle{vertex: first}
	prev := first
	for _, p := range points[1:] {
		v := m.InsertPoint(p)
		if v != prev {
			m.InsertSegment(prev, v, id)
		}
		prev = v
	}
}

func (m *Mesh) validateBatch(points []Point, segmentLengths []int, obstacleIDs []ObstacleID, removals []ObstacleID) {
	if len(segmentLengths) != len(obstacleIDs) {
		fatalf("%d segment lengths for %d obstacle ids", len(segmentLengths), len(obstacleIDs))
	}

	removing := make(map[ObstacleID]struct{}, len(removals))
	for _, id := range removals {
		if _, ok := m.obstacles[id]; !ok {
			fatalf("cannot remove unknown obstacle %d", id)
		}
		if _, ok := removing[id]; ok {
			fatalf("obstacle %d is removed twice", id)
		}
		removing[id] = struct{}{}
	}

	total := 0
	for _, n := range segmentLengths {
		if n < 1 {
			fatalf("obstacle with %d points", n)
		}
		total += n
	}
	if total != len(points) {
		fatalf("segment lengths add up to %d but %d points were given", total, len(points))
	}

	inserting := make(map[ObstacleID]struct{}, len(obstacleIDs))
	offset := 0
	for i, id := range obstacleIDs {
		if id < 0 {
			fatalf("obstacle id %d is negative", id)
		}
		if _, ok := inserting[id]; ok {
			fatalf("obstacle %d is inserted twice", id)
		}
		inserting[id] = struct{}{}
		if _, ok := m.obstacles[id]; ok {
			if _, ok := removing[id]; !ok {
				fatalf("obstacle %d already exists", id)
			}
		}

		boundary := points[offset : offset+segmentLengths[i]]
		offset += segmentLengths[i]
		for _, p := range boundary {
			if math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || !m.insideDomain(p) {
				fatalf("obstacle %d: point %v is outside the domain %v shrunk by %v", id, p, m.extent, m.eps)
			}
		}
		if len(boundary) == 1 {
			continue
		}
		distinct := countDistinct(boundary)
		closed := len(boundary) > 2 && boundary[0] == boundary[len(boundary)-1]
		if closed && distinct < 3 {
			fatalf("obstacle %d: closed boundary has %d distinct points", id, distinct)
		}
		if distinct < 2 {
			fatalf("obstacle %d: boundary has %d distinct points", id, distinct)
		}
	}
}

func countDistinct(points []Point) int {
	seen := make(map[Point]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
	}
	return len(seen)
}
