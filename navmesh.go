// A dynamic constrained Delaunay triangulation for 2D navigation meshes.
//
// The mesh covers a fixed rectangular domain. Obstacles are inserted and
// removed in batches; each batch reports the triangles it destroyed so that
// callers can drop cached per-triangle data. Overlapping and crossing obstacle
// outlines are fine, and the mesh stays Delaunay away from the constraints.
package navmesh

import (
	"github.com/golang/geo/r2"
	"github.com/osuushi/navmesh/advanced"
	"github.com/pkg/errors"
)

type Point = advanced.Point
type Config = advanced.Config
type ObstacleID = advanced.ObstacleID
type TriangleID = advanced.TriangleID
type VertexID = advanced.VertexID
type EdgeID = advanced.EdgeID
type Observer = advanced.Observer

// Build a default configuration for the given domain.
func DefaultConfig(extent r2.Rect) Config {
	return advanced.DefaultConfig(extent)
}

type Navmesh struct {
	mesh *advanced.Mesh
	// Set for good once an update fails part way through
	failed error
}

// Create a navmesh covering config.Extent. The new mesh holds the two
// triangles of the domain rectangle and nothing else.
func New(config Config) (*Navmesh, error) {
	mesh, err := advanced.New(config)
	if err != nil {
		return nil, err
	}
	return &Navmesh{mesh: mesh}, nil
}

// Apply a batch of removals and insertions, and return the ids of every
// triangle destroyed by it.
//
// Obstacle i is made of the next segmentLengths[i] entries of points. A
// boundary whose last point equals its first is closed, and a single point is
// a point obstacle.
//
// If the batch is rejected as invalid, the error is returned and the mesh is
// unchanged. If it fails after that, the mesh is left inconsistent, and this
// and every later call returns the error.
func (n *Navmesh) Update(points []Point, segmentLengths []int, obstacleIDs []ObstacleID, removals []ObstacleID) (destroyed []TriangleID, err error) {
	if err := n.usable(); err != nil {
		return nil, err
	}
	defer func() {
		recoveredErr := advanced.HandlePanicRecover(recover())
		if recoveredErr != nil {
			destroyed = nil
			err = recoveredErr
			if n.mesh.Interrupted() {
				n.failed = errors.Wrap(recoveredErr, "navmesh is inconsistent after a failed update")
				err = n.failed
			}
		}
	}()
	return n.mesh.Update(points, segmentLengths, obstacleIDs, removals), nil
}

// An update can also be cut short by a panic that is not ours and goes
// straight to the caller.
func (n *Navmesh) usable() error {
	if n.failed == nil && n.mesh.Interrupted() {
		n.failed = errors.New("navmesh is inconsistent after an interrupted update")
	}
	return n.failed
}

// Find the triangle containing p. The returned edge has p on or to the left of
// it, and onEdge reports whether p lies exactly on that edge.
func (n *Navmesh) FindTriangleContainingPoint(p Point) (edge EdgeID, onEdge bool, err error) {
	if err := n.usable(); err != nil {
		return advanced.NilEdge, false, err
	}
	defer func() {
		recoveredErr := advanced.HandlePanicRecover(recover())
		if recoveredErr != nil {
			edge, onEdge, err = advanced.NilEdge, false, recoveredErr
		}
	}()
	edge, onEdge = n.mesh.FindTriangleContainingPoint(p)
	return edge, onEdge, nil
}

// Find the vertex closest to p, returning its position and distance.
func (n *Navmesh) FindClosestVertex(p Point) (VertexID, Point, float64) {
	v, dist := n.mesh.FindClosestVertex(p)
	return v, n.mesh.Vertex(v).Point, dist
}

// The corners of the triangle to the left of e
func (n *Navmesh) Triangle(e EdgeID) [3]Point {
	return n.mesh.Triangle(e)
}

func (n *Navmesh) TriangleID(e EdgeID) TriangleID {
	return n.mesh.TriangleID(e)
}

// Whether e borders an obstacle or the domain boundary
func (n *Navmesh) Constrained(e EdgeID) bool {
	return n.mesh.Constrained(e)
}

func (n *Navmesh) NumVertices() int  { return n.mesh.NumVertices() }
func (n *Navmesh) NumObstacles() int { return n.mesh.NumObstacles() }

// Access the underlying mesh, for traversal and drawing.
func (n *Navmesh) Mesh() *advanced.Mesh {
	return n.mesh
}

// Release the memory held by the mesh. The navmesh cannot be used afterwards.
func (n *Navmesh) Dispose() {
	n.mesh.Dispose()
	n.mesh = nil
}
