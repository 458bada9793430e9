package advanced

import "github.com/golang/geo/r2"

type Point = r2.Point

// Handles into the mesh arenas. They stay valid until the record they name is
// released, after which the slot may be handed out again.
type VertexID int32
type QuadID int32

// A directed edge is addressed as quad*4 + r, where r = 0 is the primal edge,
// r = 1 its symmetric twin, and r = 2, 3 are the dual edges (Rot and InvRot of
// the primal edge).
type EdgeID int32

// Obstacle identifiers are chosen by the caller and must be non-negative.
type ObstacleID int

type TriangleID int

const (
	NilVertex VertexID = -1
	NilEdge   EdgeID   = -1

	// Tags the four edges of the domain rectangle.
	Boundary ObstacleID = -1

	// The unbounded face outside the domain rectangle. Never reported.
	OuterFace TriangleID = 0
)

type Vertex struct {
	Point
	// An edge whose origin is this vertex, or NilEdge while the vertex is
	// isolated.
	Edge EdgeID
	// Number of point obstacles sitting on this vertex
	PointConstraints int
	// Number of obstacles whose boundary starts at this vertex
	ConstraintHandles int

	listIndex int
	mark      uint32
}

type edgeRecord struct {
	next EdgeID
	// Only meaningful on the primal pair
	org      VertexID
	triangle TriangleID
	// Cached clearance of the face on the left, or -1 when unknown
	clearance float64
}

type QuadEdge struct {
	crep  Crep
	edges [4]edgeRecord
}

var (
	rotTable    = [4]EdgeID{2, 3, 1, 0}
	invRotTable = [4]EdgeID{3, 2, 0, 1}
)

func (e EdgeID) Quad() QuadID { return QuadID(e >> 2) }

// Primal returns the r = 0 edge of the quad edge containing e.
func (e EdgeID) Primal() EdgeID { return e &^ 3 }

func (e EdgeID) IsPrimal() bool { return e&2 == 0 }

func (e EdgeID) Rot() EdgeID { return e&^3 | rotTable[e&3] }

func (e EdgeID) InvRot() EdgeID { return e&^3 | invRotTable[e&3] }

func (e EdgeID) Sym() EdgeID { return e ^ 1 }
