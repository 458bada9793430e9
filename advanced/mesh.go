package advanced

import (
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// A Mesh is a constrained Delaunay triangulation of a rectangular domain,
// maintained incrementally as obstacles are inserted and removed.
//
// A Mesh must only be used from one goroutine at a time.
type Mesh struct {
	config   Config
	extent   r2.Rect
	eps      float64
	logger   *zap.Logger
	observer Observer
	rand     *rand.Rand

	vertices arena[Vertex]
	quads    arena[QuadEdge]
	creps    crepPool
	index    *pointIndex
	// Live vertices, for swap-remove and iteration
	live []VertexID

	flipStack []EdgeID
	// Scratch lists for the removal traversal
	open, closed []VertexID
	markGen      uint32
	// Scratch list of edges crossed by a segment
	crossed []EdgeID

	obstacles map[ObstacleID]obstacle

	lastTriangle TriangleID
	destroyed    []TriangleID
	// Set while an update mutates the mesh
	updating bool

	// The domain corners, counterclockwise from the lower left
	corners [4]VertexID
}

type obstacle struct {
	// First vertex of the boundary, where the removal traversal starts
	vertex VertexID
	point  bool
}

func New(config Config) (*Mesh, error) {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Observer == nil {
		config.Observer = nopObserver{}
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid navmesh config")
	}
	m := &Mesh{
		config:    config,
		extent:    config.Extent,
		eps:       config.Epsilon,
		logger:    config.Logger,
		observer:  config.Observer,
		rand:      rand.New(rand.NewSource(config.Seed)),
		index:     newPointIndex(config.Extent, config.CellSize),
		obstacles: make(map[ObstacleID]obstacle),
	}
	m.bootstrap()
	return m, nil
}

// Build the initial triangulation: the domain rectangle split along one
// diagonal, with the four sides constrained as Boundary.
func (m *Mesh) bootstrap() {
	lo, hi := m.extent.Lo(), m.extent.Hi()
	points := [4]Point{
		{X: lo.X, Y: lo.Y},
		{X: hi.X, Y: lo.Y},
		{X: hi.X, Y: hi.Y},
		{X: lo.X, Y: hi.Y},
	}
	for i, p := range points {
		m.corners[i] = m.newVertex(p)
		// Corners can never be removed
		m.Vertex(m.corners[i]).PointConstraints = 1
	}

	var sides [4]EdgeID
	for i := range sides {
		sides[i] = m.makeEdge()
		m.setOrg(sides[i], m.corners[i])
		m.setOrg(sides[i].Sym(), m.corners[(i+1)%4])
		if i > 0 {
			m.Splice(sides[i-1].Sym(), sides[i])
		}
		m.addConstraint(sides[i], Boundary)
	}
	m.Splice(sides[3].Sym(), sides[0])

	// Diagonal from the upper right corner back to the lower left
	m.Connect(sides[1], sides[0])
	m.NewTriangle(sides[0])
	m.NewTriangle(sides[2])
}

func (m *Mesh) newVertex(p Point) VertexID {
	id, v := m.vertices.alloc()
	vid := VertexID(id)
	v.Point = p
	v.Edge = NilEdge
	v.listIndex = len(m.live)
	m.live = append(m.live, vid)
	m.index.insert(vid, p)
	m.observer.ObserveVertexInserted()
	return vid
}

// The vertex must already be detached from every edge.
func (m *Mesh) releaseVertex(vid VertexID) {
	v := m.Vertex(vid)
	if v.Edge != NilEdge {
		fatalf("releasing vertex %d which still has edges", vid)
	}
	m.index.remove(vid, v.Point)
	last := m.live[len(m.live)-1]
	m.live[v.listIndex] = last
	m.Vertex(last).listIndex = v.listIndex
	m.live = m.live[:len(m.live)-1]
	m.vertices.release(int32(vid))
	m.observer.ObserveVertexRemoved()
}

func (m *Mesh) Vertex(v VertexID) *Vertex { return m.vertices.get(int32(v)) }

func (m *Mesh) VertexAlive(v VertexID) bool { return m.vertices.isAlive(int32(v)) }

func (m *Mesh) position(v VertexID) Point { return m.vertices.get(int32(v)).Point }

// Live vertices in no particular order. The slice is owned by the mesh.
func (m *Mesh) Vertices() []VertexID { return m.live }

func (m *Mesh) NumVertices() int { return len(m.live) }

func (m *Mesh) NumEdges() int { return m.quads.len() }

func (m *Mesh) Extent() r2.Rect { return m.extent }

func (m *Mesh) Epsilon() float64 { return m.eps }

func (m *Mesh) Logger() *zap.Logger { return m.logger }

func (m *Mesh) HasObstacle(id ObstacleID) bool {
	_, ok := m.obstacles[id]
	return ok
}

func (m *Mesh) NumObstacles() int { return len(m.obstacles) }

// Release every pool. The mesh must not be used afterwards.
func (m *Mesh) Dispose() {
	m.vertices.reset()
	m.quads.reset()
	m.creps.reset()
	m.index.reset()
	m.live = nil
	m.flipStack = nil
	m.open, m.closed, m.crossed = nil, nil, nil
	m.obstacles = nil
	m.destroyed = nil
}
