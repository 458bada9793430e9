package advanced

import (
	"math"

	"github.com/golang/geo/r2"
)

// A uniform grid over the extent, bucketing vertices by position. Used to find
// a starting vertex for point location and to epsilon-snap new points.
type pointIndex struct {
	origin r2.Point
	cell   float64
	nx, ny int
	cells  [][]VertexID
	count  int
}

func newPointIndex(extent r2.Rect, cellSize float64) *pointIndex {
	size := extent.Size()
	if cellSize <= 0 {
		cellSize = math.Max(size.X, size.Y) / defaultGridResolution
	}
	// Cap the grid, a huge extent with tiny cells would just waste memory
	cellSize = math.Max(cellSize, math.Max(size.X, size.Y)/maxGridResolution)
	nx := int(math.Ceil(size.X/cellSize)) + 1
	ny := int(math.Ceil(size.Y/cellSize)) + 1
	return &pointIndex{
		origin: extent.Lo(),
		cell:   cellSize,
		nx:     nx,
		ny:     ny,
		cells:  make([][]VertexID, nx*ny),
	}
}

func (g *pointIndex) coords(p Point) (int, int) {
	x := int(math.Floor((p.X - g.origin.X) / g.cell))
	y := int(math.Floor((p.Y - g.origin.Y) / g.cell))
	return min(max(x, 0), g.nx-1), min(max(y, 0), g.ny-1)
}

func (g *pointIndex) insert(v VertexID, p Point) {
	x, y := g.coords(p)
	i := y*g.nx + x
	g.cells[i] = append(g.cells[i], v)
	g.count++
}

func (g *pointIndex) remove(v VertexID, p Point) {
	x, y := g.coords(p)
	i := y*g.nx + x
	bucket := g.cells[i]
	for j, w := range bucket {
		if w == v {
			bucket[j] = bucket[len(bucket)-1]
			g.cells[i] = bucket[:len(bucket)-1]
			g.count--
			return
		}
	}
	fatalf("vertex %d missing from point index", v)
}

// Find the vertex closest to p, scanning rings of cells outward from the cell
// containing p. Returns NilVertex if the index is empty.
func (g *pointIndex) closest(p Point, position func(VertexID) Point) (VertexID, float64) {
	best := NilVertex
	bestDist := math.Inf(1)
	if g.count == 0 {
		return best, bestDist
	}
	cx, cy := g.coords(p)
	maxRing := max(g.nx, g.ny)
	for r := 0; r <= maxRing; r++ {
		for y := cy - r; y <= cy+r; y++ {
			if y < 0 || y >= g.ny {
				continue
			}
			for x := cx - r; x <= cx+r; x++ {
				if x < 0 || x >= g.nx {
					continue
				}
				// Only the cells on the ring itself
				if y != cy-r && y != cy+r && x != cx-r && x != cx+r {
					continue
				}
				for _, v := range g.cells[y*g.nx+x] {
					if d := position(v).Sub(p).Norm(); d < bestDist {
						best, bestDist = v, d
					}
				}
			}
		}
		// Every cell beyond ring r is at least r cells away from p
		if best != NilVertex && bestDist <= float64(r)*g.cell {
			break
		}
	}
	return best, bestDist
}

func (g *pointIndex) reset() {
	g.cells = nil
	g.count = 0
}
