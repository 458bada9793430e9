package advanced

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fuseLeft  = Point{X: 20, Y: 40}
	fuseRight = Point{X: 80, Y: 40}
)

// A vertex pinned by point obstacle 2 is released, and either fused into a
// single edge from fuseLeft to fuseRight or kept.
func TestSemiCollinearFusion(t *testing.T) {
	testCases := []struct {
		name string
		// Zero keeps the default of epsilon
		margin     float64
		pin        func(eps float64) Point
		bystanders []Point
		boundaries func(pin Point) [][]Point
		ids        []ObstacleID
		fused      bool
	}{
		{
			name:       "within the margin",
			pin:        func(eps float64) Point { return Point{X: 50, Y: 40 + eps/2} },
			boundaries: func(pin Point) [][]Point { return [][]Point{{fuseLeft, pin, fuseRight}} },
			ids:        []ObstacleID{1},
			fused:      true,
		},
		{
			name:       "beyond the margin",
			pin:        func(eps float64) Point { return Point{X: 50, Y: 40 + 2*eps} },
			boundaries: func(pin Point) [][]Point { return [][]Point{{fuseLeft, pin, fuseRight}} },
			ids:        []ObstacleID{1},
		},
		{
			name:       "wide margin",
			margin:     1,
			pin:        func(float64) Point { return Point{X: 50, Y: 40.5} },
			boundaries: func(pin Point) [][]Point { return [][]Point{{fuseLeft, pin, fuseRight}} },
			ids:        []ObstacleID{1},
			fused:      true,
		},
		{
			name:       "vertex between the pin and the fused edge",
			margin:     1,
			pin:        func(float64) Point { return Point{X: 50, Y: 40.5} },
			bystanders: []Point{{X: 50, Y: 40.25}},
			boundaries: func(pin Point) [][]Point { return [][]Point{{fuseLeft, pin, fuseRight}} },
			ids:        []ObstacleID{1},
		},
		{
			name: "different obstacles",
			pin:  func(float64) Point { return Point{X: 50, Y: 40} },
			boundaries: func(pin Point) [][]Point {
				return [][]Point{{fuseLeft, pin}, {fuseRight, pin}}
			},
			ids: []ObstacleID{1, 3},
		},
		{
			name:       "right angle",
			pin:        func(float64) Point { return Point{X: 50, Y: 40} },
			boundaries: func(pin Point) [][]Point { return [][]Point{{fuseLeft, pin, {X: 50, Y: 70}}} },
			ids:        []ObstacleID{1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMeshWith(t, func(c *Config) {
				if tc.margin > 0 {
					c.CollinearMargin = tc.margin
				}
			})
			pin := tc.pin(m.Epsilon())
			points := append([]Point{pin}, tc.bystanders...)
			lengths := make([]int, len(points))
			ids := make([]ObstacleID, len(points))
			for i := range points {
				lengths[i] = 1
				ids[i] = ObstacleID(100 + i)
			}
			ids[0] = 2
			m.Update(points, lengths, ids, nil)

			points, lengths = batch(tc.boundaries(pin)...)
			m.Update(points, lengths, tc.ids, nil)
			assertValid(t, m)
			require.True(t, hasVertexAt(m, pin))

			m.Update(nil, nil, nil, []ObstacleID{2})
			assertValid(t, m)
			assert.Equal(t, !tc.fused, hasVertexAt(m, pin))
			if tc.fused {
				edge := m.findEdge(vertexAt(t, m, fuseLeft), vertexAt(t, m, fuseRight))
				require.NotEqual(t, NilEdge, edge)
				assert.Equal(t, Crep{1}, m.Crep(edge))
			}
		})
	}
}

func TestFusionOntoExistingEdge(t *testing.T) {
	m := newTestMesh(t)
	pin := Point{X: 50, Y: 40 + m.Epsilon()/2}
	m.Update([]Point{pin}, []int{1}, []ObstacleID{2}, nil)
	// Obstacle 3 runs straight under the bend of obstacle 1, leaving a single
	// sliver face between them
	points, lengths := batch([]Point{fuseLeft, pin, fuseRight}, []Point{fuseLeft, fuseRight})
	m.Update(points, lengths, []ObstacleID{1, 3}, nil)
	assertValid(t, m)
	chord := m.findEdge(vertexAt(t, m, fuseLeft), vertexAt(t, m, fuseRight))
	require.NotEqual(t, NilEdge, chord)
	assert.Equal(t, Crep{3}, m.Crep(chord))

	// The existing edge takes over obstacle 1
	m.Update(nil, nil, nil, []ObstacleID{2})
	assertValid(t, m)
	assert.False(t, hasVertexAt(m, pin))
	chord = m.findEdge(vertexAt(t, m, fuseLeft), vertexAt(t, m, fuseRight))
	require.NotEqual(t, NilEdge, chord)
	assert.Equal(t, Crep{1, 3}, m.Crep(chord))
	assert.Equal(t, 6, m.NumVertices())

	m.Update(nil, nil, nil, []ObstacleID{1, 3})
	assertValid(t, m)
	assert.Equal(t, 4, m.NumVertices())
	assert.Equal(t, 5, m.NumEdges())
}

func TestInterruptedUpdate(t *testing.T) {
	m := newTestMeshWith(t, func(c *Config) { c.WatchdogLimit = 1 })
	points, lengths := batch(rect(20, 20, 40, 40))
	err := tryUpdate(m, points, lengths, []ObstacleID{1}, nil)
	assert.ErrorContains(t, err, "watchdog tripped")
	assert.True(t, m.Interrupted())

	err = tryUpdate(m, nil, nil, nil, nil)
	assert.ErrorContains(t, err, "interrupted")
}
