package advanced

import (
	"embed"
	"log"
	"strconv"
	"strings"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This file parses the svg fixtures and outputs obstacle boundaries. This is
// not a full (or even correct) svg parser. It finds every polygon in the SVG
// and converts each into a closed boundary, repeating the first point at the
// end. If anything goes wrong, it exits.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.
// They are drawn in a 100x100 view box, matching newTestMesh.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) [][]Point {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) == 0 {
		log.Fatalf("No polygons found in fixture %q", name)
	}

	var boundaries [][]Point
	for _, polygonEl := range polygons {
		pointStrings := strings.Fields(polygonEl.Attributes["points"])
		points := make([]Point, 0, len(pointStrings)+1)
		for _, pointString := range pointStrings {
			coords := strings.Split(pointString, ",")
			if len(coords) != 2 {
				log.Fatalf("Invalid point string %q", pointString)
			}
			x, err := strconv.ParseFloat(coords[0], 64)
			if err != nil {
				log.Fatalf("Invalid x value %q: %v", coords[0], err)
			}
			y, err := strconv.ParseFloat(coords[1], 64)
			if err != nil {
				log.Fatalf("Invalid y value %q: %v", coords[1], err)
			}
			points = append(points, Point{X: x, Y: y})
		}
		boundaries = append(boundaries, append(points, points[0]))
	}
	return boundaries
}

func TestFixtures(t *testing.T) {
	for _, name := range []string{"rooms", "star", "overlapping"} {
		t.Run(name, func(t *testing.T) {
			m := newTestMesh(t)
			boundaries := LoadFixture(name)
			points, lengths := batch(boundaries...)
			ids := make([]ObstacleID, len(boundaries))
			for i := range ids {
				ids[i] = ObstacleID(i)
			}

			m.Update(points, lengths, ids, nil)
			assertValid(t, m)
			for _, id := range ids {
				assert.NotEmpty(t, constrainedBy(m, id), "obstacle %d", id)
			}
			// Every fixture vertex made it into the mesh
			for _, boundary := range boundaries {
				for _, p := range boundary {
					assert.True(t, hasVertexAt(m, p), "missing vertex at %v", p)
				}
			}

			// Take them out again in reverse
			for i := len(ids) - 1; i >= 0; i-- {
				m.Update(nil, nil, nil, []ObstacleID{ids[i]})
				require.Empty(t, m.Validate(), "after removing obstacle %d", ids[i])
			}
			assert.Equal(t, 4, m.NumVertices())
			assert.Zero(t, m.NumObstacles())
		})
	}
}
