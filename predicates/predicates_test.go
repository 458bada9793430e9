package predicates

import (
	"fmt"
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
)

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func TestOrient2D(t *testing.T) {
	cases := []struct {
		name    string
		a, b, c r2.Point
		want    int
	}{
		{"ccw", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 1}, 1},
		{"cw", r2.Point{X: 0, Y: 0}, r2.Point{X: 0, Y: 1}, r2.Point{X: 1, Y: 0}, -1},
		{"collinear", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 3, Y: 3}, 0},
		{"coincident", r2.Point{X: 2, Y: 2}, r2.Point{X: 2, Y: 2}, r2.Point{X: 5, Y: 1}, 0},
		// One ulp above the diagonal: plain floating point evaluation cannot
		// resolve this one reliably.
		{"one ulp left", r2.Point{X: 0.1, Y: 0.1}, r2.Point{X: 0.7, Y: 0.7}, r2.Point{X: 0.3, Y: math.Nextafter(0.3, 1)}, 1},
		{"one ulp right", r2.Point{X: 0.1, Y: 0.1}, r2.Point{X: 0.7, Y: 0.7}, r2.Point{X: 0.3, Y: math.Nextafter(0.3, 0)}, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, sign(Orient2D(c.a, c.b, c.c)))
			// Swapping two arguments must flip the sign, rotating must not.
			assert.Equal(t, -c.want, sign(Orient2D(c.b, c.a, c.c)))
			assert.Equal(t, c.want, sign(Orient2D(c.b, c.c, c.a)))
		})
	}
}

// Classic near-collinear grid: every point of a small ulp grid around a point
// on a line must agree with the exact answer, and the sign must be
// antisymmetric under argument swaps.
func TestOrient2DNearCollinearGrid(t *testing.T) {
	a := r2.Point{X: 12, Y: 12}
	b := r2.Point{X: 24, Y: 24}
	for i := 0; i < 16; i++ {
		for j := 0; j < 16; j++ {
			c := r2.Point{X: 0.5 + float64(i)*math.Pow(2, -53), Y: 0.5 + float64(j)*math.Pow(2, -53)}
			want := exactOrient2D(a, b, c)
			got := sign(Orient2D(a, b, c))
			assert.Equal(t, want, got, "point %v", c)
			assert.Equal(t, -got, sign(Orient2D(b, a, c)), "point %v", c)
			// The grid point lies above the line y = x iff j > i
			switch {
			case j > i:
				assert.Equal(t, 1, got, "point %v", c)
			case j < i:
				assert.Equal(t, -1, got, "point %v", c)
			default:
				assert.Equal(t, 0, got, "point %v", c)
			}
		}
	}
}

func TestInCircleTest(t *testing.T) {
	a := r2.Point{X: 1, Y: 0}
	b := r2.Point{X: 0, Y: 1}
	c := r2.Point{X: -1, Y: 0}
	cases := []struct {
		d    r2.Point
		want int
	}{
		{r2.Point{X: 0, Y: 0}, 1},
		{r2.Point{X: 0, Y: -1}, 0},
		{r2.Point{X: 2, Y: 2}, -1},
		{r2.Point{X: 0, Y: math.Nextafter(-1, 0)}, 1},
		{r2.Point{X: 0, Y: math.Nextafter(-1, -2)}, -1},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v", tc.d), func(t *testing.T) {
			assert.Equal(t, tc.want, sign(InCircleTest(a, b, c, tc.d)))
			// Clockwise input reverses the sign
			assert.Equal(t, -tc.want, sign(InCircleTest(b, a, c, tc.d)))
		})
	}
}

func TestExactFallbackAgreesWithFilter(t *testing.T) {
	// Well separated inputs take the fast path; the exact path must agree.
	a := r2.Point{X: -3, Y: 1}
	b := r2.Point{X: 4, Y: -2}
	c := r2.Point{X: 1, Y: 5}
	d := r2.Point{X: 0.25, Y: 0.5}
	assert.Equal(t, exactOrient2D(a, b, c), sign(Orient2D(a, b, c)))
	assert.Equal(t, exactInCircle(a, b, c, d), sign(InCircleTest(a, b, c, d)))
}
