// Package predicates provides the orientation and in-circle sign tests the
// triangulation relies on. Both are exact for all finite inputs: a cheap
// floating point evaluation is used whenever its error bound proves the sign,
// and the determinant is recomputed with math/big otherwise.
package predicates

import (
	"math"
	"math/big"

	"github.com/golang/geo/r2"
)

const (
	// Half an ulp of 1, the unit roundoff of float64 arithmetic.
	epsilon = 1.1102230246251565e-16

	// Static error bounds for the floating point evaluations, from Shewchuk's
	// "Adaptive Precision Floating-Point Arithmetic and Fast Robust Geometric
	// Predicates".
	ccwErrBound = (3.0 + 16.0*epsilon) * epsilon
	iccErrBound = (10.0 + 96.0*epsilon) * epsilon
)

// Orient2D returns a positive value if a, b, c wind counterclockwise, a
// negative value if they wind clockwise, and zero if they are exactly
// collinear. Only the sign is meaningful.
func Orient2D(a, b, c r2.Point) float64 {
	detLeft := (a.X - c.X) * (b.Y - c.Y)
	detRight := (a.Y - c.Y) * (b.X - c.X)
	det := detLeft - detRight

	var detSum float64
	if detLeft > 0 {
		if detRight <= 0 {
			return det
		}
		detSum = detLeft + detRight
	} else if detLeft < 0 {
		if detRight >= 0 {
			return det
		}
		detSum = -detLeft - detRight
	} else {
		// detLeft is exactly zero, so det is -detRight computed without rounding
		// in the subtraction. The products may still have rounded, so fall
		// through to the bound check.
		detSum = math.Abs(detRight)
	}

	if bound := ccwErrBound * detSum; det > bound || -det > bound {
		return det
	}
	return float64(exactOrient2D(a, b, c))
}

// InCircleTest returns a positive value if d lies strictly inside the circle
// through a, b, c, negative if it lies strictly outside, and zero if the four
// points are cocircular. a, b, c must wind counterclockwise; if they wind
// clockwise the sign is reversed.
func InCircleTest(a, b, c, d r2.Point) float64 {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	bdxcdy := bdx * cdy
	cdxbdy := cdx * bdy
	aLift := adx*adx + ady*ady

	cdxady := cdx * ady
	adxcdy := adx * cdy
	bLift := bdx*bdx + bdy*bdy

	adxbdy := adx * bdy
	bdxady := bdx * ady
	cLift := cdx*cdx + cdy*cdy

	det := aLift*(bdxcdy-cdxbdy) +
		bLift*(cdxady-adxcdy) +
		cLift*(adxbdy-bdxady)

	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*aLift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*bLift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*cLift

	if bound := iccErrBound * permanent; det > bound || -det > bound {
		return det
	}
	return float64(exactInCircle(a, b, c, d))
}

// newBigFloat constructs a new big.Float with maximum precision. Sums and
// products of float64 values never need more than a few thousand bits, so
// every operation below is exact.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

func bigFloat(x float64) *big.Float { return newBigFloat().SetFloat64(x) }

func sub(a, b float64) *big.Float { return newBigFloat().Sub(bigFloat(a), bigFloat(b)) }

func mul(a, b *big.Float) *big.Float { return newBigFloat().Mul(a, b) }

func exactOrient2D(a, b, c r2.Point) int {
	acx, acy := sub(a.X, c.X), sub(a.Y, c.Y)
	bcx, bcy := sub(b.X, c.X), sub(b.Y, c.Y)
	det := newBigFloat().Sub(mul(acx, bcy), mul(acy, bcx))
	return det.Sign()
}

func exactInCircle(a, b, c, d r2.Point) int {
	adx, ady := sub(a.X, d.X), sub(a.Y, d.Y)
	bdx, bdy := sub(b.X, d.X), sub(b.Y, d.Y)
	cdx, cdy := sub(c.X, d.X), sub(c.Y, d.Y)

	lift := func(x, y *big.Float) *big.Float {
		return newBigFloat().Add(mul(x, x), mul(y, y))
	}
	cross := func(x1, y1, x2, y2 *big.Float) *big.Float {
		return newBigFloat().Sub(mul(x1, y2), mul(x2, y1))
	}

	det := mul(lift(adx, ady), cross(bdx, bdy, cdx, cdy))
	det.Add(det, mul(lift(bdx, bdy), cross(cdx, cdy, adx, ady)))
	det.Add(det, mul(lift(cdx, cdy), cross(adx, ady, bdx, bdy)))
	return det.Sign()
}
