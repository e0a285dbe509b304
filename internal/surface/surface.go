// Package surface models sampled planar curves (x, y) and the operations
// the jump composer and skier dynamics need on them: interpolation,
// slope/curvature, arc length, distance-to-point, area under the curve,
// and rigid translation.
package surface

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"skijumpdesign/internal/numeric"
)

// Point is a single (x, y) sample.
type Point struct {
	X, Y float64
}

// Surface is an ordered, strictly-x-increasing sampled curve with derived
// interpolation, slope, curvature, length and area. It is immutable except
// for Shift, which rigidly translates every sample and invalidates any
// cached spline.
type Surface struct {
	x, y   []float64
	spline *numeric.CubicSpline
}

// New builds a Surface from parallel x/y sample slices. x must be strictly
// increasing and both slices must have at least 2 points.
func New(x, y []float64) (*Surface, error) {
	if len(x) < 2 {
		return nil, fmt.Errorf("surface: need at least 2 samples, got %d", len(x))
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("surface: x and y length mismatch (%d vs %d)", len(x), len(y))
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return nil, fmt.Errorf("surface: x must be strictly increasing at index %d", i)
		}
	}
	return &Surface{x: append([]float64(nil), x...), y: append([]float64(nil), y...)}, nil
}

// X returns the sample x coordinates. The returned slice must not be
// mutated by the caller.
func (s *Surface) X() []float64 { return s.x }

// Y returns the sample y coordinates. The returned slice must not be
// mutated by the caller.
func (s *Surface) Y() []float64 { return s.y }

// Start returns the first sample.
func (s *Surface) Start() Point { return Point{s.x[0], s.y[0]} }

// End returns the last sample.
func (s *Surface) End() Point { return Point{s.x[len(s.x)-1], s.y[len(s.y)-1]} }

// spl lazily builds and caches the interpolating cubic spline.
func (s *Surface) spl() *numeric.CubicSpline {
	if s.spline == nil {
		sp, err := numeric.NewCubicSpline(s.x, s.y)
		if err != nil {
			// Construction already validated strictly-increasing x, so
			// this can only happen if the surface was built incorrectly.
			panic(err)
		}
		s.spline = sp
	}
	return s.spline
}

// InterpY returns the cubic-spline value at x, linearly extrapolating
// outside the sample range.
func (s *Surface) InterpY(x float64) float64 {
	return s.spl().Eval(x)
}

// SlopeAt returns dy/dx at x from the spline derivative.
func (s *Surface) SlopeAt(x float64) float64 {
	return s.spl().Deriv(x)
}

// CurvatureAt returns the signed curvature y''/(1+y'^2)^(3/2) at x.
func (s *Surface) CurvatureAt(x float64) float64 {
	yp := s.spl().Deriv(x)
	ypp := s.spl().Deriv2(x)
	return ypp / math.Pow(1+yp*yp, 1.5)
}

// AngleAt returns the tangent angle atan(y'(x)) at x, in radians.
func (s *Surface) AngleAt(x float64) float64 {
	return math.Atan(s.SlopeAt(x))
}

// DistanceFrom returns the Euclidean distance from (px, py) to the curve,
// signed positive when the point lies above the curve. It minimizes the
// squared distance to points on the spline over x using Brent1D, seeded at the nearest sample (by gonum/floats.MinIdx of the
// squared-distance array) to keep the minimizer local to the correct
// curve branch.
func (s *Surface) DistanceFrom(px, py float64) float64 {
	sqDist := make([]float64, len(s.x))
	for i := range s.x {
		dx := s.x[i] - px
		dy := s.y[i] - py
		sqDist[i] = dx*dx + dy*dy
	}
	seedIdx := floats.MinIdx(sqDist)

	objective := func(x float64) float64 {
		dx := x - px
		dy := s.InterpY(x) - py
		return dx*dx + dy*dy
	}

	lo, hi := s.bracketAround(seedIdx)
	xStar, err := numeric.Brent1D(objective, lo, hi, 1e-10)
	if err != nil {
		xStar = s.x[seedIdx]
	}

	dist := math.Sqrt(objective(xStar))
	if py > s.InterpY(px) {
		return dist
	}
	return -dist
}

// bracketAround returns a search interval of one tenth of the surface's
// x-span on each side of sample index idx, wide enough for Brent1D to move
// off the seed. Near the ends it reaches past the sample range, where the
// spline is linearly extrapolated.
func (s *Surface) bracketAround(idx int) (lo, hi float64) {
	n := len(s.x)
	span := s.x[n-1] - s.x[0]
	width := span * 0.1
	if width == 0 {
		width = 1
	}
	lo = s.x[idx] - width
	hi = s.x[idx] + width
	if lo < s.x[0]-width {
		lo = s.x[0] - width
	}
	if hi > s.x[n-1]+width {
		hi = s.x[n-1] + width
	}
	return lo, hi
}

// AreaUnder returns the integral of y dx between xStart and xEnd via
// Simpson's rule evaluated on the spline, defaulting to the surface's full
// range when bounds are omitted (pass math.NaN() for either bound to use
// the corresponding default).
func (s *Surface) AreaUnder(xStart, xEnd float64) float64 {
	if math.IsNaN(xStart) {
		xStart = s.x[0]
	}
	if math.IsNaN(xEnd) {
		xEnd = s.x[len(s.x)-1]
	}
	const n = 1000 // even number of intervals for Simpson's rule
	h := (xEnd - xStart) / n
	sum := s.InterpY(xStart) + s.InterpY(xEnd)
	for i := 1; i < n; i++ {
		x := xStart + float64(i)*h
		if i%2 == 0 {
			sum += 2 * s.InterpY(x)
		} else {
			sum += 4 * s.InterpY(x)
		}
	}
	return sum * h / 3
}

// Length returns the arc length integral(sqrt(1+y'^2) dx) over the full
// sample range, via Simpson's rule on the spline derivative.
func (s *Surface) Length() float64 {
	xStart, xEnd := s.x[0], s.x[len(s.x)-1]
	const n = 1000
	h := (xEnd - xStart) / n
	integrand := func(x float64) float64 {
		yp := s.SlopeAt(x)
		return math.Sqrt(1 + yp*yp)
	}
	sum := integrand(xStart) + integrand(xEnd)
	for i := 1; i < n; i++ {
		x := xStart + float64(i)*h
		if i%2 == 0 {
			sum += 2 * integrand(x)
		} else {
			sum += 4 * integrand(x)
		}
	}
	return sum * h / 3
}

// Shift rigidly translates every sample by (dx, dy) and invalidates the
// cached spline.
func (s *Surface) Shift(dx, dy float64) {
	for i := range s.x {
		s.x[i] += dx
		s.y[i] += dy
	}
	s.spline = nil
}
