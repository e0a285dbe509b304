package numeric

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// CubicSpline is a natural cubic spline with linear extrapolation outside
// [x[0], x[n-1]]. It stores the node derivatives solved for the natural
// boundary condition (zero second derivative at both ends) and delegates
// value/derivative evaluation in-range to gonum's PiecewiseCubic, the way
// gonum's own AkimaSpline and FritschButland wrap PiecewiseCubic with a
// different derivative-estimation rule.
type CubicSpline struct {
	x      []float64
	y      []float64
	dydx   []float64
	cubic  interp.PiecewiseCubic
}

// NewCubicSpline fits a natural cubic spline to the given samples. x must
// be strictly increasing and have at least 2 points.
func NewCubicSpline(x, y []float64) (*CubicSpline, error) {
	n := len(x)
	if n < 2 {
		return nil, fmt.Errorf("cubic spline: need at least 2 points, got %d", n)
	}
	if len(y) != n {
		return nil, fmt.Errorf("cubic spline: x and y length mismatch (%d vs %d)", n, len(y))
	}
	for i := 1; i < n; i++ {
		if x[i] <= x[i-1] {
			return nil, fmt.Errorf("cubic spline: x must be strictly increasing at index %d", i)
		}
	}

	dydx := naturalSplineSlopes(x, y)

	s := &CubicSpline{
		x:    append([]float64(nil), x...),
		y:    append([]float64(nil), y...),
		dydx: dydx,
	}
	s.cubic.FitWithDerivatives(x, y, dydx)
	return s, nil
}

// naturalSplineSlopes solves the standard natural-cubic-spline tridiagonal
// system for the first derivative at each node via the Thomas algorithm
// (O(n), as opposed to a general dense solve which would be O(n^3) and far
// too slow for the ~10^4-sample surfaces this module builds).
func naturalSplineSlopes(x, y []float64) []float64 {
	n := len(x)
	if n == 2 {
		slope := (y[1] - y[0]) / (x[1] - x[0])
		return []float64{slope, slope}
	}

	h := make([]float64, n-1)
	for i := range h {
		h[i] = x[i+1] - x[i]
	}

	// Solve for second derivatives m[i] at interior nodes with natural
	// boundary conditions m[0] = m[n-1] = 0.
	sub := make([]float64, n)
	diag := make([]float64, n)
	sup := make([]float64, n)
	rhs := make([]float64, n)

	diag[0], diag[n-1] = 1, 1
	for i := 1; i < n-1; i++ {
		sub[i] = h[i-1]
		diag[i] = 2 * (h[i-1] + h[i])
		sup[i] = h[i]
		rhs[i] = 6 * ((y[i+1]-y[i])/h[i] - (y[i]-y[i-1])/h[i-1])
	}

	m := thomasSolve(sub, diag, sup, rhs)

	dydx := make([]float64, n)
	for i := 0; i < n-1; i++ {
		dydx[i] = (y[i+1]-y[i])/h[i] - h[i]*(2*m[i]+m[i+1])/6
	}
	dydx[n-1] = (y[n-1]-y[n-2])/h[n-2] + h[n-2]*(2*m[n-1]+m[n-2])/6
	return dydx
}

// thomasSolve solves a tridiagonal system Ax = d, where sub/diag/sup are
// the sub-, main-, and super-diagonals of A (sub[0] and sup[n-1] unused).
func thomasSolve(sub, diag, sup, d []float64) []float64 {
	n := len(d)
	cp := make([]float64, n)
	dp := make([]float64, n)

	cp[0] = sup[0] / diag[0]
	dp[0] = d[0] / diag[0]
	for i := 1; i < n; i++ {
		denom := diag[i] - sub[i]*cp[i-1]
		if i < n-1 {
			cp[i] = sup[i] / denom
		}
		dp[i] = (d[i] - sub[i]*dp[i-1]) / denom
	}

	x := make([]float64, n)
	x[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dp[i] - cp[i]*x[i+1]
	}
	return x
}

// Eval returns the spline value at x, linearly extrapolating outside the
// fitted range using the boundary node's derivative.
func (s *CubicSpline) Eval(xq float64) float64 {
	n := len(s.x)
	if xq < s.x[0] {
		return s.y[0] + s.dydx[0]*(xq-s.x[0])
	}
	if xq > s.x[n-1] {
		return s.y[n-1] + s.dydx[n-1]*(xq-s.x[n-1])
	}
	return s.cubic.Predict(xq)
}

// Deriv returns dy/dx at x, holding the boundary derivative constant
// outside the fitted range.
func (s *CubicSpline) Deriv(xq float64) float64 {
	n := len(s.x)
	if xq < s.x[0] {
		return s.dydx[0]
	}
	if xq > s.x[n-1] {
		return s.dydx[n-1]
	}
	return s.cubic.PredictDerivative(xq)
}

// Deriv2 returns d2y/dx2 at x via central differencing of Deriv, clamped
// to zero outside the fitted range (the natural boundary condition).
func (s *CubicSpline) Deriv2(xq float64) float64 {
	n := len(s.x)
	if xq < s.x[0] || xq > s.x[n-1] {
		return 0
	}
	const h = 1e-5
	lo, hi := xq-h, xq+h
	if lo < s.x[0] {
		lo = s.x[0]
	}
	if hi > s.x[n-1] {
		hi = s.x[n-1]
	}
	if hi == lo {
		return 0
	}
	return (s.Deriv(hi) - s.Deriv(lo)) / (hi - lo)
}
