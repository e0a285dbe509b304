// Package skier models the skier as a point mass and exposes the three
// motion primitives the jump composer builds on: sliding along a surface,
// flying to a target surface, and inverting flight to find the launch
// speed that lands at a given point.
package skier

import (
	"math"

	"skijumpdesign/internal/numeric"
	"skijumpdesign/internal/surface"
)

// Params is the skier's immutable physical parameter tuple. Default
// returns the standard design skier used throughout this package's
// tests and the cmd/skijumpdesign demo.
type Params struct {
	Mass                 float64 // kg
	FrontalAreaDragCoeff float64 // Cd*A, m^2
	FrictionCoeff        float64
	TolerableAccTakeoff  float64 // multiples of g
	TolerableAccLanding  float64 // multiples of g
}

// AirDensity is the fixed air density (kg/m^3) used to derive the drag
// parameter eta from a skier's Cd*A.
const AirDensity = 0.85

// G is the gravitational acceleration (m/s^2) used throughout this
// package and the surfaces it drives.
const G = 9.81

// Default returns the standard skier parameter set.
func Default() Params {
	return Params{
		Mass:                 75,
		FrontalAreaDragCoeff: 0.279,
		FrictionCoeff:        0.03,
		TolerableAccTakeoff:  3,
		TolerableAccLanding:  1.5,
	}
}

// Eta returns Cd*A*rho/(2m), the quadratic-drag coefficient appearing in
// both the slide and flight dynamics.
func (p Params) Eta() float64 {
	return p.FrontalAreaDragCoeff * AirDensity / (2 * p.Mass)
}

// maxTimeSpan bounds every ODE integration this package performs, per
// the numerical kernel's own step-count guard backing it up.
const maxTimeSpan = 1e4

// SlideOn slides the skier along surf starting at speed v0 (tangent to
// the surface, positive in the direction of increasing x) until it
// reaches the surface's end, returning the exit speed and the peak
// normal acceleration (g*cos(theta) + kappa*v^2, clamped to >= 0)
// observed along the way. It satisfies surface.SlideFunc.
func (p Params) SlideOn(surf *surface.Surface, v0 float64) (surface.SlideResult, error) {
	eta := p.Eta()
	mu := p.FrictionCoeff
	xEnd := surf.End().X

	rhs := func(t float64, y []float64) []float64 {
		x, v := y[0], y[1]
		theta := surf.AngleAt(x)
		kappa := surf.CurvatureAt(x)
		normAccel := G*math.Cos(theta) + kappa*v*v
		if normAccel < 0 {
			normAccel = 0
		}
		sign := 1.0
		if v < 0 {
			sign = -1.0
		}
		xdot := v * math.Cos(theta)
		vdot := -G*math.Sin(theta) - eta*v*v - mu*normAccel*sign
		return []float64{xdot, vdot}
	}

	opts := numeric.DefaultOptions()
	opts.Events = []numeric.Event{{
		G:        func(t float64, y []float64) float64 { return y[0] - xEnd },
		Terminal: true,
	}}

	x0 := surf.Start().X
	sol, err := numeric.Integrate(rhs, [2]float64{0, maxTimeSpan}, []float64{x0, v0}, opts)
	if err != nil {
		return surface.SlideResult{}, err
	}

	maxAcc := 0.0
	for _, yi := range sol.Y {
		x, v := yi[0], yi[1]
		theta := surf.AngleAt(x)
		kappa := surf.CurvatureAt(x)
		n := G*math.Cos(theta) + kappa*v*v
		if n > maxAcc {
			maxAcc = n
		}
	}

	return surface.SlideResult{FinalV: sol.Event.Y[1], MaxNormalAccel: maxAcc}, nil
}

// FlyTo simulates 2-D ballistic flight with quadratic drag from initPos
// with initial velocity (vx0, vy0) until the trajectory crosses target
// from above, returning the densely-sampled Flight.
func (p Params) FlyTo(target *surface.Surface, initPos surface.Point, vx0, vy0 float64) (*surface.Flight, error) {
	eta := p.Eta()

	rhs := func(t float64, y []float64) []float64 {
		vx, vy := y[2], y[3]
		return []float64{
			vx,
			vy,
			-eta * math.Abs(vx) * vx,
			-G - eta*math.Abs(vy)*vy,
		}
	}

	distanceEvent := numeric.Event{
		G: func(t float64, y []float64) float64 {
			return target.DistanceFrom(y[0], y[1])
		},
		Direction: -1,
		Terminal:  true,
	}

	y0 := []float64{initPos.X, initPos.Y, vx0, vy0}

	opts := numeric.DefaultOptions()
	opts.Events = []numeric.Event{distanceEvent}
	first, err := numeric.Integrate(rhs, [2]float64{0, maxTimeSpan}, y0, opts)
	if err != nil {
		return nil, err
	}
	if first.Event == nil {
		return nil, &numeric.NoEventError{Msg: "flight never reached the target surface"}
	}
	tEnd := first.Event.T

	const denseSamples = 2000
	grid := make([]float64, denseSamples)
	for i := range grid {
		grid[i] = tEnd * float64(i) / float64(denseSamples-1)
	}
	dense, err := numeric.Integrate(rhs, [2]float64{0, tEnd}, y0, numeric.IntegrateOptions{
		RelTol: opts.RelTol, AbsTol: opts.AbsTol, MaxSteps: opts.MaxSteps, Grid: grid,
	})
	if err != nil {
		return nil, err
	}

	samples := make([]surface.FlightSample, len(dense.T))
	for i, t := range dense.T {
		row := dense.Y[i]
		samples[i] = surface.FlightSample{T: t, X: row[0], Y: row[1], Vx: row[2], Vy: row[3]}
	}
	return surface.NewFlight(samples)
}

// flyUntilY integrates unconstrained flight from initPos with initial
// velocity (vx0, vy0) until y descends through targetY, returning the
// state there.
func (p Params) flyUntilY(initPos surface.Point, vx0, vy0, targetY float64) (surface.FlightSample, error) {
	eta := p.Eta()
	rhs := func(t float64, y []float64) []float64 {
		vx, vy := y[2], y[3]
		return []float64{
			vx,
			vy,
			-eta * math.Abs(vx) * vx,
			-G - eta*math.Abs(vy)*vy,
		}
	}
	event := numeric.Event{
		G:        func(t float64, y []float64) float64 { return y[1] - targetY },
		Direction: -1,
		Terminal:  true,
	}
	opts := numeric.DefaultOptions()
	opts.Events = []numeric.Event{event}
	y0 := []float64{initPos.X, initPos.Y, vx0, vy0}
	sol, err := numeric.Integrate(rhs, [2]float64{0, maxTimeSpan}, y0, opts)
	if err != nil {
		return surface.FlightSample{}, err
	}
	if sol.Event == nil {
		return surface.FlightSample{}, &numeric.NoEventError{Msg: "flight never reached the target height"}
	}
	row := sol.Event.Y
	return surface.FlightSample{T: sol.Event.T, X: row[0], Y: row[1], Vx: row[2], Vy: row[3]}, nil
}

// invertFlyMin and invertFlyMax bound the bisection search in InvertFly.
const (
	invertFlyMin = 0.1
	invertFlyMax = 200.0
)

// InvertFly finds the launch speed v* such that a skier leaving p0 at
// angle alpha lands at target, by bisection on v over
// [invertFlyMin, invertFlyMax]. The objective is the horizontal signed
// distance between the trajectory and target at the moment the
// trajectory's y equals target.Y while descending.
func (p Params) InvertFly(p0 surface.Point, alpha float64, target surface.Point) (float64, error) {
	objective := func(v float64) float64 {
		vx0 := v * math.Cos(alpha)
		vy0 := v * math.Sin(alpha)
		s, err := p.flyUntilY(p0, vx0, vy0, target.Y)
		if err != nil {
			return math.NaN()
		}
		return s.X - target.X
	}
	lo, hi := invertFlyMin, invertFlyMax
	fLo, fHi := objective(lo), objective(hi)
	if math.IsNaN(fLo) || math.IsNaN(fHi) || (fLo > 0) == (fHi > 0) {
		return 0, &numeric.BracketError{Msg: "invert-fly: no launch speed in range lands at target"}
	}
	return numeric.Bisect(objective, lo, hi, 1e-3)
}

// ImpactVelocity finds, via InvertFly, the launch speed from p0 at angle
// alpha that lands at target, then returns the velocity vector at that
// landing point. It satisfies surface.ImpactVelocityFunc.
func (p Params) ImpactVelocity(p0 surface.Point, alpha float64, target surface.Point) (vx, vy float64, err error) {
	vStar, err := p.InvertFly(p0, alpha, target)
	if err != nil {
		return 0, 0, err
	}
	s, err := p.flyUntilY(p0, vStar*math.Cos(alpha), vStar*math.Sin(alpha), target.Y)
	if err != nil {
		return 0, 0, err
	}
	return s.Vx, s.Vy, nil
}
