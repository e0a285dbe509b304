package surface

import (
	"math"

	"skijumpdesign/internal/numeric"
)

// ErrInfeasible is returned by NewLandingTransition and the EFH landing
// surface construction when no geometrically and dynamically valid curve
// exists for the given inputs. Callers in package jump rewrap it as an
// InvalidJumpError with a scenario-specific reason.
type ErrInfeasible struct {
	Reason string
}

func (e *ErrInfeasible) Error() string { return e.Reason }

// landingTransitionSamples is the number of flight samples the transition
// search scans over; a flight with fewer samples is scanned as it is.
const landingTransitionSamples = 1000

// NewLandingTransition finds the point along flight where an exponential
// curve y_t(x) = a*exp(b*(x-x_i)) + c*x + d can smoothly (C1) join the
// flight path to slope without exceeding tolerableAccLanding*g of normal
// acceleration anywhere on the curve, preferring the point closest to
// slope (i.e. requiring the shortest transition).
//
// mu, eta and g are the skier's friction coefficient, drag parameter
// (Cd*A*rho/2m) and gravitational acceleration, needed to slide a skier
// along each candidate curve and find its peak normal acceleration.
func NewLandingTransition(slope *Surface, flight *Flight, tolerableAccLanding, mu, eta, g float64) (*Surface, error) {
	samples := resampleFlight(flight, landingTransitionSamples)
	n := len(samples)
	if n < 2 {
		return nil, &ErrInfeasible{Reason: "flight trajectory too short for a landing transition"}
	}

	x0 := slope.X()[0]
	psi := math.Atan(slope.SlopeAt(x0))
	c := math.Tan(psi)
	d := slope.InterpY(x0) - c*x0

	threshold := tolerableAccLanding * g

	accAt := func(i int) (float64, expCurve, bool) {
		s := samples[i]
		curve, ok := buildExpCurve(s, c, d)
		if !ok {
			return math.Inf(1), curve, false
		}
		speed := math.Hypot(s.Vx, s.Vy)
		maxAcc, err := slideMaxNormalAccel(curve, speed, mu, eta, g)
		if err != nil {
			return math.Inf(1), curve, false
		}
		return maxAcc - threshold, curve, true
	}

	firstAcc, _, firstOK := accAt(0)
	if !firstOK || firstAcc >= 0 {
		return nil, &ErrInfeasible{Reason: "landing transition infeasible"}
	}

	lastFeasible := 0
	crossHi := -1
	for i := 1; i < n; i++ {
		a, _, ok := accAt(i)
		if !ok || a >= 0 {
			crossHi = i
			break
		}
		lastFeasible = i
	}

	bestIdx := lastFeasible
	if crossHi != -1 {
		lo, hi := lastFeasible, crossHi
		for iter := 0; iter < 60 && hi-lo > 1; iter++ {
			mid := (lo + hi) / 2
			a, _, ok := accAt(mid)
			if ok && a < 0 {
				lo = mid
			} else {
				hi = mid
			}
		}
		bestIdx = lo
	}

	_, curve, ok := accAt(bestIdx)
	if !ok {
		return nil, &ErrInfeasible{Reason: "landing transition infeasible"}
	}

	if curve.a <= 0 {
		return nil, &ErrInfeasible{Reason: "landing transition asymptote lies below parent slope"}
	}

	return curve.toSurface(300)
}

// expCurve is y(x) = a*exp(b*(x-x0)) + c*x + d, anchored at x0.
type expCurve struct {
	a, b, c, d, x0, xEnd float64
}

func (e expCurve) eval(x float64) float64 {
	return e.a*math.Exp(e.b*(x-e.x0)) + e.c*x + e.d
}

func (e expCurve) deriv(x float64) float64 {
	return e.a*e.b*math.Exp(e.b*(x-e.x0)) + e.c
}

func (e expCurve) deriv2(x float64) float64 {
	return e.a * e.b * e.b * math.Exp(e.b*(x-e.x0))
}

// toSurface samples the curve from its anchor to the point where it has
// decayed within 1mm of the asymptote.
func (e expCurve) toSurface(n int) (*Surface, error) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n-1)
		xi := e.x0 + frac*(e.xEnd-e.x0)
		x[i] = xi
		y[i] = e.eval(xi)
	}
	return New(x, y)
}

// buildExpCurve fits the unique exponential through sample s tangent to
// its flight velocity there, asymptotic to the line y = c*x + d. Returns
// ok=false if the fit requires b >= 0 (curve would not decay toward the
// slope) or the flight is momentarily vertical.
func buildExpCurve(s FlightSample, c, d float64) (expCurve, bool) {
	if s.Vx == 0 {
		return expCurve{}, false
	}
	a := s.Y - c*s.X - d
	if a <= 0 {
		return expCurve{}, false
	}
	tangent := s.Vy / s.Vx
	b := (tangent - c) / a
	if b >= 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return expCurve{}, false
	}
	// Decay to within 1mm of the asymptote.
	xEnd := s.X + math.Log(1e-3/a)/b
	if xEnd <= s.X {
		return expCurve{}, false
	}
	return expCurve{a: a, b: b, c: c, d: d, x0: s.X, xEnd: xEnd}, true
}

// slideMaxNormalAccel slides a skier of the given friction/drag
// parameters along curve starting at speed v0, returning the peak
// g*cos(theta)+kappa*v^2 (clamped to >=0) observed along the way.
func slideMaxNormalAccel(curve expCurve, v0, mu, eta, g float64) (float64, error) {
	rhs := func(t float64, y []float64) []float64 {
		x, v := y[0], y[1]
		slope := curve.deriv(x)
		theta := math.Atan(slope)
		kappa := curve.deriv2(x) / math.Pow(1+slope*slope, 1.5)
		normAccel := g*math.Cos(theta) + kappa*v*v
		if normAccel < 0 {
			normAccel = 0
		}
		sign := 1.0
		if v < 0 {
			sign = -1.0
		}
		xdot := v * math.Cos(theta)
		vdot := -g*math.Sin(theta) - eta*v*v - mu*normAccel*sign
		return []float64{xdot, vdot}
	}
	endEvent := numeric.Event{
		G:        func(t float64, y []float64) float64 { return y[0] - curve.xEnd },
		Terminal: true,
	}
	opts := numeric.DefaultOptions()
	opts.Events = []numeric.Event{endEvent}
	sol, err := numeric.Integrate(rhs, [2]float64{0, 1e4}, []float64{curve.x0, v0}, opts)
	if err != nil {
		return 0, err
	}
	maxAcc := 0.0
	for _, yi := range sol.Y {
		x, v := yi[0], yi[1]
		slope := curve.deriv(x)
		theta := math.Atan(slope)
		kappa := curve.deriv2(x) / math.Pow(1+slope*slope, 1.5)
		n := g*math.Cos(theta) + kappa*v*v
		if n > maxAcc {
			maxAcc = n
		}
	}
	return maxAcc, nil
}

// resampleFlight linearly resamples a flight's dense output onto n
// evenly-spaced indices, used to give the transition search a uniform
// discretization regardless of how the integrator spaced its natural
// steps.
func resampleFlight(flight *Flight, n int) []FlightSample {
	src := flight.Samples()
	if len(src) <= n {
		return src
	}
	out := make([]FlightSample, n)
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n-1)
		idxF := frac * float64(len(src)-1)
		lo := int(math.Floor(idxF))
		if lo >= len(src)-1 {
			out[i] = src[len(src)-1]
			continue
		}
		hi := lo + 1
		f := idxF - float64(lo)
		a, b := src[lo], src[hi]
		out[i] = FlightSample{
			T:  a.T + f*(b.T-a.T),
			X:  a.X + f*(b.X-a.X),
			Y:  a.Y + f*(b.Y-a.Y),
			Vx: a.Vx + f*(b.Vx-a.Vx),
			Vy: a.Vy + f*(b.Vy-a.Vy),
		}
	}
	return out
}
