package numeric

import "math"

// RHS is the right-hand side of an ODE system dy/dt = f(t, y). It is a
// plain closure re-evaluated at every intermediate stage the integrator
// needs.
type RHS func(t float64, y []float64) []float64

// Event is a scalar zero-crossing condition evaluated during integration.
// Direction restricts which crossings count: +1 only rising (negative to
// positive), -1 only falling, 0 either.
type Event struct {
	G        func(t float64, y []float64) float64
	Direction int
	Terminal bool
}

// EventHit records where and when an event fired.
type EventHit struct {
	T     float64
	Y     []float64
	Index int
}

// IntegrateOptions configures Integrate. Non-positive RelTol, AbsTol and
// MaxSteps fall back to the DefaultOptions values.
type IntegrateOptions struct {
	RelTol      float64
	AbsTol      float64
	InitialStep float64
	MaxStep     float64
	MaxSteps    int
	Events      []Event
	// Grid, if non-empty, requests dense output resampled onto these
	// t-values instead of the integrator's natural accepted steps.
	Grid []float64
}

// DefaultOptions returns the tolerances and guards spec'd for this module:
// relative tolerance 1e-6, absolute tolerance 1e-9, and a step-count guard
// of 1e6.
func DefaultOptions() IntegrateOptions {
	return IntegrateOptions{
		RelTol:   1e-6,
		AbsTol:   1e-9,
		MaxSteps: 1_000_000,
	}
}

// Solution holds the dense output of a completed integration.
type Solution struct {
	T     []float64
	Y     [][]float64
	Event *EventHit
}

// dopri coefficients (Dormand-Prince RK5(4), the embedded pair underlying
// ode45-style adaptive integrators).
var dopriC = [7]float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1}

var dopriA = [7][6]float64{
	{},
	{1.0 / 5},
	{3.0 / 40, 9.0 / 40},
	{44.0 / 45, -56.0 / 15, 32.0 / 9},
	{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
	{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
	{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
}

var dopriB5 = [7]float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0}
var dopriB4 = [7]float64{5179.0 / 57600, 0, 7571.0 / 16695, 393.0 / 640, -92097.0 / 339200, 187.0 / 2100, 1.0 / 40}

// Integrate performs adaptive Dormand-Prince RK4(5) integration of dy/dt =
// f(t,y) over tSpan starting from y0, with PI step-size control and
// terminal event location by bisection on the last accepted step.
func Integrate(f RHS, tSpan [2]float64, y0 []float64, opts IntegrateOptions) (*Solution, error) {
	if opts.RelTol <= 0 {
		opts.RelTol = 1e-6
	}
	if opts.AbsTol <= 0 {
		opts.AbsTol = 1e-9
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 1_000_000
	}

	t0, tEnd := tSpan[0], tSpan[1]
	dir := 1.0
	if tEnd < t0 {
		dir = -1.0
	}
	span := math.Abs(tEnd - t0)
	if span == 0 {
		return &Solution{T: []float64{t0}, Y: [][]float64{append([]float64(nil), y0...)}}, nil
	}

	maxStep := opts.MaxStep
	if maxStep <= 0 {
		maxStep = span
	}
	h := opts.InitialStep
	if h <= 0 {
		h = span / 1000
	}
	h = math.Min(h, maxStep)

	t := t0
	y := append([]float64(nil), y0...)

	ts := []float64{t}
	ys := [][]float64{append([]float64(nil), y...)}

	prevG := make([]float64, len(opts.Events))
	for i, ev := range opts.Events {
		prevG[i] = ev.G(t, y)
	}

	const safety = 0.9
	const minFactor = 0.2
	const maxFactor = 5.0
	const errExp = 0.2 // 1/5, embedded pair order
	const piBeta = 0.04

	errPrev := 1e-4 // error norm of the last accepted step, for the PI term
	steps := 0
	hitRequiredEvent := false
	hasTerminal := false
	for _, ev := range opts.Events {
		if ev.Terminal {
			hasTerminal = true
		}
	}

	for steps < opts.MaxSteps {
		if dir*(t-tEnd) >= 0 {
			break
		}
		hStep := dir * math.Min(math.Abs(h), math.Abs(tEnd-t))

		y1, y1hat, err := dopriStep(f, t, y, hStep)
		_ = y1hat
		errNorm := weightedErrorNorm(y, y1, err, opts.AbsTol, opts.RelTol)

		if errNorm <= 1 || math.Abs(hStep) <= 1e-14 {
			tNext := t + hStep
			yNext := y1

			eventFired, hit, err := locateEvent(f, opts.Events, t, y, tNext, yNext, prevG)
			if err != nil {
				return nil, err
			}

			if eventFired != nil && opts.Events[*eventFired].Terminal {
				ts = append(ts, hit.T)
				ys = append(ys, hit.Y)
				hit.Index = *eventFired
				hitRequiredEvent = true
				sol := &Solution{T: ts, Y: ys, Event: hit}
				return resample(sol, opts.Grid)
			}

			t, y = tNext, yNext
			for i, ev := range opts.Events {
				prevG[i] = ev.G(t, y)
			}
			ts = append(ts, t)
			ys = append(ys, append([]float64(nil), y...))
			steps++

			factor := safety * math.Pow(math.Max(errNorm, 1e-12), -(errExp-0.75*piBeta)) * math.Pow(errPrev, piBeta)
			factor = math.Max(minFactor, math.Min(maxFactor, factor))
			h = math.Min(math.Abs(hStep)*factor, maxStep)
			errPrev = math.Max(errNorm, 1e-4)
		} else {
			factor := safety * math.Pow(1/errNorm, errExp)
			factor = math.Max(minFactor, factor)
			h = math.Abs(hStep) * factor
			if math.Abs(h) < 1e-14 {
				return nil, &IntegrationError{Msg: "step size underflow"}
			}
			steps++
		}
	}

	if steps >= opts.MaxSteps {
		return nil, &IntegrationError{Msg: "maximum step count exceeded"}
	}

	if hasTerminal && !hitRequiredEvent {
		return nil, &NoEventError{Msg: "terminal event not reached within time span"}
	}

	return resample(&Solution{T: ts, Y: ys}, opts.Grid)
}

// dopriStep advances one Dormand-Prince step of size h from (t, y),
// returning the 5th-order solution, the 4th-order solution, and their
// componentwise difference (the local error estimate).
func dopriStep(f RHS, t float64, y []float64, h float64) (y5, y4, errEst []float64) {
	n := len(y)
	k := make([][]float64, 7)
	k[0] = f(t, y)
	for s := 1; s < 7; s++ {
		yi := make([]float64, n)
		for j := 0; j < n; j++ {
			sum := 0.0
			for l := 0; l < s; l++ {
				sum += dopriA[s][l] * k[l][j]
			}
			yi[j] = y[j] + h*sum
		}
		k[s] = f(t+dopriC[s]*h, yi)
	}

	y5 = make([]float64, n)
	y4 = make([]float64, n)
	errEst = make([]float64, n)
	for j := 0; j < n; j++ {
		sum5, sum4 := 0.0, 0.0
		for s := 0; s < 7; s++ {
			sum5 += dopriB5[s] * k[s][j]
			sum4 += dopriB4[s] * k[s][j]
		}
		y5[j] = y[j] + h*sum5
		y4[j] = y[j] + h*sum4
		errEst[j] = y5[j] - y4[j]
	}
	return y5, y4, errEst
}

func weightedErrorNorm(y0, y1, errEst []float64, absTol, relTol float64) float64 {
	sum := 0.0
	n := len(y0)
	for i := 0; i < n; i++ {
		scale := absTol + relTol*math.Max(math.Abs(y0[i]), math.Abs(y1[i]))
		if scale == 0 {
			scale = absTol
		}
		r := errEst[i] / scale
		sum += r * r
	}
	return math.Sqrt(sum / float64(n))
}

// locateEvent checks every configured event for a qualifying sign change
// across [t0,t1], refines each crossing by bisection against a linear
// interpolation of the state over the step, and returns the earliest one
// (the caller stops only if that event is terminal) (the step is already small by construction of the adaptive
// controller, so linear interpolation is adequate to locate the root to
// the required |g| < 1e-10 tolerance).
func locateEvent(f RHS, events []Event, t0 float64, y0 []float64, t1 float64, y1 []float64, prevG []float64) (*int, *EventHit, error) {
	bestIdx := -1
	bestDist := math.Inf(1)
	var bestT float64
	var bestY []float64

	interpState := func(tq float64) []float64 {
		frac := (tq - t0) / (t1 - t0)
		yq := make([]float64, len(y0))
		for i := range yq {
			yq[i] = y0[i] + frac*(y1[i]-y0[i])
		}
		return yq
	}

	for i, ev := range events {
		g0 := prevG[i]
		g1 := ev.G(t1, y1)

		crosses := (g0 < 0 && g1 >= 0) || (g0 > 0 && g1 <= 0) || (g0 == 0 && g1 != 0)
		if !crosses {
			continue
		}
		if ev.Direction > 0 && !(g0 <= 0 && g1 > 0) {
			continue
		}
		if ev.Direction < 0 && !(g0 >= 0 && g1 < 0) {
			continue
		}

		gAt := func(tq float64) float64 {
			return ev.G(tq, interpState(tq))
		}
		tRoot, err := Bisect(gAt, t0, t1, 1e-12)
		if err != nil {
			// Degenerate (e.g. g0 == 0 exactly): fall back to the
			// earlier endpoint rather than failing the whole step.
			tRoot = t0
		}
		// Refine further against the raw |g| tolerance.
		lo, hi := t0, t1
		for iter := 0; iter < 60 && math.Abs(gAt(tRoot)) >= 1e-10; iter++ {
			if gAt(lo)*gAt(tRoot) <= 0 {
				hi = tRoot
			} else {
				lo = tRoot
			}
			tRoot = 0.5 * (lo + hi)
		}

		dist := math.Abs(tRoot - t0)
		if dist < bestDist {
			bestIdx = i
			bestDist = dist
			bestT = tRoot
			bestY = interpState(tRoot)
		}
	}

	if bestIdx == -1 {
		return nil, nil, nil
	}
	idx := bestIdx
	return &idx, &EventHit{T: bestT, Y: bestY}, nil
}

// resample rebuilds the solution's dense output onto opts.Grid, if
// supplied, using a cubic spline per state component built from the
// natural accepted steps.
func resample(sol *Solution, grid []float64) (*Solution, error) {
	if len(grid) == 0 {
		return sol, nil
	}
	n := len(sol.T)
	dims := 0
	if n > 0 {
		dims = len(sol.Y[0])
	}
	if n < 2 || dims == 0 {
		return sol, nil
	}

	t := append([]float64(nil), sol.T...)
	ys := sol.Y
	if t[0] > t[n-1] {
		// Backward integration produces a descending T; the spline needs
		// strictly increasing x, so reverse both before fitting.
		reversed := make([]float64, n)
		reversedY := make([][]float64, n)
		for i := 0; i < n; i++ {
			reversed[i] = t[n-1-i]
			reversedY[i] = ys[n-1-i]
		}
		t, ys = reversed, reversedY
	}

	splines := make([]*CubicSpline, dims)
	for d := 0; d < dims; d++ {
		col := make([]float64, n)
		for i := range col {
			col[i] = ys[i][d]
		}
		sp, err := NewCubicSpline(t, col)
		if err != nil {
			return nil, err
		}
		splines[d] = sp
	}

	out := &Solution{T: append([]float64(nil), grid...), Y: make([][]float64, len(grid)), Event: sol.Event}
	for i, tq := range grid {
		row := make([]float64, dims)
		for d := 0; d < dims; d++ {
			row[d] = splines[d].Eval(tq)
		}
		out.Y[i] = row
	}
	return out, nil
}
