package numeric

import (
	"math"
	"testing"
)

func assertApproxEqual(t *testing.T, actual, expected, tolerance float64) {
	t.Helper()
	if math.Abs(actual-expected) > tolerance {
		t.Errorf("expected %f ± %f, got %f", expected, tolerance, actual)
	}
}

func TestBisect(t *testing.T) {
	t.Run("simple root", func(t *testing.T) {
		root, err := Bisect(func(x float64) float64 { return x*x - 2 }, 0, 2, 1e-9)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertApproxEqual(t, root, math.Sqrt2, 1e-6)
	})

	t.Run("non-bracketing interval", func(t *testing.T) {
		_, err := Bisect(func(x float64) float64 { return x*x + 1 }, 0, 2, 1e-6)
		if _, ok := err.(*BracketError); !ok {
			t.Fatalf("expected BracketError, got %v", err)
		}
	})
}

func TestBrent1D(t *testing.T) {
	x, err := Brent1D(func(x float64) float64 { return (x - 3) * (x - 3) }, -10, 10, 1e-8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertApproxEqual(t, x, 3.0, 1e-4)
}

func TestCubicSplineInterpolatesKnownPoints(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = xi * xi
	}
	sp, err := NewCubicSpline(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, xi := range x {
		assertApproxEqual(t, sp.Eval(xi), y[i], 1e-9)
	}
}

func TestCubicSplineLinearExtrapolation(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 2, 3} // y = x, slope 1 everywhere including the boundary
	sp, err := NewCubicSpline(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertApproxEqual(t, sp.Eval(-5), -5, 1e-6)
	assertApproxEqual(t, sp.Eval(10), 10, 1e-6)
}

func TestCubicSplineRejectsNonMonotonicX(t *testing.T) {
	_, err := NewCubicSpline([]float64{0, 2, 1}, []float64{0, 1, 2})
	if err == nil {
		t.Fatalf("expected an error for non-increasing x")
	}
}

func TestIntegrateFreeFall(t *testing.T) {
	// Vertical free fall: y'' = -g. State = (y, v).
	const g = 9.81
	f := func(tt float64, y []float64) []float64 {
		return []float64{y[1], -g}
	}
	sol, err := Integrate(f, [2]float64{0, 1.0}, []float64{0, 0}, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := sol.Y[len(sol.Y)-1]
	assertApproxEqual(t, last[0], -0.5*g*1.0*1.0, 1e-3)
	assertApproxEqual(t, last[1], -g*1.0, 1e-3)
}

func TestIntegrateTerminalEvent(t *testing.T) {
	const g = 9.81
	f := func(tt float64, y []float64) []float64 {
		return []float64{y[1], -g}
	}
	opts := DefaultOptions()
	opts.Events = []Event{
		{
			G:        func(tt float64, y []float64) float64 { return y[0] - 10 },
			Direction: -1,
			Terminal: true,
		},
	}
	// Initial upward velocity so the trajectory rises then falls back
	// through y=10.
	sol, err := Integrate(f, [2]float64{0, 100}, []float64{0, 20}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.Event == nil {
		t.Fatalf("expected a terminal event to fire")
	}
	assertApproxEqual(t, sol.Event.Y[0], 10, 1e-6)
}

func TestIntegrateNoEventError(t *testing.T) {
	f := func(tt float64, y []float64) []float64 { return []float64{1} }
	opts := DefaultOptions()
	opts.Events = []Event{
		{
			G:        func(tt float64, y []float64) float64 { return y[0] - 1000 },
			Terminal: true,
		},
	}
	_, err := Integrate(f, [2]float64{0, 1}, []float64{0}, opts)
	if _, ok := err.(*NoEventError); !ok {
		t.Fatalf("expected NoEventError, got %v", err)
	}
}

func TestIntegrateGridResample(t *testing.T) {
	f := func(tt float64, y []float64) []float64 { return []float64{1} } // y = t
	opts := DefaultOptions()
	opts.Grid = []float64{0, 0.25, 0.5, 0.75, 1.0}
	sol, err := Integrate(f, [2]float64{0, 1}, []float64{0}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sol.T) != len(opts.Grid) {
		t.Fatalf("expected %d grid samples, got %d", len(opts.Grid), len(sol.T))
	}
	for i, tq := range opts.Grid {
		assertApproxEqual(t, sol.Y[i][0], tq, 1e-4)
	}
}
