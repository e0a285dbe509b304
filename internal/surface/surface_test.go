package surface

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

func linspaceTest(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

func TestSurfaceFlatLine(t *testing.T) {
	x := linspaceTest(0, 10, 50)
	y := make([]float64, len(x))
	for i := range y {
		y[i] = 1
	}
	s, err := New(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertApproxEqual(t, s.InterpY(3.21), 1.0, 1e-9)
	assertApproxEqual(t, s.DistanceFrom(0, 2), 1.0, 1e-6)
}

func TestSurfaceDistanceFromLinearLine(t *testing.T) {
	x := linspaceTest(0, 10, 50)
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 5*xi - 1
	}
	s, err := New(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertApproxEqual(t, s.InterpY(0), -1.0, 1e-9)
	assertApproxEqual(t, s.DistanceFrom(0, -1), 0, 1e-6)
	assertApproxEqual(t, s.DistanceFrom(1.0/5.0, 0), 0, 1e-6)
	assertApproxEqual(t, math.Abs(s.DistanceFrom(-5, 0)), math.Sqrt(26), 1e-4)
	assertApproxEqual(t, math.Abs(s.DistanceFrom(-10, 1)), math.Sqrt(100+4), 1e-4)
}

func TestSurfaceShiftRoundTrip(t *testing.T) {
	x := linspaceTest(0, 10, 20)
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 5*xi - 1
	}
	s, err := New(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	startBefore := s.Start()
	s.Shift(3, 5)
	assertApproxEqual(t, s.Start().X, startBefore.X+3, 1e-9)
	assertApproxEqual(t, s.Start().Y, startBefore.Y+5, 1e-9)
	s.Shift(-3, -5)
	assertApproxEqual(t, s.Start().X, startBefore.X, 1e-9)
	assertApproxEqual(t, s.Start().Y, startBefore.Y, 1e-9)
}

func TestFlatSurfaceAngleAndLength(t *testing.T) {
	angle := -deg2radTest(10)
	s, err := NewFlat(angle, 40, Point{5, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertApproxEqual(t, s.Start().X, 5, 1e-9)
	assertApproxEqual(t, s.Start().Y, 5, 1e-9)
	assertApproxEqual(t, s.AngleAt(s.Start().X+1), angle, 1e-3)
	assertApproxEqual(t, s.Length(), 40, 1e-3)
}

func TestFlatSurfaceAreaUnder(t *testing.T) {
	length := math.Sqrt(10*10 + 10*10)
	s, err := newFlatSampled(deg2radTest(45), length, Point{}, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertApproxEqual(t, s.AreaUnder(math.NaN(), math.NaN()), 10*10/2.0, 1e-1)
	assertApproxEqual(t, s.AreaUnder(math.NaN(), 5), 5*5/2.0, 1e-1)
	assertApproxEqual(t, s.AreaUnder(5, math.NaN()), 5*5*1.5, 1e-1)
	assertApproxEqual(t, s.Length(), length, 1e-1)
}

func TestClothoidCircleSurfaceMatchesTangents(t *testing.T) {
	lambda := -deg2radTest(10)
	beta := deg2radTest(20)
	s, err := NewClothoidCircle(lambda, beta, 15, 1.5, 9.81, Point{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x := s.X()
	assertApproxEqual(t, s.AngleAt(x[1]), lambda, 5e-2)
	assertApproxEqual(t, s.AngleAt(x[len(x)-2]), beta, 5e-2)
}

func deg2radTest(deg float64) float64 { return deg * math.Pi / 180 }
