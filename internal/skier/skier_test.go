package skier

import (
	"math"
	"testing"

	"skijumpdesign/internal/surface"
)

func assertApproxEqual(t *testing.T, actual, expected, tolerance float64) {
	t.Helper()
	if math.Abs(actual-expected) > tolerance {
		t.Errorf("expected %f ± %f, got %f", expected, tolerance, actual)
	}
}

func TestDefaultParams(t *testing.T) {
	p := Default()
	if p.Mass <= 0 || p.FrontalAreaDragCoeff <= 0 || p.FrictionCoeff <= 0 {
		t.Fatalf("default params must be physically positive: %+v", p)
	}
	assertApproxEqual(t, p.Eta(), p.FrontalAreaDragCoeff*AirDensity/(2*p.Mass), 1e-12)
}

func TestSlideOnFlatDownhillAccelerates(t *testing.T) {
	p := Default()
	angle := -10 * math.Pi / 180
	flat, err := surface.NewFlat(angle, 40, surface.Point{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := p.SlideOn(flat, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FinalV <= 0 {
		t.Fatalf("expected the skier to gain speed on a downhill slide, got %f", result.FinalV)
	}
}

func TestSlideOnUphillFromRestStalls(t *testing.T) {
	p := Default()
	angle := 30 * math.Pi / 180 // uphill
	flat, err := surface.NewFlat(angle, 10, surface.Point{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = p.SlideOn(flat, 0)
	if err == nil {
		t.Fatalf("expected an integration error for a skier starting at rest on an uphill slide")
	}
}

func TestFlyToReachesTarget(t *testing.T) {
	p := Default()
	angle := -10 * math.Pi / 180
	slope, err := surface.NewFlat(angle, 500, surface.Point{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flight, err := p.FlyTo(slope, surface.Point{X: 0, Y: 5}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := flight.Samples()[len(flight.Samples())-1]
	assertApproxEqual(t, last.Y, slope.InterpY(last.X), 1e-2)
}

func TestInvertFlyThenFlyReachesTarget(t *testing.T) {
	p := Default()
	p0 := surface.Point{X: 0, Y: 10}
	alpha := 10 * math.Pi / 180
	target := surface.Point{X: 30, Y: 0}

	vStar, err := p.InvertFly(p0, alpha, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vx, vy, err := p.ImpactVelocity(p0, alpha, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vx == 0 && vy == 0 {
		t.Fatalf("expected a nonzero impact velocity for v*=%f", vStar)
	}

	landed, err := p.flyUntilY(p0, vStar*math.Cos(alpha), vStar*math.Sin(alpha), target.Y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertApproxEqual(t, landed.X, target.X, 1e-2)
}
