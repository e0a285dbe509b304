package jump

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

func TestMakeJumpScenario1Succeeds(t *testing.T) {
	j, err := MakeJump(-15, 0, 30, 10, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exitAngle := j.Takeoff.AngleAt(j.Takeoff.End().X) * 180 / math.Pi
	assertApproxEqual(t, exitAngle, 10, 1.0)
}

func TestMakeJumpScenario2ZeroFallHeight(t *testing.T) {
	_, err := MakeJump(-25, 0, 30, 20, 0.0)
	if _, ok := err.(*InvalidJumpError); !ok {
		t.Fatalf("expected InvalidJumpError, got %v", err)
	}
}

func TestMakeJumpScenario3FallHeightTooLarge(t *testing.T) {
	_, err := MakeJump(-15, 0, 30, 15, 2.7)
	if _, ok := err.(*InvalidJumpError); !ok {
		t.Fatalf("expected InvalidJumpError, got %v", err)
	}
}

func TestMakeJumpScenario4FliesForever(t *testing.T) {
	_, err := MakeJump(-10, 0, 30, 20, 1.5)
	if _, ok := err.(*InvalidJumpError); !ok {
		t.Fatalf("expected InvalidJumpError, got %v", err)
	}
}

func TestMakeJumpScenario5SlowSkier(t *testing.T) {
	_, err := MakeJump(-30, 0, 1, 45, 0.5)
	if _, ok := err.(*InvalidJumpError); !ok {
		t.Fatalf("expected InvalidJumpError, got %v", err)
	}
}

func TestMakeJumpScenario6Succeeds(t *testing.T) {
	_, err := MakeJump(-45, 0, 30, 0, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMakeJumpScenario7TakeoffAngleTooSteep(t *testing.T) {
	_, err := MakeJump(-15, 0, 30, 90, 0.5)
	if _, ok := err.(*ValueError); !ok {
		t.Fatalf("expected ValueError, got %v", err)
	}
}

func TestSnowBudgetNonNegative(t *testing.T) {
	j, err := MakeJump(-15, 0, 30, 10, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.SnowBudget() < 0 {
		t.Fatalf("snow budget must be non-negative, got %f", j.SnowBudget())
	}
}
