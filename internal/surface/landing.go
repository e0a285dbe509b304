package surface

import (
	"math"

	"skijumpdesign/internal/numeric"
)

// ImpactVelocityFunc finds, via invert-fly, the launch speed from p0 at
// angle alpha that lands the skier at target, and returns the velocity
// vector (descending, so vy < 0) at that landing point. Package surface
// depends on this as a callback rather than importing package skier
// directly, since package skier imports package surface.
type ImpactVelocityFunc func(p0 Point, alpha float64, target Point) (vx, vy float64, err error)

// NewLandingSurface constructs the equivalent-fall-height landing curve
// by integrating backward in x from the landing transition start
// (transitionStart) to the takeoff point (takeoff), so that a skier
// launched from takeoff at angle alpha who lands anywhere on the curve
// always does so with a velocity component normal to the surface whose
// magnitude is sqrt(2*g*fallHeight).
//
// At each (x, y) the required surface angle is derived from the impact
// velocity angle theta_v and the EFH condition sin(alpha_s - theta_v) =
// sqrt(2*g*fallHeight)/v, i.e. alpha_s = theta_v + asin(sqrt(2*g*fallHeight)/v).
func NewLandingSurface(takeoff Point, alpha float64, transitionStart Point, fallHeight, g float64, impactVelocity ImpactVelocityFunc) (*Surface, error) {
	if fallHeight <= 0 {
		return nil, &ErrInfeasible{Reason: "fall height must be positive"}
	}

	rhs := func(x float64, y []float64) []float64 {
		target := Point{X: x, Y: y[0]}
		vx, vy, err := impactVelocity(takeoff, alpha, target)
		if err != nil {
			// Fall back to the takeoff-angle slope tan(alpha) rather
			// than aborting the whole integration; the resulting curve
			// is rejected later only if it dips below the parent slope.
			return []float64{math.Tan(alpha)}
		}
		v := math.Hypot(vx, vy)
		if v*v <= 2*g*fallHeight {
			return []float64{math.Tan(alpha)}
		}
		thetaV := math.Atan2(vy, vx)
		psi := math.Asin(math.Sqrt(2*g*fallHeight) / v)
		alphaS := thetaV + psi
		return []float64{math.Tan(alphaS)}
	}

	opts := numeric.DefaultOptions()
	sol, err := numeric.Integrate(rhs, [2]float64{transitionStart.X, takeoff.X}, []float64{transitionStart.Y}, opts)
	if err != nil {
		return nil, &ErrInfeasible{Reason: "EFH landing surface integration failed: " + err.Error()}
	}

	n := len(sol.T)
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[n-1-i] = sol.T[i]
		y[n-1-i] = sol.Y[i][0]
	}
	return New(x, y)
}
