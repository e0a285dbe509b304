package jump

import "math"

// SnowBudget returns the jump's cross-sectional snow budget: the
// absolute difference between the parent slope's area (from the start
// of the takeoff to the end of the landing transition) and the combined
// area under the takeoff, landing, and landing transition surfaces.
func (j *Jump) SnowBudget() float64 {
	nan := math.NaN()
	a := j.Slope.AreaUnder(j.Takeoff.Start().X, j.LandingTransition.End().X)
	b := j.Takeoff.AreaUnder(nan, nan) + j.Landing.AreaUnder(nan, nan) + j.LandingTransition.AreaUnder(nan, nan)
	return math.Abs(a - b)
}
