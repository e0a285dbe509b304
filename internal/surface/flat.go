package surface

import "math"

// NewFlat builds a straight segment of the given length starting at
// initPos, inclined at angle (radians, signed — negative descends),
// sampled uniformly in arc length.
func NewFlat(angle, length float64, initPos Point) (*Surface, error) {
	return newFlatSampled(angle, length, initPos, 200)
}

func newFlatSampled(angle, length float64, initPos Point, numPoints int) (*Surface, error) {
	if numPoints < 2 {
		numPoints = 2
	}
	x := make([]float64, numPoints)
	y := make([]float64, numPoints)
	dx := length * math.Cos(angle)
	dy := length * math.Sin(angle)
	for i := 0; i < numPoints; i++ {
		frac := float64(i) / float64(numPoints-1)
		x[i] = initPos.X + frac*dx
		y[i] = initPos.Y + frac*dy
	}
	return New(x, y)
}
