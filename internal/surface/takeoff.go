package surface

// SlideResult is the outcome of sliding a skier along a surface: the speed
// reached at the surface's end, and the largest normal acceleration
// (g*cos(theta) + curvature*v^2) experienced along the way.
type SlideResult struct {
	FinalV         float64
	MaxNormalAccel float64
}

// SlideFunc slides a skier along a surface starting at speed v0. Takeoff
// construction takes this as a parameter rather than depending on package
// skier directly, to avoid a surface<->skier import cycle (package skier
// imports package surface, and skier.SlideOn takes a *Surface).
type SlideFunc func(s *Surface, v0 float64) (SlideResult, error)

// rampDuration is the time (seconds) a skier spends on the flat ramp
// appended to the end of the clothoid-circle transition.
const rampDuration = 0.2

// NewTakeoff builds the clothoid-circle-clothoid takeoff transition and
// appends a flat ramp at exit angle beta, whose length is the transition
// exit speed (found by sliding a skier along the transition) times
// rampDuration.
func NewTakeoff(lambda, beta, entrySpeed, tolerableAcc, g float64, initPos Point, slide SlideFunc) (*Surface, error) {
	transition, err := NewClothoidCircle(lambda, beta, entrySpeed, tolerableAcc, g, initPos)
	if err != nil {
		return nil, err
	}

	result, err := slide(transition, entrySpeed)
	if err != nil {
		return nil, err
	}

	rampLen := result.FinalV * rampDuration
	ramp, err := newFlatSampled(beta, rampLen, transition.End(), 50)
	if err != nil {
		return nil, err
	}

	return concat(transition, ramp)
}

// concat appends b's samples onto a, dropping b's first sample if it
// duplicates a's last x (the common case when b continues where a ends).
func concat(a, b *Surface) (*Surface, error) {
	bx, by := b.X(), b.Y()
	start := 0
	if len(bx) > 0 && bx[0] <= a.x[len(a.x)-1] {
		start = 1
	}
	x := append(append([]float64(nil), a.x...), bx[start:]...)
	y := append(append([]float64(nil), a.y...), by[start:]...)
	return New(x, y)
}
