package surface

import "sort"

// FlightSample is one dense-output point of a simulated flight: time,
// position and velocity components.
type FlightSample struct {
	T, X, Y, Vx, Vy float64
}

// Flight is the skier's flight trajectory exposed as a pseudo-surface: it
// projects onto (x, y) through the embedded Surface for the standard
// interp_y/slope_at/area_under/etc. API, plus a velocity lookup by x.
// There is no velocity lookup by elapsed time; the timed samples are
// available through Samples.
type Flight struct {
	*Surface
	samples []FlightSample
}

// NewFlight builds a Flight from dense-output samples ordered by
// increasing time. Samples must be strictly increasing in x, which holds
// for any flight whose horizontal velocity stays positive (drag slows vx
// but never reverses it).
func NewFlight(samples []FlightSample) (*Flight, error) {
	x := make([]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = s.X
		y[i] = s.Y
	}
	surf, err := New(x, y)
	if err != nil {
		return nil, err
	}
	return &Flight{Surface: surf, samples: append([]FlightSample(nil), samples...)}, nil
}

// Duration returns the elapsed flight time from first to last sample.
func (f *Flight) Duration() float64 {
	return f.samples[len(f.samples)-1].T - f.samples[0].T
}

// Samples returns the underlying dense-output samples. The returned slice
// must not be mutated by the caller.
func (f *Flight) Samples() []FlightSample {
	return f.samples
}

// VelocityAtX returns the velocity vector at x, linearly interpolated
// between the two samples that bracket x (found by binary search over the
// monotonic x coordinates) and held at the end samples outside the range.
func (f *Flight) VelocityAtX(x float64) (vx, vy float64) {
	i := sort.Search(len(f.samples), func(i int) bool { return f.samples[i].X >= x })
	if i <= 0 {
		s := f.samples[0]
		return s.Vx, s.Vy
	}
	if i >= len(f.samples) {
		s := f.samples[len(f.samples)-1]
		return s.Vx, s.Vy
	}
	lo, hi := f.samples[i-1], f.samples[i]
	if hi.X == lo.X {
		return hi.Vx, hi.Vy
	}
	frac := (x - lo.X) / (hi.X - lo.X)
	return lo.Vx + frac*(hi.Vx-lo.Vx), lo.Vy + frac*(hi.Vy-lo.Vy)
}
