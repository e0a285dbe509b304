package surface

import "math"

// clothoidGamma is the fraction of the total angle span occupied by the
// circular segment of the takeoff transition; the remainder is split
// between the two clothoid tails.
const clothoidGamma = 0.99

// NewClothoidCircle builds the circle-clothoid-clothoid takeoff transition
// curve (without the flat ramp appended by TakeoffSurface) that carries a
// skier entering at slope angle lambda and speed entrySpeed smoothly to
// exit angle beta, keeping centripetal acceleration at the design speed
// within tolerableAcc g's.
//
// Construction follows the clothoid-circle-clothoid family: a minimum-
// radius circular arc flanked by two Fresnel-series clothoid tails, each
// rotated and translated to match tangents at the junctions, the whole
// assembly rotated so its overall entry/exit tangents equal lambda and
// beta and translated so the entry point sits at initPos.
func NewClothoidCircle(lambda, beta, entrySpeed, tolerableAcc, g float64, initPos Point) (*Surface, error) {
	const numPoints = 500
	gamma := clothoidGamma

	// lambda is signed (negative descends); the construction below works
	// with the descent angle lam = -lambda, so lam+beta is the total turn.
	lam := -lambda

	radiusMin := entrySpeed * entrySpeed / (tolerableAcc * g)

	thetaCir := 0.5 * gamma * (lam + beta)
	xCirSt := -radiusMin * math.Sin(thetaCir)
	xCirEnd := radiusMin * math.Sin(thetaCir)

	xCir := linspace(xCirSt, xCirEnd, numPoints)
	circleY := func(x float64) float64 {
		return radiusMin - math.Sqrt(radiusMin*radiusMin-x*x)
	}

	aSquared := radiusMin * radiusMin * (1 - gamma) * (lam + beta)
	a := math.Sqrt(aSquared)
	clothoidLength := a * math.Sqrt((1-gamma)*(lam+beta))

	s := linspace(clothoidLength, 0, numPoints)
	x1 := make([]float64, numPoints)
	y1 := make([]float64, numPoints)
	for i, si := range s {
		x1[i] = si - math.Pow(si, 5)/(40*math.Pow(a, 4)) + math.Pow(si, 9)/(3456*math.Pow(a, 8))
		y1[i] = math.Pow(si, 3)/(6*a*a) - math.Pow(si, 7)/(336*math.Pow(a, 6)) + math.Pow(si, 11)/(42240*math.Pow(a, 10))
	}

	x2 := make([]float64, numPoints)
	y2 := make([]float64, numPoints)
	for i := range x1 {
		x2[i] = x1[i] - x1[0]
		y2[i] = y1[i] - y1[0]
	}

	theta := (lam + beta) / 2
	x3 := make([]float64, numPoints)
	y3 := make([]float64, numPoints)
	for i := range x2 {
		x3[i] = math.Cos(theta)*x2[i] + math.Sin(theta)*y2[i]
		y3[i] = -math.Sin(theta)*x2[i] + math.Cos(theta)*y2[i]
	}

	// Left tail (downhill side of the circular arc): reverse, shift onto
	// the left circle junction.
	x4 := make([]float64, numPoints)
	y4 := make([]float64, numPoints)
	for i := range x3 {
		x4[numPoints-1-i] = x3[i] - radiusMin*math.Sin(thetaCir)
		y4[numPoints-1-i] = y3[i] + radiusMin*(1-math.Cos(thetaCir))
	}

	// Right tail (uphill side): mirrored about the first left-tail point
	// before reversal, shifted onto the right circle junction.
	x5 := make([]float64, numPoints)
	y5 := make([]float64, numPoints)
	for i := range x3 {
		x5[i] = -x3[i] + 2*x3[0] + radiusMin*math.Sin(thetaCir)
		y5[i] = y3[i] + radiusMin*(1-math.Cos(thetaCir))
	}

	var xLCir, yLCir, xRCir, yRCir []float64
	for _, xc := range xCir {
		if xc <= 0 {
			xLCir = append(xLCir, xc)
			yLCir = append(yLCir, circleY(xc))
		}
		if xc >= 0 {
			xRCir = append(xRCir, xc)
			yRCir = append(yRCir, circleY(xc))
		}
	}

	if len(xLCir) > 2 {
		x4 = append(x4, xLCir[1:len(xLCir)-1]...)
		y4 = append(y4, yLCir[1:len(yLCir)-1]...)
	}
	if len(xRCir) > 2 {
		x5 = append(xRCir[:len(xRCir)-2:len(xRCir)-2], x5...)
		y5 = append(yRCir[:len(yRCir)-2:len(yRCir)-2], y5...)
	}

	rotationClothoid := (lam - beta) / 2
	x6 := make([]float64, len(x4))
	y6 := make([]float64, len(x4))
	for i := range x4 {
		x6[i] = math.Cos(rotationClothoid)*x4[i] + math.Sin(rotationClothoid)*y4[i]
		y6[i] = -math.Sin(rotationClothoid)*x4[i] + math.Cos(rotationClothoid)*y4[i]
	}
	x7 := make([]float64, len(x5))
	y7 := make([]float64, len(x5))
	for i := range x5 {
		x7[i] = math.Cos(rotationClothoid)*x5[i] + math.Sin(rotationClothoid)*y5[i]
		y7[i] = -math.Sin(rotationClothoid)*x5[i] + math.Cos(rotationClothoid)*y5[i]
	}

	xAll := append(append([]float64(nil), x6...), x7...)
	yAll := append(append([]float64(nil), y6...), y7...)

	xMin, minIdx := xAll[0], 0
	for i, xv := range xAll {
		if xv < xMin {
			xMin, minIdx = xv, i
		}
	}
	for i := range xAll {
		xAll[i] -= xMin
	}
	yShift := yAll[minIdx]
	for i := range yAll {
		yAll[i] -= yShift
	}

	xSorted, ySorted := sortByX(xAll, yAll)
	xSorted, ySorted = dedupeX(xSorted, ySorted)

	for i := range xSorted {
		xSorted[i] += initPos.X
		ySorted[i] += initPos.Y
	}

	return New(xSorted, ySorted)
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// sortByX returns x, y reordered so x is non-decreasing (insertion sort is
// adequate here: the clothoid construction above interleaves two already
// nearly-sorted runs).
func sortByX(x, y []float64) ([]float64, []float64) {
	n := len(x)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < n; i++ {
		j := i
		for j > 0 && x[idx[j-1]] > x[idx[j]] {
			idx[j-1], idx[j] = idx[j], idx[j-1]
			j--
		}
	}
	outX := make([]float64, n)
	outY := make([]float64, n)
	for i, k := range idx {
		outX[i] = x[k]
		outY[i] = y[k]
	}
	return outX, outY
}

// dedupeX drops samples whose x is not strictly greater than the previous
// kept sample, a side effect of stitching two parametrizations at a shared
// junction point.
func dedupeX(x, y []float64) ([]float64, []float64) {
	outX := x[:1]
	outY := y[:1]
	for i := 1; i < len(x); i++ {
		if x[i] > outX[len(outX)-1] {
			outX = append(outX, x[i])
			outY = append(outY, y[i])
		}
	}
	return outX, outY
}
