package numeric

import "math"

// DefaultTol is the default absolute tolerance used by Bisect when the
// caller passes a non-positive tolerance.
const DefaultTol = 1e-6

// Bisect finds a root of f in [a, b] by bracketed bisection. f(a) and f(b)
// must have opposite signs. Returns once the bracket shrinks below tol.
func Bisect(f func(float64) float64, a, b, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTol
	}
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if (fa > 0) == (fb > 0) {
		return 0, &BracketError{Msg: "f(a) and f(b) have the same sign"}
	}
	for i := 0; i < 200 && math.Abs(b-a) > tol; i++ {
		mid := 0.5 * (a + b)
		fm := f(mid)
		if fm == 0 {
			return mid, nil
		}
		if (fm > 0) == (fa > 0) {
			a, fa = mid, fm
		} else {
			b, fb = mid, fm
		}
	}
	return 0.5 * (a + b), nil
}

// Brent1D minimizes f over the bracket [a, b] using golden-section search
// with parabolic-interpolation acceleration, in the classic Brent shape.
// It does not require f to be unimodal globally, only well-behaved near
// the minimum closest to the seed bracket.
func Brent1D(f func(float64) float64, a, b, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTol
	}
	const goldenRatio = 0.3819660112501051 // 2 - golden ratio

	x := a + goldenRatio*(b-a)
	w, v := x, x
	fx := f(x)
	fw, fv := fx, fx

	d, e := 0.0, 0.0

	for i := 0; i < 200; i++ {
		mid := 0.5 * (a + b)
		tol1 := tol*math.Abs(x) + 1e-12
		tol2 := 2 * tol1
		if math.Abs(x-mid) <= tol2-0.5*(b-a) {
			return x, nil
		}

		useGolden := true
		if math.Abs(e) > tol1 {
			// Try a parabolic fit through (v,fv), (w,fw), (x,fx).
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q2 := 2 * (q - r)
			if q2 > 0 {
				p = -p
			}
			q2 = math.Abs(q2)
			etemp := e
			e = d
			if math.Abs(p) < math.Abs(0.5*q2*etemp) && p > q2*(a-x) && p < q2*(b-x) {
				d = p / q2
				u := x + d
				if u-a < tol2 || b-u < tol2 {
					d = math.Copysign(tol1, mid-x)
				}
				useGolden = false
			}
		}
		if useGolden {
			if x >= mid {
				e = a - x
			} else {
				e = b - x
			}
			d = goldenRatio * e
		}

		var u float64
		if math.Abs(d) >= tol1 {
			u = x + d
		} else {
			u = x + math.Copysign(tol1, d)
		}
		fu := f(u)

		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}
	}
	return x, nil
}
