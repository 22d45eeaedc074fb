// Package eventstats implements pulsation significance tests for
// event phase data: the H-test of de Jager, Raubenheimer and
// Swanepoel (1989) and its photon-weighted extension (Kerr 2011).
package eventstats

import "math"

// maximum number of harmonics summed by the H-test
const maxHarm = 20

// Hm returns the H-test statistic for phases in [0, 1).
func Hm(phases []float64) float64 {
	w := make([]float64, len(phases))
	for i := range w {
		w[i] = 1
	}
	return Hmw(phases, w)
}

// Hmw returns the weighted H-test statistic.  With unit weights it
// reduces to Hm.  phases and weights must be the same length.
func Hmw(phases, weights []float64) float64 {
	var wsq float64
	for _, w := range weights {
		wsq += w * w
	}
	if wsq == 0 {
		return 0
	}
	h := math.Inf(-1)
	var z float64
	for m := 1; m <= maxHarm; m++ {
		var c, s float64
		for i, p := range phases {
			a := 2 * math.Pi * float64(m) * p
			c += weights[i] * math.Cos(a)
			s += weights[i] * math.Sin(a)
		}
		z += (c*c + s*s) * 2 / wsq
		if v := z - 4*float64(m) + 4; v > h {
			h = v
		}
	}
	return h
}

// H2sig converts an H-test value to a single-trial significance in
// Gaussian sigma, using the asymptotic tail probability
// p = exp(−0.4 H) of Kerr (2011).  The tail probability underflows
// around H ≈ 1860; beyond that the result saturates near 38.6 sigma
// rather than going infinite.
func H2sig(h float64) float64 {
	p := math.Exp(-0.4 * h)
	if p >= 1 {
		return 0
	}
	if p < math.SmallestNonzeroFloat64 {
		p = math.SmallestNonzeroFloat64
	}
	return math.Sqrt2 * math.Erfcinv(2*p)
}
