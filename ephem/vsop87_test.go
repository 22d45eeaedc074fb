package ephem

import (
	"math"
	"testing"

	"github.com/soniakeys/coord"
)

func TestBarycenterShiftSign(t *testing.T) {
	// Jupiter alone at 1 AU on +X: the barycenter lies toward Jupiter,
	// so the Sun sits on −X at r/(ratio+1) from it.
	helio := map[Body]coord.Cart{
		Jupiter: {X: AUKm},
	}
	s := barycenterShift(helio)
	want := -AUKm / (massRatio[Jupiter] + 1)
	if math.Abs(s.X-want) > 1e-6*AUKm {
		t.Errorf("Sun X = %g km, want %g", s.X, want)
	}
	if s.Y != 0 || s.Z != 0 {
		t.Errorf("off-axis components %g, %g", s.Y, s.Z)
	}
}

func TestBarycenterShiftSumsPlanets(t *testing.T) {
	helio := map[Body]coord.Cart{
		Jupiter: {X: 5.2 * AUKm},
		Saturn:  {X: 9.5 * AUKm},
		Uranus:  {X: 19.2 * AUKm},
		Neptune: {X: 30.1 * AUKm},
	}
	var want float64
	for b, p := range helio {
		want -= p.X / (massRatio[b] + 1)
	}
	s := barycenterShift(helio)
	if math.Abs(s.X-want) > 1e-9*AUKm {
		t.Errorf("Sun X = %g km, want %g", s.X, want)
	}
	// all planets on one ray: the Sun must sit on the other side
	if s.X >= 0 {
		t.Errorf("Sun X = %g km, want negative", s.X)
	}
}
