package ephem

import (
	"fmt"

	"github.com/soniakeys/astro"
	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/zpleunis/pint/mjd"
)

// Analytic is an Ephemeris backed by the approximate USNO solar
// ephemeris.  It needs no data files.  The Sun is taken as the solar
// system barycenter, which is wrong by up to two light seconds of
// position; use it only when no VSOP87 data is installed and
// light-travel accuracy at the few second level is acceptable.
type Analytic struct{}

func (Analytic) Name() string { return "analytic" }

// earth returns the Earth with respect to the Sun in equatorial J2000
// axes, km.  Se2000 gives the geocentric Sun vector, so the sign flips.
func (Analytic) earth(m float64) coord.Cart {
	se, _, _ := astro.Se2000(m)
	return coord.Cart{X: -se.X * AUKm, Y: -se.Y * AUKm, Z: -se.Z * AUKm}
}

func (a Analytic) EarthPosVel(t mjd.Time) (PosVel, error) {
	m := t.Float()
	p := a.earth(m)
	p0 := a.earth(m - velStep)
	p1 := a.earth(m + velStep)
	inv := 1 / (2 * velStep * mjd.SecsPerDay)
	return PosVel{
		Pos:    p,
		Vel:    coord.Cart{X: (p1.X - p0.X) * inv, Y: (p1.Y - p0.Y) * inv, Z: (p1.Z - p0.Z) * inv},
		Obj:    "earth",
		Origin: "ssb",
	}, nil
}

func (Analytic) PlanetPosVel(b Body, t mjd.Time) (PosVel, error) {
	if b == Sun {
		// the model's one simplification: Sun at the barycenter
		return PosVel{Obj: "sun", Origin: "ssb"}, nil
	}
	return PosVel{}, fmt.Errorf(
		"ephem: analytic ephemeris has no position for %s", b)
}

func (Analytic) TDBMinusTT(t mjd.Time) (unit.Time, error) {
	return tdbMinusTT(t), nil
}
