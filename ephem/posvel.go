// Package ephem provides solar system ephemeris lookups for
// barycentering: positions and velocities of the Earth and planets
// relative to the solar system barycenter, and the TDB−TT time scale
// difference at the geocenter.
//
// Canonical internal units throughout the package are kilometers for
// positions and kilometers per second for velocities.  Conversions from
// the AU based sources happen at the provider boundary and nowhere else.
package ephem

import (
	"fmt"

	"github.com/soniakeys/coord"
)

// CLight is the speed of light in km/s.
const CLight = 299792.458

// AUKm is one astronomical unit in kilometers.
const AUKm = 1.495978707e8

// PosVel is a position and velocity pair tagged with the object it
// locates and the origin it is measured from.  Pos is in km, Vel in
// km/s, both in equatorial J2000 axes.
type PosVel struct {
	Pos, Vel coord.Cart
	Obj      string
	Origin   string
}

// Add composes two position/velocity pairs.  The origin of a must be the
// object of b, so that (a wrt b's object) + (b's object wrt b's origin)
// gives a's object with respect to b's origin.
func Add(a, b PosVel) (PosVel, error) {
	if a.Origin != b.Obj {
		return PosVel{}, fmt.Errorf(
			"ephem: cannot add %s wrt %s to %s wrt %s",
			a.Obj, a.Origin, b.Obj, b.Origin)
	}
	var r PosVel
	r.Pos.Add(&a.Pos, &b.Pos)
	r.Vel.Add(&a.Vel, &b.Vel)
	r.Obj = a.Obj
	r.Origin = b.Origin
	return r, nil
}
