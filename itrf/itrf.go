// Package itrf rotates fixed Earth-surface (ITRF) site coordinates into
// the geocentric celestial frame at a given epoch.
//
// The rotation applied is Earth rotation only, through Greenwich mean
// sidereal time; precession, nutation and polar motion are neglected.
// For an Earth radius lever arm they displace the site by a few meters,
// about ten nanoseconds of light time, which is below the clock table
// accuracy this package supports.
package itrf

import (
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/sidereal"

	"github.com/zpleunis/pint/ephem"
	"github.com/zpleunis/pint/mjd"
)

// Earth rotation rate, rad/s.
const omegaEarth = 7.292115855e-5

// GCRSPosVel returns the position and velocity of a fixed ITRF site,
// given in meters, with respect to the geocenter at t, in km and km/s in
// celestial axes.  obj tags the result (normally the observatory name).
func GCRSPosVel(site coord.Cart, obj string, t mjd.Time) ephem.PosVel {
	// Greenwich mean sidereal time as Earth rotation angle
	gst := sidereal.Mean(t.JD())
	theta := gst.Sec() / mjd.SecsPerDay * 2 * math.Pi
	st, ct := math.Sincos(theta)

	x := site.X * 1e-3
	y := site.Y * 1e-3
	z := site.Z * 1e-3
	p := coord.Cart{
		X: x*ct - y*st,
		Y: x*st + y*ct,
		Z: z,
	}
	// v = omega x r
	v := coord.Cart{
		X: -omegaEarth * p.Y,
		Y: omegaEarth * p.X,
	}
	return ephem.PosVel{Pos: p, Vel: v, Obj: obj, Origin: "earth"}
}
