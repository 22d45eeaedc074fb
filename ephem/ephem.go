package ephem

import (
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/unit"

	"github.com/zpleunis/pint/mjd"
)

// Body identifies a solar system body for PlanetPosVel.
type Body int

const (
	Mercury Body = iota
	Venus
	Earth
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Sun
)

var bodyNames = [...]string{"mercury", "venus", "earth", "mars",
	"jupiter", "saturn", "uranus", "neptune", "sun"}

func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return fmt.Sprintf("body(%d)", int(b))
	}
	return bodyNames[b]
}

// Ephemeris supplies solar system geometry for barycentering.
// Timestamps are interpreted on the TDB scale; at the precision of the
// positional lookups the TT−TDB difference is negligible.
type Ephemeris interface {
	Name() string

	// EarthPosVel returns the Earth with respect to the solar system
	// barycenter at t.
	EarthPosVel(t mjd.Time) (PosVel, error)

	// PlanetPosVel returns a planet or the Sun with respect to the
	// solar system barycenter at t.
	PlanetPosVel(b Body, t mjd.Time) (PosVel, error)

	// TDBMinusTT returns the TDB−TT difference at the geocenter at t.
	TDBMinusTT(t mjd.Time) (unit.Time, error)
}

// Open returns the Ephemeris named by an -ephem style selector:
// "VSOP87" for the full planetary theory (data files required),
// "analytic" for the approximate solar ephemeris.
func Open(name string) (Ephemeris, error) {
	switch {
	case name == "" || strings.EqualFold(name, "VSOP87"):
		return NewVSOP87("")
	case strings.EqualFold(name, "analytic"):
		return Analytic{}, nil
	}
	return nil, fmt.Errorf("ephem: unknown ephemeris %q", name)
}

// tdbMinusTT is the truncated Fairhead & Bretagnon series for the
// geocentric TDB−TT difference, good to a few microseconds.
func tdbMinusTT(t mjd.Time) unit.Time {
	d := t.JD() - 2451545.0
	g := (357.53 + .9856003*d) * math.Pi / 180 // mean anomaly of sun
	return unit.Time(.001657 * math.Sin(g+.01671*math.Sin(g)))
}
