package ephem

import (
	"fmt"
	"math"
	"os"

	"github.com/soniakeys/coord"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/unit"

	"github.com/zpleunis/pint/mjd"
)

// J2000 mean obliquity of the ecliptic, IAU 1976.
const obliquityJ2000 = 23.4392911 * math.Pi / 180

// Sun/planet mass ratios, used to place the solar system barycenter.
var massRatio = map[Body]float64{
	Jupiter: 1047.3486,
	Saturn:  3497.898,
	Uranus:  22902.98,
	Neptune: 19412.24,
}

var ppBody = map[Body]int{
	Mercury: pp.Mercury,
	Venus:   pp.Venus,
	Earth:   pp.Earth,
	Mars:    pp.Mars,
	Jupiter: pp.Jupiter,
	Saturn:  pp.Saturn,
	Uranus:  pp.Uranus,
	Neptune: pp.Neptune,
}

// step for velocity by central difference, days
const velStep = .01

// VSOP87 is an Ephemeris backed by the VSOP87 planetary theory as
// distributed with the meeus library.  Heliocentric positions are
// shifted to the solar system barycenter using the outer planet masses.
type VSOP87 struct {
	dir     string
	planets map[Body]*pp.V87Planet
}

// NewVSOP87 loads the VSOP87 data files from dir, or from the directory
// named by the VSOP87 environment variable when dir is empty.  Earth and
// the four outer planets are required; the missing file is named in any
// load error.
func NewVSOP87(dir string) (*VSOP87, error) {
	if dir == "" {
		dir = os.Getenv("VSOP87")
	}
	if dir == "" {
		return nil, fmt.Errorf(
			"ephem: no VSOP87 data directory given and VSOP87 unset")
	}
	v := &VSOP87{dir: dir, planets: make(map[Body]*pp.V87Planet)}
	for _, b := range []Body{Earth, Jupiter, Saturn, Uranus, Neptune} {
		if _, err := v.planet(b); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (v *VSOP87) Name() string { return "VSOP87" }

func (v *VSOP87) planet(b Body) (*pp.V87Planet, error) {
	if p, ok := v.planets[b]; ok {
		return p, nil
	}
	ib, ok := ppBody[b]
	if !ok {
		return nil, fmt.Errorf("ephem: no VSOP87 series for %s", b)
	}
	p, err := pp.LoadPlanetPath(ib, v.dir)
	if err != nil {
		return nil, fmt.Errorf("ephem: loading VSOP87 %s from %s: %v",
			b, v.dir, err)
	}
	v.planets[b] = p
	return p, nil
}

// heliocentric position of b in equatorial J2000 axes, km.
func (v *VSOP87) helio(b Body, jde float64) (coord.Cart, error) {
	p, err := v.planet(b)
	if err != nil {
		return coord.Cart{}, err
	}
	l, lat, r := p.Position2000(jde)
	sl, cl := math.Sincos(l.Rad())
	sb, cb := math.Sincos(lat.Rad())
	// rectangular ecliptic, then rotate to equatorial
	x := r * cb * cl
	y := r * cb * sl
	z := r * sb
	se, ce := math.Sincos(obliquityJ2000)
	return coord.Cart{
		X: x * AUKm,
		Y: (y*ce - z*se) * AUKm,
		Z: (y*se + z*ce) * AUKm,
	}, nil
}

// sunSSB returns the Sun with respect to the solar system barycenter,
// from the outer planet mass ratios.  The inner planets are neglected;
// their contribution is under a kilometer.
func (v *VSOP87) sunSSB(jde float64) (coord.Cart, error) {
	helio := make(map[Body]coord.Cart, len(massRatio))
	for b := range massRatio {
		p, err := v.helio(b, jde)
		if err != nil {
			return coord.Cart{}, err
		}
		helio[b] = p
	}
	return barycenterShift(helio), nil
}

// barycenterShift combines heliocentric planet positions into the Sun's
// offset from the solar system barycenter.  The barycenter lies from the
// Sun toward the planets, so the Sun sits at −Σ r/(ratio+1).
func barycenterShift(helio map[Body]coord.Cart) coord.Cart {
	var s coord.Cart
	for b, p := range helio {
		f := 1 / (massRatio[b] + 1)
		s.X -= p.X * f
		s.Y -= p.Y * f
		s.Z -= p.Z * f
	}
	return s
}

// ssb returns body b with respect to the solar system barycenter, km.
func (v *VSOP87) ssb(b Body, jde float64) (coord.Cart, error) {
	if b == Sun {
		return v.sunSSB(jde)
	}
	h, err := v.helio(b, jde)
	if err != nil {
		return coord.Cart{}, err
	}
	s, err := v.sunSSB(jde)
	if err != nil {
		return coord.Cart{}, err
	}
	var r coord.Cart
	r.Add(&h, &s)
	return r, nil
}

func (v *VSOP87) posVel(b Body, t mjd.Time) (PosVel, error) {
	jde := t.JD()
	p, err := v.ssb(b, jde)
	if err != nil {
		return PosVel{}, err
	}
	p0, err := v.ssb(b, jde-velStep)
	if err != nil {
		return PosVel{}, err
	}
	p1, err := v.ssb(b, jde+velStep)
	if err != nil {
		return PosVel{}, err
	}
	inv := 1 / (2 * velStep * mjd.SecsPerDay)
	return PosVel{
		Pos:    p,
		Vel:    coord.Cart{X: (p1.X - p0.X) * inv, Y: (p1.Y - p0.Y) * inv, Z: (p1.Z - p0.Z) * inv},
		Obj:    b.String(),
		Origin: "ssb",
	}, nil
}

func (v *VSOP87) EarthPosVel(t mjd.Time) (PosVel, error) {
	return v.posVel(Earth, t)
}

func (v *VSOP87) PlanetPosVel(b Body, t mjd.Time) (PosVel, error) {
	return v.posVel(b, t)
}

func (v *VSOP87) TDBMinusTT(t mjd.Time) (unit.Time, error) {
	return tdbMinusTT(t), nil
}
