// Package model evaluates a pulsar timing model: par file parameters,
// barycentric delays from solar system geometry, and absolute spin
// phase at each time of arrival.
package model

import (
	"fmt"
	"math"

	"github.com/soniakeys/coord"
	mcoord "github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/unit"

	"github.com/zpleunis/pint/ephem"
	"github.com/zpleunis/pint/mjd"
	"github.com/zpleunis/pint/toa"
)

// TSun is the solar mass in light travel time, GM☉/c³ seconds.
const TSun = 4.925490947e-6

// planetary masses for Shapiro delays, in units of TSun
var planetMass = map[ephem.Body]float64{
	ephem.Venus:   2.4478383e-6,
	ephem.Jupiter: 9.547919e-4,
	ephem.Saturn:  2.858859e-4,
	ephem.Uranus:  4.366244e-5,
	ephem.Neptune: 5.151389e-5,
}

// dispersion constant: delay in seconds = DM / dmk / f² with f in MHz
const dmk = 2.41e-4

// J2000 mean obliquity for ecliptic par file coordinates
var obliquity = unit.AngleFromDeg(23.4392911)

// SkyCoord returns the unit vector toward the pulsar in equatorial
// J2000 axes.  Ecliptic parameters take precedence when the par file
// carries both.
func (p *Params) SkyCoord() coord.Cart {
	ra, dec := p.RAJ, p.DECJ
	if p.HasEcliptic {
		se, ce := math.Sincos(obliquity.Rad())
		a, d := mcoord.EclToEq(p.ELONG, p.ELAT, se, ce)
		ra, dec = unit.Angle(a.Rad()), d
	}
	sa, ca := math.Sincos(ra.Rad())
	sd, cd := math.Sincos(dec.Rad())
	return coord.Cart{X: cd * ca, Y: cd * sa, Z: sd}
}

// shapiro returns the gravitational time delay from one body: mass is
// in TSun units, body and obs are both with respect to the barycenter
// in km, dir is the unit vector to the pulsar.
func shapiro(mass float64, body, obs coord.Cart, dir coord.Cart) unit.Time {
	// line of sight from the observatory to the deflecting body
	var r coord.Cart
	r.Sub(&body, &obs)
	d := math.Sqrt(r.Square())
	cost := r.Dot(&dir) / d
	// the ln(d/AU) normalization is an epoch-independent constant
	// absorbed by the phase reference
	return unit.Time(-2 * mass * TSun * math.Log(d/ephem.AUKm*(1-cost)))
}

// Delay returns the total propagation delay to subtract from a
// barycenter-referenced TDB arrival time: Roemer, solar (and optionally
// planetary) Shapiro, and interstellar dispersion at the observing
// frequency.  obs is the observatory with respect to the barycenter at
// the arrival time.
func (p *Params) Delay(t mjd.Time, obs ephem.PosVel, freq float64,
	eph ephem.Ephemeris, planets bool) (unit.Time, error) {
	dir := p.SkyCoord()

	// Roemer: projection of the observatory on the pulsar direction
	delay := unit.Time(-obs.Pos.Dot(&dir) / ephem.CLight)

	sun, err := eph.PlanetPosVel(ephem.Sun, t)
	if err != nil {
		return 0, err
	}
	delay += shapiro(1, sun.Pos, obs.Pos, dir)
	if planets {
		for b, m := range planetMass {
			pv, err := eph.PlanetPosVel(b, t)
			if err != nil {
				return 0, err
			}
			delay += shapiro(m, pv.Pos, obs.Pos, dir)
		}
	}

	// cold plasma dispersion; infinite frequency means none
	if p.DM != 0 && !math.IsInf(freq, 1) && freq > 0 {
		delay += unit.Time(p.DM / (dmk * freq * freq))
	}
	return delay, nil
}

// Phase is an absolute pulse phase split into whole cycles and a
// fraction, so that many gigacycles of spin do not consume the
// precision of the fraction.
type Phase struct {
	Int  int64
	Frac float64 // [0, 1)
}

// Fold returns only the fractional turn in [0, 1).
func (p Phase) Fold() float64 { return p.Frac }

// spin evaluates the Taylor series phase at a barycentric TDB time.
// F0 is split into whole and fractional Hz: the whole part times whole
// elapsed days is exact integer cycles, keeping the rounding error of
// the result well below a microcycle per year from the epoch.
func (p *Params) spin(t mjd.Time, extraSec float64) Phase {
	days := t.Day - p.PEPOCH.Day
	fs := (t.Frac-p.PEPOCH.Frac)*mjd.SecsPerDay + extraSec

	f0i := math.Trunc(p.F0)
	f0f := p.F0 - f0i

	ph := Phase{Int: int64(f0i) * days * mjd.SecsPerDay}
	dt := float64(days)*mjd.SecsPerDay + fs
	frac := f0i*fs + f0f*dt + dt*dt*(p.F1/2+dt*p.F2/6)
	return ph.add(frac)
}

// add folds a fractional contribution into the two-part phase.
func (p Phase) add(f float64) Phase {
	p.Int += int64(math.Floor(f))
	p.Frac += f - math.Floor(f)
	if p.Frac >= 1 {
		p.Int++
		p.Frac--
	}
	return p
}

// Sub returns the phase difference a − b as a two-part phase.
func (a Phase) Sub(b Phase) Phase {
	d := Phase{Int: a.Int - b.Int}
	return d.add(a.Frac - b.Frac)
}

// Phase returns the absolute spin phase of every TOA in tt, which must
// have its TDB and SSBObs columns computed.  When the par file has a
// TZRMJD the phases are referenced to zero there; TZRMJD is taken as an
// infinite frequency barycentric arrival time.
func (p *Params) Phase(tt *toa.TOAs, eph ephem.Ephemeris) ([]Phase, error) {
	if len(tt.TDB) != len(tt.TOAs) || len(tt.SSBObs) != len(tt.TOAs) {
		return nil, fmt.Errorf(
			"model: %d TOAs but %d TDB and %d posvel entries; Compute first",
			len(tt.TOAs), len(tt.TDB), len(tt.SSBObs))
	}
	var ref Phase
	if p.HasTZR {
		ref = p.spin(p.TZRMJD, 0)
	}
	out := make([]Phase, len(tt.TOAs))
	for i := range tt.TOAs {
		// a TOA already reduced to the barycenter has no propagation
		// delays left to remove
		var d unit.Time
		if tt.SSBObs[i].Obj != "barycenter" {
			var err error
			d, err = p.Delay(tt.TDB[i], tt.SSBObs[i], tt.TOAs[i].Freq,
				eph, tt.Opt.Planets)
			if err != nil {
				return nil, fmt.Errorf("model: TOA %d: %v", i, err)
			}
		}
		ph := p.spin(tt.TDB[i], -d.Sec())
		if p.HasTZR {
			ph = ph.Sub(ref)
		}
		out[i] = ph
	}
	return out, nil
}
