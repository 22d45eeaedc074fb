package model

import (
	"math"
	"testing"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/zpleunis/pint/ephem"
	"github.com/zpleunis/pint/mjd"
	"github.com/zpleunis/pint/observatory"
	"github.com/zpleunis/pint/toa"
)

func testParams() *Params {
	return &Params{
		PSR:           "J0000+0000",
		RAJ:           unit.AngleFromDeg(0),
		DECJ:          unit.AngleFromDeg(0),
		HasEquatorial: true,
		F0:            100,
		PEPOCH:        mjd.Time{Day: 55000, Scale: mjd.TDB},
	}
}

func TestSkyCoordUnitVector(t *testing.T) {
	p := testParams()
	p.RAJ = unit.AngleFromDeg(90)
	p.DECJ = unit.AngleFromDeg(45)
	v := p.SkyCoord()
	if math.Abs(v.Square()-1) > 1e-14 {
		t.Errorf("not a unit vector: |v|² = %v", v.Square())
	}
	if math.Abs(v.X) > 1e-14 {
		t.Errorf("X = %v, want 0 at RA 90", v.X)
	}
	if math.Abs(v.Z-math.Sqrt2/2) > 1e-14 {
		t.Errorf("Z = %v at Dec 45", v.Z)
	}
}

func TestSkyCoordEclipticPreferred(t *testing.T) {
	p := testParams()
	// an ecliptic pole position must override a conflicting equatorial one
	p.HasEcliptic = true
	p.ELONG = unit.AngleFromDeg(0)
	p.ELAT = unit.AngleFromDeg(90)
	v := p.SkyCoord()
	// the ecliptic pole is at Dec 90 − obliquity
	wantZ := math.Sin((90 - 23.4392911) * math.Pi / 180)
	if math.Abs(v.Z-wantZ) > 1e-9 {
		t.Errorf("Z = %v, want %v", v.Z, wantZ)
	}
}

func TestRoemerDelaySign(t *testing.T) {
	p := testParams() // pulsar along +X
	eph := ephem.Analytic{}
	tt := mjd.New(55100, 0, mjd.TDB)

	// a small Y offset keeps the Sun off the line of sight, so the
	// Shapiro term stays finite and small against the Roemer term
	toward := ephem.PosVel{Pos: coord.Cart{X: ephem.AUKm, Y: .01 * ephem.AUKm}}
	away := ephem.PosVel{Pos: coord.Cart{X: -ephem.AUKm, Y: .01 * ephem.AUKm}}
	dt, err := p.Delay(tt, toward, math.Inf(1), eph, false)
	if err != nil {
		t.Fatal(err)
	}
	da, err := p.Delay(tt, away, math.Inf(1), eph, false)
	if err != nil {
		t.Fatal(err)
	}
	// one AU toward the source arrives about 499 s of light time early
	if d := dt.Sec() - da.Sec(); math.Abs(d+2*ephem.AUKm/ephem.CLight) > 1e-2 {
		t.Errorf("toward-minus-away delay %v s, want about -998", d)
	}
}

func TestDispersionDelay(t *testing.T) {
	p := testParams()
	p.DM = 10
	eph := ephem.Analytic{}
	tt := mjd.New(55100, 0, mjd.TDB)
	obs := ephem.PosVel{Pos: coord.Cart{Y: ephem.AUKm}} // no Roemer along X

	inf, err := p.Delay(tt, obs, math.Inf(1), eph, false)
	if err != nil {
		t.Fatal(err)
	}
	lo, err := p.Delay(tt, obs, 1400, eph, false)
	if err != nil {
		t.Fatal(err)
	}
	want := 10 / (2.41e-4 * 1400 * 1400)
	if d := lo.Sec() - inf.Sec(); math.Abs(d-want) > 1e-9 {
		t.Errorf("dispersion delay %v s, want %v", d, want)
	}
}

func TestSpinPhaseExactAtEpochCycles(t *testing.T) {
	p := testParams() // F0 = 100 exactly
	// a whole number of seconds after the epoch is a whole number of
	// cycles, with zero fractional part
	ph := p.spin(mjd.New(55010, 0, mjd.TDB), 0)
	if ph.Frac != 0 {
		t.Errorf("fractional phase %v, want exactly 0", ph.Frac)
	}
	if want := int64(100 * 10 * 86400); ph.Int != want {
		t.Errorf("integer cycles %d, want %d", ph.Int, want)
	}
}

func TestSpinPhaseFraction(t *testing.T) {
	p := testParams()
	p.F0 = 2.5
	// 0.1 s after the epoch: 0.25 cycles
	ph := p.spin(mjd.Time{Day: 55000, Scale: mjd.TDB}, .1)
	if math.Abs(ph.Frac-.25) > 1e-12 || ph.Int != 0 {
		t.Errorf("phase %d + %v, want 0 + 0.25", ph.Int, ph.Frac)
	}
	// negative offsets fold to [0, 1)
	ph = p.spin(mjd.Time{Day: 55000, Scale: mjd.TDB}, -.1)
	if math.Abs(ph.Frac-.75) > 1e-12 || ph.Int != -1 {
		t.Errorf("phase %d + %v, want -1 + 0.75", ph.Int, ph.Frac)
	}
}

func TestSpinPhaseSpindown(t *testing.T) {
	p := testParams()
	p.F1 = -1e-12
	slow := p.spin(mjd.New(55001, 0, mjd.TDB), 0)
	p.F1 = 0
	fast := p.spin(mjd.New(55001, 0, mjd.TDB), 0)
	// F1 removes F1/2·dt² cycles over one day
	d := float64(fast.Int-slow.Int) + (fast.Frac - slow.Frac)
	want := .5e-12 * 86400 * 86400
	if math.Abs(d-want) > 1e-9 {
		t.Errorf("spindown removed %v cycles, want %v", d, want)
	}
}

func TestPhaseSub(t *testing.T) {
	a := Phase{Int: 5, Frac: .25}
	b := Phase{Int: 2, Frac: .75}
	d := a.Sub(b)
	if d.Int != 2 || math.Abs(d.Frac-.5) > 1e-15 {
		t.Errorf("Sub = %d + %v, want 2 + 0.5", d.Int, d.Frac)
	}
}

func TestPhaseMatchesTOACount(t *testing.T) {
	p := testParams()
	reg, err := observatory.DefaultRegistry()
	if err != nil {
		t.Fatal(err)
	}
	toas := []toa.TOA{
		toa.New(mjd.New(55010, .1, mjd.TDB), "@"),
		toa.New(mjd.New(55020, .2, mjd.TDB), "@"),
		toa.New(mjd.New(55030, .3, mjd.TDB), "@"),
	}
	tt := toa.NewTOAs(toas, toa.DefaultOptions())
	eph := ephem.Analytic{}
	if err := tt.Compute(reg, eph); err != nil {
		t.Fatal(err)
	}
	phases, err := p.Phase(tt, eph)
	if err != nil {
		t.Fatal(err)
	}
	if len(phases) != len(toas) {
		t.Fatalf("%d phases for %d TOAs", len(phases), len(toas))
	}
	for i, ph := range phases {
		if ph.Frac < 0 || ph.Frac >= 1 {
			t.Errorf("phase %d fraction %v outside [0,1)", i, ph.Frac)
		}
	}
}

func TestPhaseRequiresCompute(t *testing.T) {
	p := testParams()
	tt := toa.NewTOAs([]toa.TOA{toa.New(mjd.New(55010, 0, mjd.TDB), "@")},
		toa.DefaultOptions())
	if _, err := p.Phase(tt, ephem.Analytic{}); err == nil {
		t.Fatal("no error for uncomputed TOA table")
	}
}

func TestPhaseZeroAtTZR(t *testing.T) {
	p := testParams()
	p.HasTZR = true
	p.TZRMJD = mjd.New(55010, .123456, mjd.TDB)
	reg, err := observatory.DefaultRegistry()
	if err != nil {
		t.Fatal(err)
	}
	// a barycentric TOA exactly at TZRMJD has phase zero: no
	// propagation delays apply at the barycenter
	toas := []toa.TOA{toa.New(p.TZRMJD, "@")}
	tt := toa.NewTOAs(toas, toa.DefaultOptions())
	eph := ephem.Analytic{}
	if err := tt.Compute(reg, eph); err != nil {
		t.Fatal(err)
	}
	phases, err := p.Phase(tt, eph)
	if err != nil {
		t.Fatal(err)
	}
	frac := phases[0].Frac
	if frac > .5 {
		frac -= 1
	}
	if math.Abs(frac) > 1e-6 || phases[0].Int > 0 || phases[0].Int < -1 {
		t.Errorf("phase at TZRMJD = %d + %v, want 0", phases[0].Int, phases[0].Frac)
	}
}
