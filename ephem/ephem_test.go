package ephem_test

import (
	"math"
	"testing"

	"github.com/soniakeys/coord"

	"github.com/zpleunis/pint/ephem"
	"github.com/zpleunis/pint/mjd"
)

func TestAdd(t *testing.T) {
	site := ephem.PosVel{
		Pos:    coord.Cart{X: 1, Y: 2, Z: 3},
		Vel:    coord.Cart{X: .1, Y: .2, Z: .3},
		Obj:    "gbt",
		Origin: "earth",
	}
	earth, err := ephem.Analytic{}.EarthPosVel(mjd.New(55000, 0, mjd.TDB))
	if err != nil {
		t.Fatal(err)
	}
	sum, err := ephem.Add(site, earth)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Obj != "gbt" || sum.Origin != "ssb" {
		t.Fatalf("tags %s wrt %s, want gbt wrt ssb", sum.Obj, sum.Origin)
	}
	if sum.Pos.X != site.Pos.X+earth.Pos.X ||
		sum.Pos.Y != site.Pos.Y+earth.Pos.Y ||
		sum.Pos.Z != site.Pos.Z+earth.Pos.Z {
		t.Error("position sum not componentwise")
	}
	if sum.Vel.X != site.Vel.X+earth.Vel.X {
		t.Error("velocity sum not componentwise")
	}
}

func TestAddFrameMismatch(t *testing.T) {
	a := ephem.PosVel{Obj: "gbt", Origin: "earth"}
	b := ephem.PosVel{Obj: "mars", Origin: "ssb"}
	if _, err := ephem.Add(a, b); err == nil {
		t.Error("no error composing gbt wrt earth with mars wrt ssb")
	}
}

func TestAnalyticEarth(t *testing.T) {
	pv, err := ephem.Analytic{}.EarthPosVel(mjd.New(51544, .5, mjd.TDB))
	if err != nil {
		t.Fatal(err)
	}
	// distance within a couple percent of 1 AU
	d := math.Sqrt(pv.Pos.Square())
	if d < .97*ephem.AUKm || d > 1.03*ephem.AUKm {
		t.Errorf("Earth-Sun distance %g km", d)
	}
	// orbital speed near 29.8 km/s
	v := math.Sqrt(pv.Vel.Square())
	if v < 28 || v > 32 {
		t.Errorf("Earth orbital speed %g km/s", v)
	}
	// position and velocity roughly orthogonal for a near-circular orbit
	cosang := pv.Pos.Dot(&pv.Vel) / (d * v)
	if math.Abs(cosang) > .1 {
		t.Errorf("pos/vel angle cos = %g", cosang)
	}
}

func TestTDBMinusTT(t *testing.T) {
	// extremes of the annual term are about +-1.7 ms
	var min, max float64
	for d := 0; d < 366; d++ {
		v, err := ephem.Analytic{}.TDBMinusTT(mjd.New(int64(55000+d), 0, mjd.TT))
		if err != nil {
			t.Fatal(err)
		}
		s := v.Sec()
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	if max < 1.5e-3 || max > 1.8e-3 || min > -1.5e-3 || min < -1.8e-3 {
		t.Errorf("TDB-TT annual extremes [%g, %g] s", min, max)
	}
}

func TestVSOP87NeedsData(t *testing.T) {
	eph, err := ephem.Open("VSOP87")
	if err != nil {
		t.Skip(err)
	}
	pv, err := eph.EarthPosVel(mjd.New(55000, 0, mjd.TDB))
	if err != nil {
		t.Fatal(err)
	}
	d := math.Sqrt(pv.Pos.Square())
	if d < .97*ephem.AUKm || d > 1.03*ephem.AUKm {
		t.Errorf("Earth-SSB distance %g km", d)
	}
	// VSOP87 and the analytic ephemeris agree to well under a percent
	apv, _ := ephem.Analytic{}.EarthPosVel(mjd.New(55000, 0, mjd.TDB))
	var diff coord.Cart
	diff.Sub(&pv.Pos, &apv.Pos)
	if math.Sqrt(diff.Square()) > .01*ephem.AUKm {
		t.Error("VSOP87 and analytic Earth positions disagree grossly")
	}
}

func TestOpenUnknown(t *testing.T) {
	if _, err := ephem.Open("DE9999"); err == nil {
		t.Error("no error for unknown ephemeris name")
	}
}
