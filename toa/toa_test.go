package toa

import (
	"math"
	"testing"

	"github.com/zpleunis/pint/ephem"
	"github.com/zpleunis/pint/mjd"
	"github.com/zpleunis/pint/observatory"
)

func tdbTOA(day int64, frac float64) TOA {
	return New(mjd.New(day, frac, mjd.TDB), "@")
}

func TestFilterBoundsStrict(t *testing.T) {
	toas := []TOA{
		tdbTOA(54999, .5),
		tdbTOA(55000, 0),
		tdbTOA(55000, .5),
		tdbTOA(55001, 0),
		tdbTOA(55001, .5),
	}
	got := FilterMinMJD(toas, 55000)
	if len(got) != 3 {
		t.Fatalf("FilterMinMJD kept %d, want 3", len(got))
	}
	// a TOA exactly at the bound is dropped from both sides
	got = FilterMinMJD(toas, 55000.5)
	if len(got) != 2 {
		t.Fatalf("FilterMinMJD at .5 kept %d, want 2", len(got))
	}
	got = FilterMaxMJD(toas, 55000.5)
	if len(got) != 2 {
		t.Fatalf("FilterMaxMJD at .5 kept %d, want 2", len(got))
	}
	if len(toas) != 5 {
		t.Fatal("filter modified its input")
	}
}

func TestFilterOrderIndependent(t *testing.T) {
	toas := []TOA{
		tdbTOA(54000, .1), tdbTOA(55000, .2), tdbTOA(56000, .3),
		tdbTOA(57000, .4),
	}
	a := FilterMaxMJD(FilterMinMJD(toas, 54500), 56500)
	b := FilterMinMJD(FilterMaxMJD(toas, 56500), 54500)
	if len(a) != len(b) || len(a) != 2 {
		t.Fatalf("got %d and %d, want 2 both ways", len(a), len(b))
	}
	for i := range a {
		if a[i].MJD != b[i].MJD {
			t.Fatal("filter order changed the result")
		}
	}
}

func TestNewDefaults(t *testing.T) {
	toa := New(mjd.New(55000, 0, mjd.UTC), "GBT")
	if !math.IsInf(toa.Freq, 1) {
		t.Error("default frequency not infinite")
	}
	if toa.Weight != 1 {
		t.Error("default weight not 1")
	}
}

func TestCalcWeight(t *testing.T) {
	// at the reference energy the weight is 1, falling off both sides
	if w := CalcWeight(math.Pow(10, 4.1), 4.1); math.Abs(w-1) > 1e-12 {
		t.Errorf("weight at reference = %g", w)
	}
	// one sigma in log10 E
	want := math.Exp(-0.5)
	if w := CalcWeight(math.Pow(10, 4.6), 4.1); math.Abs(w-want) > 1e-12 {
		t.Errorf("weight one decade sigma off = %g, want %g", w, want)
	}
	if CalcWeight(100, 4.1) >= CalcWeight(1000, 4.1) {
		t.Error("weight not increasing toward the reference")
	}
}

func TestComputeBarycentric(t *testing.T) {
	reg, err := observatory.DefaultRegistry()
	if err != nil {
		t.Fatal(err)
	}
	toas := []TOA{tdbTOA(55000, .25), tdbTOA(55123, .75)}
	tt := NewTOAs(toas, DefaultOptions())
	if err := tt.Compute(reg, ephem.Analytic{}); err != nil {
		t.Fatal(err)
	}
	if len(tt.TDB) != len(toas) || len(tt.SSBObs) != len(toas) {
		t.Fatal("computed columns not aligned with TOA count")
	}
	// barycentric TOAs pass through unchanged with zero position
	for i, toa := range toas {
		if tt.TDB[i] != toa.MJD {
			t.Errorf("TOA %d: TDB %v, want passthrough %v", i, tt.TDB[i], toa.MJD)
		}
		if tt.SSBObs[i].Pos.Square() != 0 {
			t.Errorf("TOA %d: nonzero barycenter position", i)
		}
	}
}

func TestComputeKeepsOrderAcrossObservatories(t *testing.T) {
	reg := observatory.NewRegistry()
	if err := reg.Register(observatory.Barycenter{}); err != nil {
		t.Fatal(err)
	}
	// mix aliases of the same pseudo-observatory; grouping must not
	// reorder the output columns
	toas := []TOA{
		New(mjd.New(55000, .1, mjd.TDB), "@"),
		New(mjd.New(55000, .2, mjd.TDB), "SSB"),
		New(mjd.New(55000, .3, mjd.TDB), "@"),
	}
	tt := NewTOAs(toas, DefaultOptions())
	if err := tt.Compute(reg, ephem.Analytic{}); err != nil {
		t.Fatal(err)
	}
	for i, toa := range toas {
		if tt.TDB[i] != toa.MJD {
			t.Errorf("column %d out of order", i)
		}
	}
}

func TestComputeUnknownObservatory(t *testing.T) {
	reg := observatory.NewRegistry()
	tt := NewTOAs([]TOA{New(mjd.New(55000, 0, mjd.UTC), "nowhere")},
		DefaultOptions())
	if err := tt.Compute(reg, ephem.Analytic{}); err == nil {
		t.Fatal("no error for unknown observatory")
	}
}

func TestSummary(t *testing.T) {
	tt := NewTOAs(nil, DefaultOptions())
	if got := tt.Summary(); got != "0 TOAs" {
		t.Errorf("empty summary = %q", got)
	}
	tt = NewTOAs([]TOA{
		New(mjd.New(55000, 0, mjd.TDB), "@"),
		New(mjd.New(55010, 0, mjd.TDB), "SSB"),
	}, DefaultOptions())
	got := tt.Summary()
	want := "2 TOAs from 2 observatories, MJD 55000.000 to 55010.000"
	if got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}
