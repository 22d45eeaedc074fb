// Package toa holds pulse times of arrival and derives the barycentric
// quantities timing models consume: clock-corrected TDB timestamps and
// observatory positions with respect to the solar system barycenter.
package toa

import (
	"fmt"
	"math"
	"strings"

	"github.com/zpleunis/pint/ephem"
	"github.com/zpleunis/pint/mjd"
	"github.com/zpleunis/pint/observatory"
)

// TOA is a single pulse time of arrival.
type TOA struct {
	MJD    mjd.Time
	Obs    string  // observatory name or alias
	Freq   float64 // observing frequency, MHz; +Inf means no dispersion
	Weight float64
	Energy float64 // photon energy, MeV, when known
}

// New returns a TOA at infinite frequency with unit weight.
func New(t mjd.Time, obs string) TOA {
	return TOA{MJD: t, Obs: obs, Freq: math.Inf(1), Weight: 1}
}

// FilterMinMJD keeps TOAs strictly after min.  The input is not
// modified.
func FilterMinMJD(toas []TOA, min float64) []TOA {
	out := make([]TOA, 0, len(toas))
	for _, t := range toas {
		if t.MJD.Float() > min {
			out = append(out, t)
		}
	}
	return out
}

// FilterMaxMJD keeps TOAs strictly before max.  The input is not
// modified.
func FilterMaxMJD(toas []TOA, max float64) []TOA {
	out := make([]TOA, 0, len(toas))
	for _, t := range toas {
		if t.MJD.Float() < max {
			out = append(out, t)
		}
	}
	return out
}

// Options selects the optional pieces of TOA processing.  The GPS and
// BIPM flags gate clock chain stages an observatory has configured; an
// observatory with a stage disabled ignores the corresponding flag.
type Options struct {
	IncludeGPS  bool
	IncludeBIPM bool
	Planets     bool   // planetary Shapiro delays
	Ephem       string // ephemeris provider name for ephem.Open
}

// DefaultOptions enables the full clock chain and no planetary Shapiro
// delays.
func DefaultOptions() Options {
	return Options{IncludeGPS: true, IncludeBIPM: true}
}

// TOAs is a table of arrival times with computed barycentric columns.
// The columns are filled by Compute and are index-aligned with the TOA
// slice.
type TOAs struct {
	TOAs   []TOA
	Opt    Options
	TDB    []mjd.Time     // clock-corrected TDB timestamp per TOA
	SSBObs []ephem.PosVel // observatory wrt SSB per TOA, at the TDB epoch
}

// NewTOAs wraps arrival times for processing.
func NewTOAs(toas []TOA, opt Options) *TOAs {
	return &TOAs{TOAs: toas, Opt: opt}
}

// Compute fills the TDB and SSBObs columns.  TOAs are grouped by
// observatory so each site's clock tables are evaluated in one batch;
// results keep the original TOA order.
func (tt *TOAs) Compute(reg *observatory.Registry, eph ephem.Ephemeris) error {
	tt.TDB = make([]mjd.Time, len(tt.TOAs))
	tt.SSBObs = make([]ephem.PosVel, len(tt.TOAs))

	groups := make(map[string][]int)
	var order []string
	for i, t := range tt.TOAs {
		k := strings.ToLower(t.Obs)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	inc := observatory.Include{GPS: tt.Opt.IncludeGPS, BIPM: tt.Opt.IncludeBIPM}
	for _, k := range order {
		idx := groups[k]
		obs, err := reg.Lookup(k)
		if err != nil {
			return err
		}
		ts := make([]mjd.Time, len(idx))
		for j, i := range idx {
			ts[j] = tt.TOAs[i].MJD
		}
		corr, err := obs.ClockCorrections(ts, inc)
		if err != nil {
			return err
		}
		for j := range ts {
			ts[j] = ts[j].AddSeconds(corr[j])
		}
		tdb, err := obs.TDBTime(ts, eph)
		if err != nil {
			return err
		}
		pvs, err := obs.PosVel(tdb, eph)
		if err != nil {
			return err
		}
		for j, i := range idx {
			tt.TDB[i] = tdb[j]
			tt.SSBObs[i] = pvs[j]
		}
	}
	return nil
}

// MJDs returns the raw arrival times as float MJDs.
func (tt *TOAs) MJDs() []float64 {
	out := make([]float64, len(tt.TOAs))
	for i, t := range tt.TOAs {
		out[i] = t.MJD.Float()
	}
	return out
}

// Weights returns the per-TOA weights.
func (tt *TOAs) Weights() []float64 {
	out := make([]float64, len(tt.TOAs))
	for i, t := range tt.TOAs {
		out[i] = t.Weight
	}
	return out
}

// Summary describes the table in a line.
func (tt *TOAs) Summary() string {
	if len(tt.TOAs) == 0 {
		return "0 TOAs"
	}
	lo, hi := tt.TOAs[0].MJD, tt.TOAs[0].MJD
	obs := make(map[string]bool)
	for _, t := range tt.TOAs {
		if t.MJD.Before(lo) {
			lo = t.MJD
		}
		if t.MJD.After(hi) {
			hi = t.MJD
		}
		obs[strings.ToLower(t.Obs)] = true
	}
	return fmt.Sprintf("%d TOAs from %d observatories, MJD %.3f to %.3f",
		len(tt.TOAs), len(obs), lo.Float(), hi.Float())
}
