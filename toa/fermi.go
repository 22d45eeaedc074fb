package toa

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/astrogo/fitsio"

	"github.com/zpleunis/pint/mjd"
	"github.com/zpleunis/pint/observatory"
)

// CalcWeights selects computed photon weights instead of a file column:
// a Gaussian in log10 energy around the logeref reference.
const CalcWeights = "CALC"

// width of the computed weight Gaussian in log10(E/MeV)
const logerefSigma = 0.5

// CalcWeight returns the computed weight for a photon of the given
// energy in MeV.
func CalcWeight(energyMeV, logeref float64) float64 {
	d := math.Log10(energyMeV) - logeref
	return math.Exp(-d * d / (2 * logerefSigma * logerefSigma))
}

// LoadFermiTOAs reads photon arrival times from the EVENTS table of a
// Fermi FT1 file.  weightcol selects the per-photon weight: a column
// name, CalcWeights to compute weights from photon energy around
// logeref, or empty for unit weights.  When a weight column or
// CalcWeights is in use, photons with weight at or below minWeight are
// dropped.  Times are mission elapsed seconds; a TIMESYS of TDB marks
// an already barycentered file and the TOAs are tagged for the
// barycenter pseudo-observatory, otherwise they are topocentric Fermi
// times.
func LoadFermiTOAs(path, weightcol string, minWeight, logeref float64) ([]TOA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("toa: %v", err)
	}
	defer f.Close()
	fits, err := fitsio.Open(f)
	if err != nil {
		return nil, fmt.Errorf("toa: reading %s: %v", path, err)
	}
	defer fits.Close()

	tbl := eventsTable(fits)
	if tbl == nil {
		return nil, fmt.Errorf("toa: no EVENTS table in %s", path)
	}

	scale, obsName := mjd.TT, "Fermi"
	if c := tbl.Header().Get("TIMESYS"); c != nil {
		if s, ok := c.Value.(string); ok && strings.TrimSpace(s) == "TDB" {
			scale, obsName = mjd.TDB, observatory.Barycenter{}.Name()
		}
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, fmt.Errorf("toa: reading %s: %v", path, err)
	}
	defer rows.Close()

	var toas []TOA
	for rows.Next() {
		rec := make(map[string]interface{})
		if err := rows.Scan(&rec); err != nil {
			return nil, fmt.Errorf("toa: reading %s: %v", path, err)
		}
		met, ok := asFloat64(rec["TIME"])
		if !ok {
			return nil, fmt.Errorf("toa: %s: no TIME column", path)
		}
		energy, _ := asFloat64(rec["ENERGY"])

		w := 1.0
		switch weightcol {
		case "":
		case CalcWeights:
			w = CalcWeight(energy, logeref)
		default:
			w, ok = asFloat64(rec[weightcol])
			if !ok {
				return nil, fmt.Errorf(
					"toa: %s: no weight column %q", path, weightcol)
			}
		}
		if weightcol != "" && w <= minWeight {
			continue
		}

		t := observatory.METToMJD(met)
		t.Scale = scale
		toa := New(t, obsName)
		toa.Weight = w
		toa.Energy = energy
		toas = append(toas, toa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("toa: reading %s: %v", path, err)
	}
	return toas, nil
}

// eventsTable finds the EVENTS extension, falling back to the first
// binary table.
func eventsTable(f *fitsio.File) *fitsio.Table {
	var first *fitsio.Table
	for _, hdu := range f.HDUs() {
		t, ok := hdu.(*fitsio.Table)
		if !ok {
			continue
		}
		if strings.EqualFold(t.Name(), "EVENTS") {
			return t
		}
		if first == nil {
			first = t
		}
	}
	return first
}

func asFloat64(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int:
		return float64(x), true
	}
	return 0, false
}
