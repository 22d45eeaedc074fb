package fermiprog

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/astrogo/fitsio"

	"github.com/zpleunis/pint/mjd"
	"github.com/zpleunis/pint/observatory"
	"github.com/zpleunis/pint/toa"
)

// writePhases writes the event table with a PULSE_PHASE column to path.
// The output holds the surviving events only: mission elapsed time,
// energy, the weight column when one was read from the input, and the
// phase.  Writing goes through a temporary file and a rename, so
// overwriting the input cannot leave it half written.  An event/phase
// count mismatch aborts before anything is created.
func writePhases(path string, tt *toa.TOAs, phases []float64,
	weightcol string) error {
	if len(phases) != len(tt.TOAs) {
		return fmt.Errorf(
			"have %d phases for %d events; refusing to write %s",
			len(phases), len(tt.TOAs), path)
	}

	cols := []fitsio.Column{
		{Name: "TIME", Format: "D", Unit: "s"},
		{Name: "ENERGY", Format: "E", Unit: "MeV"},
		{Name: "PULSE_PHASE", Format: "D"},
	}
	withWeights := weightcol != "" && weightcol != toa.CalcWeights
	if withWeights {
		cols = append(cols, fitsio.Column{Name: weightcol, Format: "D"})
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".fermiphase-*.fits")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	out, err := fitsio.Create(tmp)
	if err != nil {
		return err
	}
	phdu, err := fitsio.NewPrimaryHDU(nil)
	if err != nil {
		return err
	}
	if err := out.Write(phdu); err != nil {
		return err
	}
	tbl, err := fitsio.NewTable("EVENTS", cols, fitsio.BINARY_TBL)
	if err != nil {
		return err
	}

	timesys := "TT"
	if len(tt.TOAs) > 0 && tt.TOAs[0].MJD.Scale == mjd.TDB {
		timesys = "TDB"
	}
	err = tbl.Header().Append(
		fitsio.Card{Name: "TIMESYS", Value: timesys,
			Comment: "time scale of the TIME column"},
		fitsio.Card{Name: "MJDREFI", Value: int(observatory.FermiMJDRef.Day),
			Comment: "MJD of MET epoch, integer part"},
		fitsio.Card{Name: "MJDREFF", Value: observatory.FermiMJDRef.Frac,
			Comment: "MJD of MET epoch, fractional part"},
	)
	if err != nil {
		return err
	}

	// Rows go through a tagged struct; the fitsio map form is read-only.
	ref := observatory.FermiMJDRef
	row := reflect.New(phaseRowType(weightcol, withWeights)).Elem()
	for i, t := range tt.TOAs {
		row.Field(0).SetFloat(t.MJD.Sub(ref).Sec())
		row.Field(1).SetFloat(t.Energy)
		row.Field(2).SetFloat(phases[i])
		if withWeights {
			row.Field(3).SetFloat(t.Weight)
		}
		if err := tbl.Write(row.Addr().Interface()); err != nil {
			return err
		}
	}
	if err := out.Write(tbl); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// phaseRowType builds the row struct for the output table.  The weight
// column keeps whatever name it had in the input, so the struct and its
// fits tags are assembled at run time.
func phaseRowType(weightcol string, withWeights bool) reflect.Type {
	fields := []reflect.StructField{
		{Name: "Time", Type: reflect.TypeOf(float64(0)), Tag: `fits:"TIME"`},
		{Name: "Energy", Type: reflect.TypeOf(float32(0)), Tag: `fits:"ENERGY"`},
		{Name: "Phase", Type: reflect.TypeOf(float64(0)), Tag: `fits:"PULSE_PHASE"`},
	}
	if withWeights {
		fields = append(fields, reflect.StructField{
			Name: "Weight",
			Type: reflect.TypeOf(float64(0)),
			Tag:  reflect.StructTag(`fits:"` + weightcol + `"`),
		})
	}
	return reflect.StructOf(fields)
}
