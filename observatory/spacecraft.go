package observatory

import (
	"fmt"
	"os"
	"sort"

	"github.com/astrogo/fitsio"
	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/zpleunis/pint/ephem"
	"github.com/zpleunis/pint/mjd"
)

// FermiMJDRef is the Fermi mission reference epoch: mission elapsed time
// counts SI seconds of TT from this MJD.
var FermiMJDRef = mjd.Time{Day: 51910, Frac: 7.428703703703703e-4, Scale: mjd.TT}

// METToMJD converts Fermi mission elapsed time in seconds to a TT MJD.
func METToMJD(met float64) mjd.Time {
	return FermiMJDRef.AddSeconds(unit.Time(met))
}

// SpacecraftObs is an observatory whose geocentric position comes from a
// tabulated orbit file (an FT2-style FITS table with START times in
// mission elapsed seconds and SC_POSITION vectors in meters).  Its
// timestamps are TT on board, so it has no ground clock chain: clock
// corrections are identically zero.
type SpacecraftObs struct {
	name string
	mjd  []float64    // TT
	pos  []coord.Cart // geocentric, km
}

// NewSpacecraftObs reads the orbit table at path.  The table must hold
// at least two samples in increasing time order.
func NewSpacecraftObs(name, path string) (*SpacecraftObs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("observatory %s: %v", name, err)
	}
	defer f.Close()
	fits, err := fitsio.Open(f)
	if err != nil {
		return nil, fmt.Errorf("observatory %s: reading %s: %v", name, path, err)
	}
	defer fits.Close()

	var tbl *fitsio.Table
	for _, hdu := range fits.HDUs() {
		if t, ok := hdu.(*fitsio.Table); ok {
			tbl = t
			break
		}
	}
	if tbl == nil {
		return nil, fmt.Errorf(
			"observatory %s: no binary table in %s", name, path)
	}

	o := &SpacecraftObs{name: name}
	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, fmt.Errorf("observatory %s: reading %s: %v", name, path, err)
	}
	defer rows.Close()
	for rows.Next() {
		var rec struct {
			Start float64    `fits:"START"`
			Pos   [3]float32 `fits:"SC_POSITION"`
		}
		if err := rows.Scan(&rec); err != nil {
			return nil, fmt.Errorf("observatory %s: reading %s: %v",
				name, path, err)
		}
		o.mjd = append(o.mjd, METToMJD(rec.Start).Float())
		o.pos = append(o.pos, coord.Cart{
			X: float64(rec.Pos[0]) * 1e-3,
			Y: float64(rec.Pos[1]) * 1e-3,
			Z: float64(rec.Pos[2]) * 1e-3,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("observatory %s: reading %s: %v", name, path, err)
	}
	if len(o.mjd) < 2 {
		return nil, fmt.Errorf(
			"observatory %s: orbit file %s has %d samples, need at least 2",
			name, path, len(o.mjd))
	}
	if !sort.Float64sAreSorted(o.mjd) {
		return nil, fmt.Errorf(
			"observatory %s: orbit file %s times not increasing", name, path)
	}
	return o, nil
}

func (o *SpacecraftObs) Name() string         { return o.name }
func (o *SpacecraftObs) Aliases() []string    { return nil }
func (o *SpacecraftObs) TimeScale() mjd.Scale { return mjd.TT }

func (o *SpacecraftObs) ClockCorrections(ts []mjd.Time, inc Include) ([]unit.Time, error) {
	return make([]unit.Time, len(ts)), nil
}

// geo interpolates the geocentric position and velocity at MJD m.
func (o *SpacecraftObs) geo(m float64) (pos, vel coord.Cart, err error) {
	if m < o.mjd[0] || m > o.mjd[len(o.mjd)-1] {
		return pos, vel, fmt.Errorf(
			"observatory %s: MJD %.6f outside orbit file range [%.6f, %.6f]",
			o.name, m, o.mjd[0], o.mjd[len(o.mjd)-1])
	}
	i := sort.SearchFloat64s(o.mjd, m)
	if i == 0 {
		i = 1
	}
	dt := (o.mjd[i] - o.mjd[i-1]) * mjd.SecsPerDay
	f := (m - o.mjd[i-1]) / (o.mjd[i] - o.mjd[i-1])
	p0, p1 := o.pos[i-1], o.pos[i]
	pos = coord.Cart{
		X: p0.X + f*(p1.X-p0.X),
		Y: p0.Y + f*(p1.Y-p0.Y),
		Z: p0.Z + f*(p1.Z-p0.Z),
	}
	vel = coord.Cart{
		X: (p1.X - p0.X) / dt,
		Y: (p1.Y - p0.Y) / dt,
		Z: (p1.Z - p0.Z) / dt,
	}
	return pos, vel, nil
}

func (o *SpacecraftObs) PosVel(ts []mjd.Time, eph ephem.Ephemeris) ([]ephem.PosVel, error) {
	pvs := make([]ephem.PosVel, len(ts))
	for i, t := range ts {
		earth, err := eph.EarthPosVel(t)
		if err != nil {
			return nil, fmt.Errorf("observatory %s: %v", o.name, err)
		}
		pos, vel, err := o.geo(t.Float())
		if err != nil {
			return nil, err
		}
		sc := ephem.PosVel{Pos: pos, Vel: vel, Obj: o.name, Origin: "earth"}
		pv, err := ephem.Add(sc, earth)
		if err != nil {
			return nil, err
		}
		pvs[i] = pv
	}
	return pvs, nil
}

// TDBTime uses the geocentric TDB−TT term; the spacecraft-level
// refinement is below the orbit table accuracy.
func (o *SpacecraftObs) TDBTime(ts []mjd.Time, eph ephem.Ephemeris) ([]mjd.Time, error) {
	out := make([]mjd.Time, len(ts))
	for i, t := range ts {
		tt := t
		if t.Scale == mjd.UTC {
			var err error
			tt, err = mjd.UTCToTT(t)
			if err != nil {
				return nil, fmt.Errorf("observatory %s: %v", o.name, err)
			}
		}
		d, err := eph.TDBMinusTT(tt)
		if err != nil {
			return nil, fmt.Errorf("observatory %s: %v", o.name, err)
		}
		out[i] = mjd.New(tt.Day, tt.Frac+d.Day(), mjd.TDB)
	}
	return out, nil
}
