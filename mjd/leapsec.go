package mjd

import (
	"fmt"

	"github.com/soniakeys/unit"
)

// Leap second steps since the 1972 reform.  Each entry is the first MJD
// on which the TAI−UTC offset holds.
var leapSteps = []struct {
	mjd    int64
	taiutc float64
}{
	{41317, 10}, // 1972 Jan 1
	{41499, 11},
	{41683, 12},
	{42048, 13},
	{42413, 14},
	{42778, 15},
	{43144, 16},
	{43509, 17},
	{43874, 18},
	{44239, 19},
	{44786, 20},
	{45151, 21},
	{45516, 22},
	{46247, 23},
	{47161, 24},
	{47892, 25},
	{48257, 26},
	{48804, 27},
	{49169, 28},
	{49534, 29},
	{50083, 30},
	{50630, 31},
	{51179, 32}, // 1999 Jan 1
	{53736, 33},
	{54832, 34},
	{56109, 35},
	{57204, 36},
	{57754, 37}, // 2017 Jan 1
}

// TAIMinusUTC returns the TAI−UTC offset in effect at t.  Dates before
// the 1972 leap second reform are an error.
func TAIMinusUTC(t Time) (unit.Time, error) {
	if t.Day < leapSteps[0].mjd {
		return 0, fmt.Errorf("mjd: no TAI-UTC offset for MJD %d (before 1972)",
			t.Day)
	}
	for i := len(leapSteps) - 1; i >= 0; i-- {
		if t.Day >= leapSteps[i].mjd {
			return unit.Time(leapSteps[i].taiutc), nil
		}
	}
	return 0, fmt.Errorf("mjd: no TAI-UTC offset for MJD %d", t.Day)
}

// UTCToTT converts a UTC timestamp to Terrestrial Time,
// TT = UTC + (TAI−UTC) + 32.184 s.
func UTCToTT(t Time) (Time, error) {
	if t.Scale != UTC {
		return Time{}, fmt.Errorf("mjd: UTCToTT called with %s timestamp",
			t.Scale)
	}
	dt, err := TAIMinusUTC(t)
	if err != nil {
		return Time{}, err
	}
	r := t.AddSeconds(dt + TTMinusTAI)
	r.Scale = TT
	return r, nil
}
