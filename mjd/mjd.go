// Package mjd provides two-part Modified Julian Date timestamps tagged
// with an astronomical time scale.
//
// Pulsar timing needs sub-microsecond resolution on epochs tens of
// thousands of days from the MJD origin, which a single float64 cannot
// represent.  Time therefore keeps the integer day and the fraction of
// day separately, and arithmetic renormalizes the fraction so precision
// of small shifts is never lost against the day count.
package mjd

import (
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
)

// JDMJD is the offset of Julian Date over Modified Julian Date.
const JDMJD = 2400000.5

// SecsPerDay is the length of a day in SI seconds for all supported scales.
const SecsPerDay = 86400.

// TTMinusTAI is the defining offset of Terrestrial Time over TAI.
var TTMinusTAI = unit.Time(32.184)

// Scale identifies an astronomical time scale.
type Scale int

const (
	UTC Scale = iota
	TT
	TDB
)

func (s Scale) String() string {
	switch s {
	case UTC:
		return "utc"
	case TT:
		return "tt"
	case TDB:
		return "tdb"
	}
	return fmt.Sprintf("scale(%d)", int(s))
}

// Time is a two-part MJD.  Day holds the integer day number, Frac the
// fraction of day in [0, 1).
type Time struct {
	Day   int64
	Frac  float64
	Scale Scale
}

// New returns a normalized Time.  Frac may be passed outside [0, 1);
// whole days are folded into Day.
func New(day int64, frac float64, s Scale) Time {
	d := math.Floor(frac)
	return Time{day + int64(d), frac - d, s}
}

// FromFloat splits a single-float MJD into a two-part Time.  Resolution
// of the input is limited to about a microsecond at current epochs.
func FromFloat(m float64, s Scale) Time {
	return New(0, m, s)
}

// FromCalendar converts a Gregorian calendar date to a Time.
// The day may have a fractional part.
func FromCalendar(y, m int, d float64, s Scale) Time {
	return FromFloat(julian.CalendarGregorianToJD(y, m, d)-JDMJD, s)
}

// Calendar returns the Gregorian calendar date of t.
func (t Time) Calendar() (y, m int, d float64) {
	return julian.JDToCalendar(t.JD())
}

// Float returns the MJD as a single float64, losing the two-part split.
func (t Time) Float() float64 {
	return float64(t.Day) + t.Frac
}

// JD returns the Julian Date as a single float64.
func (t Time) JD() float64 {
	return t.Float() + JDMJD
}

// AddSeconds returns t shifted by dt.  The shift is applied to the
// fractional part only, preserving the two-part split.
func (t Time) AddSeconds(dt unit.Time) Time {
	return New(t.Day, t.Frac+dt.Day(), t.Scale)
}

// SubSeconds returns t shifted earlier by dt.
func (t Time) SubSeconds(dt unit.Time) Time {
	return New(t.Day, t.Frac-dt.Day(), t.Scale)
}

// Sub returns the elapsed time t−u.  Scales are not converted; comparing
// timestamps on different scales is a caller error.
func (t Time) Sub(u Time) unit.Time {
	return unit.TimeFromDay(float64(t.Day-u.Day) + (t.Frac - u.Frac))
}

// Before reports whether t is earlier than u.
func (t Time) Before(u Time) bool {
	return t.Day < u.Day || t.Day == u.Day && t.Frac < u.Frac
}

// After reports whether t is later than u.
func (t Time) After(u Time) bool {
	return u.Before(t)
}

// Equal reports whether t and u name the same instant on the same scale.
func (t Time) Equal(u Time) bool {
	return t.Day == u.Day && t.Frac == u.Frac && t.Scale == u.Scale
}

func (t Time) String() string {
	return fmt.Sprintf("%.10f %s", t.Float(), t.Scale)
}
