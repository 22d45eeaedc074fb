package model

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"

	"github.com/zpleunis/pint/mjd"
)

// Params is a pulsar timing model read from a par file.  Only the
// parameters this package times with are kept; unknown keys are
// ignored.
type Params struct {
	PSR string

	// equatorial position, when given
	RAJ, DECJ     unit.Angle
	HasEquatorial bool

	// ecliptic position, when given; preferred over equatorial
	ELONG, ELAT unit.Angle
	HasEcliptic bool

	F0     float64 // spin frequency, Hz
	F1, F2 float64 // frequency derivatives, Hz/s and Hz/s²
	PEPOCH mjd.Time

	DM float64 // dispersion measure, pc cm⁻³

	TZRMJD mjd.Time // phase reference epoch, barycentric
	HasTZR bool
}

// ParseParFile reads a TEMPO style par file: one "KEY value [fit
// [uncertainty]]" per line.  Epochs are taken as TDB MJDs.
func ParseParFile(path string) (*Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: %v", err)
	}
	defer f.Close()
	p, err := parsePar(bufio.NewScanner(f))
	if err != nil {
		return nil, fmt.Errorf("model: par file %s: %v", path, err)
	}
	return p, nil
}

func parsePar(s *bufio.Scanner) (*Params, error) {
	p := &Params{}
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) < 2 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		key, val := strings.ToUpper(fields[0]), fields[1]
		var err error
		switch key {
		case "PSR", "PSRJ", "PSRB":
			p.PSR = val
		case "RAJ":
			p.RAJ, err = parseHMS(val)
			p.HasEquatorial = true
		case "DECJ":
			p.DECJ, err = parseDMS(val)
			p.HasEquatorial = true
		case "ELONG", "LAMBDA":
			var d float64
			d, err = strconv.ParseFloat(val, 64)
			p.ELONG = unit.AngleFromDeg(d)
			p.HasEcliptic = true
		case "ELAT", "BETA":
			var d float64
			d, err = strconv.ParseFloat(val, 64)
			p.ELAT = unit.AngleFromDeg(d)
			p.HasEcliptic = true
		case "F0":
			p.F0, err = strconv.ParseFloat(cleanExp(val), 64)
		case "F1":
			p.F1, err = strconv.ParseFloat(cleanExp(val), 64)
		case "F2":
			p.F2, err = strconv.ParseFloat(cleanExp(val), 64)
		case "PEPOCH":
			p.PEPOCH, err = parseEpoch(val)
		case "DM":
			p.DM, err = strconv.ParseFloat(val, 64)
		case "TZRMJD":
			p.TZRMJD, err = parseEpoch(val)
			p.HasTZR = true
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %v", key, err)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if p.F0 == 0 {
		return nil, fmt.Errorf("no F0")
	}
	if !p.HasEquatorial && !p.HasEcliptic {
		return nil, fmt.Errorf("no sky position (RAJ/DECJ or ELONG/ELAT)")
	}
	return p, nil
}

// cleanExp maps the FORTRAN style exponent marker to Go's.
func cleanExp(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 'D' || r == 'd' {
			return 'e'
		}
		return r
	}, s)
}

// parseEpoch reads an MJD keeping the two-part split: the integer day
// and the fractional day are parsed separately so the fraction retains
// full float64 precision.
func parseEpoch(s string) (mjd.Time, error) {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		day, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return mjd.Time{}, err
		}
		return mjd.Time{Day: day, Scale: mjd.TDB}, nil
	}
	day, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return mjd.Time{}, err
	}
	frac, err := strconv.ParseFloat("0"+s[i:], 64)
	if err != nil {
		return mjd.Time{}, err
	}
	return mjd.New(day, frac, mjd.TDB), nil
}

// parseHMS reads right ascension as hh:mm:ss.s.
func parseHMS(s string) (unit.Angle, error) {
	h, m, sec, err := sexparts(s)
	if err != nil {
		return 0, err
	}
	if h < 0 {
		return 0, fmt.Errorf("negative right ascension %q", s)
	}
	return unit.Angle(unit.NewRA(h, m, sec).Rad()), nil
}

// parseDMS reads declination as ±dd:mm:ss.s.
func parseDMS(s string) (unit.Angle, error) {
	neg := byte(' ')
	if strings.HasPrefix(s, "-") {
		neg, s = '-', s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	d, m, sec, err := sexparts(s)
	if err != nil {
		return 0, err
	}
	return unit.NewAngle(neg, d, m, sec), nil
}

func sexparts(s string) (a, b int, c float64, err error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("bad sexagesimal %q", s)
	}
	a, err = strconv.Atoi(parts[0])
	if err != nil {
		return
	}
	if len(parts) > 1 {
		b, err = strconv.Atoi(parts[1])
		if err != nil {
			return
		}
	}
	if len(parts) > 2 {
		c, err = strconv.ParseFloat(parts[2], 64)
	}
	return
}
