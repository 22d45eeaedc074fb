package observatory

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/zpleunis/pint/clockfile"
	"github.com/zpleunis/pint/ephem"
	"github.com/zpleunis/pint/itrf"
	"github.com/zpleunis/pint/mjd"
)

// ClockDirEnv names the environment variable for the packaged clock
// data directory searched first by all path resolution.
const ClockDirEnv = "PINT_CLOCK"

// Config describes a ground observatory.  Name and a 3-element ITRF
// position in meters are required; DefaultConfig fills the conventional
// clock chain settings.
type Config struct {
	Name      string    `yaml:"name"`
	ITRF      []float64 `yaml:"itrf"`
	TempoCode string    `yaml:"tempo_code"`
	ITOACode  string    `yaml:"itoa_code"`
	Aliases   []string  `yaml:"aliases"`

	ClockFile   string           `yaml:"clock_file"`
	ClockDir    string           `yaml:"clock_dir"`
	ClockFmt    clockfile.Format `yaml:"-"`
	IncludeGPS  bool             `yaml:"-"`
	IncludeBIPM bool             `yaml:"-"`
	BIPMVersion string           `yaml:"bipm_version"`
}

// DefaultConfig returns a Config with the conventional clock chain: the
// TEMPO time.dat site table, GPS and BIPM stages enabled, BIPM2015.
func DefaultConfig(name string, itrfXYZ []float64) Config {
	return Config{
		Name:        name,
		ITRF:        itrfXYZ,
		ClockFile:   "time.dat",
		ClockDir:    "TEMPO",
		ClockFmt:    clockfile.Tempo,
		IncludeGPS:  true,
		IncludeBIPM: true,
		BIPMVersion: "BIPM2015",
	}
}

// TopoObs is an observatory at a fixed location on the surface of the
// Earth.  Clock correction tables are read on first use and cached for
// the life of the instance.
type TopoObs struct {
	name      string
	aliases   []string
	tempoCode string
	itrf      coord.Cart // meters

	clockFile   string
	clockDir    string
	clockFmt    clockfile.Format
	includeGPS  bool
	includeBIPM bool
	bipmVersion string

	// lazily loaded tables, one slot per chain stage
	clock     *clockfile.ClockFile
	gpsClock  *clockfile.ClockFile
	bipmClock *clockfile.ClockFile
}

// NewTopoObs validates cfg and builds the observatory.  ITRF coordinates
// must be a 3-vector, and the TEMPO time.dat clock convention requires a
// tempo site code for record lookup.
func NewTopoObs(cfg Config) (*TopoObs, error) {
	if cfg.ITRF == nil {
		return nil, fmt.Errorf(
			"observatory %q: ITRF coordinates not given", cfg.Name)
	}
	if len(cfg.ITRF) != 3 {
		return nil, fmt.Errorf(
			"observatory %q: ITRF coordinates have %d components, want 3",
			cfg.Name, len(cfg.ITRF))
	}
	if cfg.ClockDir == "TEMPO" && cfg.ClockFile == "time.dat" &&
		cfg.TempoCode == "" {
		return nil, fmt.Errorf(
			"observatory %q: no tempo code set for time.dat clock lookup",
			cfg.Name)
	}
	o := &TopoObs{
		name:        cfg.Name,
		tempoCode:   cfg.TempoCode,
		itrf:        coord.Cart{X: cfg.ITRF[0], Y: cfg.ITRF[1], Z: cfg.ITRF[2]},
		clockFile:   cfg.ClockFile,
		clockDir:    cfg.ClockDir,
		clockFmt:    cfg.ClockFmt,
		includeGPS:  cfg.IncludeGPS,
		includeBIPM: cfg.IncludeBIPM,
		bipmVersion: cfg.BIPMVersion,
	}
	o.aliases = append(o.aliases, cfg.Aliases...)
	for _, code := range []string{cfg.TempoCode, cfg.ITOACode} {
		if code != "" {
			o.aliases = append(o.aliases, code)
		}
	}
	return o, nil
}

func (o *TopoObs) Name() string         { return o.name }
func (o *TopoObs) Aliases() []string    { return o.aliases }
func (o *TopoObs) TimeScale() mjd.Scale { return mjd.UTC }

// ITRF returns the site position in meters.
func (o *TopoObs) ITRF() coord.Cart { return o.itrf }

// datapath looks a file up in the packaged clock data directory.
func datapath(name string) (string, bool) {
	dir := os.Getenv(ClockDirEnv)
	if dir == "" {
		return "", false
	}
	p := filepath.Join(dir, name)
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

func envClockDir(env, name string) (string, bool) {
	dir := os.Getenv(env)
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, "clock", name), true
}

// ClockPath resolves the site clock file per the configured directory
// convention.  False means the path could not be resolved; the failure
// is reported when a correction is actually requested.
func (o *TopoObs) ClockPath() (string, bool) {
	switch o.clockDir {
	case "PINT":
		return datapath(o.clockFile)
	case "TEMPO":
		return envClockDir("TEMPO", o.clockFile)
	case "TEMPO2":
		return envClockDir("TEMPO2", o.clockFile)
	}
	return filepath.Join(o.clockDir, o.clockFile), true
}

// GPSPath resolves the UTC(GPS)→UTC clock file: packaged data first,
// then $TEMPO2/clock.
func (o *TopoObs) GPSPath() (string, bool) {
	const fname = "gps2utc.clk"
	if p, ok := datapath(fname); ok {
		return p, true
	}
	return envClockDir("TEMPO2", fname)
}

// BIPMPath resolves the TAI→TT(BIPM) clock file for the configured BIPM
// version.
func (o *TopoObs) BIPMPath() (string, bool) {
	fname := "tai2tt_" + strings.ToLower(o.bipmVersion) + ".clk"
	if p, ok := datapath(fname); ok {
		return p, true
	}
	return envClockDir("TEMPO2", fname)
}

func (o *TopoObs) siteClock() (*clockfile.ClockFile, error) {
	if o.clock == nil {
		path, ok := o.ClockPath()
		if !ok {
			return nil, fmt.Errorf(
				"observatory %s: missing clock file %q (clock dir %q)",
				o.name, o.clockFile, o.clockDir)
		}
		log.Printf("Observatory %s, loading clock file %s", o.name, path)
		c, err := clockfile.Read(path, o.clockFmt, o.tempoCode)
		if err != nil {
			return nil, fmt.Errorf("observatory %s: %v", o.name, err)
		}
		o.clock = c
	}
	return o.clock, nil
}

func (o *TopoObs) gps() (*clockfile.ClockFile, error) {
	if o.gpsClock == nil {
		path, ok := o.GPSPath()
		if !ok {
			return nil, fmt.Errorf(
				"observatory %s: missing GPS clock file gps2utc.clk", o.name)
		}
		log.Printf("Observatory %s, loading GPS clock file %s", o.name, path)
		c, err := clockfile.Read(path, clockfile.Tempo2, "")
		if err != nil {
			return nil, fmt.Errorf("observatory %s: %v", o.name, err)
		}
		o.gpsClock = c
	}
	return o.gpsClock, nil
}

func (o *TopoObs) bipm() (*clockfile.ClockFile, error) {
	if o.bipmClock == nil {
		path, ok := o.BIPMPath()
		if !ok {
			return nil, fmt.Errorf(
				"observatory %s: cannot find TT BIPM file for version %q",
				o.name, o.bipmVersion)
		}
		log.Printf("Observatory %s, loading BIPM clock file %s", o.name, path)
		c, err := clockfile.Read(path, clockfile.Tempo2, "")
		if err != nil {
			return nil, fmt.Errorf(
				"observatory %s: cannot read TT BIPM file for version %q: %v",
				o.name, o.bipmVersion, err)
		}
		o.bipmClock = c
	}
	return o.bipmClock, nil
}

// ClockCorrections evaluates the additive chain
// UTC(site)→UTC(GPS)→TAI→TT(BIPM) at each timestamp.  The site stage is
// always applied; the GPS and BIPM stages run when both the observatory
// configuration and inc enable them.  The BIPM table encodes
// TT(BIPM)−TAI, so the fixed 32.184 s TAI→TT offset is removed to avoid
// counting it twice.
func (o *TopoObs) ClockCorrections(ts []mjd.Time, inc Include) ([]unit.Time, error) {
	c, err := o.siteClock()
	if err != nil {
		return nil, err
	}
	corr := make([]unit.Time, len(ts))
	for i, t := range ts {
		v, err := c.Evaluate(t.Float())
		if err != nil {
			return nil, fmt.Errorf("observatory %s: %v", o.name, err)
		}
		corr[i] = v
	}
	if o.includeGPS && inc.GPS {
		g, err := o.gps()
		if err != nil {
			return nil, err
		}
		for i, t := range ts {
			v, err := g.Evaluate(t.Float())
			if err != nil {
				return nil, fmt.Errorf("observatory %s: %v", o.name, err)
			}
			corr[i] += v
		}
	}
	if o.includeBIPM && inc.BIPM {
		b, err := o.bipm()
		if err != nil {
			return nil, err
		}
		for i, t := range ts {
			v, err := b.Evaluate(t.Float())
			if err != nil {
				return nil, fmt.Errorf("observatory %s: %v", o.name, err)
			}
			corr[i] += v - mjd.TTMinusTAI
		}
	}
	return corr, nil
}

// PosVel returns the site with respect to the solar system barycenter:
// the Earth from the ephemeris plus the site from Earth rotation, summed
// at the same epoch.
func (o *TopoObs) PosVel(ts []mjd.Time, eph ephem.Ephemeris) ([]ephem.PosVel, error) {
	pvs := make([]ephem.PosVel, len(ts))
	for i, t := range ts {
		earth, err := eph.EarthPosVel(t)
		if err != nil {
			return nil, fmt.Errorf("observatory %s: %v", o.name, err)
		}
		site := itrf.GCRSPosVel(o.itrf, o.name, t)
		pv, err := ephem.Add(site, earth)
		if err != nil {
			return nil, err
		}
		pvs[i] = pv
	}
	return pvs, nil
}

// TDBTime converts clock-corrected UTC timestamps to topocentric TDB.
// The topocentric TDB−TT differs from the geocentric value by
// v_earth·r_site/c², the first order light-time term of Moyer (1981);
// Earth's velocity changes negligibly over the few millisecond
// topocentric delay, so only the position needs the site-level
// distinction.  The shift is applied to the fractional day only,
// preserving the two-part split.
func (o *TopoObs) TDBTime(ts []mjd.Time, eph ephem.Ephemeris) ([]mjd.Time, error) {
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
		geo, err := eph.TDBMinusTT(tt)
		if err != nil {
			return nil, fmt.Errorf("observatory %s: %v", o.name, err)
		}
		earth, err := eph.EarthPosVel(tt)
		if err != nil {
			return nil, fmt.Errorf("observatory %s: %v", o.name, err)
		}
		site := itrf.GCRSPosVel(o.itrf, o.name, tt)
		topoCorr := unit.Time(
			earth.Vel.Dot(&site.Pos) / (ephem.CLight * ephem.CLight))
		tdbtt := geo - topoCorr
		out[i] = mjd.New(tt.Day, tt.Frac+tdbtt.Day(), mjd.TDB)
	}
	return out, nil
}
