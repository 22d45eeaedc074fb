// Package clockfile reads tabulated observatory clock correction files
// and interpolates them at requested epochs.
//
// Two file formats are supported.  The TEMPO time.dat format holds
// records for many sites in one file, with corrections in microseconds,
// and needs a one character site code to select records.  The TEMPO2
// format holds one correction sequence per file as two columns, MJD and
// seconds, with '#' comment lines.
package clockfile

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

// Format selects the clock file layout.
type Format int

const (
	Tempo Format = iota
	Tempo2
)

func (f Format) String() string {
	switch f {
	case Tempo:
		return "tempo"
	case Tempo2:
		return "tempo2"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ClockFile is an ordered sequence of (MJD, correction) samples read from
// a single file (for one site, in the TEMPO case).
type ClockFile struct {
	Path string
	Fmt  Format

	mjd []float64
	clk []unit.Time
}

// Read parses the clock file at path.  For the Tempo format, obscode
// selects the site records and must not be empty.  Lines that do not
// parse as data are quietly ignored; a file yielding no samples at all
// is an error.  Sample times must increase.
func Read(path string, format Format, obscode string) (*ClockFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := &ClockFile{Path: path, Fmt: format}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		switch format {
		case Tempo:
			c.parseTempo(line, obscode)
		case Tempo2:
			c.parseTempo2(line)
		default:
			return nil, fmt.Errorf("clockfile: unknown format %d", format)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("clockfile %s: %v", path, err)
	}
	if len(c.mjd) == 0 {
		if format == Tempo {
			return nil, fmt.Errorf(
				"clockfile %s: no samples for site code %q", path, obscode)
		}
		return nil, fmt.Errorf("clockfile %s: no samples", path)
	}
	if !sort.Float64sAreSorted(c.mjd) {
		return nil, fmt.Errorf("clockfile %s: sample times not increasing", path)
	}
	return c, nil
}

// time.dat records: MJD, two corrections in microseconds, site code.
func (c *ClockFile) parseTempo(line, obscode string) {
	fs := strings.Fields(line)
	if len(fs) < 4 {
		return
	}
	m, err := strconv.ParseFloat(fs[0], 64)
	if err != nil || m < 30000 || m > 80000 {
		return
	}
	c1, err := strconv.ParseFloat(fs[1], 64)
	if err != nil {
		return
	}
	c2, err := strconv.ParseFloat(fs[2], 64)
	if err != nil {
		return
	}
	if !strings.EqualFold(fs[3], obscode) {
		return
	}
	c.mjd = append(c.mjd, m)
	c.clk = append(c.clk, unit.Time((c2-c1)*1e-6))
}

func (c *ClockFile) parseTempo2(line string) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fs := strings.Fields(line)
	if len(fs) < 2 {
		return
	}
	m, err := strconv.ParseFloat(fs[0], 64)
	if err != nil {
		return
	}
	v, err := strconv.ParseFloat(fs[1], 64)
	if err != nil {
		return
	}
	c.mjd = append(c.mjd, m)
	c.clk = append(c.clk, unit.Time(v))
}

// Range returns the first and last tabulated MJD.
func (c *ClockFile) Range() (first, last float64) {
	return c.mjd[0], c.mjd[len(c.mjd)-1]
}

// Len returns the number of samples.
func (c *ClockFile) Len() int { return len(c.mjd) }

// Evaluate returns the correction at MJD m by linear interpolation
// between the bracketing samples.  An epoch outside the tabulated range
// is an error: silently clamping or extrapolating a clock table can
// corrupt timing results at the microsecond level.
func (c *ClockFile) Evaluate(m float64) (unit.Time, error) {
	first, last := c.Range()
	if m < first || m > last {
		return 0, fmt.Errorf(
			"clockfile %s: MJD %.6f outside tabulated range [%.6f, %.6f]",
			c.Path, m, first, last)
	}
	i := sort.SearchFloat64s(c.mjd, m)
	if i < len(c.mjd) && c.mjd[i] == m {
		return c.clk[i], nil
	}
	// c.mjd[i-1] < m < c.mjd[i]
	f := (m - c.mjd[i-1]) / (c.mjd[i] - c.mjd[i-1])
	return c.clk[i-1] + unit.Time(f)*(c.clk[i]-c.clk[i-1]), nil
}

// EvaluateAll evaluates the table at each of a sequence of epochs.
func (c *ClockFile) EvaluateAll(ms []float64) ([]unit.Time, error) {
	r := make([]unit.Time, len(ms))
	for i, m := range ms {
		v, err := c.Evaluate(m)
		if err != nil {
			return nil, err
		}
		r[i] = v
	}
	return r, nil
}
