// Package observatory models the sites that record pulse times of
// arrival: ground stations with ITRF coordinates and chained clock
// corrections, spacecraft with tabulated orbit positions, and the
// solar system barycenter pseudo-site.  Instances live in an explicit
// Registry keyed by name and aliases.
package observatory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/soniakeys/unit"

	"github.com/zpleunis/pint/ephem"
	"github.com/zpleunis/pint/mjd"
)

// Include gates the optional clock correction stages for one request.
// A stage runs only when both the observatory configuration and the
// request enable it.
type Include struct {
	GPS  bool
	BIPM bool
}

// IncludeAll enables every configured stage.
var IncludeAll = Include{GPS: true, BIPM: true}

// Observatory is a site that can time pulses.
type Observatory interface {
	Name() string
	Aliases() []string

	// TimeScale is the scale raw timestamps from this site carry.
	TimeScale() mjd.Scale

	// ClockCorrections returns, for each timestamp, the elapsed-time
	// correction to add to it.  It never returns shifted timestamps;
	// callers decide when to apply the correction.
	ClockCorrections(ts []mjd.Time, inc Include) ([]unit.Time, error)

	// PosVel returns the site with respect to the solar system
	// barycenter for each timestamp.
	PosVel(ts []mjd.Time, eph ephem.Ephemeris) ([]ephem.PosVel, error)

	// TDBTime converts clock-corrected timestamps to the TDB scale as
	// seen from the site.
	TDBTime(ts []mjd.Time, eph ephem.Ephemeris) ([]mjd.Time, error)
}

// Registry is a name and alias lookup of observatories.  Lookups are
// case insensitive.  Registration of a name or alias already present is
// an error, never a silent overwrite.
type Registry struct {
	m map[string]Observatory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[string]Observatory)}
}

// Register adds o under its name and all its aliases.
func (r *Registry) Register(o Observatory) error {
	keys := append([]string{o.Name()}, o.Aliases()...)
	for _, k := range keys {
		k = strings.ToLower(k)
		if prev, ok := r.m[k]; ok {
			return fmt.Errorf(
				"observatory: %q already registered (by %s)", k, prev.Name())
		}
	}
	for _, k := range keys {
		r.m[strings.ToLower(k)] = o
	}
	return nil
}

// Lookup finds an observatory by name or alias.
func (r *Registry) Lookup(name string) (Observatory, error) {
	if o, ok := r.m[strings.ToLower(name)]; ok {
		return o, nil
	}
	return nil, fmt.Errorf("observatory: %q not registered", name)
}

// Names returns the sorted primary names of all registered observatories.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	var ns []string
	for _, o := range r.m {
		if !seen[o.Name()] {
			seen[o.Name()] = true
			ns = append(ns, o.Name())
		}
	}
	sort.Strings(ns)
	return ns
}

// Barycenter is the pseudo-observatory for data already reduced to the
// solar system barycenter: zero clock corrections, zero position, and
// timestamps already on the TDB scale.
type Barycenter struct{}

func (Barycenter) Name() string         { return "Barycenter" }
func (Barycenter) Aliases() []string    { return []string{"SSB", "@"} }
func (Barycenter) TimeScale() mjd.Scale { return mjd.TDB }

func (Barycenter) ClockCorrections(ts []mjd.Time, inc Include) ([]unit.Time, error) {
	return make([]unit.Time, len(ts)), nil
}

func (Barycenter) PosVel(ts []mjd.Time, eph ephem.Ephemeris) ([]ephem.PosVel, error) {
	pvs := make([]ephem.PosVel, len(ts))
	for i := range pvs {
		pvs[i] = ephem.PosVel{Obj: "barycenter", Origin: "ssb"}
	}
	return pvs, nil
}

func (Barycenter) TDBTime(ts []mjd.Time, eph ephem.Ephemeris) ([]mjd.Time, error) {
	out := make([]mjd.Time, len(ts))
	for i, t := range ts {
		t.Scale = mjd.TDB
		out[i] = t
	}
	return out, nil
}
