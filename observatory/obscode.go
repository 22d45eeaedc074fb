package observatory

import (
	"fmt"
	"math"

	"github.com/soniakeys/mpcformat"
	"github.com/soniakeys/observation"

	"github.com/zpleunis/pint/clockfile"
	"github.com/zpleunis/pint/ephem"
)

// AU in meters, the scale the catalog reader applies to the parallax
// constants.
const auM = ephem.AUKm * 1e3

// SitesFromObscodeDat reads an MPC obscode.dat observatory catalog and
// converts each ground station's parallax constants into a geocentric
// ITRF site configuration.  The catalog reader delivers the longitude as
// an angle east of Greenwich and rho sin/cos phi in units of AU, so
// multiplying by one AU in meters recovers the geocentric offsets
// directly.  Space telescopes (parallax constants absent) are skipped.
//
// Sites imported this way get the generic TEMPO2 clock file convention;
// MPC codes carry no tempo site code for time.dat lookup.
func SitesFromObscodeDat(path string) ([]Config, error) {
	pm, err := mpcformat.ReadObscodeDatFile(path)
	if err != nil {
		return nil, fmt.Errorf("observatory: obscode catalog %s: %v", path, err)
	}
	var sites []Config
	for code, par := range pm {
		cfg, ok := siteFromParallax(code, par)
		if ok {
			sites = append(sites, cfg)
		}
	}
	if len(sites) == 0 {
		return nil, fmt.Errorf(
			"observatory: obscode catalog %s: no ground stations", path)
	}
	return sites, nil
}

func siteFromParallax(code string, par *observation.ParallaxConst) (Config, bool) {
	if par == nil {
		return Config{}, false
	}
	sl, cl := math.Sincos(par.Longitude.Rad())
	rcos := par.RhoCosPhi * auM
	rsin := par.RhoSinPhi * auM
	cfg := DefaultConfig(code, []float64{rcos * cl, rcos * sl, rsin})
	cfg.ClockFile = code + ".clk"
	cfg.ClockDir = "TEMPO2"
	cfg.ClockFmt = clockfile.Tempo2
	return cfg, true
}
