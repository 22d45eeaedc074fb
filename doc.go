/*
Package pint is a pulsar timing toolkit: observatory clock corrections,
solar system barycentering, and pulse phase computation for photon
arrival data.

Contents

  Overview
  Packages
  Commands
  Clock and ephemeris data

Overview

A pulse time of arrival recorded at a telescope is a reading of that
observatory's clock.  Turning it into something a pulsar timing model
can use takes two steps.  First the reading is corrected onto a uniform
time scale: observatory clock against GPS, GPS against UTC, UTC through
TAI to the BIPM realization of terrestrial time.  Then the corrected
time is referred to the solar system barycenter, removing the light
travel time across Earth's orbit, the gravitational delay of the Sun,
and, for radio data, interstellar dispersion.  What is left is a time
series regular enough that the rotation of a neutron star can be
counted cycle by cycle across years of data.

The packages here implement those steps with the arrival time kept as
an integer day and a fractional day, so nanosecond structure survives
arithmetic on fifty thousand day epochs.

Packages

Package mjd holds the two-part Modified Julian Date type and its time
scales.  Package clockfile reads TEMPO and TEMPO2 format clock
correction tables.  Package ephem supplies Earth and planet positions,
from the VSOP87 planetary theory or a data-free analytic
approximation.  Package itrf rotates Earth-fixed site coordinates into
celestial axes.  Package observatory ties these together: ground
stations with chained clock corrections, spacecraft with tabulated
orbits, the barycenter pseudo-site, and a registry for looking any of
them up by name or alias.  Package toa loads arrival times, including
Fermi LAT photon events, and computes their barycentric columns.
Package model parses par files and evaluates absolute spin phase.
Package eventstats provides the H-test for pulsed significance.

Commands

The fermiphase command phase-folds Fermi LAT photon events against a
par file and reports the weighted H-test.  The obsimport command
converts the Minor Planet Center observatory catalog into a site file
the registry can load.

Clock and ephemeris data

Clock correction tables are found through the PINT_CLOCK environment
variable, falling back to the TEMPO and TEMPO2 conventions; VSOP87
ephemeris files are found through the VSOP87 environment variable.
None of the data is bundled.
*/
package pint
