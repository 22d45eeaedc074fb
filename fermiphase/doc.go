/*
Command fermiphase computes pulse phases for Fermi LAT photon events
and reports the significance of pulsations.

Program overview

Input is a Fermi FT1 photon event file and a pulsar ephemeris in the
TEMPO par file format.  Each photon arrival time is corrected to the
solar system barycenter, the absolute spin phase of the pulsar at that
time is evaluated, and the fractional phases are tested for uniformity
with the weighted H-test.  Output is the H-test value and its
single-trial Gaussian significance.

Photon arrival times in the FT1 file are mission elapsed seconds of TT.
A file that has already been barycentered (TIMESYS = TDB) is detected
and its times are used directly.  For a topocentric file, give the
matching FT2 spacecraft orbit file with -ft2 so arrival times can be
referred from the spacecraft to the geocenter and on to the barycenter.

Sample run:

  fermiphase -ft2 lat_spacecraft.fits -plot \
      lat_events.fits J0614-3329.par CALC

  Read 20523 photons from lat_events.fits
  J0614-3329 at RA 6ʰ14ᵐ10ˢ.3, Dec -33°29′54″
  20523 TOAs from 1 observatories, MJD 54683.155 to 55468.911
  Htest : 471.30 (20.51 sigma)
  Wrote profile.png

Photon weights

The third command line argument names the probability weight for each
photon.  It is normally a column written into the FT1 file by gtsrcprob,
but CALC computes weights from the photon energies instead, as a
Gaussian in log10 energy around the -logeref reference, and NONE uses
unit weights.  Weighted statistics reject background photons without a
hard energy cut.

Phase output

With -addphase, the surviving events are written back with a
PULSE_PHASE column holding the fractional phase in [0,1).  By default
the event file is replaced in place through an atomic rename; -outfile
chooses another destination.  With -hout, the H-test value is also
recorded in a YAML results store keyed by pulsar name, so repeated runs
at different weight settings accumulate in one file.

Ephemerides

Solar system geometry comes from the VSOP87 planetary theory by
default; the data files are located through the VSOP87 environment
variable.  -ephem analytic selects a low precision solar ephemeris that
needs no data files, adequate when second-level timing is enough.

Clock files

Ground observatory clock corrections are resolved through the
PINT_CLOCK, TEMPO and TEMPO2 environment variables.  The Fermi
spacecraft clock needs none; GPS and BIPM corrections are not applied
to photon data.
*/
package main
