/*
Command obsimport builds a YAML observatory site file from the Minor
Planet Center observatory catalog.

  Usage: obsimport [options] <obscode.dat> <site-file>
    -f=false: download the catalog first
    -v=false: display version

The catalog lists observatory codes with parallax constants: longitude
as a fraction of a circle east of Greenwich, and rho sin/cos phi
factors of the geocentric distance.  obsimport converts each ground
station to geocentric ITRF XYZ coordinates in meters and writes the
result as a site file.  Space telescopes, which carry no parallax
constants, are skipped.

Sites imported this way get the TEMPO2 clock file convention with a
per-code clock file name; most will never have a clock file, which only
matters if clock corrections are actually requested for them.

The output loads into the observatory registry alongside the built-in
radio sites, giving pulsar timing access to the roughly two thousand
MPC stations by code.
*/
package main
