// Package fermiprog is the working code of the fermiphase command: it
// loads Fermi photon events, times them against a pulsar model, and
// reports the significance of pulsations.
package fermiprog

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	xrand "golang.org/x/exp/rand"
	"github.com/soniakeys/exit"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/zpleunis/pint/ephem"
	"github.com/zpleunis/pint/eventstats"
	"github.com/zpleunis/pint/model"
	"github.com/zpleunis/pint/observatory"
	"github.com/zpleunis/pint/toa"
)

const versionString = "fermiphase version 0.2 Go source."

func Main() {
	defer exit.Handler()
	cl := parseCommandLine()

	par, err := model.ParseParFile(cl.parfile)
	if err != nil {
		exit.Log(err)
	}
	reg, err := observatory.DefaultRegistry()
	if err != nil {
		exit.Log(err)
	}
	if cl.ft2 != "" {
		sc, err := observatory.NewSpacecraftObs("Fermi", cl.ft2)
		if err != nil {
			exit.Log(err)
		}
		if err := reg.Register(sc); err != nil {
			exit.Log(err)
		}
	}
	eph, err := ephem.Open(cl.ephem)
	if err != nil {
		exit.Log(err)
	}

	toas, err := toa.LoadFermiTOAs(cl.eventfile, cl.weightcol,
		cl.minWeight, cl.logeref)
	if err != nil {
		exit.Log(err)
	}
	log.Printf("Read %d photons from %s", len(toas), cl.eventfile)
	if cl.minMJD > 0 {
		toas = toa.FilterMinMJD(toas, cl.minMJD)
	}
	if cl.maxMJD > 0 {
		toas = toa.FilterMaxMJD(toas, cl.maxMJD)
	}
	if len(toas) == 0 {
		exit.Log(fmt.Errorf("no photons left after filtering"))
	}

	if par.HasEcliptic {
		fmt.Printf("%s at ELONG %.5f, ELAT %.5f\n", par.PSR,
			par.ELONG.Deg(), par.ELAT.Deg())
	} else {
		fmt.Printf("%s at RA %v, Dec %v\n", par.PSR,
			sexa.FmtRA(unit.RAFromRad(par.RAJ.Rad())),
			sexa.FmtAngle(par.DECJ))
	}

	tt := toa.NewTOAs(toas, toa.Options{
		Planets: cl.planets,
		Ephem:   cl.ephem,
	})
	if err := tt.Compute(reg, eph); err != nil {
		exit.Log(err)
	}
	log.Print(tt.Summary())

	phases, err := par.Phase(tt, eph)
	if err != nil {
		exit.Log(err)
	}
	folded := make([]float64, len(phases))
	for i, p := range phases {
		folded[i] = p.Fold()
	}
	if cl.randomphase {
		rnd := xrand.New(xrand.NewSource(uint64(time.Now().UnixNano())))
		for i := range folded {
			folded[i] = rnd.Float64()
		}
	}
	weights := tt.Weights()

	h := eventstats.Hmw(folded, weights)
	sig := eventstats.H2sig(h)
	fmt.Printf("Htest : %.2f (%.2f sigma)\n", h, sig)

	if cl.plot {
		if err := writeProfile(cl.plotfile, par.PSR, folded, weights,
			cl.nbins); err != nil {
			exit.Log(err)
		}
		log.Printf("Wrote %s", cl.plotfile)
	}
	if cl.addphase {
		out := cl.outfile
		if out == "" {
			out = cl.eventfile
		}
		if err := writePhases(out, tt, folded, cl.weightcol); err != nil {
			exit.Log(err)
		}
		log.Printf("Wrote %d phases to %s", len(folded), out)
	}
	if cl.hout {
		if err := storeResult(cl.houtfile, par.PSR, cl.logeref, h,
			cl.randomphase, cl.mjdCut()); err != nil {
			exit.Log(err)
		}
	}
}

type commandLine struct {
	eventfile, parfile, weightcol string

	ft2         string
	addphase    bool
	plot        bool
	plotfile    string
	nbins       int
	minMJD      float64
	maxMJD      float64
	minWeight   float64
	outfile     string
	planets     bool
	ephem       string
	logeref     float64
	randomphase bool
	hout        bool
	houtfile    string
}

// mjdCut reports whether the data set was trimmed by a lower MJD bound.
// It selects the valid results bucket over full; the weight cut plays no
// part, since -minWeight has a nonzero default.
func (cl *commandLine) mjdCut() bool { return cl.minMJD > 0 }

func parseCommandLine() *commandLine {
	var cl commandLine
	dv := flag.Bool("v", false, "")
	flag.StringVar(&cl.ft2, "ft2", "", "")
	flag.BoolVar(&cl.addphase, "addphase", false, "")
	flag.BoolVar(&cl.plot, "plot", false, "")
	flag.StringVar(&cl.plotfile, "plotfile", "profile.png", "")
	flag.IntVar(&cl.nbins, "nbins", 32, "")
	flag.Float64Var(&cl.minMJD, "minMJD", 0, "")
	flag.Float64Var(&cl.maxMJD, "maxMJD", 0, "")
	flag.Float64Var(&cl.minWeight, "minWeight", .05, "")
	flag.StringVar(&cl.outfile, "outfile", "", "")
	flag.BoolVar(&cl.planets, "planets", false, "")
	flag.StringVar(&cl.ephem, "ephem", "", "")
	flag.Float64Var(&cl.logeref, "logeref", 4.1, "")
	flag.BoolVar(&cl.randomphase, "randomphase", false, "")
	flag.BoolVar(&cl.hout, "hout", false, "")
	flag.StringVar(&cl.houtfile, "houtfile", "htest_results.yaml", "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: fermiphase [options] <eventfile> <parfile> <weightcol>
       fermiphase -v                  display version

weightcol is a column name from the FT1 file, CALC to compute weights
from photon energies, or NONE for unit weights.

Options:
       -ft2 <file>        spacecraft orbit file for topocentric times
       -addphase          write a PULSE_PHASE column
       -outfile <file>    write events here instead of in place (implies
                          -addphase)
       -plot              write a pulse profile plot
       -plotfile <file>   plot file name
       -nbins <n>         profile bins
       -minMJD <mjd>      drop events at or before this MJD
       -maxMJD <mjd>      drop events at or after this MJD
       -minWeight <w>     drop events at or below this weight
       -planets           include planetary Shapiro delays
       -ephem <name>      ephemeris provider (VSOP87 or analytic)
       -logeref <x>       log10 reference energy for computed weights
       -randomphase       replace phases with uniform randoms
       -hout              record the H-test in a YAML results store
       -houtfile <file>   results store file name
`)
	}
	flag.Parse()
	if *dv {
		fmt.Println(versionString)
		os.Exit(0)
	}
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(1)
	}
	cl.eventfile = flag.Arg(0)
	cl.parfile = flag.Arg(1)
	cl.weightcol = flag.Arg(2)
	if cl.weightcol == "NONE" {
		cl.weightcol = ""
	}
	if cl.outfile != "" {
		cl.addphase = true
	}
	return &cl
}
