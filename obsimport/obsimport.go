package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/soniakeys/exit"
	"github.com/soniakeys/mpcformat"

	"github.com/zpleunis/pint/observatory"
)

const versionString = "obsimport version 0.1"

func main() {
	defer exit.Handler()
	flag.Usage = func() {
		os.Stderr.WriteString(
			"Usage: obsimport [options] <obscode.dat> <site-file>\n")
		flag.PrintDefaults()
	}
	fetch := flag.Bool("f", false, "download the catalog first")
	vers := flag.Bool("v", false, "display version")
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		os.Exit(0)
	}
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	catalog, out := flag.Arg(0), flag.Arg(1)

	if *fetch {
		log.Printf("Fetching observatory catalog to %s", catalog)
		if err := mpcformat.FetchObscodeDat(catalog); err != nil {
			exit.Log(err)
		}
	}
	sites, err := observatory.SitesFromObscodeDat(catalog)
	if err != nil {
		exit.Log(err)
	}
	sort.Slice(sites, func(i, j int) bool {
		return sites[i].Name < sites[j].Name
	})
	if err := observatory.WriteSiteFile(out, sites); err != nil {
		exit.Log(err)
	}
	fmt.Printf("%d sites written to %s\n", len(sites), out)
}
