package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"github.com/dirac-institute/TESSHacks/catalog"
	"github.com/dirac-institute/TESSHacks/crossmatch"
	"github.com/dirac-institute/TESSHacks/lightcurve"
	"github.com/dirac-institute/TESSHacks/utils"
)

type CmdArgs struct {
	Catalog    *catalog.Config    `arg:"subcommand" help:"Build a catalog of TESS light curve files"`
	Crossmatch *crossmatch.Config `arg:"subcommand" help:"Merge the catalog with cross-match tables"`
	Read       *lightcurve.Config `arg:"subcommand" help:"Read and filter TESS light curve files"`
	LogFile    string             `arg:"--log" help:"Write logs to this file instead of stderr"`
}

func (CmdArgs) Description() string {
	return `Tools to wrangle TESS light curves.
Defaults for some flags can be set in a ".env" file:
    - "TESS_DATA_DIR": top level directory of the light curves
    - "TESS_QUALITY":  quality flag of the samples to keep`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// The .env file is optional, it only provides defaults for the flags
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Println(err)
		os.Exit(1)
	}

	os.Exit(run())
}

func run() int {
	var args CmdArgs
	parser := arg.MustParse(&args)

	if args.LogFile != "" {
		fh, err := utils.SetLogFile(args.LogFile)
		if err != nil {
			return 1
		}
		defer fh.Close()
	}

	var err error
	switch {
	case args.Catalog != nil:
		err = args.Catalog.Execute()
	case args.Crossmatch != nil:
		err = args.Crossmatch.Execute()
	case args.Read != nil:
		err = args.Read.Execute()
	default:
		fmt.Println("Error: passing a subcommand is required.")
		fmt.Println()
		parser.WriteHelp(os.Stdout)
		return 1
	}

	// NOTE: errors are logged inside each Execute method
	if err != nil {
		fmt.Fprintln(os.Stderr, "Type './tesshacks -h' for help")
		return 1
	}
	return 0
}
