package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/dirac-institute/TESSHacks/utils"
)

// Flags shared by the subcommands that need a catalog
type BaseConfig struct {
	Path     string   `arg:"-p,--path,env:TESS_DATA_DIR" default:"./data/" help:"Top level directory where the TESS light curves are located"`
	Sectors  []string `arg:"-s,--sector" help:"Optional space separated list of sectors to keep, e.g. 's0001'"`
	Cadences []string `arg:"--cadence" help:"Optional space separated list of cadences to keep"`
}

func (config *BaseConfig) ShouldProcessRow(row *Row) bool {
	return utils.IsEmptyOrContains(config.Sectors, row.SectorNo) &&
		utils.IsEmptyOrContains(config.Cadences, row.Cadence)
}

// Builds the catalog from config.Path and drops the rows excluded by the filters
func (config *BaseConfig) BuildCatalog() ([]Row, error) {
	rows, err := Build(utils.WithTrailingSeparator(config.Path))
	if err != nil {
		return nil, err
	}

	return config.FilterRows(rows), nil
}

// Drops the rows excluded by the sector and cadence filters. Rows is modified in place
func (config *BaseConfig) FilterRows(rows []Row) []Row {
	return slices.DeleteFunc(rows, func(row Row) bool {
		return !config.ShouldProcessRow(&row)
	})
}

type Config struct {
	BaseConfig
	Output string `arg:"-o,--output" help:"File the catalog is written to. By default it is printed to stdout"`
	Quiet  bool   `arg:"-q,--quiet" help:"Do not print the per-sector summary"`
}

func (Config) Description() string {
	return `Traverses the TESS data directory and builds a catalog of the light curve files.
The data directory can also be set with the "TESS_DATA_DIR" environment variable.`
}

func (config *Config) Execute() error {
	slog.Info("Building catalog from " + config.Path)
	rows, err := config.BuildCatalog()
	if err != nil {
		slog.Error(err.Error())
		return err
	}

	if config.Output == "" {
		err = WriteCSV(os.Stdout, rows)
	} else {
		err = WriteCSVFile(config.Output, rows)
	}
	if err != nil {
		slog.Error(fmt.Sprintf("Could not write catalog: %s", err))
		return err
	}

	slog.Info(fmt.Sprintf("Found %d light curve files", len(rows)))
	if !config.Quiet {
		printSummary(os.Stderr, rows)
	}
	return nil
}

func printSummary(w io.Writer, rows []Row) {
	counts := CountSectors(rows)

	sectors := make([]string, 0, len(counts))
	for sector := range counts {
		sectors = append(sectors, sector)
	}
	slices.Sort(sectors)

	lines := make([][]string, 0, len(sectors)+1)
	for _, sector := range sectors {
		lines = append(lines, []string{sector, strconv.Itoa(counts[sector])})
	}
	lines = append(lines, []string{"total", strconv.Itoa(len(rows))})

	fmt.Fprintln(w, utils.RenderTable([]string{"sector", "files"}, lines, []utils.Alignment{utils.AlignLeft, utils.AlignRight}))
}
