package crossmatch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dirac-institute/TESSHacks/catalog"
	"github.com/dirac-institute/TESSHacks/utils"
)

type Config struct {
	catalog.BaseConfig
	Catalog    string   `arg:"-c,--catalog" help:"Catalog CSV previously dumped with the 'catalog' subcommand. By default the catalog is built from --path"`
	Output     string   `arg:"-o,--output" help:"File the merged table is written to. By default it is printed to stdout"`
	References []string `arg:"positional,required" help:"CSV files cross-matching the TESS IDs, e.g. with Gaia. They need a 'ticid' column"`
}

func (Config) Description() string {
	return `Merges the catalog of TESS light curves with one or more cross-match tables.
The reference tables are concatenated and joined on 'tess_id' == 'ticid'.`
}

func (config *Config) loadCatalog() ([]catalog.Row, error) {
	if config.Catalog == "" {
		return config.BuildCatalog()
	}

	fmt.Fprintf(os.Stderr, "Reading previously dumped catalog from %s...\n", config.Catalog)
	rows, err := catalog.ReadCSVFile(config.Catalog)
	if err != nil {
		return nil, err
	}

	return config.FilterRows(rows), nil
}

func (config *Config) Execute() error {
	rows, err := config.loadCatalog()
	if err != nil {
		slog.Error(err.Error())
		return err
	}

	bar := utils.NewBar(len(config.References), "references")
	bar.RenderBlank()
	references, err := ReadReferences(config.References, func(filename string, table *Table) {
		slog.Info(fmt.Sprintf("%s: %d rows", filepath.Base(filename), table.Len()))
		bar.Add(1)
	})
	if err != nil {
		slog.Error(err.Error())
		return err
	}

	merged, err := CrossmatchTables(rows, references)
	if err != nil {
		slog.Error(err.Error())
		return err
	}

	if merged.Len() == 0 && len(rows) > 0 {
		slog.Warn("No catalog rows matched the reference tables")
	}

	if err := config.write(merged); err != nil {
		slog.Error(fmt.Sprintf("Could not write merged table: %s", err))
		return err
	}

	slog.Info(fmt.Sprintf("%d/%d catalog rows matched", merged.Len(), len(rows)))
	return nil
}

func (config *Config) write(merged *Table) error {
	if config.Output == "" {
		return merged.WriteCSV(os.Stdout)
	}

	file, err := os.Create(config.Output)
	if err != nil {
		return err
	}

	err = merged.WriteCSV(file)
	if closeErr := file.Close(); closeErr != nil {
		return errors.Join(err, closeErr)
	}
	return err
}
