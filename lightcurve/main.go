package lightcurve

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dirac-institute/TESSHacks/utils"
)

type Config struct {
	Files   []string `arg:"positional,required" help:"TESS light curve files to read"`
	Raw     bool     `arg:"--raw" help:"Read the SAP flux instead of the corrected PDCSAP flux"`
	Quality int32    `arg:"-q,--quality,env:TESS_QUALITY" default:"0" help:"Only samples with this quality flag are kept"`
	Output  string   `arg:"-o,--output" help:"Directory where the filtered light curves are dumped as CSV"`
}

func (Config) Description() string {
	return `Reads TESS light curve files, filters out flagged and non-finite samples
and prints a summary of the header metadata.`
}

func (config *Config) Execute() error {
	if config.Output != "" {
		if err := os.MkdirAll(config.Output, os.ModePerm); err != nil {
			slog.Error(err.Error())
			return err
		}
	}

	lines := make([][]string, 0, len(config.Files))
	bar := utils.NewBar(len(config.Files), "light curves")
	bar.RenderBlank()
	for _, filename := range config.Files {
		obs, err := Read(filename, !config.Raw, config.Quality)
		if err != nil {
			slog.Error(err.Error())
			return err
		}

		if config.Output != "" {
			if err := config.dump(filename, obs); err != nil {
				slog.Error(fmt.Sprintf("Could not dump %s: %s", filename, err))
				return err
			}
		}

		slog.Info(fmt.Sprintf("%s: %d samples kept (%s)", filepath.Base(filename), obs.Len(), obs.Variant))
		lines = append(lines, summaryLine(filename, obs))
		bar.Add(1)
	}

	headers := []string{"file", "TIC", "Tmag", "Teff", "logg", "R", "span", "samples"}
	aligns := []utils.Alignment{utils.AlignLeft}
	for range headers[1:] {
		aligns = append(aligns, utils.AlignRight)
	}
	fmt.Println(utils.RenderTable(headers, lines, aligns))
	return nil
}

func (config *Config) dump(filename string, obs *Observation) error {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)) + ".csv"
	file, err := os.Create(filepath.Join(config.Output, name))
	if err != nil {
		return err
	}

	err = obs.WriteCSV(file)
	if closeErr := file.Close(); closeErr != nil {
		return errors.Join(err, closeErr)
	}
	return err
}

func formatFloat(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

func summaryLine(filename string, obs *Observation) []string {
	return []string{
		filepath.Base(filename),
		strconv.FormatInt(obs.TicID, 10),
		formatFloat(obs.TessMag, 3),
		formatFloat(obs.Teff, 0),
		formatFloat(obs.LogG, 2),
		formatFloat(obs.Radius, 2),
		obs.Span.String(),
		strconv.Itoa(obs.Len()),
	}
}
