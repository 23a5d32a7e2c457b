package lightcurve

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/astrogo/fitsio"
	"github.com/gocarina/gocsv"
	"github.com/rickb777/period"

	"github.com/dirac-institute/TESSHacks/utils"
)

// Returned when a file does not contain a binary table with the light curve
var ErrNotTable = errors.New("no binary table found")

// Header metadata plus the filtered light curve of a single file
type Observation struct {
	Header
	// Flux series that was read
	Variant Variant
	// Quality flag used to filter the samples
	Quality int32
	// Time between DATE-OBS and DATE-END, zero if either could not be parsed
	Span period.Period

	Time    []float64
	Flux    []float64
	FluxErr []float64
}

// A single sample of the filtered light curve
type Sample struct {
	Time    float64 `csv:"time"`
	Flux    float64 `csv:"flux"`
	FluxErr float64 `csv:"flux_err"`
}

func (obs *Observation) Len() int {
	return len(obs.Time)
}

func (obs *Observation) Samples() []Sample {
	samples := make([]Sample, len(obs.Time))
	for i := range obs.Time {
		samples[i] = Sample{obs.Time[i], obs.Flux[i], obs.FluxErr[i]}
	}
	return samples
}

// Writes the filtered light curve as `time,flux,flux_err` records
func (obs *Observation) WriteCSV(w io.Writer) error {
	return gocsv.Marshal(obs.Samples(), w)
}

// Returns the first binary table HDU of the file
func lightCurveTable(f *fitsio.File) (*fitsio.Table, error) {
	for _, hdu := range f.HDUs() {
		if table, ok := hdu.(*fitsio.Table); ok && hdu.Type() == fitsio.BINARY_TBL {
			return table, nil
		}
	}
	return nil, ErrNotTable
}

func observationSpan(h *Header) period.Period {
	start, err := utils.ParseFITSTime(h.DateObs)
	if err != nil {
		return period.Period{}
	}
	end, err := utils.ParseFITSTime(h.DateEnd)
	if err != nil {
		return period.Period{}
	}
	return period.Between(start, end)
}

// Reads a TESS light curve file.
// If pdc is true the PDCSAP (corrected) flux is read, otherwise the SAP (raw) flux.
// Samples are kept only if their quality equals the given flag and their flux is finite,
// the first sample is always dropped.
func Read(filename string, pdc bool, quality int32) (*Observation, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	defer f.Close()

	obs, err := readObservation(f, VariantFor(pdc), quality)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return obs, nil
}

func readObservation(f *fitsio.File, variant Variant, quality int32) (*Observation, error) {
	table, err := lightCurveTable(f)
	if err != nil {
		return nil, err
	}

	header, err := readHeader(f.HDU(0).Header(), table.Header())
	if err != nil {
		return nil, err
	}

	raw, err := readSeries(table, variant)
	if err != nil {
		return nil, err
	}

	time, flux, fluxErr := FilterSeries(raw.time, raw.flux, raw.fluxErr, raw.quality, quality)
	return &Observation{
		Header:  header,
		Variant: variant,
		Quality: quality,
		Span:    observationSpan(&header),
		Time:    time,
		Flux:    flux,
		FluxErr: fluxErr,
	}, nil
}
