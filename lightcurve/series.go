package lightcurve

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/astrogo/fitsio"
)

// Flux series stored in a light curve file
type Variant int

const (
	// Pre-search Data Conditioning flux, with the instrumental systematics removed
	Corrected Variant = iota
	// Simple Aperture Photometry flux
	Raw
)

func VariantFor(pdc bool) Variant {
	if pdc {
		return Corrected
	}
	return Raw
}

func (v Variant) String() string {
	if v == Corrected {
		return "PDCSAP"
	}
	return "SAP"
}

// Names of the flux and flux error columns of the variant
func (v Variant) Columns() (flux, fluxErr string) {
	return v.String() + "_FLUX", v.String() + "_FLUX_ERR"
}

const (
	TIME_COLUMN    string = "TIME"
	QUALITY_COLUMN string = "QUALITY"
)

// Returned when a column has a type that cannot be read as a light curve series
var ErrUnsupportedColumn = errors.New("unsupported column type")

// Scalar FITS binary table types accepted for each kind of column
var (
	FLOAT_FORMATS   = []byte{'E', 'D'}
	INTEGER_FORMATS = []byte{'B', 'I', 'J', 'K'}
)

// Unfiltered columns of the light curve table
type series struct {
	time    []float64
	flux    []float64
	fluxErr []float64
	quality []int32
}

// Returns the type code of a scalar column format such as "E" or "1J"
func scalarFormat(format string) (byte, bool) {
	format = strings.TrimSpace(format)
	code := strings.TrimLeft(format, "0123456789")
	if len(code) != 1 {
		return 0, false
	}
	if repeat := format[:len(format)-1]; repeat != "" && repeat != "1" {
		return 0, false
	}
	return code[0], true
}

// Checks that the column exists and that its format is one of the accepted ones
func checkColumn(table *fitsio.Table, name string, formats []byte) error {
	i := table.Index(name)
	if i < 0 {
		return fmt.Errorf("%w: column %q in table %q", ErrFieldNotFound, name, table.Name())
	}

	format := table.Cols()[i].Format
	code, ok := scalarFormat(format)
	if !ok || !slices.Contains(formats, code) {
		return fmt.Errorf("%w: column %q has format %q", ErrUnsupportedColumn, name, format)
	}
	return nil
}

// Checks that all the columns needed for the variant are in the table and have a supported format
func checkColumns(table *fitsio.Table, variant Variant) error {
	flux, fluxErr := variant.Columns()
	for _, name := range []string{TIME_COLUMN, flux, fluxErr} {
		if err := checkColumn(table, name, FLOAT_FORMATS); err != nil {
			return err
		}
	}
	return checkColumn(table, QUALITY_COLUMN, INTEGER_FORMATS)
}

func toFloat(name string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: column %q decoded as %T", ErrUnsupportedColumn, name, value)
	}
}

func toQuality(value any) (int32, error) {
	switch v := value.(type) {
	case uint8:
		return int32(v), nil
	case int8:
		return int32(v), nil
	case int16:
		return int32(v), nil
	case int32:
		return v, nil
	case int64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, fmt.Errorf("column %q: value %d out of range", QUALITY_COLUMN, v)
		}
		return int32(v), nil
	default:
		return 0, fmt.Errorf("%w: column %q decoded as %T", ErrUnsupportedColumn, QUALITY_COLUMN, value)
	}
}

// Reads time, flux, flux error and quality, selecting the flux columns from the variant.
// Each column is decoded in its own type and then converted.
func readSeries(table *fitsio.Table, variant Variant) (*series, error) {
	if err := checkColumns(table, variant); err != nil {
		return nil, err
	}
	fluxCol, fluxErrCol := variant.Columns()

	rows, err := table.Read(0, table.NumRows())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	size := int(table.NumRows())
	s := &series{
		time:    make([]float64, 0, size),
		flux:    make([]float64, 0, size),
		fluxErr: make([]float64, 0, size),
		quality: make([]int32, 0, size),
	}
	for rows.Next() {
		row := map[string]any{
			TIME_COLUMN:    nil,
			fluxCol:        nil,
			fluxErrCol:     nil,
			QUALITY_COLUMN: nil,
		}
		if err := rows.Scan(&row); err != nil {
			return nil, err
		}

		time, err := toFloat(TIME_COLUMN, row[TIME_COLUMN])
		if err != nil {
			return nil, err
		}
		flux, err := toFloat(fluxCol, row[fluxCol])
		if err != nil {
			return nil, err
		}
		fluxErr, err := toFloat(fluxErrCol, row[fluxErrCol])
		if err != nil {
			return nil, err
		}
		quality, err := toQuality(row[QUALITY_COLUMN])
		if err != nil {
			return nil, err
		}

		s.time = append(s.time, time)
		s.flux = append(s.flux, flux)
		s.fluxErr = append(s.fluxErr, fluxErr)
		s.quality = append(s.quality, quality)
	}
	return s, rows.Err()
}

// Drops the first sample of every series, then keeps only the samples whose quality equals
// the given flag and whose flux is finite. The three returned slices have the same length.
func FilterSeries(time, flux, fluxErr []float64, quality []int32, flag int32) ([]float64, []float64, []float64) {
	n := min(len(time), len(flux), len(fluxErr), len(quality))

	outTime := make([]float64, 0, n)
	outFlux := make([]float64, 0, n)
	outErr := make([]float64, 0, n)

	// The first sample of each file is a known NaN artifact
	for i := 1; i < n; i++ {
		if quality[i] != flag || math.IsNaN(flux[i]) || math.IsInf(flux[i], 0) {
			continue
		}
		outTime = append(outTime, time[i])
		outFlux = append(outFlux, flux[i])
		outErr = append(outErr, fluxErr[i])
	}
	return outTime, outFlux, outErr
}
