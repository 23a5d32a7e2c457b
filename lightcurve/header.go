package lightcurve

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"
)

// Returned when an expected header keyword or table column is missing
var ErrFieldNotFound = errors.New("field not found")

// Metadata read from the FITS headers of a light curve file
type Header struct {
	// Observation start and stop times (BTJD)
	TStart float64
	TStop  float64
	// Observation dates (UTC)
	DateObs string
	DateEnd string
	// Target name and TESS Input Catalog identifier
	Object string
	TicID  int64
	// Celestial coordinates (deg)
	RA  float64
	Dec float64
	// Proper motion (mas/yr)
	PMRA  float64
	PMDec float64
	// TESS magnitude
	TessMag float64
	// Effective temperature (K)
	Teff float64
	// Surface gravity (log10 cm/s^2)
	LogG float64
	// Metallicity [M/H]
	MH float64
	// Stellar radius (solar radii)
	Radius float64
}

// Looks up a keyword in the given headers, in order
func lookup(name string, headers ...*fitsio.Header) (*fitsio.Card, error) {
	for _, hdr := range headers {
		if hdr == nil {
			continue
		}
		if card := hdr.Get(name); card != nil {
			return card, nil
		}
	}
	return nil, fmt.Errorf("%w: header keyword %q", ErrFieldNotFound, name)
}

// Undefined keywords are read as NaN
func headerFloat(name string, headers ...*fitsio.Header) (float64, error) {
	card, err := lookup(name, headers...)
	if err != nil {
		return 0, err
	}

	switch v := card.Value.(type) {
	case nil:
		return math.NaN(), nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return math.NaN(), nil
		}
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("header keyword %q: unexpected type %T", name, v)
	}
}

func headerInt(name string, headers ...*fitsio.Header) (int64, error) {
	card, err := lookup(name, headers...)
	if err != nil {
		return 0, err
	}

	switch v := card.Value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("header keyword %q: %v is not an integer", name, v)
		}
		// Above 2^53 the float does not hold an exact integer
		if math.Abs(v) > 1<<53 {
			return 0, fmt.Errorf("header keyword %q: %v is out of range", name, v)
		}
		return int64(v), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return 0, fmt.Errorf("header keyword %q: unexpected type %T", name, v)
	}
}

func headerString(name string, headers ...*fitsio.Header) (string, error) {
	card, err := lookup(name, headers...)
	if err != nil {
		return "", err
	}

	switch v := card.Value.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// Reads the header keywords. The primary header is searched first, then the table header
func readHeader(headers ...*fitsio.Header) (Header, error) {
	var h Header
	var err error

	floats := []struct {
		name string
		dst  *float64
	}{
		{"TSTART", &h.TStart},
		{"TSTOP", &h.TStop},
		{"RA_OBJ", &h.RA},
		{"DEC_OBJ", &h.Dec},
		{"PMRA", &h.PMRA},
		{"PMDEC", &h.PMDec},
		{"TESSMAG", &h.TessMag},
		{"TEFF", &h.Teff},
		{"LOGG", &h.LogG},
		{"MH", &h.MH},
		{"RADIUS", &h.Radius},
	}
	for _, f := range floats {
		if *f.dst, err = headerFloat(f.name, headers...); err != nil {
			return Header{}, err
		}
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"DATE-OBS", &h.DateObs},
		{"DATE-END", &h.DateEnd},
		{"OBJECT", &h.Object},
	}
	for _, s := range strs {
		if *s.dst, err = headerString(s.name, headers...); err != nil {
			return Header{}, err
		}
	}

	if h.TicID, err = headerInt("TICID", headers...); err != nil {
		return Header{}, err
	}

	return h, nil
}
