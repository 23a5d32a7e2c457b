package lightcurve

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"
)

// Row of the LIGHTCURVE table written in the test files
type fixtureSample struct {
	Time       float64 `fits:"TIME"`
	SapFlux    float32 `fits:"SAP_FLUX"`
	SapFluxErr float32 `fits:"SAP_FLUX_ERR"`
	PdcFlux    float32 `fits:"PDCSAP_FLUX"`
	PdcFluxErr float32 `fits:"PDCSAP_FLUX_ERR"`
	Quality    int32   `fits:"QUALITY"`
}

// Table without the SAP columns
type pdcOnlySample struct {
	Time       float64 `fits:"TIME"`
	PdcFlux    float32 `fits:"PDCSAP_FLUX"`
	PdcFluxErr float32 `fits:"PDCSAP_FLUX_ERR"`
	Quality    int32   `fits:"QUALITY"`
}

// Table with double precision fluxes and a 16-bit quality column
type wideSample struct {
	Time       float64 `fits:"TIME"`
	PdcFlux    float64 `fits:"PDCSAP_FLUX"`
	PdcFluxErr float64 `fits:"PDCSAP_FLUX_ERR"`
	Quality    int16   `fits:"QUALITY"`
}

// Table with an 8-bit quality column
type byteQualitySample struct {
	Time       float64 `fits:"TIME"`
	PdcFlux    float32 `fits:"PDCSAP_FLUX"`
	PdcFluxErr float32 `fits:"PDCSAP_FLUX_ERR"`
	Quality    uint8   `fits:"QUALITY"`
}

// Table with an integer flux column
type integerFluxSample struct {
	Time       float64 `fits:"TIME"`
	PdcFlux    int32   `fits:"PDCSAP_FLUX"`
	PdcFluxErr float32 `fits:"PDCSAP_FLUX_ERR"`
	Quality    int32   `fits:"QUALITY"`
}

var nan32 = float32(math.NaN())

func defaultCards() []fitsio.Card {
	return []fitsio.Card{
		{Name: "TSTART", Value: 1325.29},
		{Name: "TSTOP", Value: 1353.18},
		{Name: "DATE-OBS", Value: "2018-07-25T19:00:00.000Z"},
		{Name: "DATE-END", Value: "2018-08-22T16:00:00.000Z"},
		{Name: "OBJECT", Value: "TIC 123456789"},
		{Name: "TICID", Value: 123456789},
		{Name: "RA_OBJ", Value: 82.1},
		{Name: "DEC_OBJ", Value: -79.3},
		{Name: "PMRA", Value: 12.5},
		{Name: "PMDEC", Value: -3.2},
		{Name: "TESSMAG", Value: 9.87},
		{Name: "TEFF", Value: 5772},
		{Name: "LOGG", Value: 4.44},
		{Name: "MH", Value: 0.01},
		{Name: "RADIUS", Value: 1.02},
	}
}

// Samples with both flux variants. Only indices 2 and 5 pass a quality 0 filter
func defaultSamples() []fixtureSample {
	return []fixtureSample{
		// Always dropped, even though it would pass the filter
		{Time: 0, SapFlux: 10, SapFluxErr: 1, PdcFlux: 20, PdcFluxErr: 2, Quality: 0},
		{Time: 1, SapFlux: 11, SapFluxErr: 1, PdcFlux: 21, PdcFluxErr: 2, Quality: 128},
		{Time: 2, SapFlux: 12, SapFluxErr: 1, PdcFlux: 22, PdcFluxErr: 2, Quality: 0},
		{Time: 3, SapFlux: nan32, SapFluxErr: 1, PdcFlux: nan32, PdcFluxErr: 2, Quality: 0},
		{Time: 4, SapFlux: float32(math.Inf(1)), SapFluxErr: 1, PdcFlux: float32(math.Inf(-1)), PdcFluxErr: 2, Quality: 0},
		{Time: 5, SapFlux: 15, SapFluxErr: 1.5, PdcFlux: 25, PdcFluxErr: 2.5, Quality: 0},
	}
}

// Writes a light curve file with a primary header and a LIGHTCURVE binary table.
// T is the struct describing the table rows
func writeFixture[T any](t *testing.T, cards []fitsio.Card, samples []T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tess2018206045859-s0001-0000000123456789-0120-s_lc.fits")
	w, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	f, err := fitsio.Create(w)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	phdu, err := fitsio.NewPrimaryHDU(fitsio.NewHeader(cards, fitsio.IMAGE_HDU, 8, []int{}))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Write(phdu); err != nil {
		t.Fatal(err)
	}

	var zero T
	table, err := fitsio.NewTableFrom("LIGHTCURVE", zero, fitsio.BINARY_TBL)
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	for i := range samples {
		if err := table.Write(&samples[i]); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.Write(table); err != nil {
		t.Fatal(err)
	}
	return path
}
