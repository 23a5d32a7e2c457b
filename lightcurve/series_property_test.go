package lightcurve

import (
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type rawSample struct {
	Flux    float64
	FluxErr float64
	Quality int32
}

func rawSampleGen() gopter.Gen {
	return gen.Struct(reflect.TypeOf(rawSample{}), map[string]gopter.Gen{
		"Flux": gen.OneGenOf(
			gen.Float64Range(-1e5, 1e5),
			gen.Const(math.NaN()),
			gen.Const(math.Inf(1)),
			gen.Const(math.Inf(-1)),
		),
		"FluxErr": gen.Float64Range(0, 100),
		"Quality": gen.Int32Range(0, 3),
	})
}

// Splits the samples into parallel series. The time of a sample is its raw index
func splitSamples(samples []rawSample) (time, flux, fluxErr []float64, quality []int32) {
	for i, s := range samples {
		time = append(time, float64(i))
		flux = append(flux, s.Flux)
		fluxErr = append(fluxErr, s.FluxErr)
		quality = append(quality, s.Quality)
	}
	return time, flux, fluxErr, quality
}

func TestProperty_FilterSeries(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("kept samples have the given quality and a finite flux", prop.ForAll(
		func(samples []rawSample, flag int32) bool {
			time, flux, fluxErr, quality := splitSamples(samples)
			outTime, outFlux, outErr := FilterSeries(time, flux, fluxErr, quality, flag)

			if len(outTime) != len(outFlux) || len(outFlux) != len(outErr) {
				return false
			}

			prev := 0
			for i := range outTime {
				idx := int(outTime[i])
				// Indices are strictly increasing and never include the first sample
				if idx <= prev {
					return false
				}
				prev = idx

				if quality[idx] != flag || math.IsNaN(outFlux[i]) || math.IsInf(outFlux[i], 0) {
					return false
				}
				if outFlux[i] != flux[idx] || outErr[i] != fluxErr[idx] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(rawSampleGen()),
		gen.Int32Range(0, 3),
	))

	properties.Property("the first sample is always dropped", prop.ForAll(
		func(samples []rawSample) bool {
			// Every sample passes the filter
			for i := range samples {
				samples[i].Flux = 1
				samples[i].Quality = 0
			}

			time, flux, fluxErr, quality := splitSamples(samples)
			outTime, _, _ := FilterSeries(time, flux, fluxErr, quality, 0)

			return len(outTime) == len(samples)-1
		},
		gen.SliceOf(rawSampleGen()).SuchThat(func(s []rawSample) bool { return len(s) > 0 }),
	))

	properties.Property("no sample passes a flag absent from the data", prop.ForAll(
		func(samples []rawSample) bool {
			time, flux, fluxErr, quality := splitSamples(samples)
			outTime, _, _ := FilterSeries(time, flux, fluxErr, quality, 99)
			return len(outTime) == 0
		},
		gen.SliceOf(rawSampleGen()),
	))

	properties.TestingRun(t)
}
