package dashboard

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/spektr-org/launchdash/engine"
)

// Property-based checks of the chart update functions over the sample file.

func selections(t *testing.T) ([]string, func(idx int) string) {
	ds := sampleDataset(t)
	choices := append([]string{AllSites}, ds.Sites()...)
	return choices, func(idx int) string { return choices[idx] }
}

func orderedRange(a, b float64) engine.Range {
	return engine.Range{Low: math.Min(a, b), High: math.Max(a, b)}
}

func TestCategoryBreakdownSliceCount(t *testing.T) {
	ds := sampleDataset(t)
	choices, pick := selections(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("slice count matches sites or outcome codes", prop.ForAll(
		func(idx int) bool {
			site := pick(idx)
			chart := CategoryBreakdown(ds, site)
			if site == AllSites {
				return chart.PointCount() == len(ds.SiteSummary())
			}
			codes := make(map[string]bool)
			for _, l := range ds.Launches() {
				if l.Site == site {
					codes[l.LandingOutcome] = true
				}
			}
			return chart.PointCount() == len(codes)
		},
		gen.IntRange(0, len(choices)-1),
	))

	properties.TestingRun(t)
}

func TestPayloadCorrelationContainment(t *testing.T) {
	ds := sampleDataset(t)
	choices, pick := selections(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("points lie in range and match the site", prop.ForAll(
		func(idx int, a, b float64) bool {
			site := pick(idx)
			rng := orderedRange(a, b)
			for _, s := range PayloadCorrelation(ds, site, rng).Series {
				for _, p := range s.Data {
					if p.X < rng.Low || p.X > rng.High {
						return false
					}
					if site != AllSites && p.Label != site {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(0, len(choices)-1),
		gen.Float64Range(-1000, 11000),
		gen.Float64Range(-1000, 11000),
	))

	properties.TestingRun(t)
}

func TestUpdateFunctionsAreDeterministic(t *testing.T) {
	ds := sampleDataset(t)
	choices, pick := selections(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("same inputs give identical charts", prop.ForAll(
		func(idx int, a, b float64) bool {
			site := pick(idx)
			rng := orderedRange(a, b)
			return cmp.Equal(CategoryBreakdown(ds, site), CategoryBreakdown(ds, site)) &&
				cmp.Equal(PayloadCorrelation(ds, site, rng), PayloadCorrelation(ds, site, rng))
		},
		gen.IntRange(0, len(choices)-1),
		gen.Float64Range(0, 9600),
		gen.Float64Range(0, 9600),
	))

	properties.TestingRun(t)
}

func TestPayloadCorrelationMonotonic(t *testing.T) {
	ds := sampleDataset(t)
	choices, pick := selections(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("widening the range never loses points", prop.ForAll(
		func(idx int, a, b, widenLow, widenHigh float64) bool {
			site := pick(idx)
			narrow := orderedRange(a, b)
			wide := engine.Range{Low: narrow.Low - widenLow, High: narrow.High + widenHigh}
			return PayloadCorrelation(ds, site, wide).PointCount() >= PayloadCorrelation(ds, site, narrow).PointCount()
		},
		gen.IntRange(0, len(choices)-1),
		gen.Float64Range(0, 9600),
		gen.Float64Range(0, 9600),
		gen.Float64Range(0, 5000),
		gen.Float64Range(0, 5000),
	))

	properties.TestingRun(t)
}

func TestClampRangeStaysInBounds(t *testing.T) {
	bounds := engine.Range{Low: 500, High: 9600}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("clamped range is ordered and inside bounds", prop.ForAll(
		func(a, b float64) bool {
			r := ClampRange(bounds, a, b)
			return r.Low <= r.High && r.Low >= bounds.Low && r.High <= bounds.High
		},
		gen.Float64Range(-1e5, 1e5),
		gen.Float64Range(-1e5, 1e5),
	))

	properties.TestingRun(t)
}
