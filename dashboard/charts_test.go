package dashboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/launchdash/dataset"
	"github.com/spektr-org/launchdash/engine"
)

func mustDataset(t testing.TB, launches []dataset.Launch) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(launches)
	require.NoError(t, err)
	return ds
}

func sampleDataset(t testing.TB) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load("../data/spacex_launch_dash.csv")
	require.NoError(t, err)
	return ds
}

// twoSites has success counts A=3, B=1; site A outcome codes are [1,1,1,0].
func twoSites(t testing.TB) *dataset.Dataset {
	return mustDataset(t, []dataset.Launch{
		{Site: "A", PayloadMass: 500, LandingOutcome: "1", Class: 1},
		{Site: "A", PayloadMass: 2000, LandingOutcome: "1", Class: 1},
		{Site: "A", PayloadMass: 4000, LandingOutcome: "1", Class: 1},
		{Site: "A", PayloadMass: 9600, LandingOutcome: "0", Class: 0},
		{Site: "B", PayloadMass: 3000, LandingOutcome: "1", Class: 1},
		{Site: "B", PayloadMass: 7000, LandingOutcome: "0", Class: 0},
	})
}

func slices(c *engine.ChartConfig) map[string]float64 {
	out := make(map[string]float64)
	for _, s := range c.Series {
		for _, p := range s.Data {
			out[p.Label] = p.Value
		}
	}
	return out
}

func TestCategoryBreakdown_AllSites(t *testing.T) {
	chart := CategoryBreakdown(twoSites(t), AllSites)

	assert.Equal(t, engine.ChartPie, chart.ChartType)
	assert.Equal(t, "Total Successful Launches by Site", chart.Title)
	assert.Equal(t, map[string]float64{"A": 3, "B": 1}, slices(chart))
}

func TestCategoryBreakdown_SingleSite(t *testing.T) {
	ds := mustDataset(t, []dataset.Launch{
		{Site: "A", LandingOutcome: "1"},
		{Site: "A", LandingOutcome: "1"},
		{Site: "A", LandingOutcome: "0"},
		{Site: "B", LandingOutcome: "1"},
	})

	chart := CategoryBreakdown(ds, "A")

	assert.Contains(t, chart.Title, "A")
	assert.Equal(t, map[string]float64{"1": 2, "0": 1}, slices(chart))
	assert.Equal(t, 2, chart.PointCount())
}

func TestCategoryBreakdown_UnknownSiteIsEmpty(t *testing.T) {
	chart := CategoryBreakdown(twoSites(t), "Cape Nowhere")

	require.NotNil(t, chart)
	assert.Equal(t, engine.ChartPie, chart.ChartType)
	assert.Zero(t, chart.PointCount())
}

func TestCategoryBreakdown_SampleFile(t *testing.T) {
	ds := sampleDataset(t)

	all := CategoryBreakdown(ds, AllSites)
	want := []engine.ChartPoint{
		{Label: "CCAFS LC-40", Value: 6},
		{Label: "CCAFS SLC-40", Value: 8},
		{Label: "KSC LC-39A", Value: 10},
		{Label: "VAFB SLC-4E", Value: 3},
	}
	if diff := cmp.Diff(want, all.Series[0].Data); diff != "" {
		t.Errorf("ALL slices mismatch (-want +got):\n%s", diff)
	}

	ksc := CategoryBreakdown(ds, "KSC LC-39A")
	assert.Equal(t, "Success vs. Failed for KSC LC-39A", ksc.Title)
	assert.Equal(t, map[string]float64{"0": 3, "1": 10}, slices(ksc))
}

func TestPayloadCorrelation_FullRangeAllSites(t *testing.T) {
	ds := twoSites(t)
	chart := PayloadCorrelation(ds, AllSites, engine.Range{Low: 500, High: 9600})

	assert.Equal(t, engine.ChartScatter, chart.ChartType)
	assert.Equal(t, "Payload Mass (kg)", chart.XAxis)
	assert.Equal(t, "class", chart.YAxis)
	assert.Equal(t, ds.Len(), chart.PointCount())
	assert.Equal(t, &engine.Range{Low: 500, High: 9600}, chart.XRange)
}

func TestPayloadCorrelation_NoMatches(t *testing.T) {
	chart := PayloadCorrelation(twoSites(t), AllSites, engine.Range{Low: 0, High: 100})

	require.NotNil(t, chart)
	assert.Zero(t, chart.PointCount())
	assert.NotNil(t, chart.Series)
}

func TestPayloadCorrelation_SiteThenRange(t *testing.T) {
	chart := PayloadCorrelation(twoSites(t), "A", engine.Range{Low: 2000, High: 9600})

	want := []engine.ChartSeries{
		{Name: "0", Color: "#4F46E5", Data: []engine.ChartPoint{{Label: "A", X: 9600, Value: 0}}},
		{Name: "1", Color: "#10B981", Data: []engine.ChartPoint{{Label: "A", X: 2000, Value: 1}, {Label: "A", X: 4000, Value: 1}}},
	}
	if diff := cmp.Diff(want, chart.Series); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Correlation between Payload and Success for A", chart.Title)
}

func TestPayloadCorrelation_ColorsByOutcome(t *testing.T) {
	chart := PayloadCorrelation(sampleDataset(t), "VAFB SLC-4E", engine.Range{Low: 0, High: 9600})

	names := make([]string, len(chart.Series))
	for i, s := range chart.Series {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"0", "1"}, names)
	assert.Equal(t, 6, chart.PointCount())
}

func TestPayloadCorrelation_BoundaryAtMinimum(t *testing.T) {
	ds := sampleDataset(t)
	lo := ds.PayloadBounds().Low

	chart := PayloadCorrelation(ds, AllSites, engine.Range{Low: lo, High: lo})
	assert.Equal(t, 2, chart.PointCount(), "two launches carry exactly the minimum payload")
	for _, s := range chart.Series {
		for _, p := range s.Data {
			assert.Equal(t, lo, p.X)
		}
	}
}

func TestPayloadCorrelation_UnknownSiteIsEmpty(t *testing.T) {
	chart := PayloadCorrelation(twoSites(t), "nope", engine.Range{Low: 0, High: 1e6})
	assert.Zero(t, chart.PointCount())
}
