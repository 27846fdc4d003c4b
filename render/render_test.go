package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/spektr-org/launchdash/engine"
)

func pieChart() *engine.ChartConfig {
	return &engine.ChartConfig{
		ChartType: engine.ChartPie,
		Title:     "Total Successful Launches by Site",
		Series: []engine.ChartSeries{{
			Name: "Count",
			Data: []engine.ChartPoint{{Label: "A", Value: 3}, {Label: "B", Value: 1}},
		}},
		Colors: []string{"#4F46E5", "#10B981"},
	}
}

func scatterChart(points ...engine.ChartPoint) *engine.ChartConfig {
	return &engine.ChartConfig{
		ChartType:  engine.ChartScatter,
		Title:      "Correlation",
		XAxis:      "Payload Mass (kg)",
		YAxis:      "class",
		XRange:     &engine.Range{Low: 0, High: 9600},
		Series:     []engine.ChartSeries{{Name: "1", Color: "#10B981", Data: points}},
		ShowLegend: true,
	}
}

func decode(t *testing.T, b []byte) (int, int) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestPNG_Pie(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, pieChart(), Size{Width: 400, Height: 300}))

	w, h := decode(t, buf.Bytes())
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)
}

func TestPNG_Scatter(t *testing.T) {
	var buf bytes.Buffer
	chart := scatterChart(engine.ChartPoint{Label: "A", X: 500, Value: 1}, engine.ChartPoint{Label: "A", X: 4000, Value: 1})
	require.NoError(t, PNG(&buf, chart, Size{}))

	w, h := decode(t, buf.Bytes())
	assert.Equal(t, DefaultSize.Width, w)
	assert.Equal(t, DefaultSize.Height, h)
}

func TestPNG_ScatterSinglePointZeroWidthRange(t *testing.T) {
	chart := scatterChart(engine.ChartPoint{Label: "A", X: 500, Value: 1})
	chart.XRange = &engine.Range{Low: 500, High: 500}

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, chart, Size{Width: 320, Height: 240}))
}

func TestPNG_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, PNG(&buf, scatterChart(), Size{}), ErrNoData)
	assert.ErrorIs(t, PNG(&buf, nil, Size{}), ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestPNG_Unsupported(t *testing.T) {
	c := pieChart()
	c.ChartType = "radar"
	assert.ErrorIs(t, PNG(&bytes.Buffer{}, c, Size{}), ErrUnsupported)
}

func TestPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Placeholder(&buf, Size{Width: 10, Height: 20}))

	w, h := decode(t, buf.Bytes())
	assert.Equal(t, 10, w)
	assert.Equal(t, 20, h)
}

func TestXRange_FromPointsWhenUnset(t *testing.T) {
	c := scatterChart(engine.ChartPoint{X: 1000}, engine.ChartPoint{X: 3000})
	c.XRange = nil

	r := xRange(c)
	assert.Equal(t, 1000.0, r.Min)
	assert.Equal(t, 3000.0, r.Max)
}

// countNear counts pixels within a small distance of the given colour.
func countNear(t *testing.T, b []byte, want color.RGBA) int {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)

	near := func(a uint32, b uint8) bool {
		d := int(a>>8) - int(b)
		return d > -12 && d < 12
	}
	n := 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if near(r, want.R) && near(g, want.G) && near(bl, want.B) {
				n++
			}
		}
	}
	return n
}

func TestPNG_ScatterLegendShowsSeriesColours(t *testing.T) {
	build := func(legend bool) []byte {
		c := scatterChart()
		c.Series = []engine.ChartSeries{
			{Name: "0", Color: "#4F46E5", Data: []engine.ChartPoint{{Label: "A", X: 8000, Value: 0}}},
			{Name: "1", Color: "#10B981", Data: []engine.ChartPoint{{Label: "A", X: 9000, Value: 1}}},
		}
		c.ShowLegend = legend
		var buf bytes.Buffer
		require.NoError(t, PNG(&buf, c, Size{}))
		return buf.Bytes()
	}
	with, without := build(true), build(false)

	for _, col := range []color.RGBA{
		{R: 0x4F, G: 0x46, B: 0xE5},
		{R: 0x10, G: 0xB9, B: 0x81},
	} {
		assert.Greater(t, countNear(t, with, col), countNear(t, without, col), "legend swatch for %v", col)
	}
}

func TestLegendEntries_UseDotColour(t *testing.T) {
	graph := chart.Chart{Series: []chart.Series{
		chart.ContinuousSeries{Name: "1", Style: chart.Style{DotColor: parseHex("#10B981")}},
		chart.ContinuousSeries{Name: "hidden", Style: chart.Style{Hidden: true}},
		chart.ContinuousSeries{Style: chart.Style{DotColor: parseHex("#4F46E5")}},
	}}
	entries := legendEntries(&graph)
	require.Len(t, entries, 1)
	assert.Equal(t, "1", entries[0].label)
	assert.Equal(t, parseHex("#10B981"), entries[0].color)
}
