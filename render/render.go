// Package render draws engine chart specs as PNG images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/launchdash/engine"
)

// ErrNoData is returned by PNG when the chart has no points to draw.
var ErrNoData = errors.New("chart has no data")

// ErrUnsupported is returned for chart types the renderer does not know.
var ErrUnsupported = errors.New("unsupported chart type")

// Size is the output image size in pixels.
type Size struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// DefaultSize is used when a dimension is zero.
var DefaultSize = Size{Width: 800, Height: 500}

func (s Size) orDefault() Size {
	if s.Width <= 0 {
		s.Width = DefaultSize.Width
	}
	if s.Height <= 0 {
		s.Height = DefaultSize.Height
	}
	return s
}

// PNG renders c to w. Empty charts return ErrNoData without writing.
func PNG(w io.Writer, c *engine.ChartConfig, size Size) error {
	if c == nil || c.PointCount() == 0 {
		return ErrNoData
	}
	size = size.orDefault()

	switch c.ChartType {
	case engine.ChartPie:
		return renderPie(w, c, size)
	case engine.ChartScatter:
		return renderScatter(w, c, size)
	}
	return fmt.Errorf("%w: %q", ErrUnsupported, c.ChartType)
}

func renderPie(w io.Writer, c *engine.ChartConfig, size Size) error {
	var values []chart.Value
	for _, s := range c.Series {
		for i, p := range s.Data {
			values = append(values, chart.Value{
				Label: fmt.Sprintf("%s (%s)", p.Label, engine.FormatInt(int(p.Value))),
				Value: p.Value,
				Style: chart.Style{FillColor: colorAt(c.Colors, i)},
			})
		}
	}

	pie := chart.PieChart{
		Title:  c.Title,
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

func renderScatter(w io.Writer, c *engine.ChartConfig, size Size) error {
	var series []chart.Series
	for i, s := range c.Series {
		if len(s.Data) == 0 {
			continue
		}
		xs := make([]float64, len(s.Data))
		ys := make([]float64, len(s.Data))
		for j, p := range s.Data {
			xs[j] = p.X
			ys[j] = p.Value
		}
		col := parseHex(s.Color)
		if s.Color == "" {
			col = colorAt(c.Colors, i)
		}
		series = append(series, chart.ContinuousSeries{
			Name: s.Name,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				StrokeColor: col,
				DotWidth:    5,
				DotColor:    col,
			},
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title:  c.Title,
		Width:  size.Width,
		Height: size.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  c.XAxis,
			Range: xRange(c),
		},
		YAxis: chart.YAxis{
			Name:  c.YAxis,
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
		},
		Series: series,
	}
	if c.ShowLegend {
		graph.Elements = []chart.Renderable{dotLegend(&graph)}
	}
	return graph.Render(chart.PNG, w)
}

// xRange widens degenerate ranges so the axis never has zero span.
func xRange(c *engine.ChartConfig) *chart.ContinuousRange {
	var lo, hi float64
	if c.XRange != nil {
		lo, hi = c.XRange.Low, c.XRange.High
	} else {
		first := true
		for _, s := range c.Series {
			for _, p := range s.Data {
				if first || p.X < lo {
					lo = p.X
				}
				if first || p.X > hi {
					hi = p.X
				}
				first = false
			}
		}
	}
	if hi-lo < 1 {
		lo, hi = lo-500, hi+500
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func colorAt(palette []string, i int) drawing.Color {
	if len(palette) == 0 {
		return chart.GetDefaultColor(i)
	}
	return parseHex(palette[i%len(palette)])
}

func parseHex(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// Placeholder writes a plain PNG of the given size. It stands in for charts
// that have nothing to draw.
func Placeholder(w io.Writer, size Size) error {
	size = size.orDefault()
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	bg := color.RGBA{R: 0xF8, G: 0xF8, B: 0xF8, A: 0xFF}
	border := color.RGBA{R: 0xD0, G: 0xD0, B: 0xD0, A: 0xFF}
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			c := bg
			if x == 0 || y == 0 || x == size.Width-1 || y == size.Height-1 {
				c = border
			}
			img.SetRGBA(x, y, c)
		}
	}
	return png.Encode(w, img)
}
