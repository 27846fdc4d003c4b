package render

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ============================================================================
// DOT LEGEND — legend entries drawn as the series' dot
// ============================================================================
// chart.Legend draws each entry as a stroked line, which shows nothing for
// dot-only scatter series. This one draws a filled swatch in the dot colour.
// ============================================================================

const (
	legendSwatchRadius = 4.0
	legendGap          = 6
	legendFontSize     = 8.0
)

type legendEntry struct {
	label string
	color drawing.Color
}

func legendEntries(graph *chart.Chart) []legendEntry {
	var entries []legendEntry
	for _, s := range graph.Series {
		st := s.GetStyle()
		if st.Hidden || s.GetName() == "" {
			continue
		}
		entries = append(entries, legendEntry{label: s.GetName(), color: st.GetDotColor()})
	}
	return entries
}

// dotLegend returns a renderable that draws a boxed legend in the top-left
// corner of the canvas.
func dotLegend(graph *chart.Chart) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		entries := legendEntries(graph)
		if len(entries) == 0 {
			return
		}

		style := chart.Style{
			FillColor:   drawing.ColorWhite,
			FontColor:   chart.DefaultTextColor,
			FontSize:    legendFontSize,
			StrokeColor: chart.DefaultAxisColor,
			StrokeWidth: chart.DefaultAxisLineWidth,
		}.InheritFrom(defaults)
		style.GetTextOptions().WriteToRenderer(r)

		pad := chart.Box{Top: 5, Left: 5, Right: 5, Bottom: 5}
		swatch := int(2*legendSwatchRadius) + legendGap

		var width, height int
		heights := make([]int, len(entries))
		for i, e := range entries {
			tb := r.MeasureText(e.label)
			heights[i] = tb.Height()
			width = chart.MaxInt(width, swatch+tb.Width())
			if i > 0 {
				height += legendGap
			}
			height += tb.Height()
		}

		box := chart.Box{
			Top:    cb.Top,
			Left:   cb.Left,
			Right:  cb.Left + pad.Left + width + pad.Right,
			Bottom: cb.Top + pad.Top + height + pad.Bottom,
		}
		chart.Draw.Box(r, box, style)

		y := box.Top + pad.Top
		x := box.Left + pad.Left
		for i, e := range entries {
			if i > 0 {
				y += legendGap
			}
			mid := y + heights[i]/2

			r.SetFillColor(e.color)
			r.SetStrokeColor(e.color)
			r.SetStrokeWidth(1)
			r.Circle(legendSwatchRadius, x+int(legendSwatchRadius), mid)
			r.FillStroke()

			style.GetTextOptions().WriteToRenderer(r)
			r.Text(e.label, x+swatch, y+heights[i])
			y += heights[i]
		}
	}
}
