package engine

import "sort"

// ============================================================================
// CHART BUILDER — Produces ChartConfig from Groups or a RecordView
// ============================================================================
// Builders always return a config, even for empty input: an empty chart is a
// valid answer, not an error. Callers decide how to present it.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// PieSpec describes a proportion chart over aggregated groups.
type PieSpec struct {
	Title       string
	LabelKey    string // dimension the groups were built on
	Aggregation string
}

// ScatterSpec describes a point chart over raw records.
type ScatterSpec struct {
	Title    string
	XMeasure string
	YMeasure string
	ColorBy  string // dimension; one series per distinct value
	LabelBy  string // dimension used as point hover label
	XLabel   string // axis label override; defaults to LabelForDimension(XMeasure)
	YLabel   string
	XRange   *Range
}

// BuildPie produces a pie ChartConfig with one slice per group.
func BuildPie(spec PieSpec, groups []Group) *ChartConfig {
	config := &ChartConfig{
		ChartType:  ChartPie,
		Title:      spec.Title,
		XAxis:      LabelForDimension(spec.LabelKey),
		YAxis:      LabelForAggregation(spec.Aggregation),
		ShowLegend: true,
		ShowGrid:   false,
	}

	config.Series = buildSingleSeries(groups, config.YAxis)
	config.Colors = assignColors(len(groups))
	return config
}

// BuildScatter produces a scatter ChartConfig with one series per ColorBy value.
// Series are ordered by color key; points keep view order.
func BuildScatter(spec ScatterSpec, view RecordView) *ChartConfig {
	config := &ChartConfig{
		ChartType:  ChartScatter,
		Title:      spec.Title,
		XAxis:      spec.XLabel,
		YAxis:      spec.YLabel,
		ShowLegend: true,
		ShowGrid:   true,
		Series:     []ChartSeries{},
	}
	if config.XAxis == "" {
		config.XAxis = LabelForDimension(spec.XMeasure)
	}
	if config.YAxis == "" {
		config.YAxis = LabelForDimension(spec.YMeasure)
	}
	if spec.XRange != nil {
		r := *spec.XRange
		config.XRange = &r
	}

	byColor := make(map[string][]ChartPoint)
	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, spec.ColorBy)
		byColor[key] = append(byColor[key], ChartPoint{
			Label: view.Dimension(i, spec.LabelBy),
			X:     view.Measure(i, spec.XMeasure),
			Value: view.Measure(i, spec.YMeasure),
		})
	}

	keys := make([]string, 0, len(byColor))
	for k := range byColor {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, key := range keys {
		config.Series = append(config.Series, ChartSeries{
			Name:  key,
			Data:  byColor[key],
			Color: defaultColors[i%len(defaultColors)],
		})
	}
	config.Colors = assignColors(len(config.Series))
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(groups []Group, seriesName string) []ChartSeries {
	if seriesName == "" {
		seriesName = "Value"
	}

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: RoundTo2(g.Value),
		})
	}

	return []ChartSeries{{
		Name: seriesName,
		Data: points,
	}}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
