package engine

// ============================================================================
// ENGINE TYPES — Records, Filters, Groups, Render-Ready Output
// ============================================================================
// The engine knows nothing about launches. Callers describe their rows as
// string dimensions and numeric measures and get back chart/table specs.
//
// Dependency: engine has ZERO external dependencies.
// ============================================================================

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is one parsed CSV row before it is mapped onto a typed struct.
//
//	Record{Dimensions["launch_site"]="CCAFS LC-40", Measures["payload_mass_kg"]=2500}
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// FILTERS
// ============================================================================

// Filters define which records to include.
// Keys are dimension names. Values are allowed values.
// OR within a dimension, AND across dimensions. Empty = all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// Where allows only values for one dimension.
func Where(dimension string, values ...string) Filters {
	return Filters{Dimensions: map[string][]string{dimension: values}}
}

// And returns a copy of f that also restricts dimension to values.
func (f Filters) And(dimension string, values ...string) Filters {
	out := Filters{Dimensions: make(map[string][]string, len(f.Dimensions)+1)}
	for k, v := range f.Dimensions {
		out.Dimensions[k] = v
	}
	out.Dimensions[dimension] = values
	return out
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	if f.Dimensions == nil {
		return true
	}
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Range is a closed numeric interval [Low, High].
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether v lies in [Low, High], both ends inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
// Builders convert these into ChartConfig or TableData.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// CHART TYPES
// ============================================================================

// Chart kinds produced by the builders.
const (
	ChartPie     = "pie"
	ChartScatter = "scatter"
)

// ChartConfig defines how to render a chart.
// It is a plain value: nothing in it points back at the state that produced it.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	XRange     *Range        `json:"xRange,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// PointCount returns the number of points across all series.
func (c *ChartConfig) PointCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, s := range c.Series {
		n += len(s.Data)
	}
	return n
}

// ChartSeries represents a data series in a chart.
// For pie charts there is exactly one series whose points are the slices.
// For scatter charts there is one series per color category.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
// Pie slices use Label/Value; scatter points use X/Value and carry Label as hover text.
type ChartPoint struct {
	Label string  `json:"label"`
	X     float64 `json:"x,omitempty"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
