package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ============================================================================
// AGGREGATORS — group → aggregate → sort → limit over a RecordView
// ============================================================================
// Each group keeps a SubView of its rows, so builders can drill into a
// group without copying records.
// ============================================================================

// Aggregations understood by GroupAndAggregate.
const (
	AggCount = "count"
	AggSum   = "sum"
	AggAvg   = "avg"
)

// Group orderings understood by SortGroups. Any other value keeps the
// first-seen order of the grouping pass.
const (
	SortValueDesc = "value_desc"
	SortValueAsc  = "value_asc"
	SortLabelAsc  = "label_asc"
	SortLabelDesc = "label_desc"
)

// GroupSpec describes one aggregation pass.
type GroupSpec struct {
	By          string // dimension key; empty collapses the view into one "Total" group
	Measure     string // ignored by AggCount
	Aggregation string
	Sort        string
	Limit       int // 0 keeps every group
}

// GroupAndAggregate runs spec over view. An empty view yields nil.
func GroupAndAggregate(view RecordView, spec GroupSpec) []Group {
	if view.Len() == 0 {
		return nil
	}

	var groups []Group
	if spec.By == "" {
		groups = []Group{{Key: "all", Label: "Total", View: view}}
	} else {
		groups = groupBy(view, spec.By)
	}

	for i := range groups {
		g := &groups[i]
		g.Count = g.View.Len()
		g.Value = aggregate(g.View, spec.Measure, spec.Aggregation)
	}

	SortGroups(groups, spec.Sort)

	if spec.Limit > 0 && len(groups) > spec.Limit {
		groups = groups[:spec.Limit]
	}
	return groups
}

// groupBy partitions view by one dimension, in first-seen order.
func groupBy(view RecordView, dimension string) []Group {
	pos := make(map[string]int)
	var keys []string
	var rows [][]int

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		p, ok := pos[key]
		if !ok {
			p = len(keys)
			pos[key] = p
			keys = append(keys, key)
			rows = append(rows, nil)
		}
		rows[p] = append(rows[p], i)
	}

	groups := make([]Group, len(keys))
	for p, key := range keys {
		groups[p] = Group{Key: key, Label: key, View: newSubView(view, rows[p])}
	}
	return groups
}

func aggregate(view RecordView, measure, aggregation string) float64 {
	switch aggregation {
	case AggSum:
		return SumMeasure(view, measure)
	case AggAvg:
		return AvgMeasure(view, measure)
	default:
		return float64(view.Len())
	}
}

// SumMeasure sums a measure across view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// AvgMeasure is the mean of a measure, or 0 for an empty view.
func AvgMeasure(view RecordView, measure string) float64 {
	if view.Len() == 0 {
		return 0
	}
	return SumMeasure(view, measure) / float64(view.Len())
}

// MeasureBounds returns the min and max of a measure in one pass.
// ok is false for an empty view.
func MeasureBounds(view RecordView, measure string) (lo, hi float64, ok bool) {
	n := view.Len()
	if n == 0 {
		return 0, 0, false
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		v := view.Measure(i, measure)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, true
}

// SortGroups orders groups in place. Ties keep their relative order.
func SortGroups(groups []Group, order string) {
	var less func(a, b Group) bool
	switch order {
	case SortValueDesc:
		less = func(a, b Group) bool { return a.Value > b.Value }
	case SortValueAsc:
		less = func(a, b Group) bool { return a.Value < b.Value }
	case SortLabelAsc:
		less = func(a, b Group) bool { return a.Key < b.Key }
	case SortLabelDesc:
		less = func(a, b Group) bool { return a.Key > b.Key }
	default:
		return
	}
	sort.SliceStable(groups, func(i, j int) bool { return less(groups[i], groups[j]) })
}

// UniqueValues returns the distinct non-empty values of a dimension in
// first-seen order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < view.Len(); i++ {
		v := view.Dimension(i, dimension)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// ============================================================================
// LABELS + FORMATTING
// ============================================================================

// FormatInt formats an integer with comma separators: 9600 → "9,600".
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LabelForDimension turns a snake_case key into a title: "launch_site" → "Launch Site".
func LabelForDimension(dimension string) string {
	words := strings.Fields(strings.ReplaceAll(dimension, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// LabelForAggregation names an aggregation for axis and column headers.
func LabelForAggregation(aggregation string) string {
	switch aggregation {
	case AggCount:
		return "Count"
	case AggSum:
		return "Total"
	case AggAvg:
		return "Average"
	}
	return "Value"
}
