package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from aggregated Groups
// ============================================================================

// TableSpec describes a summary table over aggregated groups.
type TableSpec struct {
	Title       string
	GroupKey    string
	Aggregation string
}

// BuildTable produces one row per group plus a totals summary.
func BuildTable(spec TableSpec, groups []Group) *TableData {
	groupLabel := "Group"
	if spec.GroupKey != "" {
		groupLabel = LabelForDimension(spec.GroupKey)
	}
	valueLabel := LabelForAggregation(spec.Aggregation)

	columns := []Column{
		{Key: "group", Label: groupLabel, Type: "text", Align: "left"},
		{Key: "value", Label: valueLabel, Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, len(groups))
	var totalValue float64

	for _, g := range groups {
		rows = append(rows, []string{
			g.Label,
			formatNumber(g.Value),
		})
		totalValue += g.Value
	}

	return &TableData{
		Title:   spec.Title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%d groups)", len(groups)),
			Values: map[string]string{
				"value": formatNumber(totalValue),
			},
		},
	}
}

// formatNumber prints whole numbers with thousands separators and
// fractional values with 2 decimals.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return FormatInt(int(v))
	}
	return fmt.Sprintf("%.2f", v)
}
