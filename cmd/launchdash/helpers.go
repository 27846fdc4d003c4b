package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spektr-org/launchdash/engine"
)

// withOutput runs write against path, or the command's stdout when path is
// empty. The file is removed again if write fails.
func withOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// writeChartCSV flattens a chart into rows. Pie charts become label/value
// pairs; scatter charts get one row per point with its series.
func writeChartCSV(w io.Writer, chart *engine.ChartConfig) error {
	cw := csv.NewWriter(w)

	switch chart.ChartType {
	case engine.ChartScatter:
		_ = cw.Write([]string{"Series", "Label", orDefault(chart.XAxis, "X"), orDefault(chart.YAxis, "Value")})
		for _, s := range chart.Series {
			for _, p := range s.Data {
				_ = cw.Write([]string{s.Name, p.Label, fmtNum(p.X), fmtNum(p.Value)})
			}
		}
	default:
		_ = cw.Write([]string{orDefault(chart.XAxis, "Label"), orDefault(chart.YAxis, "Value")})
		for _, s := range chart.Series {
			for _, p := range s.Data {
				_ = cw.Write([]string{p.Label, fmtNum(p.Value)})
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeTableCSV(w io.Writer, table *engine.TableData) error {
	cw := csv.NewWriter(w)

	headers := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		headers[i] = c.Label
	}
	_ = cw.Write(headers)
	for _, row := range table.Rows {
		_ = cw.Write(unformat(row))
	}

	cw.Flush()
	return cw.Error()
}

// writeTable prints an aligned text table with its summary line.
func writeTable(w io.Writer, table *engine.TableData) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if table.Title != "" {
		fmt.Fprintln(w, table.Title)
	}
	labels := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		labels[i] = c.Label
	}
	fmt.Fprintln(tw, strings.Join(labels, "\t")+"\t")
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	if table.Summary != nil {
		fmt.Fprintf(tw, "%s\t%s\t\n", table.Summary.Label, table.Summary.Values["value"])
	}
	return tw.Flush()
}

// unformat strips thousands separators so CSV numbers stay machine-readable.
func unformat(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if i > 0 {
			v = strings.ReplaceAll(v, ",", "")
		}
		out[i] = v
	}
	return out
}

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
