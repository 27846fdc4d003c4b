package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spektr-org/launchdash/dashboard"
	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/render"
)

type chartOptions struct {
	panel  string
	site   string
	low    float64
	high   float64
	format string
	out    string
}

func newChartCmd(opts *rootOptions) *cobra.Command {
	co := &chartOptions{}
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute one dashboard chart and write it as JSON, CSV or PNG",
		Example: `  launchdash chart --panel pie
  launchdash chart --panel pie --site "KSC LC-39A" --format pretty
  launchdash chart --panel scatter --low 2000 --high 6000 --format png --out scatter.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChart(cmd, opts, co)
		},
	}
	f := cmd.Flags()
	f.StringVar(&co.panel, "panel", "pie", "pie or scatter")
	f.StringVar(&co.site, "site", dashboard.AllSites, "launch site, or ALL")
	f.Float64Var(&co.low, "low", 0, "payload range low bound in kg (default: dataset minimum)")
	f.Float64Var(&co.high, "high", 0, "payload range high bound in kg (default: dataset maximum)")
	f.StringVar(&co.format, "format", "json", "json, pretty, csv or png")
	f.StringVarP(&co.out, "out", "o", "", "output file (default: stdout)")
	return cmd
}

func runChart(cmd *cobra.Command, opts *rootOptions, co *chartOptions) error {
	switch co.format {
	case "json", "pretty", "csv", "png":
	default:
		return fmt.Errorf("unknown format %q (want json, pretty, csv or png)", co.format)
	}

	ds, err := opts.loadDataset()
	if err != nil {
		return err
	}
	if !dashboard.ValidSite(ds, co.site) {
		return fmt.Errorf("%w: %q (sites: %v)", dashboard.ErrUnknownSite, co.site, ds.Sites())
	}

	var chart *engine.ChartConfig
	switch co.panel {
	case "pie":
		chart = dashboard.CategoryBreakdown(ds, co.site)
	case "scatter":
		bounds := ds.PayloadBounds()
		low, high := bounds.Low, bounds.High
		if cmd.Flags().Changed("low") {
			low = co.low
		}
		if cmd.Flags().Changed("high") {
			high = co.high
		}
		chart = dashboard.PayloadCorrelation(ds, co.site, dashboard.ClampRange(bounds, low, high))
	default:
		return fmt.Errorf("unknown panel %q (want pie or scatter)", co.panel)
	}

	return withOutput(cmd, co.out, func(w io.Writer) error {
		return writeChart(w, chart, co.format, opts.cfg.Render)
	})
}

func writeChart(w io.Writer, chart *engine.ChartConfig, format string, size render.Size) error {
	switch format {
	case "json", "pretty":
		return writeJSON(w, chart, format)
	case "csv":
		return writeChartCSV(w, chart)
	case "png":
		err := render.PNG(w, chart, size)
		if errors.Is(err, render.ErrNoData) {
			return render.Placeholder(w, size)
		}
		return err
	}
	return fmt.Errorf("unknown format %q (want json, pretty, csv or png)", format)
}
