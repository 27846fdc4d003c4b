// Package dataset loads the launch records CSV into an immutable, shareable
// context object and precomputes the per-site success summary.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/helpers"
	"github.com/spektr-org/launchdash/logging"
	"github.com/spektr-org/launchdash/schema"
)

// ErrEmpty is returned when a dataset would contain no launches.
var ErrEmpty = errors.New("dataset has no launch records")

// Launch is one launch attempt.
type Launch struct {
	FlightNumber    int     `json:"flightNumber,omitempty"`
	Site            string  `json:"launchSite"`
	PayloadMass     float64 `json:"payloadMassKg"`
	LandingOutcome  string  `json:"landingOutcome"`
	Class           float64 `json:"class"`
	BoosterVersion  string  `json:"boosterVersion,omitempty"`
	BoosterCategory string  `json:"boosterVersionCategory,omitempty"`
}

// SiteSummary is the number of successful landings at one site.
type SiteSummary struct {
	Site      string `json:"launchSite"`
	Successes int    `json:"counts"`
}

// Dataset is the immutable launch table plus everything derived from it at load.
// It is safe for concurrent use: nothing mutates it after construction.
type Dataset struct {
	launches    []Launch
	view        engine.RecordView
	sites       []string
	siteSet     map[string]bool
	bounds      engine.Range
	summary     []SiteSummary
	successCode string
	source      string
}

var launchAdapter = engine.NewDomainAdapter[Launch]().
	Dimension(schema.KeySite, func(l Launch) string { return l.Site }).
	Dimension(schema.KeyLandingOutcome, func(l Launch) string { return l.LandingOutcome }).
	Dimension(schema.KeyBoosterVersion, func(l Launch) string { return l.BoosterVersion }).
	Dimension(schema.KeyBoosterCategory, func(l Launch) string { return l.BoosterCategory }).
	Measure(schema.KeyPayloadMass, func(l Launch) float64 { return l.PayloadMass }).
	Measure(schema.KeyClass, func(l Launch) float64 { return l.Class }).
	Measure(schema.KeyFlightNumber, func(l Launch) float64 { return float64(l.FlightNumber) })

// Load reads and parses the CSV at path.
func Load(path string, opts ...Option) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := Parse(data, append([]Option{WithSource(path)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return ds, nil
}

// Parse builds a Dataset from CSV bytes.
func Parse(data []byte, opts ...Option) (*Dataset, error) {
	records, err := helpers.ParseCSV(data, schema.Launch())
	if err != nil {
		return nil, err
	}

	launches := make([]Launch, len(records))
	for i, r := range records {
		launches[i] = Launch{
			FlightNumber:    int(r.Measures[schema.KeyFlightNumber]),
			Site:            r.Dimensions[schema.KeySite],
			PayloadMass:     r.Measures[schema.KeyPayloadMass],
			LandingOutcome:  r.Dimensions[schema.KeyLandingOutcome],
			Class:           r.Measures[schema.KeyClass],
			BoosterVersion:  r.Dimensions[schema.KeyBoosterVersion],
			BoosterCategory: r.Dimensions[schema.KeyBoosterCategory],
		}
	}
	return New(launches, opts...)
}

// New builds a Dataset from launches. The slice is copied.
func New(launches []Launch, opts ...Option) (*Dataset, error) {
	cfg := applyOptions(opts)
	if len(launches) == 0 {
		return nil, ErrEmpty
	}

	owned := make([]Launch, len(launches))
	copy(owned, launches)

	ds := &Dataset{
		launches:    owned,
		view:        launchAdapter.Bind(owned),
		successCode: cfg.SuccessCode,
		source:      cfg.Source,
	}

	ds.sites = engine.UniqueValues(ds.view, schema.KeySite)
	ds.siteSet = make(map[string]bool, len(ds.sites))
	for _, s := range ds.sites {
		ds.siteSet[s] = true
	}

	lo, hi, _ := engine.MeasureBounds(ds.view, schema.KeyPayloadMass)
	ds.bounds = engine.Range{Low: lo, High: hi}
	ds.summary = summarize(ds.view, ds.successCode)

	logging.New("dataset").Info("dataset ready",
		"source", ds.source,
		"launches", len(owned),
		"sites", len(ds.sites),
		"payload_min", lo,
		"payload_max", hi,
		"success_code", ds.successCode)

	return ds, nil
}

// summarize counts successful landings per site.
// Sites without a single success produce no row, and neither do records
// with a blank site, which Sites never lists.
func summarize(view engine.RecordView, successCode string) []SiteSummary {
	successes := engine.ApplyFilters(view, engine.Where(schema.KeyLandingOutcome, successCode))
	groups := engine.GroupAndAggregate(successes, engine.GroupSpec{By: schema.KeySite, Aggregation: engine.AggCount})

	out := make([]SiteSummary, 0, len(groups))
	for _, g := range groups {
		if g.Key == "" {
			continue
		}
		out = append(out, SiteSummary{Site: g.Key, Successes: g.Count})
	}
	return out
}

// View returns the read-only record view over all launches.
func (d *Dataset) View() engine.RecordView { return d.view }

// Len returns the number of launches.
func (d *Dataset) Len() int { return len(d.launches) }

// Launches returns a copy of all launches.
func (d *Dataset) Launches() []Launch {
	out := make([]Launch, len(d.launches))
	copy(out, d.launches)
	return out
}

// Sites returns the distinct launch sites in first-seen order.
func (d *Dataset) Sites() []string {
	out := make([]string, len(d.sites))
	copy(out, d.sites)
	return out
}

// HasSite reports whether site appears in the dataset.
func (d *Dataset) HasSite(site string) bool { return d.siteSet[site] }

// PayloadBounds returns the observed minimum and maximum payload mass.
func (d *Dataset) PayloadBounds() engine.Range { return d.bounds }

// SiteSummary returns a copy of the precomputed success counts per site.
func (d *Dataset) SiteSummary() []SiteSummary {
	out := make([]SiteSummary, len(d.summary))
	copy(out, d.summary)
	return out
}

// SiteSummarySorted returns the summary ordered by site name.
func (d *Dataset) SiteSummarySorted() []SiteSummary {
	out := d.SiteSummary()
	sort.Slice(out, func(i, j int) bool { return out[i].Site < out[j].Site })
	return out
}

// SuccessCode returns the landing outcome value that counts as a success.
func (d *Dataset) SuccessCode() string { return d.successCode }

// Source returns where the data came from, or "" when built in memory.
func (d *Dataset) Source() string { return d.source }
