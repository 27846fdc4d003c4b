// Package dashboard holds the reactive core of the launch dashboard: the
// control state a user adjusts, the pure chart update functions, and the
// callback registry that connects control changes to chart panels.
package dashboard

import (
	"errors"
	"fmt"
	"math"

	"github.com/spektr-org/launchdash/dataset"
	"github.com/spektr-org/launchdash/engine"
)

// AllSites is the category selector value meaning "every launch site".
const AllSites = "ALL"

// DefaultRangeStep is the payload slider granularity in kilograms.
const DefaultRangeStep = 1000

// ErrUnknownSite is returned when a site selection is neither AllSites nor a
// site present in the dataset.
var ErrUnknownSite = errors.New("unknown launch site")

// State is one user's current control values.
type State struct {
	Site    string       `json:"site"`
	Payload engine.Range `json:"payload"`
}

// NewState returns the default controls: all sites and the full payload range.
func NewState(ds *dataset.Dataset) State {
	return State{Site: AllSites, Payload: ds.PayloadBounds()}
}

// ValidSite reports whether site is an allowed category selection for ds.
func ValidSite(ds *dataset.Dataset, site string) bool {
	return site == AllSites || ds.HasSite(site)
}

// WithSite returns a copy of s selecting site.
func (s State) WithSite(ds *dataset.Dataset, site string) (State, error) {
	if !ValidSite(ds, site) {
		return s, fmt.Errorf("%w: %q", ErrUnknownSite, site)
	}
	s.Site = site
	return s, nil
}

// WithRange returns a copy of s with the payload range clamped into the
// dataset bounds.
func (s State) WithRange(ds *dataset.Dataset, low, high float64) State {
	s.Payload = ClampRange(ds.PayloadBounds(), low, high)
	return s
}

// ClampRange orders low/high and clamps both into bounds.
// NaN bounds fall back to the matching edge of bounds.
func ClampRange(bounds engine.Range, low, high float64) engine.Range {
	if math.IsNaN(low) {
		low = bounds.Low
	}
	if math.IsNaN(high) {
		high = bounds.High
	}
	if low > high {
		low, high = high, low
	}
	return engine.Range{
		Low:  math.Min(math.Max(low, bounds.Low), bounds.High),
		High: math.Max(math.Min(high, bounds.High), bounds.Low),
	}
}

// ============================================================================
// CONTROL DESCRIPTORS — what the presentation layer needs to draw inputs
// ============================================================================

// Option is one entry of the category selector.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SiteControl describes the category selector.
type SiteControl struct {
	ID      InputID  `json:"id"`
	Options []Option `json:"options"`
	Default string   `json:"default"`
}

// RangeControl describes the payload range selector.
type RangeControl struct {
	ID      InputID      `json:"id"`
	Min     float64      `json:"min"`
	Max     float64      `json:"max"`
	Step    float64      `json:"step"`
	Default engine.Range `json:"default"`
}

// MaxMarks bounds the number of slider tick positions.
const MaxMarks = 100

// Marks returns the slider tick positions: Min, every Step above it, and Max.
// When that would exceed MaxMarks, ticks fall on every k-th step instead.
func (r RangeControl) Marks() []float64 {
	if r.Step <= 0 || r.Max < r.Min {
		return []float64{r.Min, r.Max}
	}
	stride := r.Step
	if n := math.Ceil((r.Max - r.Min) / r.Step); n > MaxMarks-1 {
		stride *= math.Ceil(n / (MaxMarks - 1))
	}
	var marks []float64
	for i := 0; ; i++ {
		v := r.Min + float64(i)*stride
		if v >= r.Max {
			break
		}
		marks = append(marks, v)
	}
	return append(marks, r.Max)
}

// Controls bundles both control descriptors.
type Controls struct {
	Site    SiteControl  `json:"site"`
	Payload RangeControl `json:"payload"`
}

// NewControls builds the control descriptors for ds. A non-positive step
// falls back to DefaultRangeStep.
func NewControls(ds *dataset.Dataset, step float64) Controls {
	if step <= 0 {
		step = DefaultRangeStep
	}

	sites := ds.Sites()
	options := make([]Option, 0, len(sites)+1)
	options = append(options, Option{Label: AllSites, Value: AllSites})
	for _, s := range sites {
		options = append(options, Option{Label: s, Value: s})
	}

	bounds := ds.PayloadBounds()
	return Controls{
		Site: SiteControl{ID: InputSite, Options: options, Default: AllSites},
		Payload: RangeControl{
			ID:      InputPayload,
			Min:     bounds.Low,
			Max:     bounds.High,
			Step:    step,
			Default: bounds,
		},
	}
}
