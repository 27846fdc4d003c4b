package dashboard

import (
	"errors"
	"fmt"

	"github.com/spektr-org/launchdash/dataset"
	"github.com/spektr-org/launchdash/engine"
)

// InputID names a control that publishes change events.
type InputID string

// PanelID names a chart panel that an update function writes.
type PanelID string

// Controls and panels of the launch dashboard.
const (
	InputSite    InputID = "site-dropdown"
	InputPayload InputID = "payload-slider"

	PanelPie     PanelID = "success-pie-chart"
	PanelScatter PanelID = "success-payload-scatter-chart"
)

// UpdateFunc recomputes one panel from the full current state.
// Implementations must be pure: no captured mutable state, no side effects.
type UpdateFunc func(ds *dataset.Dataset, st State) *engine.ChartConfig

// Binding subscribes an update function to a set of inputs.
type Binding struct {
	Output PanelID
	Inputs []InputID
	Update UpdateFunc
}

// subscribes reports whether b listens to any of changed.
func (b Binding) subscribes(changed []InputID) bool {
	for _, in := range b.Inputs {
		for _, c := range changed {
			if in == c {
				return true
			}
		}
	}
	return false
}

// Registry errors.
var (
	ErrDuplicateOutput = errors.New("panel already has an update function")
	ErrInvalidBinding  = errors.New("invalid binding")
)

// Registry holds the callback bindings. Build it once at startup, then share
// it read-only between sessions.
type Registry struct {
	bindings []Binding
	outputs  map[PanelID]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{outputs: make(map[PanelID]bool)}
}

// Register adds a binding. Each panel may have only one update function.
func (r *Registry) Register(b Binding) error {
	switch {
	case b.Output == "":
		return fmt.Errorf("%w: empty output", ErrInvalidBinding)
	case len(b.Inputs) == 0:
		return fmt.Errorf("%w: %s has no inputs", ErrInvalidBinding, b.Output)
	case b.Update == nil:
		return fmt.Errorf("%w: %s has no update function", ErrInvalidBinding, b.Output)
	}
	if r.outputs[b.Output] {
		return fmt.Errorf("%w: %s", ErrDuplicateOutput, b.Output)
	}

	inputs := make([]InputID, len(b.Inputs))
	copy(inputs, b.Inputs)
	b.Inputs = inputs

	r.outputs[b.Output] = true
	r.bindings = append(r.bindings, b)
	return nil
}

// Bindings returns all bindings in registration order.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// Subscribers returns the bindings listening to any of changed, in
// registration order. A binding appears at most once however many of its
// inputs changed.
func (r *Registry) Subscribers(changed ...InputID) []Binding {
	var out []Binding
	for _, b := range r.bindings {
		if b.subscribes(changed) {
			out = append(out, b)
		}
	}
	return out
}

// Panels returns every registered output in registration order.
func (r *Registry) Panels() []PanelID {
	out := make([]PanelID, len(r.bindings))
	for i, b := range r.bindings {
		out[i] = b.Output
	}
	return out
}

// DefaultRegistry wires the two launch dashboard panels:
// the pie follows the site selector, the scatter follows both controls.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range []Binding{
		{Output: PanelPie, Inputs: []InputID{InputSite}, Update: updateCategoryBreakdown},
		{Output: PanelScatter, Inputs: []InputID{InputSite, InputPayload}, Update: updatePayloadCorrelation},
	} {
		if err := r.Register(b); err != nil {
			panic(err) // static wiring
		}
	}
	return r
}
