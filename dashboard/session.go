package dashboard

import (
	"sync"

	"github.com/spektr-org/launchdash/dataset"
	"github.com/spektr-org/launchdash/engine"
)

// RenderFunc observes a panel being replaced.
type RenderFunc func(panel PanelID, chart *engine.ChartConfig)

// Session is one user's dashboard: their control state and the charts
// currently shown. The dataset and registry are shared; the session is not.
type Session struct {
	ds  *dataset.Dataset
	reg *Registry

	mu        sync.Mutex
	state     State
	panels    map[PanelID]*engine.ChartConfig
	observers []RenderFunc
}

// NewSession creates a session with default controls and renders every
// registered panel once. The given observers are attached first, so they
// see that initial render as well as every later update.
func NewSession(ds *dataset.Dataset, reg *Registry, observers ...RenderFunc) *Session {
	s := &Session{
		ds:        ds,
		reg:       reg,
		state:     NewState(ds),
		panels:    make(map[PanelID]*engine.ChartConfig),
		observers: append([]RenderFunc(nil), observers...),
	}
	for _, b := range reg.Bindings() {
		chart := b.Update(ds, s.state)
		s.panels[b.Output] = chart
		for _, obs := range s.observers {
			obs(b.Output, chart)
		}
	}
	return s
}

// OnRender registers an observer called after each panel update.
// Observers run outside the session lock, in registration order.
func (s *Session) OnRender(fn RenderFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// State returns the current control state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Panel returns the chart currently shown in panel.
func (s *Session) Panel(id PanelID) (*engine.ChartConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.panels[id]
	return c, ok
}

// Panels returns a snapshot of every panel.
func (s *Session) Panels() map[PanelID]*engine.ChartConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[PanelID]*engine.ChartConfig, len(s.panels))
	for k, v := range s.panels {
		out[k] = v
	}
	return out
}

// SetSite changes the category selector. An unknown site is rejected and
// leaves the session untouched.
func (s *Session) SetSite(site string) error {
	return s.mutate(func(cur State) (State, error) {
		return cur.WithSite(s.ds, site)
	})
}

// SetRange changes the payload range and returns the clamped value stored.
func (s *Session) SetRange(low, high float64) engine.Range {
	var stored engine.Range
	_ = s.mutate(func(cur State) (State, error) {
		next := cur.WithRange(s.ds, low, high)
		stored = next.Payload
		return next, nil
	})
	return stored
}

// Apply sets both controls in one change event. rng == nil keeps the
// current range.
func (s *Session) Apply(site string, rng *engine.Range) error {
	return s.mutate(func(cur State) (State, error) {
		next, err := cur.WithSite(s.ds, site)
		if err != nil {
			return cur, err
		}
		if rng != nil {
			next = next.WithRange(s.ds, rng.Low, rng.High)
		}
		return next, nil
	})
}

// mutate applies fn to the state and publishes one change event naming every
// input whose value changed. Each subscribed binding runs exactly once;
// nothing runs when nothing changed.
func (s *Session) mutate(fn func(State) (State, error)) error {
	s.mu.Lock()

	next, err := fn(s.state)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	var changed []InputID
	if next.Site != s.state.Site {
		changed = append(changed, InputSite)
	}
	if next.Payload != s.state.Payload {
		changed = append(changed, InputPayload)
	}
	s.state = next

	type update struct {
		panel PanelID
		chart *engine.ChartConfig
	}
	var updates []update
	for _, b := range s.reg.Subscribers(changed...) {
		chart := b.Update(s.ds, next)
		s.panels[b.Output] = chart
		updates = append(updates, update{b.Output, chart})
	}
	observers := append([]RenderFunc(nil), s.observers...)
	s.mu.Unlock()

	for _, u := range updates {
		for _, obs := range observers {
			obs(u.panel, u.chart)
		}
	}
	return nil
}
