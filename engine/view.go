package engine

// ============================================================================
// RECORD VIEW — read-only, index-addressed access to launch records
// ============================================================================
// Builders and filters only ever read through RecordView. Two
// implementations exist:
//   DomainView[T] — typed structs read through registered accessors
//   SubView       — a filtered subset, stored as indices into a root view
// ============================================================================

// RecordView provides indexed access to a dataset.
// Dimension and Measure are called in tight loops and must not allocate.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) float64
	DimensionKeys() []string
	MeasureKeys() []string
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView selects rows of a root view by index. Filtering a SubView again
// maps the new indices straight onto the root, so chains of filters never
// nest more than one level deep.
type SubView struct {
	root    RecordView
	indices []int
}

// newSubView returns the rows of parent at indices, which must be ascending
// positions within parent.
func newSubView(parent RecordView, indices []int) RecordView {
	if sv, ok := parent.(*SubView); ok {
		mapped := make([]int, len(indices))
		for i, idx := range indices {
			mapped[i] = sv.indices[idx]
		}
		return &SubView{root: sv.root, indices: mapped}
	}
	return &SubView{root: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.root.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.root.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.root.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.root.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER — typed struct access
// ============================================================================
//
//	adapter := engine.NewDomainAdapter[Launch]().
//	    Dimension("launch_site", func(l Launch) string { return l.Site }).
//	    Measure("payload_mass_kg", func(l Launch) float64 { return l.PayloadMass })
//
//	view := adapter.Bind(launches)
//
// ============================================================================

// DomainAdapter maps dimension and measure keys onto fields of T.
// Declare it once at package level; every Bind shares its accessors.
type DomainAdapter[T any] struct {
	dimKeys  []string
	measKeys []string
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
}

// NewDomainAdapter returns an adapter with no accessors.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers the accessor for a categorical key. Registering a key
// twice replaces the accessor and keeps the original key order.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, ok := a.dims[key]; !ok {
		a.dimKeys = append(a.dimKeys, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers the accessor for a numeric key.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, ok := a.meas[key]; !ok {
		a.measKeys = append(a.measKeys, key)
	}
	a.meas[key] = fn
	return a
}

// Bind wraps data without copying it. The caller must not mutate data while
// the view is in use.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{data: data, adapter: a}
}

// DomainView reads rows of T through its adapter.
type DomainView[T any] struct {
	data    []T
	adapter *DomainAdapter[T]
}

func (v *DomainView[T]) Len() int { return len(v.data) }

// Dimension returns "" for an unknown key or an out-of-range index.
func (v *DomainView[T]) Dimension(i int, key string) string {
	fn, ok := v.adapter.dims[key]
	if !ok || i < 0 || i >= len(v.data) {
		return ""
	}
	return fn(v.data[i])
}

// Measure returns 0 for an unknown key or an out-of-range index.
func (v *DomainView[T]) Measure(i int, key string) float64 {
	fn, ok := v.adapter.meas[key]
	if !ok || i < 0 || i >= len(v.data) {
		return 0
	}
	return fn(v.data[i])
}

func (v *DomainView[T]) DimensionKeys() []string { return v.adapter.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.adapter.measKeys }
