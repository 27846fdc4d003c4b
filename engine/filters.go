package engine

// ============================================================================
// FILTERS — Dimension and Range Filtering via RecordView
// ============================================================================
// Single-pass filters that return a SubView (index list into parent).
// Dimension matching is exact: "KSC LC-39A" never matches "ksc lc-39a".
// ============================================================================

// ApplyFilters returns a view of records matching all dimension filters.
// Dimensions are AND-combined; values within a dimension are OR-combined.
// Empty filter = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool)
	for dim, allowed := range filters.Dimensions {
		if len(allowed) > 0 {
			sets[dim] = toSet(allowed)
		}
	}

	if len(sets) == 0 {
		return view
	}

	// Single pass — record passes if it matches ALL dimension filters
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for dim, set := range sets {
			if !set[view.Dimension(i, dim)] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

// ApplyRange returns a view of records whose measure lies in r, both ends inclusive.
// An inverted range (Low > High) matches nothing.
func ApplyRange(view RecordView, measure string, r Range) RecordView {
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if r.Contains(view.Measure(i, measure)) {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
