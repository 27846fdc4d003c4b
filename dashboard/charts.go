package dashboard

import (
	"fmt"

	"github.com/spektr-org/launchdash/dataset"
	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/schema"
)

// ============================================================================
// CHART UPDATE FUNCTIONS
// ============================================================================
// Both functions are pure: same dataset and inputs, same chart. They never
// fail; a site that matches nothing yields a chart with no points.
// ============================================================================

// TitleAllSites is the pie title when every site is selected.
const TitleAllSites = "Total Successful Launches by Site"

// SiteTitle returns the pie title for one site.
func SiteTitle(site string) string {
	return fmt.Sprintf("Success vs. Failed for %s", site)
}

// CorrelationTitle returns the scatter title for a site selection.
func CorrelationTitle(site string) string {
	if site == AllSites {
		return "Correlation between Payload and Success for All Sites"
	}
	return fmt.Sprintf("Correlation between Payload and Success for %s", site)
}

// CategoryBreakdown returns the proportion chart for a site selection.
//
// For AllSites the slices are the precomputed success counts per site. For a
// single site the slices count each landing outcome code among that site's
// launches. Slices are ordered by label.
func CategoryBreakdown(ds *dataset.Dataset, site string) *engine.ChartConfig {
	if site == AllSites {
		return engine.BuildPie(engine.PieSpec{
			Title:       TitleAllSites,
			LabelKey:    schema.KeySite,
			Aggregation: engine.AggCount,
		}, SuccessGroups(ds))
	}

	atSite := engine.ApplyFilters(ds.View(), siteFilter(site))
	groups := engine.GroupAndAggregate(atSite, engine.GroupSpec{
		By:          schema.KeyLandingOutcome,
		Aggregation: engine.AggCount,
		Sort:        engine.SortLabelAsc,
	})
	return engine.BuildPie(engine.PieSpec{
		Title:       SiteTitle(site),
		LabelKey:    schema.KeyLandingOutcome,
		Aggregation: engine.AggCount,
	}, groups)
}

// SuccessGroups converts the precomputed success summary into groups ordered
// by site name.
func SuccessGroups(ds *dataset.Dataset) []engine.Group {
	summary := ds.SiteSummarySorted()
	groups := make([]engine.Group, len(summary))
	for i, row := range summary {
		groups[i] = engine.Group{
			Key:   row.Site,
			Label: row.Site,
			Value: float64(row.Successes),
			Count: row.Successes,
		}
	}
	return groups
}

// PayloadCorrelation returns the payload vs. class scatter chart.
//
// Records are filtered by site first (skipped for AllSites), then by payload
// within rng, inclusive on both ends. Points are colored by landing outcome.
func PayloadCorrelation(ds *dataset.Dataset, site string, rng engine.Range) *engine.ChartConfig {
	view := ds.View()
	if site != AllSites {
		view = engine.ApplyFilters(view, siteFilter(site))
	}
	view = engine.ApplyRange(view, schema.KeyPayloadMass, rng)

	return engine.BuildScatter(engine.ScatterSpec{
		Title:    CorrelationTitle(site),
		XMeasure: schema.KeyPayloadMass,
		YMeasure: schema.KeyClass,
		ColorBy:  schema.KeyLandingOutcome,
		LabelBy:  schema.KeySite,
		XLabel:   schema.ColumnPayloadMass,
		YLabel:   schema.ColumnClass,
		XRange:   &rng,
	}, view)
}

func siteFilter(site string) engine.Filters {
	return engine.Where(schema.KeySite, site)
}

// Update-function adapters registered with the callback registry.

func updateCategoryBreakdown(ds *dataset.Dataset, st State) *engine.ChartConfig {
	return CategoryBreakdown(ds, st.Site)
}

func updatePayloadCorrelation(ds *dataset.Dataset, st State) *engine.ChartConfig {
	return PayloadCorrelation(ds, st.Site, st.Payload)
}
