package schema

// ============================================================================
// SCHEMA — Describes the shape of a dataset for the parser and the engine
// ============================================================================
// A Config maps CSV headers (exact text) onto engine keys. Dimensions become
// string fields, measures become float64 fields. Required columns must be
// present in the header row; optional ones are picked up when they are.
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions" yaml:"dimensions"`
	Measures   []MeasureMeta   `json:"measures" yaml:"measures"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key         string `json:"key" yaml:"key"`
	Column      string `json:"column" yaml:"column"` // CSV header, matched exactly
	DisplayName string `json:"displayName" yaml:"displayName"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// MeasureMeta describes a numeric field.
type MeasureMeta struct {
	Key         string `json:"key" yaml:"key"`
	Column      string `json:"column" yaml:"column"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Unit        string `json:"unit,omitempty" yaml:"unit,omitempty"` // "kg", "flag"
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// Launch dataset keys.
const (
	KeySite            = "launch_site"
	KeyLandingOutcome  = "landing_outcome"
	KeyBoosterVersion  = "booster_version"
	KeyBoosterCategory = "booster_version_category"
	KeyPayloadMass     = "payload_mass_kg"
	KeyClass           = "class"
	KeyFlightNumber    = "flight_number"
)

// Launch dataset column headers. These match the fixed CSV export and must
// not be renamed.
const (
	ColumnSite            = "Launch Site"
	ColumnLandingOutcome  = "Landing Outcome"
	ColumnBoosterVersion  = "Booster Version"
	ColumnBoosterCategory = "Booster Version Category"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnClass           = "class"
	ColumnFlightNumber    = "Flight Number"
)

// Launch returns the schema of the launch records CSV.
func Launch() Config {
	return Config{
		Name:        "Launch Records",
		Version:     "1.0",
		Description: "One row per launch attempt: site, payload, landing outcome and mission class.",
		Dimensions: []DimensionMeta{
			{Key: KeySite, Column: ColumnSite, DisplayName: "Launch Site", Required: true},
			{Key: KeyLandingOutcome, Column: ColumnLandingOutcome, DisplayName: "Landing Outcome", Required: true},
			{Key: KeyBoosterVersion, Column: ColumnBoosterVersion, DisplayName: "Booster Version"},
			{Key: KeyBoosterCategory, Column: ColumnBoosterCategory, DisplayName: "Booster Version Category"},
		},
		Measures: []MeasureMeta{
			{Key: KeyPayloadMass, Column: ColumnPayloadMass, DisplayName: "Payload Mass (kg)", Unit: "kg", Required: true},
			{Key: KeyClass, Column: ColumnClass, DisplayName: "class", Unit: "flag", Required: true},
			{Key: KeyFlightNumber, Column: ColumnFlightNumber, DisplayName: "Flight Number"},
		},
	}
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// RequiredColumns returns the headers that must be present, dimensions first.
func (c Config) RequiredColumns() []string {
	var cols []string
	for _, d := range c.Dimensions {
		if d.Required {
			cols = append(cols, d.Column)
		}
	}
	for _, m := range c.Measures {
		if m.Required {
			cols = append(cols, m.Column)
		}
	}
	return cols
}

// DisplayName returns the display name registered for key, or key itself.
func (c Config) DisplayName(key string) string {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d.DisplayName
		}
	}
	for _, m := range c.Measures {
		if m.Key == key {
			return m.DisplayName
		}
	}
	return key
}
