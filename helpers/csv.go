package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/schema"
)

// ============================================================================
// CSV HELPER — Parses CSV data into []engine.Record
// ============================================================================
// The caller reads the bytes from wherever they live. This helper converts
// them into generic Records using the schema. It is strict: a structural CSV
// error or a non-numeric or non-finite measure cell fails the whole parse.
// ============================================================================

// ErrNoRows is returned when the CSV has a header but no data rows.
var ErrNoRows = errors.New("csv has no data rows")

// ErrNotFinite is returned for measure cells such as "NaN" or "Inf".
var ErrNotFinite = errors.New("value is not a finite number")

// ParseCSV parses CSV bytes into Records using sch for column mapping.
// Each row becomes a Record with dimensions (string) and measures (numeric).
// Unmapped columns are skipped.
func ParseCSV(data []byte, sch schema.Config) ([]engine.Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	binding, err := schema.Bind(headers, sch)
	if err != nil {
		return nil, err
	}

	var records []engine.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		rec := engine.Record{
			Dimensions: make(map[string]string),
			Measures:   make(map[string]float64),
		}

		for i, val := range row {
			key := binding.Keys[i]
			if key == "" {
				continue
			}
			val = strings.TrimSpace(val)

			if !binding.IsMeasure[i] {
				rec.Dimensions[key] = val
				continue
			}
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %q: %w", line, headers[i], err)
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("line %d: column %q: %w", line, headers[i], ErrNotFinite)
			}
			rec.Measures[key] = f
		}

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRows
	}
	return records, nil
}
