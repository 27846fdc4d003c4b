package helpers

import (
	"errors"
	"strings"
	"testing"

	"github.com/spektr-org/launchdash/schema"
)

var launchCSV = []byte(`Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Landing Outcome
1,CCAFS LC-40,0,0,F9 v1.0  B0003,0
2,VAFB SLC-4E,1,9600,F9 FT B1029.1,1
3,KSC LC-39A,1,3696.65,F9 FT B1032.1,1
`)

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(launchCSV, schema.Launch())
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	r := records[2]
	if r.Dimensions[schema.KeySite] != "KSC LC-39A" {
		t.Errorf("site = %q", r.Dimensions[schema.KeySite])
	}
	if r.Dimensions[schema.KeyLandingOutcome] != "1" {
		t.Errorf("landing outcome = %q", r.Dimensions[schema.KeyLandingOutcome])
	}
	if r.Measures[schema.KeyPayloadMass] != 3696.65 {
		t.Errorf("payload = %v", r.Measures[schema.KeyPayloadMass])
	}
	if r.Measures[schema.KeyClass] != 1 || r.Measures[schema.KeyFlightNumber] != 3 {
		t.Errorf("measures = %v", r.Measures)
	}
	if _, ok := r.Dimensions[schema.KeyBoosterCategory]; ok {
		t.Error("absent optional column should not produce a dimension")
	}
}

func TestParseCSV_BOMHeader(t *testing.T) {
	data := append([]byte("\ufeff"), []byte("Launch Site,class,Payload Mass (kg),Landing Outcome\nA,1,100,1\n")...)
	if _, err := ParseCSV(data, schema.Launch()); err != nil {
		t.Fatalf("ParseCSV with BOM failed: %v", err)
	}
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		is   error
	}{
		{"empty input", "", nil},
		{"missing column", "Launch Site,class\nA,1\n", schema.ErrMissingColumn},
		{"header only", "Launch Site,class,Payload Mass (kg),Landing Outcome\n", ErrNoRows},
		{"bad number", "Launch Site,class,Payload Mass (kg),Landing Outcome\nA,1,heavy,1\n", nil},
		{"nan payload", "Launch Site,class,Payload Mass (kg),Landing Outcome\nA,1,NaN,1\n", ErrNotFinite},
		{"infinite class", "Launch Site,class,Payload Mass (kg),Landing Outcome\nA,+Inf,100,1\n", ErrNotFinite},
		{"ragged row", "Launch Site,class,Payload Mass (kg),Landing Outcome\nA,1,100\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV([]byte(tt.data), schema.Launch())
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error %v is not %v", err, tt.is)
			}
		})
	}
}

func TestParseCSV_NonFiniteReportsLine(t *testing.T) {
	data := "Launch Site,class,Payload Mass (kg),Landing Outcome\nA,1,100,1\nB,0,inf,0\n"
	_, err := ParseCSV([]byte(data), schema.Launch())
	if !errors.Is(err, ErrNotFinite) {
		t.Fatalf("error %v is not %v", err, ErrNotFinite)
	}
	if want := `line 3: column "Payload Mass (kg)"`; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not contain %q", err, want)
	}
}
