package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestCloneIsDeep(t *testing.T) {
	lat, w := 40.5, uint32(10)
	m := &MetadataRecord{
		CameraMake:  strPtr("Acme"),
		GPSLatitude: &lat,
		Width:       &w,
		AllFields:   []RawField{{Tag: "Make", Value: "Acme"}},
	}

	c := m.Clone()
	if !reflect.DeepEqual(c, m) {
		t.Fatalf("Clone() = %+v, want %+v", c, m)
	}

	*c.CameraMake = "Zenith"
	*c.GPSLatitude = 0
	*c.Width = 99
	c.AllFields[0].Value = "Zenith"

	if *m.CameraMake != "Acme" || lat != 40.5 || w != 10 || m.AllFields[0].Value != "Acme" {
		t.Errorf("mutating the clone changed the original: %+v", m)
	}

	var nilRecord *MetadataRecord
	if nilRecord.Clone() != nil {
		t.Error("Clone() of nil record is not nil")
	}
}

func TestSummary(t *testing.T) {
	w, h := uint32(4000), uint32(3000)
	tests := []struct {
		name string
		m    MetadataRecord
		want string
	}{
		{"make and model", MetadataRecord{CameraMake: strPtr("Acme"), CameraModel: strPtr("X1")}, "Acme X1"},
		{"model only", MetadataRecord{CameraModel: strPtr("X1")}, "X1"},
		{"make only", MetadataRecord{CameraMake: strPtr("Acme")}, "Acme"},
		{"dimensions", MetadataRecord{Width: &w, Height: &h}, "4000x3000"},
		{"fields", MetadataRecord{AllFields: []RawField{{Tag: "A"}, {Tag: "B"}}}, "2 fields"},
		{"empty", MetadataRecord{}, "no metadata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmptyRecordJSON(t *testing.T) {
	b, err := json.Marshal(NewMetadataRecord())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"camera_make", "gps_latitude", "orientation", "iso", "focal_length"} {
		if v, ok := got[key]; !ok || v != nil {
			t.Errorf("%s = %v (present %v), want null", key, v, ok)
		}
	}
	if fields, ok := got["all_fields"].([]any); !ok || len(fields) != 0 {
		t.Errorf("all_fields = %v, want []", got["all_fields"])
	}
}
