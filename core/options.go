package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidOptions is wrapped by every error DecodeOptions returns.
var ErrInvalidOptions = errors.New("invalid analysis options")

// optionFields enumerates the schema of an options payload, in the order
// errors are reported.
var optionFields = []struct {
	name string
	set  func(*AnalysisOptions, bool)
}{
	{"extract_metadata", func(o *AnalysisOptions, v bool) { o.ExtractMetadata = v }},
	{"reverse_image_search", func(o *AnalysisOptions, v bool) { o.ReverseImageSearch = v }},
	{"plot_coordinates", func(o *AnalysisOptions, v bool) { o.PlotCoordinates = v }},
}

// DecodeOptions validates payload against the AnalysisOptions schema.
//
// The payload must be a JSON object carrying every field as a boolean.
// Unknown fields are ignored.
func DecodeOptions(payload []byte) (AnalysisOptions, error) {
	var opts AnalysisOptions

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return opts, fmt.Errorf("%w: empty payload", ErrInvalidOptions)
	}
	if trimmed[0] != '{' {
		return opts, fmt.Errorf("%w: expected a JSON object", ErrInvalidOptions)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	for _, f := range optionFields {
		msg, ok := raw[f.name]
		if !ok {
			return opts, fmt.Errorf("%w: missing field %q", ErrInvalidOptions, f.name)
		}
		// json.Unmarshal accepts null for a bool and leaves it unchanged.
		var v bool
		if err := json.Unmarshal(msg, &v); err != nil || bytes.Equal(msg, []byte("null")) {
			return opts, fmt.Errorf("%w: field %q must be a boolean, got %s", ErrInvalidOptions, f.name, msg)
		}
		f.set(&opts, v)
	}
	return opts, nil
}
