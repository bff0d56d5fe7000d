// Package core defines the shared types, option decoding, and format
// detection for the image analyzer.
package core

import "fmt"

// RawField represents a single metadata tag as found in the container.
type RawField struct {
	Tag   string `json:"tag"`   // Tag name (e.g. "Make", "GPSLatitude")
	Value string `json:"value"` // Rendered display value, units included
}

// MetadataRecord holds everything extracted from a single image.
//
// Every scalar is optional: nil means the value was not found in the source.
// AllFields is the complete dump of the container in traversal order, and
// includes tags that were also mapped to a scalar.
type MetadataRecord struct {
	CameraMake   *string  `json:"camera_make"`
	CameraModel  *string  `json:"camera_model"`
	DateTaken    *string  `json:"date_taken"`
	GPSLatitude  *float64 `json:"gps_latitude"`
	GPSLongitude *float64 `json:"gps_longitude"`
	GPSAltitude  *float64 `json:"gps_altitude"`
	Software     *string  `json:"software"`
	Width        *uint32  `json:"width"`
	Height       *uint32  `json:"height"`
	Orientation  *uint16  `json:"orientation"`
	ISO          *uint32  `json:"iso"`
	ExposureTime *string  `json:"exposure_time"`
	FNumber      *string  `json:"f_number"`
	FocalLength  *string  `json:"focal_length"`

	AllFields []RawField `json:"all_fields"`
}

// NewMetadataRecord returns an empty record with a non-nil field list, so an
// image without metadata serialises as an empty array rather than null.
func NewMetadataRecord() *MetadataRecord {
	return &MetadataRecord{AllFields: []RawField{}}
}

// Clone returns a deep copy of m.
func (m *MetadataRecord) Clone() *MetadataRecord {
	if m == nil {
		return nil
	}
	c := &MetadataRecord{
		CameraMake:   clonePtr(m.CameraMake),
		CameraModel:  clonePtr(m.CameraModel),
		DateTaken:    clonePtr(m.DateTaken),
		GPSLatitude:  clonePtr(m.GPSLatitude),
		GPSLongitude: clonePtr(m.GPSLongitude),
		GPSAltitude:  clonePtr(m.GPSAltitude),
		Software:     clonePtr(m.Software),
		Width:        clonePtr(m.Width),
		Height:       clonePtr(m.Height),
		Orientation:  clonePtr(m.Orientation),
		ISO:          clonePtr(m.ISO),
		ExposureTime: clonePtr(m.ExposureTime),
		FNumber:      clonePtr(m.FNumber),
		FocalLength:  clonePtr(m.FocalLength),
		AllFields:    make([]RawField, len(m.AllFields)),
	}
	copy(c.AllFields, m.AllFields)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// HasGPS reports whether both coordinates were resolved.
func (m *MetadataRecord) HasGPS() bool {
	return m.GPSLatitude != nil && m.GPSLongitude != nil
}

// Summary returns a short string of key fields for quick display.
func (m *MetadataRecord) Summary() string {
	switch {
	case m.CameraMake != nil && m.CameraModel != nil:
		return *m.CameraMake + " " + *m.CameraModel
	case m.CameraModel != nil:
		return *m.CameraModel
	case m.CameraMake != nil:
		return *m.CameraMake
	case m.Width != nil && m.Height != nil:
		return fmt.Sprintf("%dx%d", *m.Width, *m.Height)
	case len(m.AllFields) > 0:
		return fmt.Sprintf("%d fields", len(m.AllFields))
	}
	return "no metadata"
}

// AnalysisOptions selects which stages an analysis runs.
type AnalysisOptions struct {
	ExtractMetadata    bool `json:"extract_metadata"`
	ReverseImageSearch bool `json:"reverse_image_search"`
	// PlotCoordinates is reserved for a presentation layer and has no
	// effect on extraction.
	PlotCoordinates bool `json:"plot_coordinates"`
}

// ReverseSearchResult is the payload returned by reverse image search.
type ReverseSearchResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
