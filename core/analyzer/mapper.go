package analyzer

import (
	"github.com/ankit-chaubey/image-analyzer/core"
	"github.com/ankit-chaubey/image-analyzer/core/container"
	"github.com/rwcarlsen/goexif/tiff"
)

// mapFields records every entry of dir as a raw field and routes the
// recognised ones into the typed scalars of m.
func mapFields(dir *container.Directory, m *core.MetadataRecord) {
	for _, e := range dir.Entries() {
		value := dir.Display(e)
		m.AllFields = append(m.AllFields, core.RawField{Tag: e.Tag.Name(), Value: value})

		switch e.Tag {
		case container.TagMake:
			m.CameraMake = ptr(value)
		case container.TagModel:
			m.CameraModel = ptr(value)
		case container.TagSoftware:
			m.Software = ptr(value)
		case container.TagExposureTime:
			m.ExposureTime = ptr(value)
		case container.TagFNumber:
			m.FNumber = ptr(value)
		case container.TagFocalLength:
			m.FocalLength = ptr(value)

		case container.TagDateTime, container.TagDateTimeOriginal, container.TagDateTimeDigitized:
			if m.DateTaken == nil {
				m.DateTaken = ptr(value)
			}

		case container.TagOrientation:
			if e.IFD != container.Primary {
				continue
			}
			if v, ok := firstUint(e.Value); ok {
				m.Orientation = ptr(uint16(v))
			}

		case container.TagISOSpeedRatings, container.TagISOSpeed:
			if v, ok := firstUint(e.Value); ok {
				m.ISO = ptr(uint32(v))
			}

		case container.TagGPSAltitude:
			if v, ok := firstRational(e.Value); ok {
				m.GPSAltitude = ptr(v)
			}

		case container.TagGPSLatitude, container.TagGPSLongitude:
			// Needs the hemisphere reference; see resolveGPS.
		}
	}
}

// firstUint reads the first value of a BYTE, SHORT or LONG tag.
func firstUint(t *tiff.Tag) (uint64, bool) {
	if t == nil || t.Count == 0 {
		return 0, false
	}
	switch t.Type {
	case tiff.DTByte, tiff.DTShort, tiff.DTLong:
	default:
		return 0, false
	}
	v, err := t.Int64(0)
	if err != nil || v < 0 {
		return 0, false
	}
	return uint64(v), true
}

// firstRational reads the first value of an unsigned RATIONAL tag.
func firstRational(t *tiff.Tag) (float64, bool) {
	vals, ok := rationals(t)
	if !ok || len(vals) == 0 {
		return 0, false
	}
	return vals[0], true
}

// rationals returns every value of an unsigned RATIONAL tag as a float.
// A zero denominator fails the whole tag.
func rationals(t *tiff.Tag) ([]float64, bool) {
	if t == nil || t.Type != tiff.DTRational {
		return nil, false
	}
	out := make([]float64, 0, t.Count)
	for i := 0; i < int(t.Count); i++ {
		num, den, err := t.Rat2(i)
		if err != nil || den == 0 {
			return nil, false
		}
		out = append(out, float64(num)/float64(den))
	}
	return out, true
}

func ptr[T any](v T) *T { return &v }
