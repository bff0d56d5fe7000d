package container

import (
	"fmt"

	"github.com/rwcarlsen/goexif/exif"
)

// Context is the kind of directory a tag lives in. Tag numbers are only
// unique within a context: GPS and Interop reuse the low numbers.
type Context uint8

const (
	TIFF Context = iota
	Exif
	GPS
	Interop
)

func (c Context) String() string {
	switch c {
	case TIFF:
		return "Tiff"
	case Exif:
		return "Exif"
	case GPS:
		return "Gps"
	case Interop:
		return "Interop"
	}
	return fmt.Sprintf("Context(%d)", uint8(c))
}

// Tag identifies a tag by directory context and number.
type Tag struct {
	Context Context
	ID      uint16
}

// Name returns the catalog name of t, or "Tag(<context>, <id>)" with a
// decimal id for tags outside the catalog.
func (t Tag) Name() string {
	if name, ok := catalog[t.Context][t.ID]; ok {
		return string(name)
	}
	return fmt.Sprintf("Tag(%s, %d)", t.Context, t.ID)
}

func (t Tag) String() string { return t.Name() }

// Tags the analyzer and renderer refer to by identity.
var (
	TagMake              = Tag{TIFF, 0x010F}
	TagModel             = Tag{TIFF, 0x0110}
	TagOrientation       = Tag{TIFF, 0x0112}
	TagXResolution       = Tag{TIFF, 0x011A}
	TagYResolution       = Tag{TIFF, 0x011B}
	TagResolutionUnit    = Tag{TIFF, 0x0128}
	TagSoftware          = Tag{TIFF, 0x0131}
	TagDateTime          = Tag{TIFF, 0x0132}
	TagExposureTime      = Tag{Exif, 0x829A}
	TagFNumber           = Tag{Exif, 0x829D}
	TagExposureProgram   = Tag{Exif, 0x8822}
	TagISOSpeedRatings   = Tag{Exif, 0x8827}
	TagISOSpeed          = Tag{Exif, 0x8833}
	TagDateTimeOriginal  = Tag{Exif, 0x9003}
	TagDateTimeDigitized = Tag{Exif, 0x9004}
	TagExposureBias      = Tag{Exif, 0x9204}
	TagSubjectDistance   = Tag{Exif, 0x9206}
	TagMeteringMode      = Tag{Exif, 0x9207}
	TagFlash             = Tag{Exif, 0x9209}
	TagFocalLength       = Tag{Exif, 0x920A}
	TagFocalLength35mm   = Tag{Exif, 0xA405}
	TagGPSLatitudeRef    = Tag{GPS, 0x0001}
	TagGPSLatitude       = Tag{GPS, 0x0002}
	TagGPSLongitudeRef   = Tag{GPS, 0x0003}
	TagGPSLongitude      = Tag{GPS, 0x0004}
	TagGPSAltitudeRef    = Tag{GPS, 0x0005}
	TagGPSAltitude       = Tag{GPS, 0x0006}
)

// isoSpeed has no goexif field name; EXIF 2.3 added it next to the older
// ISOSpeedRatings.
const isoSpeed exif.FieldName = "ISOSpeed"

// Sub-directory pointers. They are expanded in place and never emitted.
const (
	exifPointer    = 0x8769
	gpsPointer     = 0x8825
	interopPointer = 0xA005
)

// pointerContext reports the context of the sub-directory id points to when
// found in a directory of context c.
func pointerContext(c Context, id uint16) (Context, bool) {
	switch {
	case c == TIFF && id == exifPointer:
		return Exif, true
	case c == TIFF && id == gpsPointer:
		return GPS, true
	case c == Exif && id == interopPointer:
		return Interop, true
	}
	return 0, false
}

var catalog = map[Context]map[uint16]exif.FieldName{
	TIFF: {
		0x0100: exif.ImageWidth,
		0x0101: exif.ImageLength,
		0x0102: exif.BitsPerSample,
		0x0103: exif.Compression,
		0x0106: exif.PhotometricInterpretation,
		0x010E: exif.ImageDescription,
		0x010F: exif.Make,
		0x0110: exif.Model,
		0x0112: exif.Orientation,
		0x0115: exif.SamplesPerPixel,
		0x011A: exif.XResolution,
		0x011B: exif.YResolution,
		0x011C: exif.PlanarConfiguration,
		0x0128: exif.ResolutionUnit,
		0x0131: exif.Software,
		0x0132: exif.DateTime,
		0x013B: exif.Artist,
		0x0201: exif.ThumbJPEGInterchangeFormat,
		0x0202: exif.ThumbJPEGInterchangeFormatLength,
		0x0212: exif.YCbCrSubSampling,
		0x0213: exif.YCbCrPositioning,
		0x8298: exif.Copyright,
	},
	Exif: {
		0x829A: exif.ExposureTime,
		0x829D: exif.FNumber,
		0x8822: exif.ExposureProgram,
		0x8824: exif.SpectralSensitivity,
		0x8827: exif.ISOSpeedRatings,
		0x8828: exif.OECF,
		0x8833: isoSpeed,
		0x9000: exif.ExifVersion,
		0x9003: exif.DateTimeOriginal,
		0x9004: exif.DateTimeDigitized,
		0x9101: exif.ComponentsConfiguration,
		0x9102: exif.CompressedBitsPerPixel,
		0x9201: exif.ShutterSpeedValue,
		0x9202: exif.ApertureValue,
		0x9203: exif.BrightnessValue,
		0x9204: exif.ExposureBiasValue,
		0x9205: exif.MaxApertureValue,
		0x9206: exif.SubjectDistance,
		0x9207: exif.MeteringMode,
		0x9208: exif.LightSource,
		0x9209: exif.Flash,
		0x920A: exif.FocalLength,
		0x9214: exif.SubjectArea,
		0x927C: exif.MakerNote,
		0x9286: exif.UserComment,
		0x9290: exif.SubSecTime,
		0x9291: exif.SubSecTimeOriginal,
		0x9292: exif.SubSecTimeDigitized,
		0xA000: exif.FlashpixVersion,
		0xA001: exif.ColorSpace,
		0xA002: exif.PixelXDimension,
		0xA003: exif.PixelYDimension,
		0xA004: exif.RelatedSoundFile,
		0xA20E: exif.FocalPlaneXResolution,
		0xA20F: exif.FocalPlaneYResolution,
		0xA210: exif.FocalPlaneResolutionUnit,
		0xA215: exif.ExposureIndex,
		0xA217: exif.SensingMethod,
		0xA300: exif.FileSource,
		0xA301: exif.SceneType,
		0xA401: exif.CustomRendered,
		0xA402: exif.ExposureMode,
		0xA403: exif.WhiteBalance,
		0xA404: exif.DigitalZoomRatio,
		0xA405: exif.FocalLengthIn35mmFilm,
		0xA406: exif.SceneCaptureType,
		0xA407: exif.GainControl,
		0xA408: exif.Contrast,
		0xA409: exif.Saturation,
		0xA40A: exif.Sharpness,
		0xA40C: exif.SubjectDistanceRange,
		0xA420: exif.ImageUniqueID,
		0xA433: exif.LensMake,
		0xA434: exif.LensModel,
	},
	GPS: {
		0x0000: exif.GPSVersionID,
		0x0001: exif.GPSLatitudeRef,
		0x0002: exif.GPSLatitude,
		0x0003: exif.GPSLongitudeRef,
		0x0004: exif.GPSLongitude,
		0x0005: exif.GPSAltitudeRef,
		0x0006: exif.GPSAltitude,
		0x0007: exif.GPSTimeStamp,
		0x0009: exif.GPSStatus,
		0x000A: exif.GPSMeasureMode,
		0x000B: exif.GPSDOP,
		0x000C: exif.GPSSpeedRef,
		0x000D: exif.GPSSpeed,
		0x000E: exif.GPSTrackRef,
		0x000F: exif.GPSTrack,
		0x0010: exif.GPSImgDirectionRef,
		0x0011: exif.GPSImgDirection,
		0x0012: exif.GPSMapDatum,
		0x001B: exif.GPSProcessingMethod,
		0x001D: exif.GPSDateStamp,
		0x001E: exif.GPSDifferential,
	},
	Interop: {
		0x0001: exif.InteroperabilityIndex,
	},
}
