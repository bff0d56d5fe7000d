package container

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rwcarlsen/goexif/tiff"
)

// Display renders the value of e for humans, with the unit its tag defines.
// Units that depend on a companion tag (hemisphere, altitude reference,
// resolution unit) are looked up in the same IFD.
func (d *Directory) Display(e Entry) string {
	t := e.Value
	if t == nil {
		return ""
	}

	switch e.Tag {
	case TagExposureTime:
		if r, ok := firstRat(t); ok {
			return exposure(r) + " s"
		}
	case TagFNumber:
		if r, ok := firstRat(t); ok {
			return "f/" + decimal(r)
		}
	case TagFocalLength:
		if r, ok := firstRat(t); ok {
			return decimal(r) + " mm"
		}
	case TagFocalLength35mm:
		if v := ints(t); len(v) > 0 {
			return strconv.FormatInt(v[0], 10) + " mm"
		}
	case TagExposureBias:
		if r, ok := firstRat(t); ok {
			return decimal(r) + " EV"
		}
	case TagSubjectDistance:
		if r, ok := firstRat(t); ok {
			return decimal(r) + " m"
		}
	case TagXResolution, TagYResolution:
		if r, ok := firstRat(t); ok {
			return decimal(r) + d.suffix(TagResolutionUnit, e.IFD, resolutionUnits)
		}
	case TagGPSAltitude:
		if r, ok := firstRat(t); ok {
			return decimal(r) + " m" + d.suffix(TagGPSAltitudeRef, e.IFD, altitudeRefNames)
		}
	case TagGPSLatitude:
		if s, ok := dms(t); ok {
			return s + d.refSuffix(TagGPSLatitudeRef, e.IFD)
		}
	case TagGPSLongitude:
		if s, ok := dms(t); ok {
			return s + d.refSuffix(TagGPSLongitudeRef, e.IFD)
		}
	case TagOrientation:
		return describe(t, orientations)
	case TagResolutionUnit:
		return describe(t, resolutionUnitNames)
	case TagMeteringMode:
		return describe(t, meteringModes)
	case TagExposureProgram:
		return describe(t, exposurePrograms)
	case TagGPSAltitudeRef:
		return describe(t, altitudeRefNames)
	case TagFlash:
		if v := ints(t); len(v) > 0 {
			if v[0]&1 == 1 {
				return "fired"
			}
			return "not fired"
		}
	}
	return render(t)
}

// suffix renders the companion tag through names, with a leading space.
func (d *Directory) suffix(tag Tag, ifd IFD, names map[int64]string) string {
	e, ok := d.Find(tag, ifd)
	if !ok {
		return ""
	}
	if v := ints(e.Value); len(v) > 0 {
		if name, ok := names[v[0]]; ok {
			return " " + name
		}
	}
	return ""
}

func (d *Directory) refSuffix(tag Tag, ifd IFD) string {
	e, ok := d.Find(tag, ifd)
	if !ok {
		return ""
	}
	if ref := render(e.Value); ref != "" {
		return " " + ref
	}
	return ""
}

// render formats a value by its data format alone.
func render(t *tiff.Tag) string {
	switch t.Format() {
	case tiff.StringVal:
		s, err := t.StringVal()
		if err != nil {
			return ""
		}
		return strings.TrimRight(s, "\x00")
	case tiff.IntVal:
		v := ints(t)
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, ", ")
	case tiff.RatVal:
		v := rats(t)
		parts := make([]string, len(v))
		for i, r := range v {
			parts[i] = fmt.Sprintf("%d/%d", r[0], r[1])
		}
		return strings.Join(parts, ", ")
	case tiff.FloatVal:
		var parts []string
		for i := 0; i < int(t.Count); i++ {
			f, err := t.Float(i)
			if err != nil {
				break
			}
			parts = append(parts, strconv.FormatFloat(f, 'g', -1, 64))
		}
		return strings.Join(parts, ", ")
	case tiff.UndefVal:
		return undefined(t.Val)
	}
	return t.String()
}

// ints returns the integer values of t, stopping at the first bad index.
func ints(t *tiff.Tag) []int64 {
	if t == nil || t.Format() != tiff.IntVal {
		return nil
	}
	out := make([]int64, 0, t.Count)
	for i := 0; i < int(t.Count); i++ {
		v, err := t.Int64(i)
		if err != nil {
			break
		}
		out = append(out, v)
	}
	return out
}

// rats returns the numerator/denominator pairs of t.
func rats(t *tiff.Tag) [][2]int64 {
	if t == nil || t.Format() != tiff.RatVal {
		return nil
	}
	out := make([][2]int64, 0, t.Count)
	for i := 0; i < int(t.Count); i++ {
		num, den, err := t.Rat2(i)
		if err != nil {
			break
		}
		out = append(out, [2]int64{num, den})
	}
	return out
}

func firstRat(t *tiff.Tag) ([2]int64, bool) {
	v := rats(t)
	if len(v) == 0 {
		return [2]int64{}, false
	}
	return v[0], true
}

func decimal(r [2]int64) string {
	if r[1] == 0 {
		return fmt.Sprintf("%d/%d", r[0], r[1])
	}
	return strconv.FormatFloat(float64(r[0])/float64(r[1]), 'f', -1, 64)
}

// exposure keeps sub-second times as a reduced fraction.
func exposure(r [2]int64) string {
	num, den := r[0], r[1]
	if den == 0 || num == 0 || num >= den {
		return decimal(r)
	}
	g := gcd(num, den)
	return fmt.Sprintf("%d/%d", num/g, den/g)
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func dms(t *tiff.Tag) (string, bool) {
	v := rats(t)
	if len(v) < 3 {
		return "", false
	}
	return fmt.Sprintf("%s deg %s min %s sec", decimal(v[0]), decimal(v[1]), decimal(v[2])), true
}

func describe(t *tiff.Tag, names map[int64]string) string {
	if v := ints(t); len(v) > 0 {
		if name, ok := names[v[0]]; ok {
			return name
		}
	}
	return render(t)
}

// undefined shows printable payloads (ExifVersion "0232") as text and
// anything else as hex.
func undefined(b []byte) string {
	trimmed := strings.TrimRight(string(b), "\x00 ")
	printable := trimmed != ""
	for _, r := range trimmed {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			printable = false
			break
		}
	}
	if printable {
		return trimmed
	}
	const maxHex = 64
	if len(b) > maxHex {
		return fmt.Sprintf("0x%x... (%d bytes)", b[:maxHex], len(b))
	}
	return fmt.Sprintf("0x%x", b)
}

var orientations = map[int64]string{
	1: "row 0 at top and column 0 at left",
	2: "row 0 at top and column 0 at right",
	3: "row 0 at bottom and column 0 at right",
	4: "row 0 at bottom and column 0 at left",
	5: "row 0 at left and column 0 at top",
	6: "row 0 at right and column 0 at top",
	7: "row 0 at right and column 0 at bottom",
	8: "row 0 at left and column 0 at bottom",
}

var resolutionUnitNames = map[int64]string{
	1: "no absolute unit",
	2: "inch",
	3: "cm",
}

var resolutionUnits = map[int64]string{
	2: "pixels per inch",
	3: "pixels per cm",
}

var meteringModes = map[int64]string{
	0:   "unknown",
	1:   "average",
	2:   "center-weighted average",
	3:   "spot",
	4:   "multi-spot",
	5:   "pattern",
	6:   "partial",
	255: "other",
}

var exposurePrograms = map[int64]string{
	0: "not defined",
	1: "manual",
	2: "normal program",
	3: "aperture priority",
	4: "shutter priority",
	5: "creative program",
	6: "action program",
	7: "portrait mode",
	8: "landscape mode",
}

var altitudeRefNames = map[int64]string{
	0: "above sea level",
	1: "below sea level",
}
