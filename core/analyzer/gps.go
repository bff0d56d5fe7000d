package analyzer

import (
	"github.com/ankit-chaubey/image-analyzer/core"
	"github.com/ankit-chaubey/image-analyzer/core/container"
)

// resolveGPS fills the coordinates of m from the primary IFD's GPS tags.
// Both coordinates are written or neither is.
func resolveGPS(dir *container.Directory, m *core.MetadataRecord) bool {
	lat, latRef, ok1 := gpsPair(dir, container.TagGPSLatitude, container.TagGPSLatitudeRef)
	lon, lonRef, ok2 := gpsPair(dir, container.TagGPSLongitude, container.TagGPSLongitudeRef)
	if !ok1 || !ok2 {
		return false
	}

	latVal, ok1 := coordinate(lat, dir.Display(latRef))
	lonVal, ok2 := coordinate(lon, dir.Display(lonRef))
	if !ok1 || !ok2 {
		return false
	}
	m.GPSLatitude = ptr(latVal)
	m.GPSLongitude = ptr(lonVal)
	return true
}

func gpsPair(dir *container.Directory, value, ref container.Tag) (container.Entry, container.Entry, bool) {
	v, ok := dir.Find(value, container.Primary)
	if !ok {
		return v, container.Entry{}, false
	}
	r, ok := dir.Find(ref, container.Primary)
	return v, r, ok
}

// coordinate converts a degrees/minutes/seconds triple to signed decimal
// degrees. South and west are negative.
func coordinate(e container.Entry, ref string) (float64, bool) {
	dms, ok := rationals(e.Value)
	if !ok || len(dms) < 3 {
		return 0, false
	}
	decimal := dms[0] + dms[1]/60 + dms[2]/3600
	if ref == "S" || ref == "W" {
		decimal = -decimal
	}
	return decimal, true
}
