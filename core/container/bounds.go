package container

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// typeSizes is the size in bytes of one value of each TIFF data type.
var typeSizes = map[uint16]uint64{
	1: 1, 2: 1, 3: 2, 4: 4, 5: 8, 6: 1,
	7: 1, 8: 2, 9: 4, 10: 8, 11: 4, 12: 8,
}

// checkBounds walks the IFD chain and every sub-directory pointer of a TIFF
// payload without decoding any value. It fails when an entry claims more
// bytes than the payload holds or when the IFD chain loops; goexif sizes its
// buffers from those counts before checking them against the data.
//
// Sub-directory offsets that point outside the payload are not an error
// here. The walk skips them and reports a warning.
func checkBounds(payload []byte) error {
	if len(payload) < 8 {
		return errors.New("tiff: short header")
	}
	var order binary.ByteOrder
	switch string(payload[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return errors.New("tiff: bad byte order")
	}

	b := &bounds{data: payload, size: uint64(len(payload)), order: order, checked: map[uint32]int{}}
	chain := map[uint32]bool{}
	for offset := order.Uint32(payload[4:8]); offset != 0; {
		if chain[offset] {
			return fmt.Errorf("tiff: IFD chain loops at offset %d", offset)
		}
		chain[offset] = true

		next, err := b.dir(offset, 0)
		if err != nil {
			return err
		}
		offset = next
	}
	return nil
}

type bounds struct {
	data  []byte
	size  uint64
	order binary.ByteOrder

	// checked maps a directory offset to the shallowest depth it was
	// checked at.
	checked map[uint32]int
}

// dir checks the entries of the directory at offset and the sub-directories
// they point to. It returns the next-IFD offset, or 0 when the directory is
// truncated.
func (b *bounds) dir(offset uint32, depth int) (uint32, error) {
	if d, ok := b.checked[offset]; ok && d <= depth {
		return 0, nil
	}
	b.checked[offset] = depth

	start := uint64(offset)
	if start+2 > b.size {
		return 0, nil
	}
	count := uint64(b.order.Uint16(b.data[start:]))

	for i := uint64(0); i < count; i++ {
		p := start + 2 + 12*i
		if p+12 > b.size {
			return 0, nil
		}
		id := b.order.Uint16(b.data[p:])
		typ := b.order.Uint16(b.data[p+2:])
		n := uint64(b.order.Uint32(b.data[p+4:]))

		size, known := typeSizes[typ]
		if known && size*n > b.size {
			return 0, fmt.Errorf("tiff: tag %d claims %d values of %d bytes", id, n, size)
		}
		if !known || n == 0 || depth >= maxDepth || !isPointer(id) {
			continue
		}
		if sub, ok := b.pointer(p, typ, size, n); ok {
			if _, err := b.dir(sub, depth+1); err != nil {
				return 0, err
			}
		}
	}

	end := start + 2 + 12*count
	if end+4 > b.size {
		return 0, nil
	}
	return b.order.Uint32(b.data[end:]), nil
}

func isPointer(id uint16) bool {
	return id == exifPointer || id == gpsPointer || id == interopPointer
}

// pointer reads the first integer value of the entry at p, the way goexif
// resolves a sub-directory offset.
func (b *bounds) pointer(p uint64, typ uint16, size, n uint64) (uint32, bool) {
	at := p + 8
	if size*n > 4 {
		at = uint64(b.order.Uint32(b.data[p+8:]))
	}
	if at+size > b.size {
		return 0, false
	}

	var v int64
	switch typ {
	case 1:
		v = int64(b.data[at])
	case 6:
		v = int64(int8(b.data[at]))
	case 3:
		v = int64(b.order.Uint16(b.data[at:]))
	case 8:
		v = int64(int16(b.order.Uint16(b.data[at:])))
	case 4:
		v = int64(b.order.Uint32(b.data[at:]))
	case 9:
		v = int64(int32(b.order.Uint32(b.data[at:])))
	default:
		return 0, false
	}
	if v <= 0 || uint64(v) >= b.size {
		return 0, false
	}
	return uint32(v), true
}
