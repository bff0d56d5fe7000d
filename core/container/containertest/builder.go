// Package containertest builds EXIF containers in memory for tests.
//
// Everything is little-endian. Values longer than four bytes are laid out
// after the directory that references them, the way cameras write them.
package containertest

import (
	"bytes"
	"encoding/binary"
)

// TIFF data types.
const (
	TypeByte      uint16 = 1
	TypeASCII     uint16 = 2
	TypeShort     uint16 = 3
	TypeLong      uint16 = 4
	TypeRational  uint16 = 5
	TypeUndefined uint16 = 7
	TypeSLong     uint16 = 9
	TypeSRational uint16 = 10
)

var le = binary.LittleEndian

// Entry is one IFD entry. Sub, when set, makes the entry a pointer to a
// nested directory and Data is ignored.
type Entry struct {
	ID    uint16
	Type  uint16
	Count uint32
	Data  []byte
	Sub   []Entry
}

// ASCII returns a NUL-terminated string entry.
func ASCII(id uint16, s string) Entry {
	data := append([]byte(s), 0)
	return Entry{ID: id, Type: TypeASCII, Count: uint32(len(data)), Data: data}
}

// Short returns an unsigned 16-bit entry.
func Short(id uint16, v ...uint16) Entry {
	data := make([]byte, 0, 2*len(v))
	for _, n := range v {
		data = le.AppendUint16(data, n)
	}
	return Entry{ID: id, Type: TypeShort, Count: uint32(len(v)), Data: data}
}

// Long returns an unsigned 32-bit entry.
func Long(id uint16, v ...uint32) Entry {
	data := make([]byte, 0, 4*len(v))
	for _, n := range v {
		data = le.AppendUint32(data, n)
	}
	return Entry{ID: id, Type: TypeLong, Count: uint32(len(v)), Data: data}
}

// SLong returns a signed 32-bit entry.
func SLong(id uint16, v ...int32) Entry {
	data := make([]byte, 0, 4*len(v))
	for _, n := range v {
		data = le.AppendUint32(data, uint32(n))
	}
	return Entry{ID: id, Type: TypeSLong, Count: uint32(len(v)), Data: data}
}

// Byte returns an unsigned 8-bit entry.
func Byte(id uint16, v ...byte) Entry {
	return Entry{ID: id, Type: TypeByte, Count: uint32(len(v)), Data: append([]byte{}, v...)}
}

// Rational returns an unsigned rational entry from numerator/denominator
// pairs.
func Rational(id uint16, v ...[2]uint32) Entry {
	data := make([]byte, 0, 8*len(v))
	for _, r := range v {
		data = le.AppendUint32(data, r[0])
		data = le.AppendUint32(data, r[1])
	}
	return Entry{ID: id, Type: TypeRational, Count: uint32(len(v)), Data: data}
}

// Undefined returns an opaque byte entry.
func Undefined(id uint16, b []byte) Entry {
	return Entry{ID: id, Type: TypeUndefined, Count: uint32(len(b)), Data: append([]byte{}, b...)}
}

// ExifIFD returns the IFD0 pointer to an Exif sub-directory.
func ExifIFD(entries ...Entry) Entry {
	return Entry{ID: 0x8769, Type: TypeLong, Count: 1, Sub: entries}
}

// GPSIFD returns the IFD0 pointer to a GPS sub-directory.
func GPSIFD(entries ...Entry) Entry {
	return Entry{ID: 0x8825, Type: TypeLong, Count: 1, Sub: entries}
}

// InteropIFD returns the Exif pointer to an Interop sub-directory.
func InteropIFD(entries ...Entry) Entry {
	return Entry{ID: 0xA005, Type: TypeLong, Count: 1, Sub: entries}
}

// TIFF encodes the chained IFDs (IFD0 first, then the thumbnail IFD1 and so
// on) as a little-endian TIFF structure.
func TIFF(ifds ...[]Entry) []byte {
	b := &builder{buf: []byte{'I', 'I', 0x2A, 0x00, 0, 0, 0, 0}}
	nextAt := 4
	for _, ifd := range ifds {
		start, next := b.writeIFD(ifd)
		le.PutUint32(b.buf[nextAt:], start)
		nextAt = next
	}
	return b.buf
}

type builder struct {
	buf []byte
}

// writeIFD appends a directory and the values it references. It returns the
// directory offset and the position of its next-IFD field.
func (b *builder) writeIFD(entries []Entry) (uint32, int) {
	b.pad()
	start := len(b.buf)
	b.buf = append(b.buf, make([]byte, 2+12*len(entries)+4)...)
	le.PutUint16(b.buf[start:], uint16(len(entries)))

	for i, e := range entries {
		data := e.Data
		if e.Sub != nil {
			off, _ := b.writeIFD(e.Sub)
			data = le.AppendUint32(nil, off)
		}
		p := start + 2 + 12*i
		le.PutUint16(b.buf[p:], e.ID)
		le.PutUint16(b.buf[p+2:], e.Type)
		le.PutUint32(b.buf[p+4:], e.Count)
		if len(data) <= 4 {
			copy(b.buf[p+8:p+12], data)
			continue
		}
		b.pad()
		off := len(b.buf)
		b.buf = append(b.buf, data...)
		le.PutUint32(b.buf[p+8:], uint32(off))
	}
	return uint32(start), start + 2 + 12*len(entries)
}

// pad keeps offsets word aligned.
func (b *builder) pad() {
	if len(b.buf)%2 == 1 {
		b.buf = append(b.buf, 0)
	}
}

// JPEG wraps a TIFF payload in an APP1 segment between SOI and EOI. The
// result has no frame, so pixel decoders reject it.
func JPEG(tiff []byte, extra ...[]byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8})
	for _, seg := range extra {
		buf.Write(seg)
	}
	app1 := append([]byte("Exif\x00\x00"), tiff...)
	buf.Write([]byte{0xFF, 0xE1})
	binary.Write(&buf, binary.BigEndian, uint16(len(app1)+2))
	buf.Write(app1)
	buf.Write([]byte{0xFF, 0xD9})
	return buf.Bytes()
}

// Segment returns a raw JPEG marker segment, for placing other APPn segments
// ahead of the EXIF one.
func Segment(marker byte, payload []byte) []byte {
	out := []byte{0xFF, marker, 0, 0}
	binary.BigEndian.PutUint16(out[2:], uint16(len(payload)+2))
	return append(out, payload...)
}

// PNG wraps a TIFF payload in an eXIf chunk. CRCs are zero; the locator
// does not check them.
func PNG(tiff []byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	writeChunk := func(typ string, data []byte) {
		binary.Write(&buf, binary.BigEndian, uint32(len(data)))
		buf.WriteString(typ)
		buf.Write(data)
		buf.Write([]byte{0, 0, 0, 0})
	}
	writeChunk("IHDR", make([]byte, 13))
	writeChunk("eXIf", tiff)
	writeChunk("IEND", nil)
	return buf.Bytes()
}

// WebP wraps a TIFF payload in a RIFF EXIF chunk.
func WebP(tiff []byte) []byte {
	var body bytes.Buffer
	body.WriteString("WEBP")
	body.WriteString("EXIF")
	binary.Write(&body, binary.LittleEndian, uint32(len(tiff)))
	body.Write(tiff)
	if len(tiff)%2 == 1 {
		body.WriteByte(0)
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(body.Len()))
	buf.Write(body.Bytes())
	return buf.Bytes()
}
