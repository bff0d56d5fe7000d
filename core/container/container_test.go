package container

import (
	"encoding/binary"
	"errors"
	"testing"

	ct "github.com/ankit-chaubey/image-analyzer/core/container/containertest"
)

func sampleTIFF() []byte {
	return ct.TIFF(
		[]ct.Entry{
			ct.ASCII(0x010F, "Acme"),
			ct.ASCII(0x0110, "Model X"),
			ct.Short(0x0112, 6),
			ct.Rational(0x011A, [2]uint32{72, 1}),
			ct.Short(0x0128, 2),
			ct.ExifIFD(
				ct.Rational(0x829A, [2]uint32{10, 2500}),
				ct.Rational(0x829D, [2]uint32{28, 10}),
				ct.Short(0x8827, 400),
				ct.Undefined(0x9000, []byte("0230")),
				ct.Rational(0x920A, [2]uint32{42, 10}),
				ct.InteropIFD(ct.ASCII(0x0001, "R98")),
			),
			ct.GPSIFD(
				ct.ASCII(0x0001, "N"),
				ct.Rational(0x0002, [2]uint32{40, 1}, [2]uint32{26, 1}, [2]uint32{46, 1}),
				ct.Byte(0x0005, 0),
				ct.Rational(0x0006, [2]uint32{1234, 10}),
			),
			ct.Short(0x9999, 7),
		},
		[]ct.Entry{
			ct.Short(0x0112, 3),
			ct.Long(0x0201, 0),
		},
	)
}

type want struct {
	name  string
	ifd   IFD
	value string
}

var sampleWant = []want{
	{"Make", Primary, "Acme"},
	{"Model", Primary, "Model X"},
	{"Orientation", Primary, "row 0 at right and column 0 at top"},
	{"XResolution", Primary, "72 pixels per inch"},
	{"ResolutionUnit", Primary, "inch"},
	{"ExposureTime", Primary, "1/250 s"},
	{"FNumber", Primary, "f/2.8"},
	{"ISOSpeedRatings", Primary, "400"},
	{"ExifVersion", Primary, "0230"},
	{"FocalLength", Primary, "4.2 mm"},
	{"InteroperabilityIndex", Primary, "R98"},
	{"GPSLatitudeRef", Primary, "N"},
	{"GPSLatitude", Primary, "40 deg 26 min 46 sec N"},
	{"GPSAltitudeRef", Primary, "above sea level"},
	{"GPSAltitude", Primary, "123.4 m above sea level"},
	{"Tag(Tiff, 39321)", Primary, "7"},
	{"Orientation", Thumbnail, "row 0 at bottom and column 0 at right"},
	{"ThumbJPEGInterchangeFormat", Thumbnail, "0"},
}

func checkEntries(t *testing.T, d *Directory, expected []want) {
	t.Helper()
	entries := d.Entries()
	if len(entries) != len(expected) {
		for _, e := range entries {
			t.Logf("got %s (%s) = %q", e.Tag.Name(), e.IFD, d.Display(e))
		}
		t.Fatalf("got %d entries, want %d", len(entries), len(expected))
	}
	for i, w := range expected {
		e := entries[i]
		if got := e.Tag.Name(); got != w.name {
			t.Errorf("entry %d: name = %q, want %q", i, got, w.name)
		}
		if e.IFD != w.ifd {
			t.Errorf("entry %d (%s): IFD = %s, want %s", i, w.name, e.IFD, w.ifd)
		}
		if got := d.Display(e); got != w.value {
			t.Errorf("entry %d (%s): Display() = %q, want %q", i, w.name, got, w.value)
		}
	}
}

func TestReadTraversalOrder(t *testing.T) {
	d, err := Read(ct.JPEG(sampleTIFF()))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(d.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", d.Warnings)
	}
	checkEntries(t, d, sampleWant)
}

func TestReadContainers(t *testing.T) {
	tif := sampleTIFF()
	heic := append([]byte{0, 0, 0, 24, 'f', 't', 'y', 'p', 'h', 'e', 'i', 'c', 0, 0, 0, 0, 'm', 'i', 'f', '1', 'h', 'e', 'i', 'c'},
		[]byte("....mdat....Exif\x00\x00")...)
	heic = append(heic, tif...)

	tests := []struct {
		name string
		data []byte
	}{
		{"JPEG", ct.JPEG(tif)},
		{"JPEG after APP0 and XMP", ct.JPEG(tif,
			ct.Segment(0xE0, []byte("JFIF\x00\x01\x01")),
			ct.Segment(0xE1, []byte("http://ns.adobe.com/xap/1.0/\x00<x/>")),
		)},
		{"TIFF", tif},
		{"PNG", ct.PNG(tif)},
		{"WebP", ct.WebP(tif)},
		{"HEIC", heic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Read(tt.data)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			checkEntries(t, d, sampleWant)
		})
	}
}

func TestReadNoContainer(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"text", []byte("hello, this is not an image at all")},
		{"GIF", []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")},
		{"JPEG without APP1", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x04, 'J', 'F', 0xFF, 0xD9}},
		{"JPEG truncated segment", []byte{0xFF, 0xD8, 0xFF, 0xE1, 0x7F, 0xFF, 'E', 'x'}},
		{"PNG without eXIf", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0, 'I', 'E', 'N', 'D', 0, 0, 0, 0}},
		{"bad TIFF", []byte{'I', 'I', 0x2A, 0x00, 0xFF, 0xFF, 0xFF, 0x7F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Read(tt.data)
			if err == nil {
				t.Fatalf("Read() = %d entries, want error", d.Len())
			}
			if !errors.Is(err, ErrNoContainer) {
				t.Errorf("Read() error = %v, want ErrNoContainer", err)
			}
		})
	}
}

func TestReadSkipsBrokenSubDirectory(t *testing.T) {
	tif := ct.TIFF([]ct.Entry{
		ct.ASCII(0x010F, "Acme"),
		ct.Long(0x8825, 0x7FFF0000), // GPS pointer past the end
		ct.ASCII(0x0131, "fw 1.0"),
	})

	d, err := Read(ct.JPEG(tif))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(d.Warnings) == 0 {
		t.Error("Warnings is empty, want the skipped GPS directory")
	}
	checkEntries(t, d, []want{
		{"Make", Primary, "Acme"},
		{"Software", Primary, "fw 1.0"},
	})
}

func TestFind(t *testing.T) {
	d, err := Read(sampleTIFF())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if e, ok := d.Find(TagOrientation, Thumbnail); !ok || d.Display(e) != "row 0 at bottom and column 0 at right" {
		t.Errorf("Find(Orientation, Thumbnail) = %v, %v", e, ok)
	}
	if _, ok := d.Find(TagGPSLongitude, Primary); ok {
		t.Error("Find(GPSLongitude) found an entry that is not in the container")
	}
	// GPS tag 0x0001 must not be confused with the Interop tag of the same number.
	if e, ok := d.Find(TagGPSLatitudeRef, Primary); !ok || d.Display(e) != "N" {
		t.Errorf("Find(GPSLatitudeRef) = %v, %v", e, ok)
	}
}

func TestReadRejectsOversizedCounts(t *testing.T) {
	huge := func(id uint16) ct.Entry {
		return ct.Entry{ID: id, Type: ct.TypeRational, Count: 0x20000003, Data: make([]byte, 24)}
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"GPS directory", ct.JPEG(ct.TIFF([]ct.Entry{
			ct.ASCII(0x010F, "Acme"),
			ct.GPSIFD(huge(0x0002)),
		}))},
		{"primary directory", ct.JPEG(ct.TIFF([]ct.Entry{huge(0x011A)}))},
		{"interop directory", ct.TIFF([]ct.Entry{
			ct.ExifIFD(ct.InteropIFD(huge(0x0002))),
		})},
		{"thumbnail directory", ct.PNG(ct.TIFF(
			[]ct.Entry{ct.ASCII(0x010F, "Acme")},
			[]ct.Entry{{ID: 0x0201, Type: ct.TypeLong, Count: 0x40000001, Data: make([]byte, 8)}},
		))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Read(tt.data)
			if err == nil {
				t.Fatalf("Read() = %d entries, want error", d.Len())
			}
			if !errors.Is(err, ErrNoContainer) {
				t.Errorf("Read() error = %v, want ErrNoContainer", err)
			}
		})
	}
}

// loopedTIFF returns two one-entry IFDs whose next offsets point at each
// other.
func loopedTIFF() []byte {
	b := []byte{'I', 'I', 0x2A, 0x00, 8, 0, 0, 0}
	ifd := func(next uint32) {
		b = binary.LittleEndian.AppendUint16(b, 1)
		b = binary.LittleEndian.AppendUint16(b, 0x0112)
		b = binary.LittleEndian.AppendUint16(b, ct.TypeShort)
		b = binary.LittleEndian.AppendUint32(b, 1)
		b = binary.LittleEndian.AppendUint32(b, 1)
		b = binary.LittleEndian.AppendUint32(b, next)
	}
	ifd(26) // IFD0 at 8, 18 bytes long
	ifd(8)
	return b
}

func TestReadRejectsLoopedChain(t *testing.T) {
	if _, err := Read(ct.JPEG(loopedTIFF())); !errors.Is(err, ErrNoContainer) {
		t.Errorf("Read() error = %v, want ErrNoContainer", err)
	}
}

func TestReadIgnoresUnknownFormats(t *testing.T) {
	pdf := append([]byte("%PDF-1.4\n1 0 obj << /Subtype /Image >> stream\n"), ct.JPEG(sampleTIFF())...)
	zip := append([]byte("PK\x03\x04\x14\x00\x00\x00"), ct.JPEG(sampleTIFF())...)

	for name, data := range map[string][]byte{"pdf": pdf, "zip": zip} {
		t.Run(name, func(t *testing.T) {
			if _, err := Read(data); !errors.Is(err, ErrNoContainer) {
				t.Errorf("Read() error = %v, want ErrNoContainer", err)
			}
		})
	}
}

// Every single-byte corruption of a valid file must either decode or fail
// with ErrNoContainer.
func TestReadCorruptedBytes(t *testing.T) {
	valid := ct.JPEG(sampleTIFF())
	for i := range valid {
		for _, v := range []byte{0x00, 0x7F, 0xFF} {
			data := append([]byte(nil), valid...)
			data[i] = v

			d, err := Read(data)
			if err != nil {
				if !errors.Is(err, ErrNoContainer) {
					t.Fatalf("byte %d = 0x%02X: Read() error = %v", i, v, err)
				}
				continue
			}
			for _, e := range d.Entries() {
				d.Display(e)
			}
		}
	}
}
