package container

import (
	"strings"
	"testing"

	ct "github.com/ankit-chaubey/image-analyzer/core/container/containertest"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name  string
		entry ct.Entry
		exif  bool
		want  string
	}{
		{"long exposure", ct.Rational(0x829A, [2]uint32{5, 2}), true, "2.5 s"},
		{"zero denominator", ct.Rational(0x829D, [2]uint32{28, 0}), true, "f/28/0"},
		{"flash fired", ct.Short(0x9209, 0x19), true, "fired"},
		{"flash off", ct.Short(0x9209, 0x10), true, "not fired"},
		{"35mm focal length", ct.Short(0xA405, 28), true, "28 mm"},
		{"metering", ct.Short(0x9207, 5), true, "pattern"},
		{"unknown metering", ct.Short(0x9207, 42), true, "42"},
		{"binary payload", ct.Undefined(0x927C, []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01}), true, "0xdeadbeef01"},
		{"short list", ct.Short(0x0102, 8, 8, 8), false, "8, 8, 8"},
		{"signed", ct.SLong(0x9999, -3), false, "-3"},
		{"trailing NULs", ct.ASCII(0x010E, "caption\x00\x00"), false, "caption"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ifd0 := []ct.Entry{tt.entry}
			if tt.exif {
				ifd0 = []ct.Entry{ct.ExifIFD(tt.entry)}
			}
			d, err := Read(ct.TIFF(ifd0))
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if d.Len() != 1 {
				t.Fatalf("got %d entries, want 1", d.Len())
			}
			if got := d.Display(d.Entries()[0]); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayLongUndefinedIsCapped(t *testing.T) {
	payload := make([]byte, 200)
	payload[0] = 0xFF
	d, err := Read(ct.TIFF([]ct.Entry{ct.ExifIFD(ct.Undefined(0x927C, payload))}))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	got := d.Display(d.Entries()[0])
	if !strings.HasSuffix(got, "... (200 bytes)") {
		t.Errorf("Display() = %q, want a capped hex dump", got)
	}
}

func TestTagName(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{TagMake, "Make"},
		{TagGPSLatitudeRef, "GPSLatitudeRef"},
		{Tag{Interop, 0x0001}, "InteroperabilityIndex"},
		{Tag{GPS, 0x7777}, "Tag(Gps, 30583)"},
		{Tag{Exif, 0xCAFE}, "Tag(Exif, 51966)"},
	}
	for _, tt := range tests {
		if got := tt.tag.Name(); got != tt.want {
			t.Errorf("%v.Name() = %q, want %q", tt.tag.ID, got, tt.want)
		}
	}
}
