package core

import (
	"bytes"
	"encoding/binary"
)

// FormatID enumerates every recognised image format.
type FormatID string

const (
	FmtJPEG FormatID = "jpeg"
	FmtPNG  FormatID = "png"
	FmtGIF  FormatID = "gif"
	FmtWebP FormatID = "webp"
	FmtTIFF FormatID = "tiff"
	FmtBMP  FormatID = "bmp"
	FmtHEIC FormatID = "heic"
	FmtAVIF FormatID = "avif"

	FmtUnknown FormatID = "unknown"
)

// FormatInfo describes where a format keeps its EXIF container.
type FormatInfo struct {
	Name      string // "JPEG"
	MIMEType  string
	Container string // Where EXIF lives, empty if the format has none
}

var formatInfo = map[FormatID]FormatInfo{
	FmtJPEG:    {Name: "JPEG", MIMEType: "image/jpeg", Container: "APP1 segment"},
	FmtPNG:     {Name: "PNG", MIMEType: "image/png", Container: "eXIf chunk"},
	FmtGIF:     {Name: "GIF", MIMEType: "image/gif"},
	FmtWebP:    {Name: "WebP", MIMEType: "image/webp", Container: "RIFF EXIF chunk"},
	FmtTIFF:    {Name: "TIFF", MIMEType: "image/tiff", Container: "IFD0"},
	FmtBMP:     {Name: "BMP", MIMEType: "image/bmp"},
	FmtHEIC:    {Name: "HEIC/HEIF", MIMEType: "image/heic", Container: "Exif item"},
	FmtAVIF:    {Name: "AVIF", MIMEType: "image/avif", Container: "Exif item"},
	FmtUnknown: {Name: "unknown", MIMEType: "application/octet-stream"},
}

// Info returns the description of id.
func (id FormatID) Info() FormatInfo {
	if info, ok := formatInfo[id]; ok {
		return info
	}
	return formatInfo[FmtUnknown]
}

// DetectFormat identifies an image format from its magic bytes.
func DetectFormat(b []byte) FormatID {
	if len(b) < 4 {
		return FmtUnknown
	}
	switch {
	// JPEG: FF D8 FF
	case b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF:
		return FmtJPEG
	// PNG: 89 50 4E 47 0D 0A 1A 0A
	case bytes.HasPrefix(b, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}):
		return FmtPNG
	// GIF: GIF87a or GIF89a
	case bytes.HasPrefix(b, []byte("GIF87a")) || bytes.HasPrefix(b, []byte("GIF89a")):
		return FmtGIF
	// WebP: RIFF????WEBP
	case len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")):
		return FmtWebP
	// TIFF: 49 49 2A 00 (little-endian) or 4D 4D 00 2A (big-endian)
	case bytes.HasPrefix(b, []byte{0x49, 0x49, 0x2A, 0x00}) ||
		bytes.HasPrefix(b, []byte{0x4D, 0x4D, 0x00, 0x2A}):
		return FmtTIFF
	// BMP: 42 4D
	case b[0] == 0x42 && b[1] == 0x4D:
		return FmtBMP
	// ISOBMFF: ftyp box at offset 4
	case len(b) >= 12 && bytes.Equal(b[4:8], []byte("ftyp")):
		return detectISOBMFFSubtype(b)
	}
	return FmtUnknown
}

func detectISOBMFFSubtype(b []byte) FormatID {
	brand := string(b[8:12])
	switch brand {
	case "heic", "heix", "hevc", "heim", "heis", "mif1", "msf1":
		return FmtHEIC
	case "avif", "avis":
		return FmtAVIF
	}
	// Scan compatible brands; the box size bounds the list.
	size := int(binary.BigEndian.Uint32(b[0:4]))
	if size > len(b) {
		size = len(b)
	}
	for i := 16; i+4 <= size; i += 4 {
		switch string(b[i : i+4]) {
		case "heic", "mif1":
			return FmtHEIC
		case "avif":
			return FmtAVIF
		}
	}
	return FmtUnknown
}
