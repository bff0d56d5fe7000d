package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ankit-chaubey/image-analyzer/core"
)

var exifHeader = []byte("Exif\x00\x00")

// locate returns the TIFF-structured EXIF payload embedded in data. Only
// recognised image formats are searched.
func locate(format core.FormatID, data []byte) ([]byte, error) {
	info := format.Info()
	if info.Container == "" {
		return nil, fmt.Errorf("%s has no EXIF container", info.Name)
	}

	switch format {
	case core.FmtJPEG:
		return locateJPEG(data)
	case core.FmtTIFF:
		return data, nil
	case core.FmtPNG:
		return locatePNG(data)
	case core.FmtWebP:
		return locateWebP(data)
	case core.FmtHEIC, core.FmtAVIF:
		// The Exif item sits somewhere inside mdat.
		return scanExifHeader(data)
	}
	return nil, fmt.Errorf("no locator for %s %s", info.Name, info.Container)
}

// ─── JPEG ────────────────────────────────────────────────────────────────────

// locateJPEG walks the marker segments up to SOS and returns the payload of
// the first APP1 segment carrying the EXIF header.
func locateJPEG(data []byte) ([]byte, error) {
	i := 2 // SOI
	for i+4 <= len(data) {
		if data[i] != 0xFF {
			return nil, fmt.Errorf("jpeg: bad marker at offset %d", i)
		}
		marker := data[i+1]
		// Fill bytes and standalone markers carry no length.
		if marker == 0xFF {
			i++
			continue
		}
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD8) {
			i += 2
			continue
		}
		if marker == 0xD9 || marker == 0xDA {
			break
		}

		segLen := int(binary.BigEndian.Uint16(data[i+2:i+4])) - 2
		i += 4
		if segLen < 0 || i+segLen > len(data) {
			return nil, errors.New("jpeg: truncated segment")
		}
		seg := data[i : i+segLen]
		if marker == 0xE1 && bytes.HasPrefix(seg, exifHeader) {
			return seg[len(exifHeader):], nil
		}
		i += segLen
	}
	return nil, errors.New("jpeg: no APP1 EXIF segment")
}

// ─── PNG ─────────────────────────────────────────────────────────────────────

func locatePNG(data []byte) ([]byte, error) {
	i := 8 // signature
	for i+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[i : i+4]))
		typ := string(data[i+4 : i+8])
		i += 8
		if length < 0 || i+length > len(data) {
			return nil, errors.New("png: truncated chunk")
		}
		if typ == "eXIf" {
			return bytes.TrimPrefix(data[i:i+length], exifHeader), nil
		}
		if typ == "IEND" {
			break
		}
		i += length + 4 // data + CRC
	}
	return nil, errors.New("png: no eXIf chunk")
}

// ─── WebP ────────────────────────────────────────────────────────────────────

func locateWebP(data []byte) ([]byte, error) {
	offset := 12 // skip RIFF header
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		offset += 8
		if chunkSize < 0 || offset+chunkSize > len(data) {
			return nil, errors.New("webp: truncated chunk")
		}
		if chunkID == "EXIF" {
			return bytes.TrimPrefix(data[offset:offset+chunkSize], exifHeader), nil
		}
		offset += chunkSize
		if chunkSize%2 != 0 {
			offset++ // padding
		}
	}
	return nil, errors.New("webp: no EXIF chunk")
}

// ─── ISOBMFF ─────────────────────────────────────────────────────────────────

// scanExifHeader finds an "Exif\0\0" marker directly followed by a TIFF
// byte-order header.
func scanExifHeader(data []byte) ([]byte, error) {
	rest := data
	for {
		i := bytes.Index(rest, exifHeader)
		if i < 0 {
			return nil, errors.New("no EXIF header")
		}
		rest = rest[i+len(exifHeader):]
		if bytes.HasPrefix(rest, []byte("II*\x00")) || bytes.HasPrefix(rest, []byte("MM\x00*")) {
			return rest, nil
		}
	}
}
