// Package container locates the EXIF tag directory embedded in an image and
// flattens it into an ordered list of entries.
package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ankit-chaubey/image-analyzer/core"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ErrNoContainer is returned when the buffer carries no readable EXIF
// container. Callers treat it as "zero fields found".
var ErrNoContainer = errors.New("no EXIF data found")

// IFD is the index of a top-level image file directory in the chain.
type IFD int

const (
	Primary   IFD = 0
	Thumbnail IFD = 1
)

func (i IFD) String() string {
	switch i {
	case Primary:
		return "primary"
	case Thumbnail:
		return "thumbnail"
	}
	return fmt.Sprintf("IFD%d", int(i))
}

// maxDepth bounds sub-directory recursion for malformed pointer chains.
const maxDepth = 4

// Entry is one tag found in the container. Tags inside the Exif, GPS and
// Interop sub-directories carry the IFD of the directory that points to them.
type Entry struct {
	Tag   Tag
	IFD   IFD
	Value *tiff.Tag
}

// Directory is a decoded EXIF container.
type Directory struct {
	Format core.FormatID

	order   binary.ByteOrder
	entries []Entry

	// Warnings lists the parts of the container that were skipped.
	Warnings []string
}

// Entries returns every tag in traversal order.
func (d *Directory) Entries() []Entry { return d.entries }

// Len returns the number of entries.
func (d *Directory) Len() int { return len(d.entries) }

// Find returns the first entry for tag in the given IFD.
func (d *Directory) Find(tag Tag, ifd IFD) (Entry, bool) {
	for _, e := range d.entries {
		if e.Tag == tag && e.IFD == ifd {
			return e, true
		}
	}
	return Entry{}, false
}

// Read locates and decodes the EXIF container in data.
//
// Every failure wraps ErrNoContainer. A sub-directory that cannot be decoded
// is skipped and reported in Warnings; the rest of the container is kept.
func Read(data []byte) (d *Directory, err error) {
	format := core.DetectFormat(data)
	payload, err := locate(format, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoContainer, err)
	}
	if err := checkBounds(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoContainer, err)
	}

	defer func() {
		if r := recover(); r != nil {
			d, err = nil, fmt.Errorf("%w: decoder panic: %v", ErrNoContainer, r)
		}
	}()

	x, err := exif.Decode(bytes.NewReader(payload))
	if x == nil || x.Tiff == nil || len(x.Tiff.Dirs) == 0 {
		if err == nil {
			err = errors.New("empty tag directory")
		}
		return nil, fmt.Errorf("%w: %v", ErrNoContainer, err)
	}

	d = &Directory{Format: format, order: x.Tiff.Order}
	if err != nil {
		d.Warnings = append(d.Warnings, err.Error())
	}

	r := bytes.NewReader(x.Raw)
	for i, dir := range x.Tiff.Dirs {
		d.walk(r, dir, TIFF, IFD(i), 0)
	}
	return d, nil
}

// walk appends the tags of dir, expanding sub-directory pointers in place.
func (d *Directory) walk(r *bytes.Reader, dir *tiff.Dir, ctx Context, ifd IFD, depth int) {
	for _, t := range dir.Tags {
		child, ok := pointerContext(ctx, t.Id)
		if !ok {
			d.entries = append(d.entries, Entry{Tag: Tag{Context: ctx, ID: t.Id}, IFD: ifd, Value: t})
			continue
		}
		if depth >= maxDepth {
			d.Warnings = append(d.Warnings, fmt.Sprintf("%s directory nested too deep", child))
			continue
		}
		sub, err := d.decodeDirAt(r, t)
		if err != nil {
			d.Warnings = append(d.Warnings, fmt.Sprintf("%s directory in %s IFD: %v", child, ifd, err))
			continue
		}
		d.walk(r, sub, child, ifd, depth+1)
	}
}

func (d *Directory) decodeDirAt(r *bytes.Reader, pointer *tiff.Tag) (*tiff.Dir, error) {
	offset, err := pointer.Int64(0)
	if err != nil {
		return nil, err
	}
	if offset <= 0 || offset >= r.Size() {
		return nil, fmt.Errorf("offset %d out of range", offset)
	}
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}
	sub, _, err := tiff.DecodeDir(r, d.order)
	return sub, err
}
