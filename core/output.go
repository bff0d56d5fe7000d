package core

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OutputMode selects how a Printer renders records.
type OutputMode int

const (
	ModeText   OutputMode = iota // summary block then every raw field
	ModeJSON                     // indented JSON
	ModeCSV                      // Field,Value rows
	ModeReport                   // sectioned plain-text report
)

// Printer handles all display output for the CLI.
type Printer struct {
	Mode    OutputMode
	Verbose bool
	Writer  io.Writer
}

// NewPrinter creates a Printer writing to w, or to stdout when w is nil.
func NewPrinter(w io.Writer, mode OutputMode, verbose bool) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{Mode: mode, Verbose: verbose, Writer: w}
}

// PrintMetadata renders a record to the configured output. name labels the
// record in text, CSV and report modes and is the "file" key in JSON mode.
func (p *Printer) PrintMetadata(name string, m *MetadataRecord) error {
	switch p.Mode {
	case ModeJSON:
		return p.printJSON(struct {
			File string `json:"file"`
			*MetadataRecord
		}{name, m})
	case ModeCSV:
		return p.printCSV(name, m)
	case ModeReport:
		return p.printReport(name, m)
	}
	return p.printText(name, m)
}

// PrintReverseSearch renders a reverse search payload, always as JSON.
func (p *Printer) PrintReverseSearch(r ReverseSearchResult) error {
	return p.printJSON(r)
}

func (p *Printer) printText(name string, m *MetadataRecord) error {
	w := &errWriter{w: p.Writer}
	w.printf("File   : %s\n", name)
	w.printf("Summary: %s\n", m.Summary())

	rows := []struct {
		label string
		value string
	}{
		{"Camera Make", str(m.CameraMake)},
		{"Camera Model", str(m.CameraModel)},
		{"Date Taken", str(m.DateTaken)},
		{"Software", str(m.Software)},
		{"Width", num(m.Width)},
		{"Height", num(m.Height)},
		{"Orientation", num(m.Orientation)},
		{"ISO", num(m.ISO)},
		{"Exposure Time", str(m.ExposureTime)},
		{"F-Number", str(m.FNumber)},
		{"Focal Length", str(m.FocalLength)},
		{"GPS Latitude", coord(m.GPSLatitude)},
		{"GPS Longitude", coord(m.GPSLongitude)},
		{"GPS Altitude", coord(m.GPSAltitude)},
	}

	w.printf("\n── Summary ──\n")
	for _, r := range rows {
		if r.value == "" && !p.Verbose {
			continue
		}
		if r.value == "" {
			r.value = "-"
		}
		w.printf("  %-30s %s\n", r.label+":", r.value)
	}

	w.printf("\n── All Fields ──\n")
	if len(m.AllFields) == 0 {
		w.printf("  (no metadata found)\n")
	}
	for _, f := range m.AllFields {
		w.printf("  %-30s %s\n", f.Tag+":", f.Value)
	}
	w.printf("\n")
	return w.err
}

// printCSV writes a Field,Value header, the set summary fields, then every
// raw field.
func (p *Printer) printCSV(name string, m *MetadataRecord) error {
	w := csv.NewWriter(p.Writer)
	rows := [][]string{{"Field", "Value"}, {"File", name}}
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, []string{label, value})
		}
	}

	add("Camera Make", str(m.CameraMake))
	add("Camera Model", str(m.CameraModel))
	add("Date Taken", str(m.DateTaken))
	if m.Width != nil && m.Height != nil {
		add("Dimensions", fmt.Sprintf("%dx%d", *m.Width, *m.Height))
	}
	add("GPS Latitude", decimal(m.GPSLatitude))
	add("GPS Longitude", decimal(m.GPSLongitude))
	add("GPS Altitude", decimal(m.GPSAltitude))
	add("ISO", num(m.ISO))
	add("Exposure Time", str(m.ExposureTime))
	add("F-Number", str(m.FNumber))
	add("Focal Length", str(m.FocalLength))
	add("Software", str(m.Software))
	for _, f := range m.AllFields {
		rows = append(rows, []string{f.Tag, f.Value})
	}

	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// printReport writes the sectioned report. Sections with nothing to show
// are left out, except Image Properties.
func (p *Printer) printReport(name string, m *MetadataRecord) error {
	w := &errWriter{w: p.Writer}
	section := func(title string) {
		w.printf("%s\n%s\n", title, strings.Repeat("-", 30))
	}

	w.printf("IMAGE ANALYSIS RESULTS\n%s\n", strings.Repeat("=", 50))
	w.printf("File: %s\n\n", name)

	if m.CameraMake != nil || m.CameraModel != nil {
		section("CAMERA INFORMATION")
		w.line("Make", str(m.CameraMake))
		w.line("Model", str(m.CameraModel))
		w.printf("\n")
	}

	section("IMAGE PROPERTIES")
	if m.Width != nil && m.Height != nil {
		w.printf("Dimensions: %d × %d pixels\n", *m.Width, *m.Height)
	}
	w.line("Orientation", num(m.Orientation))
	w.line("Date Taken", str(m.DateTaken))
	w.line("Software", str(m.Software))
	w.printf("\n")

	if m.HasGPS() {
		section("LOCATION INFORMATION")
		w.line("Latitude", coord(m.GPSLatitude))
		w.line("Longitude", coord(m.GPSLongitude))
		if m.GPSAltitude != nil {
			w.printf("Altitude: %s meters\n", decimal(m.GPSAltitude))
		}
		w.printf("\n")
	}

	if m.ISO != nil || m.ExposureTime != nil || m.FNumber != nil || m.FocalLength != nil {
		section("CAMERA SETTINGS")
		w.line("ISO", num(m.ISO))
		w.line("Exposure Time", str(m.ExposureTime))
		w.line("F-Number", str(m.FNumber))
		w.line("Focal Length", str(m.FocalLength))
		w.printf("\n")
	}

	if len(m.AllFields) > 0 {
		section("ALL METADATA FIELDS")
		for _, f := range m.AllFields {
			w.printf("%s: %s\n", f.Tag, f.Value)
		}
		w.printf("\n")
	}
	return w.err
}

func (p *Printer) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize result: %w", err)
	}
	if _, err := fmt.Fprintln(p.Writer, string(b)); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// PrintError prints an error to stderr.
func PrintError(msg string) {
	fmt.Fprintln(os.Stderr, "✗ Error: "+msg)
}

// errWriter keeps the first write error so printText can check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// line writes "label: value", skipping empty values.
func (e *errWriter) line(label, value string) {
	if value != "" {
		e.printf("%s: %s\n", label, value)
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num[T uint16 | uint32](p *T) string {
	if p == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*p), 10)
}

func coord(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 6, 64)
}

// decimal renders the shortest exact representation.
func decimal(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
