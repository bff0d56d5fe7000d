// Package analyzer runs the metadata extraction pipeline over an in-memory
// image and keeps the most recent result.
//
// The pipeline probes pixel dimensions, reads the EXIF container, maps every
// tag into the record, and finally pairs the GPS coordinates with their
// hemisphere references. Missing metadata is never an error: the record just
// keeps the corresponding fields unset.
package analyzer

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ankit-chaubey/image-analyzer/core"
	"github.com/ankit-chaubey/image-analyzer/core/container"
	"github.com/ankit-chaubey/image-analyzer/core/probe"
)

// ErrNoMetadata is returned by LastResult before any analysis has run.
var ErrNoMetadata = errors.New("no metadata available")

const (
	reverseSearchStatus  = "not_implemented"
	reverseSearchMessage = "Reverse image search requires external API integration"
)

// Analyzer extracts metadata and remembers the last record it produced.
//
// An Analyzer is not safe for concurrent use. Serialize calls, or use one
// Analyzer per task.
type Analyzer struct {
	log        zerolog.Logger
	dimensions func([]byte) (uint32, uint32, bool)
	last       *core.MetadataRecord
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger diagnostic events are written to.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

// WithDimensionProbe replaces the pixel decoder used for width and height.
func WithDimensionProbe(fn func([]byte) (width, height uint32, ok bool)) Option {
	return func(a *Analyzer) { a.dimensions = fn }
}

// New returns an Analyzer with no stored record. It logs nothing unless a
// logger is supplied.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		log:        zerolog.Nop(),
		dimensions: probe.Dimensions,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze decodes the options payload and runs the pipeline over image.
// A malformed payload fails before any extraction work and leaves the stored
// record untouched.
func (a *Analyzer) Analyze(image []byte, options []byte) (*core.MetadataRecord, error) {
	opts, err := core.DecodeOptions(options)
	if err != nil {
		a.log.Error().Err(err).Msg("Failed to parse options")
		return nil, err
	}
	return a.AnalyzeWith(image, opts), nil
}

// AnalyzeWith runs the pipeline stages selected by opts, stores the result
// in place of the previous one, and returns it.
func (a *Analyzer) AnalyzeWith(image []byte, opts core.AnalysisOptions) *core.MetadataRecord {
	log := a.log.With().Str("run_id", uuid.NewString()).Logger()
	log.Info().
		Int("bytes", len(image)).
		Bool("extract_metadata", opts.ExtractMetadata).
		Msg("Starting image analysis")

	m := core.NewMetadataRecord()
	if opts.ExtractMetadata {
		log.Debug().Msg("Extracting metadata")
		a.extract(log, image, m)
	}

	a.last = m.Clone()

	log.Info().
		Int("fields", len(m.AllFields)).
		Bool("has_gps", m.HasGPS()).
		Msg("Image analysis complete")
	return m
}

func (a *Analyzer) extract(log zerolog.Logger, image []byte, m *core.MetadataRecord) {
	if w, h, ok := a.dimensions(image); ok {
		m.Width, m.Height = ptr(w), ptr(h)
	} else {
		log.Debug().Msg("Could not decode image dimensions")
	}

	dir, err := container.Read(image)
	if err != nil {
		log.Info().Err(err).Msg("No EXIF data found in image")
		return
	}
	for _, w := range dir.Warnings {
		log.Debug().Str("format", string(dir.Format)).Str("reason", w).Msg("Skipped part of EXIF container")
	}

	mapFields(dir, m)

	if m.GPSLatitude == nil || m.GPSLongitude == nil {
		if !resolveGPS(dir, m) {
			log.Debug().Msg("No complete GPS coordinates")
		}
	}

	log.Debug().
		Str("format", string(dir.Format)).
		Str("mime", dir.Format.Info().MIMEType).
		Int("tags", dir.Len()).
		Msg("EXIF container read")
}

// LastResult returns a copy of the record stored by the latest analysis.
func (a *Analyzer) LastResult() (*core.MetadataRecord, error) {
	if a.last == nil {
		return nil, ErrNoMetadata
	}
	return a.last.Clone(), nil
}

// ReverseSearch is a placeholder for reverse image search. It does no work
// and always returns the same not-implemented payload.
func (a *Analyzer) ReverseSearch(image []byte) core.ReverseSearchResult {
	a.log.Info().Int("bytes", len(image)).Msg("Reverse image search not yet implemented - would require API integration")
	return core.ReverseSearchResult{
		Status:  reverseSearchStatus,
		Message: reverseSearchMessage,
	}
}
