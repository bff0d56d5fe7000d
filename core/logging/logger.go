// Package logging builds the zerolog logger used by the command line tool.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// EnvLevel is consulted when no level is passed explicitly.
const EnvLevel = "IMAGE_ANALYZER_LOG_LEVEL"

// New returns a console logger writing to w.
// level is a zerolog level name (trace, debug, info, warn, error); empty
// falls back to EnvLevel, anything unrecognised to info.
func New(w io.Writer, level string) zerolog.Logger {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)}).
		Level(ParseLevel(level)).
		With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// fall back to info.
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
