package pactlog

import (
	"io"
	"os"

	"github.com/hashicorp/logutils"
)

// FilterWriter is an io.Writer that drops lines tagged below a minimum
// level, for callers that still emit the legacy "[DEBUG] ...", "[WARN] ..."
// style lines (e.g. third-party code wired through log.SetOutput) alongside
// the slog-based logging the rest of this module uses. It does not replace
// slog; it exists so that one stray non-slog writer in a dependency doesn't
// have to be silenced outright.
type FilterWriter struct {
	filter *logutils.LevelFilter
}

// NewFilterWriter builds a FilterWriter that only passes through lines at or
// above minLevel ("DEBUG", "WARN", "ERROR"). Lines below that are dropped.
// If w is nil, os.Stderr is used.
func NewFilterWriter(minLevel string, w io.Writer) *FilterWriter {
	if w == nil {
		w = os.Stderr
	}
	if minLevel == "" {
		minLevel = "WARN"
	}
	return &FilterWriter{
		filter: &logutils.LevelFilter{
			Levels:   []logutils.LogLevel{"DEBUG", "WARN", "ERROR"},
			MinLevel: logutils.LogLevel(minLevel),
			Writer:   w,
		},
	}
}

// Write implements io.Writer, filtering by the level tag prefix.
func (f *FilterWriter) Write(p []byte) (int, error) {
	return f.filter.Write(p)
}
