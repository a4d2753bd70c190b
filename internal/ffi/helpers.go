package ffi

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/pact-foundation/pact-core-go/internal/generators"
	"github.com/pact-foundation/pact-core-go/pkg/pactlog"
)

// libraryVersion is this core library's own version string, analogous to
// pact_ffi's version(). Bumped by hand; there is no build-time
// version stamping in this module.
const libraryVersion = "0.1.0"

var logger = pactlog.Nop()

// Version returns the library version string.
func Version() string { return libraryVersion }

// Init configures the package-level logger at info level.
func Init() {
	logger = pactlog.New(pactlog.Config{Level: slog.LevelInfo})
}

// InitWithLogLevel configures the package-level logger at the named level.
// An unrecognised level falls back to info, matching pactlog.ParseLevel's
// own default.
func InitWithLogLevel(level string) {
	logger = pactlog.New(pactlog.Config{Level: pactlog.ParseLevel(level)})
}

// LogMessage writes one line through the configured logger, tagged with the source so multiple FFI consumers sharing
// one process log stream can be told apart.
func LogMessage(source, message string) {
	logger.Info(message, "source", source)
}

// GenerateDatetimeString renders the current time under format, a Go
// reference-time layout, by delegating to
// the same DateTime generator the matching/generation engine itself uses
// rather than reimplementing time formatting here.
func GenerateDatetimeString(format string) (string, error) {
	v, err := (generators.DateTime{Format: format}).Generate(generators.Generate, nil, nil)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// GenerateRegexValue produces one concrete string satisfying pattern on a
// best-effort basis, via the same expansion the
// Regex generator variant uses.
func GenerateRegexValue(pattern string) (string, error) {
	v, err := (generators.Regex{Pattern: pattern}).Generate(generators.Generate, nil, nil)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// CheckRegex reports whether example fully matches pattern. Go's regexp package is the standard library's own regular
// expression engine, not a parsing concern this module's domain stack has
// a third-party alternative for, so it is used directly here.
func CheckRegex(pattern, example string) (bool, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return false, fmt.Errorf("ffi: invalid regex %q: %w", pattern, err)
	}
	return re.MatchString(example), nil
}

// FreeString exists for API parity with the real FFI's manual memory
// ownership contract. Go strings are garbage collected, so
// this is deliberately a no-op; it is kept so a caller porting
// documentation or examples from the real FFI surface finds every
// documented operation present.
func FreeString(string) {}
