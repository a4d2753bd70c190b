package mockserver

import "errors"

// Sentinel errors, wrapped with fmt.Errorf("...: %w", ...) at the call
// site the way pkg/store declares ErrNotFound/ErrAlreadyExists in the
// teacher.
var (
	// ErrInvalidHandle is returned for an unknown or already-cleaned-up
	// server id.
	ErrInvalidHandle = errors.New("mockserver: invalid or unknown handle")
	// ErrNoMockServer is returned by operations that require a live
	// registry entry once it has already been cleaned up.
	ErrNoMockServer = errors.New("mockserver: no such mock server")
	// ErrAlreadyStarted is returned by Start on an entry already Running.
	ErrAlreadyStarted = errors.New("mockserver: already started")
	// ErrNotRunning is returned when a request arrives after shutdown.
	ErrNotRunning = errors.New("mockserver: not running")
	// ErrInvalidPact is returned for a pact document that fails to parse.
	ErrInvalidPact = errors.New("mockserver: invalid pact JSON")
	// ErrInvalidAddress is returned when the requested bind address
	// cannot be parsed.
	ErrInvalidAddress = errors.New("mockserver: invalid bind address")
	// ErrTLSConfig is returned when a TLS config cannot be built from the
	// supplied (or generated) certificate material.
	ErrTLSConfig = errors.New("mockserver: failed to build TLS config")
)

// Code is the Go-native equivalent of the FFI's integer error codes
//: negative on create, positive on write. internal/ffi maps these
// back onto the documented integers; this package only needs the
// classification, not the wire representation.
type Code int

const (
	// CodeOK indicates success.
	CodeOK Code = 0
	// CodeInvalidHandle is FFI code -1.
	CodeInvalidHandle Code = -1
	// CodeInvalidPact is FFI code -2.
	CodeInvalidPact Code = -2
	// CodeStartFailed is FFI code -3.
	CodeStartFailed Code = -3
	// CodePanic is FFI code -4.
	CodePanic Code = -4
	// CodeInvalidAddress is FFI code -5.
	CodeInvalidAddress Code = -5
	// CodeTLSError is FFI code -6.
	CodeTLSError Code = -6
)

// ClassifyCreateError maps an error returned from Create to its FFI
// error code, falling back to CodeStartFailed for anything unrecognised.
func ClassifyCreateError(err error) Code {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrInvalidHandle):
		return CodeInvalidHandle
	case errors.Is(err, ErrInvalidPact):
		return CodeInvalidPact
	case errors.Is(err, ErrInvalidAddress):
		return CodeInvalidAddress
	case errors.Is(err, ErrTLSConfig):
		return CodeTLSError
	case errors.Is(err, ErrAlreadyStarted), errors.Is(err, ErrNotRunning):
		return CodeStartFailed
	default:
		return CodeStartFailed
	}
}
