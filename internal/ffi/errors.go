package ffi

import (
	"errors"

	"github.com/pact-foundation/pact-core-go/internal/mockserver"
	"github.com/pact-foundation/pact-core-go/internal/pactio"
)

// Sentinel errors, the Go-shaped equivalent of the FFI error taxonomy
// (ParseError, InvalidHandle, MockServerStartError, TlsError,
// AddressParseError, IoError, WriteConflict, Panic).
var (
	ErrInvalidHandle = errors.New("ffi: invalid or unknown handle")
	ErrParse         = errors.New("ffi: parse error")
)

// CreateCode is the literal negative error code table for create_mock_server.
// OK is never returned as an error; it documents the zero value a
// caller should treat as success.
type CreateCode int32

const (
	CreateOK              CreateCode = 0
	CreateInvalidHandle   CreateCode = -1
	CreateInvalidPact     CreateCode = -2
	CreateStartFailed     CreateCode = -3
	CreatePanic           CreateCode = -4
	CreateInvalidAddress  CreateCode = -5
	CreateTLSConfigFailed CreateCode = -6
)

// WriteCode is the literal positive error code table for write_pact_file /
// write_message_pact_file.
type WriteCode int32

const (
	WriteOK           WriteCode = 0
	WritePanic        WriteCode = 1
	WriteIOError      WriteCode = 2
	WriteNoMockServer WriteCode = 3
)

// ClassifyCreate maps an error from CreateMockServer(ForPact) onto the
// documented negative code. internal/mockserver already classifies its own
// narrower error set via ClassifyCreateError; this widens that mapping
// with the two failure modes that only exist at this boundary (an unknown
// handle, a pact that failed to parse before any server was attempted).
func ClassifyCreate(err error) CreateCode {
	switch {
	case err == nil:
		return CreateOK
	case errors.Is(err, ErrInvalidHandle):
		return CreateInvalidHandle
	case errors.Is(err, ErrParse):
		return CreateInvalidPact
	default:
		switch mockserver.ClassifyCreateError(err) {
		case mockserver.CodeInvalidHandle:
			return CreateInvalidHandle
		case mockserver.CodeInvalidPact:
			return CreateInvalidPact
		case mockserver.CodeInvalidAddress:
			return CreateInvalidAddress
		case mockserver.CodeTLSError:
			return CreateTLSConfigFailed
		default:
			return CreateStartFailed
		}
	}
}

// ClassifyWrite maps an error from WritePactFile onto the documented
// positive code.
func ClassifyWrite(err error) WriteCode {
	if err == nil {
		return WriteOK
	}
	if errors.Is(err, ErrInvalidHandle) {
		return WriteNoMockServer
	}
	var we *pactio.WriteError
	if errors.As(err, &we) {
		switch we.Kind {
		case pactio.WriteIOError:
			return WriteIOError
		case pactio.WriteNoInteractions:
			return WriteNoMockServer
		}
	}
	return WritePanic
}
