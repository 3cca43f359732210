package state

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is the error type used by every layer of the protocol. It wraps a
// return code (of type ErrCode) and a descriptive message. All protocol
// errors are terminal for the current serialize/deserialize call; nothing
// is retried internally.
type Error struct {
	Code ErrCode // The return code
	Msg  string  // The error message
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("ProtocolError (code %s): %s", e.Code.String(), e.Msg)
}

// NewError creates a new protocol Error with the given code and message.
func NewError(code ErrCode, format string, args ...interface{}) *Error {
	return &Error{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// CodeOf returns the protocol error code of err, or ErrCUnknown if err is
// not a protocol Error.
func CodeOf(err error) ErrCode {
	if pe, ok := err.(*Error); ok {
		return pe.Code
	}
	return ErrCUnknown
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type ErrCode uint64

const (
	ErrCUnknown                   ErrCode = iota // 0: Not a protocol error.
	ErrCMalformedHeader                          // 1: Marker bytes absent or truncated input.
	ErrCVersionMismatch                          // 2: Major/minor version byte differs from reader's own.
	ErrCSchemaOverflow                           // 3: More than 255 property names share a first letter.
	ErrCInvalidPropertyName                      // 4: Empty name or non-ASCII leading character.
	ErrCUnknownPropertyKey                       // 5: Compressed key index out of range for the schema.
	ErrCUnsupportedValueKind                     // 6: Value kind outside the codec table.
	ErrCNestedContainerNotAllowed                // 7: Dirty container nested inside another dirty container.
)

// String returns the symbolic name of the error code.
func (c ErrCode) String() string {
	switch c {
	case ErrCMalformedHeader:
		return "MalformedHeader"
	case ErrCVersionMismatch:
		return "VersionMismatch"
	case ErrCSchemaOverflow:
		return "SchemaOverflow"
	case ErrCInvalidPropertyName:
		return "InvalidPropertyName"
	case ErrCUnknownPropertyKey:
		return "UnknownPropertyKey"
	case ErrCUnsupportedValueKind:
		return "UnsupportedValueKind"
	case ErrCNestedContainerNotAllowed:
		return "NestedContainerNotAllowed"
	default:
		return "Unknown"
	}
}
