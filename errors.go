package dissect

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorKind classifies why a decode attempt failed. Kinds, not names: callers
// match against these with errors.Is, never by inspecting message text.
type ErrorKind int

const (
	// ErrorKindNone is the zero value; never attached to a real error.
	ErrorKindNone ErrorKind = iota
	// ErrorKindUnexpectedEnd means the cursor was exhausted mid-field.
	ErrorKindUnexpectedEnd
	// ErrorKindTruncatedPacket means a declared length exceeds bytes available.
	ErrorKindTruncatedPacket
	// ErrorKindMalformedHeader means a structural invariant was violated.
	ErrorKindMalformedHeader
	// ErrorKindUnknownProtocol means a next-hint that must be known was not.
	ErrorKindUnknownProtocol
	// ErrorKindMisalignedRead means bit/byte cursor reads were mixed incorrectly.
	ErrorKindMisalignedRead
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindUnexpectedEnd:
		return "UnexpectedEnd"
	case ErrorKindTruncatedPacket:
		return "TruncatedPacket"
	case ErrorKindMalformedHeader:
		return "MalformedHeader"
	case ErrorKindUnknownProtocol:
		return "UnknownProtocol"
	case ErrorKindMisalignedRead:
		return "MisalignedRead"
	default:
		return "None"
	}
}

// Base sentinels, one per kind, following mistsys-tuntap's ErrTruncatedPacket/
// ErrShortRead pattern: a package-level errors.New value that call sites wrap
// with errors.Wrapf for context, and that callers can still match with
// errors.Is after wrapping.
var (
	ErrUnexpectedEnd    = errors.New("dissect: unexpected end of input")
	ErrTruncatedPacket  = errors.New("dissect: declared length exceeds available bytes")
	ErrMalformedHeader  = errors.New("dissect: malformed protocol header")
	ErrUnknownProtocol  = errors.New("dissect: unknown protocol")
	ErrMisalignedRead   = errors.New("dissect: misaligned bit/byte cursor read")
)

func kindSentinel(k ErrorKind) error {
	switch k {
	case ErrorKindUnexpectedEnd:
		return ErrUnexpectedEnd
	case ErrorKindTruncatedPacket:
		return ErrTruncatedPacket
	case ErrorKindMalformedHeader:
		return ErrMalformedHeader
	case ErrorKindUnknownProtocol:
		return ErrUnknownProtocol
	case ErrorKindMisalignedRead:
		return ErrMisalignedRead
	default:
		return nil
	}
}

// wrapf wraps a sentinel with call-site context using pkg/errors, matching
// the wrapping idiom mistsys-tuntap applies to every low-level syscall
// failure. Used for cursor-level reads.
func wrapf(k ErrorKind, format string, args ...any) error {
	return pkgerrors.Wrapf(kindSentinel(k), format, args...)
}

// KindOf extracts the ErrorKind a wrapped cursor/decoder error carries, or
// ErrorKindNone if err doesn't wrap one of the sentinels above.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrUnexpectedEnd):
		return ErrorKindUnexpectedEnd
	case errors.Is(err, ErrTruncatedPacket):
		return ErrorKindTruncatedPacket
	case errors.Is(err, ErrMalformedHeader):
		return ErrorKindMalformedHeader
	case errors.Is(err, ErrUnknownProtocol):
		return ErrorKindUnknownProtocol
	case errors.Is(err, ErrMisalignedRead):
		return ErrorKindMisalignedRead
	default:
		return ErrorKindNone
	}
}

// DecodeError is returned by DecodeFrame for a top-level failure: one that
// occurred in the initial-hint decoder itself, with no sublayer above it to
// fall back to. Every other failure degrades to a Raw fallback and a
// __error__ field instead of reaching the caller (see engine.go).
type DecodeError struct {
	Kind   ErrorKind
	Offset int
	Chain  []string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("dissect: %s at offset %d (chain %v): %v", e.Kind, e.Offset, e.Chain, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
