package voevent

import (
	"errors"

	"github.com/tsawler/voevent/internal/charset"
)

// Sentinel errors. Returned errors wrap these with detail, so test with
// errors.Is.
var (
	// ErrInvalid is matched by every *ValidationError.
	ErrInvalid = errors.New("voevent: document is not schema-valid")

	// ErrUnsupportedVersion is returned when a parsed packet does not
	// declare version 2.0.
	ErrUnsupportedVersion = errors.New("voevent: unsupported VOEvent version")

	// ErrNotVOEvent is returned when the root element is not VOEvent.
	ErrNotVOEvent = errors.New("voevent: root element is not VOEvent")

	// ErrEmptyDocument is returned when the input holds no root element.
	ErrEmptyDocument = errors.New("voevent: document has no root element")

	// ErrUnsupportedValue is returned by NewParam for values it cannot
	// render.
	ErrUnsupportedValue = errors.New("voevent: unsupported param value")

	// ErrMissingElement is returned when a query needs an element that is
	// not in the packet.
	ErrMissingElement = errors.New("voevent: required element missing")

	// ErrUnsupportedCoords is returned for positions that are not
	// equatorial RA/Dec, or position types the library cannot write.
	ErrUnsupportedCoords = errors.New("voevent: unsupported coordinate system")

	// ErrTimescaleNotImplemented is returned for recognised timescales
	// whose conversion to UTC is not available (TT, GPS), and for times
	// given as offsets rather than ISO timestamps.
	ErrTimescaleNotImplemented = errors.New("voevent: timescale conversion not implemented")

	// ErrUnknownTimescale is returned when a coordinate system names a
	// timescale the library does not recognise.
	ErrUnknownTimescale = errors.New("voevent: unknown timescale")

	// ErrUnsupportedEncoding is returned when a packet declares, or output
	// is requested in, a character set with no known codec.
	ErrUnsupportedEncoding = charset.ErrUnsupported
)

// ValidationError describes why a document failed schema validation.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "voevent: document is not schema-valid: " + e.Err.Error()
}

// Reason returns the validator's description of the first violation.
func (e *ValidationError) Reason() string {
	return e.Err.Error()
}

// Unwrap exposes both ErrInvalid and the underlying validator error.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalid, e.Err}
}
