package sparseset

import "fmt"

// ErrorKind classifies sparse set errors into categories
type ErrorKind uint8

const (
	// UnsupportedSize indicates a bound outside [0, math.MaxUint32]
	UnsupportedSize ErrorKind = iota

	// OutOfBounds indicates a key at or beyond the bound
	OutOfBounds

	// InvalidGrowth indicates an attempt to grow the cardinality by assignment
	InvalidGrowth

	// NegativeCardinality indicates a negative cardinality was requested
	NegativeCardinality

	// InvalidRegion indicates a caller-supplied region that is too small or misaligned
	InvalidRegion
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case UnsupportedSize:
		return "UnsupportedSize"
	case OutOfBounds:
		return "OutOfBounds"
	case InvalidGrowth:
		return "InvalidGrowth"
	case NegativeCardinality:
		return "NegativeCardinality"
	case InvalidRegion:
		return "InvalidRegion"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Sentinel errors for use with errors.Is. Errors returned by this package
// carry the offending value but compare equal to the sentinel of their kind.
var (
	// ErrUnsupportedSize is returned when a bound cannot be represented.
	ErrUnsupportedSize = &Error{Kind: UnsupportedSize, Message: "unsupported size"}

	// ErrOutOfBounds is returned when a key does not fit the universe.
	ErrOutOfBounds = &Error{Kind: OutOfBounds, Message: "key out of bounds"}

	// ErrInvalidGrowth is returned by SetLen when the new length exceeds Len.
	ErrInvalidGrowth = &Error{Kind: InvalidGrowth, Message: "cardinality can only shrink"}

	// ErrNegativeCardinality is returned by SetLen for negative lengths.
	ErrNegativeCardinality = &Error{Kind: NegativeCardinality, Message: "negative cardinality"}

	// ErrInvalidRegion is returned when a supplied region cannot hold the set.
	ErrInvalidRegion = &Error{Kind: InvalidRegion, Message: "invalid memory region"}
)

// Error represents a failed sparse set operation
type Error struct {
	Kind    ErrorKind
	Message string
	Value   int // offending bound, key, length or offset
}

func newError(kind ErrorKind, message string, value int) *Error {
	return &Error{Kind: kind, Message: message, Value: value}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message == "" {
		return "sparseset: " + e.Kind.String()
	}
	return "sparseset: " + e.Message
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "sparseset: invalid config: " + e.Field + ": " + e.Message
}
