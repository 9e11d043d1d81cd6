package bytecode

import "github.com/pkg/errors"

// ErrorKind is the fixed, closed set of ways a bytecode stream can fail to
// parse, per spec.md §6/§7. A truncated stream at any point is an error of
// the kind being read when the truncation happened.
type ErrorKind uint8

const (
	InvalidFile ErrorKind = iota
	InvalidSignature
	InvalidVersion
	InvalidString
	InvalidInteger
	InvalidFloat
	MissingByte
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidFile:
		return "InvalidFile"
	case InvalidSignature:
		return "InvalidSignature"
	case InvalidVersion:
		return "InvalidVersion"
	case InvalidString:
		return "InvalidString"
	case InvalidInteger:
		return "InvalidInteger"
	case InvalidFloat:
		return "InvalidFloat"
	case MissingByte:
		return "MissingByte"
	default:
		return "Unknown"
	}
}

// Error wraps an ErrorKind with a short context message naming what was
// being read. Kind is what callers should switch on; Error() is for logs.
type Error struct {
	Kind ErrorKind
	err  error
}

func newError(kind ErrorKind, context string) *Error {
	return &Error{Kind: kind, err: errors.New(context)}
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}
