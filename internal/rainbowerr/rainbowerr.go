// Package rainbowerr defines the tagged error taxonomy shared by every
// layer of the steganographic codec/framing stack.
package rainbowerr

import "fmt"

// Kind classifies an Error without requiring callers to do string
// matching on the message.
type Kind int

const (
	// KindOther is the catch-all kind.
	KindOther Kind = iota
	KindInvalidData
	KindEncodeFailed
	KindDecodeFailed
	KindLengthMismatch
	KindHTTPError
	KindIO
	KindBase64
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindInvalidData:
		return "InvalidData"
	case KindEncodeFailed:
		return "EncodeFailed"
	case KindDecodeFailed:
		return "DecodeFailed"
	case KindLengthMismatch:
		return "LengthMismatch"
	case KindHTTPError:
		return "HttpError"
	case KindIO:
		return "Io"
	case KindBase64:
		return "Base64"
	case KindJSON:
		return "Json"
	default:
		return "Other"
	}
}

// Error is the tagged sum type propagated by every public operation in
// this module. It wraps an underlying error (if any) so errors.Is /
// errors.As keep working against it.
type Error struct {
	Kind Kind
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, rainbowerr.InvalidData("")) match on Kind alone,
// ignoring Msg/Err — callers compare kinds, not messages.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == te.Kind
}

func newErr(k Kind, msg string, err error) *Error {
	return &Error{Kind: k, Msg: msg, Err: err}
}

func InvalidData(msg string) *Error { return newErr(KindInvalidData, msg, nil) }
func EncodeFailed(msg string) *Error { return newErr(KindEncodeFailed, msg, nil) }
func DecodeFailed(msg string) *Error { return newErr(KindDecodeFailed, msg, nil) }
func HTTPError(msg string) *Error { return newErr(KindHTTPError, msg, nil) }
func Other(msg string) *Error { return newErr(KindOther, msg, nil) }

// LengthMismatch reports a self-describing length that disagreed with
// the observed length, e.g. Content-Length vs actual body size.
func LengthMismatch(expected, actual int, context string) *Error {
	return newErr(KindLengthMismatch, fmt.Sprintf("%s: expected %d, got %d", context, expected, actual), nil)
}

// Wrap tags an underlying third-party error with a kind.
func Wrap(k Kind, msg string, err error) *Error {
	return newErr(k, msg, err)
}

func WrapIO(err error) *Error { return newErr(KindIO, "io error", err) }
func WrapBase64(err error) *Error { return newErr(KindBase64, "base64 decode error", err) }
func WrapJSON(err error) *Error { return newErr(KindJSON, "json error", err) }
