package apperr

import "errors"

// Kind classifies a service-level failure so controllers can map it to an
// HTTP status without inspecting message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindUnauthorized
	KindForbidden
	KindNotEnrolled
	KindAlreadyExists
	KindNotStarted
	KindEnded
	KindExamClosed
	KindAlreadySubmitted
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) error         { return New(KindNotFound, message) }
func Invalid(message string) error          { return New(KindInvalid, message) }
func Unauthorized(message string) error     { return New(KindUnauthorized, message) }
func Forbidden(message string) error        { return New(KindForbidden, message) }
func NotEnrolled(message string) error      { return New(KindNotEnrolled, message) }
func AlreadyExists(message string) error    { return New(KindAlreadyExists, message) }
func NotStarted(message string) error       { return New(KindNotStarted, message) }
func Ended(message string) error            { return New(KindEnded, message) }
func ExamClosed(message string) error       { return New(KindExamClosed, message) }
func AlreadySubmitted(message string) error { return New(KindAlreadySubmitted, message) }

// KindOf returns the kind carried by err, or KindUnknown for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
