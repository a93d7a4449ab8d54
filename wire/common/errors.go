package common

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// --------------------------------------------------------------------------
// Error Kinds
// --------------------------------------------------------------------------

// ErrorKind classifies a failure by who has to act on it.
type ErrorKind uint8

const (
	KindUnknown ErrorKind = iota
	// ArgumentError is a local precondition violation (offset, length, port, ...).
	// The call fails immediately and must never be retried.
	ArgumentError
	// ProtocolError is fatal to the current encode or decode operation.
	ProtocolError
	// TransportError is a socket level failure. The caller may reconnect.
	TransportError
)

// String returns the string representation of an ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case ArgumentError:
		return "argument error"
	case ProtocolError:
		return "protocol error"
	case TransportError:
		return "transport error"
	default:
		return "unknown error"
	}
}

// Reason narrows an ErrorKind down to the condition that was hit.
type Reason uint8

const (
	ReasonNone Reason = iota

	// argument reasons

	ReasonBounds       // offset/length outside the buffer
	ReasonInvalidValue // port out of range, nil buffer, bad option

	// protocol reasons

	ReasonUnknownType        // type id without marshaller for the version
	ReasonUnknownCacheID     // cache reference to an empty slot
	ReasonStreamDesync       // boolean stream read past its end or left unread
	ReasonSizeMismatch       // tight pass one size differs from pass two output
	ReasonFrameTooLarge      // frame size above the configured limit
	ReasonUnsupportedVersion // no marshaller table for the version
	ReasonMalformed          // truncated or otherwise unreadable data

	// transport reasons

	ReasonClosed  // operation on a closed socket
	ReasonState   // operation not valid in the current socket state
	ReasonTimeout // deadline exceeded
	ReasonIO      // any other socket failure
)

// String returns the string representation of a Reason.
func (r Reason) String() string {
	switch r {
	case ReasonBounds:
		return "out of bounds"
	case ReasonInvalidValue:
		return "invalid value"
	case ReasonUnknownType:
		return "unknown type"
	case ReasonUnknownCacheID:
		return "unknown cache id"
	case ReasonStreamDesync:
		return "boolean stream desync"
	case ReasonSizeMismatch:
		return "size mismatch"
	case ReasonFrameTooLarge:
		return "frame too large"
	case ReasonUnsupportedVersion:
		return "unsupported version"
	case ReasonMalformed:
		return "malformed data"
	case ReasonClosed:
		return "closed"
	case ReasonState:
		return "invalid state"
	case ReasonTimeout:
		return "timeout"
	case ReasonIO:
		return "i/o failure"
	default:
		return "none"
	}
}

// --------------------------------------------------------------------------
// Sentinels (match with errors.Is)
// --------------------------------------------------------------------------

var (
	ErrBounds             = &Error{Kind: ArgumentError, Reason: ReasonBounds}
	ErrInvalidArgument    = &Error{Kind: ArgumentError, Reason: ReasonInvalidValue}
	ErrUnknownType        = &Error{Kind: ProtocolError, Reason: ReasonUnknownType}
	ErrUnknownCacheID     = &Error{Kind: ProtocolError, Reason: ReasonUnknownCacheID}
	ErrStreamDesync       = &Error{Kind: ProtocolError, Reason: ReasonStreamDesync}
	ErrSizeMismatch       = &Error{Kind: ProtocolError, Reason: ReasonSizeMismatch}
	ErrFrameTooLarge      = &Error{Kind: ProtocolError, Reason: ReasonFrameTooLarge}
	ErrUnsupportedVersion = &Error{Kind: ProtocolError, Reason: ReasonUnsupportedVersion}
	ErrMalformed          = &Error{Kind: ProtocolError, Reason: ReasonMalformed}
	ErrClosed             = &Error{Kind: TransportError, Reason: ReasonClosed}
	ErrInvalidState       = &Error{Kind: TransportError, Reason: ReasonState}
	ErrTimeout            = &Error{Kind: TransportError, Reason: ReasonTimeout}
	ErrIO                 = &Error{Kind: TransportError, Reason: ReasonIO}
)

// --------------------------------------------------------------------------
// Error
// --------------------------------------------------------------------------

// Mark is one place in the call chain where an error was observed.
type Mark struct {
	File string
	Line int
}

func (m Mark) String() string {
	return fmt.Sprintf("%s:%d", m.File, m.Line)
}

// Error is the error type returned by the codec and the transport.
// It carries the operation that failed, the offending value (if any) and
// the list of marks collected while the error travelled up the stack.
type Error struct {
	Kind    ErrorKind
	Reason  Reason
	Op      string
	Value   any
	Message string
	Cause   error
	Marks   []Mark
}

// NewError creates an error and records the caller as the first mark
func NewError(kind ErrorKind, reason Reason, op string, format string, args ...any) *Error {
	e := &Error{
		Kind:    kind,
		Reason:  reason,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
	e.addMark(2)
	return e
}

// Argumentf creates an ArgumentError for op with the offending value attached
func Argumentf(reason Reason, op string, value any, format string, args ...any) *Error {
	e := NewError(ArgumentError, reason, op, format, args...)
	e.Value = value
	e.Marks = e.Marks[:0]
	e.addMark(2)
	return e
}

// Protocolf creates a ProtocolError for op
func Protocolf(reason Reason, op string, format string, args ...any) *Error {
	e := NewError(ProtocolError, reason, op, format, args...)
	e.Marks = e.Marks[:0]
	e.addMark(2)
	return e
}

// Transportf creates a TransportError for op wrapping cause (may be nil)
func Transportf(reason Reason, op string, cause error, format string, args ...any) *Error {
	e := NewError(TransportError, reason, op, format, args...)
	e.Cause = cause
	e.Marks = e.Marks[:0]
	e.addMark(2)
	return e
}

// Mark appends the caller's position and returns the error for chaining:
//
//	return err.Mark()
func (e *Error) Mark() *Error {
	e.addMark(2)
	return e
}

// Observe appends the caller's position to err if it is (or wraps) an
// *Error and returns err unchanged otherwise. Layers call it when they pass
// an error from a lower layer upwards.
func Observe(err error) error {
	var e *Error
	if errors.As(err, &e) {
		e.addMark(2)
	}
	return err
}

// Clone returns a deep copy that keeps kind and reason
func (e *Error) Clone() *Error {
	c := *e
	c.Marks = append([]Mark(nil), e.Marks...)
	return &c
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Kind.String())
	if e.Reason != ReasonNone {
		sb.WriteString(" (")
		sb.WriteString(e.Reason.String())
		sb.WriteString(")")
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Value != nil {
		sb.WriteString(fmt.Sprintf(" [value=%v]", e.Value))
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports a match when kind and reason are equal, so the package
// sentinels can be used with errors.Is. A sentinel without reason matches
// every error of its kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == ReasonNone || t.Reason == e.Reason
}

// Trace renders the collected marks, oldest first
func (e *Error) Trace() string {
	parts := make([]string, len(e.Marks))
	for i, m := range e.Marks {
		parts[i] = m.String()
	}
	return strings.Join(parts, " <- ")
}

func (e *Error) addMark(skip int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return
	}
	e.Marks = append(e.Marks, Mark{File: filepath.Base(file), Line: line})
}

// KindOf returns the kind of err if it is (or wraps) an *Error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
