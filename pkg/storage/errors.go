package storage

import (
	"errors"
	"fmt"
)

// ErrorKind classifies storage errors so callers can map them to behavior
// (retry, report, HTTP status) without string matching.
type ErrorKind int

const (
	// KindKeyNotFound means the requested key does not exist.
	KindKeyNotFound ErrorKind = iota
	// KindKeyAlreadyExists is reserved; no backend currently raises it.
	KindKeyAlreadyExists
	// KindInvalidKey means the key failed validation.
	KindInvalidKey
	// KindInvalidValue means the value failed validation.
	KindInvalidValue
	// KindInternal covers lock, I/O, serialization and format failures.
	KindInternal
	// KindUnsupportedOperation means the backend does not implement the
	// requested operation.
	KindUnsupportedOperation
)

func (k ErrorKind) String() string {
	switch k {
	case KindKeyNotFound:
		return "key not found"
	case KindKeyAlreadyExists:
		return "key already exists"
	case KindInvalidKey:
		return "invalid key"
	case KindInvalidValue:
		return "invalid value"
	case KindInternal:
		return "internal storage error"
	case KindUnsupportedOperation:
		return "unsupported operation"
	default:
		return "unknown storage error"
	}
}

// Error is the error type returned by every storage operation.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports kind equality, so errors.Is(err, &Error{Kind: k}) matches any
// storage error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewKeyNotFound returns a KeyNotFound error for the given key.
func NewKeyNotFound(key string) *Error {
	return &Error{Kind: KindKeyNotFound, Message: key}
}

// NewInvalidKey returns an InvalidKey error with the given reason.
func NewInvalidKey(msg string) *Error {
	return &Error{Kind: KindInvalidKey, Message: msg}
}

// NewInvalidValue returns an InvalidValue error with the given reason.
func NewInvalidValue(msg string) *Error {
	return &Error{Kind: KindInvalidValue, Message: msg}
}

// NewInternal returns an Internal error with the given reason.
func NewInternal(msg string) *Error {
	return &Error{Kind: KindInternal, Message: msg}
}

// NewInternalf returns an Internal error with a formatted reason.
func NewInternalf(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// NewUnsupportedOperation returns an UnsupportedOperation error.
func NewUnsupportedOperation(msg string) *Error {
	return &Error{Kind: KindUnsupportedOperation, Message: msg}
}

// IsKeyNotFound reports whether err is a KeyNotFound storage error.
func IsKeyNotFound(err error) bool { return isKind(err, KindKeyNotFound) }

// IsInvalidKey reports whether err is an InvalidKey storage error.
func IsInvalidKey(err error) bool { return isKind(err, KindInvalidKey) }

// IsInvalidValue reports whether err is an InvalidValue storage error.
func IsInvalidValue(err error) bool { return isKind(err, KindInvalidValue) }

// IsInternal reports whether err is an Internal storage error.
func IsInternal(err error) bool { return isKind(err, KindInternal) }

// IsUnsupportedOperation reports whether err is an UnsupportedOperation
// storage error.
func IsUnsupportedOperation(err error) bool { return isKind(err, KindUnsupportedOperation) }

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
