package cache

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed.
type Kind string

const (
	// KindNone is reported for results that did not fail.
	KindNone Kind = ""

	// KindTransport covers an unreachable store, timeouts, cancellation and
	// error replies from the server (for example WRONGTYPE).
	KindTransport Kind = "transport"

	// KindEncoding means a value could not be encoded or decoded.
	KindEncoding Kind = "encoding"

	// KindInvalid means the caller passed an argument the operation rejects.
	KindInvalid Kind = "invalid"
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrTransport = errors.New("cache transport failure")
	ErrEncoding  = errors.New("cache encoding failure")
	ErrInvalid   = errors.New("invalid cache argument")
)

// Error is returned by Store operations that fail.
type Error struct {
	Op   string
	Key  string
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cache %s %q: %s: %v", e.Op, e.Key, e.Kind, e.Err)
	}
	return fmt.Sprintf("cache %s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrEncoding:
		return e.Kind == KindEncoding
	case ErrInvalid:
		return e.Kind == KindInvalid
	default:
		return false
	}
}

// KindOf returns the Kind carried by err, KindTransport for foreign
// errors and KindNone for nil.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindTransport
}
