package cache

// Status is the outcome of a read.
type Status uint8

const (
	// StatusNotFound means the key or field does not exist. It is not a failure.
	StatusNotFound Status = iota

	// StatusFound means Value holds the stored value.
	StatusFound

	// StatusFailure means the store could not answer; Err says why.
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result carries a read outcome: Found(value), NotFound or Failure(err).
// The zero value is NotFound.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

func found[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusFound}
}

func notFound[T any]() Result[T] {
	return Result[T]{Status: StatusNotFound}
}

func failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusFailure, Err: err}
}

// Found reports whether a value is present.
func (r Result[T]) Found() bool { return r.Status == StatusFound }

// Failed reports whether the store could not answer.
func (r Result[T]) Failed() bool { return r.Status == StatusFailure }

// Kind returns the failure kind, or KindNone.
func (r Result[T]) Kind() Kind {
	if r.Status != StatusFailure {
		return KindNone
	}
	return KindOf(r.Err)
}

// Get collapses the result: the value and true when found, the zero value
// and false otherwise.
func (r Result[T]) Get() (T, bool) {
	if r.Status != StatusFound {
		var zero T
		return zero, false
	}
	return r.Value, true
}

// Or returns the value when found and def otherwise.
func (r Result[T]) Or(def T) T {
	if r.Status != StatusFound {
		return def
	}
	return r.Value
}
