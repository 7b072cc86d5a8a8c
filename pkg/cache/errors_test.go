package cache

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with key",
			err:      &Error{Op: OpGet, Key: "session:1", Kind: KindTransport, Err: errors.New("connection refused")},
			expected: `cache get "session:1": transport: connection refused`,
		},
		{
			name:     "without key",
			err:      &Error{Op: OpPing, Kind: KindTransport, Err: errors.New("i/o timeout")},
			expected: "cache ping: transport: i/o timeout",
		},
		{
			name:     "encoding",
			err:      &Error{Op: OpSet, Key: "k", Kind: KindEncoding, Err: errors.New("unsupported type")},
			expected: `cache set "k": encoding: unsupported type`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", &Error{Op: OpSet, Key: "k", Kind: KindEncoding, Err: cause})

	if !errors.Is(err, ErrEncoding) {
		t.Error("errors.Is(err, ErrEncoding) = false, want true")
	}
	if errors.Is(err, ErrTransport) {
		t.Error("errors.Is(err, ErrTransport) = true, want false")
	}
	if errors.Is(err, ErrInvalid) {
		t.Error("errors.Is(err, ErrInvalid) = true, want false")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindNone},
		{"cache error", &Error{Kind: KindInvalid}, KindInvalid},
		{"wrapped cache error", fmt.Errorf("ctx: %w", &Error{Kind: KindEncoding}), KindEncoding},
		{"foreign error", errors.New("dial tcp: refused"), KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResult(t *testing.T) {
	hit := found("v")
	if v, ok := hit.Get(); !ok || v != "v" {
		t.Errorf("found.Get() = %q, %v", v, ok)
	}
	if !hit.Found() || hit.Failed() || hit.Kind() != KindNone {
		t.Errorf("found result misreported: %+v", hit)
	}

	var zero Result[int]
	if zero.Status != StatusNotFound {
		t.Errorf("zero Result status = %v, want %v", zero.Status, StatusNotFound)
	}
	if got := zero.Or(7); got != 7 {
		t.Errorf("NotFound.Or(7) = %d, want 7", got)
	}

	fail := failed[int](&Error{Op: OpIncrement, Kind: KindTransport, Err: errors.New("down")})
	if !fail.Failed() || fail.Found() {
		t.Errorf("failed result misreported: %+v", fail)
	}
	if fail.Kind() != KindTransport {
		t.Errorf("Kind() = %q, want %q", fail.Kind(), KindTransport)
	}
	if v, ok := fail.Get(); ok || v != 0 {
		t.Errorf("failed.Get() = %d, %v; want 0, false", v, ok)
	}
}

func TestStatus_String(t *testing.T) {
	for status, want := range map[Status]string{
		StatusFound:    "found",
		StatusNotFound: "not_found",
		StatusFailure:  "failure",
		Status(99):     "unknown",
	} {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}
