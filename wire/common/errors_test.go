package common

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

// TestErrorIs tests matching errors against the sentinels
func TestErrorIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		match    error
		expected bool
	}{
		{"SameReason", Transportf(ReasonClosed, "op", nil, "closed"), ErrClosed, true},
		{"OtherReason", Transportf(ReasonTimeout, "op", nil, "timeout"), ErrClosed, false},
		{"OtherKind", Protocolf(ReasonMalformed, "op", "bad"), ErrIO, false},
		{"KindOnly", Argumentf(ReasonBounds, "op", 5, "bounds"), &Error{Kind: ArgumentError}, true},
		{"Wrapped", fmt.Errorf("outer: %w", Protocolf(ReasonUnknownType, "op", "type 7")), ErrUnknownType, true},
		{"Cause", Transportf(ReasonIO, "op", io.ErrUnexpectedEOF, "read"), io.ErrUnexpectedEOF, true},
		{"Foreign", io.EOF, ErrClosed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.match); got != tt.expected {
				t.Errorf("errors.Is(%v, %v) = %v, expected %v", tt.err, tt.match, got, tt.expected)
			}
		})
	}
}

// TestKindOf tests extracting the kind of wrapped and foreign errors
func TestKindOf(t *testing.T) {
	if k := KindOf(Argumentf(ReasonInvalidValue, "op", -1, "bad port")); k != ArgumentError {
		t.Errorf("expected argument error, got %s", k)
	}
	if k := KindOf(fmt.Errorf("ctx: %w", Protocolf(ReasonStreamDesync, "op", "desync"))); k != ProtocolError {
		t.Errorf("expected protocol error, got %s", k)
	}
	if k := KindOf(io.EOF); k != KindUnknown {
		t.Errorf("expected unknown kind, got %s", k)
	}
}

// TestErrorMessage tests the rendered message and the marks
func TestErrorMessage(t *testing.T) {
	err := Argumentf(ReasonBounds, "Socket.Read", 12, "length %d exceeds buffer", 12)
	msg := err.Error()
	for _, part := range []string{"Socket.Read", "argument error", "out of bounds", "length 12 exceeds buffer", "[value=12]"} {
		if !strings.Contains(msg, part) {
			t.Errorf("expected %q in %q", part, msg)
		}
	}

	if len(err.Marks) != 1 || err.Marks[0].File != "errors_test.go" {
		t.Fatalf("expected one mark in errors_test.go, got %v", err.Marks)
	}
	err.Mark()
	if len(err.Marks) != 2 {
		t.Errorf("expected two marks after Mark, got %d", len(err.Marks))
	}
	if !strings.Contains(err.Trace(), " <- ") {
		t.Errorf("expected joined trace, got %q", err.Trace())
	}
}

// TestErrorClone tests that a clone keeps kind and reason but not the mark slice
func TestErrorClone(t *testing.T) {
	orig := Transportf(ReasonTimeout, "connect", io.ErrClosedPipe, "timed out")
	clone := orig.Clone()
	clone.Mark()

	if len(orig.Marks) != 1 {
		t.Errorf("marking the clone changed the original: %v", orig.Marks)
	}
	if !errors.Is(clone, ErrTimeout) || !errors.Is(clone, io.ErrClosedPipe) {
		t.Errorf("clone lost kind, reason or cause: %v", clone)
	}
}

// TestObserve tests that errors passed upwards collect a mark per layer
func TestObserve(t *testing.T) {
	if Observe(nil) != nil {
		t.Error("expected nil for a nil error")
	}
	plain := io.EOF
	if Observe(plain) != plain {
		t.Error("expected a foreign error to be returned unchanged")
	}

	inner := Protocolf(ReasonUnknownType, "Lookup", "unknown type %d", 99)
	wrapped := fmt.Errorf("decoding: %w", inner)
	if got := Observe(wrapped); got != wrapped {
		t.Errorf("expected the wrapped error back, got %v", got)
	}
	if len(inner.Marks) != 2 {
		t.Fatalf("expected two marks, got %v", inner.Marks)
	}
	if inner.Marks[1].File != "errors_test.go" {
		t.Errorf("expected the second mark in errors_test.go, got %s", inner.Marks[1])
	}
}
