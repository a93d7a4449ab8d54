package marshal

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ValentinKolb/owire/wire/common"
)

// tightRoundTrip runs pass one, pass two and the decoder over a single value
func tightRoundTrip(t *testing.T, pass1 func(*BooleanStream) int, pass2 func(*DataOutput, *BooleanStream),
	decode func(*DataInput, *BooleanStream)) []byte {
	t.Helper()

	bs := NewBooleanStream()
	size := pass1(bs)

	body := NewDataOutput(0)
	bs.Clear()
	pass2(body, bs)
	if body.Len() != size {
		t.Fatalf("pass one predicted %d bytes, pass two wrote %d", size, body.Len())
	}
	if bs.Remaining() != 0 {
		t.Fatalf("pass two left %d flags unread", bs.Remaining())
	}

	bs.Clear()
	in := NewDataInput(body.Bytes())
	decode(in, bs)
	if in.Err != nil {
		t.Fatalf("decode failed: %v", in.Err)
	}
	if in.Remaining() != 0 {
		t.Fatalf("decode left %d bytes unread", in.Remaining())
	}
	return body.Bytes()
}

// TestTightLong tests the width selection of tightly encoded longs
func TestTightLong(t *testing.T) {
	tests := []struct {
		value int64
		width int
	}{
		{0, 0},
		{1, 2},
		{0xFFFF, 2},
		{0x10000, 4},
		{0xFFFFFFFF, 4},
		{0x100000000, 8},
		{-1, 8},
		{math.MaxInt64, 8},
		{math.MinInt64, 8},
	}
	for _, tt := range tests {
		var got int64
		body := tightRoundTrip(t,
			func(bs *BooleanStream) int { return TightMarshalLong1(tt.value, bs) },
			func(out *DataOutput, bs *BooleanStream) { TightMarshalLong2(tt.value, out, bs) },
			func(in *DataInput, bs *BooleanStream) { got = TightUnmarshalLong(in, bs) },
		)
		if len(body) != tt.width {
			t.Errorf("value %d: expected %d bytes, got %d", tt.value, tt.width, len(body))
		}
		if got != tt.value {
			t.Errorf("value %d: decoded %d", tt.value, got)
		}
	}
}

// TestTightString tests presence, ascii and utf-8 strings
func TestTightString(t *testing.T) {
	for _, s := range []string{"", "queue.orders", "grüße", strings.Repeat("x", MaxStringLength)} {
		var got string
		body := tightRoundTrip(t,
			func(bs *BooleanStream) int {
				n, err := TightMarshalString1(s, bs)
				if err != nil {
					t.Fatalf("TightMarshalString1 failed: %v", err)
				}
				return n
			},
			func(out *DataOutput, bs *BooleanStream) { TightMarshalString2(s, out, bs) },
			func(in *DataInput, bs *BooleanStream) { got = TightUnmarshalString(in, bs) },
		)
		if got != s {
			t.Errorf("expected %q, got %q", s, got)
		}
		if s == "" && len(body) != 0 {
			t.Errorf("empty string should have no body, got %d bytes", len(body))
		}
	}
}

// TestStringTooLong tests the length limit in both encodings
func TestStringTooLong(t *testing.T) {
	if MaxStringLength != 32767 {
		t.Fatalf("expected a limit of 32767 bytes, got %d", MaxStringLength)
	}
	s := strings.Repeat("x", MaxStringLength+1)

	if _, err := TightMarshalString1(s, NewBooleanStream()); common.KindOf(err) != common.ProtocolError {
		t.Errorf("tight: expected protocol error, got %v", err)
	}
	if err := LooseMarshalString(s, NewDataOutput(0)); common.KindOf(err) != common.ProtocolError {
		t.Errorf("loose: expected protocol error, got %v", err)
	}
}

// TestByteArray tests that nil and empty arrays stay distinct
func TestByteArray(t *testing.T) {
	for _, b := range [][]byte{nil, {}, []byte("payload")} {
		var got []byte
		tightRoundTrip(t,
			func(bs *BooleanStream) int { return TightMarshalByteArray1(b, bs) },
			func(out *DataOutput, bs *BooleanStream) { TightMarshalByteArray2(b, out, bs) },
			func(in *DataInput, bs *BooleanStream) { got = TightUnmarshalByteArray(in, bs) },
		)
		if (got == nil) != (b == nil) || !bytes.Equal(got, b) {
			t.Errorf("tight: expected %#v, got %#v", b, got)
		}

		out := NewDataOutput(0)
		LooseMarshalByteArray(b, out)
		in := NewDataInput(out.Bytes())
		got = LooseUnmarshalByteArray(in)
		if in.Err != nil {
			t.Fatalf("loose: %v", in.Err)
		}
		if (got == nil) != (b == nil) || !bytes.Equal(got, b) {
			t.Errorf("loose: expected %#v, got %#v", b, got)
		}
	}
}

// TestLooseString tests the loose string layout
func TestLooseString(t *testing.T) {
	out := NewDataOutput(0)
	if err := LooseMarshalString("ab", out); err != nil {
		t.Fatal(err)
	}
	if err := LooseMarshalString("", out); err != nil {
		t.Fatal(err)
	}
	if want := []byte{1, 0, 2, 'a', 'b', 0}; !bytes.Equal(out.Bytes(), want) {
		t.Errorf("Expected %x, got %x", want, out.Bytes())
	}

	in := NewDataInput(out.Bytes())
	if s := LooseUnmarshalString(in); s != "ab" {
		t.Errorf("Expected ab, got %q", s)
	}
	if s := LooseUnmarshalString(in); s != "" {
		t.Errorf("Expected empty string, got %q", s)
	}
}

// TestDataInputSticky tests that the first error is kept
func TestDataInputSticky(t *testing.T) {
	in := NewDataInput([]byte{0, 1, 2})
	if v := in.ReadInt32(); v != 0 {
		t.Errorf("truncated read should yield 0, got %d", v)
	}
	first := in.Err
	if !errors.Is(first, common.ErrMalformed) {
		t.Fatalf("Expected malformed error, got %v", first)
	}
	in.ReadUint8()
	in.Fail(errors.New("other"))
	if in.Err != first {
		t.Error("first error should be kept")
	}

	in = NewDataInput([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0})
	if got := readByteArray(in); got != nil || in.Err == nil {
		t.Error("negative array length should fail")
	}
}
