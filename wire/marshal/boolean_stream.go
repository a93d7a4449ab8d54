package marshal

import (
	"github.com/ValentinKolb/owire/wire/common"
)

// Size prefix markers of a marshalled BooleanStream. A stream shorter than
// 64 bytes writes its length as a single byte, longer streams use a marker
// followed by a one or two byte length.
const (
	bsShortLimit  = 64
	bsMediumLimit = 256
	bsMaxBytes    = 0xFFFF

	bsMediumMarker byte = 0xC0
	bsLongMarker   byte = 0x80
)

// BooleanStream is a bit-packed FIFO of flags. Pass one of tight marshalling
// writes the flags, pass two (or the decoder) reads them back in the same
// order. A stream is not safe for concurrent use; use one per message.
type BooleanStream struct {
	data       []byte
	arrayLimit int // bytes in use
	bits       int // flags written (or available after Unmarshal)
	readBits   int // flags consumed
	overrun    bool
}

// NewBooleanStream creates an empty stream
func NewBooleanStream() *BooleanStream {
	return &BooleanStream{data: make([]byte, 32)}
}

// WriteBoolean appends one flag
func (bs *BooleanStream) WriteBoolean(value bool) {
	idx, off := bs.bits/8, bs.bits%8
	if off == 0 {
		bs.arrayLimit++
		if bs.arrayLimit > len(bs.data) {
			grown := make([]byte, len(bs.data)*2+1)
			copy(grown, bs.data)
			bs.data = grown
		}
		bs.data[idx] = 0
	}
	if value {
		bs.data[idx] |= 1 << off
	}
	bs.bits++
}

// ReadBoolean consumes the next flag. Reading past the recorded flags
// returns false and sets the overrun marker.
func (bs *BooleanStream) ReadBoolean() bool {
	if bs.readBits >= bs.bits {
		bs.overrun = true
		return false
	}
	idx, off := bs.readBits/8, bs.readBits%8
	bs.readBits++
	return (bs.data[idx]>>off)&0x01 != 0
}

// MarshalledSize is the number of bytes Marshal will write
func (bs *BooleanStream) MarshalledSize() int {
	switch {
	case bs.arrayLimit < bsShortLimit:
		return 1 + bs.arrayLimit
	case bs.arrayLimit < bsMediumLimit:
		return 2 + bs.arrayLimit
	default:
		return 3 + bs.arrayLimit
	}
}

// Marshal writes the length prefix and the packed flags, then rewinds the
// read cursor so the flags can be consumed by pass two.
func (bs *BooleanStream) Marshal(out *DataOutput) error {
	switch {
	case bs.arrayLimit < bsShortLimit:
		out.WriteUint8(byte(bs.arrayLimit))
	case bs.arrayLimit < bsMediumLimit:
		out.WriteUint8(bsMediumMarker)
		out.WriteUint8(byte(bs.arrayLimit))
	case bs.arrayLimit <= bsMaxBytes:
		out.WriteUint8(bsLongMarker)
		out.WriteUint16(uint16(bs.arrayLimit))
	default:
		return common.Protocolf(common.ReasonStreamDesync, "BooleanStream.Marshal",
			"%d flag bytes exceed the maximum of %d", bs.arrayLimit, bsMaxBytes)
	}
	out.Write(bs.data[:bs.arrayLimit])
	bs.Clear()
	return nil
}

// Unmarshal replaces the content of the stream with flags read from in
func (bs *BooleanStream) Unmarshal(in *DataInput) error {
	limit := int(in.ReadUint8())
	switch {
	case limit == int(bsMediumMarker):
		limit = int(in.ReadUint8())
	case limit == int(bsLongMarker):
		limit = int(in.ReadUint16())
	case limit >= bsShortLimit:
		in.Fail(common.Protocolf(common.ReasonMalformed, "BooleanStream.Unmarshal",
			"invalid length prefix 0x%02x", limit))
	}
	if in.Err != nil {
		return in.Err
	}

	if len(bs.data) < limit {
		bs.data = make([]byte, limit)
	}
	in.ReadInto(bs.data[:limit])
	if in.Err != nil {
		return in.Err
	}

	bs.arrayLimit = limit
	bs.bits = limit * 8
	bs.Clear()
	return nil
}

// Clear rewinds the read cursor without dropping the flags
func (bs *BooleanStream) Clear() {
	bs.readBits = 0
	bs.overrun = false
}

// Reset drops all flags so the stream can be reused for the next message
func (bs *BooleanStream) Reset() {
	// Unmarshal may leave bytes of an earlier, longer stream behind arrayLimit
	clear(bs.data)
	bs.arrayLimit = 0
	bs.bits = 0
	bs.Clear()
}

// Overrun reports whether a read went past the recorded flags
func (bs *BooleanStream) Overrun() bool {
	return bs.overrun
}

// Remaining returns the number of flags that were not read yet.
// After Unmarshal this includes the padding bits of the last byte.
func (bs *BooleanStream) Remaining() int {
	return bs.bits - bs.readBits
}

// Len returns the number of recorded flags
func (bs *BooleanStream) Len() int {
	return bs.bits
}

// Exhausted reports whether every whole byte of flags was consumed without
// reading past the end. Unread padding bits of the last byte are ignored.
func (bs *BooleanStream) Exhausted() bool {
	return !bs.overrun && bs.Remaining() < 8
}
