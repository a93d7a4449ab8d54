package marshal

import (
	"encoding/binary"

	"github.com/ValentinKolb/owire/wire/common"
)

// --------------------------------------------------------------------------
// DataOutput
// --------------------------------------------------------------------------

// DataOutput is a growable big endian write buffer. The approach is similar
// to bytes.Buffer but only supports many writes followed by one read of the
// whole buffer, so writes never fail.
type DataOutput struct {
	buf []byte
}

// NewDataOutput creates a buffer with the given initial capacity
func NewDataOutput(capacity int) *DataOutput {
	return &DataOutput{buf: make([]byte, 0, capacity)}
}

// Bytes returns the bytes written so far
func (o *DataOutput) Bytes() []byte { return o.buf }

// Len returns the number of bytes written so far
func (o *DataOutput) Len() int { return len(o.buf) }

// Reset empties the buffer keeping its capacity
func (o *DataOutput) Reset() { o.buf = o.buf[:0] }

// Write implements io.Writer
func (o *DataOutput) Write(p []byte) (int, error) {
	o.buf = append(o.buf, p...)
	return len(p), nil
}

func (o *DataOutput) WriteUint8(v byte) {
	o.buf = append(o.buf, v)
}

func (o *DataOutput) WriteBool(v bool) {
	if v {
		o.buf = append(o.buf, 1)
	} else {
		o.buf = append(o.buf, 0)
	}
}

func (o *DataOutput) WriteUint16(v uint16) {
	o.buf = binary.BigEndian.AppendUint16(o.buf, v)
}

func (o *DataOutput) WriteInt16(v int16) {
	o.WriteUint16(uint16(v))
}

func (o *DataOutput) WriteInt32(v int32) {
	o.buf = binary.BigEndian.AppendUint32(o.buf, uint32(v))
}

func (o *DataOutput) WriteInt64(v int64) {
	o.buf = binary.BigEndian.AppendUint64(o.buf, uint64(v))
}

// WriteUTF writes a uint16 length followed by the string bytes
func (o *DataOutput) WriteUTF(s string) {
	o.WriteUint16(uint16(len(s)))
	o.buf = append(o.buf, s...)
}

// --------------------------------------------------------------------------
// DataInput
// --------------------------------------------------------------------------

// DataInput reads big endian values from a byte slice. The first failure is
// kept in Err and every later read returns a zero value, so nested decoders
// never panic and only the top level caller needs to check Err.
type DataInput struct {
	data []byte
	pos  int
	Err  error
}

// NewDataInput creates a reader over data
func NewDataInput(data []byte) *DataInput {
	return &DataInput{data: data}
}

// Fail records err unless an earlier error is already recorded
func (in *DataInput) Fail(err error) {
	if in.Err == nil {
		in.Err = err
	}
}

// Remaining returns the number of unread bytes
func (in *DataInput) Remaining() int {
	return len(in.data) - in.pos
}

// next returns the next n bytes or nil (and records an error)
func (in *DataInput) next(n int) []byte {
	if in.Err != nil {
		return nil
	}
	if n < 0 || in.Remaining() < n {
		in.Err = common.Protocolf(common.ReasonMalformed, "DataInput.read",
			"need %d bytes but only %d left", n, in.Remaining())
		return nil
	}
	b := in.data[in.pos : in.pos+n]
	in.pos += n
	return b
}

func (in *DataInput) ReadUint8() byte {
	b := in.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (in *DataInput) ReadBool() bool {
	return in.ReadUint8() != 0
}

func (in *DataInput) ReadUint16() uint16 {
	b := in.next(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (in *DataInput) ReadInt16() int16 {
	return int16(in.ReadUint16())
}

func (in *DataInput) ReadInt32() int32 {
	b := in.next(4)
	if b == nil {
		return 0
	}
	return int32(binary.BigEndian.Uint32(b))
}

func (in *DataInput) ReadInt64() int64 {
	b := in.next(8)
	if b == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(b))
}

// ReadBytes returns a copy of the next n bytes
func (in *DataInput) ReadBytes(n int) []byte {
	b := in.next(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// ReadInto fills p completely
func (in *DataInput) ReadInto(p []byte) {
	b := in.next(len(p))
	if b != nil {
		copy(p, b)
	}
}

// ReadUTF reads a uint16 length followed by the string bytes
func (in *DataInput) ReadUTF() string {
	n := int(in.ReadUint16())
	b := in.next(n)
	if b == nil {
		return ""
	}
	return string(b)
}
