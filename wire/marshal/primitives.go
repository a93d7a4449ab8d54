package marshal

import (
	"math"

	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/common"
)

// MaxStringLength is the largest string body (in bytes) the encoder accepts
const MaxStringLength = math.MaxInt16

// --------------------------------------------------------------------------
// Long
// --------------------------------------------------------------------------

// TightMarshalLong1 records two flags selecting the narrowest of 0, 2, 4 or
// 8 bytes that holds v and returns that width.
func TightMarshalLong1(v int64, bs *BooleanStream) int {
	u := uint64(v)
	switch {
	case u == 0:
		bs.WriteBoolean(false)
		bs.WriteBoolean(false)
		return 0
	case u&0xFFFFFFFFFFFF0000 == 0:
		bs.WriteBoolean(false)
		bs.WriteBoolean(true)
		return 2
	case u&0xFFFFFFFF00000000 == 0:
		bs.WriteBoolean(true)
		bs.WriteBoolean(false)
		return 4
	default:
		bs.WriteBoolean(true)
		bs.WriteBoolean(true)
		return 8
	}
}

func TightMarshalLong2(v int64, out *DataOutput, bs *BooleanStream) {
	if bs.ReadBoolean() {
		if bs.ReadBoolean() {
			out.WriteInt64(v)
		} else {
			out.WriteInt32(int32(v))
		}
	} else if bs.ReadBoolean() {
		out.WriteInt16(int16(v))
	}
}

// TightUnmarshalLong reads the narrow representations as unsigned values
func TightUnmarshalLong(in *DataInput, bs *BooleanStream) int64 {
	if bs.ReadBoolean() {
		if bs.ReadBoolean() {
			return in.ReadInt64()
		}
		return int64(uint32(in.ReadInt32()))
	}
	if bs.ReadBoolean() {
		return int64(in.ReadUint16())
	}
	return 0
}

func LooseMarshalLong(v int64, out *DataOutput) {
	out.WriteInt64(v)
}

func LooseUnmarshalLong(in *DataInput) int64 {
	return in.ReadInt64()
}

// --------------------------------------------------------------------------
// String
// --------------------------------------------------------------------------

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func checkStringLength(op, s string) error {
	if len(s) > MaxStringLength {
		return common.Protocolf(common.ReasonInvalidValue, op,
			"string of %d bytes exceeds the maximum of %d", len(s), MaxStringLength)
	}
	return nil
}

// TightMarshalString1 records a presence flag and an ascii flag. The empty
// string is encoded like a missing one.
func TightMarshalString1(s string, bs *BooleanStream) (int, error) {
	bs.WriteBoolean(s != "")
	if s == "" {
		return 0, nil
	}
	if err := checkStringLength("TightMarshalString1", s); err != nil {
		return 0, err
	}
	bs.WriteBoolean(isASCII(s))
	return 2 + len(s), nil
}

func TightMarshalString2(s string, out *DataOutput, bs *BooleanStream) {
	if !bs.ReadBoolean() {
		return
	}
	// both ascii and utf-8 bodies are a length followed by the bytes
	bs.ReadBoolean()
	out.WriteUTF(s)
}

func TightUnmarshalString(in *DataInput, bs *BooleanStream) string {
	if !bs.ReadBoolean() {
		return ""
	}
	bs.ReadBoolean()
	return in.ReadUTF()
}

func LooseMarshalString(s string, out *DataOutput) error {
	out.WriteBool(s != "")
	if s == "" {
		return nil
	}
	if err := checkStringLength("LooseMarshalString", s); err != nil {
		return err
	}
	out.WriteUTF(s)
	return nil
}

func LooseUnmarshalString(in *DataInput) string {
	if !in.ReadBool() {
		return ""
	}
	return in.ReadUTF()
}

// --------------------------------------------------------------------------
// Byte array
// --------------------------------------------------------------------------

// TightMarshalByteArray1 distinguishes nil from empty
func TightMarshalByteArray1(b []byte, bs *BooleanStream) int {
	bs.WriteBoolean(b != nil)
	if b == nil {
		return 0
	}
	return 4 + len(b)
}

func TightMarshalByteArray2(b []byte, out *DataOutput, bs *BooleanStream) {
	if bs.ReadBoolean() {
		out.WriteInt32(int32(len(b)))
		out.Write(b)
	}
}

func TightUnmarshalByteArray(in *DataInput, bs *BooleanStream) []byte {
	if !bs.ReadBoolean() {
		return nil
	}
	return readByteArray(in)
}

func LooseMarshalByteArray(b []byte, out *DataOutput) {
	out.WriteBool(b != nil)
	if b != nil {
		out.WriteInt32(int32(len(b)))
		out.Write(b)
	}
}

func LooseUnmarshalByteArray(in *DataInput) []byte {
	if !in.ReadBool() {
		return nil
	}
	return readByteArray(in)
}

func readByteArray(in *DataInput) []byte {
	n := int(in.ReadInt32())
	if n < 0 {
		in.Fail(common.Protocolf(common.ReasonMalformed, "readByteArray", "negative length %d", n))
		return nil
	}
	if in.Err != nil {
		return nil
	}
	return in.ReadBytes(n)
}

// --------------------------------------------------------------------------
// Cached objects (loose)
// --------------------------------------------------------------------------

// Loose encoding never uses the reference cache; cached fields are written
// like nested ones.

func LooseMarshalCachedObject(f Format, v commands.DataStructure, out *DataOutput) error {
	return f.LooseMarshalNestedObject(v, out)
}

func LooseUnmarshalCachedObject(f Format, in *DataInput) commands.DataStructure {
	return f.LooseUnmarshalNestedObject(in)
}
