package marshal

import (
	"reflect"

	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/common"
)

// --------------------------------------------------------------------------
// Interfaces
// --------------------------------------------------------------------------

// Marshaller describes how one data structure type is written to and read
// from the wire. Implementations are stateless values and safe for
// concurrent use; all per-message state lives in the Format, the
// BooleanStream and the DataInput/DataOutput passed in.
//
// Tight encoding runs in two passes. TightMarshal1 records the flags in bs
// and returns the number of body bytes pass two will write. TightMarshal2
// reads the flags back in the same order and writes the body. Loose encoding
// writes every field in full and uses no boolean stream.
type Marshaller interface {
	// DataStructureType returns the type id this marshaller is registered under
	DataStructureType() byte
	// CreateObject returns a new zero value of the described type
	CreateObject() commands.DataStructure

	TightMarshal1(f Format, ds commands.DataStructure, bs *BooleanStream) (int, error)
	TightMarshal2(f Format, ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error
	TightUnmarshal(f Format, ds commands.DataStructure, in *DataInput, bs *BooleanStream) error

	LooseMarshal(f Format, ds commands.DataStructure, out *DataOutput) error
	LooseUnmarshal(f Format, ds commands.DataStructure, in *DataInput) error
}

// Format is what a wire format offers to marshallers: encoding of embedded
// objects (which need the registry) and the reference cache.
type Format interface {
	// CacheEnabled reports whether cached fields use the reference cache
	CacheEnabled() bool

	TightMarshalNestedObject1(ds commands.DataStructure, bs *BooleanStream) (int, error)
	TightMarshalNestedObject2(ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error
	TightUnmarshalNestedObject(in *DataInput, bs *BooleanStream) commands.DataStructure

	LooseMarshalNestedObject(ds commands.DataStructure, out *DataOutput) error
	LooseUnmarshalNestedObject(in *DataInput) commands.DataStructure

	TightMarshalCachedObject1(ds commands.DataStructure, bs *BooleanStream) (int, error)
	TightMarshalCachedObject2(ds commands.DataStructure, out *DataOutput, bs *BooleanStream) error
	TightUnmarshalCachedObject(in *DataInput, bs *BooleanStream) commands.DataStructure
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// IsNil reports whether ds is nil, including typed nil pointers stored in
// the interface (a nil *ConsumerID field passed as a DataStructure).
func IsNil(ds commands.DataStructure) bool {
	if ds == nil {
		return true
	}
	v := reflect.ValueOf(ds)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// cast asserts the object handed to a marshaller is of the described type
func cast[T commands.DataStructure](op string, ds commands.DataStructure) (T, error) {
	v, ok := ds.(T)
	if !ok {
		var zero T
		return zero, common.Argumentf(common.ReasonInvalidValue, op, ds,
			"unexpected data structure %s", commands.Describe(ds))
	}
	return v, nil
}

// field converts a decoded embedded object to the static type of the field
// it is assigned to. A type that does not fit is recorded on in.
func field[T commands.DataStructure](in *DataInput, name string, ds commands.DataStructure) T {
	var zero T
	if ds == nil {
		return zero
	}
	v, ok := ds.(T)
	if !ok {
		in.Fail(common.Protocolf(common.ReasonMalformed, "unmarshal",
			"field %s cannot hold type %d", name, ds.DataStructureType()))
		return zero
	}
	return v
}

// asDS converts a possibly nil typed pointer to a DataStructure, mapping
// typed nil pointers to a nil interface.
func asDS[T commands.DataStructure](v T) commands.DataStructure {
	if IsNil(v) {
		return nil
	}
	return v
}
