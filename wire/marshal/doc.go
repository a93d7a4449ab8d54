// Package marshal implements the per-type OpenWire marshallers and the
// primitives they are built from.
//
// Key Components:
//
//   - BooleanStream: Bit-packed flags written in front of a tightly encoded
//     body. Presence of optional fields, the width of longs and the cache
//     state of referenced objects are all recorded here instead of the body.
//
//   - DataOutput / DataInput: Big endian buffers. DataInput keeps the first
//     decoding error so nested marshallers can read on without checks.
//
//   - Marshaller: One stateless value per data structure type. Marshallers
//     of derived types embed the marshaller of their base type and call it
//     before handling their own fields.
//
//   - Table: The marshallers of one protocol version indexed by type id.
//     Versions 1 and 2 are supported; version 1 lacks ConsumerControl and
//     ProducerAck.
//
//   - Format: What a wire format offers to marshallers, namely encoding of
//     nested objects and the reference cache. The implementation lives in
//     package format.
//
// Tight encoding runs twice over every object. The first pass records flags
// and computes the body size, the second pass reads the flags back in the
// same order and writes the body. Both passes must visit the fields in the
// same order, otherwise the frame is rejected.
//
// Thread Safety:
//
//	Marshallers and tables are read only and safe for concurrent use.
//	BooleanStream, DataOutput and DataInput are per message and not.
package marshal
