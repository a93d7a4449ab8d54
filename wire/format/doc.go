// Package format implements the OpenWire wire format: the dispatcher that
// frames data structures and drives the per-type marshallers of package
// marshal.
//
// Every frame is an int32 length followed by a type byte and the encoded
// object:
//
//	[int32 size][type][boolean stream][body]   tight encoding
//	[int32 size][type][body]                   loose encoding
//
// Tight encoding walks the object twice. Pass one collects the flags and the
// body size, pass two writes the body. The frame is only handed out if the
// predicted and the written size agree and both passes consumed the same
// flags.
//
// Reference cache:
//
//	With tight encoding and the cache enabled, fields holding ids and
//	destinations are sent once in full together with a slot number and
//	afterwards as the slot number only. Sender and receiver keep separate
//	caches per direction. Slots are reused round robin, so a long lived
//	connection never needs more than CacheSize entries. Objects handed out
//	by the decoder for cached fields are shared between frames and must not
//	be modified.
//
// A WireFormat belongs to exactly one connection. Reset must be called when
// the connection is replaced.
package format
