// Package codec implements the binary wire format of the fieldstate
// protocol: the value codec that maps every supported value kind to its
// exact byte encoding, and the serializer/deserializer engine that walks a
// state-object tree, compresses property names through the propmap tables,
// and frames the result with the protocol header.
//
// Wire format:
//
//	Header:  byte 'F', byte 'S', byte majorVersion, byte minorVersion
//	Body:    repeated { key: (byte firstChar, byte index), value: <encoded> }
//	         terminated by a single zero key byte
//
// Nested state objects recurse into the body grammar (no inner header) in
// place of a value. All multi-byte numeric fields are big-endian. A full
// serialization emits every schema property; an incremental one emits only
// the properties currently marked dirty, or a bare terminator when nothing
// changed.
//
// Both directions are symmetric kind-by-kind: the encode and decode
// switches are exhaustive over the closed state.Kind set, so a kind added
// to one side is a compile-time-visible change on the other. There is no
// self-describing framing beyond the table; a version mismatch is a hard
// failure, never negotiated.
//
// Thread Safety:
//
//	Serialize and Deserialize run to completion on the calling goroutine
//	against one in-memory buffer. The engine keeps no state between calls
//	and retains no references into the object tree.
package codec
