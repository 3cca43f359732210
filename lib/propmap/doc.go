// Package propmap implements the property-name compression tables of the
// fieldstate protocol. Property names are often long and repeated once per
// serialized instance; instead of transmitting name bytes, both peers derive
// the same table from the shared type schema and exchange a two-byte key:
// the name's first letter and its index within the lexicographically sorted
// group of schema names sharing that letter.
//
// The package focuses on:
//   - Deterministic table construction: byte-wise lexicographic sorting so
//     every peer sharing a schema and protocol version assigns identical
//     (letter, index) pairs, across builds and process restarts
//   - A process-wide, type-keyed cache so the enumeration and sort happen
//     once per type for the process lifetime
//   - Hard validation at build time: a schema whose names exceed 255 per
//     first letter, or contain a non-ASCII leading byte, is a design error
//     surfaced immediately, not a transient condition
//
// Thread Safety:
//
//	Tables are immutable after construction. The cache is a concurrent map;
//	concurrent first-time builds of the same table are benign since every
//	build is deterministic and only one result is published.
package propmap
