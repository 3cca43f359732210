// Package state defines the state-object contract of the fieldstate
// serialization protocol: schema-described objects with per-property dirty
// tracking, the closed set of serializable value kinds, and the dirty
// container types used for element-level change detection.
//
// The package focuses on:
//   - A unified interface (IStateObject) that the serialization engine uses
//     to walk any state type generically, without reflection
//   - A closed value sum type (Value/Kind) so that encode and decode dispatch
//     is exhaustive and a new kind is a compile-time-visible two-sided change
//   - Dirty bookkeeping (Tracker, Array, Map) that detects element-level
//     mutation by value comparison instead of full-object diffing
//
// Key Components:
//
//   - IStateObject Interface: The core abstraction exposed by every
//     serializable state type. It yields the type's ordered schema, the
//     per-instance dirty flag and ordered dirty-property list, and generic
//     get/set accessors by property name. Concrete state types embed a
//     Tracker and call MarkDirty from their setters.
//
//   - Schema / PropertySpec: The compile-time-declared replacement for
//     runtime reflection. Each state type owns exactly one Schema listing
//     its serializable properties in a fixed order with their declared
//     kinds. The schema is the basis of the property-name compression
//     tables, so it must be identical on every peer sharing a protocol
//     version.
//
//   - Value / Kind: A tagged variant over the supported value kinds
//     (nested state, string, char, the numeric scalars, dirty array, dirty
//     map). Constructors (Int32, Uint64, ...) and typed accessors keep the
//     payload and tag consistent.
//
//   - Array / Map: Dirty containers. A write compares the old and new
//     element values and raises a one-shot "became dirty" notification on
//     the first change; later changes do not re-fire until the flag is
//     cleared by the owner. Decoding reconstructs containers through a
//     restore path that bypasses the comparison.
//
//   - Error System: Typed protocol error codes (version mismatch, schema
//     overflow, unknown property key, ...) shared by the propmap and codec
//     layers, so callers can decide between dropping a connection,
//     discarding a save file, or resyncing with a full snapshot.
//
// Thread Safety:
//
//	State objects and containers are owned by the simulation that mutates
//	them; they are not synchronized internally. Dirty notifications are
//	delivered synchronously on the mutating goroutine.
package state
