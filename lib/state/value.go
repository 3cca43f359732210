package state

import (
	"math"
)

// --------------------------------------------------------------------------
// Value Kinds
// --------------------------------------------------------------------------

// Kind identifies one of the serializable value kinds. The set is closed:
// both the encoder and the decoder switch exhaustively over it, so adding a
// kind is a deliberate two-sided change.
type Kind uint8

const (
	KindInvalid Kind = iota // zero value, never serializable
	KindState               // nested state object
	KindString              // length-prefixed UTF-8 text
	KindChar                // single byte character
	KindInt32
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindArray // dirty array container
	KindMap   // dirty map container
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindState:
		return "state"
	case KindString:
		return "string"
	case KindChar:
		return "char"
	case KindInt32:
		return "int32"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Scalar reports whether the kind is a plain scalar (numeric, char or
// string). Only scalar kinds may appear as container elements and map keys.
func (k Kind) Scalar() bool {
	switch k {
	case KindString, KindChar, KindInt32, KindUint8, KindUint16,
		KindUint32, KindUint64, KindFloat32, KindFloat64:
		return true
	default:
		return false
	}
}

// Container reports whether the kind is a dirty container.
func (k Kind) Container() bool {
	return k == KindArray || k == KindMap
}

// --------------------------------------------------------------------------
// Value Sum Type
// --------------------------------------------------------------------------

// Value is a tagged variant holding exactly one payload of the supported
// kinds. The numeric kinds share a single raw-bits field; the tag decides
// how the bits are interpreted. The zero Value has KindInvalid.
type Value struct {
	kind  Kind
	bits  uint64 // raw bits for all numeric kinds and char
	str   string
	state IStateObject
	arr   *Array
	m     *Map
}

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

// String wraps a text value.
func String(v string) Value { return Value{kind: KindString, str: v} }

// Char wraps a single byte character.
func Char(v byte) Value { return Value{kind: KindChar, bits: uint64(v)} }

// Int32 wraps a signed 32-bit integer.
func Int32(v int32) Value { return Value{kind: KindInt32, bits: uint64(uint32(v))} }

// Uint8 wraps an unsigned 8-bit integer.
func Uint8(v uint8) Value { return Value{kind: KindUint8, bits: uint64(v)} }

// Uint16 wraps an unsigned 16-bit integer.
func Uint16(v uint16) Value { return Value{kind: KindUint16, bits: uint64(v)} }

// Uint32 wraps an unsigned 32-bit integer.
func Uint32(v uint32) Value { return Value{kind: KindUint32, bits: uint64(v)} }

// Uint64 wraps an unsigned 64-bit integer.
func Uint64(v uint64) Value { return Value{kind: KindUint64, bits: v} }

// Float32 wraps a 32-bit IEEE-754 float.
func Float32(v float32) Value { return Value{kind: KindFloat32, bits: uint64(math.Float32bits(v))} }

// Float64 wraps a 64-bit IEEE-754 float.
func Float64(v float64) Value { return Value{kind: KindFloat64, bits: math.Float64bits(v)} }

// Nested wraps a nested state object.
func Nested(v IStateObject) Value { return Value{kind: KindState, state: v} }

// ArrayValue wraps a dirty array container.
func ArrayValue(v *Array) Value { return Value{kind: KindArray, arr: v} }

// MapValue wraps a dirty map container.
func MapValue(v *Map) Value { return Value{kind: KindMap, m: v} }

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// Kind returns the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// Str returns the text payload. Valid only for KindString.
func (v Value) Str() string { return v.str }

// CharV returns the character payload. Valid only for KindChar.
func (v Value) CharV() byte { return byte(v.bits) }

// Int32V returns the signed 32-bit payload. Valid only for KindInt32.
func (v Value) Int32V() int32 { return int32(uint32(v.bits)) }

// Uint8V returns the unsigned 8-bit payload. Valid only for KindUint8.
func (v Value) Uint8V() uint8 { return uint8(v.bits) }

// Uint16V returns the unsigned 16-bit payload. Valid only for KindUint16.
func (v Value) Uint16V() uint16 { return uint16(v.bits) }

// Uint32V returns the unsigned 32-bit payload. Valid only for KindUint32.
func (v Value) Uint32V() uint32 { return uint32(v.bits) }

// Uint64V returns the unsigned 64-bit payload. Valid only for KindUint64.
func (v Value) Uint64V() uint64 { return v.bits }

// Float32V returns the 32-bit float payload. Valid only for KindFloat32.
func (v Value) Float32V() float32 { return math.Float32frombits(uint32(v.bits)) }

// Float64V returns the 64-bit float payload. Valid only for KindFloat64.
func (v Value) Float64V() float64 { return math.Float64frombits(v.bits) }

// StateV returns the nested state object. Valid only for KindState.
func (v Value) StateV() IStateObject { return v.state }

// ArrayV returns the dirty array container. Valid only for KindArray.
func (v Value) ArrayV() *Array { return v.arr }

// MapV returns the dirty map container. Valid only for KindMap.
func (v Value) MapV() *Map { return v.m }

// Bits returns the raw numeric bits of the value. Used by the codec so the
// byte encoding does not have to branch per numeric width twice.
func (v Value) Bits() uint64 { return v.bits }

// --------------------------------------------------------------------------
// Equality
// --------------------------------------------------------------------------

// Equal implements the value-equality rule used by the dirty containers: two
// values are equal if their kinds match and their payloads compare equal by
// value. Container and nested-state payloads compare by identity, since they
// are never legal container elements and a reassignment of the same instance
// is not a mutation.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindChar, KindInt32, KindUint8, KindUint16, KindUint32,
		KindUint64, KindFloat32, KindFloat64:
		return v.bits == o.bits
	case KindState:
		return v.state == o.state
	case KindArray:
		return v.arr == o.arr
	case KindMap:
		return v.m == o.m
	default:
		return true
	}
}
