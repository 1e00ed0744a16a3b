// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protoreflect

import (
	"fmt"
	"math"
)

// Value is a union where only one Go type may be set at a time.
// The Value is used to represent all possible values a field may take.
// The following shows what Go type is used to represent each proto Kind:
//
//	+------------+-------------------------------------+
//	| Go type    | Protobuf kind                       |
//	+============+=====================================+
//	| bool       | BoolKind                            |
//	| int32      | Int32Kind, Sint32Kind, Sfixed32Kind |
//	|            | EnumKind                            |
//	| int64      | Int64Kind, Sint64Kind, Sfixed64Kind |
//	| uint32     | Uint32Kind, Fixed32Kind             |
//	| uint64     | Uint64Kind, Fixed64Kind             |
//	| float32    | FloatKind                           |
//	| float64    | DoubleKind                          |
//	| string     | StringKind                          |
//	| []byte     | BytesKind                           |
//	+------------+-------------------------------------+
//
// The zero Value is invalid and is returned by getters for fields
// that are not part of the message descriptor.
type Value struct {
	typ valueType
	num uint64
	str string
	bin []byte
}

type valueType uint8

const (
	nilType valueType = iota
	boolType
	int32Type
	int64Type
	uint32Type
	uint64Type
	float32Type
	float64Type
	stringType
	bytesType
)

var valueTypeNames = [...]string{
	nilType:     "<invalid>",
	boolType:    "bool",
	int32Type:   "int32",
	int64Type:   "int64",
	uint32Type:  "uint32",
	uint64Type:  "uint64",
	float32Type: "float32",
	float64Type: "float64",
	stringType:  "string",
	bytesType:   "[]byte",
}

// ValueOf returns a Value initialized with the concrete value stored in v.
// This panics if the type does not match one of the allowed types in the
// Value union.
func ValueOf(v interface{}) Value {
	switch v := v.(type) {
	case nil:
		return Value{}
	case bool:
		return ValueOfBool(v)
	case int32:
		return ValueOfInt32(v)
	case int64:
		return ValueOfInt64(v)
	case uint32:
		return ValueOfUint32(v)
	case uint64:
		return ValueOfUint64(v)
	case float32:
		return ValueOfFloat32(v)
	case float64:
		return ValueOfFloat64(v)
	case string:
		return ValueOfString(v)
	case []byte:
		return ValueOfBytes(v)
	default:
		panic(fmt.Sprintf("invalid type: %T", v))
	}
}

// ValueOfBool returns a new boolean value.
func ValueOfBool(v bool) Value {
	if v {
		return Value{typ: boolType, num: 1}
	}
	return Value{typ: boolType, num: 0}
}

// ValueOfInt32 returns a new int32 value.
func ValueOfInt32(v int32) Value { return Value{typ: int32Type, num: uint64(int64(v))} }

// ValueOfInt64 returns a new int64 value.
func ValueOfInt64(v int64) Value { return Value{typ: int64Type, num: uint64(v)} }

// ValueOfUint32 returns a new uint32 value.
func ValueOfUint32(v uint32) Value { return Value{typ: uint32Type, num: uint64(v)} }

// ValueOfUint64 returns a new uint64 value.
func ValueOfUint64(v uint64) Value { return Value{typ: uint64Type, num: v} }

// ValueOfFloat32 returns a new float32 value.
func ValueOfFloat32(v float32) Value {
	return Value{typ: float32Type, num: uint64(math.Float64bits(float64(v)))}
}

// ValueOfFloat64 returns a new float64 value.
func ValueOfFloat64(v float64) Value {
	return Value{typ: float64Type, num: uint64(math.Float64bits(v))}
}

// ValueOfString returns a new string value.
func ValueOfString(v string) Value { return Value{typ: stringType, str: v} }

// ValueOfBytes returns a new bytes value.
func ValueOfBytes(v []byte) Value { return Value{typ: bytesType, bin: v} }

// IsValid reports whether v is populated with a value.
func (v Value) IsValid() bool {
	return v.typ != nilType
}

// GoType returns the name of the Go type held by v.
func (v Value) GoType() string {
	return valueTypeNames[v.typ]
}

// Interface returns v as an interface{}.
//
// Invariant: v == ValueOf(v).Interface()
func (v Value) Interface() interface{} {
	switch v.typ {
	case nilType:
		return nil
	case boolType:
		return v.Bool()
	case int32Type:
		return int32(v.Int())
	case int64Type:
		return int64(v.Int())
	case uint32Type:
		return uint32(v.Uint())
	case uint64Type:
		return uint64(v.Uint())
	case float32Type:
		return float32(v.Float())
	case float64Type:
		return float64(v.Float())
	case stringType:
		return v.String()
	case bytesType:
		return v.Bytes()
	default:
		panic("invalid type")
	}
}

// Bool returns v as a bool and panics if the type is not a bool.
func (v Value) Bool() bool {
	switch v.typ {
	case boolType:
		return v.num > 0
	default:
		panic("proto: value type mismatch")
	}
}

// Int returns v as a int64 and panics if the type is not a int32 or int64.
func (v Value) Int() int64 {
	switch v.typ {
	case int32Type, int64Type:
		return int64(v.num)
	default:
		panic("proto: value type mismatch")
	}
}

// Uint returns v as a uint64 and panics if the type is not a uint32 or uint64.
func (v Value) Uint() uint64 {
	switch v.typ {
	case uint32Type, uint64Type:
		return uint64(v.num)
	default:
		panic("proto: value type mismatch")
	}
}

// Float returns v as a float64 and panics if the type is not a float32 or float64.
func (v Value) Float() float64 {
	switch v.typ {
	case float32Type, float64Type:
		return math.Float64frombits(uint64(v.num))
	default:
		panic("proto: value type mismatch")
	}
}

// String returns v as a string. Since this method implements fmt.Stringer,
// this returns the formatted string value for any non-string type.
func (v Value) String() string {
	switch v.typ {
	case stringType:
		return v.str
	default:
		return fmt.Sprint(v.Interface())
	}
}

// Bytes returns v as a []byte and panics if the type is not a []byte.
func (v Value) Bytes() []byte {
	switch v.typ {
	case bytesType:
		return v.bin
	default:
		panic("proto: value type mismatch")
	}
}

// Equal reports whether v and w hold the same Go type and value.
// Floating-point values are compared by their bit patterns,
// so a NaN equals an identical NaN.
func (v Value) Equal(w Value) bool {
	if v.typ != w.typ {
		return false
	}
	switch v.typ {
	case stringType:
		return v.str == w.str
	case bytesType:
		return string(v.bin) == string(w.bin)
	default:
		return v.num == w.num
	}
}

// goTypes maps each kind to the Go type used to hold its values.
var goTypes = map[Kind]valueType{
	BoolKind:     boolType,
	EnumKind:     int32Type,
	Int32Kind:    int32Type,
	Sint32Kind:   int32Type,
	Sfixed32Kind: int32Type,
	Int64Kind:    int64Type,
	Sint64Kind:   int64Type,
	Sfixed64Kind: int64Type,
	Uint32Kind:   uint32Type,
	Fixed32Kind:  uint32Type,
	Uint64Kind:   uint64Type,
	Fixed64Kind:  uint64Type,
	FloatKind:    float32Type,
	DoubleKind:   float64Type,
	StringKind:   stringType,
	BytesKind:    bytesType,
}

// GoType returns the name of the Go type that holds values of kind k.
func (k Kind) GoType() string {
	return valueTypeNames[goTypes[k]]
}

// Accepts reports whether v holds the Go type used for kind k.
func (k Kind) Accepts(v Value) bool {
	t, ok := goTypes[k]
	return ok && v.typ == t
}

// Zero returns the zero value of kind k, which is the default of a field
// that declares no explicit default.
func (k Kind) Zero() Value {
	switch goTypes[k] {
	case boolType:
		return ValueOfBool(false)
	case int32Type:
		return ValueOfInt32(0)
	case int64Type:
		return ValueOfInt64(0)
	case uint32Type:
		return ValueOfUint32(0)
	case uint64Type:
		return ValueOfUint64(0)
	case float32Type:
		return ValueOfFloat32(0)
	case float64Type:
		return ValueOfFloat64(0)
	case stringType:
		return ValueOfString("")
	case bytesType:
		return ValueOfBytes(nil)
	default:
		return Value{}
	}
}
