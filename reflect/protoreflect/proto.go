// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protoreflect provides interfaces to dynamically manipulate messages.
//
// The defined interfaces can be categorized as either a type descriptor
// or a value interface.
//
// # Type Descriptors
//
// The type descriptors (MessageDescriptor and FieldDescriptor) are immutable
// objects that represent the layout of a message: an ordered list of fields,
// each with a number, a name, a kind and a cardinality.
// They are safe for concurrent use once constructed.
//
// # Value Interfaces
//
// The value is a reflective interface (Message) for a message instance.
// The Message interface provides the ability to manipulate the fields of a
// message using getters and setters keyed by field number.
package protoreflect

import (
	"regexp"
	"strings"

	"github.com/pbwire/pbwire/internal/encoding/wire"
	"github.com/pbwire/pbwire/internal/pragma"
)

type doNotImplement pragma.DoNotImplement

// Cardinality determines whether a field is optional or required.
type Cardinality cardinality

type cardinality int8 // keep exact type opaque as the int type may change

// Constants as defined by the google.protobuf.Cardinality enumeration.
const (
	Optional Cardinality = 1 // appears zero or one times
	Required Cardinality = 2 // appears exactly one time
)

// IsValid reports whether the cardinality is valid.
func (c Cardinality) IsValid() bool {
	switch c {
	case Optional, Required:
		return true
	default:
		return false
	}
}
func (c Cardinality) String() string {
	switch c {
	case Optional:
		return "optional"
	case Required:
		return "required"
	default:
		return "<unknown>"
	}
}

// Kind indicates the basic proto kind of a field.
type Kind kind

type kind int8 // keep exact type opaque as the int type may change

// Constants as defined by the google.protobuf.Field.Kind enumeration.
const (
	BoolKind     Kind = 8
	EnumKind     Kind = 14
	Int32Kind    Kind = 5
	Sint32Kind   Kind = 17
	Uint32Kind   Kind = 13
	Int64Kind    Kind = 3
	Sint64Kind   Kind = 18
	Uint64Kind   Kind = 4
	Sfixed32Kind Kind = 15
	Fixed32Kind  Kind = 7
	FloatKind    Kind = 2
	Sfixed64Kind Kind = 16
	Fixed64Kind  Kind = 6
	DoubleKind   Kind = 1
	StringKind   Kind = 9
	BytesKind    Kind = 12
)

var kindNames = map[Kind]string{
	BoolKind:     "bool",
	EnumKind:     "enum",
	Int32Kind:    "int32",
	Sint32Kind:   "sint32",
	Uint32Kind:   "uint32",
	Int64Kind:    "int64",
	Sint64Kind:   "sint64",
	Uint64Kind:   "uint64",
	Sfixed32Kind: "sfixed32",
	Fixed32Kind:  "fixed32",
	FloatKind:    "float",
	Sfixed64Kind: "sfixed64",
	Fixed64Kind:  "fixed64",
	DoubleKind:   "double",
	StringKind:   "string",
	BytesKind:    "bytes",
}

// IsValid reports whether the kind is valid.
func (k Kind) IsValid() bool {
	_, ok := kindNames[k]
	return ok
}
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "<unknown>"
}

// KindByName returns the kind with the given name (e.g., "sfixed32").
func KindByName(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// WireType reports the wire type used to encode a field of kind k.
func (k Kind) WireType() wire.Type {
	switch k {
	case BoolKind, EnumKind,
		Int32Kind, Sint32Kind, Uint32Kind,
		Int64Kind, Sint64Kind, Uint64Kind:
		return wire.VarintType
	case Sfixed32Kind, Fixed32Kind, FloatKind:
		return wire.Fixed32Type
	case Sfixed64Kind, Fixed64Kind, DoubleKind:
		return wire.Fixed64Type
	case StringKind, BytesKind:
		return wire.BytesType
	default:
		return -1
	}
}

// FieldNumber is the field number in a message.
type FieldNumber = wire.Number

// FieldNumbers represent a list of field numbers.
type FieldNumbers interface {
	// Len reports the number of fields in the list.
	Len() int
	// Get returns the ith field number. It panics if out of bounds.
	Get(i int) FieldNumber
	// Has reports whether n is within the list of fields.
	Has(n FieldNumber) bool

	doNotImplement
}

var (
	regexName     = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)
	regexFullName = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*(\.[_a-zA-Z][_a-zA-Z0-9]*)*$`)
)

// Name is the short name for a proto declaration. This is not the name
// as used in Go source code, which might not be identical to the proto name.
type Name string // e.g., "Kind"

// IsValid reports whether n is a syntactically valid name.
// An empty name is invalid.
func (n Name) IsValid() bool {
	return regexName.MatchString(string(n))
}

// FullName is a qualified name that uniquely identifies a proto declaration.
// A qualified name is the concatenation of the proto package along with the
// fully-declared name (i.e., name of parent preceding the name of the child),
// with a '.' delimiter placed between each Name.
//
// This should not have any leading or trailing dots.
type FullName string // e.g., "google.protobuf.Field.Kind"

// IsValid reports whether n is a syntactically valid full name.
// An empty full name is invalid.
func (n FullName) IsValid() bool {
	return regexFullName.MatchString(string(n))
}

// Name returns the short name, which is the last identifier segment.
// A single segment FullName is the Name itself.
func (n FullName) Name() Name {
	if i := strings.LastIndexByte(string(n), '.'); i >= 0 {
		return Name(n[i+1:])
	}
	return Name(n)
}

// Parent returns the full name with the trailing identifier removed.
// A single segment FullName has no parent.
func (n FullName) Parent() FullName {
	if i := strings.LastIndexByte(string(n), '.'); i >= 0 {
		return n[:i]
	}
	return ""
}

// Append returns the qualified name appended with the provided short name.
//
// Invariant: n == n.Parent().Append(n.Name()) // assuming n is valid
func (n FullName) Append(s Name) FullName {
	if n == "" {
		return FullName(s)
	}
	return n + "." + FullName(s)
}
