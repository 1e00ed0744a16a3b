// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protoreflect

// TODO: For all ByX methods (e.g., ByName, ByNumber), should they use
// a (v, ok) signature for the return value?

// Descriptor provides a set of accessors that are common to every descriptor.
//
// Each descriptor is comparable. Equality implies that the two types are
// exactly identical. However, it is possible for the same semantically
// identical message to be represented by multiple descriptors,
// for example when two registries each load the same schema file.
type Descriptor interface {
	// Index returns the the index of this descriptor within its parent.
	// It returns 0 if the descriptor does not have a parent.
	Index() int

	// Name is the short name of the declaration (i.e., FullName.Name).
	Name() Name // e.g., "Login"

	// FullName is the fully-qualified name of the declaration.
	//
	// For example, field "device_id" in message "game.Login" is
	// uniquely identified as "game.Login.device_id".
	FullName() FullName // e.g., "game.Login"

	doNotImplement
}

// MessageDescriptor describes a message and
// corresponds with the google.protobuf.DescriptorProto message.
//
// Fields are listed in declaration order, which is also the order in which
// they are written to the wire.
type MessageDescriptor interface {
	Descriptor

	// Fields is a list of nested field declarations.
	Fields() FieldDescriptors

	// RequiredNumbers is a list of required field numbers,
	// in declaration order.
	RequiredNumbers() FieldNumbers

	isMessageDescriptor
}
type isMessageDescriptor interface{ ProtoType(MessageDescriptor) }

// FieldDescriptor describes a field within a message and
// corresponds with the google.protobuf.FieldDescriptorProto message.
type FieldDescriptor interface {
	Descriptor

	// Number reports the unique number for this field.
	Number() FieldNumber

	// Cardinality reports the cardinality for this field.
	Cardinality() Cardinality

	// Kind reports the basic kind for this field.
	Kind() Kind

	// HasDefault reports whether this field has an explicit default value.
	HasDefault() bool

	// Default returns the default value for this field,
	// which is the kind's zero value unless HasDefault reports true.
	//
	// The caller must not mutate the content of a bytes default.
	Default() Value

	// ContainingMessage is the message that declares this field.
	ContainingMessage() MessageDescriptor

	isFieldDescriptor
}
type isFieldDescriptor interface{ ProtoType(FieldDescriptor) }

// FieldDescriptors is a list of field declarations.
type FieldDescriptors interface {
	// Len reports the number of fields.
	Len() int
	// Get returns the ith FieldDescriptor. It panics if out of bounds.
	Get(i int) FieldDescriptor
	// ByName returns the FieldDescriptor for a field named s.
	// It returns nil if not found.
	ByName(s Name) FieldDescriptor
	// ByNumber returns the FieldDescriptor for a field numbered n.
	// It returns nil if not found.
	ByNumber(n FieldNumber) FieldDescriptor

	doNotImplement
}
