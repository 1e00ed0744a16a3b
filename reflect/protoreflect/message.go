// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protoreflect

import "github.com/pbwire/pbwire/internal/encoding/wire"

// Message is a reflective interface for a concrete message value,
// which provides type information and getters/setters for individual fields.
//
// Concrete types may implement interfaces defined in runtime/protoiface,
// which provide specialized implementations of operations such as Size.
//
// Mutating operations are not safe for concurrent use.
// Read-only operations are safe for concurrent use as long as
// no goroutine mutates the message.
type Message interface {
	// Descriptor returns the message descriptor.
	Descriptor() MessageDescriptor

	// New returns a newly allocated empty message with the same descriptor.
	New() Message

	// Has reports whether a field is populated.
	// A field is populated only if it was explicitly set.
	Has(FieldNumber) bool

	// Get retrieves the value for a field with the given field number.
	// If the field is unpopulated, it returns the default value.
	// If the field is not part of the descriptor, it returns an invalid value.
	Get(FieldNumber) Value

	// Set stores the value for a field with the given field number and
	// marks it as populated.
	// It reports an error if the field number is not in the descriptor or
	// the value does not hold the Go type of the field's kind, in which
	// case the message is unchanged.
	//
	// When setting a bytes value, it is unspecified whether the stored
	// value aliases the source's memory.
	Set(FieldNumber, Value) error

	// ClearField clears the field such that a subsequent call to Has
	// reports false. The operation does nothing if the field number does
	// not correspond with a known field.
	ClearField(FieldNumber)

	// Range iterates over every populated field in declaration order,
	// calling f for each field descriptor and value encountered.
	// Range stops iteration if f returns false.
	Range(f func(FieldDescriptor, Value) bool)

	// GetUnknown retrieves the raw bytes of all unknown fields,
	// in the order they were encountered.
	// The caller must not mutate the content of the retrieved RawFields.
	GetUnknown() RawFields

	// SetUnknown stores the raw bytes of unknown fields.
	// An empty RawFields may be passed to clear the fields.
	// The caller must not mutate the content of the RawFields being stored.
	SetUnknown(RawFields)
}

// RawFields is the raw bytes for an ordered sequence of fields.
// Each field contains both the tag (representing field number and wire type),
// and also the wire data itself.
//
// Once stored, the content of a RawFields must be treated as immutable.
// The capacity of RawFields may be treated as mutable only for the use-case of
// appending additional data to store back into the message.
type RawFields []byte

// IsValid reports whether RawFields is syntactically correct wire format.
func (b RawFields) IsValid() bool {
	for len(b) > 0 {
		num, typ, n := wire.ConsumeTag(b)
		if n < 0 {
			return false
		}
		b = b[n:]
		if typ == wire.EndGroupType {
			return false
		}
		n = wire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return false
		}
		b = b[n:]
	}
	return true
}
