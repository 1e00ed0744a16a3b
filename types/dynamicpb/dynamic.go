// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dynamicpb creates protocol buffer messages using runtime type information.
package dynamicpb

import (
	"go.uber.org/atomic"

	"github.com/pbwire/pbwire/encoding/prototext"
	"github.com/pbwire/pbwire/internal/errors"
	"github.com/pbwire/pbwire/internal/set"
	"github.com/pbwire/pbwire/proto"
	pref "github.com/pbwire/pbwire/reflect/protoreflect"
)

// A Message is a dynamically constructed protocol buffer message.
//
// Message implements the protoreflect.Message interface, and may be used
// with all standard proto package functions such as Marshal, Unmarshal,
// and so forth.
//
// Each field has one value slot and one presence bit, both indexed by the
// field's position in the descriptor. A field whose presence bit is clear
// reads as the descriptor default.
//
// Operations which modify a Message are not safe for concurrent use.
// Concurrent readers, including proto.Marshal and proto.Size, are safe
// while no writer exists.
type Message struct {
	desc    pref.MessageDescriptor
	values  []pref.Value
	present set.Bits
	unknown pref.RawFields

	// size is the cached encoded size, or -1 if invalid.
	size atomic.Int64
}

// New creates a new message with the provided descriptor.
func New(desc pref.MessageDescriptor) *Message {
	n := desc.Fields().Len()
	m := &Message{
		desc:    desc,
		values:  make([]pref.Value, n),
		present: set.NewBits(n),
	}
	m.size.Store(-1)
	return m
}

// String returns a string representation of a message.
func (m *Message) String() string {
	return prototext.Format(m)
}

// Descriptor returns the message descriptor.
func (m *Message) Descriptor() pref.MessageDescriptor {
	return m.desc
}

// New returns a newly allocated empty message with the same descriptor.
// See protoreflect.Message for details.
func (m *Message) New() pref.Message {
	return New(m.desc)
}

// Range visits every populated field in declaration order.
// See protoreflect.Message for details.
func (m *Message) Range(f func(pref.FieldDescriptor, pref.Value) bool) {
	fds := m.desc.Fields()
	for i := range m.values {
		if !m.present.Has(i) {
			continue
		}
		if !f(fds.Get(i), m.values[i]) {
			return
		}
	}
}

// Has reports whether a field is populated.
// See protoreflect.Message for details.
func (m *Message) Has(num pref.FieldNumber) bool {
	fd := m.desc.Fields().ByNumber(num)
	return fd != nil && m.present.Has(fd.Index())
}

// ClearField clears a field.
// See protoreflect.Message for details.
func (m *Message) ClearField(num pref.FieldNumber) {
	fd := m.desc.Fields().ByNumber(num)
	if fd == nil {
		return
	}
	m.present.Clear(fd.Index())
	m.values[fd.Index()] = pref.Value{}
	m.invalidate()
}

// Get returns the value of a field.
// See protoreflect.Message for details.
func (m *Message) Get(num pref.FieldNumber) pref.Value {
	fd := m.desc.Fields().ByNumber(num)
	switch {
	case fd == nil:
		return pref.Value{}
	case m.present.Has(fd.Index()):
		return m.values[fd.Index()]
	case fd.Kind() == pref.BytesKind && fd.HasDefault():
		return pref.ValueOfBytes(append([]byte(nil), fd.Default().Bytes()...))
	default:
		return fd.Default()
	}
}

// Set stores a value in a field.
// See protoreflect.Message for details.
func (m *Message) Set(num pref.FieldNumber, v pref.Value) error {
	fd := m.desc.Fields().ByNumber(num)
	if fd == nil {
		return errors.Wrap(errors.TypeMismatch, "%v: no field numbered %d", m.desc.FullName(), num)
	}
	if !fd.Kind().Accepts(v) {
		return errors.Wrap(errors.TypeMismatch, "%v: assigning %v to %v field", fd.FullName(), v.GoType(), fd.Kind())
	}
	m.values[fd.Index()] = v
	m.present.Set(fd.Index())
	m.invalidate()
	return nil
}

// GetUnknown returns the raw unknown fields.
// See protoreflect.Message for details.
func (m *Message) GetUnknown() pref.RawFields {
	return m.unknown
}

// SetUnknown sets the raw unknown fields.
// See protoreflect.Message for details.
func (m *Message) SetUnknown(r pref.RawFields) {
	m.unknown = r
	m.invalidate()
}

// Clear returns the message to its just-constructed state,
// discarding unknown fields.
func (m *Message) Clear() {
	for i := range m.values {
		m.values[i] = pref.Value{}
	}
	m.present.Reset()
	m.unknown = nil
	m.invalidate()
}

// IsInitialized reports whether every required field is populated.
func (m *Message) IsInitialized() bool {
	req := m.desc.RequiredNumbers()
	for i := 0; i < req.Len(); i++ {
		if !m.Has(req.Get(i)) {
			return false
		}
	}
	return true
}

// MissingFields returns the names of unpopulated required fields
// in declaration order.
func (m *Message) MissingFields() []pref.Name {
	var names []pref.Name
	fds := m.desc.Fields()
	for i := 0; i < fds.Len(); i++ {
		if fd := fds.Get(i); fd.Cardinality() == pref.Required && !m.present.Has(i) {
			names = append(names, fd.Name())
		}
	}
	return names
}

// ByteSize returns the encoded size of the message.
// It is served from the cache when the message was not modified since
// the size was last computed.
func (m *Message) ByteSize() int {
	return proto.Size(m)
}

// Swap exchanges the entire state of m and other, including the cached size.
// Both messages must have the same descriptor.
func (m *Message) Swap(other *Message) error {
	if m == other {
		return nil
	}
	if m.desc != other.desc {
		return errors.Wrap(errors.TypeMismatch, "cannot swap %v with %v", m.desc.FullName(), other.desc.FullName())
	}
	m.values, other.values = other.values, m.values
	m.present, other.present = other.present, m.present
	m.unknown, other.unknown = other.unknown, m.unknown
	m.size.Store(other.size.Swap(m.size.Load()))
	return nil
}

// CachedSize implements protoiface.SizeCacher.
func (m *Message) CachedSize() (int, bool) {
	n := m.size.Load()
	return int(n), n >= 0
}

// SetCachedSize implements protoiface.SizeCacher.
func (m *Message) SetCachedSize(n int) {
	m.size.Store(int64(n))
}

func (m *Message) invalidate() {
	m.size.Store(-1)
}
