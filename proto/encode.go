// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"unicode/utf8"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/pbwire/pbwire/internal/encoding/wire"
	"github.com/pbwire/pbwire/internal/errors"
	"github.com/pbwire/pbwire/internal/pragma"
	"github.com/pbwire/pbwire/reflect/protoreflect"
)

// MarshalOptions configures the marshaler.
//
// Example usage:
//
//	b, err := MarshalOptions{AllowPartial: true}.Marshal(m)
type MarshalOptions struct {
	// AllowPartial allows messages that have missing required fields to marshal
	// without returning an error. If AllowPartial is false (the default),
	// Marshal will return an error if there are any missing required fields.
	AllowPartial bool

	// RejectInvalidUTF8 makes a string field holding invalid UTF-8 a fatal
	// error. Otherwise the field is encoded as is and a warning is logged.
	RejectInvalidUTF8 bool

	// Logger receives advisory diagnostics. If nil, they are discarded.
	Logger log.Logger

	pragma.NoUnkeyedLiterals
}

// Marshal returns the wire-format encoding of m.
func Marshal(m Message) ([]byte, error) {
	return MarshalOptions{}.MarshalAppend(nil, m)
}

// Marshal returns the wire-format encoding of m.
func (o MarshalOptions) Marshal(m Message) ([]byte, error) {
	return o.MarshalAppend(nil, m)
}

// MarshalAppend appends the wire-format encoding of m to b,
// returning the result. On error, b is returned unchanged.
//
// Fields are written in declaration order, followed by the unknown fields
// exactly as they were stored.
func (o MarshalOptions) MarshalAppend(b []byte, m Message) ([]byte, error) {
	if !o.AllowPartial {
		if err := IsInitialized(m); err != nil {
			return b, err
		}
	}
	if b == nil {
		b = make([]byte, 0, o.Size(m))
	}
	out, err := o.marshalMessage(b, m)
	if err != nil {
		return b, err
	}
	return out, nil
}

func (o MarshalOptions) marshalMessage(b []byte, m Message) ([]byte, error) {
	var err error
	m.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		b, err = o.marshalField(b, fd, v)
		return err == nil
	})
	if err != nil {
		return b, err
	}
	b = append(b, m.GetUnknown()...)
	return b, nil
}

func (o MarshalOptions) marshalField(b []byte, fd protoreflect.FieldDescriptor, v protoreflect.Value) ([]byte, error) {
	if fd.Kind() == protoreflect.StringKind && !utf8.ValidString(v.String()) {
		if o.RejectInvalidUTF8 {
			return b, errors.InvalidUTF8(string(fd.FullName()))
		}
		level.Warn(logger(o.Logger)).Log("msg", "marshaling string field with invalid UTF-8", "field", fd.FullName())
	}
	b = wire.AppendTag(b, fd.Number(), fd.Kind().WireType())
	return appendSingular(b, fd.Kind(), v), nil
}
