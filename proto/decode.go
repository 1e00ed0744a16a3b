// Copyright 2018 The Go Authors. All rights reserved.
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

// UnmarshalOptions configures the unmarshaler.
//
// Example usage:
//
//	err := UnmarshalOptions{DiscardUnknown: true}.Unmarshal(b, m)
type UnmarshalOptions struct {
	// If DiscardUnknown is set, unknown fields are ignored.
	DiscardUnknown bool

	// RejectWireTypeMismatch makes a known field encoded with a wire type
	// other than the one of its kind a parse error. Otherwise such a field
	// is kept as an unknown field.
	RejectWireTypeMismatch bool

	// RejectInvalidUTF8 makes a string field holding invalid UTF-8 a fatal
	// error. Otherwise the value is stored as is and a warning is logged.
	RejectInvalidUTF8 bool

	// Reset clears m before parsing. By default the parsed fields are
	// merged into m.
	Reset bool

	// Logger receives advisory diagnostics. If nil, they are discarded.
	Logger log.Logger

	pragma.NoUnkeyedLiterals
}

// Unmarshal parses the wire-format message in b and merges the result into m.
func Unmarshal(b []byte, m Message) error {
	return UnmarshalOptions{}.Unmarshal(b, m)
}

// Unmarshal parses the wire-format message in b and places the result in m.
//
// An end group tag at the top level ends the message; any bytes after it
// are ignored. On a parse error, m holds the fields decoded before the
// error and should be cleared before reuse.
//
// Required fields are not checked. Call IsInitialized after the last
// Unmarshal into m.
func (o UnmarshalOptions) Unmarshal(b []byte, m Message) error {
	if o.Reset {
		Reset(m)
	}
	return o.unmarshalMessage(b, m)
}

func (o UnmarshalOptions) unmarshalMessage(b []byte, m Message) error {
	var unknown []byte
	defer func() {
		if len(unknown) > 0 {
			u := m.GetUnknown()
			m.SetUnknown(append(u[:len(u):len(u)], unknown...))
		}
	}()

	fieldDescs := m.Descriptor().Fields()
	for len(b) > 0 {
		// Parse the tag (field number and wire type).
		num, wtyp, tagLen := wire.ConsumeTag(b)
		if tagLen < 0 {
			return wire.ParseError(tagLen)
		}
		if wtyp == wire.EndGroupType {
			return nil
		}

		// Parse the field value.
		fd := fieldDescs.ByNumber(num)
		var err error
		var valLen int
		if fd == nil {
			err = errUnknown
		} else {
			valLen, err = o.unmarshalField(b[tagLen:], wtyp, m, fd)
		}
		if err == errUnknown {
			valLen = wire.ConsumeFieldValue(num, wtyp, b[tagLen:])
			if valLen < 0 {
				return wire.ParseError(valLen)
			}
			if !o.DiscardUnknown {
				unknown = append(unknown, b[:tagLen+valLen]...)
			}
		} else if err != nil {
			return err
		}
		b = b[tagLen+valLen:]
	}
	return nil
}

func (o UnmarshalOptions) unmarshalField(b []byte, wtyp wire.Type, m Message, fd protoreflect.FieldDescriptor) (int, error) {
	v, n, err := o.unmarshalScalar(b, wtyp, fd.Kind())
	if err == errUnknown && o.RejectWireTypeMismatch {
		return 0, errors.Wrap(errors.Parse, "field %v of kind %v has wire type %d", fd.FullName(), fd.Kind(), wtyp)
	}
	if err != nil {
		return 0, err
	}
	if fd.Kind() == protoreflect.StringKind && !utf8.ValidString(v.String()) {
		if o.RejectInvalidUTF8 {
			return 0, errors.InvalidUTF8(string(fd.FullName()))
		}
		level.Warn(logger(o.Logger)).Log("msg", "unmarshaling string field with invalid UTF-8", "field", fd.FullName())
	}
	if err := m.Set(fd.Number(), v); err != nil {
		return 0, err
	}
	return n, nil
}

// errUnknown is used internally to indicate fields which should be added
// to the unknown field set of a message. It is never returned from an exported
// function.
var errUnknown = errors.New("BUG: internal error (unknown)")
