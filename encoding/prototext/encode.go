// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prototext renders messages in a human-readable text format.
//
// The output lists every populated field as "name: value" in declaration
// order, followed by unknown fields keyed by their field number. The format
// is meant for debugging and is not guaranteed to be stable.
package prototext

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/pbwire/pbwire/internal/encoding/wire"
	"github.com/pbwire/pbwire/internal/errors"
	"github.com/pbwire/pbwire/internal/pragma"
	pref "github.com/pbwire/pbwire/reflect/protoreflect"
)

// Format returns the single-line text form of m, ignoring errors.
func Format(m pref.Message) string {
	b, _ := MarshalOptions{Compact: true, AllowPartial: true}.Marshal(m)
	return string(b)
}

// Marshal writes m in text format using default options.
func Marshal(m pref.Message) ([]byte, error) {
	return MarshalOptions{}.Marshal(m)
}

// MarshalOptions is a configurable text format marshaler.
type MarshalOptions struct {
	pragma.NoUnkeyedLiterals

	// Set Compact to true to have output in a single line with no line breaks.
	Compact bool

	// AllowPartial suppresses the error for unset required fields.
	// The output is the same either way.
	AllowPartial bool
}

// Marshal writes m in text format using options in MarshalOptions object.
//
// Unset required fields are reported as a non-fatal error: the returned
// bytes are complete and the error matches proto.ErrIncomplete.
func (o MarshalOptions) Marshal(m pref.Message) ([]byte, error) {
	var nerr errors.NonFatal
	w := &writer{compact: o.Compact}

	fieldDescs := m.Descriptor().Fields()
	for i := 0; i < fieldDescs.Len(); i++ {
		fd := fieldDescs.Get(i)
		num := fd.Number()
		if !m.Has(num) {
			if fd.Cardinality() == pref.Required && !o.AllowPartial {
				// Treat unset required fields as a non-fatal error.
				nerr.AppendRequiredNotSet(string(fd.Name()))
			}
			continue
		}
		w.field(string(fd.Name()), formatSingular(m.Get(num), fd.Kind()))
	}

	if err := w.unknown(m.GetUnknown()); !nerr.Merge(err) {
		return w.buf.Bytes(), err
	}
	return w.buf.Bytes(), nerr.E
}

// formatSingular renders a scalar value.
func formatSingular(v pref.Value, kind pref.Kind) string {
	switch kind {
	case pref.StringKind:
		return quote([]byte(v.String()), false)
	case pref.BytesKind:
		return quote(v.Bytes(), true)
	case pref.FloatKind, pref.DoubleKind:
		f := v.Float()
		switch {
		case math.IsInf(f, -1):
			return "-inf"
		case math.IsInf(f, +1):
			return "inf"
		case math.IsNaN(f):
			return "nan"
		case kind == pref.FloatKind:
			return strconv.FormatFloat(f, 'g', -1, 32)
		default:
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
	default:
		return v.String()
	}
}

// quote returns s as a double-quoted string literal with C escaping.
// Valid UTF-8 sequences are kept as is unless bin is set, in which case
// every byte outside printable ASCII is escaped.
func quote(s []byte, bin bool) string {
	out := []byte{'"'}
	for len(s) > 0 {
		c := s[0]
		switch c {
		case '\n':
			out = append(out, `\n`...)
		case '\r':
			out = append(out, `\r`...)
		case '\t':
			out = append(out, `\t`...)
		case '"':
			out = append(out, `\"`...)
		case '\\':
			out = append(out, `\\`...)
		default:
			if c >= 0x20 && c < 0x7f {
				out = append(out, c)
				break
			}
			if !bin && c >= utf8.RuneSelf {
				if r, n := utf8.DecodeRune(s); r != utf8.RuneError || n > 1 {
					out = append(out, s[:n]...)
					s = s[n:]
					continue
				}
			}
			out = append(out, fmt.Sprintf(`\%03o`, c)...)
		}
		s = s[1:]
	}
	return string(append(out, '"'))
}

type writer struct {
	compact bool
	indent  int
	buf     bytes.Buffer
}

// begin starts a new entry.
func (w *writer) begin() {
	if w.compact {
		if n := w.buf.Len(); n > 0 && w.buf.Bytes()[n-1] != '{' {
			w.buf.WriteByte(' ')
		}
		return
	}
	for i := 0; i < w.indent; i++ {
		w.buf.WriteString("  ")
	}
}

func (w *writer) end() {
	if !w.compact {
		w.buf.WriteByte('\n')
	}
}

func (w *writer) field(name, value string) {
	w.begin()
	w.buf.WriteString(name)
	w.buf.WriteString(": ")
	w.buf.WriteString(value)
	w.end()
}

// unknown renders raw fields keyed by number. Groups are rendered as
// nested blocks.
func (w *writer) unknown(b []byte) error {
	for len(b) > 0 {
		num, wtyp, n := wire.ConsumeTag(b)
		if n < 0 {
			return wire.ParseError(n)
		}
		b = b[n:]
		name := strconv.Itoa(int(num))

		switch wtyp {
		case wire.VarintType:
			v, n := wire.ConsumeVarint(b)
			if n < 0 {
				return wire.ParseError(n)
			}
			w.field(name, strconv.FormatUint(v, 10))
			b = b[n:]
		case wire.Fixed32Type:
			v, n := wire.ConsumeFixed32(b)
			if n < 0 {
				return wire.ParseError(n)
			}
			w.field(name, fmt.Sprintf("0x%08x", v))
			b = b[n:]
		case wire.Fixed64Type:
			v, n := wire.ConsumeFixed64(b)
			if n < 0 {
				return wire.ParseError(n)
			}
			w.field(name, fmt.Sprintf("0x%016x", v))
			b = b[n:]
		case wire.BytesType:
			v, n := wire.ConsumeBytes(b)
			if n < 0 {
				return wire.ParseError(n)
			}
			w.field(name, quote(v, true))
			b = b[n:]
		case wire.StartGroupType:
			n := wire.ConsumeFieldValue(num, wtyp, b)
			if n < 0 {
				return wire.ParseError(n)
			}
			w.begin()
			w.buf.WriteString(name + ": {")
			w.end()
			w.indent++
			// The group body excludes its end group tag.
			err := w.unknown(b[:n-wire.SizeTag(num)])
			w.indent--
			if !w.compact {
				w.begin()
			}
			w.buf.WriteByte('}')
			w.end()
			if err != nil {
				return err
			}
			b = b[n:]
		default:
			return errors.Wrap(errors.Parse, "unexpected wire type %d in unknown fields", wtyp)
		}
	}
	return nil
}
