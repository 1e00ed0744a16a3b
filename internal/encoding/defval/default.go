// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package defval marshals and unmarshals textual forms of default values.
//
// The textual form is the one used by schema tables: booleans are "true" or
// "false", integers may carry a 0x or 0 prefix, floats accept "inf", "-inf"
// and "nan", strings are used verbatim, and bytes use C escaping without
// surrounding quotes.
package defval

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/pbwire/pbwire/internal/errors"
	pref "github.com/pbwire/pbwire/reflect/protoreflect"
)

// Unmarshal deserializes the default string s according to the given kind k.
func Unmarshal(s string, k pref.Kind) (pref.Value, error) {
	switch k {
	case pref.BoolKind:
		switch s {
		case "true":
			return pref.ValueOfBool(true), nil
		case "false":
			return pref.ValueOfBool(false), nil
		}
	case pref.EnumKind, pref.Int32Kind, pref.Sint32Kind, pref.Sfixed32Kind:
		if v, err := strconv.ParseInt(s, 0, 32); err == nil {
			return pref.ValueOfInt32(int32(v)), nil
		}
	case pref.Int64Kind, pref.Sint64Kind, pref.Sfixed64Kind:
		if v, err := strconv.ParseInt(s, 0, 64); err == nil {
			return pref.ValueOfInt64(v), nil
		}
	case pref.Uint32Kind, pref.Fixed32Kind:
		if v, err := strconv.ParseUint(s, 0, 32); err == nil {
			return pref.ValueOfUint32(uint32(v)), nil
		}
	case pref.Uint64Kind, pref.Fixed64Kind:
		if v, err := strconv.ParseUint(s, 0, 64); err == nil {
			return pref.ValueOfUint64(v), nil
		}
	case pref.FloatKind, pref.DoubleKind:
		var v float64
		var err error
		switch s {
		case "-inf":
			v = math.Inf(-1)
		case "inf":
			v = math.Inf(+1)
		case "nan":
			v = math.NaN()
		default:
			bits := 64
			if k == pref.FloatKind {
				bits = 32
			}
			v, err = strconv.ParseFloat(s, bits)
		}
		if err == nil {
			if k == pref.FloatKind {
				return pref.ValueOfFloat32(float32(v)), nil
			}
			return pref.ValueOfFloat64(v), nil
		}
	case pref.StringKind:
		// String values are already unescaped and can be used as is.
		return pref.ValueOfString(s), nil
	case pref.BytesKind:
		if b, ok := unmarshalBytes(s); ok {
			return pref.ValueOfBytes(b), nil
		}
	}
	return pref.Value{}, errors.Wrap(errors.Schema, "invalid default value for %v: %q", k, s)
}

// Marshal serializes v as the default string according to the given kind k.
func Marshal(v pref.Value, k pref.Kind) (string, error) {
	if !k.Accepts(v) {
		return "", errors.Wrap(errors.Schema, "invalid default value for %v: %v", k, v)
	}
	switch k {
	case pref.BoolKind:
		return strconv.FormatBool(v.Bool()), nil
	case pref.EnumKind, pref.Int32Kind, pref.Sint32Kind, pref.Sfixed32Kind, pref.Int64Kind, pref.Sint64Kind, pref.Sfixed64Kind:
		return strconv.FormatInt(v.Int(), 10), nil
	case pref.Uint32Kind, pref.Fixed32Kind, pref.Uint64Kind, pref.Fixed64Kind:
		return strconv.FormatUint(v.Uint(), 10), nil
	case pref.FloatKind, pref.DoubleKind:
		f := v.Float()
		switch {
		case math.IsInf(f, -1):
			return "-inf", nil
		case math.IsInf(f, +1):
			return "inf", nil
		case math.IsNaN(f):
			return "nan", nil
		case k == pref.FloatKind:
			return strconv.FormatFloat(f, 'g', -1, 32), nil
		default:
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		}
	case pref.StringKind:
		// String values are serialized as is without any escaping.
		return v.String(), nil
	default:
		return marshalBytes(v.Bytes()), nil
	}
}

// unmarshalBytes deserializes bytes by applying C unescaping.
func unmarshalBytes(s string) ([]byte, bool) {
	var b []byte
	for len(s) > 0 {
		if s[0] == '\\' && len(s) > 1 && s[1] == '\'' {
			b = append(b, '\'')
			s = s[2:]
			continue
		}
		r, multibyte, tail, err := strconv.UnquoteChar(s, '"')
		if err != nil {
			return nil, false
		}
		if multibyte {
			b = utf8.AppendRune(b, r)
		} else {
			b = append(b, byte(r))
		}
		s = tail
	}
	return b, true
}

// marshalBytes serializes bytes by using C escaping.
// The output matches the CEscape function used by protoc.
func marshalBytes(b []byte) string {
	var s []byte
	for _, c := range b {
		switch c {
		case '\n':
			s = append(s, `\n`...)
		case '\r':
			s = append(s, `\r`...)
		case '\t':
			s = append(s, `\t`...)
		case '"':
			s = append(s, `\"`...)
		case '\'':
			s = append(s, `\'`...)
		case '\\':
			s = append(s, `\\`...)
		default:
			if printableASCII := c >= 0x20 && c <= 0x7e; printableASCII {
				s = append(s, c)
			} else {
				s = append(s, fmt.Sprintf(`\%03o`, c)...)
			}
		}
	}
	return string(s)
}
