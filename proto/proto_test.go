// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto_test

import (
	pref "github.com/pbwire/pbwire/reflect/protoreflect"
	preg "github.com/pbwire/pbwire/reflect/protoregistry"
	ptype "github.com/pbwire/pbwire/reflect/prototype"
	"github.com/pbwire/pbwire/types/dynamicpb"
)

// testTypes holds the messages shared by the tests in this package.
var testTypes = func() *preg.Types {
	r := new(preg.Types)
	mustRegister := func(name pref.FullName, fields ...ptype.Field) {
		if _, err := r.Register(name, fields...); err != nil {
			panic(err)
		}
	}
	mustRegister("test.ABC",
		ptype.Field{Name: "a", Number: 1, Cardinality: pref.Required, Kind: pref.Int32Kind},
		ptype.Field{Name: "b", Number: 2, Cardinality: pref.Required, Kind: pref.Int32Kind},
		ptype.Field{Name: "c", Number: 3, Cardinality: pref.Required, Kind: pref.StringKind},
	)
	mustRegister("test.Scalars",
		ptype.Field{Name: "optional_int32", Number: 1, Kind: pref.Int32Kind},
		ptype.Field{Name: "optional_int64", Number: 2, Kind: pref.Int64Kind},
		ptype.Field{Name: "optional_uint32", Number: 3, Kind: pref.Uint32Kind},
		ptype.Field{Name: "optional_uint64", Number: 4, Kind: pref.Uint64Kind},
		ptype.Field{Name: "optional_sint32", Number: 5, Kind: pref.Sint32Kind},
		ptype.Field{Name: "optional_sint64", Number: 6, Kind: pref.Sint64Kind},
		ptype.Field{Name: "optional_fixed32", Number: 7, Kind: pref.Fixed32Kind},
		ptype.Field{Name: "optional_fixed64", Number: 8, Kind: pref.Fixed64Kind},
		ptype.Field{Name: "optional_sfixed32", Number: 9, Kind: pref.Sfixed32Kind},
		ptype.Field{Name: "optional_sfixed64", Number: 10, Kind: pref.Sfixed64Kind},
		ptype.Field{Name: "optional_float", Number: 11, Kind: pref.FloatKind},
		ptype.Field{Name: "optional_double", Number: 12, Kind: pref.DoubleKind},
		ptype.Field{Name: "optional_bool", Number: 13, Kind: pref.BoolKind},
		ptype.Field{Name: "optional_string", Number: 14, Kind: pref.StringKind},
		ptype.Field{Name: "optional_bytes", Number: 15, Kind: pref.BytesKind},
		ptype.Field{Name: "optional_enum", Number: 16, Kind: pref.EnumKind},
		ptype.Field{Name: "high_number", Number: 1 << 20, Kind: pref.Int32Kind},
	)
	r.Freeze()
	return r
}()

func newMessage(name pref.FullName) *dynamicpb.Message {
	md, err := testTypes.FindMessageByName(name)
	if err != nil {
		panic(err)
	}
	return dynamicpb.New(md)
}

// build returns a new message with the given fields set.
func build(name pref.FullName, fields ...interface{}) *dynamicpb.Message {
	m := newMessage(name)
	for i := 0; i < len(fields); i += 2 {
		num := pref.FieldNumber(fields[i].(int))
		if err := m.Set(num, pref.ValueOf(fields[i+1])); err != nil {
			panic(err)
		}
	}
	return m
}
