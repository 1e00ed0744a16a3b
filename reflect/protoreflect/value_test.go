// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protoreflect

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pbwire/pbwire/internal/encoding/wire"
)

func TestValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		kind Kind
	}{
		{true, BoolKind},
		{int32(math.MinInt32), Int32Kind},
		{int32(-7), EnumKind},
		{int64(math.MaxInt64), Sint64Kind},
		{uint32(math.MaxUint32), Fixed32Kind},
		{uint64(math.MaxUint64), Uint64Kind},
		{float32(1.5), FloatKind},
		{float64(math.Inf(-1)), DoubleKind},
		{"hello", StringKind},
		{[]byte("raw"), BytesKind},
	}
	for _, tt := range tests {
		v := ValueOf(tt.in)
		if !v.IsValid() {
			t.Errorf("ValueOf(%v).IsValid() = false", tt.in)
		}
		if diff := cmp.Diff(tt.in, v.Interface()); diff != "" {
			t.Errorf("ValueOf(%v).Interface() mismatch (-want +got):\n%v", tt.in, diff)
		}
		if !tt.kind.Accepts(v) {
			t.Errorf("%v.Accepts(%v) = false", tt.kind, tt.in)
		}
		if got, want := tt.kind.GoType(), v.GoType(); got != want {
			t.Errorf("%v.GoType() = %v, want %v", tt.kind, got, want)
		}
		if !tt.kind.Accepts(tt.kind.Zero()) {
			t.Errorf("%v.Accepts(%v.Zero()) = false", tt.kind, tt.kind)
		}
		if !v.Equal(ValueOf(tt.in)) {
			t.Errorf("ValueOf(%v) not equal to itself", tt.in)
		}
	}

	if Int32Kind.Accepts(ValueOfInt64(1)) {
		t.Error("Int32Kind accepts an int64 value")
	}
	if StringKind.Accepts(ValueOfBytes([]byte("x"))) {
		t.Error("StringKind accepts a []byte value")
	}
	if (Value{}).IsValid() {
		t.Error("zero Value is valid")
	}
	if ValueOfInt32(1).Equal(ValueOfInt64(1)) {
		t.Error("int32 and int64 values compare equal")
	}
	nan := ValueOfFloat64(math.NaN())
	if !nan.Equal(nan) {
		t.Error("NaN value not equal to itself")
	}
	if got := ValueOfInt32(42).String(); got != "42" {
		t.Errorf("ValueOfInt32(42).String() = %q", got)
	}
}

func TestValueTypeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Int() on a string value did not panic")
		}
	}()
	ValueOfString("x").Int()
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind Kind
		wire wire.Type
	}{
		{BoolKind, wire.VarintType},
		{EnumKind, wire.VarintType},
		{Int32Kind, wire.VarintType},
		{Sint64Kind, wire.VarintType},
		{Fixed32Kind, wire.Fixed32Type},
		{FloatKind, wire.Fixed32Type},
		{Sfixed64Kind, wire.Fixed64Type},
		{DoubleKind, wire.Fixed64Type},
		{StringKind, wire.BytesType},
		{BytesKind, wire.BytesType},
	}
	for _, tt := range tests {
		if got := tt.kind.WireType(); got != tt.wire {
			t.Errorf("%v.WireType() = %v, want %v", tt.kind, got, tt.wire)
		}
		k, ok := KindByName(tt.kind.String())
		if !ok || k != tt.kind {
			t.Errorf("KindByName(%q) = (%v, %v), want (%v, true)", tt.kind.String(), k, ok, tt.kind)
		}
	}
	if Kind(11).IsValid() {
		t.Error("message kind is valid")
	}
	if _, ok := KindByName("message"); ok {
		t.Error(`KindByName("message") succeeded`)
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		in    FullName
		valid bool
		name  Name
	}{
		{"game.Login", true, "Login"},
		{"Login", true, "Login"},
		{"game..Login", false, ""},
		{".game.Login", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		if got := tt.in.IsValid(); got != tt.valid {
			t.Errorf("FullName(%q).IsValid() = %v, want %v", tt.in, got, tt.valid)
		}
		if tt.valid && tt.in.Name() != tt.name {
			t.Errorf("FullName(%q).Name() = %q, want %q", tt.in, tt.in.Name(), tt.name)
		}
	}
	if Name("device-id").IsValid() {
		t.Error(`Name("device-id").IsValid() = true`)
	}
}

func TestRawFieldsIsValid(t *testing.T) {
	var b []byte
	b = wire.AppendTag(b, 1000, wire.VarintType)
	b = wire.AppendVarint(b, 1)
	b = wire.AppendTag(b, 4, wire.BytesType)
	b = wire.AppendString(b, "x")
	if !RawFields(b).IsValid() {
		t.Errorf("RawFields(%x).IsValid() = false", b)
	}
	if RawFields(b[:len(b)-1]).IsValid() {
		t.Errorf("RawFields(%x).IsValid() = true for truncated input", b[:len(b)-1])
	}
	if RawFields(bytes.Repeat([]byte{0}, 1)).IsValid() {
		t.Error("RawFields with field number 0 is valid")
	}
}
