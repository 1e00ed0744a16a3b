// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prototest exercises implementations of protoreflect.Message.
package prototest

import (
	"fmt"
	"math"
	"testing"

	"github.com/pbwire/pbwire/encoding/prototext"
	"github.com/pbwire/pbwire/internal/encoding/wire"
	"github.com/pbwire/pbwire/internal/errors"
	"github.com/pbwire/pbwire/proto"
	pref "github.com/pbwire/pbwire/reflect/protoreflect"
)

// TestMessage runs the provided message through a series of tests
// exercising the reflection API and the wire codec.
// Only fresh messages obtained from message.New are mutated.
func TestMessage(t testing.TB, message pref.Message) {
	md := message.Descriptor()

	m := message.New()
	for i := 0; i < md.Fields().Len(); i++ {
		fd := md.Fields().Get(i)
		if fd.Kind() == pref.FloatKind || fd.Kind() == pref.DoubleKind {
			testFieldFloat(t, m, fd)
		}
		testField(t, m, fd)
		testFieldMismatch(t, m, fd)
	}

	// Test has/get/set/clear on a non-existent field.
	for num := pref.FieldNumber(1); ; num++ {
		if md.Fields().ByNumber(num) != nil {
			continue
		}
		if m.Has(num) {
			t.Errorf("non-existent field: Has(%v) = true, want false", num)
		}
		if v := m.Get(num); v.IsValid() {
			t.Errorf("non-existent field: Get(%v) = %v, want invalid", num, formatValue(v))
		}
		if err := m.Set(num, pref.ValueOfInt32(1)); !errors.Is(err, errors.TypeMismatch) {
			t.Errorf("non-existent field: Set(%v) = %v, want type mismatch", num, err)
		}
		m.ClearField(num) // noop
		break
	}

	testUnknown(t, message.New())
	testRoundTrip(t, message)
}

func marshalText(m pref.Message) string {
	b, _ := prototext.MarshalOptions{AllowPartial: true}.Marshal(m)
	return string(b)
}

// testField exercises set/get/has/clear of a field.
func testField(t testing.TB, m pref.Message, fd pref.FieldDescriptor) {
	num := fd.Number()
	name := fd.FullName()

	// Set to a non-zero value, the zero value, different non-zero values.
	// Setting the zero value still populates the field.
	for _, n := range []seed{1, 0, minVal, maxVal} {
		v := newScalarValue(fd, n)
		if err := m.Set(num, v); err != nil {
			t.Errorf("Set(%v, %v) = %v, want nil", name, formatValue(v), err)
		}
		if got, want := m.Has(num), true; got != want {
			t.Errorf("after setting %q to %v:\nHas(%v) = %v, want %v", name, formatValue(v), num, got, want)
		}
		if got, want := m.Get(num), v; !got.Equal(want) {
			t.Errorf("after setting %q:\nGet(%v) = %v, want %v", name, num, formatValue(got), formatValue(want))
		}
	}

	m.ClearField(num)
	if got, want := m.Has(num), false; got != want {
		t.Errorf("after clearing %q:\nHas(%v) = %v, want %v", name, num, got, want)
	}
	if got, want := m.Get(num), fd.Default(); !got.Equal(want) {
		t.Errorf("after clearing %q:\nGet(%v) = %v, want default %v", name, num, formatValue(got), formatValue(want))
	}
}

// testFieldMismatch checks that a value of the wrong Go type is rejected
// and leaves the field untouched.
func testFieldMismatch(t testing.TB, m pref.Message, fd pref.FieldDescriptor) {
	num := fd.Number()
	name := fd.FullName()

	want := newScalarValue(fd, 1)
	if err := m.Set(num, want); err != nil {
		t.Fatalf("Set(%v) = %v, want nil", name, err)
	}
	bad := pref.ValueOfString("x")
	if fd.Kind() == pref.StringKind {
		bad = pref.ValueOfInt32(1)
	}
	if err := m.Set(num, bad); !errors.Is(err, errors.TypeMismatch) {
		t.Errorf("Set(%v, %v) = %v, want type mismatch", name, formatValue(bad), err)
	}
	if got := m.Get(num); !got.Equal(want) {
		t.Errorf("after rejected Set of %q:\nGet(%v) = %v, want %v", name, num, formatValue(got), formatValue(want))
	}
	m.ClearField(num)
}

func testFieldFloat(t testing.TB, m pref.Message, fd pref.FieldDescriptor) {
	num := fd.Number()
	name := fd.FullName()
	for _, v := range []float64{math.Inf(-1), math.Inf(1), math.NaN(), math.Copysign(0, -1)} {
		var val pref.Value
		if fd.Kind() == pref.FloatKind {
			val = pref.ValueOfFloat32(float32(v))
		} else {
			val = pref.ValueOfFloat64(v)
		}
		m.Set(num, val)
		// Note that Has is true for -0.
		if got, want := m.Has(num), true; got != want {
			t.Errorf("after setting %v to %v: Has(%v) = %v, want %v", name, v, num, got, want)
		}
		if got, want := m.Get(num), val; !got.Equal(want) {
			t.Errorf("after setting %v: Get(%v) = %v, want %v", name, num, formatValue(got), formatValue(want))
		}
	}
	m.ClearField(num)
}

// testUnknown checks that unknown fields are stored and emitted verbatim.
func testUnknown(t testing.TB, m pref.Message) {
	md := m.Descriptor()
	num := wire.MaxValidNumber
	for md.Fields().ByNumber(num) != nil {
		num--
	}
	var raw pref.RawFields
	raw = wire.AppendTag(raw, num, wire.BytesType)
	raw = wire.AppendBytes(raw, []byte("unknown"))

	m.SetUnknown(raw)
	if got := m.GetUnknown(); string(got) != string(raw) {
		t.Errorf("GetUnknown() = %x, want %x", got, raw)
	}
	b, err := proto.MarshalOptions{AllowPartial: true}.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() = %v, want nil", err)
	}
	if string(b) != string(raw) {
		t.Errorf("Marshal() of unknown fields = %x, want %x", b, raw)
	}
	m.SetUnknown(nil)
	if got := m.GetUnknown(); len(got) != 0 {
		t.Errorf("after SetUnknown(nil): GetUnknown() = %x, want empty", got)
	}
}

// testRoundTrip checks marshal/unmarshal, merge and reset of a message
// with every field populated.
func testRoundTrip(t testing.TB, message pref.Message) {
	m1 := message.New()
	populateMessage(t, m1, 1)
	b, err := proto.Marshal(m1)
	if err != nil {
		t.Errorf("Marshal() = %v, want nil\n%v", err, marshalText(m1))
	}
	if got, want := proto.Size(m1), len(b); got != want {
		t.Errorf("Size() = %v, want %v", got, want)
	}
	m2 := message.New()
	if err := proto.Unmarshal(b, m2); err != nil {
		t.Errorf("Unmarshal() = %v, want nil\n%v", err, marshalText(m1))
	}
	if !proto.Equal(m1, m2) {
		t.Errorf("round-trip marshal/unmarshal did not preserve message.\nOriginal:\n%v\nNew:\n%v", marshalText(m1), marshalText(m2))
	}

	m3 := message.New()
	if err := proto.Merge(m3, m1); err != nil {
		t.Errorf("Merge() = %v, want nil", err)
	}
	if !proto.Equal(m1, m3) {
		t.Errorf("Merge() into an empty message did not copy it.\nOriginal:\n%v\nNew:\n%v", marshalText(m1), marshalText(m3))
	}

	proto.Reset(m3)
	if !proto.Equal(m3, message.New()) {
		t.Errorf("Reset() left fields populated:\n%v", marshalText(m3))
	}
}

func formatValue(v pref.Value) string {
	switch v := v.Interface().(type) {
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}

// A seed is used to vary the content of a value.
//
// A seed of 0 is the zero value.
//
// A seed of minVal or maxVal is the least or greatest value of the value type.
type seed int

const (
	minVal seed = -1
	maxVal seed = -2
)

func newScalarValue(fd pref.FieldDescriptor, n seed) pref.Value {
	switch fd.Kind() {
	case pref.BoolKind:
		return pref.ValueOfBool(n != 0)
	case pref.EnumKind, pref.Int32Kind, pref.Sint32Kind, pref.Sfixed32Kind:
		switch n {
		case minVal:
			return pref.ValueOfInt32(math.MinInt32)
		case maxVal:
			return pref.ValueOfInt32(math.MaxInt32)
		default:
			return pref.ValueOfInt32(int32(n))
		}
	case pref.Uint32Kind, pref.Fixed32Kind:
		switch n {
		case minVal:
			// Only use 0 for the zero value.
			return pref.ValueOfUint32(1)
		case maxVal:
			return pref.ValueOfUint32(math.MaxUint32)
		default:
			return pref.ValueOfUint32(uint32(n))
		}
	case pref.Int64Kind, pref.Sint64Kind, pref.Sfixed64Kind:
		switch n {
		case minVal:
			return pref.ValueOfInt64(math.MinInt64)
		case maxVal:
			return pref.ValueOfInt64(math.MaxInt64)
		default:
			return pref.ValueOfInt64(int64(n))
		}
	case pref.Uint64Kind, pref.Fixed64Kind:
		switch n {
		case minVal:
			// Only use 0 for the zero value.
			return pref.ValueOfUint64(1)
		case maxVal:
			return pref.ValueOfUint64(math.MaxUint64)
		default:
			return pref.ValueOfUint64(uint64(n))
		}
	case pref.FloatKind:
		switch n {
		case minVal:
			return pref.ValueOfFloat32(math.SmallestNonzeroFloat32)
		case maxVal:
			return pref.ValueOfFloat32(math.MaxFloat32)
		default:
			return pref.ValueOfFloat32(1.5 * float32(n))
		}
	case pref.DoubleKind:
		switch n {
		case minVal:
			return pref.ValueOfFloat64(math.SmallestNonzeroFloat64)
		case maxVal:
			return pref.ValueOfFloat64(math.MaxFloat64)
		default:
			return pref.ValueOfFloat64(1.5 * float64(n))
		}
	case pref.StringKind:
		if n == 0 {
			return pref.ValueOfString("")
		}
		return pref.ValueOfString(fmt.Sprintf("%d", n))
	case pref.BytesKind:
		if n == 0 {
			return pref.ValueOfBytes([]byte{})
		}
		return pref.ValueOfBytes([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	}
	panic("unhandled kind")
}

// populateMessage sets every field of m to a value derived from n.
func populateMessage(t testing.TB, m pref.Message, n seed) {
	md := m.Descriptor()
	for i := 0; i < md.Fields().Len(); i++ {
		fd := md.Fields().Get(i)
		if err := m.Set(fd.Number(), newScalarValue(fd, 10*n+seed(i))); err != nil {
			t.Fatalf("Set(%v) = %v, want nil", fd.FullName(), err)
		}
	}
}
