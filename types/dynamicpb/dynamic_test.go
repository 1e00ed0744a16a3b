// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynamicpb_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/pbwire/pbwire/internal/errors"
	"github.com/pbwire/pbwire/proto"
	pref "github.com/pbwire/pbwire/reflect/protoreflect"
	ptype "github.com/pbwire/pbwire/reflect/prototype"
	"github.com/pbwire/pbwire/testing/prototest"
	"github.com/pbwire/pbwire/types/dynamicpb"
)

func mustMessage(t *testing.T, name pref.FullName, fields ...ptype.Field) pref.MessageDescriptor {
	t.Helper()
	md, err := ptype.NewMessage(&ptype.Message{FullName: name, Fields: fields})
	if err != nil {
		t.Fatal(err)
	}
	return md
}

func allKinds(t *testing.T) pref.MessageDescriptor {
	return mustMessage(t, "test.AllKinds",
		ptype.Field{Name: "f_bool", Number: 1, Kind: pref.BoolKind},
		ptype.Field{Name: "f_int32", Number: 2, Kind: pref.Int32Kind, Default: pref.ValueOfInt32(-7)},
		ptype.Field{Name: "f_int64", Number: 3, Kind: pref.Sint64Kind},
		ptype.Field{Name: "f_uint32", Number: 4, Kind: pref.Fixed32Kind},
		ptype.Field{Name: "f_uint64", Number: 5, Kind: pref.Uint64Kind},
		ptype.Field{Name: "f_float", Number: 6, Kind: pref.FloatKind},
		ptype.Field{Name: "f_double", Number: 7, Kind: pref.DoubleKind},
		ptype.Field{Name: "f_string", Number: 8, Kind: pref.StringKind, Default: pref.ValueOfString("none")},
		ptype.Field{Name: "f_bytes", Number: 9, Kind: pref.BytesKind, Default: pref.ValueOfBytes([]byte("dflt"))},
		ptype.Field{Name: "f_req", Number: 10, Cardinality: pref.Required, Kind: pref.EnumKind},
	)
}

func TestConformance(t *testing.T) {
	prototest.TestMessage(t, dynamicpb.New(allKinds(t)))
}

func TestTypedAccessors(t *testing.T) {
	m := dynamicpb.New(allKinds(t))

	// Unpopulated fields read as their defaults.
	if v, err := m.GetInt32(2); err != nil || v != -7 {
		t.Errorf("GetInt32(2) = (%v, %v), want (-7, nil)", v, err)
	}
	if v, err := m.GetString(8); err != nil || v != "none" {
		t.Errorf("GetString(8) = (%q, %v), want (none, nil)", v, err)
	}
	if v, err := m.GetBool(1); err != nil || v {
		t.Errorf("GetBool(1) = (%v, %v), want (false, nil)", v, err)
	}

	// The bytes default is returned as a copy.
	b, _ := m.GetBytes(9)
	b[0] = 'X'
	if b2, _ := m.GetBytes(9); string(b2) != "dflt" {
		t.Errorf("default bytes mutated through getter: %q", b2)
	}

	setters := []func() error{
		func() error { return m.SetBool(1, true) },
		func() error { return m.SetInt32(2, 42) },
		func() error { return m.SetInt64(3, -1) },
		func() error { return m.SetUint32(4, 7) },
		func() error { return m.SetUint64(5, 1<<40) },
		func() error { return m.SetFloat32(6, 1.5) },
		func() error { return m.SetFloat64(7, -2.25) },
		func() error { return m.SetString(8, "abc") },
		func() error { return m.SetBytes(9, []byte{0, 1}) },
		func() error { return m.SetInt32(10, 3) },
	}
	for i, set := range setters {
		if err := set(); err != nil {
			t.Fatalf("setter %d: %v", i, err)
		}
	}

	type all struct {
		B   bool
		I32 int32
		I64 int64
		U32 uint32
		U64 uint64
		F32 float32
		F64 float64
		S   string
		Bs  []byte
		E   int32
	}
	var got all
	var err error
	get := func(e error) {
		if e != nil && err == nil {
			err = e
		}
	}
	got.B, err = m.GetBool(1)
	var e error
	got.I32, e = m.GetInt32(2)
	get(e)
	got.I64, e = m.GetInt64(3)
	get(e)
	got.U32, e = m.GetUint32(4)
	get(e)
	got.U64, e = m.GetUint64(5)
	get(e)
	got.F32, e = m.GetFloat32(6)
	get(e)
	got.F64, e = m.GetFloat64(7)
	get(e)
	got.S, e = m.GetString(8)
	get(e)
	got.Bs, e = m.GetBytes(9)
	get(e)
	got.E, e = m.GetInt32(10)
	get(e)
	if err != nil {
		t.Fatalf("getter error: %v", err)
	}
	want := all{true, 42, -1, 7, 1 << 40, 1.5, -2.25, "abc", []byte{0, 1}, 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("getters mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeMismatch(t *testing.T) {
	m := dynamicpb.New(allKinds(t))
	if err := m.SetInt64(2, 1); !errors.Is(err, proto.ErrTypeMismatch) {
		t.Errorf("SetInt64 on int32 field: error = %v, want ErrTypeMismatch", err)
	}
	if m.Has(2) {
		t.Error("failed setter populated the field")
	}
	if err := m.SetString(99, "x"); !errors.Is(err, proto.ErrTypeMismatch) {
		t.Errorf("SetString on unknown number: error = %v, want ErrTypeMismatch", err)
	}
	if _, err := m.GetUint64(4); !errors.Is(err, proto.ErrTypeMismatch) {
		t.Errorf("GetUint64 on fixed32 field: error = %v, want ErrTypeMismatch", err)
	}
	if _, err := m.GetBool(99); !errors.Is(err, proto.ErrTypeMismatch) {
		t.Errorf("GetBool on unknown number: error = %v, want ErrTypeMismatch", err)
	}
	if v := m.Get(99); v.IsValid() {
		t.Errorf("Get(99) = %v, want invalid value", v)
	}
}

func TestPresence(t *testing.T) {
	m := dynamicpb.New(allKinds(t))
	if m.Has(2) {
		t.Fatal("new message has field 2")
	}
	// Setting the default value still marks the field as present.
	m.SetInt32(2, -7)
	if !m.Has(2) {
		t.Error("Has(2) = false after setting the default value")
	}
	m.ClearField(2)
	if m.Has(2) {
		t.Error("Has(2) = true after ClearField")
	}
	if v, _ := m.GetInt32(2); v != -7 {
		t.Errorf("GetInt32(2) after ClearField = %v, want default -7", v)
	}
	m.ClearField(99) // no-op
}

func TestRangeOrder(t *testing.T) {
	m := dynamicpb.New(allKinds(t))
	m.SetString(8, "s")
	m.SetBool(1, true)
	m.SetInt32(10, 1)

	var got []pref.FieldNumber
	m.Range(func(fd pref.FieldDescriptor, _ pref.Value) bool {
		got = append(got, fd.Number())
		return true
	})
	if diff := cmp.Diff([]pref.FieldNumber{1, 8, 10}, got); diff != "" {
		t.Errorf("Range() order mismatch (-want +got):\n%s", diff)
	}
}

func TestInitialization(t *testing.T) {
	md := mustMessage(t, "test.ABC",
		ptype.Field{Name: "a", Number: 1, Cardinality: pref.Required, Kind: pref.Int32Kind},
		ptype.Field{Name: "b", Number: 2, Cardinality: pref.Required, Kind: pref.Int32Kind},
		ptype.Field{Name: "c", Number: 3, Cardinality: pref.Required, Kind: pref.StringKind},
	)
	m := dynamicpb.New(md)
	if diff := cmp.Diff([]pref.Name{"a", "b", "c"}, m.MissingFields()); diff != "" {
		t.Errorf("MissingFields() mismatch (-want +got):\n%s", diff)
	}
	// Set in reverse order: initialization does not depend on order.
	m.SetString(3, "abc")
	m.SetInt32(2, 42)
	if m.IsInitialized() {
		t.Error("IsInitialized() = true with a unset")
	}
	m.SetInt32(1, 1)
	if !m.IsInitialized() {
		t.Errorf("IsInitialized() = false, missing %v", m.MissingFields())
	}
	if len(m.MissingFields()) != 0 {
		t.Errorf("MissingFields() = %v, want none", m.MissingFields())
	}
}

func TestClear(t *testing.T) {
	m := dynamicpb.New(allKinds(t))
	m.SetInt32(2, 1)
	m.SetUnknown(pref.RawFields{0xa8, 0x1f, 0x01})
	m.ByteSize()
	m.Clear()
	if m.Has(2) || len(m.GetUnknown()) != 0 {
		t.Error("Clear() left state behind")
	}
	if got := m.ByteSize(); got != 0 {
		t.Errorf("ByteSize() after Clear = %d, want 0", got)
	}
	if !proto.Equal(m, dynamicpb.New(m.Descriptor())) {
		t.Error("cleared message differs from a new one")
	}
}

func TestSizeCache(t *testing.T) {
	m := dynamicpb.New(allKinds(t))
	if _, ok := m.CachedSize(); ok {
		t.Fatal("new message has a valid cached size")
	}
	m.SetInt32(2, 150)
	if got, want := m.ByteSize(), 3; got != want {
		t.Fatalf("ByteSize() = %d, want %d", got, want)
	}
	if n, ok := m.CachedSize(); !ok || n != 3 {
		t.Errorf("CachedSize() = (%d, %v), want (3, true)", n, ok)
	}

	// Every mutation invalidates the cache.
	mutations := map[string]func(){
		"Set":        func() { m.SetInt32(2, 1) },
		"ClearField": func() { m.ClearField(2) },
		"SetUnknown": func() { m.SetUnknown(nil) },
		"Clear":      func() { m.Clear() },
	}
	for name, mutate := range mutations {
		m.ByteSize()
		mutate()
		if _, ok := m.CachedSize(); ok {
			t.Errorf("%s did not invalidate the cached size", name)
		}
	}
}

func TestSizeCacheLarge(t *testing.T) {
	m := dynamicpb.New(allKinds(t))
	maxInt := int(^uint(0) >> 1)
	m.SetCachedSize(maxInt)
	if n, ok := m.CachedSize(); !ok || n != maxInt {
		t.Errorf("CachedSize() = (%d, %v), want (%d, true)", n, ok, maxInt)
	}
}

func TestConcurrentReaders(t *testing.T) {
	m := dynamicpb.New(allKinds(t))
	m.SetBool(1, true)
	m.SetInt32(2, 150)
	m.SetString(8, "shared")
	m.SetBytes(9, []byte{0, 1, 2})
	m.SetInt32(10, 3)
	m.SetUnknown(pref.RawFields{0xa8, 0x1f, 0x01})

	want, err := proto.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	// Start from an invalid cache so that readers race to fill it.
	m.SetCachedSize(-1)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				if got := proto.Size(m); got != len(want) {
					return fmt.Errorf("Size() = %d, want %d", got, len(want))
				}
				if got := m.ByteSize(); got != len(want) {
					return fmt.Errorf("ByteSize() = %d, want %d", got, len(want))
				}
				b, err := proto.Marshal(m)
				if err != nil {
					return err
				}
				if !bytes.Equal(b, want) {
					return fmt.Errorf("Marshal() = %x, want %x", b, want)
				}
				if s, err := m.GetString(8); err != nil || s != "shared" {
					return fmt.Errorf("GetString(8) = (%q, %v), want shared", s, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Error(err)
	}
	if n, ok := m.CachedSize(); !ok || n != len(want) {
		t.Errorf("CachedSize() = (%d, %v), want (%d, true)", n, ok, len(want))
	}
}

func TestSwap(t *testing.T) {
	md := allKinds(t)
	a, b := dynamicpb.New(md), dynamicpb.New(md)
	a.SetString(8, "from a")
	a.SetUnknown(pref.RawFields{0xa8, 0x1f, 0x01})
	wantSize := a.ByteSize()
	b.SetBool(1, true)

	if err := a.Swap(b); err != nil {
		t.Fatal(err)
	}
	if s, _ := b.GetString(8); s != "from a" || !b.Has(8) || b.Has(1) {
		t.Errorf("b after swap = %v", b)
	}
	if !a.Has(1) || a.Has(8) || len(a.GetUnknown()) != 0 {
		t.Errorf("a after swap = %v", a)
	}
	if n, ok := b.CachedSize(); !ok || n != wantSize {
		t.Errorf("b.CachedSize() = (%d, %v), want (%d, true)", n, ok, wantSize)
	}
	if got := b.ByteSize(); got != wantSize {
		t.Errorf("b.ByteSize() = %d, want %d", got, wantSize)
	}

	other := dynamicpb.New(mustMessage(t, "test.Other"))
	if err := a.Swap(other); !errors.Is(err, proto.ErrTypeMismatch) {
		t.Errorf("Swap across descriptors: error = %v, want ErrTypeMismatch", err)
	}
	if err := a.Swap(a); err != nil {
		t.Errorf("Swap with itself: %v", err)
	}
}

func TestNew(t *testing.T) {
	m := dynamicpb.New(allKinds(t))
	m.SetInt32(2, 5)
	n := m.New()
	if n.Descriptor() != m.Descriptor() {
		t.Error("New() has a different descriptor")
	}
	if n.Has(2) {
		t.Error("New() is not empty")
	}
}

func TestString(t *testing.T) {
	m := dynamicpb.New(allKinds(t))
	m.SetInt32(2, 5)
	m.SetString(8, "x")
	if got, want := m.String(), `f_int32: 5 f_string: "x"`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
