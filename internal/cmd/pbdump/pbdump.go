// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pbwire/pbwire/internal/encoding/wire"
	"github.com/pbwire/pbwire/reflect/protoreflect"
	"github.com/pbwire/pbwire/reflect/prototype"
)

// inlineMessage names the message built from field list flags.
const inlineMessage = "pbdump.M"

// fieldsFlagType is the pflag type name of every field list flag.
const fieldsFlagType = "fields"

// fields maps field numbers to kinds, as given by the field list flags.
type fields map[wire.Number]protoreflect.Kind

// Set parses s as a comma-separated list of field numbers and treats each
// field as the specified kind.
func (fs *fields) Set(s string, k protoreflect.Kind) error {
	if *fs == nil {
		*fs = make(fields)
	}
	for _, s := range strings.Split(s, ",") {
		if err := fs.set(strings.TrimSpace(s), k); err != nil {
			return err
		}
	}
	return nil
}

func (fs fields) set(s string, k protoreflect.Kind) error {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	num := wire.Number(n)
	if err != nil || num < wire.MinValidNumber || wire.MaxValidNumber < num {
		return fmt.Errorf("invalid field: %v", s)
	}
	if prev, ok := fs[num]; ok {
		return fmt.Errorf("field %v already set as %v type", num, prev)
	}
	fs[num] = k
	return nil
}

// Descriptor returns the field list as a message descriptor.
// Field n is named "f<n>" and is optional.
func (fs fields) Descriptor() (protoreflect.MessageDescriptor, error) {
	return prototype.NewMessage(fs.message(inlineMessage))
}

func (fs fields) message(name protoreflect.FullName) *prototype.Message {
	m := &prototype.Message{FullName: name}
	for _, n := range fs.sortedNums() {
		m.Fields = append(m.Fields, prototype.Field{
			Name:        protoreflect.Name(fmt.Sprintf("f%d", n)),
			Number:      n,
			Cardinality: protoreflect.Optional,
			Kind:        fs[n],
		})
	}
	return m
}

func (fs fields) sortedNums() (ns []wire.Number) {
	for n := range fs {
		ns = append(ns, n)
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i] < ns[j] })
	return ns
}

// kindFlag is a pflag.Value adding the numbers it is given to a shared
// field list with a fixed kind.
type kindFlag struct {
	fs   *fields
	kind protoreflect.Kind
}

func (p kindFlag) Set(s string) error { return p.fs.Set(s, p.kind) }
func (p kindFlag) Type() string       { return fieldsFlagType }

// String lists the field numbers of this flag's kind.
func (p kindFlag) String() string {
	var ss []string
	for _, n := range p.fs.sortedNums() {
		if (*p.fs)[n] == p.kind {
			ss = append(ss, strconv.Itoa(int(n)))
		}
	}
	return strings.Join(ss, ",")
}

// registerFieldFlags registers one field list flag per kind.
func registerFieldFlags(f *pflag.FlagSet, fs *fields) {
	for _, fl := range []struct {
		name  string
		kind  protoreflect.Kind
		usage string
	}{
		{"bools", protoreflect.BoolKind, "List of bool fields"},
		{"ints", protoreflect.Int64Kind, "List of int32 or int64 fields"},
		{"sints", protoreflect.Sint64Kind, "List of sint32 or sint64 fields"},
		{"uints", protoreflect.Uint64Kind, "List of enum, uint32, or uint64 fields"},
		{"uint32s", protoreflect.Fixed32Kind, "List of fixed32 fields"},
		{"int32s", protoreflect.Sfixed32Kind, "List of sfixed32 fields"},
		{"float32s", protoreflect.FloatKind, "List of float fields"},
		{"uint64s", protoreflect.Fixed64Kind, "List of fixed64 fields"},
		{"int64s", protoreflect.Sfixed64Kind, "List of sfixed64 fields"},
		{"float64s", protoreflect.DoubleKind, "List of double fields"},
		{"strings", protoreflect.StringKind, "List of string fields"},
		{"bytes", protoreflect.BytesKind, "List of bytes fields"},
	} {
		f.Var(kindFlag{fs: fs, kind: fl.kind}, fl.name, fl.usage+". Describes the message inline instead of --schema.")
	}
}
