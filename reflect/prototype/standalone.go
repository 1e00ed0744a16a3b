// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prototype provides constructors for message descriptors.
//
// Descriptors are validated when constructed and are immutable afterwards,
// which makes them safe for concurrent use without synchronization.
package prototype

import (
	"github.com/pbwire/pbwire/internal/pragma"
	pref "github.com/pbwire/pbwire/reflect/protoreflect"
)

// Message is a constructor for a protoreflect.MessageDescriptor
// that does not have a parent and has no child declarations.
type Message struct {
	FullName pref.FullName
	Fields   []Field
}

// Field is a constructor for protoreflect.FieldDescriptor.
// A zero Cardinality means optional and an invalid Default means
// the zero value of the field's kind.
type Field struct {
	Name        pref.Name
	Number      pref.FieldNumber
	Cardinality pref.Cardinality
	Kind        pref.Kind
	Default     pref.Value
}

// NewMessage creates a new protoreflect.MessageDescriptor.
// The input is copied; later changes to t do not affect the descriptor.
func NewMessage(t *Message) (pref.MessageDescriptor, error) {
	md := &messageDesc{fullName: t.FullName}
	md.fields.list = make([]fieldDesc, len(t.Fields))
	for i, f := range t.Fields {
		fd := &md.fields.list[i]
		fd.parent = md
		fd.index = i
		fd.name = f.Name
		fd.number = f.Number
		fd.cardinality = f.Cardinality
		if fd.cardinality == 0 {
			fd.cardinality = pref.Optional
		}
		fd.kind = f.Kind
		fd.hasDefault = f.Default.IsValid()
		fd.defVal = f.Default
		if f.Kind == pref.BytesKind && fd.hasDefault && pref.BytesKind.Accepts(f.Default) {
			fd.defVal = pref.ValueOfBytes(append([]byte(nil), f.Default.Bytes()...))
		}
		if !fd.hasDefault {
			fd.defVal = f.Kind.Zero()
		}
	}
	if err := validateMessage(md); err != nil {
		return nil, err
	}
	md.fields.init()
	for i := range md.fields.list {
		if fd := &md.fields.list[i]; fd.cardinality == pref.Required {
			md.required.ns = append(md.required.ns, fd.number)
		}
	}
	return md, nil
}

type messageDesc struct {
	fullName pref.FullName
	fields   fieldDescs
	required numbers
}

func (md *messageDesc) Index() int                          { return 0 }
func (md *messageDesc) Name() pref.Name                     { return md.fullName.Name() }
func (md *messageDesc) FullName() pref.FullName             { return md.fullName }
func (md *messageDesc) Fields() pref.FieldDescriptors       { return &md.fields }
func (md *messageDesc) RequiredNumbers() pref.FieldNumbers  { return &md.required }
func (md *messageDesc) ProtoType(pref.MessageDescriptor)    {}
func (md *messageDesc) ProtoInternal(pragma.DoNotImplement) {}
func (md *messageDesc) String() string                      { return formatMessage(md) }

type fieldDesc struct {
	parent      *messageDesc
	index       int
	name        pref.Name
	number      pref.FieldNumber
	cardinality pref.Cardinality
	kind        pref.Kind
	hasDefault  bool
	defVal      pref.Value
}

func (fd *fieldDesc) Index() int                                { return fd.index }
func (fd *fieldDesc) Name() pref.Name                           { return fd.name }
func (fd *fieldDesc) FullName() pref.FullName                   { return fd.parent.fullName.Append(fd.name) }
func (fd *fieldDesc) Number() pref.FieldNumber                  { return fd.number }
func (fd *fieldDesc) Cardinality() pref.Cardinality             { return fd.cardinality }
func (fd *fieldDesc) Kind() pref.Kind                           { return fd.kind }
func (fd *fieldDesc) HasDefault() bool                          { return fd.hasDefault }
func (fd *fieldDesc) Default() pref.Value                       { return fd.defVal }
func (fd *fieldDesc) ContainingMessage() pref.MessageDescriptor { return fd.parent }
func (fd *fieldDesc) ProtoType(pref.FieldDescriptor)            {}
func (fd *fieldDesc) ProtoInternal(pragma.DoNotImplement)       {}
func (fd *fieldDesc) String() string                            { return formatField(fd) }
