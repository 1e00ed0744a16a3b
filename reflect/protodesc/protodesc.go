// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protodesc converts schema tables to and from the reflective
// protoreflect.MessageDescriptor.
//
// A schema table is a YAML document listing messages and their fields:
//
//	messages:
//	  - name: example.Login
//	    fields:
//	      - {number: 1, name: vtype, kind: int32, cardinality: required}
//	      - {number: 7, name: deviceid, kind: string, default: "none"}
//
// Kinds use their lower-case names. A missing cardinality means optional.
// Defaults use the textual form of package defval; bytes defaults are
// C-escaped.
package protodesc

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pbwire/pbwire/internal/encoding/defval"
	"github.com/pbwire/pbwire/internal/errors"
	"github.com/pbwire/pbwire/reflect/protoreflect"
	"github.com/pbwire/pbwire/reflect/protoregistry"
	"github.com/pbwire/pbwire/reflect/prototype"
)

// Schema is the document form of a set of message descriptors.
type Schema struct {
	Messages []*MessageTable `yaml:"messages"`
}

// MessageTable describes a single message.
type MessageTable struct {
	Name   string        `yaml:"name"`
	Fields []*FieldTable `yaml:"fields"`
}

// FieldTable describes a single field of a message.
type FieldTable struct {
	Number      int32   `yaml:"number"`
	Name        string  `yaml:"name"`
	Kind        string  `yaml:"kind"`
	Cardinality string  `yaml:"cardinality,omitempty"`
	Default     *string `yaml:"default,omitempty"`
}

// NewMessage creates a new protoreflect.MessageDescriptor from the provided
// table. The table must describe a valid message.
func NewMessage(mt *MessageTable) (protoreflect.MessageDescriptor, error) {
	m := prototype.Message{FullName: protoreflect.FullName(mt.Name)}
	for _, ft := range mt.Fields {
		var f prototype.Field
		f.Name = protoreflect.Name(ft.Name)
		f.Number = protoreflect.FieldNumber(ft.Number)

		k, ok := protoreflect.KindByName(ft.Kind)
		if !ok {
			return nil, errors.Wrap(errors.Schema, "message %v: field %v has unknown kind %q", mt.Name, ft.Name, ft.Kind)
		}
		f.Kind = k

		switch ft.Cardinality {
		case "", "optional":
			f.Cardinality = protoreflect.Optional
		case "required":
			f.Cardinality = protoreflect.Required
		default:
			return nil, errors.Wrap(errors.Schema, "message %v: field %v has unknown cardinality %q", mt.Name, ft.Name, ft.Cardinality)
		}

		if ft.Default != nil {
			v, err := defval.Unmarshal(*ft.Default, k)
			if err != nil {
				return nil, errors.Wrap(errors.Schema, "message %v: field %v: %v", mt.Name, ft.Name, err)
			}
			f.Default = v
		}
		m.Fields = append(m.Fields, f)
	}
	return prototype.NewMessage(&m)
}

// Load reads a schema document from r and registers every message in reg.
//
// All messages are validated before any is registered, so a malformed
// document leaves reg untouched. Registration conflicts may still leave
// earlier messages of the document registered.
func Load(r io.Reader, reg *protoregistry.Types) error {
	var s Schema
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return errors.Wrap(errors.Schema, "invalid schema document: %v", err)
	}

	mds := make([]protoreflect.MessageDescriptor, 0, len(s.Messages))
	for _, mt := range s.Messages {
		md, err := NewMessage(mt)
		if err != nil {
			return err
		}
		mds = append(mds, md)
	}
	for _, md := range mds {
		if _, err := reg.RegisterMessage(md); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile is like Load but reads the document from the named file.
func LoadFile(path string, reg *protoregistry.Types) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Load(f, reg)
}
