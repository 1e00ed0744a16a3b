// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protodesc

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pbwire/pbwire/internal/encoding/defval"
	"github.com/pbwire/pbwire/reflect/protoreflect"
	"github.com/pbwire/pbwire/reflect/protoregistry"
)

// ToMessageTable converts a MessageDescriptor to a MessageTable.
func ToMessageTable(message protoreflect.MessageDescriptor) *MessageTable {
	p := &MessageTable{Name: string(message.FullName())}
	for i, fields := 0, message.Fields(); i < fields.Len(); i++ {
		p.Fields = append(p.Fields, ToFieldTable(fields.Get(i)))
	}
	return p
}

// ToFieldTable converts a FieldDescriptor to a FieldTable.
func ToFieldTable(field protoreflect.FieldDescriptor) *FieldTable {
	p := &FieldTable{
		Number: int32(field.Number()),
		Name:   string(field.Name()),
		Kind:   field.Kind().String(),
	}
	if field.Cardinality() == protoreflect.Required {
		p.Cardinality = "required"
	}
	if field.HasDefault() {
		// The default was validated against the kind when the
		// descriptor was built, so this cannot fail.
		def, _ := defval.Marshal(field.Default(), field.Kind())
		p.Default = &def
	}
	return p
}

// ToSchema converts every message in reg to a Schema, ordered by full name.
func ToSchema(reg *protoregistry.Types) *Schema {
	s := new(Schema)
	reg.Range(func(md protoreflect.MessageDescriptor) bool {
		s.Messages = append(s.Messages, ToMessageTable(md))
		return true
	})
	return s
}

// Write writes the schema document for every message in reg to w.
// The output is accepted by Load.
func Write(w io.Writer, reg *protoregistry.Types) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToSchema(reg)); err != nil {
		return err
	}
	return enc.Close()
}
