// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prototype

import (
	"github.com/pbwire/pbwire/internal/encoding/wire"
	"github.com/pbwire/pbwire/internal/errors"
	pref "github.com/pbwire/pbwire/reflect/protoreflect"
)

func validateMessage(md *messageDesc) error {
	if !md.fullName.IsValid() {
		return errors.Wrap(errors.Schema, "message has invalid name: %q", md.fullName)
	}
	seenNames := make(map[pref.Name]bool, len(md.fields.list))
	seenNums := make(map[pref.FieldNumber]bool, len(md.fields.list))
	for i := range md.fields.list {
		fd := &md.fields.list[i]
		if !fd.name.IsValid() {
			return errors.Wrap(errors.Schema, "message %v: field %d has invalid name: %q", md.fullName, fd.number, fd.name)
		}
		if seenNames[fd.name] {
			return errors.Wrap(errors.Schema, "message %v: duplicate field name %q", md.fullName, fd.name)
		}
		seenNames[fd.name] = true
		if fd.number < wire.MinValidNumber || fd.number > wire.MaxValidNumber {
			return errors.Wrap(errors.Schema, "message %v: field %v has invalid number: %d", md.fullName, fd.name, fd.number)
		}
		if wire.FirstReservedNumber <= fd.number && fd.number <= wire.LastReservedNumber {
			return errors.Wrap(errors.Schema, "message %v: field %v uses reserved number %d", md.fullName, fd.name, fd.number)
		}
		if seenNums[fd.number] {
			return errors.Wrap(errors.Schema, "message %v: duplicate field number %d", md.fullName, fd.number)
		}
		seenNums[fd.number] = true
		if !fd.cardinality.IsValid() {
			return errors.Wrap(errors.Schema, "message %v: field %v has invalid cardinality: %d", md.fullName, fd.name, fd.cardinality)
		}
		if !fd.kind.IsValid() {
			return errors.Wrap(errors.Schema, "message %v: field %v has invalid kind: %d", md.fullName, fd.name, fd.kind)
		}
		if !fd.kind.Accepts(fd.defVal) {
			return errors.Wrap(errors.Schema, "message %v: field %v of kind %v has default of type %v", md.fullName, fd.name, fd.kind, fd.defVal.GoType())
		}
	}
	return nil
}

// Equal reports whether x and y describe the same message layout:
// the same full name and the same fields in the same order, each with
// identical name, number, cardinality, kind and default.
func Equal(x, y pref.MessageDescriptor) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil || x.FullName() != y.FullName() {
		return false
	}
	xfs, yfs := x.Fields(), y.Fields()
	if xfs.Len() != yfs.Len() {
		return false
	}
	for i := 0; i < xfs.Len(); i++ {
		xf, yf := xfs.Get(i), yfs.Get(i)
		switch {
		case xf.Name() != yf.Name(),
			xf.Number() != yf.Number(),
			xf.Cardinality() != yf.Cardinality(),
			xf.Kind() != yf.Kind(),
			xf.HasDefault() != yf.HasDefault(),
			!xf.Default().Equal(yf.Default()):
			return false
		}
	}
	return true
}
