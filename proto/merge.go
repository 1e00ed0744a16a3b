// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"github.com/pbwire/pbwire/internal/errors"
	"github.com/pbwire/pbwire/reflect/protoreflect"
)

// Merge merges src into dst, which must be messages with the same descriptor.
//
// Populated fields in src overwrite the corresponding fields in dst; bytes
// values are copied. The unknown fields of src are appended to the unknown
// fields of dst. Merging a message into itself does nothing.
func Merge(dst, src Message) error {
	if dst == src {
		return nil
	}
	if dst.Descriptor() != src.Descriptor() {
		return errors.Wrap(errors.TypeMismatch, "cannot merge %v into %v", src.Descriptor().FullName(), dst.Descriptor().FullName())
	}
	return mergeMessage(dst, src)
}

// Copy replaces the contents of dst with a copy of src.
// Copying a message onto itself does nothing.
func Copy(dst, src Message) error {
	if dst == src {
		return nil
	}
	if dst.Descriptor() != src.Descriptor() {
		return errors.Wrap(errors.TypeMismatch, "cannot copy %v into %v", src.Descriptor().FullName(), dst.Descriptor().FullName())
	}
	Reset(dst)
	return mergeMessage(dst, src)
}

func mergeMessage(dst, src Message) (err error) {
	src.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		if fd.Kind() == protoreflect.BytesKind {
			v = protoreflect.ValueOfBytes(append([]byte(nil), v.Bytes()...))
		}
		err = dst.Set(fd.Number(), v)
		return err == nil
	})
	if err != nil {
		return err
	}
	if u := src.GetUnknown(); len(u) > 0 {
		d := dst.GetUnknown()
		dst.SetUnknown(append(d[:len(d):len(d)], u...))
	}
	return nil
}
