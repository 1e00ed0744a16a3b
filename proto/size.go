// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"github.com/pbwire/pbwire/internal/encoding/wire"
	"github.com/pbwire/pbwire/reflect/protoreflect"
	"github.com/pbwire/pbwire/runtime/protoiface"
)

// Size returns the size in bytes of the wire-format encoding of m.
func Size(m Message) int {
	return MarshalOptions{}.Size(m)
}

// Size returns the size in bytes of the wire-format encoding of m.
//
// If m implements protoiface.SizeCacher, a valid cached size is returned
// without walking the message and a computed size is stored in the cache.
func (o MarshalOptions) Size(m Message) int {
	c, ok := m.(protoiface.SizeCacher)
	if !ok {
		return sizeMessage(m)
	}
	if size, ok := c.CachedSize(); ok {
		return size
	}
	size := sizeMessage(m)
	c.SetCachedSize(size)
	return size
}

func sizeMessage(m Message) (size int) {
	m.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		size += wire.SizeTag(fd.Number()) + sizeSingular(fd.Kind(), v)
		return true
	})
	return size + len(m.GetUnknown())
}
