// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"bytes"

	pref "github.com/pbwire/pbwire/reflect/protoreflect"
	"github.com/pbwire/pbwire/reflect/prototype"
)

// Equal reports whether two messages are equal.
//
// Two messages are equal if they have structurally identical descriptors,
// the same set of populated fields with equal values, and byte-identical
// unknown fields. Floating-point values are compared by bit pattern.
func Equal(a, b Message) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return equalMessage(a, b)
}

// equalMessage compares two messages.
func equalMessage(a, b pref.Message) bool {
	mda, mdb := a.Descriptor(), b.Descriptor()
	if mda != mdb && !prototype.Equal(mda, mdb) {
		return false
	}

	fields := mda.Fields()
	for i, flen := 0, fields.Len(); i < flen; i++ {
		num := fields.Get(i).Number()
		hasa, hasb := a.Has(num), b.Has(num)
		if !hasa && !hasb {
			continue
		}
		if hasa != hasb || !a.Get(num).Equal(b.Get(num)) {
			return false
		}
	}
	return bytes.Equal(a.GetUnknown(), b.GetUnknown())
}
