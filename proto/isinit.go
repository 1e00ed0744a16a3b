// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"github.com/pbwire/pbwire/internal/errors"
)

// IsInitialized returns an error if any required fields in m are not set.
// The error lists every missing field in declaration order and matches
// ErrIncomplete.
func IsInitialized(m Message) error {
	md := m.Descriptor()
	fields := md.Fields()
	var nerr errors.NonFatal
	for i, nums := 0, md.RequiredNumbers(); i < nums.Len(); i++ {
		num := nums.Get(i)
		if !m.Has(num) {
			nerr.AppendRequiredNotSet(string(fields.ByNumber(num).Name()))
		}
	}
	return nerr.E
}
