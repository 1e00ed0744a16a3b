// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

// Clone returns a deep copy of m.
// If the top-level message is nil, it returns nil.
func Clone(m Message) Message {
	if m == nil {
		return nil
	}
	dst := m.New()
	// The descriptors are identical, so merging cannot fail.
	mergeMessage(dst, m)
	return dst
}
