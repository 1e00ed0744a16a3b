// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import "github.com/pbwire/pbwire/runtime/protoiface"

// Reset clears every field in the message, including unknown fields.
func Reset(m Message) {
	if c, ok := m.(protoiface.Clearer); ok {
		c.Clear()
		return
	}
	resetMessage(m)
}

func resetMessage(m Message) {
	// Clear all known fields.
	fds := m.Descriptor().Fields()
	for i := 0; i < fds.Len(); i++ {
		m.ClearField(fds.Get(i).Number())
	}

	// Clear unknown fields.
	m.SetUnknown(nil)
}
