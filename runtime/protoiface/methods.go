// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protoiface contains optional interfaces that message
// implementations may provide to speed up operations in package proto.
package protoiface

// SizeCacher is implemented by messages that memoize their encoded size.
//
// Package proto consults CachedSize before walking a message and stores the
// result of a walk with SetCachedSize. The implementation must invalidate
// the cached value whenever the message is mutated.
type SizeCacher interface {
	// CachedSize returns the size stored by the last SetCachedSize and
	// reports whether it is still valid.
	CachedSize() (size int, ok bool)

	// SetCachedSize records size as the encoded size of the current state.
	// It is safe to call concurrently with CachedSize.
	SetCachedSize(size int)
}

// Clearer is implemented by messages that can return to their
// just-constructed state faster than clearing field by field.
type Clearer interface {
	Clear()
}
