// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package set

import "math/bits"

// Bits represents a set of integers within the range of 0..n-1,
// where n is the capacity given to NewBits.
// The zero value is an empty set with no capacity.
type Bits struct {
	words []uint64
}

// NewBits returns an empty set able to hold the integers 0..n-1.
func NewBits(n int) Bits {
	return Bits{words: make([]uint64, (n+63)/64)}
}

func (bs *Bits) Len() int {
	var n int
	for _, w := range bs.words {
		n += bits.OnesCount64(w)
	}
	return n
}
func (bs *Bits) Has(i int) bool {
	if i < 0 || i/64 >= len(bs.words) {
		return false
	}
	return bs.words[i/64]&(uint64(1)<<(uint(i)%64)) != 0
}

// Set inserts i. It panics if i is outside the capacity of the set.
func (bs *Bits) Set(i int) {
	bs.words[i/64] |= uint64(1) << (uint(i) % 64)
}
func (bs *Bits) Clear(i int) {
	if i < 0 || i/64 >= len(bs.words) {
		return
	}
	bs.words[i/64] &^= uint64(1) << (uint(i) % 64)
}

// Reset removes every element while keeping the capacity.
func (bs *Bits) Reset() {
	for i := range bs.words {
		bs.words[i] = 0
	}
}

// Equal reports whether both sets hold the same elements.
func (bs *Bits) Equal(other *Bits) bool {
	a, b := bs.words, other.words
	if len(a) < len(b) {
		a, b = b, a
	}
	for i, w := range a {
		var v uint64
		if i < len(b) {
			v = b[i]
		}
		if w != v {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (bs *Bits) Clone() Bits {
	return Bits{words: append([]uint64(nil), bs.words...)}
}
