// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire parses and formats the protobuf wire encoding.
//
// The primitives are provided by protowire; this package pins down the
// subset the codec relies on and maps negative consume lengths to
// parse errors of this module.
package wire

import (
	"strings"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/pbwire/pbwire/internal/errors"
)

// Number represents the field number.
type Number = protowire.Number

const (
	MinValidNumber      Number = protowire.MinValidNumber
	FirstReservedNumber Number = protowire.FirstReservedNumber
	LastReservedNumber  Number = protowire.LastReservedNumber
	MaxValidNumber      Number = protowire.MaxValidNumber
)

// Type represents the wire type.
type Type = protowire.Type

const (
	VarintType     Type = protowire.VarintType
	Fixed32Type    Type = protowire.Fixed32Type
	Fixed64Type    Type = protowire.Fixed64Type
	BytesType      Type = protowire.BytesType
	StartGroupType Type = protowire.StartGroupType
	EndGroupType   Type = protowire.EndGroupType
)

// MaxVarintLen is the maximum length of a varint-encoded uint64.
const MaxVarintLen = 10

// ParseError converts an error code from one of the Consume functions
// into an error of class errors.Parse.
func ParseError(n int) error {
	if n >= 0 {
		return nil
	}
	s := strings.TrimPrefix(protowire.ParseError(n).Error(), "proto: ")
	return errors.Wrap(errors.Parse, "%v", s)
}

// AppendTag encodes num and typ as a varint-encoded tag and appends it to b.
func AppendTag(b []byte, num Number, typ Type) []byte {
	return protowire.AppendTag(b, num, typ)
}

// ConsumeTag parses b as a varint-encoded tag, reporting its length.
// This returns a negative length upon an error (see ParseError).
// Field numbers outside 1..MaxValidNumber are an error.
func ConsumeTag(b []byte) (Number, Type, int) {
	num, typ, n := protowire.ConsumeTag(b)
	if n >= 0 && num > MaxValidNumber {
		return 0, 0, errCodeFieldNumber
	}
	return num, typ, n
}

// errCodeFieldNumber is the error code protowire uses for invalid
// field numbers.
const errCodeFieldNumber = -2

// SizeTag returns the size of the encoded tag for num:
// one byte for numbers below 16, more for larger ones.
func SizeTag(num Number) int {
	return protowire.SizeTag(num)
}

// AppendVarint appends v to b as a varint-encoded uint64.
func AppendVarint(b []byte, v uint64) []byte {
	return protowire.AppendVarint(b, v)
}

// ConsumeVarint parses b as a varint-encoded uint64, reporting its length.
// This returns a negative length upon an error (see ParseError).
func ConsumeVarint(b []byte) (uint64, int) {
	return protowire.ConsumeVarint(b)
}

// SizeVarint returns the encoded size of a varint.
// The size is guaranteed to be within 1 and 10, inclusive.
func SizeVarint(v uint64) int {
	return protowire.SizeVarint(v)
}

// AppendFixed32 appends v to b as a little-endian uint32.
func AppendFixed32(b []byte, v uint32) []byte {
	return protowire.AppendFixed32(b, v)
}

// ConsumeFixed32 parses b as a little-endian uint32, reporting its length.
func ConsumeFixed32(b []byte) (uint32, int) {
	return protowire.ConsumeFixed32(b)
}

// AppendFixed64 appends v to b as a little-endian uint64.
func AppendFixed64(b []byte, v uint64) []byte {
	return protowire.AppendFixed64(b, v)
}

// ConsumeFixed64 parses b as a little-endian uint64, reporting its length.
func ConsumeFixed64(b []byte) (uint64, int) {
	return protowire.ConsumeFixed64(b)
}

// SizeFixed32 returns the encoded size of a fixed32; which is always 4.
func SizeFixed32() int { return 4 }

// SizeFixed64 returns the encoded size of a fixed64; which is always 8.
func SizeFixed64() int { return 8 }

// AppendBytes appends v to b as a length-prefixed bytes value.
func AppendBytes(b []byte, v []byte) []byte {
	return protowire.AppendBytes(b, v)
}

// AppendString appends v to b as a length-prefixed bytes value.
func AppendString(b []byte, v string) []byte {
	return protowire.AppendString(b, v)
}

// ConsumeBytes parses b as a length-prefixed bytes value, reporting its length.
// The returned slice aliases b.
func ConsumeBytes(b []byte) ([]byte, int) {
	return protowire.ConsumeBytes(b)
}

// SizeBytes returns the encoded size of a length-prefixed bytes value,
// given only the length.
func SizeBytes(n int) int {
	return protowire.SizeBytes(n)
}

// ConsumeFieldValue parses a field value of the given wire type and reports
// its length. A start group is consumed through its matching end group.
// An end group on its own is an error; callers that treat a top-level end
// group as a terminator check for it before calling this.
func ConsumeFieldValue(num Number, typ Type, b []byte) int {
	return protowire.ConsumeFieldValue(num, typ, b)
}

func EncodeZigZag(v int64) uint64 { return protowire.EncodeZigZag(v) }
func DecodeZigZag(x uint64) int64 { return protowire.DecodeZigZag(x) }
func EncodeBool(v bool) uint64    { return protowire.EncodeBool(v) }
func DecodeBool(x uint64) bool    { return protowire.DecodeBool(x) }
