// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proto provides functions operating on protocol buffer messages.
//
// Messages are described at runtime by a protoreflect.MessageDescriptor.
// Marshal and Unmarshal convert between messages and the binary wire format;
// Merge, Copy, Clone, Reset and Equal combine and compare messages.
//
// Every error returned by this package matches exactly one of the
// Err sentinels below when tested with errors.Is.
package proto

import (
	"github.com/go-kit/log"

	"github.com/pbwire/pbwire/internal/errors"
	"github.com/pbwire/pbwire/reflect/protoreflect"
)

// Message is the top-level interface that all messages must implement.
type Message = protoreflect.Message

var (
	// ErrSchema reports an invalid message descriptor.
	ErrSchema = errors.Schema

	// ErrConflict reports a re-registration of a message name with a
	// different layout.
	ErrConflict = errors.Conflict

	// ErrTypeMismatch reports a value whose Go type disagrees with the
	// field's kind, an unknown field number, or an operation on two
	// messages with different descriptors.
	ErrTypeMismatch = errors.TypeMismatch

	// ErrParse reports malformed or truncated wire-format data.
	ErrParse = errors.Parse

	// ErrEncoding reports a string field holding invalid UTF-8.
	ErrEncoding = errors.Encoding

	// ErrIncomplete reports unset required fields.
	ErrIncomplete = errors.Incomplete
)

func logger(l log.Logger) log.Logger {
	if l == nil {
		return log.NewNopLogger()
	}
	return l
}
