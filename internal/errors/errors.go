// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors implements functions to manipulate errors.
//
// Every error produced by this module carries the "proto: " prefix and,
// when it belongs to one of the error classes below, reports that class
// through errors.Is.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes. Each error returned by the module matches at most one.
var (
	Schema       = New("invalid schema")
	Conflict     = New("conflicting registration")
	TypeMismatch = New("type mismatch")
	Parse        = New("cannot parse invalid wire-format data")
	Encoding     = New("invalid encoding")
	Incomplete   = New("required fields not set")
)

// New formats a string according to the format specifier and arguments and
// returns an error that has a "proto" prefix.
func New(f string, x ...interface{}) error {
	for i := 0; i < len(x); i++ {
		if e, ok := x[i].(*prefixError); ok {
			x[i] = e.s // avoid "proto: " prefix when chaining
		}
		if e, ok := x[i].(*classError); ok {
			x[i] = e.s
		}
	}
	return &prefixError{s: fmt.Sprintf(f, x...)}
}

type prefixError struct{ s string }

func (e *prefixError) Error() string { return "proto: " + e.s }

// Wrap returns an error of the given class with a formatted message.
// The class must be one of the variables declared in this package.
func Wrap(class error, f string, x ...interface{}) error {
	s := New(f, x...).(*prefixError).s
	return &classError{class: class, s: s}
}

type classError struct {
	class error
	s     string
}

func (e *classError) Error() string { return "proto: " + e.s }

func (e *classError) Is(target error) bool { return target == e.class }

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

func InvalidUTF8(name string) error {
	return Wrap(Encoding, "field %v contains invalid UTF-8", name)
}

// RequiredNotSet reports the names of unset required fields.
func RequiredNotSet(names ...string) error {
	if len(names) == 1 {
		return Wrap(Incomplete, "required field %v not set", names[0])
	}
	return Wrap(Incomplete, "required fields %v not set", strings.Join(names, ", "))
}

// NonFatal contains non-fatal errors, which are errors that permit execution
// to continue, but should return with a non-nil error. As such, NonFatal is
// a data structure useful for swallowing non-fatal errors, but being able to
// reproduce them at the end of the function.
// An error is non-fatal if it reports unset required fields.
type NonFatal struct {
	E error

	missing []string
}

// Merge merges err into nf and reports whether it was successful.
// Otherwise it returns false for any fatal non-nil errors.
func (nf *NonFatal) Merge(err error) (ok bool) {
	if err == nil {
		return true // not an error
	}
	if isNonFatal(err) {
		if nf.E == nil {
			nf.E = err
		}
		return true
	}
	return false // fatal error
}

func isNonFatal(err error) bool {
	return errors.Is(err, Incomplete)
}

// AppendRequiredNotSet records the name of an unset required field.
// Names accumulate into a single IncompleteMessage error.
func (nf *NonFatal) AppendRequiredNotSet(name string) {
	nf.missing = append(nf.missing, name)
	nf.E = RequiredNotSet(nf.missing...)
}
