// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protoregistry provides a data structure to register and lookup
// message descriptors.
//
// There is no process-wide registry. An application constructs one Types
// value at its composition root, registers every message it knows about,
// calls Freeze and then shares the registry by reference.
package protoregistry

import (
	"sort"
	"sync"

	"github.com/pbwire/pbwire/internal/errors"
	pref "github.com/pbwire/pbwire/reflect/protoreflect"
	"github.com/pbwire/pbwire/reflect/prototype"
)

// NotFound is a sentinel error value to indicate that the type was not found.
var NotFound = errors.New("not found")

// Types is a registry for looking up or iterating over message descriptors.
//
// All methods are safe for concurrent use. After Freeze the registry is
// read-only, so descriptors obtained from it may be shared freely.
type Types struct {
	mu       sync.RWMutex
	frozen   bool
	messages map[pref.FullName]pref.MessageDescriptor
}

// NewTypes returns a registry initialized with the provided descriptors.
// It reports the first registration error encountered.
func NewTypes(mds ...pref.MessageDescriptor) (*Types, error) {
	r := new(Types)
	for _, md := range mds {
		if _, err := r.RegisterMessage(md); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register builds a message descriptor named name from the given fields and
// registers it.
//
// Registration is idempotent: if a structurally identical message is already
// registered under the same name, the existing descriptor is returned.
// A structurally different one results in a conflict error.
func (r *Types) Register(name pref.FullName, fields ...prototype.Field) (pref.MessageDescriptor, error) {
	md, err := prototype.NewMessage(&prototype.Message{FullName: name, Fields: fields})
	if err != nil {
		return nil, err
	}
	return r.RegisterMessage(md)
}

// RegisterMessage registers a pre-built message descriptor.
// It follows the same rules as Register.
func (r *Types) RegisterMessage(md pref.MessageDescriptor) (pref.MessageDescriptor, error) {
	if md == nil {
		return nil, errors.Wrap(errors.Schema, "cannot register nil message descriptor")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return nil, errors.Wrap(errors.Conflict, "registry is frozen: cannot register %v", md.FullName())
	}
	name := md.FullName()
	if prev := r.messages[name]; prev != nil {
		if prototype.Equal(prev, md) {
			return prev, nil
		}
		return nil, errors.Wrap(errors.Conflict, "message %v is already registered with a different layout", name)
	}
	if r.messages == nil {
		r.messages = make(map[pref.FullName]pref.MessageDescriptor)
	}
	r.messages[name] = md
	return md, nil
}

// Freeze stops further registration.
func (r *Types) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (r *Types) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// FindMessageByName looks up a message descriptor by its full name.
// This returns (nil, NotFound) if not found.
func (r *Types) FindMessageByName(name pref.FullName) (pref.MessageDescriptor, error) {
	if r == nil {
		return nil, NotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if md := r.messages[name]; md != nil {
		return md, nil
	}
	return nil, NotFound
}

// Len reports the number of registered messages.
func (r *Types) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages)
}

// Range calls f for every registered message in order of full name.
// Iteration stops if f returns false.
func (r *Types) Range(f func(pref.MessageDescriptor) bool) {
	if r == nil {
		return
	}
	r.mu.RLock()
	names := make([]pref.FullName, 0, len(r.messages))
	for name := range r.messages {
		names = append(names, name)
	}
	mds := make([]pref.MessageDescriptor, 0, len(names))
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	for _, name := range names {
		mds = append(mds, r.messages[name])
	}
	r.mu.RUnlock()

	for _, md := range mds {
		if !f(md) {
			return
		}
	}
}

// FindField looks up the field numbered n in md.
// This returns (nil, NotFound) if md declares no such field.
func FindField(md pref.MessageDescriptor, n pref.FieldNumber) (pref.FieldDescriptor, error) {
	if fd := md.Fields().ByNumber(n); fd != nil {
		return fd, nil
	}
	return nil, NotFound
}
