// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prototype

import (
	"github.com/pbwire/pbwire/internal/pragma"
	pref "github.com/pbwire/pbwire/reflect/protoreflect"
)

type fieldDescs struct {
	list     []fieldDesc
	byName   map[pref.Name]*fieldDesc
	byNumber map[pref.FieldNumber]*fieldDesc
}

func (p *fieldDescs) init() {
	p.byName = make(map[pref.Name]*fieldDesc, len(p.list))
	p.byNumber = make(map[pref.FieldNumber]*fieldDesc, len(p.list))
	for i := range p.list {
		fd := &p.list[i]
		p.byName[fd.name] = fd
		p.byNumber[fd.number] = fd
	}
}
func (p *fieldDescs) Len() int                       { return len(p.list) }
func (p *fieldDescs) Get(i int) pref.FieldDescriptor { return &p.list[i] }
func (p *fieldDescs) ByName(s pref.Name) pref.FieldDescriptor {
	if fd := p.byName[s]; fd != nil {
		return fd
	}
	return nil
}
func (p *fieldDescs) ByNumber(n pref.FieldNumber) pref.FieldDescriptor {
	if fd := p.byNumber[n]; fd != nil {
		return fd
	}
	return nil
}
func (p *fieldDescs) ProtoInternal(pragma.DoNotImplement) {}

type numbers struct {
	ns []pref.FieldNumber
}

func (p *numbers) Len() int                   { return len(p.ns) }
func (p *numbers) Get(i int) pref.FieldNumber { return p.ns[i] }
func (p *numbers) Has(n pref.FieldNumber) bool {
	for _, x := range p.ns {
		if x == n {
			return true
		}
	}
	return false
}
func (p *numbers) ProtoInternal(pragma.DoNotImplement) {}
