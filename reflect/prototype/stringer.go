// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prototype

import (
	"fmt"
	"strings"

	pref "github.com/pbwire/pbwire/reflect/protoreflect"
)

// formatMessage prints a descriptor in a human readable way, e.g.
//
//	game.Login{required int32 a = 1; optional string c = 3 [default = "x"]}
func formatMessage(md *messageDesc) string {
	var b strings.Builder
	b.WriteString(string(md.fullName))
	b.WriteByte('{')
	for i := range md.fields.list {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(formatField(&md.fields.list[i]))
	}
	b.WriteByte('}')
	return b.String()
}

func formatField(fd *fieldDesc) string {
	s := fmt.Sprintf("%v %v %v = %d", fd.cardinality, fd.kind, fd.name, fd.number)
	if fd.hasDefault {
		switch fd.kind {
		case pref.StringKind:
			s += fmt.Sprintf(" [default = %q]", fd.defVal.String())
		case pref.BytesKind:
			s += fmt.Sprintf(" [default = %q]", fd.defVal.Bytes())
		default:
			s += fmt.Sprintf(" [default = %v]", fd.defVal)
		}
	}
	return s
}
