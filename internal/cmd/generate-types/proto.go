// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "text/template"

type WireType string

const (
	WireVarint  WireType = "Varint"
	WireFixed32 WireType = "Fixed32"
	WireFixed64 WireType = "Fixed64"
	WireBytes   WireType = "Bytes"
)

func (w WireType) Expr() Expr {
	return "wire." + Expr(w) + "Type"
}

// ConstSize reports whether every value of the wire type has the same size.
func (w WireType) ConstSize() bool {
	return w == WireFixed32 || w == WireFixed64
}

type ProtoKind struct {
	Name     string
	WireType WireType

	// ToValue converts the decoded wire value v into a protoreflect.Value.
	ToValue Expr

	// FromValue converts the protoreflect.Value v into the argument of the
	// wire package's Append and Size functions.
	FromValue Expr
}

func (k ProtoKind) Expr() Expr {
	return "protoreflect." + Expr(k.Name) + "Kind"
}

// AppendFunc is the wire package function that appends the value.
func (k ProtoKind) AppendFunc() Expr {
	if k.Name == "String" {
		return "wire.AppendString"
	}
	return "wire.Append" + Expr(k.WireType)
}

var ProtoKinds = []ProtoKind{
	{
		Name:      "Bool",
		WireType:  WireVarint,
		ToValue:   "protoreflect.ValueOfBool(wire.DecodeBool(v))",
		FromValue: "wire.EncodeBool(v.Bool())",
	},
	{
		Name:      "Enum",
		WireType:  WireVarint,
		ToValue:   "protoreflect.ValueOfInt32(int32(v))",
		FromValue: "uint64(v.Int())",
	},
	{
		Name:      "Int32",
		WireType:  WireVarint,
		ToValue:   "protoreflect.ValueOfInt32(int32(v))",
		FromValue: "uint64(v.Int())",
	},
	{
		Name:      "Sint32",
		WireType:  WireVarint,
		ToValue:   "protoreflect.ValueOfInt32(int32(wire.DecodeZigZag(v & math.MaxUint32)))",
		FromValue: "wire.EncodeZigZag(v.Int())",
	},
	{
		Name:      "Uint32",
		WireType:  WireVarint,
		ToValue:   "protoreflect.ValueOfUint32(uint32(v))",
		FromValue: "v.Uint()",
	},
	{
		Name:      "Int64",
		WireType:  WireVarint,
		ToValue:   "protoreflect.ValueOfInt64(int64(v))",
		FromValue: "uint64(v.Int())",
	},
	{
		Name:      "Sint64",
		WireType:  WireVarint,
		ToValue:   "protoreflect.ValueOfInt64(wire.DecodeZigZag(v))",
		FromValue: "wire.EncodeZigZag(v.Int())",
	},
	{
		Name:      "Uint64",
		WireType:  WireVarint,
		ToValue:   "protoreflect.ValueOfUint64(v)",
		FromValue: "v.Uint()",
	},
	{
		Name:      "Sfixed32",
		WireType:  WireFixed32,
		ToValue:   "protoreflect.ValueOfInt32(int32(v))",
		FromValue: "uint32(v.Int())",
	},
	{
		Name:      "Fixed32",
		WireType:  WireFixed32,
		ToValue:   "protoreflect.ValueOfUint32(v)",
		FromValue: "uint32(v.Uint())",
	},
	{
		Name:      "Float",
		WireType:  WireFixed32,
		ToValue:   "protoreflect.ValueOfFloat32(math.Float32frombits(v))",
		FromValue: "math.Float32bits(float32(v.Float()))",
	},
	{
		Name:      "Sfixed64",
		WireType:  WireFixed64,
		ToValue:   "protoreflect.ValueOfInt64(int64(v))",
		FromValue: "uint64(v.Int())",
	},
	{
		Name:      "Fixed64",
		WireType:  WireFixed64,
		ToValue:   "protoreflect.ValueOfUint64(v)",
		FromValue: "v.Uint()",
	},
	{
		Name:      "Double",
		WireType:  WireFixed64,
		ToValue:   "protoreflect.ValueOfFloat64(math.Float64frombits(v))",
		FromValue: "math.Float64bits(v.Float())",
	},
	{
		Name:      "String",
		WireType:  WireBytes,
		ToValue:   "protoreflect.ValueOfString(string(v))",
		FromValue: "v.String()",
	},
	{
		Name:      "Bytes",
		WireType:  WireBytes,
		ToValue:   "protoreflect.ValueOfBytes(append(([]byte)(nil), v...))",
		FromValue: "v.Bytes()",
	},
}

func generateProtoCodec() string {
	return mustExecute(protoCodecTemplate, ProtoKinds)
}

var protoCodecTemplate = template.Must(template.New("").Parse(`
// sizeSingular returns the size of v encoded as the given kind,
// excluding the tag.
func sizeSingular(kind protoreflect.Kind, v protoreflect.Value) int {
	switch kind {
	{{- range .}}
	case {{.Expr}}:
		{{- if .WireType.ConstSize}}
		return wire.Size{{.WireType}}()
		{{- else if eq .WireType "Bytes"}}
		return wire.SizeBytes(len({{.FromValue}}))
		{{- else}}
		return wire.Size{{.WireType}}({{.FromValue}})
		{{- end}}
	{{- end}}
	default:
		panic(fmt.Sprintf("invalid kind %v", kind))
	}
}

// appendSingular appends v encoded as the given kind, excluding the tag.
func appendSingular(b []byte, kind protoreflect.Kind, v protoreflect.Value) []byte {
	switch kind {
	{{- range .}}
	case {{.Expr}}:
		return {{.AppendFunc}}(b, {{.FromValue}})
	{{- end}}
	default:
		panic(fmt.Sprintf("invalid kind %v", kind))
	}
}

// unmarshalScalar decodes a value of the given kind.
// It returns errUnknown if wtyp is not the wire type of the kind.
func (o UnmarshalOptions) unmarshalScalar(b []byte, wtyp wire.Type, kind protoreflect.Kind) (val protoreflect.Value, n int, err error) {
	switch kind {
	{{- range .}}
	case {{.Expr}}:
		if wtyp != {{.WireType.Expr}} {
			return val, 0, errUnknown
		}
		v, n := wire.Consume{{.WireType}}(b)
		if n < 0 {
			return val, 0, wire.ParseError(n)
		}
		return {{.ToValue}}, n, nil
	{{- end}}
	default:
		return val, 0, errUnknown
	}
}
`))
