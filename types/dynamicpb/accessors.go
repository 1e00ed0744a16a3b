// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynamicpb

import (
	"github.com/pbwire/pbwire/internal/errors"
	pref "github.com/pbwire/pbwire/reflect/protoreflect"
)

// SetBool stores v in a bool field.
// See Set for the errors returned.
func (m *Message) SetBool(num pref.FieldNumber, v bool) error {
	return m.Set(num, pref.ValueOfBool(v))
}

// SetInt32 stores v in an int32, sint32, sfixed32 or enum field.
// See Set for the errors returned.
func (m *Message) SetInt32(num pref.FieldNumber, v int32) error {
	return m.Set(num, pref.ValueOfInt32(v))
}

// SetInt64 stores v in an int64, sint64 or sfixed64 field.
func (m *Message) SetInt64(num pref.FieldNumber, v int64) error {
	return m.Set(num, pref.ValueOfInt64(v))
}

// SetUint32 stores v in a uint32 or fixed32 field.
func (m *Message) SetUint32(num pref.FieldNumber, v uint32) error {
	return m.Set(num, pref.ValueOfUint32(v))
}

// SetUint64 stores v in a uint64 or fixed64 field.
func (m *Message) SetUint64(num pref.FieldNumber, v uint64) error {
	return m.Set(num, pref.ValueOfUint64(v))
}

// SetFloat32 stores v in a float field.
func (m *Message) SetFloat32(num pref.FieldNumber, v float32) error {
	return m.Set(num, pref.ValueOfFloat32(v))
}

// SetFloat64 stores v in a double field.
func (m *Message) SetFloat64(num pref.FieldNumber, v float64) error {
	return m.Set(num, pref.ValueOfFloat64(v))
}

// SetString stores v in a string field.
func (m *Message) SetString(num pref.FieldNumber, v string) error {
	return m.Set(num, pref.ValueOfString(v))
}

// SetBytes stores v in a bytes field without copying it.
func (m *Message) SetBytes(num pref.FieldNumber, v []byte) error {
	return m.Set(num, pref.ValueOfBytes(v))
}

// GetBool returns the value of a bool field, or its default if unset.
// The error matches proto.ErrTypeMismatch if the field does not exist or
// is not a bool field.
func (m *Message) GetBool(num pref.FieldNumber) (bool, error) {
	v, err := m.getAs(num, pref.ValueOfBool(false))
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

// GetInt32 returns the value of an int32, sint32, sfixed32 or enum field.
func (m *Message) GetInt32(num pref.FieldNumber) (int32, error) {
	v, err := m.getAs(num, pref.ValueOfInt32(0))
	if err != nil {
		return 0, err
	}
	return int32(v.Int()), nil
}

// GetInt64 returns the value of an int64, sint64 or sfixed64 field.
func (m *Message) GetInt64(num pref.FieldNumber) (int64, error) {
	v, err := m.getAs(num, pref.ValueOfInt64(0))
	if err != nil {
		return 0, err
	}
	return v.Int(), nil
}

// GetUint32 returns the value of a uint32 or fixed32 field.
func (m *Message) GetUint32(num pref.FieldNumber) (uint32, error) {
	v, err := m.getAs(num, pref.ValueOfUint32(0))
	if err != nil {
		return 0, err
	}
	return uint32(v.Uint()), nil
}

// GetUint64 returns the value of a uint64 or fixed64 field.
func (m *Message) GetUint64(num pref.FieldNumber) (uint64, error) {
	v, err := m.getAs(num, pref.ValueOfUint64(0))
	if err != nil {
		return 0, err
	}
	return v.Uint(), nil
}

// GetFloat32 returns the value of a float field.
func (m *Message) GetFloat32(num pref.FieldNumber) (float32, error) {
	v, err := m.getAs(num, pref.ValueOfFloat32(0))
	if err != nil {
		return 0, err
	}
	return float32(v.Float()), nil
}

// GetFloat64 returns the value of a double field.
func (m *Message) GetFloat64(num pref.FieldNumber) (float64, error) {
	v, err := m.getAs(num, pref.ValueOfFloat64(0))
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}

// GetString returns the value of a string field.
func (m *Message) GetString(num pref.FieldNumber) (string, error) {
	v, err := m.getAs(num, pref.ValueOfString(""))
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// GetBytes returns the value of a bytes field.
// The caller must not mutate the returned slice.
func (m *Message) GetBytes(num pref.FieldNumber) ([]byte, error) {
	v, err := m.getAs(num, pref.ValueOfBytes(nil))
	if err != nil {
		return nil, err
	}
	return v.Bytes(), nil
}

// getAs returns the value of field num if its kind is held in the
// same Go type as like.
func (m *Message) getAs(num pref.FieldNumber, like pref.Value) (pref.Value, error) {
	fd := m.desc.Fields().ByNumber(num)
	if fd == nil {
		return pref.Value{}, errors.Wrap(errors.TypeMismatch, "%v: no field numbered %d", m.desc.FullName(), num)
	}
	if !fd.Kind().Accepts(like) {
		return pref.Value{}, errors.Wrap(errors.TypeMismatch, "%v: reading %v field as %v", fd.FullName(), fd.Kind(), like.GoType())
	}
	return m.Get(num), nil
}
