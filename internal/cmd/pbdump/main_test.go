// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pbwire/pbwire/proto"
	"github.com/pbwire/pbwire/reflect/protodesc"
	"github.com/pbwire/pbwire/reflect/protoregistry"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const loginSchema = `messages:
  - name: example.Login
    fields:
      - {number: 1, name: vtype, kind: int32, cardinality: required}
      - {number: 2, name: username, kind: string, cardinality: required}
      - {number: 7, name: deviceid, kind: string, default: "none"}
`

// vtype=1 username="abc"
var loginBytes = []byte{0x08, 0x01, 0x12, 0x03, 'a', 'b', 'c'}

const loginText = "vtype: 1\nusername: \"abc\"\n"

// writeFile writes data to name inside dir and returns its path.
func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func runPbdump(t *testing.T, stdin []byte, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := newRootCommand(bytes.NewReader(stdin), &outBuf, &errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestDump(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", []byte(loginSchema))
	login := writeFile(t, dir, "login.bin", loginBytes)

	stdout, _, err := runPbdump(t, nil, "--schema", schema, "--message", "example.Login", login)
	require.NoError(t, err)
	if diff := cmp.Diff(loginText, stdout); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpStdin(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", []byte(loginSchema))

	stdout, _, err := runPbdump(t, loginBytes, "--schema", schema, "--message", "example.Login")
	require.NoError(t, err)
	assert.Equal(t, loginText, stdout)
}

func TestDumpConcatenatesInputs(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", []byte(loginSchema))
	a := writeFile(t, dir, "a.bin", loginBytes[:2])
	b := writeFile(t, dir, "b.bin", loginBytes[2:])

	stdout, _, err := runPbdump(t, nil, "--schema", schema, "--message", "example.Login", a, b)
	require.NoError(t, err)
	assert.Equal(t, loginText, stdout)
}

func TestDumpEach(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", []byte(loginSchema))
	var paths []string
	var want strings.Builder
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		in := append([]byte{0x08, byte(i)}, loginBytes[2:]...)
		paths = append(paths, writeFile(t, dir, name+".bin", in))
		want.WriteString("# " + paths[i] + "\n")
		want.WriteString("vtype: " + string(rune('0'+i)) + "\nusername: \"abc\"\n")
	}

	args := append([]string{"--each", "--concurrency", "2", "--schema", schema, "--message", "example.Login"}, paths...)
	stdout, _, err := runPbdump(t, nil, args...)
	require.NoError(t, err)
	if diff := cmp.Diff(want.String(), stdout); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpEachFailure(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", []byte(loginSchema))
	good := writeFile(t, dir, "good.bin", loginBytes)
	bad := writeFile(t, dir, "bad.bin", []byte{0x08})

	stdout, _, err := runPbdump(t, nil, "--each", "--schema", schema, "--message", "example.Login", good, bad)
	require.ErrorIs(t, err, proto.ErrParse)
	assert.Contains(t, err.Error(), bad)
	assert.Empty(t, stdout)
}

func TestDumpWithoutSchema(t *testing.T) {
	stdout, _, err := runPbdump(t, loginBytes)
	require.NoError(t, err)
	assert.Equal(t, "1: 1\n2: \"abc\"\n", stdout)
}

func TestDumpInlineFields(t *testing.T) {
	// Field 9 is not listed and stays unknown.
	in := append(append([]byte(nil), loginBytes...), 0x48, 0x05)
	stdout, _, err := runPbdump(t, in, "--ints", "1", "--strings", "2")
	require.NoError(t, err)
	assert.Equal(t, "f1: 1\nf2: \"abc\"\n9: 5\n", stdout)

	_, _, err = runPbdump(t, in, "--ints", "1", "--schema", "s.yaml", "--message", "a.B")
	require.EqualError(t, err, "field list flags cannot be combined with --schema")
}

func TestDumpMissingRequired(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", []byte(loginSchema))
	in := loginBytes[:2]

	_, _, err := runPbdump(t, in, "--schema", schema, "--message", "example.Login")
	require.ErrorIs(t, err, proto.ErrIncomplete)
	assert.Contains(t, err.Error(), "required field username not set")

	stdout, stderr, err := runPbdump(t, in, "--partial", "--schema", schema, "--message", "example.Login")
	require.NoError(t, err)
	assert.Equal(t, "vtype: 1\n", stdout)
	assert.Contains(t, stderr, `level=warn msg="message is missing required fields" input=<stdin> fields=username`)
}

func TestDumpReencodingMismatch(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", []byte(loginSchema))
	// vtype=1 as a two-byte varint re-encodes to a single byte.
	in := []byte{0x08, 0x81, 0x00, 0x12, 0x03, 'a', 'b', 'c'}

	stdout, _, err := runPbdump(t, in, "--schema", schema, "--message", "example.Login")
	require.NoError(t, err)
	assert.Equal(t, loginText, stdout)

	_, _, err = runPbdump(t, in, "--exact", "--schema", schema, "--message", "example.Login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "re-encoding produced 7 bytes that differ from the 8 input bytes")

	// Discarding unknown fields skips the byte comparison.
	stdout, _, err = runPbdump(t, in, "--exact", "--discard-unknown", "--schema", schema, "--message", "example.Login")
	require.NoError(t, err)
	assert.Equal(t, loginText, stdout)
}

func TestDumpNonCanonical(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", []byte(loginSchema))

	tests := []struct {
		desc   string
		inputs [][]byte
		want   string
	}{{
		desc:   "unknown field between known fields",
		inputs: [][]byte{{0x08, 0x01, 0x18, 0x05, 0x12, 0x03, 'a', 'b', 'c'}},
		want:   loginText + "3: 5\n",
	}, {
		desc:   "field set twice",
		inputs: [][]byte{{0x08, 0x01, 0x08, 0x02, 0x12, 0x03, 'a', 'b', 'c'}},
		want:   "vtype: 2\nusername: \"abc\"\n",
	}, {
		desc:   "concatenated inputs sharing a field",
		inputs: [][]byte{loginBytes, {0x08, 0x02}},
		want:   "vtype: 2\nusername: \"abc\"\n",
	}}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			args := []string{"--schema", schema, "--message", "example.Login"}
			for i, in := range tt.inputs {
				args = append(args, writeFile(t, t.TempDir(), string(rune('a'+i))+".bin", in))
			}

			stdout, _, err := runPbdump(t, nil, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)

			_, _, err = runPbdump(t, nil, append([]string{"--exact"}, args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "re-encoding produced")
		})
	}
}

func TestDumpStrict(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", []byte(loginSchema))
	in := []byte{0x08, 0x01, 0x12, 0x01, 0xff}

	stdout, stderr, err := runPbdump(t, in, "--schema", schema, "--message", "example.Login")
	require.NoError(t, err)
	assert.Equal(t, "vtype: 1\nusername: \"\\377\"\n", stdout)
	assert.Contains(t, stderr, "invalid UTF-8")

	_, _, err = runPbdump(t, in, "--strict", "--schema", schema, "--message", "example.Login")
	require.ErrorIs(t, err, proto.ErrEncoding)

	// vtype sent as a fixed32 is kept as unknown unless strict.
	mismatch := append(append([]byte(nil), loginBytes...), 0x0d, 1, 0, 0, 0)
	stdout, _, err = runPbdump(t, mismatch, "--schema", schema, "--message", "example.Login")
	require.NoError(t, err)
	assert.Equal(t, loginText+"1: 0x00000001\n", stdout)

	_, _, err = runPbdump(t, mismatch, "--strict", "--schema", schema, "--message", "example.Login")
	require.ErrorIs(t, err, proto.ErrParse)
}

func TestDumpMetrics(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", []byte(loginSchema))

	_, stderr, err := runPbdump(t, loginBytes, "--metrics", "--schema", schema, "--message", "example.Login")
	require.NoError(t, err)
	assert.Contains(t, stderr, `pbwire_codec_operations_total{message="example.Login",op="unmarshal",result="success"} 1`)
	assert.Contains(t, stderr, `pbwire_codec_operations_total{message="example.Login",op="marshal",result="success"} 1`)
	assert.Contains(t, stderr, "# TYPE pbwire_codec_message_bytes histogram")
}

func TestSchemaCommand(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", []byte(loginSchema))

	stdout, _, err := runPbdump(t, nil, "schema", "--schema", schema)
	require.NoError(t, err)
	assert.Contains(t, stdout, "name: example.Login")
	assert.Contains(t, stdout, "default: none")

	var reg protoregistry.Types
	require.NoError(t, protodesc.Load(strings.NewReader(stdout), &reg))
	md, err := reg.FindMessageByName("example.Login")
	require.NoError(t, err)
	assert.Equal(t, 3, md.Fields().Len())

	_, _, err = runPbdump(t, nil, "schema")
	require.EqualError(t, err, "--schema is required")
}

func TestDumpErrors(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", []byte(loginSchema))
	bad := writeFile(t, dir, "bad.yaml", []byte("messages:\n  - name: a.B\n    fields:\n      - {number: 0, name: x, kind: int32}\n"))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown message", []string{"--schema", schema, "--message", "example.Nope"}, "message example.Nope in schema " + schema + ": proto: not found"},
		{"invalid schema", []string{"--schema", bad, "--message", "a.B"}, "error loading schema " + bad},
		{"missing file", []string{filepath.Join(dir, "nope.bin")}, "error reading " + filepath.Join(dir, "nope.bin")},
		{"message without schema", []string{"--message", "a.B"}, "--message requires --schema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runPbdump(t, loginBytes, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
