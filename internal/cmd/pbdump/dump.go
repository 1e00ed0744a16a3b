// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"golang.org/x/sync/errgroup"

	"github.com/pbwire/pbwire/encoding/prototext"
	"github.com/pbwire/pbwire/proto"
	"github.com/pbwire/pbwire/reflect/protodesc"
	pref "github.com/pbwire/pbwire/reflect/protoreflect"
	"github.com/pbwire/pbwire/reflect/protoregistry"
	"github.com/pbwire/pbwire/reflect/prototype"
	"github.com/pbwire/pbwire/runtime/protometrics"
	"github.com/pbwire/pbwire/types/dynamicpb"
)

// rawMessage is decoded when no schema is given; all its fields are unknown.
const rawMessage = "pbdump.Raw"

// input is a named blob of wire-format data.
type input struct {
	name string
	data []byte
}

// dumper decodes inputs against a single message descriptor.
type dumper struct {
	cfg    *Config
	desc   pref.MessageDescriptor
	codec  *protometrics.Codec
	reg    *prometheus.Registry
	logger log.Logger
}

func newDumper(cfg *Config, logger log.Logger) (*dumper, error) {
	desc, err := loadDescriptor(cfg)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	codec := protometrics.NewCodec(protometrics.NewMetrics(reg), logger)
	codec.MarshalOptions.AllowPartial = true
	codec.UnmarshalOptions.DiscardUnknown = cfg.DiscardUnknown
	codec.UnmarshalOptions.RejectWireTypeMismatch = cfg.Strict
	codec.UnmarshalOptions.RejectInvalidUTF8 = cfg.Strict

	return &dumper{
		cfg:    cfg,
		desc:   desc,
		codec:  codec,
		reg:    reg,
		logger: logger,
	}, nil
}

// loadDescriptor resolves the message to decode. The registry is frozen
// before it is shared by concurrent decoders.
func loadDescriptor(cfg *Config) (pref.MessageDescriptor, error) {
	switch {
	case len(cfg.Fields) > 0:
		return cfg.Fields.Descriptor()
	case cfg.Schema == "":
		return prototype.NewMessage(&prototype.Message{FullName: rawMessage})
	}
	reg, err := loadSchema(cfg.Schema)
	if err != nil {
		return nil, err
	}
	md, err := reg.FindMessageByName(pref.FullName(cfg.Message))
	if err != nil {
		return nil, errors.Wrapf(err, "message %s in schema %s", cfg.Message, cfg.Schema)
	}
	return md, nil
}

func loadSchema(path string) (*protoregistry.Types, error) {
	reg := new(protoregistry.Types)
	if err := protodesc.LoadFile(path, reg); err != nil {
		return nil, errors.Wrapf(err, "error loading schema %s", path)
	}
	reg.Freeze()
	return reg, nil
}

// dump decodes in, checks it and returns its text form.
func (d *dumper) dump(in input) (string, error) {
	m := dynamicpb.New(d.desc)
	if err := d.codec.Unmarshal(in.data, m); err != nil {
		return "", errors.Wrapf(err, "%s: decoding", in.name)
	}

	if missing := m.MissingFields(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, n := range missing {
			names[i] = string(n)
		}
		if !d.cfg.Partial {
			return "", errors.Wrapf(proto.IsInitialized(m), "%s", in.name)
		}
		level.Warn(d.logger).Log("msg", "message is missing required fields", "input", in.name, "fields", strings.Join(names, ","))
	}

	text, err := prototext.MarshalOptions{AllowPartial: true}.Marshal(m)
	if err != nil {
		return "", errors.Wrapf(err, "%s: formatting", in.name)
	}

	if err := d.verify(in, m); err != nil {
		return "", err
	}
	return string(text), nil
}

// verify checks that m survives a round trip: its encoding decodes to an
// equal message whose size matches the encoding. With --exact the encoding
// must also equal the input bytes.
func (d *dumper) verify(in input, m *dynamicpb.Message) error {
	out, err := d.codec.Marshal(m)
	if err != nil {
		return errors.Wrapf(err, "%s: re-encoding", in.name)
	}
	if n := proto.Size(m); n != len(out) {
		return errors.Errorf("%s: computed size %d does not match encoded length %d", in.name, n, len(out))
	}

	// Decoded directly so that the check does not show up in the metrics.
	m2 := dynamicpb.New(m.Descriptor())
	if err := d.codec.UnmarshalOptions.Unmarshal(out, m2); err != nil {
		return errors.Wrapf(err, "%s: decoding re-encoded message", in.name)
	}
	if !proto.Equal(m, m2) {
		return errors.Errorf("%s: re-encoded message decodes to a different message", in.name)
	}

	switch {
	case !d.cfg.Exact:
	case d.cfg.DiscardUnknown:
		level.Debug(d.logger).Log("msg", "skipping exact re-encoding check", "input", in.name)
	case !bytes.Equal(out, in.data):
		return errors.Errorf("%s: re-encoding produced %d bytes that differ from the %d input bytes", in.name, len(out), len(in.data))
	}
	level.Debug(d.logger).Log("msg", "re-encoding verified", "input", in.name, "size", len(out))
	return nil
}

// run decodes the inputs and writes their text forms to w in input order.
func (d *dumper) run(ctx context.Context, inputs []input, w io.Writer) error {
	if !d.cfg.Each {
		var all []byte
		var names []string
		for _, in := range inputs {
			all = append(all, in.data...)
			names = append(names, in.name)
		}
		text, err := d.dump(input{name: strings.Join(names, "+"), data: all})
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text)
		return err
	}

	texts := make([]string, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := d.dump(in)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, in := range inputs {
		if _, err := fmt.Fprintf(w, "# %s\n%s", in.name, texts[i]); err != nil {
			return err
		}
	}
	return nil
}

// writeMetrics writes the gathered codec metrics to w in text format.
func (d *dumper) writeMetrics(w io.Writer) error {
	mfs, err := d.reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// readInputs reads the named files; "-" or no names mean stdin.
func readInputs(names []string, stdin io.Reader) ([]input, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}
	inputs := make([]input, 0, len(names))
	for _, name := range names {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			data, err = io.ReadAll(stdin)
			name = "<stdin>"
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "error reading %s", name)
		}
		inputs = append(inputs, input{name: name, data: data})
	}
	return inputs, nil
}
