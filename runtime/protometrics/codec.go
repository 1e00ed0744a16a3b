// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protometrics

import (
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/pbwire/pbwire/internal/errors"
	"github.com/pbwire/pbwire/proto"
)

const (
	opMarshal   = "marshal"
	opUnmarshal = "unmarshal"
)

// Codec marshals and unmarshals messages with the embedded options,
// recording every call in its Metrics.
//
// A Codec is safe for concurrent use as long as its options are not
// modified after first use.
type Codec struct {
	MarshalOptions   proto.MarshalOptions
	UnmarshalOptions proto.UnmarshalOptions

	metrics *Metrics
	logger  log.Logger
}

// NewCodec returns a Codec reporting to m and logging failures to logger.
// The logger is also used for advisory diagnostics unless the options
// carry their own.
func NewCodec(m *Metrics, logger log.Logger) *Codec {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Codec{metrics: m, logger: logger}
}

// Marshal returns the wire-format encoding of m.
func (c *Codec) Marshal(m proto.Message) ([]byte, error) {
	o := c.MarshalOptions
	if o.Logger == nil {
		o.Logger = c.logger
	}
	name := string(m.Descriptor().FullName())

	start := time.Now()
	b, err := o.Marshal(m)
	c.metrics.duration.WithLabelValues(opMarshal).Observe(time.Since(start).Seconds())
	c.metrics.operations.WithLabelValues(opMarshal, name, Result(err)).Inc()
	if err != nil {
		level.Warn(c.logger).Log("msg", "failed to marshal message", "message", name, "err", err)
		return b, err
	}
	c.metrics.messageBytes.WithLabelValues(opMarshal).Observe(float64(len(b)))
	return b, nil
}

// Unmarshal parses b into m.
func (c *Codec) Unmarshal(b []byte, m proto.Message) error {
	o := c.UnmarshalOptions
	if o.Logger == nil {
		o.Logger = c.logger
	}
	name := string(m.Descriptor().FullName())
	var unknownBefore int
	if !o.Reset {
		unknownBefore = len(m.GetUnknown())
	}

	start := time.Now()
	err := o.Unmarshal(b, m)
	c.metrics.duration.WithLabelValues(opUnmarshal).Observe(time.Since(start).Seconds())
	c.metrics.operations.WithLabelValues(opUnmarshal, name, Result(err)).Inc()
	c.metrics.messageBytes.WithLabelValues(opUnmarshal).Observe(float64(len(b)))
	if n := len(m.GetUnknown()) - unknownBefore; n > 0 {
		c.metrics.unknownBytes.WithLabelValues(name).Add(float64(n))
	}
	if err != nil {
		level.Warn(c.logger).Log("msg", "failed to unmarshal message", "message", name, "size", len(b), "err", err)
	}
	return err
}

// Result maps err to the value of the "result" label.
func Result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, proto.ErrParse):
		return "parse_error"
	case errors.Is(err, proto.ErrEncoding):
		return "encoding_error"
	case errors.Is(err, proto.ErrIncomplete):
		return "incomplete"
	case errors.Is(err, proto.ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, proto.ErrSchema):
		return "schema_error"
	default:
		return "error"
	}
}
