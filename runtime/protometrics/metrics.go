// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protometrics instruments marshaling and unmarshaling of messages
// with Prometheus metrics and structured logging.
package protometrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors updated by a Codec.
// A single Metrics may be shared by any number of codecs.
type Metrics struct {
	operations   *prometheus.CounterVec
	messageBytes *prometheus.HistogramVec
	duration     *prometheus.HistogramVec
	unknownBytes *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		operations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "pbwire",
			Name:      "codec_operations_total",
			Help:      "Total number of marshal and unmarshal operations by message and result.",
		}, []string{"op", "message", "result"}),
		messageBytes: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pbwire",
			Name:      "codec_message_bytes",
			Help:      "Size of encoded messages in bytes.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		}, []string{"op"}),
		duration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pbwire",
			Name:      "codec_duration_seconds",
			Help:      "Time spent marshaling or unmarshaling a message.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"op"}),
		unknownBytes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "pbwire",
			Name:      "codec_unknown_bytes_total",
			Help:      "Bytes of unrecognized fields preserved while unmarshaling.",
		}, []string{"message"}),
	}
}
