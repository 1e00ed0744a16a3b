// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config configures a pbdump run. It may be loaded from a YAML file given
// by --config.file; flags set on the command line take precedence.
type Config struct {
	ConfigFile string `yaml:"-"`

	Schema         string `yaml:"schema"`
	Message        string `yaml:"message"`
	Each           bool   `yaml:"each"`
	Concurrency    int    `yaml:"concurrency"`
	Partial        bool   `yaml:"partial"`
	DiscardUnknown bool   `yaml:"discard_unknown"`
	Strict         bool   `yaml:"strict"`
	Exact          bool   `yaml:"exact"`
	Metrics        bool   `yaml:"metrics"`
	LogLevel       string `yaml:"log_level"`

	// Fields describes the message inline; it is set by flags only.
	Fields fields `yaml:"-"`
}

// RegisterFlags registers flags for every option of the config.
func (cfg *Config) RegisterFlags(f *pflag.FlagSet) {
	f.StringVar(&cfg.ConfigFile, "config.file", "", "YAML file to load options from. Flags override values from the file.")
	f.StringVar(&cfg.Schema, "schema", "", "YAML schema table describing the messages. Without a schema every field is reported as unknown.")
	f.StringVar(&cfg.Message, "message", "", "Full name of the message to decode. Required with --schema.")
	f.BoolVar(&cfg.Each, "each", false, "Decode each input as its own message instead of concatenating them.")
	f.IntVar(&cfg.Concurrency, "concurrency", 4, "Maximum number of inputs decoded at once with --each.")
	f.BoolVar(&cfg.Partial, "partial", false, "Report missing required fields as a warning instead of an error.")
	f.BoolVar(&cfg.DiscardUnknown, "discard-unknown", false, "Drop unknown fields. Implies that --exact is not checked.")
	f.BoolVar(&cfg.Strict, "strict", false, "Reject invalid UTF-8 and fields encoded with the wrong wire type.")
	f.BoolVar(&cfg.Exact, "exact", false, "Require re-encoding to reproduce the input bytes. Only canonical input passes: unknown fields after known ones, each field once, minimal varints.")
	f.BoolVar(&cfg.Metrics, "metrics", false, "Write codec metrics in the Prometheus text format to stderr when done.")
	f.StringVar(&cfg.LogLevel, "log.level", "info", "Only log messages with the given severity or above. One of: [debug, info, warn, error]")
	registerFieldFlags(f, &cfg.Fields)
}

// Validate checks the config for consistency.
func (cfg *Config) Validate() error {
	if cfg.Schema != "" && cfg.Message == "" {
		return errors.New("--message is required when --schema is set")
	}
	if cfg.Schema != "" && len(cfg.Fields) > 0 {
		return errors.New("field list flags cannot be combined with --schema")
	}
	if cfg.Schema == "" && cfg.Message != "" {
		return errors.New("--message requires --schema")
	}
	if cfg.Concurrency < 1 {
		return errors.Errorf("invalid concurrency %d: must be at least 1", cfg.Concurrency)
	}
	if _, err := levelFilter(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// applyConfigFile loads cfg.ConfigFile, if any, into cfg and then reapplies
// the flags set explicitly in f so that they win over the file.
func applyConfigFile(f *pflag.FlagSet, cfg *Config) error {
	if cfg.ConfigFile == "" {
		return nil
	}
	explicit := map[string]string{}
	f.Visit(func(fl *pflag.Flag) {
		if fl.Value.Type() == fieldsFlagType {
			return // not read from the file
		}
		explicit[fl.Name] = fl.Value.String()
	})

	buf, err := os.ReadFile(cfg.ConfigFile)
	if err != nil {
		return errors.Wrap(err, "error loading config file")
	}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return errors.Wrapf(err, "error parsing config file %s", cfg.ConfigFile)
	}

	for name, value := range explicit {
		if err := f.Set(name, value); err != nil {
			return errors.Wrapf(err, "error reapplying flag --%s", name)
		}
	}
	return nil
}

func levelFilter(s string) (level.Option, error) {
	switch s {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, errors.Errorf("unrecognized log level %q", s)
	}
}

// newLogger returns a logfmt logger writing to w, filtered by cfg.LogLevel.
// The level must have been checked by Validate.
func newLogger(w io.Writer, cfg *Config) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	opt, err := levelFilter(cfg.LogLevel)
	if err != nil {
		opt = level.AllowInfo()
	}
	return level.NewFilter(log.With(logger, "ts", log.DefaultTimestampUTC), opt)
}
