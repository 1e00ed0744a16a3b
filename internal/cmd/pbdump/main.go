// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pbdump decodes wire-format messages against a YAML schema table,
// prints them in text form and verifies that they re-encode to the same
// bytes.
//
//	pbdump --schema login.yaml --message example.Login login.bin
//	pbdump --each --schema login.yaml --message example.Login a.bin b.bin
//	pbdump --ints 1 --strings 2,7 login.bin
//	pbdump schema --schema login.yaml
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pbwire/pbwire/reflect/protodesc"
)

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pbdump: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cfg := new(Config)

	root := &cobra.Command{
		Use:           "pbdump [flags] [files...]",
		Short:         "Decode and verify wire-format messages",
		Long:          "pbdump decodes wire-format messages read from files, or stdin when none are given,\nprints them in text form and checks that re-encoding reproduces the input.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigFile(cmd.Flags(), cfg); err != nil {
				return err
			}
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, cfg)
			d, err := newDumper(cfg, logger)
			if err != nil {
				return err
			}
			inputs, err := readInputs(args, stdin)
			if err != nil {
				return err
			}
			level.Debug(logger).Log("msg", "decoding", "message", d.desc.FullName(), "inputs", len(inputs))

			runErr := d.run(cmd.Context(), inputs, stdout)
			if cfg.Metrics {
				if err := d.writeMetrics(stderr); err != nil {
					level.Error(logger).Log("msg", "failed to write metrics", "err", err)
				}
			}
			return runErr
		},
	}
	cfg.RegisterFlags(root.PersistentFlags())
	root.AddCommand(newSchemaCommand(cfg, stdout))
	return root
}

func newSchemaCommand(cfg *Config, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Validate a schema table and print it in normalized form",
		Args:  cobra.NoArgs,
		// Overrides the root hook: a message name is not needed here.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyConfigFile(cmd.Flags(), cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Schema == "" {
				return errors.New("--schema is required")
			}
			reg, err := loadSchema(cfg.Schema)
			if err != nil {
				return err
			}
			return protodesc.Write(stdout, reg)
		},
	}
}
