// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app provides the commands of the filterexpr CLI.
package app

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/stacklok/filterexpr/env"
	"github.com/stacklok/filterexpr/logging"
)

type state struct {
	reader env.Reader
	logger *slog.Logger
}

// New returns the filterexpr CLI. Environment variables are read through reader.
// Errors are returned from Run rather than terminating the process.
func New(reader env.Reader) *cli.App {
	st := &state{reader: reader, logger: slog.New(slog.DiscardHandler)}
	return &cli.App{
		Name:  "filterexpr",
		Usage: "Parse, format and serve filter expressions",
		Description: `Filter expressions are pipe-delimited filter clauses such as

  where(author,'jane')|limit(10)

Logging is configured with FILTEREXPR_LOG_LEVEL and FILTEREXPR_LOG_FORMAT
or the matching flags. FILTEREXPR_CONFIG overrides the filter set location.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format: json or text",
			},
		},
		Before:         st.configureLogging,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			parseCommand(st),
			formatCommand(st),
			checkCommand(st),
			serveCommand(st),
		},
	}
}

// configureLogging builds the logger from the environment. Flags take precedence.
func (st *state) configureLogging(c *cli.Context) error {
	opts, err := logging.FromEnv(st.reader)
	if err != nil {
		return err
	}
	if v := c.String("log-level"); v != "" {
		lvl, err := logging.ParseLevel(v)
		if err != nil {
			return err
		}
		opts = append(opts, logging.WithLevel(lvl))
	}
	if v := c.String("log-format"); v != "" {
		format, err := logging.ParseFormat(v)
		if err != nil {
			return err
		}
		opts = append(opts, logging.WithFormat(format))
	}
	opts = append(opts, logging.WithOutput(c.App.ErrWriter))
	st.logger = logging.New(opts...)
	return nil
}
