// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/stacklok/filterexpr/filterset"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Filter set file (default: $FILTEREXPR_CONFIG or $XDG_CONFIG_HOME/filterexpr/filters.yaml)",
	}
}

func (st *state) configPath(c *cli.Context) string {
	if p := c.String("config"); p != "" {
		return p
	}
	return filterset.ResolvePath(st.reader)
}

func checkCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Validate a filter set file",
		Description: `Validates the filter set document against its schema and parses
every expression in it. All problems are reported together.

Example:
  filterexpr check --config ./filters.yaml`,
		Flags:  []cli.Flag{configFlag()},
		Action: func(c *cli.Context) error {
			path := st.configPath(c)
			set, err := filterset.Load(path)
			if err != nil {
				return err
			}
			st.logger.Debug("checked filter set", "path", path, "filters", set.Len())
			_, err = fmt.Fprintf(c.App.Writer, "%s: %d filters OK\n", path, set.Len())
			return err
		},
	}
}
