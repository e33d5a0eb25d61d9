// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/filterexpr/expression"
)

func parseCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse an expression and print its filters",
		ArgsUsage: "EXPRESSION",
		Description: `Parses a filter expression and prints the filter descriptors.

On a rejected expression a diagnostic pointing at the offending character
is printed to stderr and the command exits with status 1.

Example:
  filterexpr parse --output yaml "where(author,'jane')|limit(10)"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: json, yaml or text",
				Value:   "json",
			},
			&cli.IntFlag{
				Name:  "max-length",
				Usage: "Maximum expression length in characters, 0 for no limit",
				Value: expression.DefaultMaxExpressionLength,
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "Colorize diagnostics",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("parse requires exactly one expression argument, got %d", c.NArg())
			}
			parser := expression.NewParser(
				expression.WithMaxExpressionLength(c.Int("max-length")),
				expression.WithLogger(st.logger),
			)
			filters, err := parser.Parse(c.Args().First())
			if err != nil {
				var parseErr *expression.ParseError
				if errors.As(err, &parseErr) {
					fmt.Fprint(c.App.ErrWriter, expression.FormatDiagnostic(parseErr, c.Bool("color")))
					return cli.Exit("", 1)
				}
				return err
			}
			return writeFilters(c.App.Writer, c.String("output"), filters)
		},
	}
}

func writeFilters(w io.Writer, output string, filters []expression.Descriptor) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(filters)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(filters); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		_, err := fmt.Fprintln(w, expression.Join(filters))
		return err
	default:
		return fmt.Errorf("unknown output format %q: must be json, yaml or text", output)
	}
}
