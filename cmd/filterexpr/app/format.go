// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/filterexpr/expression"
)

func formatCommand(_ *state) *cli.Command {
	return &cli.Command{
		Name:      "format",
		Usage:     "Render filter descriptors as a canonical expression",
		ArgsUsage: "FILE|-",
		Description: `Reads a JSON or YAML list of filter descriptors, as printed by
'filterexpr parse', and prints the canonical expression.

Example:
  filterexpr parse -o yaml "limit( 10 )" | filterexpr format -`,
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("format requires a file argument or - for stdin")
			}
			data, err := readInput(c.App.Reader, c.Args().First())
			if err != nil {
				return err
			}
			var filters []expression.Descriptor
			if err := yaml.Unmarshal(data, &filters); err != nil {
				return fmt.Errorf("decoding filters: %w", err)
			}
			_, err = fmt.Fprintln(c.App.Writer, expression.Join(filters))
			return err
		},
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	// #nosec G304 -- path is supplied by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
