// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Parameters maps parameter names to bound argument values.
// A value is a string, or a []string when the last parameter absorbed surplus arguments.
type Parameters map[string]any

// Value returns the single value bound to name.
// It reports false if name is unbound or holds a variadic tail.
func (p Parameters) Value(name string) (string, bool) {
	v, ok := p[name].(string)
	return v, ok
}

// Values returns every value bound to name. A single value is returned as a one-element slice.
func (p Parameters) Values(name string) []string {
	switch v := p[name].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	default:
		return nil
	}
}

// Decode copies the parameters into out, which must be a pointer to a struct.
// Fields are matched by their `param` tag or, failing that, by name.
// Values are converted weakly: "10" decodes into an int and a single value
// into a one-element slice.
func (p Parameters) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "param",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("creating parameter decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(p)); err != nil {
		return fmt.Errorf("decoding parameters: %w", err)
	}
	return nil
}

// MapParameters binds args to the required parameter names by position.
//
// It returns an error wrapping ErrParameterCount if fewer args than parameters
// are supplied. Surplus args are collected, in order, into the last parameter.
func MapParameters(required []string, args []Argument) (Parameters, error) {
	if len(required) > len(args) {
		return nil, fmt.Errorf("%w: %d parameters required, %d arguments supplied",
			ErrParameterCount, len(required), len(args))
	}

	mapped := make(Parameters, len(required))
	last := len(required) - 1

	for i, param := range required {
		name := strings.TrimSpace(param)

		if i == last && len(args) > len(required) {
			tail := make([]string, 0, len(args)-i)
			for _, arg := range args[i:] {
				tail = append(tail, arg.Value)
			}
			mapped[name] = tail
			continue
		}

		mapped[name] = args[i].Value
	}

	return mapped, nil
}
