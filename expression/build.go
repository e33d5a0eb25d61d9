// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import "strings"

// Classify wraps a raw input value as an argument. Values containing a quote
// or a backslash become string literals; everything else stays dynamic.
func Classify(raw string) Argument {
	if strings.ContainsAny(raw, `\'`) {
		return String(raw)
	}
	return Dynamic(raw)
}

// BuildDescriptor creates a descriptor from raw input values without parsing.
func BuildDescriptor(name string, inputs ...string) Descriptor {
	args := make([]Argument, 0, len(inputs))
	for _, in := range inputs {
		args = append(args, Classify(in))
	}
	return Descriptor{Name: name, Arguments: args}
}

// Build returns the textual form of a filter built from raw input values.
func Build(name string, inputs ...string) string {
	return BuildDescriptor(name, inputs...).String()
}
