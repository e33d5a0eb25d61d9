// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"slices"
	"strings"
)

// Descriptor is the parsed form of one name(args) clause.
// Argument order maps positionally onto the parameters of the named filter.
type Descriptor struct {
	Name      string     `json:"name" yaml:"name"`
	Arguments []Argument `json:"arguments" yaml:"arguments"`
}

// String renders the descriptor as name(arg1,arg2,...).
func (d Descriptor) String() string {
	var b strings.Builder
	b.WriteString(d.Name)
	b.WriteRune(tokenInputStart)
	for i, arg := range d.Arguments {
		if i > 0 {
			b.WriteRune(tokenInputDelimiter)
		}
		b.WriteString(arg.String())
	}
	b.WriteRune(tokenInputEnd)
	return b.String()
}

// Equal reports whether two descriptors have the same name and arguments.
func (d Descriptor) Equal(other Descriptor) bool {
	return d.Name == other.Name && slices.Equal(d.Arguments, other.Arguments)
}

// Has reports whether any descriptor is named name.
func Has(name string, descriptors []Descriptor) bool {
	_, ok := Find(name, descriptors)
	return ok
}

// Find returns the first descriptor named name.
func Find(name string, descriptors []Descriptor) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
