// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import "strings"

var escaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Escape prepares s for placement between single quotes.
// Backslashes are doubled and quotes are prefixed with a backslash.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Strings renders each descriptor in canonical form.
func Strings(descriptors []Descriptor) []string {
	out := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, d.String())
	}
	return out
}

// Join renders descriptors as a single canonical expression.
// Names are written as is. For descriptors returned by Parse whose names
// contain none of the characters | ( ) , ' parsing the result yields them again.
func Join(descriptors []Descriptor) string {
	return strings.Join(Strings(descriptors), string(tokenFilterDelimiter))
}
