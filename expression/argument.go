// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"fmt"
	"strings"
)

// Kind identifies how an argument was written in source form.
type Kind int

const (
	// KindDynamic is a bare token written without quotes, such as an identifier or a number.
	KindDynamic Kind = iota

	// KindString is a value that was delimited by single quotes.
	KindString
)

const (
	kindDynamicText = "dynamic"
	kindStringText  = "string"
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDynamic:
		return kindDynamicText
	case KindString:
		return kindStringText
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindDynamic, KindString:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown argument kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case kindDynamicText:
		*k = KindDynamic
	case kindStringText:
		*k = KindString
	default:
		return fmt.Errorf("unknown argument kind %q: must be %q or %q", text, kindDynamicText, kindStringText)
	}
	return nil
}

// Argument is a single positional input to a filter.
// Value never carries the quotes or escape characters of its source form.
type Argument struct {
	Value string `json:"value" yaml:"value"`
	Kind  Kind   `json:"kind" yaml:"kind"`
}

// Dynamic returns an argument that renders without quotes.
func Dynamic(value string) Argument {
	return Argument{Value: value, Kind: KindDynamic}
}

// String returns an argument that renders as a quoted string literal.
func String(value string) Argument {
	return Argument{Value: value, Kind: KindString}
}

// IsString reports whether the argument is a string literal.
func (a Argument) IsString() bool {
	return a.Kind == KindString
}

// String renders the argument in canonical form.
func (a Argument) String() string {
	if a.Kind == KindString {
		return string(tokenStringDelimiter) + Escape(a.Value) + string(tokenStringDelimiter)
	}
	return a.Value
}
