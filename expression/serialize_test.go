// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/filterexpr/expression"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "jane", "jane"},
		{"quote", "it's", `it\'s`},
		{"backslash", `a\b`, `a\\b`},
		{"backslash before quote is not double escaped", `\'`, `\\\'`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, expression.Escape(tt.in))
		})
	}
}

func TestDescriptor_String(t *testing.T) {
	t.Parallel()

	d := expression.Descriptor{
		Name: "where",
		Arguments: []expression.Argument{
			expression.Dynamic("title"),
			expression.String(`it's a\b`),
		},
	}
	assert.Equal(t, `where(title,'it\'s a\\b')`, d.String())

	empty := expression.Descriptor{Name: "all"}
	assert.Equal(t, "all()", empty.String())
}

func TestJoin(t *testing.T) {
	t.Parallel()

	descriptors := []expression.Descriptor{
		{Name: "where", Arguments: []expression.Argument{expression.Dynamic("author"), expression.String("jane")}},
		{Name: "limit", Arguments: []expression.Argument{expression.Dynamic("10")}},
	}

	assert.Equal(t, []string{`where(author,'jane')`, `limit(10)`}, expression.Strings(descriptors))
	assert.Equal(t, `where(author,'jane')|limit(10)`, expression.Join(descriptors))
	assert.Empty(t, expression.Join(nil))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	exprs := []string{
		`where(author,'jane')|limit(10)`,
		`f('a\'b')`,
		`f('a\\b')`,
		`f('\\\'')`,
		`f()`,
		`f('')`,
		`f(,)`,
		`where( author , ' jane ' )|sort(date,desc)`,
		`where(title,'a|b(c),d)')`,
		`tag('日本語',名前)`,
		`f(ab'cd')|g(x)h(y)`,
		`path(a\b)`,
	}

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			t.Parallel()

			first, err := expression.Parse(expr)
			require.NoError(t, err)

			canonical := expression.Join(first)
			second, err := expression.Parse(canonical)
			require.NoError(t, err)
			assert.Equal(t, first, second)

			// The canonical form is a fixed point.
			assert.Equal(t, canonical, expression.Join(second))
		})
	}
}

func TestRoundTrip_DelimiterInName(t *testing.T) {
	t.Parallel()

	// A quote in name position restarts the segment, so a name can hold a
	// delimiter that Join writes unescaped.
	first, err := expression.Parse(`z'a(b'(x)`)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "a(b", first[0].Name)

	canonical := expression.Join(first)
	assert.Equal(t, "a(b(x)", canonical)

	_, err = expression.Parse(canonical)
	var parseErr *expression.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, expression.CodeUnexpectedInputStart, parseErr.Code)
}

func TestKind_Marshal(t *testing.T) {
	t.Parallel()

	d := expression.Descriptor{
		Name:      "where",
		Arguments: []expression.Argument{expression.Dynamic("author"), expression.String("jane")},
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"name":"where","arguments":[{"value":"author","kind":"dynamic"},{"value":"jane","kind":"string"}]}`,
		string(data))

	var fromJSON expression.Descriptor
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.True(t, d.Equal(fromJSON))

	out, err := yaml.Marshal(d)
	require.NoError(t, err)
	var fromYAML expression.Descriptor
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.True(t, d.Equal(fromYAML))

	var k expression.Kind
	assert.Error(t, k.UnmarshalText([]byte("number")))
	_, err = expression.Kind(7).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Kind(7)", expression.Kind(7).String())
}

func TestHasAndFind(t *testing.T) {
	t.Parallel()

	descriptors, err := expression.Parse(`where(author,'jane')|limit(10)|limit(5)`)
	require.NoError(t, err)

	assert.True(t, expression.Has("where", descriptors))
	assert.True(t, expression.Has("limit", descriptors))
	assert.False(t, expression.Has("sort", descriptors))
	assert.False(t, expression.Has("Limit", descriptors), "names are case sensitive")
	assert.False(t, expression.Has("where", nil))

	found, ok := expression.Find("limit", descriptors)
	require.True(t, ok)
	assert.Equal(t, "10", found.Arguments[0].Value, "first match wins")

	_, ok = expression.Find("sort", descriptors)
	assert.False(t, ok)
}
