// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/filterexpr/expression"
)

func TestParse_ValidExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want []expression.Descriptor
	}{
		{
			name: "empty input",
			expr: "",
			want: []expression.Descriptor{},
		},
		{
			name: "multi clause",
			expr: `where(author,'jane')|limit(10)`,
			want: []expression.Descriptor{
				{Name: "where", Arguments: []expression.Argument{expression.Dynamic("author"), expression.String("jane")}},
				{Name: "limit", Arguments: []expression.Argument{expression.Dynamic("10")}},
			},
		},
		{
			name: "dynamic number",
			expr: `limit(10)`,
			want: []expression.Descriptor{
				{Name: "limit", Arguments: []expression.Argument{expression.Dynamic("10")}},
			},
		},
		{
			name: "quoted number is a string literal",
			expr: `where('10')`,
			want: []expression.Descriptor{
				{Name: "where", Arguments: []expression.Argument{expression.String("10")}},
			},
		},
		{
			name: "escaped quote",
			expr: `f('a\'b')`,
			want: []expression.Descriptor{
				{Name: "f", Arguments: []expression.Argument{expression.String("a'b")}},
			},
		},
		{
			name: "escaped backslash",
			expr: `f('a\\b')`,
			want: []expression.Descriptor{
				{Name: "f", Arguments: []expression.Argument{expression.String(`a\b`)}},
			},
		},
		{
			name: "empty argument list yields one empty dynamic argument",
			expr: `f()`,
			want: []expression.Descriptor{
				{Name: "f", Arguments: []expression.Argument{expression.Dynamic("")}},
			},
		},
		{
			name: "empty string literal",
			expr: `f('')`,
			want: []expression.Descriptor{
				{Name: "f", Arguments: []expression.Argument{expression.String("")}},
			},
		},
		{
			name: "arguments are trimmed",
			expr: `where( author ,  '  jane ' )`,
			want: []expression.Descriptor{
				{Name: "where", Arguments: []expression.Argument{expression.Dynamic("author"), expression.String("jane")}},
			},
		},
		{
			name: "delimiters inside strings are literal",
			expr: `where(title,'a|b(c),d)')`,
			want: []expression.Descriptor{
				{Name: "where", Arguments: []expression.Argument{expression.Dynamic("title"), expression.String("a|b(c),d)")}},
			},
		},
		{
			name: "backslash outside a string is literal",
			expr: `path(a\b)`,
			want: []expression.Descriptor{
				{Name: "path", Arguments: []expression.Argument{expression.Dynamic(`a\b`)}},
			},
		},
		{
			name: "multi-byte characters",
			expr: `where(名前,'日本語')|tag('ünïcödé')`,
			want: []expression.Descriptor{
				{Name: "where", Arguments: []expression.Argument{expression.Dynamic("名前"), expression.String("日本語")}},
				{Name: "tag", Arguments: []expression.Argument{expression.String("ünïcödé")}},
			},
		},
		{
			name: "empty arguments between delimiters",
			expr: `f(,)`,
			want: []expression.Descriptor{
				{Name: "f", Arguments: []expression.Argument{expression.Dynamic(""), expression.Dynamic("")}},
			},
		},
		{
			name: "trailing empty argument",
			expr: `f(a,)`,
			want: []expression.Descriptor{
				{Name: "f", Arguments: []expression.Argument{expression.Dynamic("a"), expression.Dynamic("")}},
			},
		},
		{
			name: "quote restarts the segment",
			expr: `f(ab'cd')`,
			want: []expression.Descriptor{
				{Name: "f", Arguments: []expression.Argument{expression.String("cd")}},
			},
		},
		{
			name: "clauses without pipe",
			expr: `f(a)g(b)`,
			want: []expression.Descriptor{
				{Name: "f", Arguments: []expression.Argument{expression.Dynamic("a")}},
				{Name: "g", Arguments: []expression.Argument{expression.Dynamic("b")}},
			},
		},
		{
			name: "three clauses keep order",
			expr: `c(3)|a(1)|b(2,x,'y')`,
			want: []expression.Descriptor{
				{Name: "c", Arguments: []expression.Argument{expression.Dynamic("3")}},
				{Name: "a", Arguments: []expression.Argument{expression.Dynamic("1")}},
				{Name: "b", Arguments: []expression.Argument{expression.Dynamic("2"), expression.Dynamic("x"), expression.String("y")}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := expression.Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_RejectedExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		expr        string
		code        expression.ErrorCode
		offset      int
		startOffset int
		sentinel    error
	}{
		{"leading filter delimiter", `|f()`, expression.CodeLeadingFilterDelimiter, 1, 0, expression.ErrStructural},
		{"leading input end", `)f(`, expression.CodeLeadingInputEnd, 1, 0, expression.ErrStructural},
		{"leading input start", `(a)`, expression.CodeLeadingInputStart, 1, 0, expression.ErrStructural},
		{"leading string delimiter", `'a'(b)`, expression.CodeLeadingStringDelimiter, 1, 0, expression.ErrStructural},
		{"leading input delimiter", `,f(a)`, expression.CodeLeadingInputDelimiter, 1, 0, expression.ErrStructural},
		{"pipe not after list", `f|g(a)`, expression.CodeUnexpectedFilterDelimiter, 2, 0, expression.ErrStructural},
		{"pipe inside list", `f(a|b)`, expression.CodeUnexpectedFilterDelimiter, 4, 0, expression.ErrStructural},
		{"space before pipe", `f(a) |g(b)`, expression.CodeUnexpectedFilterDelimiter, 6, 0, expression.ErrStructural},
		{"nested input start", `f(a(b))`, expression.CodeUnexpectedInputStart, 4, 0, expression.ErrStructural},
		{"input end outside list", `f(a))`, expression.CodeUnexpectedInputEnd, 5, 0, expression.ErrStructural},
		{"comma outside list", `f,g(a)`, expression.CodeUnexpectedInputDelimiter, 2, 0, expression.ErrStructural},
		{"invalid escape", `f(a'\x')`, expression.CodeInvalidEscape, 5, 4, expression.ErrEscape},
		{"invalid escape in list", `f('a\x')`, expression.CodeInvalidEscape, 5, 3, expression.ErrEscape},
		{"unterminated string", `f('a`, expression.CodeUnterminatedString, 4, 3, expression.ErrStructural},
		{"string closed by last character", `f('a'`, expression.CodeUnterminatedInputList, 5, 2, expression.ErrStructural},
		{"escape consumes closing quote", `f('\'`, expression.CodeUnterminatedString, 4, 3, expression.ErrStructural},
		{"backslash is last character", `f('\`, expression.CodeUnterminatedString, 4, 3, expression.ErrStructural},
		{"unterminated input list", `f(a`, expression.CodeUnterminatedInputList, 3, 2, expression.ErrStructural},
		{"bare token", `limit`, expression.CodeMissingInputList, 5, 0, expression.ErrStructural},
		{"single character", `f`, expression.CodeMissingInputList, 1, 0, expression.ErrStructural},
		{"trailing pipe", `f(a)|`, expression.CodeExpectingFilter, 5, 0, expression.ErrStructural},
		{"trailing clause without list", `f(a)|gg`, expression.CodeMissingInputList, 7, 0, expression.ErrStructural},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := expression.Parse(tt.expr)
			require.Error(t, err)
			assert.Nil(t, got, "no partial result on error")
			assert.ErrorIs(t, err, tt.sentinel)

			var parseErr *expression.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.code, parseErr.Code)
			assert.Equal(t, tt.offset, parseErr.Offset)
			assert.Equal(t, tt.startOffset, parseErr.StartOffset)
			assert.Equal(t, tt.expr, parseErr.Source)
		})
	}
}

func TestParse_TrailingCharacterAfterList(t *testing.T) {
	t.Parallel()

	// Only the last or second to last character has to close a list; a
	// single stray character after it is dropped.
	got, err := expression.Parse(`f(a)x`)
	require.NoError(t, err)
	assert.Equal(t, []expression.Descriptor{
		{Name: "f", Arguments: []expression.Argument{expression.Dynamic("a")}},
	}, got)
}

func TestParser_ReusedInstanceDoesNotLeakState(t *testing.T) {
	t.Parallel()

	parser := expression.NewParser()

	_, err := parser.Parse(`where(author,'ja`)
	require.Error(t, err)

	first, err := parser.Parse(`limit(10)`)
	require.NoError(t, err)
	assert.Equal(t, []expression.Descriptor{
		{Name: "limit", Arguments: []expression.Argument{expression.Dynamic("10")}},
	}, first)

	second, err := parser.Parse(`sort('name')`)
	require.NoError(t, err)
	assert.Equal(t, []expression.Descriptor{
		{Name: "sort", Arguments: []expression.Argument{expression.String("name")}},
	}, second)
}

func TestParser_ConcurrentUse(t *testing.T) {
	t.Parallel()

	parser := expression.NewParser()
	exprs := []string{`where(author,'jane')|limit(10)`, `f('a\'b')`, `sort(date,desc)`}

	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func(expr string) {
			defer wg.Done()
			got, err := parser.Parse(expr)
			assert.NoError(t, err)
			assert.Equal(t, expr, expression.Join(got))
		}(exprs[i%len(exprs)])
	}
	wg.Wait()
}

func TestParser_WithMaxExpressionLength(t *testing.T) {
	t.Parallel()

	parser := expression.NewParser(expression.WithMaxExpressionLength(8))

	_, err := parser.Parse(`limit(10)`)
	var parseErr *expression.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, expression.CodeExpressionTooLong, parseErr.Code)
	assert.Zero(t, parseErr.Offset)

	// Length is counted in characters, not bytes.
	got, err := parser.Parse(`f(日本語)`)
	require.NoError(t, err)
	assert.Equal(t, "日本語", got[0].Arguments[0].Value)

	unlimited := expression.NewParser(expression.WithMaxExpressionLength(0))
	_, err = unlimited.Parse("f(" + strings.Repeat("a", 2*expression.DefaultMaxExpressionLength) + ")")
	assert.NoError(t, err)

	_, err = expression.NewParser().Parse("f(" + strings.Repeat("a", 2*expression.DefaultMaxExpressionLength) + ")")
	assert.NoError(t, err, "no limit unless configured")
}

func TestParse_LongCanonicalFormParsesAgain(t *testing.T) {
	t.Parallel()

	// Backslashes after a closed string are kept literally and doubled by
	// Join, so the canonical form is longer than the input.
	expr := "f('a'" + strings.Repeat(`\`, 6000) + ")"
	require.Len(t, []rune(expr), 6006)

	first, err := expression.Parse(expr)
	require.NoError(t, err)

	canonical := expression.Join(first)
	assert.Len(t, []rune(canonical), 12006)

	second, err := expression.Parse(canonical)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParser_WithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	parser := expression.NewParser(expression.WithLogger(logger))

	_, err := parser.Parse(`f(a`)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "rejected filter expression")
	assert.Contains(t, buf.String(), "unterminated")
}

func TestParseError_AsJSON(t *testing.T) {
	t.Parallel()

	_, err := expression.Parse(`f('a`)
	var parseErr *expression.ParseError
	require.ErrorAs(t, err, &parseErr)

	assert.JSONEq(t,
		`{"code":"unterminated_string","message":"unterminated string started at character 3","offset":4,"start_offset":3,"source":"f('a"}`,
		parseErr.AsJSON())
	assert.Contains(t, parseErr.Error(), "character 4: unterminated string")
}
