// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for filter expressions.
var (
	// ErrStructural is returned when a delimiter is used out of context or a
	// construct is left unterminated.
	ErrStructural = errors.New("malformed filter expression")

	// ErrEscape is returned when a string literal contains an invalid escape sequence.
	ErrEscape = errors.New("invalid escape sequence in filter expression")

	// ErrParameterCount is returned when fewer arguments were supplied than a filter requires.
	ErrParameterCount = errors.New("unmatched parameter count")
)

// ErrorCode identifies the rule that rejected an expression.
type ErrorCode string

const (
	// CodeLeadingFilterDelimiter indicates the expression starts with '|'.
	CodeLeadingFilterDelimiter ErrorCode = "leading_filter_delimiter"
	// CodeLeadingInputEnd indicates the expression starts with ')'.
	CodeLeadingInputEnd ErrorCode = "leading_input_end"
	// CodeLeadingInputStart indicates the expression starts with '('.
	CodeLeadingInputStart ErrorCode = "leading_input_start"
	// CodeLeadingStringDelimiter indicates the expression starts with a quote.
	CodeLeadingStringDelimiter ErrorCode = "leading_string_delimiter"
	// CodeLeadingInputDelimiter indicates the expression starts with ','.
	CodeLeadingInputDelimiter ErrorCode = "leading_input_delimiter"
	// CodeUnexpectedFilterDelimiter indicates a '|' that does not follow a closed argument list.
	CodeUnexpectedFilterDelimiter ErrorCode = "unexpected_filter_delimiter"
	// CodeUnexpectedInputStart indicates a '(' inside an argument list.
	CodeUnexpectedInputStart ErrorCode = "unexpected_input_start"
	// CodeUnexpectedInputEnd indicates a ')' outside an argument list.
	CodeUnexpectedInputEnd ErrorCode = "unexpected_input_end"
	// CodeUnexpectedInputDelimiter indicates a ',' outside an argument list.
	CodeUnexpectedInputDelimiter ErrorCode = "unexpected_input_delimiter"
	// CodeInvalidEscape indicates a backslash followed by something other than a quote or backslash.
	CodeInvalidEscape ErrorCode = "invalid_escape"
	// CodeUnterminatedString indicates the input ended inside a string literal.
	CodeUnterminatedString ErrorCode = "unterminated_string"
	// CodeUnterminatedInputList indicates the input ended inside an argument list.
	CodeUnterminatedInputList ErrorCode = "unterminated_input_list"
	// CodeMissingInputList indicates trailing content that is not enclosed by an argument list.
	CodeMissingInputList ErrorCode = "missing_input_list"
	// CodeExpectingFilter indicates the expression ends with a '|'.
	CodeExpectingFilter ErrorCode = "expecting_filter"
	// CodeExpressionTooLong indicates the expression exceeds the parser's length limit.
	CodeExpressionTooLong ErrorCode = "expression_too_long"
)

// ParseError describes why an expression was rejected.
// Offsets are 1-based and count codepoints, not bytes.
type ParseError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Offset is the character at which the problem was detected.
	Offset int `json:"offset,omitempty"`
	// StartOffset is where an unterminated string or argument list began, or 0.
	StartOffset int    `json:"start_offset,omitempty"`
	Source      string `json:"source"`

	sentinel error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Offset == 0 {
		return fmt.Sprintf("filter expression %q: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("filter expression %q: character %d: %s", e.Source, e.Offset, e.Message)
}

// Unwrap returns ErrStructural or ErrEscape.
func (e *ParseError) Unwrap() error {
	return e.sentinel
}

// AsJSON returns the error details as a JSON string.
func (e *ParseError) AsJSON() string {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to marshal JSON: %s"}`, err)
	}
	return string(b)
}

func newParseError(source string, code ErrorCode, offset, startOffset int, format string, args ...any) *ParseError {
	sentinel := ErrStructural
	if code == CodeInvalidEscape {
		sentinel = ErrEscape
	}
	return &ParseError{
		Code:        code,
		Message:     fmt.Sprintf(format, args...),
		Offset:      offset,
		StartOffset: startOffset,
		Source:      source,
		sentinel:    sentinel,
	}
}
