// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package expression parses compact filter expressions into filter descriptors
and renders descriptors back into canonical text.

An expression is a pipe-delimited list of clauses. Each clause names a filter
and lists its arguments:

	where(author,'jane')|limit(10)

Arguments are either dynamic tokens written without quotes (author, 10) or
string literals delimited by single quotes. Inside a string literal the only
escape sequences are \' and \\.

# Basic Usage

	filters, err := expression.Parse(`where(author,'jane')|limit(10)`)
	if err != nil {
	    // handle error
	}
	// filters[0].Name == "where"
	// filters[0].Arguments == []Argument{Dynamic("author"), String("jane")}

Render descriptors back to text with Join. The result parses to the same
descriptors:

	expr := expression.Join(filters) // where(author,'jane')|limit(10)

# Building Filters

Build and BuildDescriptor create filters from raw values without parsing.
Values containing a quote or backslash become string literals:

	expression.Build("where", "title", "it's") // where(title,'it\'s')

# Binding Parameters

MapParameters binds arguments to a filter's parameter names by position.
Surplus arguments are collected into the last parameter:

	params, err := expression.MapParameters([]string{"field", "values"}, filters[0].Arguments)

# Error Handling

Rejected expressions return a *ParseError with a code and a 1-based
character offset:

	_, err := expression.Parse(`f('a`)
	var parseErr *expression.ParseError
	if errors.As(err, &parseErr) {
	    fmt.Println(parseErr.Code)   // unterminated_string
	    fmt.Println(parseErr.Offset) // 4
	    fmt.Print(expression.FormatDiagnostic(parseErr, false))
	}

Every ParseError wraps ErrStructural or ErrEscape.

# Concurrency

Each call to Parse uses its own scan state. A Parser may be shared between
goroutines.
*/
package expression
