// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package http provides security-focused validation functions for HTTP headers.

The filter API echoes canonical filter expressions back in response headers.
Expressions are user input and may contain line breaks or control characters
inside string literals, so every header value is validated before it is set.

# Header Validation

Validate HTTP header names and values per RFC 7230:

	if err := http.ValidateHeaderName("X-Filter-Canonical"); err != nil {
		// Handle invalid header name
	}

	if err := http.ValidateHeaderValue("where(author,'jane')|limit(10)"); err != nil {
		// Handle invalid header value
	}

The validators check for CRLF injection attempts, control characters, RFC 7230
token compliance for header names, and length limits (256 bytes for names,
8192 for values). All errors wrap ErrInvalidHeader.

SetHeader combines both checks and skips invalid headers:

	if !http.SetHeader(w.Header(), "X-Filter-Canonical", canonical) {
		// header omitted
	}
*/
package http
