// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package httperr provides error types with HTTP status codes for API error handling.

This package allows errors to carry their intended HTTP response code through the
call stack, enabling centralized error handling in API handlers. The CodedError
type implements the standard error interface and supports error wrapping via
errors.Is() and errors.As().

# Basic Usage

Create errors with HTTP status codes:

	// Create a new error with a status code
	err := httperr.New("resource not found", http.StatusNotFound)

	// Wrap an existing error with a status code
	err := httperr.WithCode(err, http.StatusBadRequest)

# Extracting Status Codes

Extract the HTTP status code from an error chain:

	code := httperr.Code(err)
	// Returns the code if err contains a CodedError
	// Returns http.StatusInternalServerError (500) if no CodedError found
	// Returns http.StatusOK (200) if err is nil

# Error Wrapping

CodedError supports the standard Go error wrapping pattern:

	sentinel := errors.New("database connection failed")
	err := httperr.WithCode(sentinel, http.StatusServiceUnavailable)

	// errors.Is works through the wrapper
	if errors.Is(err, sentinel) {
		// handle specific error
	}

	// errors.As can extract the CodedError
	var coded *httperr.CodedError
	if errors.As(err, &coded) {
		log.Printf("HTTP %d: %s", coded.HTTPCode(), coded.Error())
	}

# Structured Details

WithDetail attaches a value that is encoded into the response body next to the
message. The filter API uses it to return the full parse error:

	err := httperr.WithDetail(parseErr, http.StatusBadRequest, parseErr)

# HTTP Handler Example

Write encodes an error as JSON with the status code from Code:

	func parseHandler(w http.ResponseWriter, r *http.Request) {
		filters, err := parser.Parse(r.URL.Query().Get("expr"))
		if err != nil {
			httperr.Write(w, httperr.WithCode(err, http.StatusBadRequest))
			return
		}
		// ...
	}

The body has the form:

	{"status":400,"error":"...","detail":{...}}

Server errors (5xx) report only the status text so internal messages do not
reach clients.
*/
package httperr
