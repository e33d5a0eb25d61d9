// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package api serves filter expression parsing over HTTP.

# Routes

	GET  /v1/parse?expr=...        parse an expression
	POST /v1/format                render descriptors as canonical text
	POST /v1/bind                  bind a filter's arguments to parameter names
	GET  /v1/filtersets            list stored filter names
	GET  /v1/filtersets/{name}     fetch a stored filter
	GET  /metrics                  Prometheus metrics

Successful parse and filter set responses carry the canonical expression in
the X-Filter-Canonical header when it is a valid header value.

Errors are JSON bodies written by httperr.Write. Rejected expressions return
400 with the parse error as detail:

	{"status":400,"error":"...","detail":{"code":"unterminated_string","offset":4,...}}

# Basic Usage

	handler := api.NewHandler(expression.NewParser(), set, logger)
	srv := &http.Server{Addr: ":8080", Handler: handler}
*/
package api
