// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package filterset loads named filter expressions from a YAML or JSON document.

A filter set document maps names to expressions:

	version: "1"
	filters:
	  recent: sort(date,desc)|limit(10)
	  by-jane: where(author,'jane')

Documents are checked against an embedded JSON Schema before any expression
is parsed. Every invalid name and expression in a document is reported, not
just the first one.

The default document lives at $XDG_CONFIG_HOME/filterexpr/filters.yaml and
can be overridden with FILTEREXPR_CONFIG.
*/
package filterset
