// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package name provides validation functions for filter set entry names.

Filter names appear in URLs (/v1/filtersets/{name}) and on the command line,
so they are restricted to a small, URL-safe alphabet.

Valid names:

	"recent"
	"by-author"
	"top_10"
	"2026-releases"

Invalid names:

	""            // empty
	"Recent"      // uppercase
	"-recent"     // leading dash
	"by author"   // space
	"by/author"   // slash
*/
package name
