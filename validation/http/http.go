// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package http provides validation functions for HTTP headers.
package http

import (
	"errors"
	"fmt"

	"golang.org/x/net/http/httpguts"
)

// Length limits applied to header names and values.
const (
	MaxHeaderNameLength  = 256
	MaxHeaderValueLength = 8192
)

// ErrInvalidHeader is wrapped by every error returned from this package.
var ErrInvalidHeader = errors.New("invalid HTTP header")

// ValidateHeaderName validates that a string is a valid HTTP header name per RFC 7230.
// It checks for CRLF injection, control characters, and ensures RFC token compliance.
func ValidateHeaderName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidHeader)
	}

	if len(name) > MaxHeaderNameLength {
		return fmt.Errorf("%w: name exceeds maximum length of %d bytes", ErrInvalidHeader, MaxHeaderNameLength)
	}

	// Same check as Go's HTTP/2 implementation
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("%w: name contains invalid characters", ErrInvalidHeader)
	}

	return nil
}

// ValidateHeaderValue validates that a string is a valid HTTP header value per RFC 7230.
// It checks for CRLF injection and control characters. Bytes above 0x7F are
// accepted as obs-text, so UTF-8 filter expressions pass unchanged.
func ValidateHeaderValue(value string) error {
	if value == "" {
		return fmt.Errorf("%w: value cannot be empty", ErrInvalidHeader)
	}

	if len(value) > MaxHeaderValueLength {
		return fmt.Errorf("%w: value exceeds maximum length of %d bytes", ErrInvalidHeader, MaxHeaderValueLength)
	}

	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("%w: value contains control characters", ErrInvalidHeader)
	}

	return nil
}

// SetHeader sets name to value on h only when both validate.
// It reports whether the header was set.
func SetHeader(h interface{ Set(key, value string) }, name, value string) bool {
	if ValidateHeaderName(name) != nil || ValidateHeaderValue(value) != nil {
		return false
	}
	h.Set(name, value)
	return true
}
