// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package httperr provides error types with HTTP status codes for API error handling.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// CodedError wraps an error with an HTTP status code.
// This allows errors to carry their intended HTTP response code through the call stack,
// enabling centralized error handling in API handlers.
type CodedError struct {
	err    error
	code   int
	detail any
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	return e.err.Error()
}

// Unwrap returns the underlying error for errors.Is() and errors.As() compatibility.
func (e *CodedError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *CodedError) HTTPCode() int {
	return e.code
}

// Detail returns the structured body attached with WithDetail, or nil.
func (e *CodedError) Detail() any {
	return e.detail
}

// WithCode wraps an error with an HTTP status code.
// The returned error implements Unwrap() for use with errors.Is() and errors.As().
// If err is nil, WithCode returns nil.
func WithCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &CodedError{err: err, code: code}
}

// WithDetail wraps an error with an HTTP status code and a structured detail
// that Write includes in the response body.
// If err is nil, WithDetail returns nil.
func WithDetail(err error, code int, detail any) error {
	if err == nil {
		return nil
	}
	return &CodedError{err: err, code: code, detail: detail}
}

// Code extracts the HTTP status code from an error.
// It unwraps the error chain looking for a CodedError.
// If no CodedError is found, it returns http.StatusInternalServerError (500).
func Code(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.code
	}

	return http.StatusInternalServerError
}

// New creates a new error with the given message and HTTP status code.
// This is a convenience function equivalent to WithCode(errors.New(message), code).
func New(message string, code int) error {
	return &CodedError{err: errors.New(message), code: code}
}

// Response is the JSON body written by Write.
type Response struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
	Detail any    `json:"detail,omitempty"`
}

// Write writes err as a JSON Response with the status code from Code.
// Messages of 5xx errors are replaced by the status text.
func Write(w http.ResponseWriter, err error) {
	code := Code(err)
	resp := Response{Status: code, Error: http.StatusText(code)}
	if code < http.StatusInternalServerError {
		resp.Error = err.Error()
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		resp.Detail = coded.detail
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
