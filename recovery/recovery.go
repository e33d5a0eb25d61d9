// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/stacklok/filterexpr/httperr"
)

// Middleware returns an HTTP middleware that recovers from panics.
// When a panic occurs, the panic value and stack trace are logged at ERROR
// and the client receives a 500 Internal Server Error JSON response,
// preventing the panic from crashing the server.
// A nil logger discards the log records.
func Middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// http.ErrAbortHandler is the documented way to abort a response.
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel comparison of a panic value
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "recovered from panic",
					"panic", fmt.Sprint(rec),
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				httperr.Write(w, httperr.New("panic while serving request", http.StatusInternalServerError))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
