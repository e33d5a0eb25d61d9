// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging provides the [log/slog.Logger] factory used by the filterexpr
CLI and HTTP server.

# Defaults

  - Format: JSON ([FormatJSON])
  - Level: INFO ([log/slog.LevelInfo])
  - Output: [os.Stderr]
  - Timestamps: [time.RFC3339]

# Environment

FromEnv turns FILTEREXPR_LOG_LEVEL (debug, info, warn, error) and
FILTEREXPR_LOG_FORMAT (json, text) into options:

	opts, err := logging.FromEnv(&env.OSReader{})
	if err != nil {
		// fall back to defaults and report err
	}
	logger := logging.New(append(opts, logging.WithOutput(os.Stderr))...)

# Testing

Inject a buffer to capture log output:

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf))
*/
package logging
