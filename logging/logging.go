// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/stacklok/filterexpr/env"
)

// Environment keys read by FromEnv, relative to env.Prefix.
const (
	EnvLevel  = "LOG_LEVEL"
	EnvFormat = "LOG_FORMAT"
)

// Format represents the log output format.
type Format int

const (
	// FormatJSON produces JSON-formatted log output using [log/slog.JSONHandler].
	FormatJSON Format = iota

	// FormatText produces human-readable text output using [log/slog.TextHandler].
	FormatText
)

// ParseFormat converts "json" or "text" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	default:
		return FormatJSON, fmt.Errorf("unknown log format %q: must be json or text", s)
	}
}

// ParseLevel converts debug, info, warn or error to a [log/slog.Level].
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q: %w", s, err)
	}
	return lvl, nil
}

type config struct {
	format Format
	level  slog.Leveler
	output io.Writer
}

// Option configures the handler created by [New] and [NewHandler].
type Option func(*config)

// WithFormat sets the output format. The default is [FormatJSON].
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithLevel sets the minimum log level. The default is [log/slog.LevelInfo].
// A [*log/slog.LevelVar] allows the level to change at runtime.
func WithLevel(l slog.Leveler) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithOutput sets the destination writer. The default is [os.Stderr].
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// FromEnv returns options for the level and format found in the FILTEREXPR_LOG_LEVEL
// and FILTEREXPR_LOG_FORMAT variables. Unset variables contribute no option;
// invalid values are reported as an error alongside the options that did parse.
func FromEnv(reader env.Reader) ([]Option, error) {
	prefixed := env.NewPrefixReader(reader)
	var (
		opts []Option
		errs []string
	)

	if v := prefixed.Getenv(EnvLevel); v != "" {
		lvl, err := ParseLevel(v)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			opts = append(opts, WithLevel(lvl))
		}
	}

	if v := prefixed.Getenv(EnvFormat); v != "" {
		f, err := ParseFormat(v)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			opts = append(opts, WithFormat(f))
		}
	}

	if len(errs) > 0 {
		return opts, fmt.Errorf("invalid logging environment: %s", strings.Join(errs, "; "))
	}
	return opts, nil
}

// NewHandler creates the [log/slog.Handler] behind [New], for callers that wrap it.
func NewHandler(opts ...Option) slog.Handler {
	cfg := &config{
		format: FormatJSON,
		level:  slog.LevelInfo,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       cfg.level,
		ReplaceAttr: replaceAttr,
	}

	if cfg.format == FormatText {
		return slog.NewTextHandler(cfg.output, handlerOpts)
	}
	return slog.NewJSONHandler(cfg.output, handlerOpts)
}

// New creates a [*log/slog.Logger] writing JSON at INFO to stderr unless configured otherwise.
func New(opts ...Option) *slog.Logger {
	return slog.New(NewHandler(opts...))
}

// replaceAttr formats the time attribute to RFC3339.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(time.RFC3339))
		}
	}
	return a
}
