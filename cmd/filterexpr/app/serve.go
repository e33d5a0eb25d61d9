// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/stacklok/filterexpr/api"
	"github.com/stacklok/filterexpr/expression"
	"github.com/stacklok/filterexpr/filterset"
)

const shutdownTimeout = 10 * time.Second

func serveCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the filter API over HTTP",
		Description: `Starts the HTTP API. The filter set is optional when --config is
not given: a missing default file serves an empty set.

Example:
  filterexpr serve --addr :8080 --config ./filters.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Address to listen on",
				Value:   ":8080",
			},
			configFlag(),
			&cli.IntFlag{
				Name:  "max-length",
				Usage: "Maximum expression length in characters, 0 for no limit",
				Value: expression.DefaultMaxExpressionLength,
			},
			&cli.IntFlag{
				Name:  "cache-size",
				Usage: "Number of parsed expressions to cache, 0 to disable",
				Value: api.DefaultCacheSize,
			},
		},
		Action: func(c *cli.Context) error {
			set, err := st.loadServeSet(c)
			if err != nil {
				return err
			}

			handler := api.NewHandler(
				expression.NewParser(
					expression.WithMaxExpressionLength(c.Int("max-length")),
					expression.WithLogger(st.logger),
				),
				set,
				st.logger,
				api.WithCacheSize(c.Int("cache-size")),
			)
			srv := &http.Server{
				Addr:              c.String("addr"),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return st.run(ctx, srv)
		},
	}
}

// loadServeSet loads the configured filter set. Without --config a missing
// file yields an empty set.
func (st *state) loadServeSet(c *cli.Context) (*filterset.Set, error) {
	path := st.configPath(c)
	set, err := filterset.Load(path)
	switch {
	case err == nil:
		st.logger.Info("loaded filter set", "path", path, "filters", set.Len())
		return set, nil
	case errors.Is(err, os.ErrNotExist) && c.String("config") == "":
		st.logger.Warn("filter set not found, serving an empty set", "path", path)
		return filterset.Parse([]byte("filters: {}"))
	default:
		return nil, err
	}
}

func (st *state) run(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		st.logger.Info("starting filter API", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving filter API: %w", err)
	case <-ctx.Done():
	}

	st.logger.Info("shutting down filter API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down filter API: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving filter API: %w", err)
	}
	return nil
}
