// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stacklok/filterexpr/expression"
	"github.com/stacklok/filterexpr/filterset"
	"github.com/stacklok/filterexpr/httperr"
	"github.com/stacklok/filterexpr/recovery"
	validatehttp "github.com/stacklok/filterexpr/validation/http"
)

// HeaderCanonical carries the canonical form of a returned expression.
const HeaderCanonical = "X-Filter-Canonical"

// DefaultCacheSize is the number of parsed expressions kept by default.
const DefaultCacheSize = 1024

const maxBodyBytes = 1 << 20

// Option configures the handler returned by NewHandler.
type Option func(*config)

type config struct {
	cacheSize int
	registry  *prometheus.Registry
}

// WithCacheSize sets how many parsed expressions are cached. Zero disables the cache.
func WithCacheSize(n int) Option {
	return func(c *config) {
		c.cacheSize = max(n, 0)
	}
}

// WithRegistry registers the handler's metrics with reg and serves reg at /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *config) {
		if reg != nil {
			c.registry = reg
		}
	}
}

type handler struct {
	parser  *expression.Parser
	set     *filterset.Set
	logger  *slog.Logger
	cache   *parseCache
	metrics *metrics
}

// ParseResponse is returned by GET /v1/parse and GET /v1/filtersets/{name}.
type ParseResponse struct {
	Name      string                  `json:"name,omitempty"`
	Filters   []expression.Descriptor `json:"filters"`
	Canonical string                  `json:"canonical"`
}

// FormatRequest is the body of POST /v1/format.
type FormatRequest struct {
	Filters []expression.Descriptor `json:"filters"`
}

// FormatResponse is returned by POST /v1/format.
type FormatResponse struct {
	Canonical string `json:"canonical"`
}

// BindRequest is the body of POST /v1/bind.
type BindRequest struct {
	Filter     expression.Descriptor `json:"filter"`
	Parameters []string              `json:"parameters"`
}

// BindResponse is returned by POST /v1/bind.
type BindResponse struct {
	Parameters expression.Parameters `json:"parameters"`
}

// NamesResponse is returned by GET /v1/filtersets.
type NamesResponse struct {
	Names []string `json:"names"`
}

// NewHandler returns the filter API. A nil set serves an empty filter set
// and a nil logger discards log records.
func NewHandler(parser *expression.Parser, set *filterset.Set, logger *slog.Logger, opts ...Option) http.Handler {
	cfg := config{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = prometheus.NewRegistry()
	}
	if parser == nil {
		parser = expression.NewParser()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	h := &handler{
		parser:  parser,
		set:     set,
		logger:  logger,
		cache:   newParseCache(cfg.cacheSize),
		metrics: newMetrics(cfg.registry),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/parse", h.parse)
	mux.HandleFunc("POST /v1/format", h.format)
	mux.HandleFunc("POST /v1/bind", h.bind)
	mux.HandleFunc("GET /v1/filtersets", h.listFilterSets)
	mux.HandleFunc("GET /v1/filtersets/{name}", h.getFilterSet)
	mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.registry, promhttp.HandlerOpts{}))

	return recovery.Middleware(logger)(requestLogger(logger, h.metrics)(mux))
}

func (h *handler) parse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("expr") {
		h.writeError(w, r, httperr.New("missing expr query parameter", http.StatusBadRequest))
		return
	}
	expr := query.Get("expr")

	filters, hit, err := h.cache.parse(h.parser, expr)
	h.metrics.observeParse(err, hit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	canonical := expression.Join(filters)
	validatehttp.SetHeader(w.Header(), HeaderCanonical, canonical)
	writeJSON(w, http.StatusOK, ParseResponse{Filters: filters, Canonical: canonical})
}

func (h *handler) format(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FormatResponse{Canonical: expression.Join(req.Filters)})
}

func (h *handler) bind(w http.ResponseWriter, r *http.Request) {
	var req BindRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	params, err := expression.MapParameters(req.Parameters, req.Filter.Arguments)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("binding %s: %w", req.Filter.Name, err))
		return
	}
	writeJSON(w, http.StatusOK, BindResponse{Parameters: params})
}

func (h *handler) listFilterSets(w http.ResponseWriter, _ *http.Request) {
	names := []string{}
	if h.set != nil {
		names = h.set.Names()
	}
	writeJSON(w, http.StatusOK, NamesResponse{Names: names})
}

func (h *handler) getFilterSet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if h.set == nil {
		h.writeError(w, r, fmt.Errorf("%w: %q", filterset.ErrNotFound, name))
		return
	}
	filters, err := h.set.Get(name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	canonical := expression.Join(filters)
	validatehttp.SetHeader(w.Header(), HeaderCanonical, canonical)
	writeJSON(w, http.StatusOK, ParseResponse{Name: name, Filters: filters, Canonical: canonical})
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	err = withStatus(err)
	if httperr.Code(err) >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	httperr.Write(w, err)
}

// withStatus attaches the HTTP status for known domain errors.
// Errors that already carry a status are returned unchanged.
func withStatus(err error) error {
	var coded *httperr.CodedError
	if errors.As(err, &coded) {
		return err
	}

	var parseErr *expression.ParseError
	switch {
	case errors.As(err, &parseErr):
		return httperr.WithDetail(err, http.StatusBadRequest, parseErr)
	case errors.Is(err, expression.ErrParameterCount):
		return httperr.WithCode(err, http.StatusBadRequest)
	case errors.Is(err, filterset.ErrNotFound):
		return httperr.WithCode(err, http.StatusNotFound)
	default:
		return err
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return httperr.WithCode(fmt.Errorf("request body exceeds %d bytes", maxErr.Limit), http.StatusRequestEntityTooLarge)
		}
		return httperr.WithCode(fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
