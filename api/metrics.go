// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stacklok/filterexpr/expression"
)

const namespace = "filterexpr"

type metrics struct {
	parses    *prometheus.CounterVec
	cacheHits prometheus.Counter
	requests  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_total",
			Help:      "Expressions parsed, by result. The result is ok or the parse error code.",
		}, []string{"result"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_cache_hits_total",
			Help:      "Expressions served from the parse cache.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method and status code.",
		}, []string{"method", "code"}),
	}
	reg.MustRegister(m.parses, m.cacheHits, m.requests)
	return m
}

func (m *metrics) observeParse(err error, cacheHit bool) {
	if cacheHit {
		m.cacheHits.Inc()
	}
	result := "ok"
	var parseErr *expression.ParseError
	if errors.As(err, &parseErr) {
		result = string(parseErr.Code)
	} else if err != nil {
		result = "error"
	}
	m.parses.WithLabelValues(result).Inc()
}

func (m *metrics) observeRequest(method string, status int) {
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
