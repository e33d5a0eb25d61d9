// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/stacklok/filterexpr/expression"
)

// parseCache keeps successful parse results keyed by expression text.
// Once limit entries are stored, new results are no longer cached.
// Cached descriptors are shared between requests and must not be modified.
type parseCache struct {
	entries *xsync.MapOf[string, []expression.Descriptor]
	limit   int
}

func newParseCache(limit int) *parseCache {
	return &parseCache{
		entries: xsync.NewMapOf[string, []expression.Descriptor](),
		limit:   limit,
	}
}

// parse returns the descriptors for expr and whether they came from the cache.
func (c *parseCache) parse(parser *expression.Parser, expr string) ([]expression.Descriptor, bool, error) {
	if filters, ok := c.entries.Load(expr); ok {
		return filters, true, nil
	}
	filters, err := parser.Parse(expr)
	if err != nil {
		return nil, false, err
	}
	if c.entries.Size() < c.limit {
		c.entries.Store(expr, filters)
	}
	return filters, false, nil
}
