// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package filterset

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/filterexpr/expression"
	"github.com/stacklok/filterexpr/validation/name"
)

// ErrNotFound is returned when a set has no filter with the requested name.
var ErrNotFound = errors.New("filter not found")

type document struct {
	Version string            `yaml:"version,omitempty" json:"version,omitempty"`
	Filters map[string]string `yaml:"filters" json:"filters"`
}

// Set is a validated collection of named filter expressions.
// A Set is immutable once parsed and safe for concurrent reads.
type Set struct {
	version string
	filters map[string][]expression.Descriptor
}

// Load reads and parses the filter set document at path.
func Load(path string) (*Set, error) {
	// #nosec G304 -- path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filter set %s: %w", path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading filter set %s: %w", path, err)
	}
	return set, nil
}

// Parse parses a YAML or JSON filter set document with the default parser.
func Parse(data []byte) (*Set, error) {
	return ParseWith(expression.NewParser(), data)
}

// ParseWith parses a YAML or JSON filter set document, parsing each
// expression with parser. Every invalid entry is reported.
func ParseWith(parser *expression.Parser, data []byte) (*Set, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding filter set: %w", err)
	}
	// yaml.v3 decodes string keyed mappings to map[string]any, which
	// encoding/json accepts.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding filter set: %w", err)
	}
	if err := ValidateSchema(jsonData); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding filter set: %w", err)
	}

	set := &Set{
		version: doc.Version,
		filters: make(map[string][]expression.Descriptor, len(doc.Filters)),
	}

	var errs *multierror.Error
	for _, key := range slices.Sorted(maps.Keys(doc.Filters)) {
		if err := name.ValidateFilterName(key); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("filter %q: invalid name: %w", key, err))
			continue
		}
		descriptors, err := parser.Parse(doc.Filters[key])
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("filter %q: %w", key, err))
			continue
		}
		set.filters[key] = descriptors
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return set, nil
}

// Version returns the document version, which may be empty.
func (s *Set) Version() string {
	return s.version
}

// Len returns the number of filters in the set.
func (s *Set) Len() int {
	return len(s.filters)
}

// Names returns the filter names in sorted order.
func (s *Set) Names() []string {
	return slices.Sorted(maps.Keys(s.filters))
}

// Get returns a copy of the descriptors stored under the filter name.
func (s *Set) Get(filter string) ([]expression.Descriptor, error) {
	descriptors, ok := s.filters[filter]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, filter)
	}
	out := make([]expression.Descriptor, len(descriptors))
	for i, d := range descriptors {
		out[i] = expression.Descriptor{Name: d.Name, Arguments: slices.Clone(d.Arguments)}
	}
	return out, nil
}

// Expression returns the canonical text of the named filter.
func (s *Set) Expression(filter string) (string, error) {
	descriptors, ok := s.filters[filter]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, filter)
	}
	return expression.Join(descriptors), nil
}

// MarshalYAML writes the set in document form with canonical expressions.
func (s *Set) MarshalYAML() (any, error) {
	doc := document{
		Version: s.version,
		Filters: make(map[string]string, len(s.filters)),
	}
	for key, descriptors := range s.filters {
		doc.Filters[key] = expression.Join(descriptors)
	}
	return doc, nil
}
