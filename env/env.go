// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import "os"

// Prefix namespaces every environment variable read by filterexpr.
const Prefix = "FILTEREXPR_"

// Reader defines an interface for environment variable access
type Reader interface {
	Getenv(key string) string
}

// OSReader implements Reader using the standard os package
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// PrefixReader reads keys from an underlying Reader with a fixed prefix prepended.
type PrefixReader struct {
	Prefix string
	Reader Reader
}

// NewPrefixReader returns a PrefixReader that reads Prefix-namespaced keys from r.
func NewPrefixReader(r Reader) *PrefixReader {
	return &PrefixReader{Prefix: Prefix, Reader: r}
}

// Getenv returns the value of the environment variable named by the prefix and key
func (p *PrefixReader) Getenv(key string) string {
	return p.Reader.Getenv(p.Prefix + key)
}
