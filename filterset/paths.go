// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package filterset

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/stacklok/filterexpr/env"
)

// EnvConfig overrides the filter set location, relative to env.Prefix.
const EnvConfig = "CONFIG"

// ConfigPath returns the filter set file within the given config home directory.
// This is the injectable, testable form. For the standard XDG location, use DefaultConfigPath.
func ConfigPath(configHome string) string {
	return filepath.Join(configHome, "filterexpr", "filters.yaml")
}

// DefaultConfigPath returns the default filter set file using XDG base directory conventions.
func DefaultConfigPath() string {
	return ConfigPath(xdg.ConfigHome)
}

// ResolvePath returns FILTEREXPR_CONFIG when it is set and DefaultConfigPath otherwise.
func ResolvePath(reader env.Reader) string {
	if p := env.NewPrefixReader(reader).Getenv(EnvConfig); p != "" {
		return p
	}
	return DefaultConfigPath()
}
