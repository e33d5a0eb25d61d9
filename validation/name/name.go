// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package name provides validation functions for filter set entry names.
package name

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxLength is the longest accepted filter name in bytes.
const MaxLength = 64

var validNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateFilterName validates that a filter name starts with a lowercase
// letter or digit and otherwise contains only lowercase alphanumeric
// characters, underscores and dashes.
func ValidateFilterName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("filter name cannot be empty or consist only of whitespace")
	}

	if strings.Contains(name, "\x00") {
		return fmt.Errorf("filter name cannot contain null bytes")
	}

	if len(name) > MaxLength {
		return fmt.Errorf("filter name exceeds maximum length of %d bytes", MaxLength)
	}

	if name != strings.ToLower(name) {
		return fmt.Errorf("filter name must be lowercase: %q", name)
	}

	if !validNameRegex.MatchString(name) {
		return fmt.Errorf("filter name must start with a letter or digit and contain only "+
			"lowercase alphanumeric characters, underscores, and dashes: %q", name)
	}

	return nil
}
