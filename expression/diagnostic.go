// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// ANSI escape codes for colored output.
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
)

const diagnosticIndent = "     "

// FormatDiagnostic renders err as a multi-line message with a caret under the
// offending character.
func FormatDiagnostic(err *ParseError, useColor bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "error[%s]: %s\n", err.Code, err.Message)

	arrow := " --> "
	if useColor {
		arrow = ansiBold + ansiBlue + arrow + ansiReset
	}
	if err.Offset > 0 {
		fmt.Fprintf(&sb, "%scharacter %d\n", arrow, err.Offset)
	} else {
		fmt.Fprintf(&sb, "%sexpression\n", arrow)
	}

	src := []rune(err.Source)
	if err.Offset == 0 || err.Offset > len(src) {
		return sb.String()
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s%s\n", diagnosticIndent, displayable(src))

	// Carets line up by display width so wide characters before the offset are accounted for.
	marks := []rune(strings.Repeat(" ", runewidth.StringWidth(displayable(src))))
	if err.StartOffset > 0 && err.StartOffset < err.Offset {
		marks[columnOf(src, err.StartOffset)] = '-'
	}
	col := columnOf(src, err.Offset)
	if col >= len(marks) {
		marks = append(marks, ' ')
	}
	marks[col] = '^'
	line := strings.TrimRight(string(marks), " ")

	if useColor {
		line = strings.Replace(line, "^", ansiBold+ansiRed+"^"+ansiReset, 1)
	}
	fmt.Fprintf(&sb, "%s%s\n", diagnosticIndent, line)

	return sb.String()
}

// columnOf returns the display column of the 1-based character offset.
func columnOf(src []rune, offset int) int {
	return runewidth.StringWidth(displayable(src[:offset-1]))
}

// displayable replaces control characters so the source fits on one line.
func displayable(src []rune) string {
	out := make([]rune, len(src))
	for i, r := range src {
		if unicode.IsControl(r) {
			r = ' '
		}
		out[i] = r
	}
	return string(out)
}
