// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expression

import "strings"

const (
	tokenFilterDelimiter = '|'
	tokenInputStart      = '('
	tokenInputEnd        = ')'
	tokenInputDelimiter  = ','
	tokenStringDelimiter = '\''
	tokenStringEscape    = '\\'

	// none stands in for a missing neighbour at either end of the input.
	none = rune(-1)

	// argumentCutset is trimmed from every argument when its list closes.
	argumentCutset = " \t\n\r\x00\x0B"
)

// scanState is the position of the scanner relative to argument lists and strings.
type scanState uint8

const (
	stateName           scanState = iota // outside any argument list
	stateArguments                       // inside an argument list
	stateNameString                      // inside a string outside an argument list
	stateArgumentString                  // inside a string inside an argument list
)

func (s scanState) inString() bool {
	return s == stateNameString || s == stateArgumentString
}

func (s scanState) inArguments() bool {
	return s == stateArguments || s == stateArgumentString
}

func (s scanState) openString() scanState {
	if s == stateArguments {
		return stateArgumentString
	}
	return stateNameString
}

func (s scanState) closeString() scanState {
	if s == stateArgumentString {
		return stateArguments
	}
	return stateName
}

// scanner holds the state of a single parse. A new one is created for every call.
type scanner struct {
	source string
	src    []rune

	state   scanState
	kind    Kind
	segment strings.Builder
	name    string
	args    []Argument
	filters []Descriptor

	stringStart int
	listStart   int
}

func newScanner(source string, src []rune) *scanner {
	return &scanner{
		source:  source,
		src:     src,
		filters: []Descriptor{},
	}
}

func (s *scanner) at(i int) rune {
	if i < 0 || i >= len(s.src) {
		return none
	}
	return s.src[i]
}

// run scans the whole input. It returns either every descriptor or an error, never both.
func (s *scanner) run() ([]Descriptor, error) {
	for i := 0; i < len(s.src); i++ {
		cur, prev, next := s.src[i], s.at(i-1), s.at(i+1)
		pos := i + 1

		if err := s.checkContext(cur, prev, pos); err != nil {
			return nil, err
		}
		if next == none {
			if err := s.checkEnd(cur, prev, pos); err != nil {
				return nil, err
			}
		}

		skip, err := s.step(i, cur, next)
		if err != nil {
			return nil, err
		}
		i += skip
	}
	return s.filters, nil
}

// checkContext rejects delimiters that cannot appear at this position.
func (s *scanner) checkContext(cur, prev rune, pos int) error {
	if prev == none {
		switch cur {
		case tokenFilterDelimiter:
			return s.fail(CodeLeadingFilterDelimiter, pos, "cannot start expression with filter delimiter '|'")
		case tokenInputEnd:
			return s.fail(CodeLeadingInputEnd, pos, "cannot start expression with ')'")
		case tokenInputStart:
			return s.fail(CodeLeadingInputStart, pos, "cannot start expression with '('")
		case tokenStringDelimiter:
			return s.fail(CodeLeadingStringDelimiter, pos, "cannot start expression with string delimiter")
		case tokenInputDelimiter:
			return s.fail(CodeLeadingInputDelimiter, pos, "cannot start expression with ','")
		}
		return nil
	}

	inString := s.state.inString()
	switch {
	case cur == tokenFilterDelimiter && prev != tokenInputEnd && !inString:
		return s.fail(CodeUnexpectedFilterDelimiter, pos, "unexpected filter delimiter '|'")
	case cur == tokenInputStart && s.state == stateArguments:
		return s.fail(CodeUnexpectedInputStart, pos, "unexpected '(' inside input list")
	case cur == tokenInputEnd && !inString && !s.state.inArguments():
		return s.fail(CodeUnexpectedInputEnd, pos, "unexpected ')' outside of input list")
	}
	return nil
}

// checkEnd runs on the last character, before it is consumed. The input is
// rejected unless the last or second to last character is ')' and no list
// or string is left open.
func (s *scanner) checkEnd(cur, prev rune, pos int) error {
	switch {
	case s.state.inString() && cur != tokenStringDelimiter:
		return s.unterminatedString(pos)
	case s.state.inArguments() && cur != tokenInputEnd:
		return newParseError(s.source, CodeUnterminatedInputList, pos, s.listStart,
			"unterminated input list started at character %d", s.listStart)
	case cur != tokenInputEnd && prev != tokenInputEnd:
		return s.fail(CodeMissingInputList, pos, "reached end of input without an input list")
	case s.state.inString():
		return s.unterminatedString(pos)
	}
	return nil
}

// step applies the transition for cur and returns how many extra characters it consumed.
func (s *scanner) step(i int, cur, next rune) (int, error) {
	pos := i + 1

	switch cur {
	case tokenStringEscape:
		if !s.state.inString() || next == none {
			break
		}
		if next != tokenStringDelimiter && next != tokenStringEscape {
			return 0, newParseError(s.source, CodeInvalidEscape, pos, s.stringStart,
				`invalid string escape sequence "%c%c"`, cur, next)
		}
		// A valid escape that uses up the rest of the input leaves the string open.
		if i+2 >= len(s.src) {
			return 0, s.unterminatedString(pos)
		}
		s.segment.WriteRune(next)
		return 1, nil

	case tokenStringDelimiter:
		if s.state.inString() {
			s.state = s.state.closeString()
			s.stringStart = 0
			return 0, nil
		}
		s.state = s.state.openString()
		s.kind = KindString
		s.stringStart = pos
		s.segment.Reset()
		return 0, nil

	case tokenFilterDelimiter:
		if s.state.inString() {
			break
		}
		if next == none {
			return 0, s.fail(CodeExpectingFilter, pos, "unexpected end of input, expecting a new filter")
		}
		s.resetClause()
		return 0, nil

	case tokenInputEnd:
		if s.state.inString() {
			break
		}
		s.flush()
		s.state = stateName
		s.listStart = 0
		s.emit()
		return 0, nil

	case tokenInputDelimiter:
		if s.state.inString() {
			break
		}
		if !s.state.inArguments() {
			return 0, s.fail(CodeUnexpectedInputDelimiter, pos, "unexpected ',' outside of input list")
		}
		s.flush()
		return 0, nil

	case tokenInputStart:
		if s.state.inString() {
			break
		}
		s.name = s.segment.String()
		s.segment.Reset()
		s.kind = KindDynamic
		s.state = stateArguments
		s.listStart = pos
		return 0, nil
	}

	s.segment.WriteRune(cur)
	return 0, nil
}

// flush appends the current segment as an argument and starts a new one.
func (s *scanner) flush() {
	s.args = append(s.args, Argument{Value: s.segment.String(), Kind: s.kind})
	s.segment.Reset()
	s.kind = KindDynamic
}

// emit completes the current clause.
func (s *scanner) emit() {
	args := make([]Argument, len(s.args))
	for i, arg := range s.args {
		args[i] = Argument{Value: strings.Trim(arg.Value, argumentCutset), Kind: arg.Kind}
	}
	s.filters = append(s.filters, Descriptor{Name: s.name, Arguments: args})
	s.name = ""
	s.args = nil
}

func (s *scanner) resetClause() {
	s.segment.Reset()
	s.name = ""
	s.args = nil
	s.kind = KindDynamic
}

func (s *scanner) fail(code ErrorCode, pos int, msg string) *ParseError {
	return newParseError(s.source, code, pos, 0, "%s", msg)
}

func (s *scanner) unterminatedString(pos int) *ParseError {
	return newParseError(s.source, CodeUnterminatedString, pos, s.stringStart,
		"unterminated string started at character %d", s.stringStart)
}
