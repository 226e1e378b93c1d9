/*
Copyright (C) 2024  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package scm

import (
	"errors"
	"fmt"
)

type SyntaxKind int

const (
	UnmatchedClose SyntaxKind = iota
	UnterminatedList
	UnterminatedString
	EmptyToken
)

// SyntaxError aborts a program before anything is evaluated. Line and Col
// are relative to the text that was being tokenized.
type SyntaxError struct {
	Kind SyntaxKind
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// EvalError aborts the evaluation of the current program.
type EvalError struct {
	Op  string
	Msg string
}

func (e *EvalError) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return e.Op + ": " + e.Msg
}

// ExitError is returned by (exit). It is a request to terminate the
// process, not a failure.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// IsIncomplete tells whether err only means that the program text ended
// inside an open list, so more input may complete it.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Kind == UnterminatedList
}

// IsExit reports whether err carries an (exit) request and returns its status.
func IsExit(err error) (int, bool) {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code, true
	}
	return 0, false
}
