/*
Copyright (C) 2023  Carl-Philip Hänsch
Copyright (C) 2013  Pieter Kelchtermans (originally licensed unter WTFPL 2.0)

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
	"strconv"
	"strings"
)

// parseNumber accepts decimal float literals (including inf and NaN).
// Literals that overflow become +-inf instead of failing.
func parseNumber(s string) (float64, bool) {
	if s == "" || strings.ContainsAny(s, "_xX") {
		return 0, false // no hex floats, no digit separators
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return f, true
	}
	return 0, false
}

// Run evaluates a whole program text and returns the value of its last
// top-level expression. Everything is read before anything is evaluated,
// so a syntax error anywhere means nothing runs.
func Run(source string, en *Env) (Scmer, error) {
	tokens, err := Tokenize(strings.TrimSpace(source))
	if err != nil {
		return NewNil(), err
	}
	code := make([]Scmer, len(tokens))
	for i, token := range tokens {
		if code[i], err = Read(token); err != nil {
			return NewNil(), err
		}
	}
	result := NewNil()
	for _, c := range code {
		if result, err = Eval(c, en); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Syntactic Analysis
func Read(token string) (Scmer, error) {
	if token == "" {
		return NewNil(), &SyntaxError{Kind: EmptyToken, Line: 1, Col: 1, Msg: "empty token"}
	}
	// a single ( ) or " must never be sliced as a group or string
	if len(token) >= 2 {
		first, last := token[0], token[len(token)-1]
		if first == '(' && last == ')' {
			tokens, err := Tokenize(token[1 : len(token)-1])
			if err != nil {
				return NewNil(), err
			}
			L := make([]Scmer, len(tokens))
			for i, t := range tokens {
				if L[i], err = Read(t); err != nil {
					return NewNil(), err
				}
			}
			return NewSlice(L), nil
		}
		if first == '"' && last == '"' {
			return NewString(token[1 : len(token)-1]), nil
		}
	}
	if f, ok := parseNumber(token); ok {
		return NewFloat(f), nil
	}
	switch token {
	case "true":
		return NewBool(true), nil
	case "false":
		return NewBool(false), nil
	case "nil":
		return NewNil(), nil
	}
	return NewSymbol(token), nil
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\u3000'
}

// Lexical Analysis
//
// Tokenize splits s into atoms, complete parenthesized groups and complete
// string literals. Groups are returned as one opaque token including their
// parentheses; Read tokenizes their interior again. Quotes are only
// delimiters outside of groups.
func Tokenize(s string) ([]string, error) {
	tokens := make([]string, 0)
	var current strings.Builder
	depth := 0
	quoting := false
	line, col := 1, 0
	openLine, openCol := 0, 0 // where the pending group or string started

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, ch := range s {
		col++
		switch {
		case ch == '(' && !quoting:
			if depth == 0 {
				flush()
				openLine, openCol = line, col
			}
			depth++
			current.WriteRune(ch)
		case ch == ')' && !quoting:
			if depth == 0 {
				return nil, &SyntaxError{Kind: UnmatchedClose, Line: line, Col: col, Msg: "unexpected )"}
			}
			current.WriteRune(ch)
			depth--
			if depth == 0 {
				flush()
			}
		case ch == '"' && depth == 0:
			if quoting {
				current.WriteRune(ch)
				quoting = false
				flush()
			} else {
				flush()
				openLine, openCol = line, col
				quoting = true
				current.WriteRune(ch)
			}
		case isWhitespace(ch) && depth == 0 && !quoting:
			flush()
		default:
			current.WriteRune(ch)
		}
		if ch == '\n' {
			line++
			col = 0
		}
	}
	if depth > 0 {
		return nil, &SyntaxError{Kind: UnterminatedList, Line: openLine, Col: openCol, Msg: "expecting matching )"}
	}
	if quoting {
		return nil, &SyntaxError{Kind: UnterminatedString, Line: openLine, Col: openCol, Msg: "unterminated string"}
	}
	flush()
	return tokens, nil
}
