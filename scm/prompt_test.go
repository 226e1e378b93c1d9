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
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"
)

// scriptedTerminal plays back typed lines and records what the shell did
type scriptedTerminal struct {
	lines   []string
	prompt  string
	seen    []string // prompt shown for each Readline
	history []string
	out     bytes.Buffer
}

func (s *scriptedTerminal) Readline() (string, error) {
	s.seen = append(s.seen, s.prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedTerminal) SetPrompt(p string)            { s.prompt = p }
func (s *scriptedTerminal) SaveHistory(line string) error { s.history = append(s.history, line); return nil }
func (s *scriptedTerminal) Stdout() io.Writer             { return &s.out }

func TestReplInputStaysOutOfHistory(t *testing.T) {
	term := &scriptedTerminal{lines: []string{`(concat "hi " (input "name? "))`, "bob"}}
	if err := repl(term, &Globalenv); err != nil {
		t.Fatalf("repl: %v", err)
	}
	if !reflect.DeepEqual(term.history, []string{`(concat "hi " (input "name? "))`}) {
		t.Fatalf("history %q", term.history)
	}
	if !reflect.DeepEqual(term.seen, []string{newprompt, "name? ", newprompt}) {
		t.Fatalf("prompts %q", term.seen)
	}
	if !strings.Contains(term.out.String(), resultprompt+`"hi bob"`) {
		t.Fatalf("output %q", term.out.String())
	}
}

func TestReplContinuation(t *testing.T) {
	term := &scriptedTerminal{lines: []string{"(+ 1", "2)"}}
	if err := repl(term, &Globalenv); err != nil {
		t.Fatalf("repl: %v", err)
	}
	if !reflect.DeepEqual(term.seen, []string{newprompt, contprompt, newprompt}) {
		t.Fatalf("prompts %q", term.seen)
	}
	if term.out.String() != resultprompt+"3\n" {
		t.Fatalf("output %q", term.out.String())
	}
	if !reflect.DeepEqual(term.history, []string{"(+ 1", "2)"}) {
		t.Fatalf("history %q", term.history)
	}
}

func TestReplErrorDoesNotStop(t *testing.T) {
	term := &scriptedTerminal{lines: []string{"(nope)", "", "(+ 1 1)"}}
	if err := repl(term, &Globalenv); err != nil {
		t.Fatalf("repl: %v", err)
	}
	out := term.out.String()
	if !strings.Contains(out, "error: nope: undefined operator") || !strings.Contains(out, resultprompt+"2\n") {
		t.Fatalf("output %q", out)
	}
}

func TestReplExit(t *testing.T) {
	term := &scriptedTerminal{lines: []string{"(exit)", `(println "after")`}}
	err := repl(term, &Globalenv)
	if code, ok := IsExit(err); !ok || code != 0 {
		t.Fatalf("expected exit, got %v", err)
	}
	if strings.Contains(term.out.String(), "after") {
		t.Fatalf("kept running after exit: %q", term.out.String())
	}
}
