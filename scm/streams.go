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

import "io"
import "os"
import "bufio"
import "strings"

// LineReader is where (input) gets its lines from. The prompt has to be
// visible to the user before ReadLine blocks.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

type flusher interface {
	Flush() error
}

// StreamInput writes the prompt to Out and reads one line from In.
type StreamInput struct {
	Out io.Writer
	In  *bufio.Reader
}

func NewStreamInput(out io.Writer, in io.Reader) *StreamInput {
	return &StreamInput{out, bufio.NewReader(in)}
}

func (s *StreamInput) ReadLine(prompt string) (string, error) {
	if _, err := io.WriteString(s.Out, prompt); err != nil {
		return "", err
	}
	if f, ok := s.Out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return "", err
		}
	}
	line, err := s.In.ReadString('\n')
	if err == io.EOF {
		err = nil // a last line without newline still counts, EOF reads as ""
	}
	return line, err
}

var defaultInput LineReader = NewStreamInput(os.Stdout, os.Stdin)

func emit(en *Env, op string, text string) (Scmer, error) {
	out := en.Output()
	if _, err := io.WriteString(out, text); err != nil {
		return NewNil(), &EvalError{op, err.Error()}
	}
	if f, ok := out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return NewNil(), &EvalError{op, err.Error()}
		}
	}
	return NewNil(), nil
}

func init_streams() {
	DeclareTitle("IO")
	Declare(&Globalenv, &Declaration{
		"print", "writes the raw text of a value to stdout",
		1, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value to print"},
		}, "nil",
		func(en *Env, a ...Scmer) (Scmer, error) {
			return emit(en, "print", String(a[0]))
		},
	})
	Declare(&Globalenv, &Declaration{
		"println", "writes the raw text of a value and a line break to stdout",
		1, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value to print"},
		}, "nil",
		func(en *Env, a ...Scmer) (Scmer, error) {
			return emit(en, "println", String(a[0])+"\n")
		},
	})
	Declare(&Globalenv, &Declaration{
		"input", "shows a prompt, waits for one line of input and returns it trimmed",
		1, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"prompt", "any", "text shown before reading"},
		}, "string",
		func(en *Env, a ...Scmer) (Scmer, error) {
			line, err := en.Input().ReadLine(String(a[0]))
			if err != nil {
				return NewNil(), &EvalError{"input", err.Error()}
			}
			return NewString(strings.TrimSpace(line)), nil
		},
	})
}
