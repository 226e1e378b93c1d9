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
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

const newprompt = "\033[32m>\033[0m "
const contprompt = "\033[32m.\033[0m "
const resultprompt = "\033[31m=\033[0m "

var replMu sync.Mutex
var replInstance *readline.Instance

// CloseRepl gives the terminal back; safe to call from exit handlers
func CloseRepl() {
	replMu.Lock()
	defer replMu.Unlock()
	if replInstance != nil {
		replInstance.Close()
		replInstance = nil
	}
}

// terminal is the part of *readline.Instance the shell loop needs
type terminal interface {
	Readline() (string, error)
	SetPrompt(string)
	SaveHistory(string) error
	Stdout() io.Writer
}

// replInput lets (input) read through the same line editor as the REPL.
// Its answers are not program text and stay out of the history.
type replInput struct {
	t terminal
}

func (r replInput) ReadLine(prompt string) (string, error) {
	r.t.SetPrompt(prompt)
	line, err := r.t.Readline()
	if err == io.EOF {
		return "", nil
	}
	if err == readline.ErrInterrupt {
		return "", errors.New("interrupted")
	}
	return line, err
}

// Repl reads programs from the terminal until EOF or ^C on an empty line.
// It returns an *ExitError when a program called (exit).
func Repl(en *Env, historyFile string) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:                 newprompt,
		HistoryFile:            historyFile,
		DisableAutoSaveHistory: true,
		AutoComplete:           NewCompleter(en),
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		HistorySearchFold:      true,
	})
	if err != nil {
		return err
	}
	replMu.Lock()
	replInstance = l
	replMu.Unlock()
	defer CloseRepl()
	l.CaptureExitSignal()
	return repl(l, en)
}

func repl(t terminal, en *Env) error {
	shell := NewEnv(en)
	shell.Stdout = t.Stdout()
	shell.Stdin = replInput{t}

	oldline := ""
	for {
		t.SetPrompt(newprompt)
		if oldline != "" {
			t.SetPrompt(contprompt)
		}
		line, err := t.Readline()
		if err == readline.ErrInterrupt {
			if len(oldline+line) == 0 {
				return nil
			}
			oldline = ""
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" {
			t.SaveHistory(line) // a failing history file does not stop the shell
		}
		line = oldline + line
		if strings.TrimSpace(line) == "" {
			continue
		}

		result, err := Run(line, shell)
		if IsIncomplete(err) {
			// keep oldline
			oldline = line + "\n"
			continue
		}
		oldline = ""
		if _, ok := IsExit(err); ok {
			return err
		}
		if err != nil {
			fmt.Fprintln(t.Stdout(), "error:", err)
			continue
		}
		fmt.Fprint(t.Stdout(), resultprompt)
		fmt.Fprintln(t.Stdout(), SerializeToString(result))
	}
}
