/*
Copyright (C) 2023-2024  Carl-Philip Hänsch
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
/*
 * A minimal applicative Lisp: every element of a list, the head included,
 * is evaluated before the head's text selects a built-in operator.
 */
package scm

import (
	"fmt"
	"io"
	"os"
	"time"
)

type Symbol string

/*
 Eval / Apply
*/

func Eval(expression Scmer, en *Env) (Scmer, error) {
	if !expression.IsSlice() {
		return expression, nil // atoms evaluate to themselves
	}
	list := expression.Slice()
	if len(list) == 0 {
		return NewNil(), nil
	}
	reduced := make([]Scmer, len(list))
	for i, x := range list {
		v, err := Eval(x, en)
		if err != nil {
			return NewNil(), err
		}
		reduced[i] = v
	}
	return Apply(reduced[0], reduced[1:], en)
}

// Apply dispatches on the display text of an already evaluated head.
func Apply(head Scmer, args []Scmer, en *Env) (value Scmer, err error) {
	name := SerializeToString(head)
	def := en.FindRead(Symbol(name))
	if def == nil {
		return NewNil(), &EvalError{name, "undefined operator"}
	}
	if err := checkArity(def, len(args)); err != nil {
		return NewNil(), err
	}
	t := CurrentTrace()
	if t == nil && !TracePrint {
		return def.Fn(en, args...)
	}
	var start time.Time
	if TracePrint {
		start = time.Now()
	}
	if t != nil {
		t.Duration(name, "scm", func() {
			value, err = def.Fn(en, args...)
		})
	} else {
		value, err = def.Fn(en, args...)
	}
	if TracePrint {
		fmt.Println("trace", time.Since(start).String(), name)
	}
	return
}

// unwrapEval drops the first element of a list view and evaluates the rest
// as a new list; this is how (eval) and (if) consume (symbol ...) data.
func unwrapEval(v Scmer, en *Env) (Scmer, error) {
	list := v.Slice()
	if len(list) < 2 {
		return NewNil(), nil
	}
	return Eval(NewSlice(list[1:]), en)
}

/*
 Environments
*/

type Vars map[Symbol]*Declaration
type Env struct {
	Vars   Vars
	Outer  *Env
	Stdout io.Writer  // nil: ask Outer, finally os.Stdout
	Stdin  LineReader // nil: ask Outer, finally os.Stdin
}

// NewEnv creates an environment that layers further operators over outer
func NewEnv(outer *Env) *Env {
	return &Env{Vars: make(Vars), Outer: outer}
}

func (e *Env) FindRead(s Symbol) *Declaration {
	if def, ok := e.Vars[s]; ok {
		return def
	}
	if e.Outer == nil {
		return nil
	}
	return e.Outer.FindRead(s)
}

func (e *Env) Output() io.Writer {
	for en := e; en != nil; en = en.Outer {
		if en.Stdout != nil {
			return en.Stdout
		}
	}
	return os.Stdout
}

func (e *Env) Input() LineReader {
	for en := e; en != nil; en = en.Outer {
		if en.Stdin != nil {
			return en.Stdin
		}
	}
	return defaultInput
}

/*
 Primitives
*/

var Globalenv Env

func init() {
	Globalenv = Env{
		Vars:  make(Vars),
		Outer: nil,
	}

	DeclareTitle("Builtins")
	Declare(&Globalenv, &Declaration{
		"eval", "drops the first element of a list and evaluates the rest as a new list; use it on data built with (symbol ...)",
		1, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"code", "list", "tagged list whose tail is the program to run"},
		}, "any",
		func(en *Env, a ...Scmer) (Scmer, error) {
			return unwrapEval(a[0], en)
		},
	})
	Declare(&Globalenv, &Declaration{
		"if", "selects the then- or else-value by the condition; a selected list is unwrapped and evaluated like (eval). Both branches have already been evaluated when if runs.",
		3, 3,
		[]DeclarationParameter{
			DeclarationParameter{"condition", "bool", "condition"},
			DeclarationParameter{"then", "any", "value if the condition is true"},
			DeclarationParameter{"else", "any", "value if the condition is false"},
		}, "any",
		func(en *Env, a ...Scmer) (Scmer, error) {
			branch := a[2]
			if a[0].Bool() {
				branch = a[1]
			}
			if branch.IsSlice() {
				return unwrapEval(branch, en)
			}
			return branch, nil
		},
	})
	Declare(&Globalenv, &Declaration{
		"symbol", "tags its arguments as data: returns (symbol arg...), which (eval) turns back into (arg...)",
		0, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values to tag"},
		}, "list",
		func(en *Env, a ...Scmer) (Scmer, error) {
			tagged := make([]Scmer, 0, len(a)+1)
			tagged = append(tagged, NewSymbol("symbol"))
			tagged = append(tagged, a...)
			return NewSlice(tagged), nil
		},
	})
	Declare(&Globalenv, &Declaration{
		"exit", "stops the program and terminates the process with status 0",
		0, Unlimited,
		[]DeclarationParameter{}, "nil",
		func(en *Env, a ...Scmer) (Scmer, error) {
			return NewNil(), &ExitError{0}
		},
	})

	init_alu()
	init_compare()
	init_strings()
	init_streams()
}
