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
	"reflect"
	"testing"
)

func TestCompleterPrefix(t *testing.T) {
	c := NewCompleter(&Globalenv)
	if got := c.Complete("pr"); !reflect.DeepEqual(got, []string{"print", "println"}) {
		t.Fatalf("complete pr: %v", got)
	}
	if got := c.Complete("i"); !reflect.DeepEqual(got, []string{"if", "input"}) {
		t.Fatalf("complete i: %v", got)
	}
	if got := c.Complete("zzz"); len(got) != 0 {
		t.Fatalf("complete zzz: %v", got)
	}
}

func TestCompleterSeesLayers(t *testing.T) {
	en := NewEnv(&Globalenv)
	en.Vars["printall"] = &Declaration{Name: "printall"}
	c := NewCompleter(en)
	if got := c.Complete("print"); !reflect.DeepEqual(got, []string{"print", "printall", "println"}) {
		t.Fatalf("complete print: %v", got)
	}
}

func TestCompleterDo(t *testing.T) {
	c := NewCompleter(&Globalenv)
	line := []rune(`(concat "a" (pri`)
	cands, length := c.Do(line, len(line))
	if length != 3 {
		t.Fatalf("length %d", length)
	}
	if len(cands) != 2 || string(cands[0]) != "nt " || string(cands[1]) != "ntln " {
		t.Fatalf("candidates %q", cands)
	}
}
