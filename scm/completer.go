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

import "strings"
import "github.com/google/btree"

// Completer offers operator names for tab completion in the REPL. Names
// are kept in a btree so a prefix is one ordered range scan.
type Completer struct {
	names *btree.BTreeG[string]
}

// NewCompleter indexes every operator visible from en
func NewCompleter(en *Env) *Completer {
	c := &Completer{names: btree.NewOrderedG[string](8)}
	for e := en; e != nil; e = e.Outer {
		for name := range e.Vars {
			c.names.ReplaceOrInsert(string(name))
		}
	}
	return c
}

// Complete returns all operator names starting with prefix in sorted order
func (c *Completer) Complete(prefix string) []string {
	var result []string
	c.names.AscendGreaterOrEqual(prefix, func(name string) bool {
		if !strings.HasPrefix(name, prefix) {
			return false
		}
		result = append(result, name)
		return true
	})
	return result
}

// Do implements readline.AutoCompleter: it completes the word left of pos.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	start := pos
	for start > 0 && line[start-1] != '(' && !isWhitespace(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	for _, name := range c.Complete(prefix) {
		newLine = append(newLine, []rune(name[len(prefix):]+" "))
	}
	return newLine, len(line[start:pos])
}
