/*
Copyright (C) 2023-2024  Carl-Philip Hänsch

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

func init_strings() {
	DeclareTitle("Strings")
	Declare(&Globalenv, &Declaration{
		"concat", "concatenates the raw text of all values and returns a string",
		0, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values to concat"},
		}, "string",
		func(en *Env, a ...Scmer) (Scmer, error) {
			var sb strings.Builder
			for _, s := range a {
				sb.WriteString(String(s))
			}
			return NewString(sb.String()), nil
		},
	})
}
