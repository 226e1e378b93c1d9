/*
Copyright (C) 2023  Carl-Philip Hänsch

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

// Comparisons work on display text, so (> 10 9) is false: "10" sorts
// before "9" byte by byte.

func Equal(a, b Scmer) bool {
	return SerializeToString(a) == SerializeToString(b)
}

// windowed holds if rel holds for every adjacent pair of display texts
func windowed(rel func(a, b string) bool) func(*Env, ...Scmer) (Scmer, error) {
	return func(en *Env, a ...Scmer) (Scmer, error) {
		texts := make([]string, len(a))
		for i, x := range a {
			texts[i] = SerializeToString(x)
		}
		for i := 1; i < len(texts); i++ {
			if !rel(texts[i-1], texts[i]) {
				return NewBool(false), nil
			}
		}
		return NewBool(true), nil
	}
}

func init_compare() {
	DeclareTitle("Comparison")
	Declare(&Globalenv, &Declaration{
		"=", "returns true if the display texts of all values are equal to the first one",
		0, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values to compare"},
		}, "bool",
		func(en *Env, a ...Scmer) (Scmer, error) {
			for i := 1; i < len(a); i++ {
				if !Equal(a[0], a[i]) {
					return NewBool(false), nil
				}
			}
			return NewBool(true), nil
		},
	})
	Declare(&Globalenv, &Declaration{
		">", "returns true if every value's text sorts after the next one",
		0, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values to compare"},
		}, "bool",
		windowed(func(a, b string) bool { return a > b }),
	})
	Declare(&Globalenv, &Declaration{
		">=", "returns true if no value's text sorts before the next one",
		0, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values to compare"},
		}, "bool",
		windowed(func(a, b string) bool { return a >= b }),
	})
	Declare(&Globalenv, &Declaration{
		"<", "returns true if every value's text sorts before the next one",
		0, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values to compare"},
		}, "bool",
		windowed(func(a, b string) bool { return a < b }),
	})
	Declare(&Globalenv, &Declaration{
		"<=", "returns true if no value's text sorts after the next one",
		0, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values to compare"},
		}, "bool",
		windowed(func(a, b string) bool { return a <= b }),
	})
}
