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

import "math"

// fold applies op from left to right, starting with the first argument.
func fold(op func(acc, x float64) float64) func(*Env, ...Scmer) (Scmer, error) {
	return func(en *Env, a ...Scmer) (Scmer, error) {
		acc := a[0].Float()
		for _, x := range a[1:] {
			acc = op(acc, x.Float())
		}
		return NewFloat(acc), nil
	}
}

func init_alu() {
	DeclareTitle("Arithmetic")
	Declare(&Globalenv, &Declaration{
		"+", "adds numbers",
		1, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "values to add"},
		}, "number",
		fold(func(acc, x float64) float64 { return acc + x }),
	})
	Declare(&Globalenv, &Declaration{
		"-", "subtracts all further numbers from the first one",
		1, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "values"},
		}, "number",
		fold(func(acc, x float64) float64 { return acc - x }),
	})
	Declare(&Globalenv, &Declaration{
		"*", "multiplies numbers",
		1, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "values to multiply"},
		}, "number",
		fold(func(acc, x float64) float64 { return acc * x }),
	})
	Declare(&Globalenv, &Declaration{
		"/", "divides the first number by all further numbers; division by zero yields inf or NaN",
		1, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "dividend followed by divisors"},
		}, "number",
		fold(func(acc, x float64) float64 { return acc / x }),
	})
	Declare(&Globalenv, &Declaration{
		"%", "floating point remainder, folded from the left; the result has the sign of the dividend",
		1, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "dividend followed by divisors"},
		}, "number",
		fold(math.Mod),
	})

	DeclareTitle("Logic")
	Declare(&Globalenv, &Declaration{
		"&", "returns true if all values are true",
		0, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"condition...", "bool", "conditions"},
		}, "bool",
		func(en *Env, a ...Scmer) (Scmer, error) {
			for _, x := range a {
				if !x.Bool() {
					return NewBool(false), nil
				}
			}
			return NewBool(true), nil
		},
	})
	Declare(&Globalenv, &Declaration{
		"|", "returns true if at least one value is true",
		0, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"condition...", "bool", "conditions"},
		}, "bool",
		func(en *Env, a ...Scmer) (Scmer, error) {
			for _, x := range a {
				if x.Bool() {
					return NewBool(true), nil
				}
			}
			return NewBool(false), nil
		},
	})
	Declare(&Globalenv, &Declaration{
		"!", "negates a boolean value",
		1, Unlimited,
		[]DeclarationParameter{
			DeclarationParameter{"value", "bool", "value to negate"},
		}, "bool",
		func(en *Env, a ...Scmer) (Scmer, error) {
			return NewBool(!a[0].Bool()), nil
		},
	})
}
