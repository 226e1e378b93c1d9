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
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// shortest decimal that reads back to the same float; never uses exponents
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String returns the raw text of a value
func String(v Scmer) string {
	return v.String()
}

func SerializeToString(v Scmer) string {
	var b bytes.Buffer
	Serialize(&b, v)
	return b.String()
}

// Serialize writes the display form: strings are quoted, lists are
// parenthesized and space separated, nil is written as nil.
func Serialize(b *bytes.Buffer, v Scmer) {
	switch v.tag {
	case tagNil:
		b.WriteString("nil")
	case tagBool:
		if v.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case tagFloat:
		b.WriteString(formatFloat(v.num))
	case tagString:
		// no escaping: the reader does not know escape sequences either
		b.WriteByte('"')
		b.WriteString(v.str)
		b.WriteByte('"')
	case tagSymbol:
		b.WriteString(v.str)
	case tagSlice:
		b.WriteByte('(')
		for i, x := range v.list {
			if i != 0 {
				b.WriteByte(' ')
			}
			Serialize(b, x)
		}
		b.WriteByte(')')
	default:
		panic(fmt.Sprintf("unknown tag %d in Serialize", v.tag))
	}
}
