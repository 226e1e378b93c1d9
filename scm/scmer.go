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

import "fmt"

// Scmer is a tagged value container. Exactly one of the payload fields is
// meaningful, selected by tag. Values are never mutated after construction.
type Scmer struct {
	tag  uint8
	num  float64 // tagFloat; tagBool stores 1 or 0
	str  string  // tagString, tagSymbol
	list []Scmer // tagSlice
}

// Type tags
const (
	tagNil = iota
	tagString
	tagSymbol
	tagFloat
	tagBool
	tagSlice
)

//
// Constructors
//

func NewNil() Scmer { return Scmer{tag: tagNil} }

func NewBool(b bool) Scmer {
	if b {
		return Scmer{tag: tagBool, num: 1}
	}
	return Scmer{tag: tagBool}
}

func NewFloat(f float64) Scmer { return Scmer{tag: tagFloat, num: f} }

func NewString(s string) Scmer { return Scmer{tag: tagString, str: s} }

func NewSymbol(sym string) Scmer { return Scmer{tag: tagSymbol, str: sym} }

// NewSlice takes ownership of a copy of slice, so later writes to the
// caller's backing array cannot leak into the value.
func NewSlice(slice []Scmer) Scmer {
	if len(slice) == 0 {
		return Scmer{tag: tagSlice}
	}
	owned := make([]Scmer, len(slice))
	copy(owned, slice)
	return Scmer{tag: tagSlice, list: owned}
}

// List builds a list from its arguments
func List(a ...Scmer) Scmer {
	return NewSlice(a)
}

//
// Type checks
//

func (s Scmer) IsNil() bool { return s.tag == tagNil }

func (s Scmer) IsBool() bool { return s.tag == tagBool }

func (s Scmer) IsFloat() bool { return s.tag == tagFloat }

func (s Scmer) IsString() bool { return s.tag == tagString }

func (s Scmer) IsSymbol() bool { return s.tag == tagSymbol }

func (s Scmer) IsSlice() bool { return s.tag == tagSlice }

//
// Coercion views; all of them are total
//

// Float is the number view.
func (s Scmer) Float() float64 {
	switch s.tag {
	case tagNil:
		return 0
	case tagFloat, tagBool:
		return s.num
	case tagString, tagSymbol:
		if v, ok := parseNumber(s.str); ok {
			return v
		}
		return 0
	case tagSlice:
		return float64(len(s.list))
	default:
		panic(fmt.Sprintf("unknown tag %d in Float", s.tag))
	}
}

// Bool is the boolean view. Text only counts as true when it reads "true".
func (s Scmer) Bool() bool {
	switch s.tag {
	case tagNil:
		return false
	case tagFloat, tagBool:
		return s.num != 0
	case tagString, tagSymbol:
		return s.str == "true"
	case tagSlice:
		return len(s.list) > 0
	default:
		panic(fmt.Sprintf("unknown tag %d in Bool", s.tag))
	}
}

// String is the raw text view: strings come without their quotes and nil
// is empty. Use SerializeToString for the display form.
func (s Scmer) String() string {
	switch s.tag {
	case tagNil:
		return ""
	case tagString, tagSymbol:
		return s.str
	case tagFloat:
		return formatFloat(s.num)
	case tagBool:
		if s.num != 0 {
			return "true"
		}
		return "false"
	case tagSlice:
		return SerializeToString(s)
	default:
		panic(fmt.Sprintf("unknown tag %d in String", s.tag))
	}
}

// Slice is the list view. Nil is the empty list and every other atom is
// viewed as a list holding just itself. The result must not be modified.
func (s Scmer) Slice() []Scmer {
	switch s.tag {
	case tagNil:
		return []Scmer{}
	case tagSlice:
		return s.list
	case tagString, tagSymbol, tagFloat, tagBool:
		return []Scmer{s}
	default:
		panic(fmt.Sprintf("unknown tag %d in Slice", s.tag))
	}
}
