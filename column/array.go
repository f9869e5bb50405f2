// Copyright (C) 2024 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package column

import "time"

// Array is a fixed-length, typed, columnar vector with a null mask.
// Implementations are immutable once constructed.
type Array interface {
	// Type returns the element type.
	Type() Type
	// Len returns the number of logical positions (valid or not).
	Len() int
	// IsValid reports whether position i holds a non-null value.
	IsValid(i int) bool
	// Slice returns a zero-copy view [off, off+n).
	Slice(off, n int) Array
}

// BuildCompare returns a comparator over two valid positions of a,
// assuming both are valid (spec.md §6: "element compare assuming both
// valid"). Callers must never invoke it on an invalid position; null
// handling is the responsibility of the caller (sorting package).
func BuildCompare(a Array) func(i, j int) int {
	switch v := a.(type) {
	case *Int64Array:
		return func(i, j int) int {
			x, y := v.values[i], v.values[j]
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	case *Float64Array:
		return func(i, j int) int {
			x, y := v.values[i], v.values[j]
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	case *StringArray:
		return func(i, j int) int {
			x, y := v.values[i], v.values[j]
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	case *BoolArray:
		return func(i, j int) int {
			x, y := v.values[i], v.values[j]
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	case *TimestampArray:
		return func(i, j int) int {
			x, y := v.values[i], v.values[j]
			switch {
			case x.Before(y):
				return -1
			case x.After(y):
				return 1
			default:
				return 0
			}
		}
	default:
		panic("column: BuildCompare: unsupported array type")
	}
}

// Int64Array is an Array of int64 values.
type Int64Array struct {
	values []int64
	valid  []bool // nil means "all valid"
}

// NewInt64Array builds an Int64Array. valid may be nil to mean "no nulls".
func NewInt64Array(values []int64, valid []bool) *Int64Array {
	return &Int64Array{values: values, valid: valid}
}

func (a *Int64Array) Type() Type    { return Int64 }
func (a *Int64Array) Len() int      { return len(a.values) }
func (a *Int64Array) IsValid(i int) bool {
	return a.valid == nil || a.valid[i]
}
func (a *Int64Array) Slice(off, n int) Array {
	v := a.values[off : off+n]
	var m []bool
	if a.valid != nil {
		m = a.valid[off : off+n]
	}
	return &Int64Array{values: v, valid: m}
}

// At returns the value at position i; only meaningful if IsValid(i).
func (a *Int64Array) At(i int) int64 { return a.values[i] }

// Float64Array is an Array of float64 values.
type Float64Array struct {
	values []float64
	valid  []bool
}

func NewFloat64Array(values []float64, valid []bool) *Float64Array {
	return &Float64Array{values: values, valid: valid}
}

func (a *Float64Array) Type() Type { return Float64 }
func (a *Float64Array) Len() int   { return len(a.values) }
func (a *Float64Array) IsValid(i int) bool {
	return a.valid == nil || a.valid[i]
}
func (a *Float64Array) Slice(off, n int) Array {
	v := a.values[off : off+n]
	var m []bool
	if a.valid != nil {
		m = a.valid[off : off+n]
	}
	return &Float64Array{values: v, valid: m}
}
func (a *Float64Array) At(i int) float64 { return a.values[i] }

// StringArray is an Array of string values.
type StringArray struct {
	values []string
	valid  []bool
}

func NewStringArray(values []string, valid []bool) *StringArray {
	return &StringArray{values: values, valid: valid}
}

func (a *StringArray) Type() Type { return String }
func (a *StringArray) Len() int   { return len(a.values) }
func (a *StringArray) IsValid(i int) bool {
	return a.valid == nil || a.valid[i]
}
func (a *StringArray) Slice(off, n int) Array {
	v := a.values[off : off+n]
	var m []bool
	if a.valid != nil {
		m = a.valid[off : off+n]
	}
	return &StringArray{values: v, valid: m}
}
func (a *StringArray) At(i int) string { return a.values[i] }

// BoolArray is an Array of bool values.
type BoolArray struct {
	values []bool
	valid  []bool
}

func NewBoolArray(values []bool, valid []bool) *BoolArray {
	return &BoolArray{values: values, valid: valid}
}

func (a *BoolArray) Type() Type { return Bool }
func (a *BoolArray) Len() int   { return len(a.values) }
func (a *BoolArray) IsValid(i int) bool {
	return a.valid == nil || a.valid[i]
}
func (a *BoolArray) Slice(off, n int) Array {
	v := a.values[off : off+n]
	var m []bool
	if a.valid != nil {
		m = a.valid[off : off+n]
	}
	return &BoolArray{values: v, valid: m}
}
func (a *BoolArray) At(i int) bool { return a.values[i] }

// TimestampArray is an Array of time.Time values.
type TimestampArray struct {
	values []time.Time
	valid  []bool
}

func NewTimestampArray(values []time.Time, valid []bool) *TimestampArray {
	return &TimestampArray{values: values, valid: valid}
}

func (a *TimestampArray) Type() Type { return Timestamp }
func (a *TimestampArray) Len() int   { return len(a.values) }
func (a *TimestampArray) IsValid(i int) bool {
	return a.valid == nil || a.valid[i]
}
func (a *TimestampArray) Slice(off, n int) Array {
	v := a.values[off : off+n]
	var m []bool
	if a.valid != nil {
		m = a.valid[off : off+n]
	}
	return &TimestampArray{values: v, valid: m}
}
func (a *TimestampArray) At(i int) time.Time { return a.values[i] }
