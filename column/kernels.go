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

import (
	"time"

	"golang.org/x/exp/slices"
)

// Take applies a row permutation/selection to an array, producing a
// new array of len(indices) (spec.md §6: "take(array, indices) ->
// Array"). indices must be in range [0, a.Len()).
func Take(a Array, indices []uint32) Array {
	switch v := a.(type) {
	case *Int64Array:
		values := make([]int64, 0, len(indices))
		var valid []bool
		if v.valid != nil {
			valid = make([]bool, 0, len(indices))
		}
		for _, idx := range indices {
			values = append(values, v.values[idx])
			if valid != nil {
				valid = append(valid, v.valid[idx])
			}
		}
		return &Int64Array{values: values, valid: valid}
	case *Float64Array:
		values := make([]float64, 0, len(indices))
		var valid []bool
		if v.valid != nil {
			valid = make([]bool, 0, len(indices))
		}
		for _, idx := range indices {
			values = append(values, v.values[idx])
			if valid != nil {
				valid = append(valid, v.valid[idx])
			}
		}
		return &Float64Array{values: values, valid: valid}
	case *StringArray:
		values := make([]string, 0, len(indices))
		var valid []bool
		if v.valid != nil {
			valid = make([]bool, 0, len(indices))
		}
		for _, idx := range indices {
			values = append(values, v.values[idx])
			if valid != nil {
				valid = append(valid, v.valid[idx])
			}
		}
		return &StringArray{values: values, valid: valid}
	case *BoolArray:
		values := make([]bool, 0, len(indices))
		var valid []bool
		if v.valid != nil {
			valid = make([]bool, 0, len(indices))
		}
		for _, idx := range indices {
			values = append(values, v.values[idx])
			if valid != nil {
				valid = append(valid, v.valid[idx])
			}
		}
		return &BoolArray{values: values, valid: valid}
	case *TimestampArray:
		values := make([]time.Time, 0, len(indices))
		var valid []bool
		if v.valid != nil {
			valid = make([]bool, 0, len(indices))
		}
		for _, idx := range indices {
			values = append(values, v.values[idx])
			if valid != nil {
				valid = append(valid, v.valid[idx])
			}
		}
		return &TimestampArray{values: values, valid: valid}
	default:
		panic("column: Take: unsupported array type")
	}
}

// Concat concatenates same-typed arrays column-wise, in order
// (spec.md §6: "concat(&[Array]) -> Array"). It grows the destination
// slices up front via slices.Grow so a concat of many small blocks
// does not repeatedly reallocate.
func Concat(arrays []Array) Array {
	total := 0
	anyNulls := false
	for _, a := range arrays {
		total += a.Len()
	}
	switch arrays[0].(type) {
	case *Int64Array:
		values := slices.Grow([]int64{}, total)
		var valid []bool
		for _, a := range arrays {
			v := a.(*Int64Array)
			if v.valid != nil {
				anyNulls = true
			}
		}
		if anyNulls {
			valid = slices.Grow([]bool{}, total)
		}
		for _, a := range arrays {
			v := a.(*Int64Array)
			values = append(values, v.values...)
			if anyNulls {
				valid = appendValidity(valid, v.valid, v.Len())
			}
		}
		return &Int64Array{values: values, valid: valid}
	case *Float64Array:
		values := slices.Grow([]float64{}, total)
		var valid []bool
		for _, a := range arrays {
			if a.(*Float64Array).valid != nil {
				anyNulls = true
			}
		}
		if anyNulls {
			valid = slices.Grow([]bool{}, total)
		}
		for _, a := range arrays {
			v := a.(*Float64Array)
			values = append(values, v.values...)
			if anyNulls {
				valid = appendValidity(valid, v.valid, v.Len())
			}
		}
		return &Float64Array{values: values, valid: valid}
	case *StringArray:
		values := slices.Grow([]string{}, total)
		var valid []bool
		for _, a := range arrays {
			if a.(*StringArray).valid != nil {
				anyNulls = true
			}
		}
		if anyNulls {
			valid = slices.Grow([]bool{}, total)
		}
		for _, a := range arrays {
			v := a.(*StringArray)
			values = append(values, v.values...)
			if anyNulls {
				valid = appendValidity(valid, v.valid, v.Len())
			}
		}
		return &StringArray{values: values, valid: valid}
	case *BoolArray:
		values := slices.Grow([]bool{}, total)
		var valid []bool
		for _, a := range arrays {
			if a.(*BoolArray).valid != nil {
				anyNulls = true
			}
		}
		if anyNulls {
			valid = slices.Grow([]bool{}, total)
		}
		for _, a := range arrays {
			v := a.(*BoolArray)
			values = append(values, v.values...)
			if anyNulls {
				valid = appendValidity(valid, v.valid, v.Len())
			}
		}
		return &BoolArray{values: values, valid: valid}
	case *TimestampArray:
		values := slices.Grow([]time.Time{}, total)
		var valid []bool
		for _, a := range arrays {
			if a.(*TimestampArray).valid != nil {
				anyNulls = true
			}
		}
		if anyNulls {
			valid = slices.Grow([]bool{}, total)
		}
		for _, a := range arrays {
			v := a.(*TimestampArray)
			values = append(values, v.values...)
			if anyNulls {
				valid = appendValidity(valid, v.valid, v.Len())
			}
		}
		return &TimestampArray{values: values, valid: valid}
	default:
		panic("column: Concat: unsupported array type")
	}
}

// appendValidity appends n "valid" entries for a column that has no
// null mask of its own into a destination validity slice that does
// need one (because a sibling column being concatenated has nulls).
func appendValidity(dst []bool, src []bool, n int) []bool {
	if src != nil {
		return append(dst, src...)
	}
	for i := 0; i < n; i++ {
		dst = append(dst, true)
	}
	return dst
}
