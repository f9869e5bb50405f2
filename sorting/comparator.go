// Copyright (C) 2022 Sneller, Inc.
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

package sorting

import "github.com/sneller-io/orderby/column"

// keyColumn pairs one sort key's array with its comparator options and
// a pre-built element comparator (spec.md §4.2: "SortColumn{values,
// options}").
type keyColumn struct {
	values  column.Array
	options Options
	compare func(i, j int) int
}

func buildKeyColumns(cols []column.Array, opts []Options) []keyColumn {
	kc := make([]keyColumn, len(cols))
	for i := range cols {
		kc[i] = keyColumn{
			values:  cols[i],
			options: opts[i],
			compare: column.BuildCompare(cols[i]),
		}
	}
	return kc
}

// compareAt implements the comparator of spec.md §4.3 for a single key
// column at two positions. Descending reverses only the comparison of
// two valid values; null placement follows NullsFirst in either
// direction.
func (k *keyColumn) compareAt(i, j int) int {
	vi, vj := k.values.IsValid(i), k.values.IsValid(j)
	switch {
	case vi && vj:
		result := k.compare(i, j)
		if k.options.Descending {
			result = -result
		}
		return result
	case !vi && vj:
		if k.options.NullsFirst {
			return -1
		}
		return 1
	case vi && !vj:
		if k.options.NullsFirst {
			return 1
		}
		return -1
	default: // !vi && !vj
		return 0 // fall through to next key regardless of NullsFirst
	}
}

// compareTuple walks key columns major-to-minor, returning the first
// non-zero comparison, or 0 if every key ties (spec.md §4.3).
func compareTuple(keys []keyColumn, i, j int) int {
	for k := range keys {
		if c := keys[k].compareAt(i, j); c != 0 {
			return c
		}
	}
	return 0
}
