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

import (
	"github.com/sneller-io/orderby/column"
	"github.com/sneller-io/orderby/internal/errkind"
)

// MergeIndices merges two sorted sides described by parallel column
// slices into a MergeBitmap (spec.md §4.4): true means "take the next
// row from lhs", false means "take the next row from rhs". Ties
// resolve to false (rhs picked); this is an observable convention,
// not an implementation accident.
func MergeIndices(lhsCols, rhsCols []column.Array, opts []Options) ([]bool, error) {
	if len(lhsCols) != len(rhsCols) || len(lhsCols) != len(opts) {
		return nil, errkind.New(errkind.Internal, "merge_indices: arity mismatch")
	}
	if len(opts) == 0 {
		return nil, errkind.New(errkind.Internal, "merge_indices: zero arity")
	}
	lhsKeys := buildKeyColumns(lhsCols, opts)
	rhsKeys := buildKeyColumns(rhsCols, opts)

	lhsLen := lhsCols[0].Len()
	rhsLen := rhsCols[0].Len()
	bitmap := make([]bool, 0, lhsLen+rhsLen)

	l, r := 0, 0
	for l < lhsLen && r < rhsLen {
		if compareCrossSide(lhsKeys, rhsKeys, l, r) < 0 {
			bitmap = append(bitmap, true)
			l++
		} else {
			bitmap = append(bitmap, false)
			r++
		}
	}
	for l < lhsLen {
		bitmap = append(bitmap, true)
		l++
	}
	for r < rhsLen {
		bitmap = append(bitmap, false)
		r++
	}
	return bitmap, nil
}

// compareCrossSide compares lhs row i against rhs row j across every
// key column, major-to-minor, the two-sided analogue of compareTuple.
func compareCrossSide(lhs, rhs []keyColumn, i, j int) int {
	for k := range lhs {
		vi, vj := lhs[k].values.IsValid(i), rhs[k].values.IsValid(j)
		var result int
		switch {
		case vi && vj:
			result = crossCompare(lhs[k].values, rhs[k].values, i, j)
			if lhs[k].options.Descending {
				result = -result
			}
		case !vi && vj:
			if lhs[k].options.NullsFirst {
				result = -1
			} else {
				result = 1
			}
		case vi && !vj:
			if lhs[k].options.NullsFirst {
				result = 1
			} else {
				result = -1
			}
		default:
			continue
		}
		if result != 0 {
			return result
		}
	}
	return 0
}

// crossCompare compares element i of a against element j of b. Both
// arrays share the same element type by precondition (spec.md §4.4:
// "name/type consistency is assumed").
func crossCompare(a, b column.Array, i, j int) int {
	switch av := a.(type) {
	case *column.Int64Array:
		bv := b.(*column.Int64Array)
		x, y := av.At(i), bv.At(j)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	case *column.Float64Array:
		bv := b.(*column.Float64Array)
		x, y := av.At(i), bv.At(j)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	case *column.StringArray:
		bv := b.(*column.StringArray)
		x, y := av.At(i), bv.At(j)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	case *column.BoolArray:
		bv := b.(*column.BoolArray)
		x, y := av.At(i), bv.At(j)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case *column.TimestampArray:
		bv := b.(*column.TimestampArray)
		x, y := av.At(i), bv.At(j)
		switch {
		case x.Before(y):
			return -1
		case x.After(y):
			return 1
		default:
			return 0
		}
	default:
		panic("sorting: crossCompare: unsupported array type")
	}
}

// MergeArray applies a MergeBitmap column-wise to two arrays of the
// same element type, producing an array of len(bitmap) (spec.md
// §4.5). It concatenates zero-copy runs of the same bit to avoid
// allocating per-row.
func MergeArray(a, b column.Array, bitmap []bool) column.Array {
	if len(bitmap) == 0 {
		return column.Take(a, nil)
	}
	var runs []column.Array
	la, ra := 0, 0
	runStart := 0
	runFromA := bitmap[0]
	flush := func(end int) {
		n := end - runStart
		if n == 0 {
			return
		}
		if runFromA {
			runs = append(runs, a.Slice(la, n))
			la += n
		} else {
			runs = append(runs, b.Slice(ra, n))
			ra += n
		}
	}
	for i := 1; i < len(bitmap); i++ {
		if bitmap[i] != runFromA {
			flush(i)
			runStart = i
			runFromA = bitmap[i]
		}
	}
	flush(len(bitmap))
	if len(runs) == 1 {
		return runs[0]
	}
	return column.Concat(runs)
}

// MergeSortBlock implements merge_sort_block from spec.md §4.6: merges
// two blocks already sorted by keys into one sorted block, optionally
// truncated to limit.
func MergeSortBlock(l, r *column.Block, keys []SortDescriptor, limit *int) (*column.Block, error) {
	if l.NumRows() == 0 {
		return truncateBlock(r, limit), nil
	}
	if r.NumRows() == 0 {
		return truncateBlock(l, limit), nil
	}
	opts := make([]Options, len(keys))
	lCols := make([]column.Array, len(keys))
	rCols := make([]column.Array, len(keys))
	for i, k := range keys {
		opts[i] = k.Options()
		c, err := l.ColumnByName(k.ColumnName)
		if err != nil {
			return nil, errkind.Wrap(errkind.Internal, err, "merge_sort_block: resolving left key column "+k.ColumnName)
		}
		lCols[i] = c
		c, err = r.ColumnByName(k.ColumnName)
		if err != nil {
			return nil, errkind.Wrap(errkind.Internal, err, "merge_sort_block: resolving right key column "+k.ColumnName)
		}
		rCols[i] = c
	}
	bitmap, err := MergeIndices(lCols, rCols, opts)
	if err != nil {
		return nil, err
	}
	if limit != nil && *limit < len(bitmap) {
		bitmap = bitmap[:*limit]
	}
	out := make([]column.Array, l.NumColumns())
	for i := 0; i < l.NumColumns(); i++ {
		out[i] = MergeArray(l.Column(i), r.Column(i), bitmap)
	}
	return column.Create(l.Schema(), out), nil
}

func truncateBlock(b *column.Block, limit *int) *column.Block {
	if limit == nil || *limit >= b.NumRows() {
		return b
	}
	return b.Slice(0, *limit)
}

// MergeSortBlocks implements merge_sort_blocks from spec.md §4.6: a
// divide-and-conquer K-way merge over already-sorted blocks, with
// limit propagated verbatim into every recursive call (sound because
// a sorted prefix of a sorted merge contains the global prefix; this
// is also the documented answer to the corresponding Open Question).
func MergeSortBlocks(blocks []*column.Block, keys []SortDescriptor, limit *int) (*column.Block, error) {
	switch len(blocks) {
	case 0:
		return nil, errkind.New(errkind.Internal, "can't merge empty blocks")
	case 1:
		return truncateBlock(blocks[0], limit), nil
	case 2:
		return MergeSortBlock(blocks[0], blocks[1], keys, limit)
	default:
		mid := len(blocks) / 2
		left, err := MergeSortBlocks(blocks[:mid], keys, limit)
		if err != nil {
			return nil, err
		}
		right, err := MergeSortBlocks(blocks[mid:], keys, limit)
		if err != nil {
			return nil, err
		}
		return MergeSortBlock(left, right, keys, limit)
	}
}
