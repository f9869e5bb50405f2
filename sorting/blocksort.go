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
	"sort"

	"github.com/sneller-io/orderby/column"
	orderbyheap "github.com/sneller-io/orderby/heap"
	"github.com/sneller-io/orderby/internal/errkind"
)

// topKThreshold is the block size above which a limited SortBlock uses
// the heap-based partial sort (O(n log k)); at or below it, the block
// is fully sorted (O(n log n)) and then truncated. This mirrors
// the teacher's experimentally-derived ktop cutoff (sorting/doc.go:
// "approx 10k rows"), scaled down for this module's in-memory blocks.
const topKThreshold = 4096

// SortBlock implements sort_block from spec.md §4.2: lexicographic
// sort of b by keys, optionally truncated to the first min(K, len(b))
// rows. Stability is not guaranteed.
func SortBlock(b *column.Block, keys []SortDescriptor, limit *int) (*column.Block, error) {
	if len(keys) == 0 {
		return nil, errkind.New(errkind.BadArguments, "sort key list must be non-empty")
	}
	cols := make([]column.Array, len(keys))
	opts := make([]Options, len(keys))
	for i, k := range keys {
		c, err := b.ColumnByName(k.ColumnName)
		if err != nil {
			return nil, errkind.Wrap(errkind.Internal, err, "sort_block: resolving sort key column "+k.ColumnName)
		}
		cols[i] = c
		opts[i] = k.Options()
	}
	kc := buildKeyColumns(cols, opts)
	n := b.NumRows()

	var indices []uint32
	if limit != nil && *limit < n && *limit >= 0 && n > topKThreshold {
		indices = topKIndices(kc, n, *limit)
	} else {
		indices = sortIndices(kc, n)
		if limit != nil && *limit < len(indices) {
			indices = indices[:*limit]
		}
	}

	out := make([]column.Array, b.NumColumns())
	for i := 0; i < b.NumColumns(); i++ {
		out[i] = column.Take(b.Column(i), indices)
	}
	return column.Create(b.Schema(), out), nil
}

// sortIndices fully sorts row ids 0..n-1 under the key comparator.
func sortIndices(keys []keyColumn, n int) []uint32 {
	indices := make([]uint32, n)
	for i := range indices {
		indices[i] = uint32(i)
	}
	sort.Slice(indices, func(i, j int) bool {
		return compareTuple(keys, int(indices[i]), int(indices[j])) < 0
	})
	return indices
}

// topKIndices reorders so that the first min(k, n) entries are the k
// smallest rows, fully sorted (spec.md §4.2: "the result after take
// must still be the exact sorted top-K"). It is the partial-sort
// optimization; it never changes observable output relative to
// sortIndices followed by a truncation.
func topKIndices(keys []keyColumn, n, k int) []uint32 {
	if k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}
	greater := func(x, y int) bool {
		return compareTuple(keys, x, y) > 0
	}
	// max-heap of the k smallest-so-far rows seen; its root is the
	// current worst (largest) of the retained set.
	heapIdx := make([]int, 0, k)
	for i := 0; i < n; i++ {
		orderbyheap.KeepSmallest(&heapIdx, i, k, greater)
	}
	// pop the max-heap from the back to land on ascending-by-comparator order
	out := make([]uint32, len(heapIdx))
	for i := len(heapIdx) - 1; i >= 0; i-- {
		out[i] = uint32(orderbyheap.PopSlice(&heapIdx, greater))
	}
	return out
}
