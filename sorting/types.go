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

// Package sorting contains the low-level procedures that implement
// ORDER BY execution: per-block lexicographic sort with optional
// top-K, and the two-way/K-way merge of already-sorted blocks.
//
// Sorting handles both directions ('ASC'/'DESC') and both null
// placements ('NULLS FIRST'/'NULLS LAST'). A tuple comparator walks
// the key list major-to-minor; nulls sort according to each key's own
// NullsOrder, and a (false, false) null pair always compares Equal
// regardless of NullsOrder, falling through to the next key.
//
// Sort is not guaranteed to be stable. Merge ties resolve in favor of
// the right-hand side (see MergeIndices); this convention is
// observable and is exercised by tests.
package sorting

// Direction encodes a sorting direction of a key (SQL: ASC/DESC).
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// NullsOrder encodes placement of null values (SQL: NULLS FIRST/LAST).
type NullsOrder int

const (
	NullsFirst NullsOrder = iota
	NullsLast
)

// SortDescriptor names one ORDER BY key: a column name plus direction
// and null placement (spec.md §3).
type SortDescriptor struct {
	ColumnName string
	Asc        bool
	NullsFirst bool
}

// Options returns the comparator options equivalent to this
// descriptor: descending is the logical negation of Asc.
func (d SortDescriptor) Options() Options {
	return Options{Descending: !d.Asc, NullsFirst: d.NullsFirst}
}

// Options are the per-key comparator options used directly by the
// comparator and by MergeIndices (spec.md §3).
type Options struct {
	Descending bool
	NullsFirst bool
}

// Limit stores the optional LIMIT (and, for the top-level Order stage
// only, OFFSET) from a query. The recursive merge functions only ever
// see a bare row count (pipeline.Order pushes down Count+Offset);
// Offset itself is applied once, at the top of the pipeline (see
// pipeline.LimitTransform and SPEC_FULL.md §E.1).
type Limit struct {
	Count  int
	Offset int
}

// TopKRange computes the final [start, end) row range to emit out of
// rowsCount available rows, honoring Offset (adapted from the
// teacher's sorting.Limit.FinalRange; SPEC_FULL.md §E.1).
func (l *Limit) TopKRange(rowsCount int) (start, end int) {
	if l == nil {
		return 0, rowsCount
	}
	if l.Offset >= rowsCount {
		return rowsCount, rowsCount
	}
	end = l.Offset + l.Count
	if end > rowsCount {
		end = rowsCount
	}
	return l.Offset, end
}
