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

// Package exprkey supplies the minimal expression surface needed to
// resolve an ORDER BY clause down to a sorting.SortDescriptor, mirroring
// the teacher's expr.Node/vm.SortColumn split without importing its
// full expression engine (out of scope here).
package exprkey

import (
	"github.com/sneller-io/orderby/internal/errkind"
	"github.com/sneller-io/orderby/sorting"
)

// Node is the minimal expression surface this package depends on: just
// enough to tell a bare column reference apart from everything else.
type Node interface {
	// ColumnName reports the referenced column name and true, or
	// ("", false) if this node is not a bare column reference.
	ColumnName() (string, bool)
}

// Column is the only Node this package needs to construct directly: a
// bare reference to a column by name.
type Column string

func (c Column) ColumnName() (string, bool) { return string(c), true }

// Sort tags one ORDER BY item: an expression plus direction and null
// placement, the exprkey analogue of the teacher's vm.SortColumn.
type Sort struct {
	Expr       Node
	Asc        bool
	NullsFirst bool
}

// ResolveSort walks a list of tagged sort items down to the
// SortDescriptors that sorting.SortBlock/MergeSortBlocks expect,
// failing with Internal on the first non-column sort expression
// (spec.md §6: "Sort expression must be ...").
func ResolveSort(items []Sort) ([]sorting.SortDescriptor, error) {
	out := make([]sorting.SortDescriptor, len(items))
	for i, it := range items {
		name, ok := it.Expr.ColumnName()
		if !ok {
			return nil, errkind.New(errkind.Internal, "sort expression must be a bare column reference")
		}
		out[i] = sorting.SortDescriptor{ColumnName: name, Asc: it.Asc, NullsFirst: it.NullsFirst}
	}
	return out, nil
}
