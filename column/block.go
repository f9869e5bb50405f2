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

import "github.com/sneller-io/orderby/internal/errkind"

// Block is an immutable row-batch sharing a fixed Schema (spec.md §3).
// Once created a Block is never mutated; new blocks are produced by
// take/concat/slice over the inputs.
type Block struct {
	schema  Schema
	columns []Array
}

// Create assembles a Block from a schema and its columns. All columns
// must have equal length; that length becomes NumRows().
func Create(schema Schema, columns []Array) *Block {
	if len(schema) != len(columns) {
		panic("column: Create: schema/columns length mismatch")
	}
	return &Block{schema: schema, columns: columns}
}

func (b *Block) Schema() Schema { return b.schema }

func (b *Block) NumColumns() int { return len(b.columns) }

func (b *Block) NumRows() int {
	if len(b.columns) == 0 {
		return 0
	}
	return b.columns[0].Len()
}

func (b *Block) Column(i int) Array { return b.columns[i] }

// ColumnByName resolves a column by its schema name, failing with
// Internal if the name is not present (spec.md §4.2 step 1).
func (b *Block) ColumnByName(name string) (Array, error) {
	i := b.schema.IndexOf(name)
	if i < 0 {
		return nil, errkind.New(errkind.Internal, "column not found: %q", name)
	}
	return b.columns[i], nil
}

// Slice returns a zero-copy view of rows [off, off+n) across every
// column, preserving schema.
func (b *Block) Slice(off, n int) *Block {
	cols := make([]Array, len(b.columns))
	for i, c := range b.columns {
		cols[i] = c.Slice(off, n)
	}
	return &Block{schema: b.schema, columns: cols}
}
