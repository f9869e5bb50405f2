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

// ConcatBlocks concatenates schema-identical blocks column-wise,
// taking the schema from the first block (spec.md §4.1). It fails
// with Internal if blocks is empty or any block's schema differs from
// the first's.
func ConcatBlocks(blocks []*column.Block) (*column.Block, error) {
	if len(blocks) == 0 {
		return nil, errkind.New(errkind.Internal, "can't concat empty blocks")
	}
	schema := blocks[0].Schema()
	for i := 1; i < len(blocks); i++ {
		if !blocks[i].Schema().Equal(schema) {
			return nil, errkind.New(errkind.Internal, "schema mismatch at block %d", i)
		}
	}
	if len(blocks) == 1 {
		return blocks[0], nil
	}
	cols := make([]column.Array, len(schema))
	for c := range schema {
		parts := make([]column.Array, len(blocks))
		for b := range blocks {
			parts[b] = blocks[b].Column(c)
		}
		cols[c] = column.Concat(parts)
	}
	return column.Create(schema, cols), nil
}
