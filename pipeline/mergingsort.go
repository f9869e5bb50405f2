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

package pipeline

import (
	"context"

	"github.com/sneller-io/orderby/column"
	"github.com/sneller-io/orderby/sorting"
	"go.uber.org/zap"
)

// MergingSortTransform is a one-input, one-output processor that
// drains its input, concatenates the collected blocks, sorts the
// concatenation, and emits a single block (spec.md §4.9). It restores
// the per-lane total order that PartialSortTransform does not
// guarantee across block boundaries.
//
// Using concat+sort rather than a K-way merge is a deliberate
// simplicity/perf tradeoff for the common case of few blocks per
// lane, not an oversight.
type MergingSortTransform struct {
	Input  Processor
	Keys   []sorting.SortDescriptor
	Limit  *int
	Logger *zap.Logger
}

func (t *MergingSortTransform) Name() string { return "MergingSortTransform" }

func (t *MergingSortTransform) Execute(ctx context.Context) (Stream, error) {
	log := t.logger()
	in, err := t.Input.Execute(ctx)
	if err != nil {
		return nil, err
	}
	blocks, err := drainAll(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		log.Debug("mergingsort: empty lane")
		return NewSliceStream(nil), nil
	}
	concatenated, err := sorting.ConcatBlocks(blocks)
	if err != nil {
		return nil, err
	}
	sorted, err := sorting.SortBlock(concatenated, t.Keys, t.Limit)
	if err != nil {
		return nil, err
	}
	log.Debug("mergingsort: lane sorted", zap.Int("input_blocks", len(blocks)), zap.Int("rows", sorted.NumRows()))
	return NewSliceStream([]*column.Block{sorted}), nil
}

func (t *MergingSortTransform) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}
