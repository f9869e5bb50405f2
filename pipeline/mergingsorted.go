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
	"golang.org/x/sync/errgroup"
)

// MergingSortedProcessor is the N-input, one-output fan-in stage: the
// global K-way merge across all upstream lanes (spec.md §4.10). Each
// input is assumed already sorted by MergingSortTransform's contract;
// the merge in sorting.MergeSortBlocks preserves global order under
// that precondition.
//
// The merge that follows the drain runs on a single goroutine and is
// the sequential bottleneck for large K (spec.md §5); the drain itself
// fans out across lanes so one slow lane does not serialize behind the
// others.
type MergingSortedProcessor struct {
	Inputs []Processor
	Keys   []sorting.SortDescriptor
	Limit  *int
	Logger *zap.Logger
}

func (p *MergingSortedProcessor) Name() string { return "MergingSortedProcessor" }

func (p *MergingSortedProcessor) Execute(ctx context.Context) (Stream, error) {
	log := p.logger()
	perLane := make([][]*column.Block, len(p.Inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, input := range p.Inputs {
		i, input := i, input
		g.Go(func() error {
			stream, err := input.Execute(gctx)
			if err != nil {
				return err
			}
			blocks, err := drainAll(gctx, stream)
			if err != nil {
				return err
			}
			perLane[i] = blocks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*column.Block
	for _, lane := range perLane {
		all = append(all, lane...)
	}
	if len(all) == 0 {
		log.Debug("mergingsorted: no input blocks")
		return NewSliceStream(nil), nil
	}
	merged, err := sorting.MergeSortBlocks(all, p.Keys, p.Limit)
	if err != nil {
		return nil, err
	}
	log.Debug("mergingsorted: merged", zap.Int("lanes", len(p.Inputs)), zap.Int("blocks", len(all)), zap.Int("rows", merged.NumRows()))
	return NewSliceStream([]*column.Block{merged}), nil
}

func (p *MergingSortedProcessor) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
