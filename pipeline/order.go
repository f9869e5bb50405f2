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

	"github.com/google/uuid"
	"github.com/sneller-io/orderby/sorting"
	"go.uber.org/zap"
)

// Order assembles the full parallel ORDER BY topology of spec.md §2:
// one PartialSortTransform + MergingSortTransform pair per input lane,
// fanning into a single MergingSortedProcessor, capped by a trailing
// LimitTransform. Each Build call gets its own run ID for correlating
// log lines across the lanes it spawns (SPEC_FULL.md §A.2).
type Order struct {
	Lanes  []Processor
	Keys   []sorting.SortDescriptor
	Limit  sorting.Limit
	Logger *zap.Logger
}

func (o *Order) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Build wires the lanes into the topology described above and returns
// the root processor plus the PipeDescriptor list RenderPipeline
// expects, and the run ID assigned to this build.
func (o *Order) Build() (root Processor, pipes []PipeDescriptor, runID uuid.UUID) {
	runID = uuid.New()
	width := len(o.Lanes)
	log := o.logger().With(zap.String("run_id", runID.String()))

	// Pushing a row count down into the intermediate stages (spec.md
	// §4.9/§4.10's "sort_block(..., limit)"/"merge_sort_blocks(...,
	// limit)") lets the heap-based top-K path in sort_block activate
	// before the final LimitTransform ever runs, instead of always
	// sorting each lane in full. The pushed-down count is Count+Offset,
	// so the rows LimitTransform skips are still present; the offset
	// itself is applied only once, at LimitTransform (SPEC_FULL.md §E.1).
	pushdown := o.Limit.Count + o.Limit.Offset
	merging := make([]Processor, width)
	for i, lane := range o.Lanes {
		partial := &PartialSortTransform{Input: lane, Keys: o.Keys}
		merging[i] = &MergingSortTransform{Input: partial, Keys: o.Keys, Limit: &pushdown, Logger: log}
	}

	sorted := &MergingSortedProcessor{Inputs: merging, Keys: o.Keys, Limit: &pushdown, Logger: log}
	limited := &LimitTransform{Input: sorted, Limit: o.Limit}

	pipes = []PipeDescriptor{
		{Name: "PartialSortTransform", Width: width},
		{Name: "MergingSortTransform", Width: width},
		{Name: "MergingSortedProcessor", Width: 1},
		{Name: "LimitTransform", Width: 1},
	}
	return limited, pipes, runID
}

// Execute runs the assembled topology. It is a convenience wrapper
// for callers that don't need the pipe descriptors or run ID.
func (o *Order) Execute(ctx context.Context) (Stream, error) {
	root, _, runID := o.Build()
	log := o.logger().With(zap.String("run_id", runID.String()))
	log.Debug("order: starting", zap.Int("lanes", len(o.Lanes)))
	return root.Execute(ctx)
}
