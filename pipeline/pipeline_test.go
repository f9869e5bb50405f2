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
	"io"
	"testing"

	"github.com/sneller-io/orderby/column"
	"github.com/sneller-io/orderby/sorting"
	"github.com/stretchr/testify/require"
)

func blockOf(values []int64) *column.Block {
	return column.Create(column.Schema{{Name: "x", Type: column.Int64}},
		[]column.Array{column.NewInt64Array(values, nil)})
}

func extract(b *column.Block) []int64 {
	col := b.Column(0).(*column.Int64Array)
	out := make([]int64, col.Len())
	for i := range out {
		out[i] = col.At(i)
	}
	return out
}

// sourceProcessor is a fixed Processor used to feed lanes in tests.
type sourceProcessor struct {
	name   string
	blocks []*column.Block
}

func (p *sourceProcessor) Name() string { return p.name }

func (p *sourceProcessor) Execute(ctx context.Context) (Stream, error) {
	return NewSliceStream(p.blocks), nil
}

func lane(name string, blocks ...[]int64) *sourceProcessor {
	out := make([]*column.Block, len(blocks))
	for i, b := range blocks {
		out[i] = blockOf(b)
	}
	return &sourceProcessor{name: name, blocks: out}
}

var ascKeys = []sorting.SortDescriptor{{ColumnName: "x", Asc: true, NullsFirst: true}}

func TestPartialSortTransformIsBlockLocal(t *testing.T) {
	src := lane("src", []int64{3, 1, 2}, []int64{9, 5})
	xf := &PartialSortTransform{Input: src, Keys: ascKeys}

	stream, err := xf.Execute(context.Background())
	require.NoError(t, err)

	b1, err := stream.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, extract(b1))

	b2, err := stream.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int64{5, 9}, extract(b2))

	_, err = stream.Next(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestMergingSortTransformConcatenatesAndSorts(t *testing.T) {
	src := lane("src", []int64{3, 1, 2}, []int64{9, 5})
	xf := &MergingSortTransform{Input: src, Keys: ascKeys}

	stream, err := xf.Execute(context.Background())
	require.NoError(t, err)
	blocks, err := drainAll(context.Background(), stream)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, []int64{1, 2, 3, 5, 9}, extract(blocks[0]))
}

func TestMergingSortTransformEmptyLane(t *testing.T) {
	src := &sourceProcessor{name: "empty"}
	xf := &MergingSortTransform{Input: src, Keys: ascKeys}
	stream, err := xf.Execute(context.Background())
	require.NoError(t, err)
	_, err = stream.Next(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestMergingSortedProcessorDeterministicAcrossLanes(t *testing.T) {
	lanes := []Processor{
		lane("l0", []int64{1, 7}),
		lane("l1", []int64{2, 2, 8}),
		lane("l2", []int64{0, 9}),
	}
	p := &MergingSortedProcessor{Inputs: lanes, Keys: ascKeys}
	stream, err := p.Execute(context.Background())
	require.NoError(t, err)
	blocks, err := drainAll(context.Background(), stream)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, []int64{0, 1, 2, 2, 7, 8, 9}, extract(blocks[0]))
}

func TestMergingSortedProcessorNoInputs(t *testing.T) {
	p := &MergingSortedProcessor{Inputs: nil, Keys: ascKeys}
	stream, err := p.Execute(context.Background())
	require.NoError(t, err)
	_, err = stream.Next(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestLimitTransformAppliesOffsetAndCount(t *testing.T) {
	src := &sourceProcessor{name: "sorted", blocks: []*column.Block{blockOf([]int64{1, 2, 3, 4, 5})}}
	xf := &LimitTransform{Input: src, Limit: sorting.Limit{Count: 2, Offset: 1}}
	stream, err := xf.Execute(context.Background())
	require.NoError(t, err)
	blocks, err := drainAll(context.Background(), stream)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, []int64{2, 3}, extract(blocks[0]))
}

func TestLimitTransformOffsetBeyondRows(t *testing.T) {
	src := &sourceProcessor{name: "sorted", blocks: []*column.Block{blockOf([]int64{1, 2})}}
	xf := &LimitTransform{Input: src, Limit: sorting.Limit{Count: 5, Offset: 10}}
	stream, err := xf.Execute(context.Background())
	require.NoError(t, err)
	blocks, err := drainAll(context.Background(), stream)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, []int64{}, extract(blocks[0]))
}

func TestOrderBuildAssemblesFullTopology(t *testing.T) {
	lanes := []Processor{
		lane("l0", []int64{3, 1}),
		lane("l1", []int64{4, 2}),
	}
	o := &Order{Lanes: lanes, Keys: ascKeys, Limit: sorting.Limit{Count: 3}}
	root, pipes, runID := o.Build()
	require.NotEqual(t, [16]byte{}, [16]byte(runID))
	require.Equal(t, []PipeDescriptor{
		{Name: "PartialSortTransform", Width: 2},
		{Name: "MergingSortTransform", Width: 2},
		{Name: "MergingSortedProcessor", Width: 1},
		{Name: "LimitTransform", Width: 1},
	}, pipes)

	// The count must reach both intermediate stages (spec.md §4.9/§4.10's
	// sort_block/merge_sort_blocks pushdown), not just the final
	// LimitTransform, so the top-K path has a chance to activate before
	// the trailing truncation.
	limitOf := func(p Processor) *int {
		switch v := p.(type) {
		case *MergingSortTransform:
			return v.Limit
		case *MergingSortedProcessor:
			return v.Limit
		default:
			t.Fatalf("unexpected processor type %T", p)
			return nil
		}
	}
	require.NotNil(t, limitOf(root.(*LimitTransform).Input))
	require.Equal(t, 3, *limitOf(root.(*LimitTransform).Input))
	for _, lane := range root.(*LimitTransform).Input.(*MergingSortedProcessor).Inputs {
		require.NotNil(t, limitOf(lane))
		require.Equal(t, 3, *limitOf(lane))
	}

	stream, err := root.Execute(context.Background())
	require.NoError(t, err)
	blocks, err := drainAll(context.Background(), stream)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, []int64{1, 2, 3}, extract(blocks[0]))
}

// S5 — PipelineDisplay renders the aggregate plan from spec.md §8
// verbatim: a generic fan-in pipe (anonymous "MergeProcessor") gets
// the special merge line.
func TestRenderPipelineGenericMergeLine(t *testing.T) {
	got := RenderPipeline([]PipeDescriptor{
		{Name: "SourceTransform", Width: 8},
		{Name: "FilterTransform", Width: 8},
		{Name: "AggregatePartialTransform", Width: 8},
		{Name: "MergeProcessor", Width: 1, Generic: true},
		{Name: "AggregateFinalTransform", Width: 1},
		{Name: "LimitTransform", Width: 1},
	})
	require.Equal(t, "\n"+
		"  └─ LimitTransform × 1 processor\n"+
		"    └─ AggregateFinalTransform × 1 processor\n"+
		"      └─ Merge (AggregatePartialTransform × 8 processors) to (MergeProcessor × 1)\n"+
		"        └─ AggregatePartialTransform × 8 processors\n"+
		"          └─ FilterTransform × 8 processors\n"+
		"            └─ SourceTransform × 8 processors", got)
}

// S6 — PipelineDisplay renders the sort plan from spec.md §8 verbatim:
// a named fan-in processor (MergingSortedProcessor) renders plainly
// even though its width also changes from the previous pipe.
func TestRenderPipelineNamedFanInRendersPlainly(t *testing.T) {
	got := RenderPipeline([]PipeDescriptor{
		{Name: "SourceTransform", Width: 8},
		{Name: "FilterTransform", Width: 8},
		{Name: "ProjectionTransform", Width: 8},
		{Name: "PartialSortTransform", Width: 8},
		{Name: "MergingSortTransform", Width: 8},
		{Name: "MergingSortedProcessor", Width: 1},
		{Name: "LimitTransform", Width: 1},
	})
	require.Equal(t, "\n"+
		"  └─ LimitTransform × 1 processor\n"+
		"    └─ MergingSortedProcessor × 1 processor\n"+
		"      └─ MergingSortTransform × 8 processors\n"+
		"        └─ PartialSortTransform × 8 processors\n"+
		"          └─ ProjectionTransform × 8 processors\n"+
		"            └─ FilterTransform × 8 processors\n"+
		"              └─ SourceTransform × 8 processors", got)
}

// A single-lane pipeline (no fan-in anywhere, widths never change)
// must never emit a spurious "Merge (...)" line (SPEC_FULL.md §E.3).
func TestRenderPipelineSingleLaneNoMergeLine(t *testing.T) {
	got := RenderPipeline([]PipeDescriptor{
		{Name: "PartialSortTransform", Width: 1},
		{Name: "MergingSortTransform", Width: 1},
	})
	require.Equal(t, "\n"+
		"  └─ MergingSortTransform × 1 processor\n"+
		"    └─ PartialSortTransform × 1 processor", got)
}
