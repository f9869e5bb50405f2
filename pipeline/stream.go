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

// Package pipeline implements the parallel ORDER BY pipeline topology
// of spec.md §2 and §5: N worker lanes each locally sort their stream
// (PartialSort), produce a per-lane sorted output (MergingSort), and a
// final single-lane stage (MergingSorted) performs the global K-way
// merge, capped by a trailing Limit stage.
package pipeline

import (
	"context"
	"io"

	"github.com/sneller-io/orderby/column"
)

// Stream is a lazy sequence of blocks, produced on demand (spec.md
// §9: "the block stream is a lazy sequence of Result<Block> items").
// Next returns io.EOF once exhausted. A failing Next stops the
// lane/stage at that point; no partial block is ever emitted after an
// error (spec.md §7).
type Stream interface {
	Next(ctx context.Context) (*column.Block, error)
}

// Processor is the minimal capability set of a DAG node (spec.md §9):
// a name for diagnostics/display, and an Execute that produces its
// output Stream. Execute may itself block draining its inputs
// (MergingSort, MergingSorted) or may return an immediately-usable
// lazy stream (PartialSort).
type Processor interface {
	Name() string
	Execute(ctx context.Context) (Stream, error)
}

// sliceStream replays a fixed list of blocks, then io.EOF. It is the
// terminal building block for blocking stages that have already
// materialized their entire output (MergingSort, MergingSorted,
// Limit) as well as for tests that need a canned source.
type sliceStream struct {
	blocks []*column.Block
	pos    int
}

// NewSliceStream returns a Stream over a fixed list of blocks, used to
// build test sources and to wrap a blocking stage's materialized
// output.
func NewSliceStream(blocks []*column.Block) Stream {
	return &sliceStream{blocks: blocks}
}

func (s *sliceStream) Next(ctx context.Context) (*column.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.blocks) {
		return nil, io.EOF
	}
	b := s.blocks[s.pos]
	s.pos++
	return b, nil
}

// drainAll pulls every block from s until io.EOF, propagating the
// first non-EOF error immediately (spec.md §7: no partial results past
// a failure).
func drainAll(ctx context.Context, s Stream) ([]*column.Block, error) {
	var out []*column.Block
	for {
		b, err := s.Next(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
}
