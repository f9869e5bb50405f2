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
)

// sortStream wraps an upstream stream and sorts each block as it
// arrives, without imposing any ordering across blocks (spec.md §4.7:
// "Does not produce a globally sorted output — only block-local
// order"). Errors from upstream pass through unchanged; errors from
// sort surface as stream errors.
type sortStream struct {
	upstream Stream
	keys     []sorting.SortDescriptor
}

func (s *sortStream) Next(ctx context.Context) (*column.Block, error) {
	b, err := s.upstream.Next(ctx)
	if err != nil {
		return nil, err
	}
	return sorting.SortBlock(b, s.keys, nil)
}

// PartialSortTransform is a one-input, one-output processor that
// sorts each input block independently as soon as it is ready
// (spec.md §4.8). It is non-blocking: it propagates upstream
// backpressure one-for-one (spec.md §5).
type PartialSortTransform struct {
	Input Processor
	Keys  []sorting.SortDescriptor
}

func (t *PartialSortTransform) Name() string { return "PartialSortTransform" }

func (t *PartialSortTransform) Execute(ctx context.Context) (Stream, error) {
	in, err := t.Input.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return &sortStream{upstream: in, keys: t.Keys}, nil
}
