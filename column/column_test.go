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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ints(t *testing.T, a Array) []int64 {
	t.Helper()
	v := a.(*Int64Array)
	out := make([]int64, v.Len())
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

func TestTakeSelectsByIndex(t *testing.T) {
	a := NewInt64Array([]int64{10, 20, 30, 40}, nil)
	got := Take(a, []uint32{3, 0, 0})
	require.Equal(t, []int64{40, 10, 10}, ints(t, got))
}

func TestTakePreservesValidity(t *testing.T) {
	a := NewInt64Array([]int64{1, 2, 3}, []bool{true, false, true})
	got := Take(a, []uint32{1, 2}).(*Int64Array)
	require.False(t, got.IsValid(0))
	require.True(t, got.IsValid(1))
}

// Concat must force evaluation eagerly: every row from every input
// array must be materialized into the result, not lazily dropped
// (SPEC_FULL.md §E.2).
func TestConcatForcesEagerEvaluation(t *testing.T) {
	a := NewInt64Array([]int64{1, 2}, nil)
	b := NewInt64Array([]int64{3, 4, 5}, nil)
	c := NewInt64Array(nil, nil)

	got := Concat([]Array{a, b, c})
	require.Equal(t, 5, got.Len())
	require.Equal(t, []int64{1, 2, 3, 4, 5}, ints(t, got))
}

func TestConcatMixedNullability(t *testing.T) {
	a := NewInt64Array([]int64{1, 2}, nil)
	b := NewInt64Array([]int64{3, 4}, []bool{true, false})

	got := Concat([]Array{a, b}).(*Int64Array)
	require.Equal(t, []int64{1, 2, 3, 4}, ints(t, got))
	require.True(t, got.IsValid(0))
	require.True(t, got.IsValid(1))
	require.True(t, got.IsValid(2))
	require.False(t, got.IsValid(3))
}

func TestSchemaEqualAndIndexOf(t *testing.T) {
	s := Schema{{Name: "a", Type: Int64}, {Name: "b", Type: String}}
	require.True(t, s.Equal(Schema{{Name: "a", Type: Int64}, {Name: "b", Type: String}}))
	require.False(t, s.Equal(Schema{{Name: "a", Type: Int64}}))
	require.False(t, s.Equal(Schema{{Name: "a", Type: Float64}, {Name: "b", Type: String}}))
	require.Equal(t, 1, s.IndexOf("b"))
	require.Equal(t, -1, s.IndexOf("missing"))
}

func TestBlockColumnByNameAndSlice(t *testing.T) {
	schema := Schema{{Name: "x", Type: Int64}}
	b := Create(schema, []Array{NewInt64Array([]int64{1, 2, 3, 4}, nil)})

	col, err := b.ColumnByName("x")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3, 4}, ints(t, col))

	_, err = b.ColumnByName("missing")
	require.Error(t, err)

	sliced := b.Slice(1, 2)
	require.Equal(t, 2, sliced.NumRows())
	require.Equal(t, []int64{2, 3}, ints(t, sliced.Column(0)))
}
