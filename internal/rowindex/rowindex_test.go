// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rowindex

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/pgcatcheck/internal/resultset"
)

func TestHash(t *testing.T) {
	assert.Equal(t, uint32(0), Hash(""))
	assert.Equal(t, uint32('1'), Hash("1"))
	h := uint32('1')
	expected := uint32('1') + (h << 6) + (h << 16) - h
	assert.Equal(t, expected, Hash("11"))
	assert.NotEqual(t, Hash("12"), Hash("21"))
}

func TestNew(t *testing.T) {
	rs := resultset.New([]string{"oid"})

	_, err := New(rs)
	require.ErrorIs(t, err, ErrNoKeyColumns)

	_, err = New(rs, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	require.ErrorIs(t, err, ErrTooManyKeyColumns)

	idx, err := New(rs, 0)
	require.NoError(t, err)
	assert.Len(t, idx.buckets, 1, "empty source must still have one bucket")
	assert.Equal(t, NoRow, idx.Get("1"))
}

func TestNew_BucketsArePowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 17, 64, 100} {
		rs := resultset.New([]string{"oid"})
		for i := 0; i < n; i++ {
			rs.Append(strconv.Itoa(i))
		}
		idx, err := New(rs, 0)
		require.NoError(t, err)
		nb := len(idx.buckets)
		assert.GreaterOrEqual(t, nb, n)
		assert.Equal(t, 0, nb&(nb-1), "bucket count %d is not power of two", nb)
		assert.Less(t, nb, 2*n+1)
	}
}

func TestIndex_InsertUnique(t *testing.T) {
	const n = 1000
	rs := resultset.New([]string{"oid", "name"})
	for i := 0; i < n; i++ {
		rs.Append(strconv.Itoa(i+10000), "name_"+strconv.Itoa(i))
	}
	var duplicates int
	idx, err := Build(rs, []int{0}, func(row, existing int) {
		duplicates++
	})
	require.NoError(t, err)
	assert.Equal(t, 0, duplicates)
	assert.Equal(t, n, idx.Len())
	for i := 0; i < n; i++ {
		assert.Equal(t, i, idx.Get(strconv.Itoa(i+10000)))
	}
	assert.Equal(t, NoRow, idx.Get("1"))
	assert.False(t, idx.Contains("99"))
}

func TestIndex_InsertDuplicate(t *testing.T) {
	rs := resultset.New([]string{"oid"}).
		Append("1259").
		Append("1247").
		Append("1259")
	idx, err := New(rs, 0)
	require.NoError(t, err)

	assert.Equal(t, NoRow, idx.Insert(0))
	assert.Equal(t, NoRow, idx.Insert(1))
	assert.Equal(t, 0, idx.Insert(2))
	assert.Equal(t, 2, idx.Len(), "duplicate must not grow the index")
	assert.Equal(t, 0, idx.Get("1259"))
}

func TestIndex_CompositeKey(t *testing.T) {
	rs := resultset.New([]string{"attrelid", "attname", "attnum"}).
		Append("16384", "id", "1").
		Append("16384", "name", "2").
		Append("16390", "id", "1").
		Append("1", "16384", "1")

	var dups [][2]int
	idx, err := Build(rs, []int{0, 2}, func(row, existing int) {
		dups = append(dups, [2]int{row, existing})
	})
	require.NoError(t, err)
	assert.Empty(t, dups)
	assert.Equal(t, 2, idx.KeyColumns())

	assert.Equal(t, 0, idx.Get("16384", "1"))
	assert.Equal(t, 1, idx.Get("16384", "2"))
	assert.Equal(t, 2, idx.Get("16390", "1"))
	assert.Equal(t, NoRow, idx.Get("16384", "3"))
	// xor folding is symmetric, equality must not be
	assert.Equal(t, NoRow, idx.Get("1", "16384"))
	assert.Equal(t, NoRow, idx.Get("16384"), "wrong number of key values")
}

func TestBuild_ReportsDuplicates(t *testing.T) {
	rs := resultset.New([]string{"a", "b"}).
		Append("1", "x").
		Append("1", "y").
		Append("1", "x").
		Append("1", "x")
	var dups [][2]int
	idx, err := Build(rs, []int{0, 1}, func(row, existing int) {
		dups = append(dups, [2]int{row, existing})
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{2, 0}, {3, 0}}, dups)
	assert.Equal(t, 2, idx.Len())
}
