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
	"errors"
	"fmt"
)

// NoRow - returned when the key is not present (Get) or when there is no conflict (Insert).
const NoRow = -1

// MaxKeyColumns - maximal number of key columns supported by the index.
const MaxKeyColumns = 10

var (
	ErrNoKeyColumns      = errors.New("index requires at least one key column")
	ErrTooManyKeyColumns = fmt.Errorf("index supports at most %d key columns", MaxKeyColumns)
	errNegativeKeyColumn = errors.New("key column position cannot be negative")
)

// Source - tabular text data the index is built over.
type Source interface {
	Len() int
	Value(row, col int) string
}

type entry struct {
	hash uint32
	row  int
	next int
}

// Index - hash index over the rows of the Source keyed by the ordered set of columns.
// Entries are stored in an arena and chained by position.
type Index struct {
	src     Source
	keyCols []int
	buckets []int
	entries []entry
	mask    uint32
}

// New - creates an empty index sized for the current amount of rows in the source.
// Rows are not inserted, call Insert for every row to populate it.
func New(src Source, keyCols ...int) (*Index, error) {
	if len(keyCols) == 0 {
		return nil, ErrNoKeyColumns
	}
	if len(keyCols) > MaxKeyColumns {
		return nil, ErrTooManyKeyColumns
	}
	for _, c := range keyCols {
		if c < 0 {
			return nil, fmt.Errorf("column %d: %w", c, errNegativeKeyColumn)
		}
	}
	nbuckets := 1
	for nbuckets < src.Len() {
		nbuckets <<= 1
	}
	buckets := make([]int, nbuckets)
	for i := range buckets {
		buckets[i] = NoRow
	}
	return &Index{
		src:     src,
		keyCols: append([]int(nil), keyCols...),
		buckets: buckets,
		entries: make([]entry, 0, src.Len()),
		mask:    uint32(nbuckets - 1),
	}, nil
}

// Build - creates the index and inserts every row of the source. onDuplicate is called for each row
// whose key is already present with the row number of the first occurrence.
func Build(src Source, keyCols []int, onDuplicate func(row, existing int)) (*Index, error) {
	idx, err := New(src, keyCols...)
	if err != nil {
		return nil, err
	}
	for row := 0; row < src.Len(); row++ {
		if existing := idx.Insert(row); existing != NoRow && onDuplicate != nil {
			onDuplicate(row, existing)
		}
	}
	return idx, nil
}

// Insert - adds the row into the index. Returns NoRow on success or the number of the row
// already stored with the same key. In the latter case the index is not changed.
func (idx *Index) Insert(row int) int {
	var hash uint32
	for _, c := range idx.keyCols {
		hash ^= Hash(idx.src.Value(row, c))
	}
	bucket := hash & idx.mask
	for pos := idx.buckets[bucket]; pos != NoRow; pos = idx.entries[pos].next {
		e := idx.entries[pos]
		if e.hash == hash && idx.rowsEqual(e.row, row) {
			return e.row
		}
	}
	idx.entries = append(idx.entries, entry{hash: hash, row: row, next: idx.buckets[bucket]})
	idx.buckets[bucket] = len(idx.entries) - 1
	return NoRow
}

// Get - returns the row number matching the key values or NoRow. The values must be provided in
// the key column order.
func (idx *Index) Get(keys ...string) int {
	if len(keys) != len(idx.keyCols) {
		return NoRow
	}
	var hash uint32
	for _, k := range keys {
		hash ^= Hash(k)
	}
	for pos := idx.buckets[hash&idx.mask]; pos != NoRow; pos = idx.entries[pos].next {
		e := idx.entries[pos]
		if e.hash == hash && idx.rowMatches(e.row, keys) {
			return e.row
		}
	}
	return NoRow
}

// Contains - shortcut for Get(keys...) != NoRow.
func (idx *Index) Contains(keys ...string) bool {
	return idx.Get(keys...) != NoRow
}

// Len - number of rows stored in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// KeyColumns - number of columns in the key.
func (idx *Index) KeyColumns() int {
	return len(idx.keyCols)
}

func (idx *Index) rowsEqual(a, b int) bool {
	for _, c := range idx.keyCols {
		if idx.src.Value(a, c) != idx.src.Value(b, c) {
			return false
		}
	}
	return true
}

func (idx *Index) rowMatches(row int, keys []string) bool {
	for i, c := range idx.keyCols {
		if idx.src.Value(row, c) != keys[i] {
			return false
		}
	}
	return true
}

// Hash - sdbm string hash (http://www.cse.yorku.ca/~oz/hash.html).
func Hash(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = uint32(s[i]) + (h << 6) + (h << 16) - h
	}
	return h
}
