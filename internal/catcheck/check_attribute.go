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

package catcheck

import (
	"strconv"

	"github.com/greenmaskio/pgcatcheck/internal/rowindex"
)

const (
	minAttributeNumber         = -7
	minAttributeNumberExtended = -8
)

type attnumCache struct {
	class       *Table
	attrelidCol int
	relnattsCol int
	reported    bool
}

func (*attnumCache) isColumnCache() {}

// attnumValidator - pg_attribute.attnum must be a non-zero integer not lower than the lowest
// system column number and not greater than relnatts of the owning relation.
type attnumValidator struct{}

func (attnumValidator) prepare(r *Run, t *Table, c *Column) error {
	class, err := r.mustTable(pgClassTable)
	if err != nil {
		return err
	}
	r.addDependency(t, class)
	if err := r.needColumn(class, "relnatts"); err != nil {
		return err
	}
	return r.needColumn(t, "attrelid")
}

func (attnumValidator) check(r *Run, t *Table, c *Column, row int) {
	attnum, err := strconv.ParseInt(t.value(row, c), 10, 64)
	if err != nil {
		r.reportRow(t, c, row, "must be an integer")
		return
	}
	if attnum == 0 {
		r.reportRow(t, c, row, "must not be zero")
		return
	}
	minAttno := int64(minAttributeNumber)
	if r.Target.IsExtended() {
		minAttno = minAttributeNumberExtended
	}
	if attnum < minAttno {
		r.reportRow(t, c, row, "must be at least %d", minAttno)
		return
	}

	cache, ok := c.cache.(*attnumCache)
	if !ok {
		cache = &attnumCache{
			class:       r.Table(pgClassTable),
			attrelidCol: t.Data.ColumnIndex("attrelid"),
			relnattsCol: noColumn,
		}
		if cache.class != nil && cache.class.Data != nil {
			cache.relnattsCol = cache.class.Data.ColumnIndex("relnatts")
		}
		c.cache = cache
	}
	if cache.class == nil || cache.class.Index == nil || cache.relnattsCol == noColumn || cache.attrelidCol == noColumn {
		r.reportUnavailable(&cache.reported, t, c, pgClassTable+".relnatts")
		return
	}

	// attrelid and relnatts are validated by their own checks
	classRow := cache.class.Index.Get(t.Data.Value(row, cache.attrelidCol))
	if classRow == rowindex.NoRow {
		return
	}
	relnatts, err := strconv.ParseInt(cache.class.Data.Value(classRow, cache.relnattsCol), 10, 64)
	if err != nil || relnatts < 0 {
		return
	}
	if attnum > relnatts {
		r.reportRow(t, c, row, "exceeds relnatts value of %d", relnatts)
	}
}
