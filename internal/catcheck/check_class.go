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
)

// maxAttributeNumber - the server never creates a relation with more user columns.
const maxAttributeNumber = 1600

type relnattsCache struct {
	attribute *Table
	oidCol    int
	reported  bool
}

func (*relnattsCache) isColumnCache() {}

// relnattsValidator - every user column 1..relnatts must have a pg_attribute row. System columns
// are not checked since they depend on the relation kind.
type relnattsValidator struct{}

func (relnattsValidator) prepare(r *Run, t *Table, c *Column) error {
	attribute, err := r.mustTable(pgAttributeTable)
	if err != nil {
		return err
	}
	r.addDependency(t, attribute)
	return nil
}

func (relnattsValidator) check(r *Run, t *Table, c *Column, row int) {
	relnatts, err := strconv.ParseInt(t.value(row, c), 10, 64)
	if err != nil || relnatts < 0 {
		r.reportRow(t, c, row, "must be a non-negative integer")
		return
	}
	if relnatts > maxAttributeNumber {
		r.reportRow(t, c, row, "exceeds the maximum number of columns %d", maxAttributeNumber)
		return
	}

	cache, ok := c.cache.(*relnattsCache)
	if !ok {
		cache = &relnattsCache{
			attribute: r.Table(pgAttributeTable),
			oidCol:    t.Data.ColumnIndex("oid"),
		}
		c.cache = cache
	}
	if cache.attribute == nil || cache.attribute.Index == nil || cache.oidCol == noColumn {
		r.reportUnavailable(&cache.reported, t, c, pgAttributeTable)
		return
	}

	oid := t.Data.Value(row, cache.oidCol)
	for attno := 1; attno <= int(relnatts); attno++ {
		if !cache.attribute.Index.Contains(oid, strconv.Itoa(attno)) {
			r.reportRow(t, c, row, "attribute %d does not exist in pg_attribute", attno)
		}
	}
}
