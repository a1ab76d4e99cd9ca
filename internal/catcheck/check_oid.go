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
	"github.com/greenmaskio/pgcatcheck/internal/catalog"
)

type oidCache struct {
	ref      *Table
	reported bool
}

func (*oidCache) isColumnCache() {}

// oidValidator - the value (or every token of the vector or array) must be a key of the
// referenced table.
type oidValidator struct{}

func (oidValidator) prepare(r *Run, t *Table, c *Column) error {
	ref, err := r.mustTable(c.Check.References)
	if err != nil {
		return err
	}
	r.addDependency(t, ref)
	return nil
}

func (oidValidator) check(r *Run, t *Table, c *Column, row int) {
	cache, ok := c.cache.(*oidCache)
	if !ok {
		cache = &oidCache{ref: r.Table(c.Check.References)}
		c.cache = cache
	}
	// Not loaded or not available in this version
	if cache.ref == nil || cache.ref.Index == nil {
		r.reportUnavailable(&cache.reported, t, c, c.Check.References)
		return
	}
	val := t.value(row, c)

	var list *OIDList
	switch c.Check.Kind {
	case catalog.CheckOIDReference:
		if c.Check.ZeroOK && val == "0" {
			return
		}
		if !cache.ref.Index.Contains(val) {
			r.reportRow(t, c, row, "no matching entry in %s", cache.ref.Name)
		}
		return
	case catalog.CheckOIDVectorReference:
		list = ParseVector(val)
	case catalog.CheckOIDArrayReference:
		list = ParseArray(val)
	default:
		return
	}

	if err := list.Err(); err != nil {
		r.reportRow(t, c, row, "%s", err.Error())
		return
	}
	for oid := range list.All() {
		if c.Check.ZeroOK && oid == "0" {
			continue
		}
		if !cache.ref.Index.Contains(oid) {
			r.reportRow(t, c, row, "\"%s\" not found in %s", oid, cache.ref.Name)
		}
	}
}
