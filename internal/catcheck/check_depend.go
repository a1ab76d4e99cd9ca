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
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/pgcatcheck/internal/rowindex"
)

// dependStyle - naming convention of the class ID, object ID and sub-ID columns.
type dependStyle int

const (
	// dependStyleObjID - referring side of pg_depend and pg_shdepend: classid, objid, objsubid.
	dependStyleObjID dependStyle = iota
	// dependStyleRefObjID - referenced side of pg_depend and pg_shdepend: refclassid, refobjid, refobjsubid.
	dependStyleRefObjID
	// dependStyleObjOID - pg_description, pg_seclabel and friends: classoid, objoid, objsubid.
	dependStyleObjOID
)

const (
	depTypePin   = "p"
	depTypeOwner = "o"
)

func dependStyleOf(table, column string) dependStyle {
	switch {
	case strings.HasPrefix(column, "ref"):
		return dependStyleRefObjID
	case strings.Contains(table, "depend"):
		return dependStyleObjID
	default:
		return dependStyleObjOID
	}
}

func (s dependStyle) classColumn() string {
	switch s {
	case dependStyleObjID:
		return "classid"
	case dependStyleRefObjID:
		return "refclassid"
	default:
		return "classoid"
	}
}

func (s dependStyle) objectColumn() string {
	switch s {
	case dependStyleObjID:
		return "objid"
	case dependStyleRefObjID:
		return "refobjid"
	default:
		return "objoid"
	}
}

type dependCache struct {
	style       dependStyle
	broken      bool
	databaseCol int
	classCol    int
	objectCol   int
	deptypeCol  int
	// duplicateOwners - owner dependencies keyed by (dbid, classid, objid). Built only for the
	// pg_shdepend object ID column.
	duplicateOwners *rowindex.Index
	// attributeReported - missing pg_attribute data was reported by the sub-ID check.
	attributeReported bool
}

func (*dependCache) isColumnCache() {}

// dependCacheFor - resolves the companion columns in the fetched rows. A broken cache means rows
// of the column are not checked, the reason is reported once.
func (r *Run) dependCacheFor(t *Table, c *Column) *dependCache {
	if cache, ok := c.cache.(*dependCache); ok {
		return cache
	}
	cache := &dependCache{
		style:       dependStyleOf(t.Name, c.Name),
		databaseCol: noColumn,
		deptypeCol:  noColumn,
	}
	c.cache = cache

	cache.classCol = t.Data.ColumnIndex(cache.style.classColumn())
	cache.objectCol = t.Data.ColumnIndex(cache.style.objectColumn())
	missing := cache.classCol == noColumn || cache.objectCol == noColumn
	if cache.style == dependStyleObjID {
		cache.databaseCol = t.Data.ColumnIndex("dbid")
		cache.deptypeCol = t.Data.ColumnIndex("deptype")
		missing = missing || cache.deptypeCol == noColumn
	}
	if missing {
		r.reporter.Warnf(t.Name, "can't identify class IDs: columns missing from %s", t.Name)
		cache.broken = true
	}

	if r.classIDs() == nil {
		cache.broken = true
	}
	return cache
}

// buildDuplicateOwners - indexes owner dependencies of pg_shdepend. Other tables have no dbid and
// get no index.
func buildDuplicateOwners(t *Table, cache *dependCache) {
	if cache.broken || cache.databaseCol == noColumn || cache.deptypeCol == noColumn {
		return
	}
	idx, err := rowindex.New(t.Data, cache.databaseCol, cache.classCol, cache.objectCol)
	if err != nil {
		log.Warn().Err(err).Str("TableName", t.Name).Msg("unable to build owner dependency index")
		return
	}
	cache.duplicateOwners = idx
}

// notForThisDatabase - the row belongs to another database of the cluster or the audited database
// is unknown. Global objects (dbid 0) are always checked.
func (r *Run) notForThisDatabase(cache *dependCache, t *Table, row int) bool {
	if cache.databaseCol == noColumn {
		return false
	}
	dbid := t.Data.Value(row, cache.databaseCol)
	if dbid == "0" {
		return false
	}
	if r.DatabaseOID == "" {
		return true
	}
	return dbid != r.DatabaseOID
}

// prepareDependClassID - class IDs are resolved through pg_class.
func prepareDependClassID(r *Run, t *Table, c *Column) error {
	class, err := r.mustTable(pgClassTable)
	if err != nil {
		return err
	}
	r.addDependency(t, class)
	if err := r.needColumn(class, "relname"); err != nil {
		return err
	}
	if err := r.needColumn(class, "relnamespace"); err != nil {
		return err
	}
	if dependStyleOf(t.Name, c.Name) == dependStyleObjID {
		return r.needColumn(t, "deptype")
	}
	return nil
}

// dependClassIDValidator - the class ID must be the OID of a known catalog table. Zero is legal
// only for pin dependencies.
type dependClassIDValidator struct{}

func (dependClassIDValidator) prepare(r *Run, t *Table, c *Column) error {
	return prepareDependClassID(r, t, c)
}

func (dependClassIDValidator) check(r *Run, t *Table, c *Column, row int) {
	cache := r.dependCacheFor(t, c)
	if cache.broken || r.notForThisDatabase(cache, t, row) {
		return
	}
	val := t.value(row, c)
	if val == "0" {
		if cache.style == dependStyleObjID && t.Data.Value(row, cache.deptypeCol) == depTypePin {
			return
		}
		r.reportRow(t, c, row, "unexpected zero value")
		return
	}
	if r.classIDs().lookup(val) == nil {
		if isBogusClassID(r.Target, val) {
			log.Trace().Str("TableName", t.Name).Msgf("ignoring reference to class ID %s", val)
			return
		}
		r.reportRow(t, c, row, "not a system catalog OID")
	}
}

// dependObjectIDValidator - the object ID must exist in the catalog table the class ID points to.
// It also reports duplicate owner dependencies.
type dependObjectIDValidator struct{}

func (dependObjectIDValidator) prepare(r *Run, t *Table, c *Column) error {
	if err := prepareDependClassID(r, t, c); err != nil {
		return err
	}
	for _, ref := range r.tables {
		if ref.KeyIsOID() {
			r.addDependency(t, ref)
		}
	}
	return r.needColumn(t, dependStyleOf(t.Name, c.Name).classColumn())
}

func (dependObjectIDValidator) check(r *Run, t *Table, c *Column, row int) {
	cache, cached := c.cache.(*dependCache)
	if !cached {
		cache = r.dependCacheFor(t, c)
		buildDuplicateOwners(t, cache)
	}
	if cache.broken || r.notForThisDatabase(cache, t, row) {
		return
	}

	if cache.duplicateOwners != nil &&
		t.Data.Value(row, cache.deptypeCol) == depTypeOwner &&
		cache.duplicateOwners.Insert(row) != rowindex.NoRow {
		r.reportRow(t, nil, row, "duplicate owner dependency")
	}

	classID := t.Data.Value(row, cache.classCol)
	val := t.value(row, c)
	if classID == "0" {
		if val != "0" {
			r.reportRow(t, c, row, "class ID is zero, but object ID is non-zero")
		}
		return
	}

	// Unknown class IDs are reported by the class ID check
	ref := r.classIDs().lookup(classID)
	if ref == nil || ref.Index == nil {
		return
	}
	if isBogusTypeReference(r.Target, ref, val) {
		log.Trace().Str("TableName", t.Name).Msg("ignoring reference to pg_type OID 0")
		return
	}
	if ref.Index.Contains(val) {
		return
	}
	if isDependencyException(r.Target, t.Name, classID, val) {
		log.Trace().
			Str("TableName", t.Name).
			Msgf("ignoring reference to class ID %s object ID %s in %s", classID, val, t.Name)
		return
	}
	r.reportRow(t, c, row, "no matching entry in %s", ref.Name)
}

// dependSubIDValidator - a non-zero sub-ID is a column number and is legal only when the class ID
// is pg_class, the (object ID, sub-ID) pair must exist in pg_attribute.
type dependSubIDValidator struct{}

func (dependSubIDValidator) prepare(r *Run, t *Table, c *Column) error {
	if err := prepareDependClassID(r, t, c); err != nil {
		return err
	}
	attribute, err := r.mustTable(pgAttributeTable)
	if err != nil {
		return err
	}
	r.addDependency(t, attribute)
	style := dependStyleOf(t.Name, c.Name)
	if err := r.needColumn(t, style.classColumn()); err != nil {
		return err
	}
	return r.needColumn(t, style.objectColumn())
}

func (dependSubIDValidator) check(r *Run, t *Table, c *Column, row int) {
	cache := r.dependCacheFor(t, c)
	if cache.broken || r.notForThisDatabase(cache, t, row) {
		return
	}
	val := t.value(row, c)
	if val == "0" {
		return
	}
	classID := t.Data.Value(row, cache.classCol)
	if classID != r.classIDs().pgClassOID {
		r.reportRow(t, c, row, "class ID %s is not pg_class, but sub-ID is non-zero", classID)
		return
	}
	attribute := r.Table(pgAttributeTable)
	if attribute == nil || attribute.Index == nil {
		r.reportUnavailable(&cache.attributeReported, t, c, pgAttributeTable)
		return
	}
	if !attribute.Index.Contains(t.Data.Value(row, cache.objectCol), val) {
		r.reportRow(t, c, row, "no matching entry in %s", attribute.Name)
	}
}
