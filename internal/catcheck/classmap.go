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

// classMap - maps the pg_class OIDs of the catalog tables keyed by oid to the run tables.
type classMap struct {
	byOID map[string]*Table
	// pgClassOID - OID of pg_class itself. Sub-IDs are legal only for this class.
	pgClassOID string
}

func (m *classMap) lookup(oid string) *Table {
	return m.byOID[oid]
}

// classIDs - builds the class map on the first call. Returns nil when the map could not be
// built, the reason is reported once.
func (r *Run) classIDs() *classMap {
	if r.classMapAttempted {
		return r.classMap
	}
	r.classMapAttempted = true

	class := r.Table(pgClassTable)
	if class == nil || class.Data == nil || class.Data.Len() == 0 {
		r.reporter.Warnf(pgClassTable, "can't identify class IDs: no pg_class data")
		return nil
	}
	oidCol := class.Data.ColumnIndex("oid")
	relnamespaceCol := class.Data.ColumnIndex("relnamespace")
	relnameCol := class.Data.ColumnIndex("relname")
	if oidCol == noColumn || relnamespaceCol == noColumn || relnameCol == noColumn {
		r.reporter.Warnf(pgClassTable, "can't identify class IDs: missing pg_class columns")
		return nil
	}

	m := &classMap{byOID: make(map[string]*Table)}
	for row := 0; row < class.Data.Len(); row++ {
		if class.Data.Value(row, relnamespaceCol) != catalog.NamespaceOID {
			continue
		}
		t := r.Table(class.Data.Value(row, relnameCol))
		if t == nil || !t.Available || !t.KeyIsOID() {
			continue
		}
		oid := class.Data.Value(row, oidCol)
		if _, ok := m.byOID[oid]; ok {
			continue
		}
		m.byOID[oid] = t
		if t == class {
			m.pgClassOID = oid
		}
	}

	if len(m.byOID) == 0 {
		r.reporter.Warnf(pgClassTable, "can't identify class IDs: no catalog tables found in pg_class")
		return nil
	}
	if m.pgClassOID == "" {
		r.reporter.Warnf(pgClassTable, "can't identify class IDs: pg_class not found in pg_class")
		return nil
	}
	r.classMap = m
	return m
}
