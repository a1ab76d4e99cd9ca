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
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/pgcatcheck/internal/catalog"
	"github.com/greenmaskio/pgcatcheck/internal/report"
	"github.com/greenmaskio/pgcatcheck/internal/resultset"
	"github.com/greenmaskio/pgcatcheck/internal/rowindex"
)

const (
	pgClassTable     = "pg_class"
	pgAttributeTable = "pg_attribute"
	pgNamespaceTable = "pg_namespace"
	pgTypeTable      = "pg_type"
)

// noColumn - result index of the column that was not fetched.
const noColumn = -1

type triState int

const (
	triDefault triState = iota
	triNo
	triYes
)

// Column - catalog column resolved for the audited server.
type Column struct {
	catalog.ColumnSpec
	Available bool
	// Needed - the column is selected when the table is fetched.
	Needed      bool
	checked     triState
	resultIndex int
	cache       columnCache
}

// Checked - the column is going to be validated.
func (c *Column) Checked() bool {
	return c.checked == triYes
}

// ResultIndex - position of the column in the fetched rows or -1.
func (c *Column) ResultIndex() int {
	return c.resultIndex
}

// Table - catalog table resolved for the audited server. Tables are stored in the run arena
// and reference each other by ID.
type Table struct {
	ID        int
	Name      string
	Columns   []*Column
	Available bool
	checked   triState

	NeedsLoad  bool
	NeedsCheck bool
	// Data - fetched rows. Nil until loaded or when loading failed.
	Data *resultset.ResultSet
	// Index - index over the available key columns. Nil when the table has no key columns or was not loaded.
	Index *rowindex.Index

	needs    []int
	neededBy []int
}

// Column - finds the column by name.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// KeyIsOID - "oid" is the only key column of the table.
func (t *Table) KeyIsOID() bool {
	var hasOID, hasOther bool
	for _, c := range t.Columns {
		if !c.Key {
			continue
		}
		if c.Name == "oid" {
			hasOID = true
		} else {
			hasOther = true
		}
	}
	return hasOID && !hasOther
}

// Needs - IDs of tables that must be loaded before this table is checked.
func (t *Table) Needs() []int {
	return t.needs
}

// NeededBy - IDs of tables waiting for this table to be loaded.
func (t *Table) NeededBy() []int {
	return t.neededBy
}

func (t *Table) value(row int, c *Column) string {
	return t.Data.Value(row, c.resultIndex)
}

// Run - state of a single audit run: the table arena, the audited server facts and the
// lazily built lookup structures shared by validators.
type Run struct {
	Target catalog.Target
	// DatabaseOID - OID of the audited database. Empty when it could not be determined.
	DatabaseOID string

	tables   []*Table
	byName   map[string]int
	reporter *report.Reporter

	classMap          *classMap
	classMapAttempted bool
}

// NewRun - creates the arena from the catalog definitions.
func NewRun(target catalog.Target, databaseOID string, reporter *report.Reporter) *Run {
	defs := catalog.Definitions()
	r := &Run{
		Target:      target,
		DatabaseOID: databaseOID,
		tables:      make([]*Table, 0, len(defs)),
		byName:      make(map[string]int, len(defs)),
		reporter:    reporter,
	}
	for _, def := range defs {
		t := &Table{
			ID:      len(r.tables),
			Name:    def.Name,
			Columns: make([]*Column, 0, len(def.Columns)),
		}
		for _, cs := range def.Columns {
			t.Columns = append(t.Columns, &Column{ColumnSpec: cs, resultIndex: noColumn})
		}
		r.byName[t.Name] = t.ID
		r.tables = append(r.tables, t)
	}
	return r
}

// Tables - all tables of the run in the registry order.
func (r *Run) Tables() []*Table {
	return r.tables
}

// Table - returns the table by name or nil.
func (r *Run) Table(name string) *Table {
	id, ok := r.byName[name]
	if !ok {
		return nil
	}
	return r.tables[id]
}

func (r *Run) mustTable(name string) (*Table, error) {
	t := r.Table(name)
	if t == nil {
		return nil, fmt.Errorf("no metadata found for table %s: %w", name, ErrUnknownTable)
	}
	return t, nil
}

// needColumn - forces the column to be fetched if the server has it.
func (r *Run) needColumn(t *Table, name string) error {
	c := t.Column(name)
	if c == nil {
		return fmt.Errorf("no metadata found for column %s.%s: %w", t.Name, name, ErrUnknownColumn)
	}
	if c.Available {
		c.Needed = true
	}
	return nil
}

// addDependency - declares that needs must not be checked before neededBy is loaded.
func (r *Run) addDependency(needs, neededBy *Table) {
	if !needs.Available || !neededBy.Available {
		return
	}
	if needs == neededBy {
		return
	}
	for _, id := range needs.needs {
		if id == neededBy.ID {
			return
		}
	}
	log.Trace().
		Str("TableName", needs.Name).
		Str("DependsOn", neededBy.Name).
		Msgf("table %s depends on table %s", needs.Name, neededBy.Name)
	needs.needs = append(needs.needs, neededBy.ID)
	neededBy.neededBy = append(neededBy.neededBy, needs.ID)
}

// reportRow - reports the inconsistency found in the row. c is nil for row level findings.
func (r *Run) reportRow(t *Table, c *Column, row int, format string, args ...any) {
	e := report.NewEvent(report.SeverityInconsistency, fmt.Sprintf(format, args...))
	e.Table = t.Name
	e.Row = row
	if c != nil {
		e.Column = c.Name
		e.Value = t.value(row, c)
	}
	for _, dc := range t.Columns {
		if dc.Display && dc.resultIndex != noColumn {
			e.Identity = append(e.Identity, report.Field{Name: dc.Name, Value: t.value(row, dc)})
		}
	}
	r.reporter.Report(e)
}

// reportUnavailable - the column can't be checked since the data it refers to was not loaded.
// Reported once per column, reported is the flag kept in the column cache.
func (r *Run) reportUnavailable(reported *bool, t *Table, c *Column, ref string) {
	if *reported {
		return
	}
	*reported = true
	r.reporter.Warnf(t.Name, "can't check %s.%s: %s data not available", t.Name, c.Name, ref)
}
