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
	"strings"

	"github.com/greenmaskio/pgcatcheck/internal/catalog"
)

// Selection - user include and exclude lists. Column entries are either "column" which matches the
// column in every table or "table.column".
type Selection struct {
	Tables         []string `mapstructure:"tables" yaml:"tables" json:"tables,omitempty"`
	ExcludeTables  []string `mapstructure:"exclude_tables" yaml:"exclude_tables" json:"exclude_tables,omitempty"`
	Columns        []string `mapstructure:"columns" yaml:"columns" json:"columns,omitempty"`
	ExcludeColumns []string `mapstructure:"exclude_columns" yaml:"exclude_columns" json:"exclude_columns,omitempty"`
}

// selectedOnly - when anything is explicitly included, columns are checked only on request.
func (s *Selection) selectedOnly() bool {
	return len(s.Tables) > 0 || len(s.Columns) > 0
}

// Resolve - computes availability, checked and needed flags of every column and lets the
// validators declare their dependencies. Returned errors are configuration errors.
func (r *Run) Resolve(sel Selection) error {
	if err := r.applySelection(sel); err != nil {
		return err
	}
	selectedOnly := sel.selectedOnly()

	for _, t := range r.tables {
		t.Available = false
		for _, c := range t.Columns {
			if c.checked == triYes && c.Check == nil {
				return fmt.Errorf("%w %s.%s", ErrNoCheckDefined, t.Name, c.Name)
			}

			c.Available = c.AvailableIn(r.Target)
			if !c.Available && c.checked == triYes {
				// Explicit request wins
				c.Available = true
				r.reporter.Warnf(t.Name, "column %s.%s is not supported by this server version", t.Name, c.Name)
			}
			if c.Available {
				t.Available = true
			}

			if c.checked == triDefault {
				switch {
				case c.Check == nil:
					c.checked = triNo
				case !c.Available:
					c.checked = triNo
				case t.checked != triDefault:
					c.checked = t.checked
				case selectedOnly:
					c.checked = triNo
				default:
					c.checked = triYes
				}
			}

			c.Needed = c.Available && (c.checked == triYes || c.Key || c.Display)
		}
	}

	for _, t := range r.tables {
		for _, c := range t.Columns {
			if c.Check == nil || !c.Checked() {
				continue
			}
			v, err := validatorFor(c.Check.Kind)
			if err != nil {
				return fmt.Errorf("column %s.%s: %w", t.Name, c.Name, err)
			}
			if err := v.prepare(r, t, c); err != nil {
				return fmt.Errorf("unable to prepare check of %s.%s: %w", t.Name, c.Name, err)
			}
		}
	}
	return nil
}

// applySelection - exclusions are applied first so an explicit request overrides them.
func (r *Run) applySelection(sel Selection) error {
	for _, name := range sel.ExcludeTables {
		if err := r.selectTable(name, triNo); err != nil {
			return err
		}
	}
	for _, name := range sel.Tables {
		if err := r.selectTable(name, triYes); err != nil {
			return err
		}
	}
	for _, name := range sel.ExcludeColumns {
		if err := r.selectColumn(name, triNo); err != nil {
			return err
		}
	}
	for _, name := range sel.Columns {
		if err := r.selectColumn(name, triYes); err != nil {
			return err
		}
	}
	return nil
}

func (r *Run) selectTable(name string, v triState) error {
	t := r.Table(name)
	if t == nil {
		return fmt.Errorf("%w: \"%s\"", ErrUnknownTable, name)
	}
	t.checked = v
	return nil
}

func (r *Run) selectColumn(name string, v triState) error {
	if tableName, columnName, ok := strings.Cut(name, "."); ok {
		t := r.Table(tableName)
		if t == nil {
			return fmt.Errorf("%w: \"%s\"", ErrUnknownTable, tableName)
		}
		c := t.Column(columnName)
		if c == nil {
			return fmt.Errorf("%w: \"%s\"", ErrUnknownColumn, name)
		}
		c.checked = v
		return nil
	}

	var matched int
	for _, t := range r.tables {
		if c := t.Column(name); c != nil {
			c.checked = v
			matched++
		}
	}
	if matched == 0 {
		return fmt.Errorf("%w: \"%s\"", ErrUnknownColumn, name)
	}
	return nil
}

// Validate - checks the names against the catalog definitions. It needs no server so the caller
// can reject the selection before connecting.
func (s Selection) Validate() error {
	r := NewRun(catalog.Target{}, "", nil)
	if err := r.applySelection(s); err != nil {
		return err
	}
	for _, t := range r.tables {
		for _, c := range t.Columns {
			if c.checked == triYes && c.Check == nil {
				return fmt.Errorf("%w %s.%s", ErrNoCheckDefined, t.Name, c.Name)
			}
		}
	}
	return nil
}
