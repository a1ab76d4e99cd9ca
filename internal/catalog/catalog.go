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

package catalog

import (
	"fmt"
	"strings"
)

const (
	// Namespace - schema every audited table lives in.
	Namespace = "pg_catalog"
	// NamespaceOID - OID of the pg_catalog namespace. It is the same in every supported version.
	NamespaceOID = "11"
	// MaxKeyColumns - the row index does not accept more key columns than this.
	MaxKeyColumns = 10
)

type Flavor int

const (
	FlavorPostgreSQL Flavor = iota
	FlavorEnterpriseDB
)

const (
	FlavorAutoName         = "auto"
	FlavorPostgreSQLName   = "postgresql"
	FlavorEnterpriseDBName = "enterprisedb"
)

func (f Flavor) String() string {
	switch f {
	case FlavorEnterpriseDB:
		return FlavorEnterpriseDBName
	default:
		return FlavorPostgreSQLName
	}
}

func (f Flavor) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ParseFlavor - parses the flavor name. The second return value is false when the
// flavor must be detected on the server ("auto" or empty string).
func ParseFlavor(s string) (Flavor, bool, error) {
	switch strings.ToLower(s) {
	case "", FlavorAutoName:
		return FlavorPostgreSQL, false, nil
	case FlavorPostgreSQLName, "postgres", "pg":
		return FlavorPostgreSQL, true, nil
	case FlavorEnterpriseDBName, "edb":
		return FlavorEnterpriseDB, true, nil
	}
	return FlavorPostgreSQL, false, fmt.Errorf("unknown flavor \"%s\"", s)
}

// Target - server version and product flavor the registry is resolved against.
type Target struct {
	Version int    `json:"version" yaml:"version"`
	Flavor  Flavor `json:"flavor" yaml:"flavor"`
}

func (t Target) IsExtended() bool {
	return t.Flavor == FlavorEnterpriseDB
}

// ColumnSpec - static description of the catalog column.
type ColumnSpec struct {
	Name string `json:"name" yaml:"name"`
	// Cast - optional type the column is cast to in the SELECT list.
	Cast string `json:"cast,omitempty" yaml:"cast,omitempty"`
	// MinVersion - first server version that has the column. 0 means unbounded.
	MinVersion int `json:"min_version,omitempty" yaml:"min_version,omitempty"`
	// MaxVersion - first server version that does not have the column anymore. 0 means unbounded.
	MaxVersion int `json:"max_version,omitempty" yaml:"max_version,omitempty"`
	// ExtendedOnly - the column exists only in the EnterpriseDB flavor.
	ExtendedOnly bool   `json:"extended_only,omitempty" yaml:"extended_only,omitempty"`
	Key          bool   `json:"key,omitempty" yaml:"key,omitempty"`
	Display      bool   `json:"display,omitempty" yaml:"display,omitempty"`
	Check        *Check `json:"check,omitempty" yaml:"check,omitempty"`
}

// AvailableIn - reports whether the column exists in the target server.
func (cs *ColumnSpec) AvailableIn(t Target) bool {
	if cs.ExtendedOnly && !t.IsExtended() {
		return false
	}
	if cs.MinVersion != 0 && t.Version < cs.MinVersion {
		return false
	}
	if cs.MaxVersion != 0 && t.Version >= cs.MaxVersion {
		return false
	}
	return true
}

type TableSpec struct {
	Name    string       `json:"name" yaml:"name"`
	Columns []ColumnSpec `json:"columns" yaml:"columns"`
}

// Column - returns the column spec by name.
func (ts *TableSpec) Column(name string) (*ColumnSpec, bool) {
	for i := range ts.Columns {
		if ts.Columns[i].Name == name {
			return &ts.Columns[i], true
		}
	}
	return nil, false
}

// KeyIsOID - reports whether "oid" is the only key column of the table.
func (ts *TableSpec) KeyIsOID() bool {
	var hasOID, hasOther bool
	for _, c := range ts.Columns {
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

// Definitions - returns a fresh copy of every catalog table known to the tool in registry order.
// Check bindings are shared between copies and must not be mutated.
func Definitions() []TableSpec {
	res := make([]TableSpec, len(definitions))
	for i, t := range definitions {
		res[i] = TableSpec{
			Name:    t.Name,
			Columns: append([]ColumnSpec(nil), t.Columns...),
		}
	}
	return res
}

// Lookup - finds the table definition by name.
func Lookup(name string) (TableSpec, bool) {
	for _, t := range definitions {
		if t.Name == name {
			return TableSpec{Name: t.Name, Columns: append([]ColumnSpec(nil), t.Columns...)}, true
		}
	}
	return TableSpec{}, false
}
