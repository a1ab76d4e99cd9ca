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
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/pgcatcheck/internal/catalog"
	"github.com/greenmaskio/pgcatcheck/internal/report"
)

var (
	pgNamespaceColumns = []string{"oid", "nspname"}
	pgAttributeColumns = []string{"attrelid", "attname", "attnum"}
	pgDependColumns    = []string{"classid", "objid", "objsubid", "refclassid", "refobjid", "refobjsubid", "deptype"}
	pgShdependColumns  = []string{"dbid", "classid", "objid", "objsubid", "refclassid", "refobjid", "deptype"}
)

// catalogFixture - minimal consistent catalog: system tables in pg_catalog and one user table
// public.victim with two columns.
func catalogFixture() *memFetcher {
	classRows := append(catalogClassRows(), []string{"16384", "victim", "2200", "r", "2"})
	return newMemFetcher().
		add("pg_class", pgClassColumns, classRows...).
		add("pg_namespace", pgNamespaceColumns,
			[]string{"11", "pg_catalog"},
			[]string{"2200", "public"},
		).
		add("pg_authid", []string{"oid", "rolname"}, []string{"10", "postgres"}).
		add("pg_attribute", pgAttributeColumns,
			[]string{"16384", "a", "1"},
			[]string{"16384", "b", "2"},
		)
}

func TestAuditor_DanglingNamespace(t *testing.T) {
	f := catalogFixture()
	f.add("pg_class", pgClassColumns,
		[]string{"1259", "pg_class", "11", "r", "5"},
		[]string{"16384", "victim", "99999", "r", "2"},
	)
	c, r := audit(t, testTarget, "", f, Options{
		Selection: Selection{Columns: []string{"pg_class.relnamespace"}},
	})

	events := c.GetEvents()
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, report.SeverityInconsistency, e.Severity)
	assert.Equal(t, "pg_class", e.Table)
	assert.Equal(t, "relnamespace", e.Column)
	assert.Equal(t, "99999", e.Value)
	assert.Equal(t, 1, e.Row)
	assert.Equal(t, `pg_class row has invalid relnamespace "99999": no matching entry in pg_namespace`, e.Headline())
	assert.Equal(t, []report.Field{
		{Name: "oid", Value: "16384"},
		{Name: "relname", Value: "victim"},
		{Name: "relkind", Value: "r"},
	}, e.Identity)

	s := r.Summary()
	assert.Equal(t, report.ExitCodeInconsistencies, s.ExitCode())
	assert.Equal(t, "done (1 inconsistencies, 0 warnings, 0 errors)", s.String())
	assert.Equal(t, 1, f.fetched("pg_class"))
	assert.Equal(t, 1, f.fetched("pg_namespace"))
}

func TestAuditor_Consistent(t *testing.T) {
	c, r := audit(t, testTarget, "", catalogFixture(), Options{
		Selection: Selection{Columns: []string{"pg_class.relnamespace", "pg_attribute.attnum", "pg_class.relnatts"}},
	})
	assert.False(t, c.HasEvents(), messages(c.GetEvents()))
	assert.Equal(t, report.ExitCodeOK, r.Summary().ExitCode())
}

func TestAuditor_DuplicateKey(t *testing.T) {
	f := catalogFixture()
	f.add("pg_namespace", pgNamespaceColumns,
		[]string{"11", "pg_catalog"},
		[]string{"2200", "public"},
		[]string{"11", "pg_catalog_copy"},
	)
	c, _ := audit(t, testTarget, "", f, Options{
		Selection: Selection{Columns: []string{"pg_class.relnamespace"}},
	})
	events := inconsistencies(c)
	require.Len(t, events, 1)
	assert.Equal(t, "pg_namespace row duplicates existing key", events[0].Headline())
	assert.Equal(t, 2, events[0].Row)
	assert.Equal(t, `oid="11" nspname="pg_catalog_copy"`, events[0].IdentityString())
}

func TestAuditor_LoadFailure(t *testing.T) {
	f := catalogFixture()
	f.failing["pg_namespace"] = errors.New("permission denied for table pg_namespace")
	c, r := audit(t, testTarget, "", f, Options{
		Selection: Selection{Columns: []string{"pg_class.relnamespace"}},
	})

	assert.Empty(t, inconsistencies(c))
	errs := c.Filter(report.SeverityError)
	require.Len(t, errs, 1)
	assert.Equal(t, "could not load table pg_namespace: permission denied for table pg_namespace", errs[0].Message)
	warnings := c.Filter(report.SeverityWarning)
	require.Len(t, warnings, 1)
	assert.Equal(t, "can't check pg_class.relnamespace: pg_namespace data not available", warnings[0].Message)
	assert.Equal(t, "pg_class", warnings[0].Table)
	assert.Equal(t, report.ExitCodeFailure, r.Summary().ExitCode())
}

func TestAuditor_DataNotAvailable(t *testing.T) {
	tests := []struct {
		name    string
		failing string
		column  string
		warning string
	}{
		{
			name:    "relnatts without pg_attribute",
			failing: "pg_attribute",
			column:  "pg_class.relnatts",
			warning: "can't check pg_class.relnatts: pg_attribute data not available",
		},
		{
			name:    "attnum without pg_class",
			failing: "pg_class",
			column:  "pg_attribute.attnum",
			warning: "can't check pg_attribute.attnum: pg_class.relnatts data not available",
		},
		{
			name:    "sub-ID without pg_attribute",
			failing: "pg_attribute",
			column:  "pg_depend.objsubid",
			warning: "can't check pg_depend.objsubid: pg_attribute data not available",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := catalogFixture()
			f.add("pg_depend", pgDependColumns,
				[]string{"1259", "16384", "1", "0", "0", "0", "n"},
				[]string{"1259", "16384", "2", "0", "0", "0", "n"},
				[]string{"1259", "16384", "3", "0", "0", "0", "n"},
			)
			f.failing[tt.failing] = errors.New("permission denied")
			c, r := audit(t, testTarget, "", f, Options{
				Selection: Selection{Columns: []string{tt.column}},
			})

			assert.Empty(t, inconsistencies(c))
			require.Len(t, c.Filter(report.SeverityError), 1)
			warnings := c.Filter(report.SeverityWarning)
			require.Len(t, warnings, 1)
			assert.Equal(t, tt.warning, warnings[0].Message)
			assert.Equal(t, report.ExitCodeFailure, r.Summary().ExitCode())
		})
	}
}

func TestAuditor_OIDLists(t *testing.T) {
	f := catalogFixture()
	f.add("pg_type", []string{"oid"}, []string{"23"}, []string{"25"})
	f.add("pg_proc", []string{"oid", "proargtypes", "proallargtypes"},
		[]string{"100", "23 25", ""},
		[]string{"101", "23 999", "{23,25}"},
		[]string{"102", "", "{23,abc"},
		[]string{"103", strings.Repeat("1", 32), "{}"},
	)
	c, _ := audit(t, testTarget, "", f, Options{
		Selection: Selection{Columns: []string{"pg_proc.proargtypes", "pg_proc.proallargtypes"}},
	})
	assert.Equal(t, []string{
		`pg_proc row has invalid proargtypes "23 999": "999" not found in pg_type`,
		`pg_proc row has invalid proallargtypes "{23,abc": not a valid 1-D array`,
		`pg_proc row has invalid proargtypes "` + strings.Repeat("1", 32) + `": contains a token of 32 characters`,
	}, messages(c.GetEvents()))
}

func TestAuditor_OIDListTokenTooLong(t *testing.T) {
	f := catalogFixture()
	f.add("pg_type", []string{"oid"}, []string{"23"})
	f.add("pg_proc", []string{"oid", "proargtypes", "proallargtypes"},
		[]string{"100", "999 " + strings.Repeat("1", 33) + " 998", ""},
		[]string{"101", "", "{999," + strings.Repeat("2", 40) + "}"},
	)
	c, _ := audit(t, testTarget, "", f, Options{
		Selection: Selection{Columns: []string{"pg_proc.proargtypes", "pg_proc.proallargtypes"}},
	})
	// Tokens before the long one are not looked up
	assert.Equal(t, []string{
		`pg_proc row has invalid proargtypes "999 ` + strings.Repeat("1", 33) + ` 998": contains a token of 33 characters`,
		`pg_proc row has invalid proallargtypes "{999,` + strings.Repeat("2", 40) + `}": contains a token of 40 characters`,
	}, messages(c.GetEvents()))
}

func TestAuditor_Attnum(t *testing.T) {
	rows := [][]string{
		{"16384", "a", "1"},
		{"16384", "ctid", "-1"},
		{"16384", "b", "3"},
		{"16384", "c", "0"},
		{"16384", "d", "-9"},
		{"16384", "e", "x"},
		{"16384", "f", "-8"},
		{"55555", "z", "4"},
	}

	t.Run("postgresql", func(t *testing.T) {
		f := catalogFixture()
		f.add("pg_attribute", pgAttributeColumns, rows...)
		c, _ := audit(t, testTarget, "", f, Options{
			Selection: Selection{Columns: []string{"pg_attribute.attnum"}},
		})
		assert.Equal(t, []string{
			`pg_attribute row has invalid attnum "3": exceeds relnatts value of 2`,
			`pg_attribute row has invalid attnum "0": must not be zero`,
			`pg_attribute row has invalid attnum "-9": must be at least -7`,
			`pg_attribute row has invalid attnum "x": must be an integer`,
			`pg_attribute row has invalid attnum "-8": must be at least -7`,
		}, messages(c.GetEvents()))
	})

	t.Run("enterprisedb", func(t *testing.T) {
		f := catalogFixture()
		f.add("pg_attribute", pgAttributeColumns, rows...)
		target := catalog.Target{Version: 90500, Flavor: catalog.FlavorEnterpriseDB}
		c, _ := audit(t, target, "", f, Options{
			Selection: Selection{Columns: []string{"pg_attribute.attnum"}},
		})
		assert.Equal(t, []string{
			`pg_attribute row has invalid attnum "3": exceeds relnatts value of 2`,
			`pg_attribute row has invalid attnum "0": must not be zero`,
			`pg_attribute row has invalid attnum "-9": must be at least -8`,
			`pg_attribute row has invalid attnum "x": must be an integer`,
		}, messages(c.GetEvents()))
	})
}

func TestAuditor_Relnatts(t *testing.T) {
	f := catalogFixture()
	f.add("pg_class", pgClassColumns,
		[]string{"1259", "pg_class", "11", "r", "0"},
		[]string{"16384", "victim", "2200", "r", "3"},
		[]string{"16385", "broken", "2200", "r", "-1"},
		[]string{"16386", "wide", "2200", "r", "1601"},
	)
	c, _ := audit(t, testTarget, "", f, Options{
		Selection: Selection{Columns: []string{"pg_class.relnatts"}},
	})
	assert.Equal(t, []string{
		`pg_class row has invalid relnatts "3": attribute 3 does not exist in pg_attribute`,
		`pg_class row has invalid relnatts "-1": must be a non-negative integer`,
		`pg_class row has invalid relnatts "1601": exceeds the maximum number of columns 1600`,
	}, messages(c.GetEvents()))
}

func TestAuditor_DependencyClassID(t *testing.T) {
	f := catalogFixture()
	f.add("pg_depend", pgDependColumns,
		[]string{"0", "0", "0", "0", "0", "0", "p"},
		[]string{"0", "16390", "0", "1259", "16384", "0", "n"},
		[]string{"99999", "1", "0", "1259", "16384", "0", "n"},
		[]string{"1259", "16384", "0", "2615", "2200", "0", "n"},
	)
	c, _ := audit(t, testTarget, "", f, Options{
		Selection: Selection{Columns: []string{"pg_depend.classid"}},
	})
	events := c.GetEvents()
	assert.Equal(t, []string{
		`pg_depend row has invalid classid "0": unexpected zero value`,
		`pg_depend row has invalid classid "99999": not a system catalog OID`,
	}, messages(events))
	require.Len(t, events, 2)
	assert.Equal(t, 1, events[0].Row)
	assert.Equal(t, "deptype", events[0].Identity[len(events[0].Identity)-1].Name)
}

func TestAuditor_DependencyClassID_NoClassData(t *testing.T) {
	f := catalogFixture()
	f.add("pg_class", pgClassColumns)
	f.add("pg_depend", pgDependColumns, []string{"99999", "1", "0", "1259", "16384", "0", "n"})
	c, r := audit(t, testTarget, "", f, Options{
		Selection: Selection{Columns: []string{"pg_depend.classid", "pg_depend.refclassid"}},
	})
	assert.Empty(t, inconsistencies(c))
	warnings := c.Filter(report.SeverityWarning)
	require.Len(t, warnings, 1)
	assert.Equal(t, "can't identify class IDs: no pg_class data", warnings[0].Message)
	assert.Equal(t, report.ExitCodeFailure, r.Summary().ExitCode())
}

func TestAuditor_DependencyObjectID(t *testing.T) {
	f := catalogFixture()
	f.add("pg_depend", pgDependColumns,
		[]string{"1259", "1259", "0", "0", "0", "0", "n"},
		[]string{"1259", "77777", "0", "0", "0", "0", "n"},
		[]string{"0", "5", "0", "0", "0", "0", "p"},
		[]string{"99999", "1", "0", "0", "0", "0", "n"},
		[]string{"2615", "2200", "0", "0", "0", "0", "n"},
	)
	c, _ := audit(t, testTarget, "", f, Options{
		Selection: Selection{Columns: []string{"pg_depend.objid"}},
	})
	assert.Equal(t, []string{
		`pg_depend row has invalid objid "77777": no matching entry in pg_class`,
		`pg_depend row has invalid objid "5": class ID is zero, but object ID is non-zero`,
	}, messages(c.GetEvents()))
}

func TestAuditor_DependencySubID(t *testing.T) {
	f := catalogFixture()
	f.add("pg_depend", pgDependColumns,
		[]string{"1259", "16384", "2", "0", "0", "0", "n"},
		[]string{"1259", "16384", "3", "0", "0", "0", "n"},
		[]string{"2615", "2200", "1", "0", "0", "0", "n"},
		[]string{"2615", "2200", "0", "0", "0", "0", "n"},
	)
	c, _ := audit(t, testTarget, "", f, Options{
		Selection: Selection{Columns: []string{"pg_depend.objsubid"}},
	})
	assert.Equal(t, []string{
		`pg_depend row has invalid objsubid "3": no matching entry in pg_attribute`,
		`pg_depend row has invalid objsubid "1": class ID 2615 is not pg_class, but sub-ID is non-zero`,
	}, messages(c.GetEvents()))
}

func TestAuditor_SharedDependencies(t *testing.T) {
	rows := [][]string{
		{"5", "1259", "16384", "0", "1260", "10", "o"},
		{"5", "1259", "16384", "0", "1260", "10", "o"},
		{"6", "1259", "77777", "0", "1260", "10", "o"},
		{"0", "1260", "10", "0", "1260", "10", "o"},
	}

	t.Run("current database", func(t *testing.T) {
		f := catalogFixture()
		f.add("pg_shdepend", pgShdependColumns, rows...)
		c, _ := audit(t, testTarget, "5", f, Options{
			Selection: Selection{Columns: []string{"pg_shdepend.objid"}},
		})
		events := c.GetEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "duplicate owner dependency", events[0].Headline())
		assert.Equal(t, 1, events[0].Row)
		assert.Empty(t, events[0].Column)
	})

	t.Run("other database", func(t *testing.T) {
		f := catalogFixture()
		f.add("pg_shdepend", pgShdependColumns, rows...)
		c, _ := audit(t, testTarget, "6", f, Options{
			Selection: Selection{Columns: []string{"pg_shdepend.objid"}},
		})
		assert.Equal(t, []string{
			`pg_shdepend row has invalid objid "77777": no matching entry in pg_class`,
		}, messages(c.GetEvents()))
	})

	t.Run("owner index only for object ID", func(t *testing.T) {
		f := catalogFixture()
		f.add("pg_shdepend", pgShdependColumns, rows...)
		a, err := NewAuditor(testTarget, "5", f, report.NewReporter(nil), Options{
			Selection: Selection{Columns: []string{"pg_shdepend.classid", "pg_shdepend.objid"}},
		})
		require.NoError(t, err)
		require.NoError(t, a.Audit(context.Background()))

		shdepend := a.run.Table("pg_shdepend")
		classIDCache, ok := shdepend.Column("classid").cache.(*dependCache)
		require.True(t, ok)
		assert.Nil(t, classIDCache.duplicateOwners)
		objectIDCache, ok := shdepend.Column("objid").cache.(*dependCache)
		require.True(t, ok)
		assert.NotNil(t, objectIDCache.duplicateOwners)
	})

	t.Run("unknown database", func(t *testing.T) {
		f := catalogFixture()
		f.add("pg_shdepend", pgShdependColumns, rows...)
		c, _ := audit(t, testTarget, "", f, Options{
			Selection: Selection{Columns: []string{"pg_shdepend.objid"}},
		})
		assert.False(t, c.HasEvents(), messages(c.GetEvents()))
	})
}

func TestAuditor_DependencyExceptions(t *testing.T) {
	f := catalogFixture()
	f.add("pg_proc", []string{"oid"}, []string{"1242"})
	f.add("pg_class", pgClassColumns, append(catalogClassRows(), []string{"1255", "pg_proc", "11", "r", "1"})...)
	f.add("pg_depend", pgDependColumns,
		[]string{"1255", "877", "0", "0", "0", "0", "n"},
		[]string{"1255", "878", "0", "0", "0", "0", "n"},
		[]string{"1247", "0", "0", "0", "0", "0", "n"},
	)
	selection := Selection{Columns: []string{"pg_depend.objid"}}

	t.Run("enterprisedb 9.3", func(t *testing.T) {
		c, _ := audit(t, catalog.Target{Version: 90300, Flavor: catalog.FlavorEnterpriseDB}, "", f, Options{Selection: selection})
		assert.Equal(t, []string{
			`pg_depend row has invalid objid "878": no matching entry in pg_proc`,
		}, messages(c.GetEvents()))
	})

	t.Run("postgresql", func(t *testing.T) {
		c, _ := audit(t, testTarget, "", f, Options{Selection: selection})
		assert.Equal(t, []string{
			`pg_depend row has invalid objid "877": no matching entry in pg_proc`,
			`pg_depend row has invalid objid "878": no matching entry in pg_proc`,
			`pg_depend row has invalid objid "0": no matching entry in pg_type`,
		}, messages(c.GetEvents()))
	})
}

type proberMock struct {
	mock.Mock
}

func (m *proberMock) Probe(ctx context.Context, schema, table string) error {
	args := m.Called(ctx, schema, table)
	return args.Error(0)
}

type progressMock struct {
	mock.Mock
}

func (m *progressMock) Start(total int) {
	m.Called(total)
}

func (m *progressMock) Increment() {
	m.Called()
}

func (m *progressMock) Finish() {
	m.Called()
}

func TestAuditor_SelectFromRelations(t *testing.T) {
	f := catalogFixture()
	f.add("pg_class", pgClassColumns,
		[]string{"1259", "pg_class", "11", "r", "5"},
		[]string{"16384", "victim", "2200", "r", "2"},
		[]string{"16390", "victim_idx", "2200", "i", "1"},
		[]string{"16391", "lost", "99999", "r", "1"},
	)
	prober := &proberMock{}
	prober.On("Probe", mock.Anything, "pg_catalog", "pg_class").Return(nil).Once()
	prober.On("Probe", mock.Anything, "public", "victim").Return(errors.New("could not open file")).Once()

	c, r := audit(t, testTarget, "", f, Options{
		Selection:           Selection{Columns: []string{"pg_class.relnamespace"}},
		SelectFromRelations: true,
		Prober:              prober,
	})
	prober.AssertExpectations(t)
	prober.AssertNumberOfCalls(t, "Probe", 2)

	events := c.GetEvents()
	assert.Equal(t, []string{
		`pg_class row has invalid relnamespace "99999": no matching entry in pg_namespace`,
		`unable to query relation "public"."victim": could not open file`,
	}, messages(events))
	require.Len(t, events, 2)
	assert.Equal(t, `oid="16384" relname="victim" relkind="r"`, events[1].IdentityString())
	assert.Equal(t, report.ExitCodeInconsistencies, r.Summary().ExitCode())
}

func TestNewAuditor_ProbeWithoutProber(t *testing.T) {
	_, err := NewAuditor(testTarget, "", newMemFetcher(), report.NewReporter(nil), Options{SelectFromRelations: true})
	require.Error(t, err)
}

func TestNewAuditor_ConfigurationError(t *testing.T) {
	f := newMemFetcher()
	_, err := NewAuditor(testTarget, "", f, report.NewReporter(nil), Options{
		Selection: Selection{Tables: []string{"pg_nope"}},
	})
	require.ErrorIs(t, err, ErrUnknownTable)
	assert.Empty(t, f.queries)
}

func TestAuditor_Progress(t *testing.T) {
	progress := &progressMock{}
	progress.On("Start", 1).Once()
	progress.On("Increment").Once()
	progress.On("Finish").Once()

	audit(t, testTarget, "", catalogFixture(), Options{
		Selection: Selection{Columns: []string{"pg_class.relnamespace"}},
		Progress:  progress,
	})
	progress.AssertExpectations(t)
}

func TestAuditor_Cancelled(t *testing.T) {
	a, err := NewAuditor(testTarget, "", catalogFixture(), report.NewReporter(nil), Options{})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, a.Audit(ctx), context.Canceled)
}
